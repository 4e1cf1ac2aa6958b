package service

import (
	"Mapdrop/internal/api/dto"
	"Mapdrop/internal/model"
	"Mapdrop/internal/pkg/consts"
	"Mapdrop/internal/pkg/util"
	"Mapdrop/internal/repository"
	"context"
	"errors"
	"math"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type PostService interface {
	CreatePost(ctx context.Context, req *dto.CreatePostDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, id string) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, id string, patch *dto.UpdatePostDTO) (*dto.PostDTO, error)
	FindNear(ctx context.Context, lng, lat, radiusMeters float64, limit int64) ([]*dto.PostDTO, error)
	FindRecent(ctx context.Context, now time.Time, limit int64) ([]*dto.PostDTO, error)
	FindLatest(ctx context.Context, deviceID string) (*dto.PostDTO, error)
	FindHistory(ctx context.Context, deviceID string, limit int64) ([]*dto.PostDTO, error)
}

type postServiceImpl struct {
	postRepo      repository.PostRepo
	opTimeout     time.Duration
	retentionHour int
}

func NewPostService(postRepo repository.PostRepo, opTimeout time.Duration, retentionHour int) PostService {
	return &postServiceImpl{
		postRepo:      postRepo,
		opTimeout:     opTimeout,
		retentionHour: retentionHour,
	}
}

// CreatePost 校验后落库。幂等键唯一性不在这里裁决，
// 并发撞键由库内部分唯一索引兜底，这里只翻译冲突错误。
func (s *postServiceImpl) CreatePost(ctx context.Context, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}
	if !validCoordinates(*req.Lng, *req.Lat) {
		return nil, ErrBadCoordinates
	}

	post := &model.Post{
		Location:       model.NewGeoPoint(*req.Lng, *req.Lat),
		MediaType:      req.MediaType,
		Comment:        clampComment(req.Comment),
		PxAtPlace:      req.PxAtPlace,
		DeviceID:       req.DeviceID,
		IdempotencyKey: req.IdempotencyKey,
	}

	switch req.MediaType {
	case consts.MediaTypeImage, consts.MediaTypeGif, consts.MediaTypeVideo:
		if req.URL == nil || *req.URL == "" || req.YtID != nil {
			return nil, ErrMediaRefMissing
		}
		post.URL = req.URL
	case consts.MediaTypeYt:
		if req.YtID == nil || *req.YtID == "" || req.URL != nil {
			return nil, ErrMediaRefMissing
		}
		post.YtID = req.YtID
	default:
		return nil, ErrBadMediaType
	}

	if req.NatSize != nil {
		if req.NatSize.Width < 1 || req.NatSize.Height < 1 {
			return nil, ErrBadNaturalSize
		}
		post.NatSize = &model.NaturalSize{Width: req.NatSize.Width, Height: req.NatSize.Height}
	}

	if req.UserCenter != nil {
		if !validCoordinates(req.UserCenter[0], req.UserCenter[1]) {
			return nil, ErrBadCoordinates
		}
		post.UserCenter = req.UserCenter
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	created, err := s.postRepo.Create(opCtx, post)
	if err != nil {
		if repository.IsIdempotencyConflict(err) {
			return nil, ErrIdempotencyKeyUsed
		}
		return nil, mapStoreErr(err)
	}
	return toPostDTO(created), nil
}

// GetPost 非法 id 视同不存在，避免向客户端泄露存储格式
func (s *postServiceImpl) GetPost(ctx context.Context, id string) (*dto.PostDTO, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	post, err := s.postRepo.GetByID(opCtx, oid)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return toPostDTO(post), nil
}

// UpdatePost 只动请求体里出现的键：非 null 覆盖，显式 null 清空。
// mediaType 与 location 不开放修改。
func (s *postServiceImpl) UpdatePost(ctx context.Context, id string, patch *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	set := bson.M{}
	unset := bson.M{}

	if patch.Has("comment") {
		if patch.Comment != nil {
			set["comment"] = *clampComment(patch.Comment)
		} else {
			unset["comment"] = ""
		}
	}

	if patch.Has("natSize") {
		if patch.NatSize != nil {
			if patch.NatSize.Width < 1 || patch.NatSize.Height < 1 {
				return nil, ErrBadNaturalSize
			}
			set["natSize"] = model.NaturalSize{Width: patch.NatSize.Width, Height: patch.NatSize.Height}
		} else {
			unset["natSize"] = ""
		}
	}

	if patch.Has("pxAtPlace") {
		if patch.PxAtPlace != nil {
			set["pxAtPlace"] = *patch.PxAtPlace
		} else {
			unset["pxAtPlace"] = ""
		}
	}

	if patch.Has("userCenter") {
		if patch.UserCenter != nil {
			if !validCoordinates(patch.UserCenter[0], patch.UserCenter[1]) {
				return nil, ErrBadCoordinates
			}
			set["userCenter"] = patch.UserCenter
		} else {
			unset["userCenter"] = ""
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	post, err := s.postRepo.Update(opCtx, oid, set, unset)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return toPostDTO(post), nil
}

// FindNear 半径与条数钳制到有界区间，避免退化成全表扫描
func (s *postServiceImpl) FindNear(ctx context.Context, lng, lat, radiusMeters float64, limit int64) ([]*dto.PostDTO, error) {
	if !validCoordinates(lng, lat) {
		return nil, ErrBadCoordinates
	}
	radiusMeters = clampFloat(radiusMeters, consts.NearRadiusMinMeters, consts.NearRadiusMaxMeters)
	limit = clampInt(limit, 1, consts.NearLimitMax)

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	posts, err := s.postRepo.FindNear(opCtx, lng, lat, radiusMeters, limit)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return toPostDTOs(posts), nil
}

// FindRecent 返回保留边界之后创建的帖子，最新在前
func (s *postServiceImpl) FindRecent(ctx context.Context, now time.Time, limit int64) ([]*dto.PostDTO, error) {
	limit = clampInt(limit, 1, consts.RecentLimitMax)
	cutoff := util.RetentionCutoff(now, s.retentionHour)

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	posts, err := s.postRepo.FindRecentSince(opCtx, cutoff, limit)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return toPostDTOs(posts), nil
}

// FindLatest 没有匹配时返回 nil 而非错误
func (s *postServiceImpl) FindLatest(ctx context.Context, deviceID string) (*dto.PostDTO, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	post, err := s.postRepo.FindLatestByDevice(opCtx, deviceID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return nil, nil
		}
		return nil, mapStoreErr(err)
	}
	return toPostDTO(post), nil
}

func (s *postServiceImpl) FindHistory(ctx context.Context, deviceID string, limit int64) ([]*dto.PostDTO, error) {
	limit = clampInt(limit, 1, consts.HistoryLimitMax)

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	posts, err := s.postRepo.FindHistory(opCtx, deviceID, limit)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return toPostDTOs(posts), nil
}

func validCoordinates(lng, lat float64) bool {
	if math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return false
	}
	return lng >= -180 && lng <= 180 && lat >= -90 && lat <= 90
}

// clampComment 超长评论截断到上限而不是整体拒绝
func clampComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	runes := []rune(*comment)
	if len(runes) <= consts.CommentMaxRunes {
		return comment
	}
	clamped := string(runes[:consts.CommentMaxRunes])
	return &clamped
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// mapStoreErr 把驱动错误翻译成稳定的业务错误
func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, mongoDB.ErrNoDocuments):
		return ErrPostNotFound
	case errors.Is(err, context.DeadlineExceeded), mongoDB.IsTimeout(err), mongoDB.IsNetworkError(err):
		return ErrStoreUnavailable
	default:
		return UnExpectedError
	}
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	var d dto.PostDTO
	_ = copier.Copy(&d, post)
	d.ID = post.ID.Hex()
	d.Coordinates = post.Location.Coordinates
	return &d
}

func toPostDTOs(posts []*model.Post) []*dto.PostDTO {
	out := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p))
	}
	return out
}
