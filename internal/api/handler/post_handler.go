package handler

import (
	"Mapdrop/internal/api/dto"
	"Mapdrop/internal/pkg/consts"
	"Mapdrop/internal/pkg/response"
	"Mapdrop/internal/service"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	// deviceId 允许从请求头回退
	if req.DeviceID == nil {
		if h := c.GetHeader(consts.HeaderDeviceID); h != "" {
			req.DeviceID = &h
		}
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"ok":        true,
		"id":        post.ID,
		"createdAt": post.CreatedAt,
	})
}

func (s *PostHandler) GetPost(c *gin.Context) {
	post, err := s.postSvc.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost 手动反序列化以区分字段缺省与显式 null
func (s *PostHandler) UpdatePost(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var patch dto.UpdatePostDTO
	if err := json.Unmarshal(body, &patch); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), c.Param("post_id"), &patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) FindNear(c *gin.Context) {
	lng, err1 := strconv.ParseFloat(c.Query("lng"), 64)
	lat, err2 := strconv.ParseFloat(c.Query("lat"), 64)
	if err1 != nil || err2 != nil {
		response.Error(c, service.ErrBadCoordinates)
		return
	}

	radius := queryFloat(c, "radiusMeters", consts.NearRadiusDefault)
	limit := queryInt(c, "limit", consts.NearLimitDefault)

	posts, err := s.postSvc.FindNear(c.Request.Context(), lng, lat, radius, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) FindRecent(c *gin.Context) {
	limit := queryInt(c, "limit", consts.RecentLimitDefault)

	posts, err := s.postSvc.FindRecent(c.Request.Context(), time.Now(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) FindLatest(c *gin.Context) {
	post, err := s.postSvc.FindLatest(c.Request.Context(), deviceID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) FindHistory(c *gin.Context) {
	limit := queryInt(c, "limit", consts.HistoryLimitDefault)

	posts, err := s.postSvc.FindHistory(c.Request.Context(), deviceID(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// deviceID 查询参数优先，缺省回退请求头
func deviceID(c *gin.Context) string {
	if v := c.Query("deviceId"); v != "" {
		return v
	}
	return c.GetHeader(consts.HeaderDeviceID)
}

func queryFloat(c *gin.Context, key string, def float64) float64 {
	v, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil {
		return def
	}
	return v
}

func queryInt(c *gin.Context, key string, def int64) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return def
	}
	return v
}
