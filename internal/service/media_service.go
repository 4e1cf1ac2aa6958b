package service

import (
	"Mapdrop/internal/api/dto"
	"Mapdrop/internal/pkg/consts"
	"Mapdrop/internal/pkg/storage"
	"Mapdrop/internal/pkg/util"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MediaService interface {
	Store(ctx context.Context, r io.ReadSeeker, size int64, declaredMime, filename string) (*dto.UploadResultDTO, error)
}

type mediaServiceImpl struct {
	store storage.MediaStore
	now   func() time.Time
}

func NewMediaService(store storage.MediaStore) MediaService {
	return &mediaServiceImpl{
		store: store,
		now:   time.Now,
	}
}

// Store 按白名单校验 MIME 后完整写入存储并返回访问地址。
// 对象名嵌入创建时间戳，清理任务靠它判定过期。
func (s *mediaServiceImpl) Store(ctx context.Context, r io.ReadSeeker, size int64, declaredMime, filename string) (*dto.UploadResultDTO, error) {
	contentType, err := util.GetSafeContentType(r)
	if err != nil {
		log.ErrorContext(ctx, "failed to sniff content type", "err", err)
		return nil, UnExpectedError
	}

	// 嗅探不出具体类型时信任客户端声明，仍要过白名单
	if contentType == "application/octet-stream" && declaredMime != "" {
		contentType = declaredMime
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	ext, ok := consts.MimeExt[contentType]
	if !ok {
		return nil, ErrFileNotSupported
	}

	name := fmt.Sprintf("%d-%s.%s", s.now().UnixMilli(), uuid.NewString(), ext)

	if err := s.store.Put(ctx, name, r, size, contentType); err != nil {
		log.ErrorContext(ctx, "media store write failed", "name", name, "err", err)
		return nil, UnExpectedError
	}

	log.InfoContext(ctx, "media upload success", "name", name, "type", contentType, "size", size)
	return &dto.UploadResultDTO{
		Ok:       true,
		URL:      s.store.PublicURL(name),
		Mime:     contentType,
		Size:     size,
		Original: filename,
	}, nil
}
