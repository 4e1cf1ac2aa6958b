package handler

import (
	"Mapdrop/internal/pkg/response"
	"Mapdrop/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc     service.MediaService
	maxSizeBytes int64
}

func NewMediaHandler(mediaSvc service.MediaService, maxSizeBytes int64) *MediaHandler {
	return &MediaHandler{
		mediaSvc:     mediaSvc,
		maxSizeBytes: maxSizeBytes,
	}
}

// Upload 单文件上传，字段名 file
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrNoFile)
		return
	}

	if file.Size > s.maxSizeBytes {
		response.Error(c, service.ErrFileTooLarge)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	res, err := s.mediaSvc.Store(c.Request.Context(), reader, file.Size, file.Header.Get("Content-Type"), file.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}
