package service

import (
	"errors"
	"net/http"
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrBadCoordinates     = errors.New("经纬度非法")
	ErrBadMediaType       = errors.New("媒体类型非法")
	ErrMediaRefMissing    = errors.New("媒体引用与类型不匹配")
	ErrBadNaturalSize     = errors.New("媒体尺寸非法")
	ErrPostNotFound       = errors.New("帖子不存在")
	ErrIdempotencyKeyUsed = errors.New("幂等键已被使用")
	ErrNoFile             = errors.New("未上传文件")
	ErrFileNotSupported   = errors.New("不支持的文件类型")
	ErrFileTooLarge       = errors.New("文件过大")
	ErrStoreUnavailable   = errors.New("存储暂不可用，请稍后重试")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

// ErrorMap 哨兵错误到 HTTP 状态码
var ErrorMap = map[error]int{
	ErrParamInvalid:       http.StatusBadRequest,
	ErrBadCoordinates:     http.StatusBadRequest,
	ErrBadMediaType:       http.StatusBadRequest,
	ErrMediaRefMissing:    http.StatusBadRequest,
	ErrBadNaturalSize:     http.StatusBadRequest,
	ErrPostNotFound:       http.StatusNotFound,
	ErrIdempotencyKeyUsed: http.StatusConflict,
	ErrNoFile:             http.StatusBadRequest,
	ErrFileNotSupported:   http.StatusUnsupportedMediaType,
	ErrFileTooLarge:       http.StatusRequestEntityTooLarge,
	ErrStoreUnavailable:   http.StatusServiceUnavailable,
	UnExpectedError:       http.StatusInternalServerError,
}

// ErrorCode 哨兵错误到机器可读错误码，进响应体的 error 字段
var ErrorCode = map[error]string{
	ErrParamInvalid:       "bad_request",
	ErrBadCoordinates:     "bad_coordinates",
	ErrBadMediaType:       "bad_media_type",
	ErrMediaRefMissing:    "media_ref_missing",
	ErrBadNaturalSize:     "bad_natural_size",
	ErrPostNotFound:       "not_found",
	ErrIdempotencyKeyUsed: "idempotency_conflict",
	ErrNoFile:             "no_file",
	ErrFileNotSupported:   "unsupported_media",
	ErrFileTooLarge:       "payload_too_large",
	ErrStoreUnavailable:   "unavailable",
	UnExpectedError:       "internal",
}
