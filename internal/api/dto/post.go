package dto

import (
	"time"

	"github.com/goccy/go-json"
)

// PostDTO 帖子
type PostDTO struct {
	ID          string      `json:"id"`
	MediaType   string      `json:"mediaType"`
	URL         *string     `json:"url,omitempty"`
	YtID        *string     `json:"ytId,omitempty"`
	Comment     *string     `json:"comment,omitempty"`
	NatSize     *NatSizeDTO `json:"natSize,omitempty"`
	PxAtPlace   *float64    `json:"pxAtPlace,omitempty"`
	UserCenter  *[2]float64 `json:"userCenter,omitempty"`
	DeviceID    *string     `json:"deviceId,omitempty"`
	Coordinates [2]float64  `json:"coordinates"` // [lng, lat]
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NatSizeDTO 媒体原始尺寸
type NatSizeDTO struct {
	Width  int `json:"width" validate:"min=1"`
	Height int `json:"height" validate:"min=1"`
}

// CreatePostDTO 帖子 - 新增
type CreatePostDTO struct {
	Lng            *float64    `json:"lng" binding:"required"`
	Lat            *float64    `json:"lat" binding:"required"`
	MediaType      string      `json:"mediaType" binding:"required"`
	URL            *string     `json:"url" validate:"omitempty,max=512"`
	YtID           *string     `json:"ytId" validate:"omitempty,max=64"`
	Comment        *string     `json:"comment"`
	NatSize        *NatSizeDTO `json:"natSize"`
	PxAtPlace      *float64    `json:"pxAtPlace"`
	UserCenter     *[2]float64 `json:"userCenter"`
	DeviceID       *string     `json:"deviceId" validate:"omitempty,max=128"`
	IdempotencyKey *string     `json:"idempotencyKey" validate:"omitempty,max=256"`
}

// UpdatePostDTO 帖子 - 局部修改。
// 字段缺省与显式 null 语义不同：缺省不动，null 清空，
// 因此反序列化时额外记录出现过的键。
type UpdatePostDTO struct {
	Comment    *string     `json:"comment"`
	NatSize    *NatSizeDTO `json:"natSize"`
	PxAtPlace  *float64    `json:"pxAtPlace"`
	UserCenter *[2]float64 `json:"userCenter"`

	present map[string]struct{}
}

func (s *UpdatePostDTO) UnmarshalJSON(data []byte) error {
	type alias UpdatePostDTO
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	*s = UpdatePostDTO(a)
	s.present = make(map[string]struct{}, len(keys))
	for k := range keys {
		s.present[k] = struct{}{}
	}
	return nil
}

// Has 返回请求体中是否出现过该键（包括显式 null）
func (s *UpdatePostDTO) Has(key string) bool {
	_, ok := s.present[key]
	return ok
}
