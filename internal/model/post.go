package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint GeoJSON 点，2dsphere 索引要求的存储形态
type GeoPoint struct {
	Type        string     `bson:"type"`
	Coordinates [2]float64 `bson:"coordinates"` // [lng, lat]
}

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// NaturalSize 媒体原始像素尺寸，两个维度要么都有要么都没有
type NaturalSize struct {
	Width  int `bson:"width"`
	Height int `bson:"height"`
}

// Post 帖子文档。url / ytId 按 mediaType 二选一，未选中的字段不落库
type Post struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Location       GeoPoint           `bson:"location"`
	MediaType      string             `bson:"mediaType"`
	URL            *string            `bson:"url,omitempty"`
	YtID           *string            `bson:"ytId,omitempty"`
	Comment        *string            `bson:"comment,omitempty"`
	NatSize        *NaturalSize       `bson:"natSize,omitempty"`
	PxAtPlace      *float64           `bson:"pxAtPlace,omitempty"`
	UserCenter     *[2]float64        `bson:"userCenter,omitempty"`
	DeviceID       *string            `bson:"deviceId,omitempty"`
	IdempotencyKey *string            `bson:"idempotencyKey,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}
