package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IdempotencyKeyIndex 幂等键的部分唯一索引。
// 仅对存在 idempotencyKey 的文档生效，唯一性在库内裁决，
// 并发插入同键时只有一条能落库，不做应用层先查后插。
func IdempotencyKeyIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{{Key: "idempotencyKey", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"idempotencyKey": bson.M{"$exists": true},
			}),
	}
}

// IsIdempotencyConflict 判断插入失败是否源于幂等键撞库
func IsIdempotencyConflict(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
