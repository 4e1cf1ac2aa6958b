package repository

import (
	"Mapdrop/internal/model"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepo interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M, unset bson.M) (*model.Post, error)
	FindNear(ctx context.Context, lng, lat, radiusMeters float64, limit int64) ([]*model.Post, error)
	FindRecentSince(ctx context.Context, cutoff time.Time, limit int64) ([]*model.Post, error)
	FindLatestByDevice(ctx context.Context, deviceID string) (*model.Post, error)
	FindHistory(ctx context.Context, deviceID string, limit int64) ([]*model.Post, error)
	EnsureIndexes(ctx context.Context) error
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: db.Collection("posts"),
	}
}

// EnsureIndexes 建立地理索引与幂等键的部分唯一索引
func (s *postRepoImpl) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
		IdempotencyKeyIndex(),
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "deviceId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	_, err := s.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *postRepoImpl) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	res, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return post, nil
}

func (s *postRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update 只写入 set/unset 中出现的字段，updatedAt 由库内时钟推进
func (s *postRepoImpl) Update(ctx context.Context, id primitive.ObjectID, set bson.M, unset bson.M) (*model.Post, error) {
	update := bson.M{
		"$currentDate": bson.M{"updatedAt": true},
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post model.Post
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindNear 依赖 2dsphere 索引，结果按距离由近及远
func (s *postRepoImpl) FindNear(ctx context.Context, lng, lat, radiusMeters float64, limit int64) ([]*model.Post, error) {
	filter := bson.M{
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{lng, lat},
				},
				"$maxDistance": radiusMeters,
			},
		},
	}

	cursor, err := s.col.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postRepoImpl) FindRecentSince(ctx context.Context, cutoff time.Time, limit int64) ([]*model.Post, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": cutoff}}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FindLatestByDevice deviceID 为空时不限定设备
func (s *postRepoImpl) FindLatestByDevice(ctx context.Context, deviceID string) (*model.Post, error) {
	filter := bson.M{}
	if deviceID != "" {
		filter["deviceId"] = deviceID
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var post model.Post
	err := s.col.FindOne(ctx, filter, opts).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *postRepoImpl) FindHistory(ctx context.Context, deviceID string, limit int64) ([]*model.Post, error) {
	filter := bson.M{}
	if deviceID != "" {
		filter["deviceId"] = deviceID
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
