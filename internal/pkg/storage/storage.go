package storage

import (
	"Mapdrop/internal/api/config"
	"context"
	"fmt"
	"io"
)

// MediaStore 媒体文件的持久化抽象。
// 对象名即唯一标识，命名约定 {unixMillis}-{uuid}.{ext}，
// 清理任务只依赖这一约定恢复创建时间。
type MediaStore interface {
	// Put 完整写入一个对象；目标已存在视为错误，不允许静默覆盖
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	// List 返回当前所有对象名
	List(ctx context.Context) ([]string, error)
	// Remove 删除一个对象
	Remove(ctx context.Context, name string) error
	// PublicURL 对象的外部访问地址
	PublicURL(name string) string
}

// New 按配置选择存储驱动
func New(cfg *config.Config) (MediaStore, error) {
	switch cfg.Storage.Driver {
	case "", "local":
		return NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.PublicBase)
	case "minio":
		return NewMinioStore(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}
