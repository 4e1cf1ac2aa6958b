package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore 本地磁盘驱动，目录内平铺存放，gin 静态挂载到 PublicBase
type LocalStore struct {
	dir        string
	publicBase string
}

func NewLocalStore(dir, publicBase string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{
		dir:        dir,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

// Put 先写临时文件再改名发布，失败时不留下可引用的半成品
func (s *LocalStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	target := filepath.Join(s.dir, name)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("object already exists: %s", name)
	}

	tmp := target + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err = io.Copy(f, r); err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to publish file: %w", err)
	}
	return nil
}

func (s *LocalStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *LocalStore) Remove(ctx context.Context, name string) error {
	return os.Remove(filepath.Join(s.dir, name))
}

func (s *LocalStore) PublicURL(name string) string {
	return s.publicBase + "/" + name
}

// Dir 磁盘目录，路由层静态挂载时使用
func (s *LocalStore) Dir() string {
	return s.dir
}
