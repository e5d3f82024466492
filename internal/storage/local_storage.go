package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage 将文件写入本地目录，由 HTTP 服务直接以静态文件提供。
type LocalStorage struct {
	dir  string
	keys keyBuilder
}

// NewLocalStorage 创建本地存储，目录不存在时自动创建。
func NewLocalStorage(dir string) (*LocalStorage, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "datas/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{dir: dir, keys: newKeyBuilder("")}, nil
}

func (s *LocalStorage) LocalDir() string {
	return s.dir
}

// Put 先写入临时文件再重命名，读者不会看到写了一半的图片。
func (s *LocalStorage) Put(ctx context.Context, data []byte, opts PutOptions) (Object, error) {
	obj, err := s.keys.prepare(ctx, data, opts)
	if err != nil {
		return Object{}, err
	}
	target := s.path(obj.Key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return Object{}, fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return Object{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Object{}, fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Object{}, fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return Object{}, fmt.Errorf("chmod file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return Object{}, fmt.Errorf("rename file: %w", err)
	}
	return obj, nil
}

// Remove 删除文件，文件不存在视为成功。
func (s *LocalStorage) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key))
}

var (
	_ Storage          = (*LocalStorage)(nil)
	_ LocalDirProvider = (*LocalStorage)(nil)
)
