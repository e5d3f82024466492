package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"shop/internal/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type ossBucket struct {
	bucket *oss.Bucket
	keys   keyBuilder
}

// NewOSSStorage 创建阿里云 OSS 存储。
func NewOSSStorage(cfg config.Config) (Storage, error) {
	endpoint := strings.TrimSpace(cfg.StorageOSSEndpoint)
	name := strings.TrimSpace(cfg.StorageOSSBucket)
	accessKey := strings.TrimSpace(cfg.StorageOSSAccessKeyID)
	secretKey := strings.TrimSpace(cfg.StorageOSSAccessKeySecret)
	switch {
	case endpoint == "":
		return nil, errors.New("storage: missing OSS endpoint")
	case name == "":
		return nil, errors.New("storage: missing OSS bucket")
	case accessKey == "" || secretKey == "":
		return nil, errors.New("storage: missing OSS credentials")
	}

	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("storage: create OSS client: %w", err)
	}
	bucket, err := client.Bucket(name)
	if err != nil {
		return nil, fmt.Errorf("storage: open OSS bucket: %w", err)
	}
	return &ossBucket{bucket: bucket, keys: newKeyBuilder(cfg.StorageOSSPrefix)}, nil
}

func (s *ossBucket) Put(ctx context.Context, data []byte, opts PutOptions) (Object, error) {
	obj, err := s.keys.prepare(ctx, data, opts)
	if err != nil {
		return Object{}, err
	}
	err = s.bucket.PutObject(obj.Key, bytes.NewReader(data),
		oss.WithContext(ctx),
		oss.ContentType(obj.ContentType),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
	if err != nil {
		return Object{}, fmt.Errorf("put object %s: %w", obj.Key, err)
	}
	return obj, nil
}

// Remove OSS 删除不存在的对象同样返回成功
func (s *ossBucket) Remove(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

var _ Storage = (*ossBucket)(nil)
