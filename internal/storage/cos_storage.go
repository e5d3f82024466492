package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"shop/internal/config"

	"github.com/tencentyun/cos-go-sdk-v5"
)

type cosBucket struct {
	client *cos.Client
	keys   keyBuilder
}

// NewCOSStorage 创建腾讯云 COS 存储，STORAGE_COS_BUCKET_URL 形如 https://<bucket>.cos.<region>.myqcloud.com。
func NewCOSStorage(cfg config.Config) (Storage, error) {
	rawURL := strings.TrimSpace(cfg.StorageCOSBucketURL)
	if rawURL == "" {
		return nil, errors.New("storage: missing COS bucket URL")
	}
	bucketURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("storage: parse COS bucket URL: %w", err)
	}
	secretID := strings.TrimSpace(cfg.StorageCOSSecretID)
	secretKey := strings.TrimSpace(cfg.StorageCOSSecretKey)
	if secretID == "" || secretKey == "" {
		return nil, errors.New("storage: missing COS credentials")
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{SecretID: secretID, SecretKey: secretKey},
	})
	return &cosBucket{client: client, keys: newKeyBuilder(cfg.StorageCOSPrefix)}, nil
}

func (s *cosBucket) Put(ctx context.Context, data []byte, opts PutOptions) (Object, error) {
	obj, err := s.keys.prepare(ctx, data, opts)
	if err != nil {
		return Object{}, err
	}
	resp, err := s.client.Object.Put(ctx, obj.Key, bytes.NewReader(data), &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   obj.ContentType,
			ContentLength: obj.Size,
			CacheControl:  "public, max-age=31536000, immutable",
		},
	})
	closeBody(resp)
	if err != nil {
		return Object{}, fmt.Errorf("put object %s: %w", obj.Key, err)
	}
	return obj, nil
}

func (s *cosBucket) Remove(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	resp, err := s.client.Object.Delete(ctx, key)
	closeBody(resp)
	if err != nil && !cos.IsNotFoundError(err) {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func closeBody(resp *cos.Response) {
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
}

var _ Storage = (*cosBucket)(nil)
