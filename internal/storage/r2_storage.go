package storage

import (
	"errors"
	"fmt"
	"strings"

	"shop/internal/config"
)

// NewR2Storage 创建 Cloudflare R2 存储。未配置 endpoint 时由账户 ID 推导。
func NewR2Storage(cfg config.Config) (Storage, error) {
	bucket := strings.TrimSpace(cfg.StorageR2Bucket)
	if bucket == "" {
		return nil, errors.New("storage: missing R2 bucket")
	}
	endpoint := strings.TrimSpace(cfg.StorageR2Endpoint)
	if endpoint == "" {
		account := strings.TrimSpace(cfg.StorageR2AccountID)
		if account == "" {
			return nil, errors.New("storage: missing R2 endpoint or account id")
		}
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", account)
	}
	region := strings.TrimSpace(cfg.StorageR2Region)
	if region == "" {
		region = "auto"
	}

	client, err := newS3Client(s3Credentials{
		region:    region,
		endpoint:  endpoint,
		accessKey: cfg.StorageR2AccessKeyID,
		secretKey: cfg.StorageR2SecretAccessKey,
		pathStyle: true,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create R2 client: %w", err)
	}
	return &s3Bucket{client: client, bucket: bucket, keys: newKeyBuilder(cfg.StorageR2Prefix)}, nil
}
