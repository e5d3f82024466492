package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"shop/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// s3Bucket 同时服务 Amazon S3 与兼容 S3 协议的 R2
type s3Bucket struct {
	client *s3.Client
	bucket string
	keys   keyBuilder
}

type s3Credentials struct {
	region    string
	endpoint  string
	accessKey string
	secretKey string
	session   string
	pathStyle bool
}

// NewS3Storage 创建 Amazon S3（或自定义 endpoint 的兼容服务）存储。
func NewS3Storage(cfg config.Config) (Storage, error) {
	bucket := strings.TrimSpace(cfg.StorageS3Bucket)
	if bucket == "" {
		return nil, errors.New("storage: missing S3 bucket")
	}
	client, err := newS3Client(s3Credentials{
		region:    cfg.StorageS3Region,
		endpoint:  cfg.StorageS3Endpoint,
		accessKey: cfg.StorageS3AccessKeyID,
		secretKey: cfg.StorageS3SecretAccessKey,
		session:   cfg.StorageS3SessionToken,
		pathStyle: cfg.StorageS3ForcePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create S3 client: %w", err)
	}
	return &s3Bucket{client: client, bucket: bucket, keys: newKeyBuilder(cfg.StorageS3Prefix)}, nil
}

func newS3Client(c s3Credentials) (*s3.Client, error) {
	region := strings.TrimSpace(c.region)
	if region == "" {
		return nil, errors.New("missing region")
	}
	accessKey, secretKey := strings.TrimSpace(c.accessKey), strings.TrimSpace(c.secretKey)
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("missing credentials")
	}

	awsCfg := aws.Config{
		Region: region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, strings.TrimSpace(c.session)),
		),
	}
	endpoint := strings.TrimSpace(c.endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = c.pathStyle
	}), nil
}

func (s *s3Bucket) Put(ctx context.Context, data []byte, opts PutOptions) (Object, error) {
	obj, err := s.keys.prepare(ctx, data, opts)
	if err != nil {
		return Object{}, err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(obj.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(obj.Size),
		ContentType:   aws.String(obj.ContentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return Object{}, fmt.Errorf("put object %s: %w", obj.Key, err)
	}
	return obj, nil
}

func (s *s3Bucket) Remove(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil && !isS3NotFound(err) {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func isS3NotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "404":
			return true
		}
	}
	return false
}

var _ Storage = (*s3Bucket)(nil)
