package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// 缓存键
const (
	KeyBrands           = "shop:brands:active"
	KeyDeliverySettings = "shop:delivery:settings"
)

// Cache 定义了缓存服务的接口，值以字符串保存
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Kind 缓存实现类型
type Kind string

const (
	KindRedis  Kind = "redis"
	KindMemory Kind = "memory"
)

// NewWithFallback 返回 Redis 缓存；client 为空或 ping 失败时降级为内存缓存
func NewWithFallback(ctx context.Context, client *redis.Client) Cache {
	if client == nil {
		logrus.Info("cache: using in-memory cache")
		return NewMemory()
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logrus.WithError(err).Warn("cache: redis unavailable, falling back to in-memory cache")
		return NewMemory()
	}
	logrus.Info("cache: using redis")
	return NewRedis(client)
}

// TypeOf 返回缓存实现类型
func TypeOf(c Cache) Kind {
	if _, ok := c.(*redisCache); ok {
		return KindRedis
	}
	return KindMemory
}

// GetJSON 读取并解码 JSON 缓存；未命中时返回 false
func GetJSON(ctx context.Context, c Cache, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode cache %s: %w", key, err)
	}
	return true, nil
}

// SetJSON 以 JSON 编码写入缓存
func SetJSON(ctx context.Context, c Cache, key string, value interface{}, expiration time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache %s: %w", key, err)
	}
	return c.Set(ctx, key, string(data), expiration)
}
