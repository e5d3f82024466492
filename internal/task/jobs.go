package task

import (
	"context"
	"time"

	"shop/internal/metrics"

	"github.com/sirupsen/logrus"
)

// GuestDataPurger 删除过期的访客购物车与收藏
type GuestDataPurger interface {
	PurgeGuestCart(ctx context.Context, before time.Time) (int64, error)
	PurgeGuestFavorites(ctx context.Context, before time.Time) (int64, error)
}

// GuestCleanupJob 清理超过保留期的访客数据
type GuestCleanupJob struct {
	repo      GuestDataPurger
	retention time.Duration
	timeout   time.Duration
	now       func() time.Time
}

// NewGuestCleanupJob 创建访客数据清理任务，retentionDays 不大于 0 时按 30 天处理
func NewGuestCleanupJob(repo GuestDataPurger, retentionDays int) *GuestCleanupJob {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &GuestCleanupJob{
		repo:      repo,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		timeout:   5 * time.Minute,
		now:       time.Now,
	}
}

func (j *GuestCleanupJob) Name() string {
	return "GuestCleanupJob"
}

// Cutoff 返回本次清理的截止时间
func (j *GuestCleanupJob) Cutoff() time.Time {
	return j.now().Add(-j.retention)
}

func (j *GuestCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	j.RunContext(ctx)
}

// RunContext 执行一次清理
func (j *GuestCleanupJob) RunContext(ctx context.Context) {
	cutoff := j.Cutoff()
	logger := logrus.WithFields(logrus.Fields{"job": j.Name(), "cutoff": cutoff.Format(time.RFC3339)})

	carts, err := j.repo.PurgeGuestCart(ctx, cutoff)
	metrics.RecordJobRun("purge_guest_cart", carts, err)
	if err != nil {
		logger.WithError(err).Error("purge guest cart failed")
	}

	favorites, err := j.repo.PurgeGuestFavorites(ctx, cutoff)
	metrics.RecordJobRun("purge_guest_favorites", favorites, err)
	if err != nil {
		logger.WithError(err).Error("purge guest favorites failed")
	}

	logger.WithFields(logrus.Fields{
		"cart_items": carts,
		"favorites":  favorites,
	}).Info("guest data cleanup finished")
}

// ExpiredEntriesCleaner 由支持主动清理过期项的组件实现（内存缓存、限流器）
type ExpiredEntriesCleaner interface {
	Cleanup() int
}

// CacheCleanupJob 清理进程内缓存或限流器中的过期项
type CacheCleanupJob struct {
	name   string
	target ExpiredEntriesCleaner
}

func NewCacheCleanupJob(cache ExpiredEntriesCleaner) *CacheCleanupJob {
	return &CacheCleanupJob{name: "cache_cleanup", target: cache}
}

// NewNamedCleanupJob 以指定名称注册清理任务，名称用于日志与指标
func NewNamedCleanupJob(name string, target ExpiredEntriesCleaner) *CacheCleanupJob {
	return &CacheCleanupJob{name: name, target: target}
}

func (j *CacheCleanupJob) Name() string {
	return j.name
}

func (j *CacheCleanupJob) Run() {
	removed := j.target.Cleanup()
	metrics.RecordJobRun(j.name, int64(removed), nil)
	if removed > 0 {
		logrus.WithFields(logrus.Fields{"job": j.name, "removed": removed}).Debug("expired entries removed")
	}
}
