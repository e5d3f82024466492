package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"shop/internal/api"
	"shop/internal/cache"
	"shop/internal/config"
	"shop/internal/idgen"
	"shop/internal/metrics"
	"shop/internal/model"
	"shop/internal/storage"
	"shop/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 初始化配置
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	// 初始化logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if err := model.SeedDefaults(context.Background(), repo, cfg); err != nil {
		logrus.WithError(err).Warn("failed to seed default data")
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	// 未配置 REDIS_ADDR 或 Redis 不可用时使用进程内缓存
	appCache := cache.NewWithFallback(context.Background(), cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))

	numbers, err := idgen.NewEncoder(cfg.OrderNumberAlphabet, cfg.OrderNumberSeed, cfg.OrderNumberMinLength)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise order number encoder")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store, appCache, numbers)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	// 定时任务
	scheduler := task.NewScheduler()
	if err := scheduler.Register(cfg.CleanupSchedule, task.NewGuestCleanupJob(repo, cfg.GuestRetentionDays)); err != nil {
		logrus.WithError(err).Error("failed to register guest cleanup job")
		return
	}
	if memory, ok := appCache.(*cache.MemoryCache); ok {
		if err := scheduler.Register("*/10 * * * *", task.NewCacheCleanupJob(memory)); err != nil {
			logrus.WithError(err).Warn("failed to register cache cleanup job")
		}
	}
	if limiter := httpHandler.RateLimiter(); limiter != nil {
		if err := scheduler.Register("*/5 * * * *", task.NewNamedCleanupJob("rate_limiter_cleanup", limiter)); err != nil {
			logrus.WithError(err).Warn("failed to register rate limiter cleanup job")
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// 添加中间件
	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cache.TypeOf(appCache)})
	})
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	httpHandler.RegisterRoutes(r)

	if localProvider, ok := store.(storage.LocalDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/files"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			api.ServeUploads(r, publicPrefix, localProvider.LocalDir())
		}
	}

	// 前端构建产物（可选）
	if dir := strings.TrimSpace(cfg.StaticDir); dir != "" {
		r.NoRoute(staticFallback(dir))
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logrus.WithField("host", serverHost).Info("服务器启动")
	// 创建HTTP服务器
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("服务器启动失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("服务器正在关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("服务器关闭失败")
	}
}

// staticFallback 为单页应用提供静态文件，未命中的非 API 路径回退到 index.html
func staticFallback(dir string) gin.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			api.NotFound(c, api.ErrCodeNotFound, "route not found")
			return
		}
		target := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(target); err != nil || info.IsDir() {
			c.File(filepath.Join(dir, "index.html"))
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}

// CORSMiddleware CORS跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Guest-ID")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware 日志记录中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// 处理请求
		c.Next()
		// 记录请求结束
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
