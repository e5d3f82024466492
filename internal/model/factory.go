package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shop/internal/config"
	"shop/internal/entity/db"
	"shop/internal/model/sql"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	DBTypeMySQL    = "mysql"
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"

	// MemoryDSN 打开进程内 SQLite 数据库，用于测试与演示
	MemoryDSN = ":memory:"
)

// poolSettings 连接池参数，零值表示沿用驱动默认
type poolSettings struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
	slowQuery   time.Duration
}

// InitRepository 按配置连接数据库、迁移表结构并返回仓库
func InitRepository(cfg *config.Config) (Repository, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	repo, err := open(dialector, poolSettings{
		maxOpen:     cfg.DBMaxOpenConns,
		maxIdle:     cfg.DBMaxIdleConns,
		maxLifetime: time.Hour,
		slowQuery:   time.Duration(cfg.DBSlowQueryMs) * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// OpenSQLiteRepository 打开指定路径的 SQLite 仓库并完成迁移，path 为 MemoryDSN 时使用内存库。
func OpenSQLiteRepository(path string) (*sql.GormRepository, error) {
	if err := ensureSQLiteDir(path); err != nil {
		return nil, err
	}
	pool := poolSettings{}
	if path == MemoryDSN {
		// 每个连接都是独立的内存库，只保留一个
		pool.maxOpen, pool.maxIdle = 1, 1
	}
	return open(sqlite.Open(path), pool)
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.DBType)) {
	case "", DBTypeSQLite:
		path := cfg.DBPath
		if path == "" {
			path = "datas/shop.db"
		}
		if err := ensureSQLiteDir(path); err != nil {
			return nil, err
		}
		return sqlite.Open(path), nil
	case DBTypeMySQL:
		dsn := cfg.DSNURL
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.DBUser, cfg.DBPassword, cfg.DBAddr, cfg.DBPort, cfg.DBName)
		}
		return mysql.Open(dsn), nil
	case DBTypePostgres:
		dsn := cfg.DSNURL
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				cfg.DBAddr, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}
}

// ensureSQLiteDir SQLite 会自动创建 .db 文件，但要求目录已存在
func ensureSQLiteDir(path string) error {
	if path == MemoryDSN {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	return nil
}

func open(dialector gorm.Dialector, pool poolSettings) (*sql.GormRepository, error) {
	slow := pool.slowQuery
	if slow <= 0 {
		slow = 5 * time.Second
	}
	// GORM 日志统一走 logrus
	gormLogger := logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             slow,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gormLogger,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true, // 唯一键冲突返回 gorm.ErrDuplicatedKey
		NamingStrategy:                           schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialector.Name(), err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if pool.maxOpen > 0 {
		sqlDB.SetMaxOpenConns(pool.maxOpen)
	}
	if pool.maxIdle > 0 {
		sqlDB.SetMaxIdleConns(pool.maxIdle)
	}
	sqlDB.SetConnMaxLifetime(pool.maxLifetime)

	if err := migrateSchema(gdb); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return sql.NewGormRepository(gdb), nil
}

func migrateSchema(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&db.User{},
		&db.BlogCategory{},
		&db.BlogPost{},
		&db.Banner{},
		&db.Brand{},
		&db.DeliverySettings{},
		&db.ProductType{},
		&db.ProductTypeAttribute{},
		&db.Product{},
		&db.ProductVariant{},
		&db.ProductAttributeValue{},
		&db.CartItem{},
		&db.Favorite{},
		&db.Order{},
		&db.OrderItem{},
	)
}
