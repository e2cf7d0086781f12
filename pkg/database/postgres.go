// pkg/database/postgres.go
package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/movegoo/panoramai-sub001/pkg/config"
	"github.com/movegoo/panoramai-sub001/pkg/model"
)

// Postgres 数据库连接
type Postgres struct {
	db *gorm.DB
}

// NewPostgres 创建数据库连接
func NewPostgres(cfg *config.Config) (*Postgres, error) {
	dbCfg := cfg.Database.Postgres

	// 构建连接字符串
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.DBName, dbCfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("测试数据库连接失败: %w", err)
	}

	return &Postgres{db: db}, nil
}

// AutoMigrate 建表/迁移
func (p *Postgres) AutoMigrate() error {
	return p.db.AutoMigrate(
		&model.Competitor{},
		&model.InstagramMetric{},
		&model.TikTokMetric{},
		&model.YouTubeMetric{},
		&model.AppRatingMetric{},
		&model.Ad{},
		&model.AdSnapshot{},
		&model.Signal{},
	)
}

// Ping 探测数据库可用性
func (p *Postgres) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close 关闭数据库连接
func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
