// pkg/database/ad.go
package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/movegoo/panoramai-sub001/pkg/engine"
	"github.com/movegoo/panoramai-sub001/pkg/model"
)

// AdDB 广告与广告快照台账，实现 engine.AdStore
type AdDB struct {
	db *gorm.DB
}

func (p *Postgres) Ad() *AdDB {
	return &AdDB{db: p.db}
}

// ActiveAds 返回全部当前在投广告（不分租户）
func (a *AdDB) ActiveAds() ([]*model.Ad, error) {
	var ads []*model.Ad
	err := a.db.Where("is_active = ?", true).Find(&ads).Error
	if err != nil {
		return nil, fmt.Errorf("查询在投广告失败: %w", err)
	}
	return ads, nil
}

// AppendSnapshot 向台账追加一行，只追加，创建后不再改写
func (a *AdDB) AppendSnapshot(snapshot *model.AdSnapshot) error {
	if err := a.db.Create(snapshot).Error; err != nil {
		return fmt.Errorf("写入广告快照失败: %w", err)
	}
	return nil
}

// ActiveAdCounts 按 captured_at 聚合的在投广告数序列，时间倒序。
// 一个周期的快照共用同一个 captured_at，聚合后每周期恰好一条采样，
// 当前周期的行不会跟彼此比较。
func (a *AdDB) ActiveAdCounts(competitorID string) ([]engine.Sample, error) {
	var rows []struct {
		CapturedAt time.Time `gorm:"column:captured_at"`
		Count      float64   `gorm:"column:count"`
	}

	err := a.db.Model(&model.AdSnapshot{}).
		Select("captured_at, count(*) as count").
		Where("competitor_id = ? AND is_active = ?", competitorID, true).
		Group("captured_at").
		Order("captured_at DESC").
		Limit(60).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("聚合广告快照失败: %w", err)
	}

	samples := make([]engine.Sample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, engine.Sample{Value: row.Count, RecordedAt: row.CapturedAt})
	}
	return samples, nil
}
