// pkg/database/signal.go
package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/movegoo/panoramai-sub001/pkg/model"
)

// SignalDB 信号存储，实现 engine.SignalStore。
// 信号创建后唯一允许的变更是 is_read 翻转。
type SignalDB struct {
	db *gorm.DB
}

func (p *Postgres) Signal() *SignalDB {
	return &SignalDB{db: p.db}
}

func (s *SignalDB) Save(signal *model.Signal) error {
	if err := s.db.Create(signal).Error; err != nil {
		return fmt.Errorf("保存信号失败: %w", err)
	}
	return nil
}

func (s *SignalDB) GetByID(signalID string) (*model.Signal, error) {
	var signal model.Signal
	err := s.db.Preload("Competitor").First(&signal, "id = ?", signalID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("信号不存在")
		}
		return nil, fmt.Errorf("获取信号失败: %w", err)
	}
	return &signal, nil
}

// SignalFilter 信号查询条件
type SignalFilter struct {
	AdvertiserID string
	Severity     model.SignalSeverity
	Platform     model.Platform
	UnreadOnly   bool
	Limit        int
}

// List 按条件查询信号，时间倒序
func (s *SignalDB) List(filter SignalFilter) ([]*model.Signal, error) {
	query := s.db.Model(&model.Signal{})

	if filter.AdvertiserID != "" {
		query = query.Where("advertiser_id = ?", filter.AdvertiserID)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var signals []*model.Signal
	err := query.Preload("Competitor").
		Order("detected_at DESC").
		Limit(limit).
		Find(&signals).Error
	if err != nil {
		return nil, fmt.Errorf("查询信号失败: %w", err)
	}
	return signals, nil
}

// CountUnread 未读信号数
func (s *SignalDB) CountUnread(advertiserID string) (int64, error) {
	query := s.db.Model(&model.Signal{}).Where("is_read = ?", false)
	if advertiserID != "" {
		query = query.Where("advertiser_id = ?", advertiserID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计未读信号失败: %w", err)
	}
	return count, nil
}

// MarkRead 标记单条信号已读
func (s *SignalDB) MarkRead(signalID string) error {
	result := s.db.Model(&model.Signal{}).
		Where("id = ?", signalID).
		Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("标记信号已读失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("信号不存在")
	}
	return nil
}

// MarkAllRead 标记全部未读信号已读，advertiserID 非空时只作用于该租户
func (s *SignalDB) MarkAllRead(advertiserID string) (int64, error) {
	query := s.db.Model(&model.Signal{}).Where("is_read = ?", false)
	if advertiserID != "" {
		query = query.Where("advertiser_id = ?", advertiserID)
	}

	result := query.Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("批量标记已读失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}
