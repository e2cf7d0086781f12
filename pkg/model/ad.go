// pkg/model/ad.go
package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// Ad 广告库抓取到的单条广告，当前状态由采集任务维护
type Ad struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	CompetitorID   string    `gorm:"type:uuid;not null;index" json:"competitor_id"`
	Platform       Platform  `gorm:"type:varchar(20);not null" json:"platform"`
	IsActive       bool      `gorm:"default:true;index" json:"is_active"`
	ImpressionsMin int64     `json:"impressions_min"`
	ImpressionsMax int64     `json:"impressions_max"`
	SpendMin       float64   `gorm:"type:decimal(14,2)" json:"spend_min"`
	SpendMax       float64   `gorm:"type:decimal(14,2)" json:"spend_max"`
	Reach          int64     `json:"reach"`
	FirstSeenAt    time.Time `json:"first_seen_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (a *Ad) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// AdSnapshot 广告快照台账。原始广告没有按天的指标行，
// 每个检测周期把当前在投广告整体抄录一份，作为唯一的历史序列来源。
// 只追加，创建后永不修改或删除。
type AdSnapshot struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	AdID           string    `gorm:"type:uuid;not null;index" json:"ad_id"`
	CompetitorID   string    `gorm:"type:uuid;not null;index:idx_snapshot_competitor_time" json:"competitor_id"`
	Platform       Platform  `gorm:"type:varchar(20);not null" json:"platform"`
	IsActive       bool      `gorm:"default:true;index" json:"is_active"`
	ImpressionsMin int64     `json:"impressions_min"`
	ImpressionsMax int64     `json:"impressions_max"`
	SpendMin       float64   `gorm:"type:decimal(14,2)" json:"spend_min"`
	SpendMax       float64   `gorm:"type:decimal(14,2)" json:"spend_max"`
	Reach          int64     `json:"reach"`
	CapturedAt     time.Time `gorm:"not null;index:idx_snapshot_competitor_time,sort:desc" json:"captured_at"`
}

func (s *AdSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
