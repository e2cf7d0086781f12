// pkg/model/signal.go
package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// SignalType 信号类型枚举
type SignalType string

const (
	SignalFollowerChange   SignalType = "follower_change"
	SignalEngagementChange SignalType = "engagement_change"
	SignalRatingChange     SignalType = "rating_change"
	SignalAdActivityChange SignalType = "ad_activity_change"
)

// SignalSeverity 信号严重程度
type SignalSeverity string

const (
	SeverityCritical SignalSeverity = "critical"
	SeverityWarning  SignalSeverity = "warning"
	// SeverityNone 表示变化未达到告警阈值，此时不落库
	SeverityNone SignalSeverity = "none"
)

// Signal 竞品指标异动信号。创建后唯一允许的变更是 IsRead 翻转。
type Signal struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	CompetitorID string `gorm:"type:uuid;not null;index" json:"competitor_id"`
	// AdvertiserID/IsBrand 在创建时从竞品冗余快照，保留历史准确性，
	// 后续品牌归属变化不回溯修改
	AdvertiserID string `gorm:"type:uuid;not null;index" json:"advertiser_id"`
	IsBrand      bool   `gorm:"default:false" json:"is_brand"`

	Type     SignalType     `gorm:"type:varchar(30);not null;index" json:"signal_type"`
	Severity SignalSeverity `gorm:"type:varchar(20);not null;index" json:"severity"`
	Platform Platform       `gorm:"type:varchar(20);not null;index" json:"platform"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	MetricName    string  `gorm:"type:varchar(40);not null" json:"metric_name"`
	PreviousValue float64 `gorm:"type:decimal(14,4)" json:"previous_value"`
	CurrentValue  float64 `gorm:"type:decimal(14,4)" json:"current_value"`
	ChangePercent float64 `gorm:"type:decimal(10,4)" json:"change_percent"`

	IsRead     bool      `gorm:"default:false;index" json:"is_read"`
	DetectedAt time.Time `gorm:"index:idx_signal_detected_at" json:"detected_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 关联
	Competitor Competitor `gorm:"foreignKey:CompetitorID" json:"competitor,omitempty"`
}

func (s *Signal) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
