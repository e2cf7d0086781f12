// pkg/model/metric.go
package model

import "time"

// 指标采样行由外部采集任务写入，引擎只读。
// 采集任务调度不规律，同一天可能出现多条采样。

// InstagramMetric Instagram指标采样
type InstagramMetric struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CompetitorID   string    `gorm:"type:uuid;not null;index:idx_ig_competitor_time" json:"competitor_id"`
	Followers      float64   `gorm:"type:decimal(14,2)" json:"followers"`
	EngagementRate float64   `gorm:"type:decimal(8,4)" json:"engagement_rate"` // 百分点
	RecordedAt     time.Time `gorm:"not null;index:idx_ig_competitor_time,sort:desc" json:"recorded_at"`
}

// TikTokMetric TikTok指标采样
type TikTokMetric struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CompetitorID   string    `gorm:"type:uuid;not null;index:idx_tt_competitor_time" json:"competitor_id"`
	Followers      float64   `gorm:"type:decimal(14,2)" json:"followers"`
	EngagementRate float64   `gorm:"type:decimal(8,4)" json:"engagement_rate"`
	RecordedAt     time.Time `gorm:"not null;index:idx_tt_competitor_time,sort:desc" json:"recorded_at"`
}

// YouTubeMetric YouTube指标采样
type YouTubeMetric struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CompetitorID   string    `gorm:"type:uuid;not null;index:idx_yt_competitor_time" json:"competitor_id"`
	Subscribers    float64   `gorm:"type:decimal(14,2)" json:"subscribers"`
	EngagementRate float64   `gorm:"type:decimal(8,4)" json:"engagement_rate"`
	RecordedAt     time.Time `gorm:"not null;index:idx_yt_competitor_time,sort:desc" json:"recorded_at"`
}

// AppRatingMetric 应用商店评分采样，每个商店各自独立
type AppRatingMetric struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CompetitorID string    `gorm:"type:uuid;not null;index:idx_rating_competitor_time" json:"competitor_id"`
	Store        Platform  `gorm:"type:varchar(20);not null" json:"store"` // play_store / app_store
	Rating       float64   `gorm:"type:decimal(4,2)" json:"rating"`
	RatingCount  int64     `json:"rating_count"`
	RecordedAt   time.Time `gorm:"not null;index:idx_rating_competitor_time,sort:desc" json:"recorded_at"`
}
