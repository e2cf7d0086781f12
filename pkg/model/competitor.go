// pkg/model/competitor.go
package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// Platform 渠道平台枚举
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformPlayStore Platform = "play_store"
	PlatformAppStore  Platform = "app_store"
	PlatformMetaAds   Platform = "meta_ads"
)

// Competitor 监控的竞品（或自有品牌）
type Competitor struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	AdvertiserID string `gorm:"type:uuid;not null;index" json:"advertiser_id"` // 所属租户
	Name         string `gorm:"not null" json:"name"`
	IsBrand      bool   `gorm:"default:false" json:"is_brand"` // 是否为租户自有品牌
	IsActive     bool   `gorm:"default:true;index" json:"is_active"`

	// 各渠道标识，为空表示该渠道未配置，检测时静默跳过
	InstagramHandle string `gorm:"type:varchar(100)" json:"instagram_handle"`
	TikTokHandle    string `gorm:"type:varchar(100)" json:"tiktok_handle"`
	YouTubeChannel  string `gorm:"type:varchar(100)" json:"youtube_channel"`
	PlayStoreID     string `gorm:"type:varchar(200)" json:"play_store_id"`
	AppStoreID      string `gorm:"type:varchar(200)" json:"app_store_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Signals []Signal `gorm:"foreignKey:CompetitorID" json:"signals,omitempty"`
}

func (c *Competitor) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
