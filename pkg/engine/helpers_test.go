// pkg/engine/helpers_test.go
package engine_test

import (
	"time"

	"github.com/movegoo/panoramai-sub001/pkg/config"
	"github.com/movegoo/panoramai-sub001/pkg/engine"
	"github.com/movegoo/panoramai-sub001/pkg/model"
	"github.com/movegoo/panoramai-sub001/pkg/repository"
)

// newTestConfig 覆盖 followers 档位的最小配置
func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Detection.Thresholds = map[string]config.ThresholdTier{
		"followers": {Mode: "percent", Warning: 10, Critical: 25, MinValue: 100},
	}
	return cfg
}

// newCompetitor 全渠道配置齐全的测试竞品
func newCompetitor(store *repository.MemoryStore, name string) *model.Competitor {
	c := &model.Competitor{
		AdvertiserID:    "adv-1",
		Name:            name,
		IsActive:        true,
		InstagramHandle: name + "_ig",
		TikTokHandle:    name + "_tt",
		YouTubeChannel:  name + "_yt",
		PlayStoreID:     "com." + name,
		AppStoreID:      "id-" + name,
	}
	store.AddCompetitor(c)
	return c
}

// pair 生成一对满足最小间隔的采样：latest 为现在，previous 为 10 天前
func pair(current, previous float64) []engine.Sample {
	now := time.Now()
	return []engine.Sample{
		{Value: current, RecordedAt: now},
		{Value: previous, RecordedAt: now.Add(-10 * 24 * time.Hour)},
	}
}
