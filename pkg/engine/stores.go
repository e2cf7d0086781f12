// pkg/engine/stores.go
package engine

import "github.com/movegoo/panoramai-sub001/pkg/model"

// 引擎只依赖这几个小接口，pkg/database 提供 Postgres 实现，
// pkg/repository 提供内存实现（测试用）。

// CompetitorSource 竞品目录读取
type CompetitorSource interface {
	// ActiveCompetitors 返回启用中的竞品，advertiserID 非空时按租户过滤
	ActiveCompetitors(advertiserID string) ([]*model.Competitor, error)
}

// MetricSource 各渠道指标序列读取，一律按时间倒序返回
type MetricSource interface {
	InstagramFollowers(competitorID string) ([]Sample, error)
	InstagramEngagement(competitorID string) ([]Sample, error)
	TikTokFollowers(competitorID string) ([]Sample, error)
	YouTubeSubscribers(competitorID string) ([]Sample, error)
	YouTubeEngagement(competitorID string) ([]Sample, error)
	AppRatings(competitorID string, store model.Platform) ([]Sample, error)
}

// AdStore 广告与广告快照台账
type AdStore interface {
	// ActiveAds 返回全部当前在投广告，不按租户过滤
	ActiveAds() ([]*model.Ad, error)
	// AppendSnapshot 向台账追加一行，只追加不修改
	AppendSnapshot(snapshot *model.AdSnapshot) error
	// ActiveAdCounts 按 captured_at 聚合的在投广告数序列，时间倒序。
	// 一个周期内写入的快照共享同一个 captured_at，聚合后天然是一个周期一条采样
	ActiveAdCounts(competitorID string) ([]Sample, error)
}

// SignalStore 信号落库
type SignalStore interface {
	Save(signal *model.Signal) error
}
