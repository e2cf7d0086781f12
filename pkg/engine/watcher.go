// pkg/engine/watcher.go
package engine

import (
	"fmt"
	"time"

	"github.com/movegoo/panoramai-sub001/pkg/model"
)

// SampleAccessor 指标序列访问能力，返回按时间倒序的采样
type SampleAccessor func(competitorID string) ([]Sample, error)

// Watcher 通用指标观察器。五个检测家族（Instagram、TikTok、YouTube、
// 应用评分、广告投放）都是它的实例，只在访问器、指标种类和比较方式上
// 不同，编排器对它们一视同仁。
type Watcher struct {
	Type       model.SignalType
	Platform   model.Platform
	Kind       MetricKind
	MetricName string
	Label      string // 标题里用的中文指标名
	// Enabled 判断竞品是否配置了该渠道，nil 表示该家族不需要渠道标识
	Enabled func(c *model.Competitor) bool
	Samples SampleAccessor
}

// Detect 对单个竞品跑一轮检测。未触发阈值、历史不足、渠道未配置、
// 噪声保护、零基线都返回 (nil, nil) 静默跳过；只有读取失败返回错误。
func (w *Watcher) Detect(c *model.Competitor, th *Thresholds) (*model.Signal, error) {
	if w.Enabled != nil && !w.Enabled(c) {
		return nil, nil
	}

	samples, err := w.Samples(c.ID)
	if err != nil {
		return nil, fmt.Errorf("读取 %s/%s 采样失败: %w", w.Platform, w.MetricName, err)
	}

	latest, previous := SelectPair(samples, th.MinGap)
	if latest == nil || previous == nil {
		// 历史不足，不是零变化
		return nil, nil
	}

	tier := w.tier(th)
	if tier.MinValue > 0 && latest.Value < tier.MinValue && previous.Value < tier.MinValue {
		// 噪声保护：小基数账号的百分比波动不具参考意义
		return nil, nil
	}
	if previous.Value == 0 {
		// 零基线变化定义为 0，任何比较方式下都不会高于 none
		return nil, nil
	}

	changePct := PercentChange(latest.Value, previous.Value)
	delta := changePct
	if tier.Mode == CompareAbsolute {
		delta = AbsoluteChange(latest.Value, previous.Value)
	}

	severity := th.Classify(w.Kind, delta)
	if severity == model.SeverityNone {
		return nil, nil
	}

	return w.buildSignal(c, severity, latest, previous, changePct, delta, tier.Mode), nil
}

func (w *Watcher) tier(th *Thresholds) Tier {
	return th.Tier(w.Kind)
}

// buildSignal 组装信号。AdvertiserID/IsBrand 在此刻从竞品冗余快照，
// 不做实时关联。
func (w *Watcher) buildSignal(c *model.Competitor, severity model.SignalSeverity,
	latest, previous *Sample, changePct, delta float64, mode CompareMode) *model.Signal {

	var description string
	if mode == CompareAbsolute {
		description = fmt.Sprintf("%s 从 %.2f 变为 %.2f，变化 %+.2f 点",
			w.Label, previous.Value, latest.Value, delta)
	} else {
		description = fmt.Sprintf("%s 从 %.0f 变为 %.0f，变化 %+.1f%%",
			w.Label, previous.Value, latest.Value, changePct)
	}

	return &model.Signal{
		CompetitorID:  c.ID,
		AdvertiserID:  c.AdvertiserID,
		IsBrand:       c.IsBrand,
		Type:          w.Type,
		Severity:      severity,
		Platform:      w.Platform,
		Title:         fmt.Sprintf("%s %s异动", c.Name, w.Label),
		Description:   description,
		MetricName:    w.MetricName,
		PreviousValue: previous.Value,
		CurrentValue:  latest.Value,
		ChangePercent: changePct,
		DetectedAt:    time.Now(),
	}
}

// BuildWatchers 构造全部观察器。广告投放家族通过快照台账聚合取样，
// 满足与指标表完全相同的访问器契约，编排器无需特判。
func BuildWatchers(metrics MetricSource, ads AdStore) []Watcher {
	return []Watcher{
		{
			Type: model.SignalFollowerChange, Platform: model.PlatformInstagram,
			Kind: KindFollowers, MetricName: "followers", Label: "Instagram 粉丝数",
			Enabled: func(c *model.Competitor) bool { return c.InstagramHandle != "" },
			Samples: metrics.InstagramFollowers,
		},
		{
			Type: model.SignalEngagementChange, Platform: model.PlatformInstagram,
			Kind: KindEngagement, MetricName: "engagement_rate", Label: "Instagram 互动率",
			Enabled: func(c *model.Competitor) bool { return c.InstagramHandle != "" },
			Samples: metrics.InstagramEngagement,
		},
		{
			Type: model.SignalFollowerChange, Platform: model.PlatformTikTok,
			Kind: KindFollowers, MetricName: "followers", Label: "TikTok 粉丝数",
			Enabled: func(c *model.Competitor) bool { return c.TikTokHandle != "" },
			Samples: metrics.TikTokFollowers,
		},
		{
			Type: model.SignalFollowerChange, Platform: model.PlatformYouTube,
			Kind: KindFollowers, MetricName: "subscribers", Label: "YouTube 订阅数",
			Enabled: func(c *model.Competitor) bool { return c.YouTubeChannel != "" },
			Samples: metrics.YouTubeSubscribers,
		},
		{
			Type: model.SignalEngagementChange, Platform: model.PlatformYouTube,
			Kind: KindEngagement, MetricName: "engagement_rate", Label: "YouTube 互动率",
			Enabled: func(c *model.Competitor) bool { return c.YouTubeChannel != "" },
			Samples: metrics.YouTubeEngagement,
		},
		{
			Type: model.SignalRatingChange, Platform: model.PlatformPlayStore,
			Kind: KindRating, MetricName: "rating", Label: "Play 商店评分",
			Enabled: func(c *model.Competitor) bool { return c.PlayStoreID != "" },
			Samples: func(id string) ([]Sample, error) {
				return metrics.AppRatings(id, model.PlatformPlayStore)
			},
		},
		{
			Type: model.SignalRatingChange, Platform: model.PlatformAppStore,
			Kind: KindRating, MetricName: "rating", Label: "App Store 评分",
			Enabled: func(c *model.Competitor) bool { return c.AppStoreID != "" },
			Samples: func(id string) ([]Sample, error) {
				return metrics.AppRatings(id, model.PlatformAppStore)
			},
		},
		{
			Type: model.SignalAdActivityChange, Platform: model.PlatformMetaAds,
			Kind: KindAdCount, MetricName: "active_ads", Label: "在投广告数",
			Samples: ads.ActiveAdCounts,
		},
	}
}
