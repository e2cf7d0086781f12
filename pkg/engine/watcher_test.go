// pkg/engine/watcher_test.go
package engine_test

import (
	"math"
	"testing"

	"github.com/movegoo/panoramai-sub001/pkg/engine"
	"github.com/movegoo/panoramai-sub001/pkg/model"
	"github.com/movegoo/panoramai-sub001/pkg/repository"
)

func findWatcher(watchers []engine.Watcher, platform model.Platform, metric string) *engine.Watcher {
	for i := range watchers {
		if watchers[i].Platform == platform && watchers[i].MetricName == metric {
			return &watchers[i]
		}
	}
	return nil
}

// Instagram 粉丝 100000 -> 116000（间隔10天）应产出一条critical信号
func TestWatcherFollowerCritical(t *testing.T) {
	store := repository.NewMemoryStore()
	c := newCompetitor(store, "acme")
	store.AddSamples(c.ID, "instagram_followers", pair(116000, 100000))

	w := findWatcher(engine.BuildWatchers(store, store), model.PlatformInstagram, "followers")
	signal, err := w.Detect(c, engine.DefaultThresholds())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if signal == nil {
		t.Fatal("应产出信号")
	}

	if signal.Severity != model.SeverityCritical {
		t.Errorf("severity = %s, want critical", signal.Severity)
	}
	if signal.MetricName != "followers" {
		t.Errorf("metric_name = %s, want followers", signal.MetricName)
	}
	if signal.PreviousValue != 100000 || signal.CurrentValue != 116000 {
		t.Errorf("values = %v -> %v, want 100000 -> 116000", signal.PreviousValue, signal.CurrentValue)
	}
	if math.Abs(signal.ChangePercent-16.0) > 1e-9 {
		t.Errorf("change_percent = %v, want 16.0", signal.ChangePercent)
	}
	// 冗余字段在创建时从竞品快照
	if signal.AdvertiserID != c.AdvertiserID || signal.IsBrand != c.IsBrand {
		t.Errorf("advertiser/is_brand 未从竞品冗余")
	}
	if signal.Type != model.SignalFollowerChange || signal.Platform != model.PlatformInstagram {
		t.Errorf("type/platform 不正确: %s/%s", signal.Type, signal.Platform)
	}
	if signal.Title == "" || signal.Description == "" {
		t.Errorf("标题/描述不应为空")
	}
}

// 评分 4.5 -> 4.3 按绝对差值落在warning边界，不升级critical
func TestWatcherRatingWarningBoundary(t *testing.T) {
	store := repository.NewMemoryStore()
	c := newCompetitor(store, "acme")
	store.AddSamples(c.ID, "rating_play_store", pair(4.3, 4.5))

	w := findWatcher(engine.BuildWatchers(store, store), model.PlatformPlayStore, "rating")
	signal, err := w.Detect(c, engine.DefaultThresholds())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if signal == nil {
		t.Fatal("应产出信号")
	}
	if signal.Severity != model.SeverityWarning {
		t.Errorf("severity = %s, want warning", signal.Severity)
	}
	// change_percent 仍按百分比记录，方向与变化一致
	if signal.ChangePercent >= 0 {
		t.Errorf("change_percent = %v, 下跌应为负", signal.ChangePercent)
	}
}

// 两次采样都低于噪声保护下限时忽略，哪怕百分比变化很大
func TestWatcherNoiseGuard(t *testing.T) {
	store := repository.NewMemoryStore()
	c := newCompetitor(store, "tiny")
	store.AddSamples(c.ID, "instagram_followers", pair(80, 50)) // +60% 但都 < 100

	w := findWatcher(engine.BuildWatchers(store, store), model.PlatformInstagram, "followers")
	signal, err := w.Detect(c, engine.DefaultThresholds())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if signal != nil {
		t.Errorf("噪声保护下不应产出信号, got %+v", signal)
	}
}

// 渠道未配置时静默跳过
func TestWatcherChannelNotConfigured(t *testing.T) {
	store := repository.NewMemoryStore()
	c := &model.Competitor{AdvertiserID: "adv-1", Name: "noig", IsActive: true}
	store.AddCompetitor(c)
	store.AddSamples(c.ID, "instagram_followers", pair(200000, 100000))

	w := findWatcher(engine.BuildWatchers(store, store), model.PlatformInstagram, "followers")
	signal, err := w.Detect(c, engine.DefaultThresholds())
	if err != nil || signal != nil {
		t.Errorf("未配置渠道应静默跳过, signal=%v err=%v", signal, err)
	}
}

// 历史不足（没有合格的previous）时静默跳过
func TestWatcherInsufficientHistory(t *testing.T) {
	store := repository.NewMemoryStore()
	c := newCompetitor(store, "acme")
	store.AddSamples(c.ID, "tiktok_followers", pair(200000, 100000)[:1])

	w := findWatcher(engine.BuildWatchers(store, store), model.PlatformTikTok, "followers")
	signal, err := w.Detect(c, engine.DefaultThresholds())
	if err != nil || signal != nil {
		t.Errorf("历史不足应静默跳过, signal=%v err=%v", signal, err)
	}
}

// 零基线：previous 为 0 时变化记 0，任何比较方式都不触发
func TestWatcherZeroBaseline(t *testing.T) {
	store := repository.NewMemoryStore()
	c := newCompetitor(store, "acme")
	store.AddSamples(c.ID, "youtube_engagement", pair(5.0, 0))

	w := findWatcher(engine.BuildWatchers(store, store), model.PlatformYouTube, "engagement_rate")
	signal, err := w.Detect(c, engine.DefaultThresholds())
	if err != nil || signal != nil {
		t.Errorf("零基线应静默跳过, signal=%v err=%v", signal, err)
	}
}
