// pkg/engine/thresholds_test.go
package engine_test

import (
	"testing"

	"github.com/movegoo/panoramai-sub001/pkg/engine"
	"github.com/movegoo/panoramai-sub001/pkg/model"
)

func TestClassify(t *testing.T) {
	th := engine.DefaultThresholds()

	tests := []struct {
		name  string
		kind  engine.MetricKind
		delta float64
		want  model.SignalSeverity
	}{
		{"粉丝数达到critical", engine.KindFollowers, 16.0, model.SeverityCritical},
		{"粉丝数critical边界", engine.KindFollowers, 15.0, model.SeverityCritical},
		{"粉丝数warning区间", engine.KindFollowers, 5.0, model.SeverityWarning},
		{"粉丝数低于warning", engine.KindFollowers, 4.9, model.SeverityNone},
		{"粉丝数下跌取绝对值", engine.KindFollowers, -20.0, model.SeverityCritical},
		{"互动率绝对差值critical", engine.KindEngagement, 3.0, model.SeverityCritical},
		{"互动率绝对差值warning", engine.KindEngagement, -1.5, model.SeverityWarning},
		{"互动率未达阈值", engine.KindEngagement, 0.9, model.SeverityNone},
		{"评分warning边界不升级critical", engine.KindRating, -0.2, model.SeverityWarning},
		{"评分critical", engine.KindRating, 0.5, model.SeverityCritical},
		{"广告数critical", engine.KindAdCount, 120.0, model.SeverityCritical},
		{"广告数warning", engine.KindAdCount, 30.0, model.SeverityWarning},
		{"广告数未达阈值", engine.KindAdCount, 29.9, model.SeverityNone},
		{"未知指标种类永不触发", engine.MetricKind("unknown"), 999, model.SeverityNone},
		{"零变化", engine.KindFollowers, 0, model.SeverityNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := th.Classify(tt.kind, tt.delta); got != tt.want {
				t.Errorf("Classify(%s, %v) = %s, want %s", tt.kind, tt.delta, got, tt.want)
			}
		})
	}
}

// 每个指标种类都必须满足 critical >= warning，分级才是单调的
func TestTiersMonotonic(t *testing.T) {
	th := engine.DefaultThresholds()
	for kind, tier := range th.Tiers {
		if tier.Critical < tier.Warning {
			t.Errorf("指标 %s: critical(%v) < warning(%v)", kind, tier.Critical, tier.Warning)
		}
	}
}

func TestThresholdsFromConfig(t *testing.T) {
	cfg := newTestConfig()
	cfg.Detection.MinGapHours = 12

	th := engine.ThresholdsFromConfig(cfg)
	if th.MinGap.Hours() != 12 {
		t.Errorf("MinGap = %v, want 12h", th.MinGap)
	}

	// 配置里覆盖的档位生效
	tier := th.Tier(engine.KindFollowers)
	if tier.Critical != 25 {
		t.Errorf("followers critical = %v, want 25", tier.Critical)
	}

	// 未覆盖的档位沿用默认
	if got := th.Tier(engine.KindRating); got.Warning != 0.2 {
		t.Errorf("rating warning = %v, want 0.2", got.Warning)
	}
}
