// pkg/engine/thresholds.go
package engine

import (
	"math"
	"time"

	"github.com/movegoo/panoramai-sub001/pkg/model"
)

// MetricKind 指标种类，决定使用哪一组阈值
type MetricKind string

const (
	KindFollowers  MetricKind = "followers"  // 粉丝/订阅数
	KindEngagement MetricKind = "engagement" // 互动率（百分点）
	KindRating     MetricKind = "rating"     // 应用评分
	KindAdCount    MetricKind = "ad_count"   // 在投广告数
)

// CompareMode 比较方式
type CompareMode string

const (
	ComparePercent  CompareMode = "percent"  // 按百分比变化比较
	CompareAbsolute CompareMode = "absolute" // 按绝对差值比较
)

// Tier 单个指标种类的阈值档位
type Tier struct {
	Mode     CompareMode
	Warning  float64
	Critical float64
	// MinValue 噪声保护下限：两次采样都低于它时忽略变化，
	// 小号/小投放量的百分比波动没有参考意义。0 表示不设下限。
	MinValue float64
}

// Thresholds 阈值配置表。显式注入、创建后不再修改，
// 便于按部署调参，也让测试不需要改全局状态。
type Thresholds struct {
	MinGap time.Duration
	Tiers  map[MetricKind]Tier
}

// DefaultThresholds 默认阈值表
func DefaultThresholds() *Thresholds {
	return &Thresholds{
		MinGap: 6 * time.Hour,
		Tiers: map[MetricKind]Tier{
			KindFollowers:  {Mode: ComparePercent, Warning: 5, Critical: 15, MinValue: 100},
			KindEngagement: {Mode: CompareAbsolute, Warning: 1.0, Critical: 3.0},
			KindRating:     {Mode: CompareAbsolute, Warning: 0.2, Critical: 0.5},
			KindAdCount:    {Mode: ComparePercent, Warning: 30, Critical: 100, MinValue: 3},
		},
	}
}

// Tier 取指定指标种类的档位，未配置的种类返回零值档位（永不触发）
func (t *Thresholds) Tier(kind MetricKind) Tier {
	return t.Tiers[kind]
}

// Classify 把变化量映射到严重程度。先比 critical 再比 warning，
// 都未达到返回 SeverityNone（不产生信号）。
func (t *Thresholds) Classify(kind MetricKind, delta float64) model.SignalSeverity {
	tier, ok := t.Tiers[kind]
	if !ok {
		return model.SeverityNone
	}

	abs := math.Abs(delta)
	if tier.Critical > 0 && abs >= tier.Critical {
		return model.SeverityCritical
	}
	if tier.Warning > 0 && abs >= tier.Warning {
		return model.SeverityWarning
	}
	return model.SeverityNone
}
