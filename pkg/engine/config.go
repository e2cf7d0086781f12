// pkg/engine/config.go
package engine

import (
	"time"

	"github.com/movegoo/panoramai-sub001/pkg/config"
)

// ThresholdsFromConfig 把配置文件里的阈值表转成引擎配置。
// 未出现在配置里的指标种类沿用默认档位，方便只调个别阈值。
func ThresholdsFromConfig(cfg *config.Config) *Thresholds {
	th := DefaultThresholds()

	if cfg.Detection.MinGapHours > 0 {
		th.MinGap = time.Duration(cfg.Detection.MinGapHours) * time.Hour
	}

	for name, tier := range cfg.Detection.Thresholds {
		mode := ComparePercent
		if tier.Mode == string(CompareAbsolute) {
			mode = CompareAbsolute
		}
		th.Tiers[MetricKind(name)] = Tier{
			Mode:     mode,
			Warning:  tier.Warning,
			Critical: tier.Critical,
			MinValue: tier.MinValue,
		}
	}

	return th
}
