// pkg/engine/snapshot.go
package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/movegoo/panoramai-sub001/pkg/model"
)

// SnapshotWriter 广告快照写入器。每个检测周期把全部在投广告
// 抄录进快照台账，captured_at 统一取本次调用时刻，
// 这样广告数序列按 captured_at 聚合后一个周期恰好一条采样。
type SnapshotWriter struct {
	ads AdStore
}

// NewSnapshotWriter 创建快照写入器
func NewSnapshotWriter(ads AdStore) *SnapshotWriter {
	return &SnapshotWriter{ads: ads}
}

// Capture 抄录一轮快照，返回写入的行数。
// 纯追加：同一逻辑周期调两次就是两份台账，“一周期一次”由外部调度保证。
// 单行写入失败只记日志不中断，不影响其余行。
func (w *SnapshotWriter) Capture() (int, error) {
	ads, err := w.ads.ActiveAds()
	if err != nil {
		return 0, fmt.Errorf("读取在投广告失败: %w", err)
	}

	now := time.Now()
	written := 0
	for _, ad := range ads {
		snapshot := &model.AdSnapshot{
			AdID:           ad.ID,
			CompetitorID:   ad.CompetitorID,
			Platform:       ad.Platform,
			IsActive:       ad.IsActive,
			ImpressionsMin: ad.ImpressionsMin,
			ImpressionsMax: ad.ImpressionsMax,
			SpendMin:       ad.SpendMin,
			SpendMax:       ad.SpendMax,
			Reach:          ad.Reach,
			CapturedAt:     now,
		}
		if err := w.ads.AppendSnapshot(snapshot); err != nil {
			log.Printf("写入广告快照失败: 广告=%s, %v", ad.ID, err)
			continue
		}
		written++
	}

	return written, nil
}
