// pkg/engine/selector_test.go
package engine_test

import (
	"testing"
	"time"

	"github.com/movegoo/panoramai-sub001/pkg/engine"
)

func TestSelectPair(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	minGap := 6 * time.Hour

	t.Run("空序列", func(t *testing.T) {
		latest, previous := engine.SelectPair(nil, minGap)
		if latest != nil || previous != nil {
			t.Fatalf("空序列应返回 (nil, nil)")
		}
	})

	t.Run("只有一条采样历史不足", func(t *testing.T) {
		latest, previous := engine.SelectPair([]engine.Sample{{Value: 1, RecordedAt: now}}, minGap)
		if latest == nil || previous != nil {
			t.Fatalf("应返回 (latest, nil)")
		}
	})

	t.Run("跳过间隔内的采样取第一条够旧的", func(t *testing.T) {
		samples := []engine.Sample{
			{Value: 100, RecordedAt: now},
			{Value: 99, RecordedAt: now.Add(-1 * time.Hour)},  // 采集抖动，间隔不足
			{Value: 98, RecordedAt: now.Add(-3 * time.Hour)},  // 同上
			{Value: 90, RecordedAt: now.Add(-26 * time.Hour)}, // 第一条合格的
			{Value: 80, RecordedAt: now.Add(-50 * time.Hour)},
		}
		latest, previous := engine.SelectPair(samples, minGap)
		if latest.Value != 100 {
			t.Errorf("latest = %v, want 100", latest.Value)
		}
		if previous == nil || previous.Value != 90 {
			t.Errorf("previous = %+v, want 90", previous)
		}
	})

	t.Run("间隔恰好等于minGap不合格", func(t *testing.T) {
		samples := []engine.Sample{
			{Value: 100, RecordedAt: now},
			{Value: 90, RecordedAt: now.Add(-minGap)},
		}
		_, previous := engine.SelectPair(samples, minGap)
		if previous != nil {
			t.Errorf("恰好等于最小间隔的采样不应被选中")
		}
	})

	t.Run("全部采样都太近", func(t *testing.T) {
		samples := []engine.Sample{
			{Value: 100, RecordedAt: now},
			{Value: 99, RecordedAt: now.Add(-2 * time.Hour)},
			{Value: 98, RecordedAt: now.Add(-4 * time.Hour)},
		}
		latest, previous := engine.SelectPair(samples, minGap)
		if latest == nil || previous != nil {
			t.Errorf("应返回 (latest, nil)")
		}
	})
}
