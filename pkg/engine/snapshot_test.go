// pkg/engine/snapshot_test.go
package engine_test

import (
	"testing"
	"time"

	"github.com/movegoo/panoramai-sub001/pkg/engine"
	"github.com/movegoo/panoramai-sub001/pkg/model"
	"github.com/movegoo/panoramai-sub001/pkg/repository"
)

func addAd(store *repository.MemoryStore, competitorID string, active bool) {
	store.AddAd(&model.Ad{
		CompetitorID:   competitorID,
		Platform:       model.PlatformMetaAds,
		IsActive:       active,
		ImpressionsMin: 1000,
		ImpressionsMax: 5000,
		SpendMin:       100,
		SpendMax:       500,
		Reach:          20000,
	})
}

// 快照是纯追加的台账：连续调两次就是两份，各有自己的captured_at
func TestSnapshotWriterAppendOnly(t *testing.T) {
	store := repository.NewMemoryStore()
	for i := 0; i < 3; i++ {
		addAd(store, "comp-1", true)
	}
	addAd(store, "comp-1", false) // 停投的不抄录

	writer := engine.NewSnapshotWriter(store)

	first, err := writer.Capture()
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if first != 3 {
		t.Errorf("第一次写入 %d 行, want 3", first)
	}

	time.Sleep(2 * time.Millisecond) // 保证两个周期captured_at不同

	second, err := writer.Capture()
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if second != 3 {
		t.Errorf("第二次写入 %d 行, want 3", second)
	}

	snapshots := store.Snapshots()
	if len(snapshots) != 6 {
		t.Fatalf("台账共 %d 行, want 6", len(snapshots))
	}

	// 同一周期共享captured_at，两个周期互不相同
	captures := make(map[time.Time]int)
	for _, s := range snapshots {
		captures[s.CapturedAt]++
		if s.SpendMin != 100 || s.Reach != 20000 {
			t.Errorf("快照未抄录广告字段: %+v", s)
		}
	}
	if len(captures) != 2 {
		t.Errorf("captured_at 去重后 %d 个, want 2", len(captures))
	}
	for at, n := range captures {
		if n != 3 {
			t.Errorf("周期 %v 有 %d 行, want 3", at, n)
		}
	}
}

// 广告数序列按captured_at聚合，走与指标表相同的观察器管线：
// 10 -> 22 (+120%) 应产出critical信号
func TestAdActivityWatcher(t *testing.T) {
	store := repository.NewMemoryStore()
	c := newCompetitor(store, "acme")

	now := time.Now()
	previousCycle := now.Add(-24 * time.Hour)
	for i := 0; i < 10; i++ {
		store.AppendSnapshot(&model.AdSnapshot{
			CompetitorID: c.ID, IsActive: true, CapturedAt: previousCycle,
		})
	}
	for i := 0; i < 22; i++ {
		store.AppendSnapshot(&model.AdSnapshot{
			CompetitorID: c.ID, IsActive: true, CapturedAt: now,
		})
	}

	w := findWatcher(engine.BuildWatchers(store, store), model.PlatformMetaAds, "active_ads")
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
	if signal.PreviousValue != 10 || signal.CurrentValue != 22 {
		t.Errorf("values = %v -> %v, want 10 -> 22", signal.PreviousValue, signal.CurrentValue)
	}
	if signal.Type != model.SignalAdActivityChange {
		t.Errorf("type = %s, want ad_activity_change", signal.Type)
	}
}

// 在投广告数低于噪声下限（min 3）时不产出信号
func TestAdActivityNoiseGuard(t *testing.T) {
	store := repository.NewMemoryStore()
	c := newCompetitor(store, "tiny")

	now := time.Now()
	store.AppendSnapshot(&model.AdSnapshot{CompetitorID: c.ID, IsActive: true, CapturedAt: now.Add(-24 * time.Hour)})
	store.AppendSnapshot(&model.AdSnapshot{CompetitorID: c.ID, IsActive: true, CapturedAt: now})
	store.AppendSnapshot(&model.AdSnapshot{CompetitorID: c.ID, IsActive: true, CapturedAt: now})

	w := findWatcher(engine.BuildWatchers(store, store), model.PlatformMetaAds, "active_ads")
	signal, err := w.Detect(c, engine.DefaultThresholds())
	if err != nil || signal != nil {
		t.Errorf("小投放量不应产出信号, signal=%v err=%v", signal, err)
	}
}
