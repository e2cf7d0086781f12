// pkg/engine/orchestrator.go
package engine

import (
	"fmt"
	"log"

	"github.com/movegoo/panoramai-sub001/pkg/model"
)

// DetectionResult 一次编排运行的汇总
type DetectionResult struct {
	Signals       []*model.Signal `json:"signals"`
	SnapshotCount int             `json:"snapshots"`
}

// Orchestrator 检测编排器：先写广告快照，再对每个竞品依次跑全部
// 观察器，收集新产生的信号。单个竞品×指标的失败只记日志，
// 不影响同一轮里其余指标和竞品。
type Orchestrator struct {
	competitors CompetitorSource
	signals     SignalStore
	snapshots   *SnapshotWriter
	watchers    []Watcher
	thresholds  *Thresholds
}

// NewOrchestrator 创建编排器
func NewOrchestrator(
	competitors CompetitorSource,
	metrics MetricSource,
	ads AdStore,
	signals SignalStore,
	thresholds *Thresholds,
) *Orchestrator {
	if thresholds == nil {
		thresholds = DefaultThresholds()
	}
	return &Orchestrator{
		competitors: competitors,
		signals:     signals,
		snapshots:   NewSnapshotWriter(ads),
		watchers:    BuildWatchers(metrics, ads),
		thresholds:  thresholds,
	}
}

// DetectAll 跑一轮全量检测。advertiserID 非空时只检测该租户的竞品。
// 运行内部串行同步；两次运行并发触发时可能对同一变化各发一条信号，
// 按至少一次投递处理，不加互斥。
func (o *Orchestrator) DetectAll(advertiserID string) (*DetectionResult, error) {
	competitors, err := o.competitors.ActiveCompetitors(advertiserID)
	if err != nil {
		return nil, fmt.Errorf("加载竞品列表失败: %w", err)
	}

	result := &DetectionResult{Signals: make([]*model.Signal, 0)}

	// 快照写入不分租户：台账是广告数序列的唯一历史来源
	count, err := o.snapshots.Capture()
	if err != nil {
		log.Printf("写入广告快照失败: %v", err)
	}
	result.SnapshotCount = count

	for _, competitor := range competitors {
		for i := range o.watchers {
			watcher := &o.watchers[i]

			signal, err := watcher.Detect(competitor, o.thresholds)
			if err != nil {
				log.Printf("检测失败: 竞品=%s, 指标=%s/%s, %v",
					competitor.Name, watcher.Platform, watcher.MetricName, err)
				continue
			}
			if signal == nil {
				continue
			}

			if err := o.signals.Save(signal); err != nil {
				log.Printf("保存信号失败: 竞品=%s, 指标=%s, %v",
					competitor.Name, watcher.MetricName, err)
				continue
			}

			log.Printf("检测到异动: 竞品=%s, 平台=%s, 指标=%s, 程度=%s, 变化=%.2f%%",
				competitor.Name, signal.Platform, signal.MetricName,
				signal.Severity, signal.ChangePercent)
			result.Signals = append(result.Signals, signal)
		}
	}

	return result, nil
}
