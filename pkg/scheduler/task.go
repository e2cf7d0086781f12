// pkg/scheduler/task.go
package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/movegoo/panoramai-sub001/pkg/engine"
	"github.com/movegoo/panoramai-sub001/pkg/monitor"
)

// Scheduler 任务调度器：夜间全量检测 + 周期组件巡检。
// “一个周期跑一次检测”只由这里的排程保证，引擎内部不做互斥，
// 与手动触发并发时按至少一次投递处理。
type Scheduler struct {
	cron         *cron.Cron
	orchestrator *engine.Orchestrator
	monitor      *monitor.Monitor
	onDetected   func(*engine.DetectionResult)
}

// NewScheduler 创建任务调度器。onDetected 在每轮检测完成后回调
// （发布信号到消息流等），可以为 nil。
func NewScheduler(orchestrator *engine.Orchestrator, m *monitor.Monitor, onDetected func(*engine.DetectionResult)) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithSeconds()),
		orchestrator: orchestrator,
		monitor:      m,
		onDetected:   onDetected,
	}
}

// Start 启动调度器，schedule 为六字段cron表达式
func (s *Scheduler) Start(schedule string) error {
	// 夜间全量检测
	if _, err := s.cron.AddFunc(schedule, s.runDetection); err != nil {
		return err
	}

	// 每5分钟巡检组件健康
	if _, err := s.cron.AddFunc("@every 5m", s.checkHealth); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("调度器已启动，检测排程: %s", schedule)
	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// runDetection 跑一轮全量检测（不分租户）
func (s *Scheduler) runDetection() {
	log.Println("开始定时全量检测...")

	result, err := s.orchestrator.DetectAll("")
	if err != nil {
		log.Printf("定时检测失败: %v", err)
		return
	}

	log.Printf("定时检测完成: 信号=%d, 快照=%d", len(result.Signals), result.SnapshotCount)

	if s.onDetected != nil {
		s.onDetected(result)
	}
}

// checkHealth 巡检组件健康状态
func (s *Scheduler) checkHealth() {
	if s.monitor == nil {
		return
	}
	s.monitor.CheckAll()
}
