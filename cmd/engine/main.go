package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/movegoo/panoramai-sub001/pkg/config"
	"github.com/movegoo/panoramai-sub001/pkg/database"
	"github.com/movegoo/panoramai-sub001/pkg/engine"
	"github.com/movegoo/panoramai-sub001/pkg/messaging"
	"github.com/movegoo/panoramai-sub001/pkg/monitor"
	"github.com/movegoo/panoramai-sub001/pkg/scheduler"
)

var errNATSDisconnected = errors.New("NATS连接断开")

func main() {
	log.Println("启动异动检测引擎...")

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v\n", err)
	}

	// 连接数据库
	db, err := database.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("连接数据库失败: %v\n", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("数据库迁移失败: %v\n", err)
	}

	// 连接NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("连接NATS失败: %v\n", err)
	}
	defer natsClient.Close()

	// 创建编排器
	orchestrator := engine.NewOrchestrator(
		db.Competitor(),
		db.Metric(),
		db.Ad(),
		db.Signal(),
		engine.ThresholdsFromConfig(cfg),
	)

	// 注册组件巡检
	mon := monitor.NewMonitor()
	mon.RegisterComponent("postgres", db.Ping)
	mon.RegisterComponent("nats", func() error {
		if !natsClient.IsConnected() {
			return errNATSDisconnected
		}
		return nil
	})
	mon.CheckAll()

	// 启动调度器，检测完成后把新信号发布到信号流
	sched := scheduler.NewScheduler(orchestrator, mon, func(result *engine.DetectionResult) {
		for _, sig := range result.Signals {
			if err := natsClient.PublishSignal(sig); err != nil {
				log.Printf("发布信号失败: %v\n", err)
			}
		}
	})
	if err := sched.Start(cfg.Detection.Schedule); err != nil {
		log.Fatalf("启动调度器失败: %v\n", err)
	}
	defer sched.Stop()

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("正在关闭异动检测引擎...")
}
