package main

import (
	"log"
	"os"

	"github.com/movegoo/panoramai-sub001/pkg/api"
	"github.com/movegoo/panoramai-sub001/pkg/config"
	"github.com/movegoo/panoramai-sub001/pkg/database"
	"github.com/movegoo/panoramai-sub001/pkg/engine"
	"github.com/movegoo/panoramai-sub001/pkg/monitor"
)

func main() {
	log.Println("启动API服务...")

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v\n", err)
	}

	port := cfg.API.Port
	if port == "" {
		port = "8080"
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

	// 创建编排器（手动触发 /detect 用）
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
	mon.CheckAll()

	// 创建API处理程序
	handlers := api.NewHandlers(orchestrator, db.Signal(), mon)

	// 创建并启动服务器
	server := api.NewServer(port)
	server.SetupRoutes(handlers)
	server.Start()
}
