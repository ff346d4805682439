package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/palemoky/skull-king/internal/config"
	"github.com/palemoky/skull-king/internal/logger"
	"github.com/palemoky/skull-king/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn("加载配置文件失败，使用默认配置", "path", *configPath, "err", err)
		cfg = config.Default()
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatal("初始化日志失败", "err", err)
	}
	defer logger.Close()

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal("创建服务器失败", "err", err)
	}

	// 优雅关闭：等待进行中的对局结束
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("正在关闭服务器...")
		srv.GracefulShutdown(cfg.Game.ShutdownTimeoutDuration())
		logger.Close()
		os.Exit(0)
	}()

	log.Info("☠️ 骷髅王服务器启动中...")
	if err := srv.Start(); err != nil {
		log.Fatal("服务器启动失败", "err", err)
	}
}
