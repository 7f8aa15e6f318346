package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"moonsales/internal/config"
	"moonsales/internal/logger"
	"moonsales/internal/server"
	"moonsales/internal/util"
)

var (
	port    = flag.Int("port", 0, "服務埠 (config.toml 優先；僅當未顯式配置 port 時生效)")
	devMode = flag.Bool("dev", false, "開發模式")
	dataDir = flag.String("dataDir", "", "資料目錄 (覆蓋設定檔)")
	year    = flag.Int("year", 0, "週別解析所用的參考年份 (覆蓋設定檔)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Moonsales - 中秋週銷售分析儀表板")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		fmt.Printf("載入設定失敗，使用預設設定: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *year > 0 {
		cfg.Analysis.ReferenceYear = *year
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	if cfg.Data.AuditLog {
		if dir, err := config.EnsureDataDir(cfg); err != nil {
			logger.Warn("create data dir failed: %v", err)
		} else {
			logger.Info("data dir: %s", dir)
		}
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Fatal("init server failed: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		logger.Info("listening on %d (reference year %d)", cfg.Server.Port, cfg.Analysis.ReferenceYear)
		if err := srv.Run(addr); err != nil {
			logger.Fatal("server stopped: %v", err)
		}
	}()

	// 打开浏览器
	if !cfg.Server.DevMode {
		fmt.Printf("正在開啟瀏覽器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("無法自動開啟瀏覽器，請手動造訪: %s\n", url)
		}
	} else {
		fmt.Printf("開發模式: 請造訪 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服務...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在關閉服務...")
	if err := srv.Close(); err != nil {
		logger.Error("close server: %v", err)
	}
}
