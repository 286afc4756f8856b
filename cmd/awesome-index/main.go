package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"awesome-index/internal/api/router"
	"awesome-index/internal/model"
	"awesome-index/internal/pkg/config"
	"awesome-index/internal/pkg/database"
	"awesome-index/internal/pkg/logger"
	"awesome-index/internal/scheduler"
)

var (
	configFile = flag.String("config", "", "config file path (e.g. -config=configs/config.yaml)")
	version    = flag.Bool("version", false, "print version and exit")
)

const (
	appVersion = "1.0.0"
	appName    = "awesome-index"
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("%s version %s\n", appName, appVersion)
		os.Exit(0)
	}

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("load config failed: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Printf("init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Close()
	}()
	logger.Info(fmt.Sprintf("loaded config file: %s", configPath))

	logger.Info(fmt.Sprintf("service %s starting...", appName), zap.String("version", appVersion))

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("init database failed", zap.Error(err))
	}
	defer func() {
		_ = database.Close()
	}()
	logger.Info(fmt.Sprintf("database connected %s:%v", cfg.Database.Host, cfg.Database.Port),
		zap.String("database", cfg.Database.Database))

	if err := database.GetDB().AutoMigrate(model.All()...); err != nil {
		logger.Fatal("migrate schema failed", zap.Error(err))
	}

	services := router.BuildServices(cfg, database.GetDB(), logger.Log)

	taskScheduler := scheduler.NewScheduler(services.Sync, logger.Log)
	if err := taskScheduler.Start(cfg); err != nil {
		logger.Warn("scheduler start failed", zap.Error(err))
	}

	r := router.Setup(cfg, services)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logger.Info(fmt.Sprintf("%s listening", cfg.Server.Name),
			zap.String("address", addr),
			zap.String("mode", cfg.Server.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	taskScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("stopped")
}

// getConfigPath resolves the config file location.
// Priority: flag > environment variable > default path.
func getConfigPath() string {
	if *configFile != "" {
		return *configFile
	}
	if envConfig := os.Getenv("CONFIG_FILE"); envConfig != "" {
		return envConfig
	}
	return "configs/config.yaml"
}
