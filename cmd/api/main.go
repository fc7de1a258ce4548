package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fridgechef/internal/api"
	"fridgechef/internal/core/ai/cache"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/infrastructure/store"
	"fridgechef/internal/pkg/common"
	"fridgechef/internal/pkg/mail"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（內含 .env 載入）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.Bool("vision_enabled", cfg.Vision.Enabled()),
		zap.Bool("remote_generation_enabled", cfg.OpenRouter.Enabled()),
		zap.Bool("redis_enabled", cfg.Store.UseRedis()),
		zap.String("model", cfg.OpenRouter.Model),
	)

	// 初始化儲存：有 Redis 用 Redis，沒有就走記憶體（示範模式）
	var st store.Store
	if cfg.Store.UseRedis() {
		redisStore, err := store.NewRedisStore(cfg.Store)
		if err != nil {
			common.LogFatal("Failed to connect to Redis", zap.Error(err))
		}
		st = redisStore
	} else {
		common.LogInfo("未設定 Redis，使用記憶體儲存")
		st = store.NewMemoryStore()
	}
	defer st.Close()

	// 初始化快取
	cacheManager := cache.NewManager(cfg)
	if cfg.Cache.Enabled && cacheManager == nil {
		common.LogFatal("Failed to initialize cache manager")
	}
	defer cacheManager.Close()

	// 初始化郵件服務
	mailer := mail.NewMailer(cfg)

	// 組裝應用
	app, err := api.Setup(cfg, st, cacheManager, mailer)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 啟動過期提醒掃描
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	app.Inventory.StartExpirySweep(sweepCtx)

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 停掉背景工作再關伺服器
	stopSweep()
	app.Generator.StopBackfill()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
