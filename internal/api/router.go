package api

import (
	"context"
	"net/http"
	"time"

	"fridgechef/internal/api/handlers/fridge"
	"fridgechef/internal/api/handlers/health"
	"fridgechef/internal/api/middleware"
	"fridgechef/internal/core/ai/cache"
	"fridgechef/internal/core/ai/llm"
	"fridgechef/internal/core/imagesearch"
	"fridgechef/internal/core/inventory"
	"fridgechef/internal/core/mealplan"
	"fridgechef/internal/core/recipe"
	"fridgechef/internal/core/vision"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/infrastructure/store"
	"fridgechef/internal/pkg/common"
	"fridgechef/internal/pkg/mail"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 請求超時（遠端生成加上圖片查詢的最壞情況）
const timeoutDuration = 120 * time.Second

// App 已組裝完成的應用
type App struct {
	Router    *gin.Engine
	Inventory *inventory.Service
	Generator *recipe.Service
}

// Setup 建立所有服務並掛上路由
func Setup(cfg *config.Config, st store.Store, cacheManager *cache.Manager, mailer mail.Mailer) (*App, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Image.MaxSizeBytes))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("vision_enabled", cfg.Vision.Enabled()),
		zap.Bool("remote_generation_enabled", cfg.OpenRouter.Enabled()),
		zap.Bool("image_search_enabled", cfg.ImageSearch.Enabled()),
		zap.Bool("mail_enabled", cfg.Mail.Enabled()),
	)

	visionSvc := vision.NewService(cfg)
	searchSvc := imagesearch.NewService(cfg)
	llmClient := llm.NewClient(cfg, cacheManager)
	generator := recipe.NewService(cfg, st, llmClient, searchSvc)
	inventorySvc := inventory.NewService(cfg, st, mailer, generator)
	mealplanSvc := mealplan.NewService(st)

	// 請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
			c.Abort()
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck(cfg, cacheManager))
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.Deduplication(cfg))
	{
		fridgeGroup := api.Group("/fridge")
		{
			fridgeGroup.POST("/analyze", fridge.HandleAnalyze(visionSvc, inventorySvc))
		}

		inventoryGroup := api.Group("/inventory")
		{
			inventoryGroup.GET("", fridge.HandleListInventory(inventorySvc))
			inventoryGroup.POST("", fridge.HandleAddItem(inventorySvc))
			inventoryGroup.PUT("/:id", fridge.HandleUpdateItem(inventorySvc))
			inventoryGroup.DELETE("/:id", fridge.HandleDeleteItem(inventorySvc))
			inventoryGroup.POST("/:id/waste", fridge.HandleMoveToWaste(inventorySvc))
		}

		wasteGroup := api.Group("/wastebin")
		{
			wasteGroup.GET("", fridge.HandleListWasteBin(inventorySvc))
			wasteGroup.DELETE("/:id", fridge.HandleRemoveFromWaste(inventorySvc))
		}

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", fridge.HandleListRecipes(st))
			recipeGroup.POST("/generate", fridge.HandleGenerateRecipes(generator, inventorySvc))
			recipeGroup.POST("/leftovers", fridge.HandleLeftoverRecipes(generator, inventorySvc))
		}

		mealplanGroup := api.Group("/mealplan")
		{
			mealplanGroup.GET("", fridge.HandleGetMealPlan(mealplanSvc))
			mealplanGroup.PUT("", fridge.HandleAssignMeal(mealplanSvc))
			mealplanGroup.DELETE("/:day/:slot", fridge.HandleRemoveMeal(mealplanSvc))
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Int64("max_body_size", cfg.Image.MaxSizeBytes),
	)

	return &App{
		Router:    router,
		Inventory: inventorySvc,
		Generator: generator,
	}, nil
}
