package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	OpenRouter  OpenRouterConfig  `mapstructure:"openrouter"`
	Vision      VisionConfig      `mapstructure:"vision"`
	ImageSearch ImageSearchConfig `mapstructure:"image_search"`
	Mail        MailConfig        `mapstructure:"mail"`
	Store       StoreConfig       `mapstructure:"store"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Generation  GenerationConfig  `mapstructure:"generation"`
	Sweep       SweepConfig       `mapstructure:"sweep"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Image       ImageConfig       `mapstructure:"image"`
	DedupWindow time.Duration     `mapstructure:"dedup_window"`
	LogLevel    string            `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// OpenRouterConfig 遠端食譜生成（LLM）配置
type OpenRouterConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	BaseURL   string        `mapstructure:"base_url"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Enabled 有 API Key 才啟用遠端生成
func (c OpenRouterConfig) Enabled() bool {
	return c.APIKey != ""
}

// VisionConfig 影像辨識服務配置
type VisionConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Enabled 未設定 API Key 時走示範模式
func (c VisionConfig) Enabled() bool {
	return c.APIKey != ""
}

// ImageSearchConfig 圖片搜尋服務配置
type ImageSearchConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	EngineID string        `mapstructure:"engine_id"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Enabled 未設定 API Key 時回傳佔位圖
func (c ImageSearchConfig) Enabled() bool {
	return c.APIKey != ""
}

// MailConfig 郵件服務配置
type MailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPEmail    string `mapstructure:"smtp_email"`
	SMTPPassword string `mapstructure:"smtp_password"`
	SenderName   string `mapstructure:"sender_name"`
}

// Enabled 未設定 SMTP 主機時只記錄不寄送
func (c MailConfig) Enabled() bool {
	return c.SMTPHost != ""
}

// StoreConfig 持久儲存配置
type StoreConfig struct {
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

// UseRedis 未設定 Redis 位址時使用記憶體儲存（示範模式）
func (c StoreConfig) UseRedis() bool {
	return c.RedisAddr != ""
}

// CacheConfig AI 回應快取配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// GenerationConfig 食譜生成配置
type GenerationConfig struct {
	MaxRecipes         int `mapstructure:"max_recipes"`
	MinMatchPercentage int `mapstructure:"min_match_percentage"`
	BatchSize          int `mapstructure:"batch_size"`
	PriorityImages     int `mapstructure:"priority_images"`
	BackfillWorkers    int `mapstructure:"backfill_workers"`
}

// SweepConfig 過期提醒掃描配置
type SweepConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ImageConfig 圖片上傳配置
type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil {
		if !strings.Contains(err.Error(), "no such file") {
			return nil, err
		}
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	viper.BindEnv("openrouter.model", "OPENROUTER_MODEL")
	viper.BindEnv("openrouter.max_tokens", "MODEL_MAX_TOKENS")
	viper.BindEnv("vision.api_key", "VISION_API_KEY")
	viper.BindEnv("image_search.api_key", "IMAGE_SEARCH_API_KEY")
	viper.BindEnv("image_search.engine_id", "IMAGE_SEARCH_ENGINE_ID")
	viper.BindEnv("mail.smtp_host", "SMTP_HOST")
	viper.BindEnv("mail.smtp_port", "SMTP_PORT")
	viper.BindEnv("mail.smtp_email", "SMTP_AUTH_EMAIL")
	viper.BindEnv("mail.smtp_password", "SMTP_AUTH_PASSWORD")
	viper.BindEnv("mail.sender_name", "SMTP_SENDER_NAME")
	viper.BindEnv("store.redis_addr", "REDIS_ADDR")
	viper.BindEnv("store.redis_password", "REDIS_PASSWORD")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration",
		"openrouter_api_key:", maskAPIKey(viper.GetString("openrouter.api_key")),
		"vision_api_key:", maskAPIKey(viper.GetString("vision.api_key")),
		"redis_addr:", viper.GetString("store.redis_addr"))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "fridgechef")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 遠端生成設定
	viper.SetDefault("openrouter.model", "qwen/qwen2.5-vl-72b-instruct:free")
	viper.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("openrouter.max_tokens", 4096)
	viper.SetDefault("openrouter.timeout", "15s")

	// 影像辨識設定
	viper.SetDefault("vision.base_url", "https://vision.googleapis.com/v1")
	viper.SetDefault("vision.timeout", "30s")

	// 圖片搜尋設定
	viper.SetDefault("image_search.base_url", "https://www.googleapis.com/customsearch/v1")
	viper.SetDefault("image_search.timeout", "10s")

	// 郵件設定
	viper.SetDefault("mail.smtp_port", 587)
	viper.SetDefault("mail.sender_name", "FridgeChef")

	// 儲存設定
	viper.SetDefault("store.redis_db", 0)

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	// 生成設定
	viper.SetDefault("generation.max_recipes", 12)
	viper.SetDefault("generation.min_match_percentage", 30)
	viper.SetDefault("generation.batch_size", 4)
	viper.SetDefault("generation.priority_images", 3)
	viper.SetDefault("generation.backfill_workers", 2)

	// 掃描設定
	viper.SetDefault("sweep.interval", "12h")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 圖片設定
	viper.SetDefault("image.max_size_bytes", 10*1024*1024) // 10MB

	// 去重窗口預設
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證生成設定
	if config.Generation.MaxRecipes <= 0 {
		return fmt.Errorf("invalid generation max recipes")
	}
	if config.Generation.MinMatchPercentage < 0 || config.Generation.MinMatchPercentage > 100 {
		return fmt.Errorf("invalid generation min match percentage")
	}
	if config.Generation.BatchSize <= 0 {
		return fmt.Errorf("invalid generation batch size")
	}

	// 驗證掃描設定
	if config.Sweep.Interval <= 0 {
		return fmt.Errorf("invalid sweep interval")
	}

	return nil
}
