package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Storage     StorageConfig   `mapstructure:"storage"`
	Codec       CodecConfig     `mapstructure:"codec"`
	CORS        CORSConfig      `mapstructure:"cors"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
	LogFile     string          `mapstructure:"log_file"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	StaticDir    string        `mapstructure:"static_dir"`
}

// StorageConfig 上傳目錄設定
type StorageConfig struct {
	UploadDir         string   `mapstructure:"upload_dir"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	MaxUploadBytes    int64    `mapstructure:"max_upload_bytes"`
	VerifyContent     bool     `mapstructure:"verify_content"`
}

// CodecConfig 編碼設定
type CodecConfig struct {
	JPEGQuality     int  `mapstructure:"jpeg_quality"`
	AutoOrientation bool `mapstructure:"auto_orientation"`
}

// CORSConfig 跨來源設定
type CORSConfig struct {
	AllowOrigins []string      `mapstructure:"allow_origins"`
	MaxAge       time.Duration `mapstructure:"max_age"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，不存在時使用環境變數與預設值
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	_ = v.BindEnv("storage.upload_dir", "APP_STORAGE_UPLOAD_DIR", "UPLOAD_FOLDER")
	_ = v.BindEnv("server.port", "APP_SERVER_PORT", "PORT")
	_ = v.BindEnv("rate_limit.enabled", "APP_RATE_LIMIT_ENABLED", "RATE_LIMIT_ENABLED")
	_ = v.BindEnv("rate_limit.requests", "APP_RATE_LIMIT_REQUESTS", "RATE_LIMIT_REQUESTS")
	_ = v.BindEnv("rate_limit.window", "APP_RATE_LIMIT_WINDOW", "RATE_LIMIT_WINDOW")
	_ = v.BindEnv("dedup_window", "APP_DEDUP_WINDOW", "DEDUP_WINDOW")
	_ = v.BindEnv("log_level", "APP_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log_file", "APP_LOG_FILE", "LOG_FILE")

	// 設定設定檔名稱和路徑
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	normalize(&config)

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "photo-editor")

	// 伺服器設定
	v.SetDefault("server.port", 5003)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.static_dir", "")

	// 上傳目錄設定
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.allowed_extensions", []string{"png", "jpg", "jpeg"})
	v.SetDefault("storage.max_upload_bytes", 16*1024*1024) // 16MB
	v.SetDefault("storage.verify_content", true)

	// 編碼設定
	v.SetDefault("codec.jpeg_quality", 95)
	v.SetDefault("codec.auto_orientation", true)

	// CORS 設定
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.max_age", "12h")

	// 限流設定
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	// 0 表示不啟用去重
	v.SetDefault("dedup_window", "0s")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "logs/app.log")
}

// normalize 統一副檔名格式（小寫、去除前導點），CORS 來源為空時允許全部
func normalize(config *Config) {
	exts := make([]string, 0, len(config.Storage.AllowedExtensions))
	for _, ext := range config.Storage.AllowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	config.Storage.AllowedExtensions = exts

	if len(config.CORS.AllowOrigins) == 0 {
		config.CORS.AllowOrigins = []string{"*"}
	}
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", config.Server.Port)
	}

	// 驗證上傳設定
	if config.Storage.UploadDir == "" {
		return fmt.Errorf("upload dir is required")
	}
	if len(config.Storage.AllowedExtensions) == 0 {
		return fmt.Errorf("at least one allowed extension is required")
	}
	if config.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max upload bytes")
	}

	if config.Codec.JPEGQuality < 1 || config.Codec.JPEGQuality > 100 {
		return fmt.Errorf("invalid jpeg quality %d", config.Codec.JPEGQuality)
	}

	// 驗證限流設定
	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	if config.DedupWindow < 0 {
		return fmt.Errorf("invalid dedup window")
	}

	return nil
}
