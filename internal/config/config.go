// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config 服務設定，全部來自環境變數 (可選 .env 檔)
type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	RedisAddr     string `env:"REDIS_ADDR,required,notEmpty"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`

	Mail Mail

	WorkerCount          int           `env:"WORKER_COUNT" envDefault:"1"`
	RealtimeRelay        string        `env:"REALTIME_RELAY" envDefault:"local"`
	RequestRatePerMinute int           `env:"REQUEST_RATE_PER_MINUTE" envDefault:"10"`
	DonorCacheTTL        time.Duration `env:"DONOR_CACHE_TTL" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Mail SMTP 設定；帳密缺少時仍會嘗試寄送，失敗只記錄
type Mail struct {
	Server   string        `env:"MAIL_SERVER" envDefault:"smtp.gmail.com"`
	Port     int           `env:"MAIL_PORT" envDefault:"465"`
	UseSSL   bool          `env:"MAIL_USE_SSL" envDefault:"true"`
	Username string        `env:"EMAIL_USER"`
	Password string        `env:"EMAIL_PASS"`
	From     string        `env:"MAIL_FROM"`
	Timeout  time.Duration `env:"MAIL_TIMEOUT" envDefault:"10s"`
	Async    bool          `env:"MAIL_ASYNC" envDefault:"false"`
}

var loadDotenv = func() error { return godotenv.Load() }

// Load 讀取 .env (若存在) 後解析環境變數
func Load() (*Config, error) {
	_ = loadDotenv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("無效的 WORKER_COUNT: %d", c.WorkerCount)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("無效的 SESSION_TTL: %s", c.SessionTTL)
	}
	switch c.RealtimeRelay {
	case "local", "redis":
	default:
		return fmt.Errorf("無效的 REALTIME_RELAY: %q", c.RealtimeRelay)
	}
	return nil
}
