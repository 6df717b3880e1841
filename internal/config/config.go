package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StorageS3       = "s3"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
	Timezone  string `env:"TIMEZONE,default=Australia/Sydney"`

	AnnouncementsURL        string        `env:"ANNOUNCEMENTS_URL,default=https://www.asx.com.au/asx/v2/statistics/prevBusDayAnns.do"`
	CompanyAnnouncementsURL string        `env:"COMPANY_ANNOUNCEMENTS_URL,default=https://www.asx.com.au/asx/1/company/{ticker}/announcements?count=20&market_sensitive=false"`
	ScrapflyAPIKey          string        `env:"SCRAPFLY_API_KEY"`
	ScrapflyEndpoint        string        `env:"SCRAPFLY_ENDPOINT,default=https://api.scrapfly.io/scrape"`
	HTTPTimeout             time.Duration `env:"HTTP_TIMEOUT,default=60s"`

	StorageBackend string `env:"STORAGE_BACKEND,default=s3"`
	S3Bucket       string `env:"S3_BUCKET,default=placement-trackers-storage"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	RegistryKey    string `env:"REGISTRY_KEY,default=ticker_monitoring/ticker_monitoring.json"`

	DBHost            string        `env:"DB_HOST"`
	DBPort            int           `env:"DB_PORT,default=5432"`
	DBUser            string        `env:"DB_USER"`
	DBPassword        string        `env:"DB_PASSWORD"`
	DBName            string        `env:"DB_NAME"`
	DBSSLMode         string        `env:"DB_SSLMODE,default=require"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=2"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=5m"`

	SMTPHost       string `env:"SMTP_HOST,default=smtp.gmail.com"`
	SMTPPort       int    `env:"SMTP_PORT,default=587"`
	SMTPUsername   string `env:"SMTP_USERNAME"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`
	SenderEmail    string `env:"SENDER_EMAIL"`
	RecipientEmail string `env:"RECIPIENT_EMAIL"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`

	MemoryMB int `env:"AWS_LAMBDA_FUNCTION_MEMORY_SIZE,default=128"`
}

// Load reads a .env file when present, then the process environment.
func Load(ctx context.Context) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	if !strings.Contains(c.CompanyAnnouncementsURL, "{ticker}") {
		return errors.New("COMPANY_ANNOUNCEMENTS_URL must contain {ticker}")
	}
	if c.RegistryKey == "" {
		return errors.New("REGISTRY_KEY is required")
	}
	switch c.StorageBackend {
	case StorageS3:
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 storage backend")
		}
	case StoragePostgres:
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return errors.New("DB_HOST, DB_USER and DB_NAME are required for the postgres storage backend")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c Config) EmailEnabled() bool {
	return c.SMTPUsername != "" && c.SMTPPassword != "" && c.SenderEmail != "" && c.RecipientEmail != ""
}

func (c Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}
