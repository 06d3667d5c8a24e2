package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StockPolicyUnconditional = "unconditional"
	StockPolicyStrict        = "strict"

	defaultJWTSecret = "change-me"
)

// Config holds every runtime setting of the API.
type Config struct {
	AppPort string
	AppEnv  string

	Database DatabaseConfig
	JWT      JWTConfig
	RabbitMQ RabbitMQConfig
	Cache    CacheConfig
	Order    OrderConfig
	Payment  PaymentConfig
	Upload   UploadConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Driver        string
	DSN           string
	AutoMigrate   bool
	Seed          bool
	AdminPassword string // password of the seeded admin account
	MaxOpenConns  int
	MaxIdleConns  int
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type RabbitMQConfig struct {
	URL string
}

type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

type OrderConfig struct {
	NumberPrefix string
	StockPolicy  string
	VerifyPrices bool
	TaxRate      float64
}

type PaymentConfig struct {
	BaseURL   string
	ServerKey string
	DemoMode  bool
}

type UploadConfig struct {
	Dir       string
	MaxWidth  int
	MaxHeight int
}

type LogConfig struct {
	Level  string
	Format string
}

// IsProduction reports whether error details should be hidden from clients.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments use the environment.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort: v.GetString("APP_PORT"),
		AppEnv:  v.GetString("APP_ENV"),
		Database: DatabaseConfig{
			Driver:        strings.ToLower(v.GetString("DATABASE_DRIVER")),
			DSN:           v.GetString("DATABASE_DSN"),
			AutoMigrate:   v.GetBool("DATABASE_AUTO_MIGRATE"),
			Seed:          v.GetBool("DATABASE_SEED"),
			AdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
			MaxOpenConns:  v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:  v.GetInt("DATABASE_MAX_IDLE_CONNS"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		RabbitMQ: RabbitMQConfig{URL: v.GetString("RABBITMQ_URL")},
		Cache: CacheConfig{
			RedisURL: v.GetString("REDIS_URL"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		Order: OrderConfig{
			NumberPrefix: v.GetString("ORDER_NUMBER_PREFIX"),
			StockPolicy:  strings.ToLower(v.GetString("ORDER_STOCK_POLICY")),
			VerifyPrices: v.GetBool("ORDER_VERIFY_PRICES"),
			TaxRate:      v.GetFloat64("ORDER_TAX_RATE"),
		},
		Payment: PaymentConfig{
			BaseURL:   v.GetString("PAYMENT_BASE_URL"),
			ServerKey: v.GetString("PAYMENT_SERVER_KEY"),
			DemoMode:  v.GetBool("PAYMENT_DEMO_MODE"),
		},
		Upload: UploadConfig{
			Dir:       v.GetString("UPLOAD_DIR"),
			MaxWidth:  v.GetInt("IMAGE_MAX_WIDTH"),
			MaxHeight: v.GetInt("IMAGE_MAX_HEIGHT"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=pharmahub port=5432 sslmode=disable")
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("DATABASE_SEED", false)
	v.SetDefault("SEED_ADMIN_PASSWORD", "admin123")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)

	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("ORDER_NUMBER_PREFIX", "PHARMAHUB")
	v.SetDefault("ORDER_STOCK_POLICY", StockPolicyUnconditional)
	v.SetDefault("ORDER_VERIFY_PRICES", false)
	v.SetDefault("ORDER_TAX_RATE", 0.0)

	v.SetDefault("PAYMENT_BASE_URL", "https://app.sandbox.midtrans.com")
	v.SetDefault("PAYMENT_SERVER_KEY", "")
	v.SetDefault("PAYMENT_DEMO_MODE", true)

	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("IMAGE_MAX_WIDTH", 800)
	v.SetDefault("IMAGE_MAX_HEIGHT", 800)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	switch c.Order.StockPolicy {
	case StockPolicyUnconditional, StockPolicyStrict:
	default:
		return fmt.Errorf("unsupported ORDER_STOCK_POLICY %q", c.Order.StockPolicy)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.Order.NumberPrefix == "" {
		return fmt.Errorf("ORDER_NUMBER_PREFIX must not be empty")
	}
	if c.Order.TaxRate < 0 {
		return fmt.Errorf("ORDER_TAX_RATE must not be negative")
	}
	if !c.Payment.DemoMode && c.Payment.ServerKey == "" {
		return fmt.Errorf("PAYMENT_SERVER_KEY is required when PAYMENT_DEMO_MODE is off")
	}
	return nil
}
