package config_test

import (
	"testing"
	"time"

	"pharmahub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "PHARMAHUB", cfg.Order.NumberPrefix)
	assert.Equal(t, config.StockPolicyUnconditional, cfg.Order.StockPolicy)
	assert.False(t, cfg.Order.VerifyPrices)
	assert.True(t, cfg.Payment.DemoMode)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cr3t-for-production")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_DSN", "file::memory:")
	t.Setenv("ORDER_STOCK_POLICY", "strict")
	t.Setenv("ORDER_VERIFY_PRICES", "true")
	t.Setenv("ORDER_TAX_RATE", "0.11")
	t.Setenv("JWT_TTL", "90m")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.DSN)
	assert.Equal(t, config.StockPolicyStrict, cfg.Order.StockPolicy)
	assert.True(t, cfg.Order.VerifyPrices)
	assert.InDelta(t, 0.11, cfg.Order.TaxRate, 1e-9)
	assert.Equal(t, 90*time.Minute, cfg.JWT.TTL)
}

func TestLoadRejectsUnknownEnumerations(t *testing.T) {
	t.Setenv("ORDER_STOCK_POLICY", "reserve")
	_, err := config.Load()
	assert.ErrorContains(t, err, "ORDER_STOCK_POLICY")

	t.Setenv("ORDER_STOCK_POLICY", "strict")
	t.Setenv("DATABASE_DRIVER", "mysql")
	_, err = config.Load()
	assert.ErrorContains(t, err, "DATABASE_DRIVER")
}

func TestLoadRequiresServerKeyOutsideDemoMode(t *testing.T) {
	t.Setenv("PAYMENT_DEMO_MODE", "false")
	_, err := config.Load()
	assert.ErrorContains(t, err, "PAYMENT_SERVER_KEY")

	t.Setenv("PAYMENT_SERVER_KEY", "SB-Mid-server-xyz")
	_, err = config.Load()
	assert.NoError(t, err)
}

func TestLoadRejectsDefaultJWTSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, err := config.Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cr3t-for-production")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t-for-production", cfg.JWT.Secret)

	// Development keeps working with the default.
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "change-me")
	_, err = config.Load()
	assert.NoError(t, err)
}
