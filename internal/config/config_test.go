package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_ACCESS_EXPIRY", "")
	t.Setenv("ALLOW_TEST_TOKENS", "")
	t.Setenv("ALERT_RISK_THRESHOLD", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.True(t, cfg.AllowTestTokens, "test tokens are on outside production")
	assert.Equal(t, 70, cfg.AlertRiskThreshold)
}

func TestLoadProductionDisablesTestTokens(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOW_TEST_TOKENS", "")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.AllowTestTokens)
}

func TestLoadFallsBackOnGarbage(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")
	t.Setenv("NOTIFY_BATCH_SIZE", "lots")
	t.Setenv("ALLOW_TEST_TOKENS", "maybe")
	t.Setenv("APP_ENV", "staging")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 20, cfg.NotifyBatchSize)
	assert.True(t, cfg.AllowTestTokens)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5433", DBSSLMode: "require"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=require TimeZone=UTC", cfg.DSN())
}
