package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	AppEnv string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	TestTokenExpiry  time.Duration
	AllowTestTokens  bool

	// Admin
	AdminEmails  string
	AdminUserIDs string
	AdminToken   string

	// Server
	Port        string
	CORSOrigins string

	// Cache
	RedisURL         string
	AnalysisCacheTTL time.Duration

	// Detection
	AlertRiskThreshold int
	SeedDemoAlerts     int

	// Platform notifications
	TelegramBotToken       string
	TelegramChatID         int64
	NotifyDispatchInterval time.Duration
	NotifyBatchSize        int

	// Logging
	LogRetention time.Duration

	// Platform registry override
	PlatformsConfigPath string

	// Error tracking
	SentryDSN string
}

// Load reads the environment, after pulling in a .env file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	appEnv := getEnv("APP_ENV", "development")

	return &Config{
		AppEnv: appEnv,

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "fakeguard"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "fakeguard.db"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),
		TestTokenExpiry:  parseDuration(getEnv("TEST_TOKEN_EXPIRY", "1h"), time.Hour),
		AllowTestTokens:  parseBool(getEnv("ALLOW_TEST_TOKENS", ""), appEnv != "production"),

		AdminEmails:  getEnv("ADMIN_EMAILS", ""),
		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),
		AdminToken:   getEnv("ADMIN_TOKEN", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RedisURL:         getEnv("REDIS_URL", ""),
		AnalysisCacheTTL: parseDuration(getEnv("ANALYSIS_CACHE_TTL", "10m"), 10*time.Minute),

		AlertRiskThreshold: parseInt(getEnv("ALERT_RISK_THRESHOLD", "70"), 70),
		SeedDemoAlerts:     parseInt(getEnv("SEED_DEMO_ALERTS", "25"), 25),

		TelegramBotToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:         int64(parseInt(getEnv("TELEGRAM_CHAT_ID", "0"), 0)),
		NotifyDispatchInterval: parseDuration(getEnv("NOTIFY_DISPATCH_INTERVAL", "15s"), 15*time.Second),
		NotifyBatchSize:        parseInt(getEnv("NOTIFY_BATCH_SIZE", "20"), 20),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		PlatformsConfigPath: getEnv("PLATFORMS_CONFIG_PATH", ""),

		SentryDSN: getEnv("SENTRY_DSN", ""),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}
