package configs

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	appLogger "prisonsphere_backend/internals/helpers/logger"
)

var (
	JWTSecret     string
	CORSOrigin    string
	RedisURL      string
	AppEnv        string
	AutoMigrate   bool
	BlacklistDays int
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	envLoaded := false
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		envLoaded = godotenv.Load() == nil
	}

	logger, err := appLogger.NewLogger(
		GetEnv("LOG_LEVEL", "info"),
		GetEnv("LOG_FORMAT", "json"),
		"prisonsphere",
	)
	if err != nil {
		logger = zap.NewNop()
	}
	zap.ReplaceGlobals(logger)

	if envLoaded {
		zap.L().Info(".env file loaded")
	} else {
		zap.L().Info("no .env file, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	CORSOrigin = GetEnv("CORS_ORIGIN", "http://localhost:5173")
	RedisURL = GetEnv("REDIS_URL")
	AppEnv = GetEnv("APP_ENV", "development")
	AutoMigrate = GetEnvBool("DB_AUTO_MIGRATE", true)
	BlacklistDays = GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)

	if JWTSecret == "" {
		zap.L().Error("JWT_SECRET is not set")
	} else {
		zap.L().Info("JWT_SECRET loaded")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
