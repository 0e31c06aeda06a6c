package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yukikurage/project-tracker-api/internal/constants"
)

type Config struct {
	DBDriver        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	TokenSecret     string
	TokenTTL        time.Duration
	AuthTokenSource string
	GinMode         string
	Port            string
}

func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 24
	}

	source := getEnv("AUTH_TOKEN_SOURCE", constants.AuthSourceCookie)
	if source != constants.AuthSourceCookie && source != constants.AuthSourceHeader {
		source = constants.AuthSourceCookie
	}

	return &Config{
		DBDriver:        getEnv("DB_DRIVER", "mysql"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "trackeruser"),
		DBPassword:      getEnv("DB_PASSWORD", "trackerpassword"),
		DBName:          getEnv("DB_NAME", "project_tracker"),
		TokenSecret:     getEnv("TOKEN_SECRET", "default-secret-key-change-me"),
		TokenTTL:        time.Duration(ttlHours) * time.Hour,
		AuthTokenSource: source,
		GinMode:         getEnv("GIN_MODE", "debug"),
		Port:            getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
