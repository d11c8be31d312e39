package app

import (
	"os"
	"strings"
)

type Config struct {
	DBDriver string
	DSN      string
	Port     string
	AppEnv   string
	LogLevel string
}

func (c Config) IsDev() bool {
	return c.AppEnv == "" || c.AppEnv == "development" || c.AppEnv == "dev"
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadConfig reads the process environment. Call godotenv.Load first to pick
// up a local .env file.
func LoadConfig() Config {
	cfg := Config{
		DBDriver: strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DSN:      os.Getenv("DB_DSN"),
		Port:     getenv("PORT", "8080"),
		AppEnv:   strings.ToLower(os.Getenv("APP_ENV")),
		LogLevel: getenv("LOG_LEVEL", "info"),
	}
	if strings.TrimSpace(cfg.DSN) != "" {
		return cfg
	}
	if cfg.DBDriver == "sqlite" {
		cfg.DSN = getenv("DB_PATH", "products.db")
		return cfg
	}
	host := getenv("DB_HOST", "localhost")
	port := getenv("DB_PORT", "5432")
	user := getenv("DB_USER", getenv("POSTGRES_USER", "postgres"))
	pass := getenv("DB_PASSWORD", getenv("POSTGRES_PASSWORD", "postgres"))
	name := getenv("DB_NAME", getenv("POSTGRES_DB", "productcatalog"))
	ssl := getenv("DB_SSLMODE", "disable")
	cfg.DSN = "host=" + host + " user=" + user + " password=" + pass + " dbname=" + name + " port=" + port + " sslmode=" + ssl
	return cfg
}
