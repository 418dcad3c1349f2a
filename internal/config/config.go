package config

import (
	"fmt"
	"os"
)

// Config holds the application configuration, assembled from the environment.
type Config struct {
	Env         string
	AppSecret   string
	DatabaseURL string
	Port        string
	SiteName    string
	SiteUrl     string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "alternovafilms")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	appSecret := getEnv("APP_SECRET", "your-secret-key-change-in-production")
	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("WARNING: production is running with the default APP_SECRET, set the APP_SECRET environment variable")
	}

	return &Config{
		Env:         getEnv("APP_ENV", "development"),
		AppSecret:   appSecret,
		DatabaseURL: dbURL,
		Port:        getEnv("PORT", "8000"),
		SiteName:    getEnv("SITE_NAME", "Alternova Films"),
		SiteUrl:     getEnv("SITE_URL", "http://localhost:8000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
