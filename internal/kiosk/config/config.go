package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds kiosk client settings.
type Config struct {
	// APIBase is the registration API root, including the /api prefix.
	APIBase string
	// AdminPassword gates the admin roster view. It is a casual access
	// gate compared client-side, not a security boundary.
	AdminPassword string
}

// Load reads kiosk configuration from the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIBase:       getEnv("WARDEN_API_BASE", "http://localhost:4000/api"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Winchester2026"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
