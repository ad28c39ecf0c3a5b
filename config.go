package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/portfolio"
)

type config struct {
	Port          string
	APIURL        string
	APITimeout    time.Duration
	BannerDismiss time.Duration
	SitelogDSN    string
	AdminUsername string
	AdminPassword string
}

// loadConfig reads the environment; .env is already applied by godotenv
func loadConfig() config {
	cfg := config{
		Port:          os.Getenv("PORT"),
		APIURL:        os.Getenv("FOLIO_API_URL"),
		APITimeout:    envDuration("FOLIO_API_TIMEOUT", 10*time.Second),
		BannerDismiss: envDuration("FOLIO_BANNER_DISMISS", portfolio.DefaultBannerDismiss),
		SitelogDSN:    os.Getenv("SITELOG_DSN"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.APIURL == "" {
		cfg.APIURL = portfolio.DefaultBaseURL
	}

	// Default credentials for development (set both in production)
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	return cfg
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Ignoring %s=%q: want a positive duration like 5s", key, raw)
		return def
	}
	return d
}
