package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting. It is built once in main and passed by
// reference; nothing reads the environment after startup.
type Config struct {
	ListenAddr       string
	GinMode          string
	DBDSN            string
	AutoMigrate      bool
	JWTSecret        []byte
	JWTRefreshSecret []byte
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	UploadBaseDir    string
	PublicBaseURL    string
	ThumbnailWidth   int
}

// LoadConfig reads settings from the environment (a .env file, if present, is
// loaded by main before this runs). DB_DSN, JWT_SECRET and JWT_REFRESH_SECRET
// are mandatory: there are no development fallbacks for credentials.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LISTEN_ADDR", ":8081")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "720h")
	v.SetDefault("UPLOAD_BASE", "uploads")
	v.SetDefault("PUBLIC_BASE_URL", "")
	v.SetDefault("THUMBNAIL_WIDTH", 480)

	cfg := &Config{
		ListenAddr:       v.GetString("LISTEN_ADDR"),
		GinMode:          v.GetString("GIN_MODE"),
		DBDSN:            v.GetString("DB_DSN"),
		AutoMigrate:      v.GetBool("DB_AUTO_MIGRATE"),
		JWTSecret:        []byte(v.GetString("JWT_SECRET")),
		JWTRefreshSecret: []byte(v.GetString("JWT_REFRESH_SECRET")),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  v.GetDuration("REFRESH_TOKEN_TTL"),
		UploadBaseDir:    v.GetString("UPLOAD_BASE"),
		PublicBaseURL:    v.GetString("PUBLIC_BASE_URL"),
		ThumbnailWidth:   v.GetInt("THUMBNAIL_WIDTH"),
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set; this service requires a Postgres DSN")
	}
	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if len(cfg.JWTRefreshSecret) == 0 {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET is not set")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("token TTLs must be positive")
	}
	return cfg, nil
}
