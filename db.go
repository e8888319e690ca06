package main

import (
	"fmt"
	"log"
	"os"

	"photogallery/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection and, unless disabled, migrates the
// schema. Models are migrated individually so a permission failure on one
// table doesn't block the rest.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.AutoMigrate {
		for _, m := range []interface{}{
			&models.User{},
			&models.Session{},
			&models.Gallery{},
			&models.Photo{},
			&models.PhotoLike{},
			&models.Comment{},
		} {
			if err := db.AutoMigrate(m); err != nil {
				log.Printf("migration warning (%T): %v", m, err)
			}
		}
	}
	if err := os.MkdirAll(cfg.UploadBaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", cfg.UploadBaseDir, err)
	}
	return db, nil
}
