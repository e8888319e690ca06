package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env values never override variables already set in the environment
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := InitDB(cfg)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	app := NewApp(cfg, db)
	app.SetupRoutes(r)

	log.Printf("server listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
