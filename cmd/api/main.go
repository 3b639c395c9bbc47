package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fundbrief/internal/config"
	"fundbrief/internal/handler"
	"fundbrief/internal/store"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	briefStore, err := newBriefStore(cfg)
	if err != nil {
		log.Fatalf("error opening brief store: %v", err)
	}

	briefHandler := handler.NewBriefHandler(briefStore)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/daily-brief/", briefHandler.GetDailyBriefs)
	r.GET("/health", briefHandler.GetHealth)

	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func newBriefStore(cfg *config.Config) (store.BriefStore, error) {
	if cfg.RedisURL != "" {
		return store.NewRedisStore(cfg.RedisURL)
	}
	return store.NewFileStore(cfg.DataDir)
}
