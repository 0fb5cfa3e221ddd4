package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mise/internal/api"
	"mise/internal/config"
	"mise/internal/logger"
	"mise/internal/recipe"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("failed to build logger: %w", err))
	}
	defer log.Sync()

	// Without a database URL the server keeps recipes in memory; conversion,
	// scaling and matching endpoints work either way.
	var store api.RecipeStore
	if cfg.DatabaseURL != "" {
		pgStore, err := recipe.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("error creating postgres store", zap.Error(err))
		}
		store = pgStore
		log.Info("using postgres recipe store")
	} else {
		store = recipe.NewMemoryStore()
		log.Warn("DATABASE_URL not set, using in-memory recipe store")
	}

	handler := api.NewHandler(store, log)

	r := gin.New()
	r.Use(requestid.New())
	r.Use(api.RequestLogger(log))
	r.Use(api.Recovery(log))

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.POST("/v1/convert", handler.ConvertIngredients)
	r.POST("/v1/scale", handler.ScaleIngredients)
	r.POST("/v1/match", handler.MatchStep)
	r.POST("/recipes", handler.SaveRecipe)
	r.GET("/recipes", handler.GetRecipes)
	r.GET("/recipes/:id", handler.GetRecipe)
	r.GET("/healthz", handler.Health)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		log.Info("starting server", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server exited")
}
