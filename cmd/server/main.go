package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codelearn/internal/cache"
	"codelearn/internal/comments"
	"codelearn/internal/config"
	"codelearn/internal/db"
	"codelearn/internal/evaluator"
	"codelearn/internal/gemini"
	"codelearn/internal/jobs"
	"codelearn/internal/metrics"
	"codelearn/internal/scoring"
	"codelearn/internal/server"
	"codelearn/internal/youtube"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	metrics.Init()

	// Comment analysis keyword tables, optionally overridden from YAML
	keywords := comments.DefaultKeywords()
	if cfg.HeuristicsFile != "" {
		keywords, err = comments.LoadKeywords(cfg.HeuristicsFile)
		if err != nil {
			log.Fatalf("Failed to load heuristics file %s: %v", cfg.HeuristicsFile, err)
		}
		log.Printf("Loaded comment heuristics from %s", cfg.HeuristicsFile)
	}

	if cfg.YouTubeAPIKey == "" {
		log.Fatal("YOUTUBE_API_KEY is required")
	}
	if len(cfg.GeminiAPIKeys) == 0 {
		log.Fatal("GEMINI_API_KEYS is required (comma-separated list)")
	}

	// Evaluation pipeline
	metadata := youtube.NewClient(cfg.YouTubeBaseURL, cfg.YouTubeAPIKey)
	rotator := gemini.NewRotator(cfg.GeminiAPIKeys)
	model := gemini.NewClient(cfg.GeminiBaseURL, cfg.GeminiModel, rotator)
	log.Printf("Model provider configured (model: %s, credentials: %d)", cfg.GeminiModel, rotator.Len())

	evalEphemeral := cache.NewEphemeral(cfg.EvalCacheTTL)
	aggregates := cache.NewEphemeral(cfg.AggregateCacheTTL)
	tiered := cache.NewTiered(database, evalEphemeral)

	svc := evaluator.New(
		metadata,
		model,
		tiered,
		aggregates,
		comments.NewExtractor(keywords),
		scoring.NewEngine(scoring.DefaultConfig()),
		cfg.PlaylistSampleSize,
	)

	// Background pruning of the ephemeral tiers
	janitor := jobs.NewCacheJanitor(10*time.Minute, evalEphemeral, aggregates)
	go janitor.Start(ctx)

	// HTTP server
	srv := server.New(cfg)
	srv.RegisterRoutes(database, svc)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()
	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
