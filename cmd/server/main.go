package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/storage/redis/v3"

	"pickmycollege/internal/cache"
	"pickmycollege/internal/config"
	"pickmycollege/internal/db"
	"pickmycollege/internal/metrics"
	"pickmycollege/internal/provider"
	"pickmycollege/internal/ranking"
	"pickmycollege/internal/recommender"
	"pickmycollege/internal/server"
)

func main() {
	ctx := context.Background()
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

	// Load the NIRF ranking map once; lookups stay in memory for the
	// process lifetime.
	ranks, err := database.GetCollegeRanks(ctx)
	if err != nil {
		log.Fatalf("Failed to load college rankings: %v", err)
	}
	resolver := ranking.NewResolver(ranks)
	log.Printf("Loaded NIRF rankings for %d colleges", resolver.Size())

	// Provider clients and key rotation
	if len(cfg.PerplexityKeys) == 0 {
		log.Println("Warning: no PERPLEXITY_API_KEY_n configured; enrichment will rely on the fallback provider")
	}
	log.Printf("Loaded %d Perplexity API keys", len(cfg.PerplexityKeys))
	keys := provider.NewKeyManager(ctx, cfg.PerplexityKeys, database)
	orchestrator := provider.NewOrchestrator(
		keys,
		provider.NewPerplexityClient(cfg.PerplexityModel, cfg.ProviderTimeout),
		provider.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.ProviderTimeout),
		resolver,
	)

	// Tiered enrichment cache: one Redis tier per provider.
	primaryTier := redis.New(redis.Config{URL: cfg.CacheRedisURL})
	fallbackTier := redis.New(redis.Config{URL: cfg.FallbackCacheRedisURL})
	defer primaryTier.Close()
	defer fallbackTier.Close()
	tieredCache := cache.New(primaryTier, fallbackTier, cfg.CacheRetention)

	// Recommendation pipeline
	engine := ranking.NewEngine(cfg.SafetyMargin, cfg.ReachBuffer)
	enricher := recommender.NewEnricher(tieredCache, orchestrator)
	pipeline := recommender.NewPipeline(
		database,
		engine,
		enricher,
		resolver,
		ranking.Distribution{Safe: cfg.SafeShare, Target: cfg.TargetShare, Reach: cfg.ReachShare},
		cfg.EnrichWorkers,
		cfg.EnrichTimeout,
	)

	// Metrics
	metrics.Init(database)

	// HTTP server
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, pipeline, keys); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

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
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
