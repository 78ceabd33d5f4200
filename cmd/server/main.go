package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/marlondridley/FarME/config"
	httpDelivery "github.com/marlondridley/FarME/internal/delivery/http"
	"github.com/marlondridley/FarME/internal/domain"
	"github.com/marlondridley/FarME/internal/infrastructure/ai"
	"github.com/marlondridley/FarME/internal/infrastructure/assets"
	"github.com/marlondridley/FarME/internal/infrastructure/cache"
	"github.com/marlondridley/FarME/internal/infrastructure/notify"
	"github.com/marlondridley/FarME/internal/infrastructure/store"
	"github.com/marlondridley/FarME/internal/infrastructure/usda"
	"github.com/marlondridley/FarME/internal/seed"
	"github.com/marlondridley/FarME/internal/usecase"
)

func main() {
	// Load configuration (.env first, then env vars and config file)
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting FarME Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	if cfg.Database.URL == "" {
		log.Fatalf("Database URL is required (set FARME_DATABASE_URL)")
	}
	db, err := store.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Infrastructure
	memoryCache := cache.NewMemoryCache()
	placeholders := usecase.NewPlaceholders(nil)

	usdaClient := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL, placeholders)
	if cfg.Server.Environment == "development" || cfg.USDA.Debug {
		usdaClient.SetDebug(true)
		log.Printf("USDA client debug mode enabled")
	}
	if cfg.USDA.APIKey != "" {
		log.Printf("USDA directory API configured: %s", cfg.USDA.BaseURL)
	} else {
		log.Printf("WARNING: no USDA API key configured, explore will serve fallback data")
	}

	var advisor domain.Advisor = ai.Disabled{}
	if cfg.AI.APIKey != "" {
		a, err := ai.NewAdvisor(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Fatalf("Failed to create AI advisor: %v", err)
		}
		advisor = a
		log.Printf("AI advisor configured: %s", cfg.AI.Model)
	} else {
		log.Printf("WARNING: no AI API key configured, advisor endpoints disabled")
	}

	var publisher domain.NotificationPublisher = notify.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := notify.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Printf("Order notifications publishing to topic %q", cfg.Kafka.Topic)
	}

	var resolver domain.AssetResolver = assets.Static{}
	if cfg.Assets.Endpoint != "" {
		m, err := assets.NewMinIO(ctx, assets.Config{
			Endpoint:  cfg.Assets.Endpoint,
			AccessKey: cfg.Assets.AccessKey,
			SecretKey: cfg.Assets.SecretKey,
			Bucket:    cfg.Assets.Bucket,
			UseSSL:    cfg.Assets.UseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to asset storage: %v", err)
		}
		resolver = m
	}

	// Usecase layer
	exploreService := usecase.NewExploreService(
		usdaClient, advisor, memoryCache, resolver, placeholders, seed.Listings(),
		usecase.ExploreConfig{
			DefaultRadiusMiles: cfg.USDA.RadiusMiles,
			DirectoryTimeout:   cfg.USDA.Timeout,
			GeocodeTTL:         cfg.Cache.TTL,
		},
	)
	farmService := usecase.NewFarmService(db.Farms(), resolver, seed.Farms(), seed.Products(), seed.DetailProducts())
	orderService := usecase.NewOrderService(db.Orders(), farmService, advisor, publisher)
	suggestionService := usecase.NewSuggestionService(advisor)

	// HTTP delivery
	handler := httpDelivery.NewHandler(exploreService, farmService, orderService, suggestionService, db.Users())
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	stop()
	log.Printf("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Printf("Server stopped")
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
