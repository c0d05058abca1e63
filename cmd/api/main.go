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

	"github.com/lifeline-health/bedfinder/internal/adapters/cache"
	"github.com/lifeline-health/bedfinder/internal/adapters/database"
	"github.com/lifeline-health/bedfinder/internal/adapters/events"
	"github.com/lifeline-health/bedfinder/internal/adapters/memory"
	"github.com/lifeline-health/bedfinder/internal/adapters/providers/geolocation"
	"github.com/lifeline-health/bedfinder/internal/api/handlers"
	"github.com/lifeline-health/bedfinder/internal/api/middleware"
	"github.com/lifeline-health/bedfinder/internal/api/routes"
	"github.com/lifeline-health/bedfinder/internal/application/services"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/providers"
	"github.com/lifeline-health/bedfinder/internal/domain/repositories"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/clients/openai"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/clients/postgres"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/clients/redis"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/observability"
	"github.com/lifeline-health/bedfinder/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client; fall back to the in-memory stores when
	// Postgres is unreachable so the dashboard still works standalone
	var facilityRepo repositories.FacilityRepository
	var bookingRepo repositories.BookingRepository

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Printf("Warning: PostgreSQL unavailable, using in-memory stores: %v", err)
		facilityRepo = memory.NewFacilityStore()
		bookingRepo = memory.NewBookingStore()
	} else {
		defer pgClient.Close()
		facilityRepo = database.NewFacilityAdapter(pgClient, metrics)
		bookingRepo = database.NewBookingAdapter(pgClient, metrics)
		log.Println("PostgreSQL client initialized successfully")
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Wrap facilities with caching if Redis is available
	if cacheProvider != nil && pgClient != nil {
		facilityRepo = database.NewCachedFacilityAdapter(facilityRepo, cacheProvider)
		log.Println("Facility adapter wrapped with caching layer")
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	var geolocationProvider providers.GeolocationProvider
	switch cfg.Geolocation.Provider {
	case "google":
		if cfg.Geolocation.APIKey == "" {
			log.Println("Warning: GEOLOCATION_API_KEY is not set; using mock geolocation provider")
			geolocationProvider = geolocation.NewMockGeolocationProvider()
		} else {
			geolocationProvider = geolocation.NewGoogleGeolocationProvider(cfg.Geolocation.APIKey, cacheProvider)
		}
	default:
		geolocationProvider = geolocation.NewMockGeolocationProvider()
	}

	var triageProvider providers.TriageProvider
	if cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; triage resolves to fallback text")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
		} else {
			triageProvider = openaiClient
		}
	}

	// Initialize services
	discoveryService := services.NewDiscoveryService(facilityRepo)
	inventoryService := services.NewInventoryService(facilityRepo, eventBus, metrics)
	bookingService := services.NewBookingService(bookingRepo, inventoryService, metrics)
	triageService := services.NewTriageService(facilityRepo, triageProvider)

	defaultLocation := entities.Location{
		Latitude:  cfg.Geolocation.DefaultLatitude,
		Longitude: cfg.Geolocation.DefaultLongitude,
	}

	// Initialize handlers
	facilityHandler := handlers.NewFacilityHandler(discoveryService, defaultLocation)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	triageHandler := handlers.NewTriageHandler(triageService)
	geolocationHandler := handlers.NewGeolocationHandler(geolocationProvider)
	mapsHandler := handlers.NewMapsHandler(discoveryService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		facilityHandler,
		inventoryHandler,
		bookingHandler,
		triageHandler,
		geolocationHandler,
		mapsHandler,
		sseHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
