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

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/adapters/cache"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/adapters/database"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/adapters/events"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/adapters/providers/geolocation"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/adapters/providers/payment"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/adapters/search"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/handlers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/middleware"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/routes"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/application/services"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/entities"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/providers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/repositories"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/postgres"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/redis"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/clients/typesense"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/notifications"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/observability"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/auth"
	"github.com/Aryaman129/play-nest-nagpur-sub001/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("playnest-api", cfg.Environment)

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

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisClient = nil
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize adapters

	baseTurfAdapter := database.NewTurfAdapter(pgClient)

	// Wrap with caching if Redis is available (for read performance optimization)
	var turfAdapter repositories.TurfRepository
	if cacheProvider != nil {
		turfAdapter = database.NewCachedTurfAdapter(baseTurfAdapter, cacheProvider)
		log.Println("Turf adapter wrapped with caching layer")
	} else {
		turfAdapter = baseTurfAdapter
		log.Println("Turf adapter running without cache (Redis unavailable)")
	}

	bookingAdapter := database.NewBookingAdapter(pgClient)
	slotAdapter := database.NewSlotAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	notificationAdapter := database.NewNotificationAdapter(pgClient)
	waitlistAdapter := database.NewWaitlistAdapter(pgClient)

	var searchRepo repositories.TurfSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)

		// Ensure schema exists
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}

		searchRepo = adapter
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

	paymentProvider := payment.NewPaymentProvider(&cfg.Payment)

	// Initialize outbound notification channels (both optional)
	var whatsappSender services.WhatsAppSender
	if sender, err := notifications.NewWhatsAppCloudSender(&cfg.Notifier); err != nil {
		log.Printf("Warning: WhatsApp sender disabled: %v", err)
	} else {
		whatsappSender = sender
	}

	var ownerAlerter services.OwnerAlerter
	if notifier, err := notifications.NewTelegramNotifier(&cfg.Notifier); err != nil {
		log.Printf("Warning: Telegram owner alerts disabled: %v", err)
	} else {
		ownerAlerter = notifier
	}

	// Initialize services

	tokenIssuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL)

	turfService := services.NewTurfService(turfAdapter, searchRepo)
	bookingService := services.NewBookingService(bookingAdapter, slotAdapter, waitlistAdapter, turfAdapter, eventBus)
	paymentService := services.NewPaymentService(paymentProvider, bookingAdapter, eventBus, cfg.Payment.CallTimeout)
	receiptService := services.NewReceiptService(bookingAdapter, turfAdapter)
	authService := services.NewAuthService(userAdapter, tokenIssuer)
	ownerService := services.NewOwnerService(turfAdapter, bookingAdapter)
	notificationService := services.NewNotificationService(
		notificationAdapter,
		bookingAdapter,
		turfAdapter,
		eventBus,
		whatsappSender,
		ownerAlerter,
	)

	// A settled payment confirms the booking and issues the check-in token
	paymentService.OnCompletion(func(ctx context.Context, details *entities.PaymentDetails) {
		if _, err := bookingService.Confirm(ctx, details.BookingID); err != nil {
			log.Printf("Failed to confirm booking %s after payment: %v", details.BookingID, err)
			return
		}
		observability.RecordPaymentMetric(ctx, metrics, "success")
	})

	// Consume booking events into notifications
	if eventBus != nil {
		go func() {
			if err := notificationService.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("Notification consumer stopped: %v", err)
			}
		}()
		log.Println("Notification consumer started")
	}

	// Initialize handlers

	turfHandler := handlers.NewTurfHandler(turfService)
	bookingHandler := handlers.NewBookingHandler(bookingService, turfAdapter, userAdapter)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	receiptHandler := handlers.NewReceiptHandler(receiptService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	authHandler := handlers.NewAuthHandler(authService)
	ownerHandler := handlers.NewOwnerHandler(ownerService, turfAdapter, userAdapter)
	geolocationHandler := handlers.NewGeolocationHandler(geolocationProvider)
	sseHandler := handlers.NewSSEHandler(eventBus)

	authMiddleware := middleware.NewAuthMiddleware(tokenIssuer)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		turfHandler,
		bookingHandler,
		paymentHandler,
		receiptHandler,
		notificationHandler,
		authHandler,
		ownerHandler,
		geolocationHandler,
		sseHandler,
		authMiddleware,
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
