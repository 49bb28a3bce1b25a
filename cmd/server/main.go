package main // Entry point package

import (
	"context"
	"errors"
	"log" // Logging library
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/approval"
	"github.com/iliyamo/hotel-booking-gateway/internal/config" // Internal config loader
	"github.com/iliyamo/hotel-booking-gateway/internal/database"
	"github.com/iliyamo/hotel-booking-gateway/internal/favorites"
	"github.com/iliyamo/hotel-booking-gateway/internal/handler"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
	"github.com/iliyamo/hotel-booking-gateway/internal/queue"
	"github.com/iliyamo/hotel-booking-gateway/internal/repository"
	"github.com/iliyamo/hotel-booking-gateway/internal/review"
	"github.com/iliyamo/hotel-booking-gateway/internal/router" // Internal router setup
	"github.com/iliyamo/hotel-booking-gateway/internal/search"
	queue_publisher "github.com/iliyamo/hotel-booking-gateway/internal/service"
	"github.com/iliyamo/hotel-booking-gateway/internal/session"
)

func main() {
	cfg := config.Load() // Load environment config
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := apiclient.New(cfg.BackendURL, cfg.BackendTimeout)

	// Redis backs the cache, the rate limiter and the favorites lists.
	rdb := config.NewRedisClient(cfg.Redis)
	var favStore favorites.Store
	if rdb != nil {
		defer rdb.Close()
		favStore = favorites.NewRedisStore(rdb, cfg.Favorites.Prefix, cfg.Favorites.TTL)
		log.Printf("redis: connected")
	} else {
		favStore = favorites.NewMemoryStore()
		log.Printf("redis: unavailable; cache and rate limit disabled, favorites kept in memory")
	}

	// Booking history: MySQL store fed by the RabbitMQ consumer, or directly
	// when no broker is configured.
	var (
		history handler.HistoryStore
		events  handler.StatusEvents = queue_publisher.New(cfg.Rabbit.URL)
	)
	if cfg.DB.Enabled() {
		db, err := database.Open(cfg.DB)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		if err := database.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("database: %v", err)
		}
		repo := repository.NewEventRepo(db)
		history = repo
		if cfg.Rabbit.URL != "" {
			go func() {
				if err := queue.StartBookingConsumer(ctx, cfg.Rabbit.URL, repo); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("booking-consumer: stopped: %v", err)
				}
			}()
		} else {
			events = queue.Direct{Sink: repo}
		}
	}

	tracker := approval.NewTracker(api)
	poller, err := tracker.Start(cfg.Approval.Schedule)
	if err != nil {
		log.Fatalf("approval: %v", err)
	}
	defer poller.Stop()

	purge := func(ctx context.Context) { middleware.PurgeCache(ctx, cfg.Cache, rdb) }
	cookies := session.Policy{
		TTL:         cfg.Session.TTL,
		RememberTTL: cfg.Session.RememberTTL,
		Secure:      cfg.IsProduction(),
		Domain:      cfg.Session.Domain,
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.OptionalSession(cfg.JWTSecret))
	e.Use(middleware.NewTokenBucket(cfg.RateLimit, rdb))

	router.RegisterRoutes(e) // Register application routes
	router.RegisterAuth(e, handler.NewAuthHandler(api, cookies, tracker), cfg.JWTSecret)
	router.RegisterPublic(e,
		handler.NewPublicHandler(api, search.NewService(api, search.NewDebouncer(cfg.Search.Debounce))),
		middleware.NewRedisCache(cfg.Cache, rdb))
	router.RegisterCustomer(e,
		handler.NewCustomerHandler(api, review.NewChecker(api, review.DefaultConcurrency), events, history),
		handler.NewFavoritesHandler(favorites.NewService(api, favStore)),
		cfg.JWTSecret)
	router.RegisterOwner(e,
		handler.NewOwnerHandler(api, events, history, purge),
		handler.NewApprovalHandler(tracker),
		tracker,
		cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(api, purge), cfg.JWTSecret)

	addr := ":" + cfg.Port                                                            // Address string with port
	log.Printf("listening on %s (env=%s, backend=%s)", addr, cfg.Env, cfg.BackendURL) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) { // Start HTTP server
			log.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
