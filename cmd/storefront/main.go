package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Goga-Rid/pitza/internal/account"
	"github.com/Goga-Rid/pitza/internal/backend"
	"github.com/Goga-Rid/pitza/internal/cart"
	"github.com/Goga-Rid/pitza/internal/catalog"
	"github.com/Goga-Rid/pitza/internal/checkout"
	"github.com/Goga-Rid/pitza/internal/favorites"
	"github.com/Goga-Rid/pitza/internal/orders"
	"github.com/Goga-Rid/pitza/internal/reviews"
	"github.com/Goga-Rid/pitza/internal/session"
	"github.com/Goga-Rid/pitza/internal/storage"
	"github.com/Goga-Rid/pitza/internal/web"
)

type Config struct {
	HTTPPort        string
	BackendURL      string
	RedisAddr       string
	StateDir        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "3000"),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:8080/api"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		StateDir:        getEnv("STATE_DIR", ".pitza"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		log.Fatalf("create state dir: %v", err)
	}

	st := session.New(storage.NewFile(filepath.Join(cfg.StateDir, "token")))

	client, err := backend.New(backend.Config{
		BaseURL:        cfg.BackendURL,
		Token:          st.Token,
		OnUnauthorized: st.Invalidate,
	})
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}

	// Cart contents and the catalog cache go to redis when configured,
	// otherwise the cart falls back to a local file and the catalog is
	// fetched fresh each time.
	var (
		cartStorage  cart.Storage
		catalogCache catalog.Cache
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		cancel()

		cartStorage = cart.NewRedisStorage(rdb, "local")
		catalogCache = catalog.NewRedisCache(rdb)
		log.Printf("using redis at %s", cfg.RedisAddr)
	} else {
		cartStorage = cart.NewFileStorage(storage.NewFile(filepath.Join(cfg.StateDir, "cart.json")))
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	cartStore := cart.New(loadCtx, cartStorage)
	cancel()

	catalogSvc := catalog.NewService(client, catalogCache)

	deps := web.Deps{
		Session:   st,
		Cart:      cartStore,
		Catalog:   catalogSvc,
		Favorites: favorites.NewService(client),
		Checkout:  checkout.NewFlow(st, cartStore, client),
		Orders:    orders.NewService(client),
		Reviews:   reviews.NewService(client, catalogSvc),
		Account:   account.NewService(client, st),
		API:       client,
		Timeout:   cfg.RequestTimeout,
	}

	// Resolve the persisted token in the background; protected pages hold
	// on the loading state until this finishes.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		st.Init(ctx, client)
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      web.Handler(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s (backend %s)", cfg.HTTPPort, cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
