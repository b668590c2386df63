package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/store-inventory/internal/alerts"
	"github.com/rogerio-castellano/store-inventory/internal/config"
	"github.com/rogerio-castellano/store-inventory/internal/db"
	api "github.com/rogerio-castellano/store-inventory/internal/http"
	"github.com/rogerio-castellano/store-inventory/internal/http/handlers"
	rl "github.com/rogerio-castellano/store-inventory/internal/http/rate_limiter"
	"github.com/rogerio-castellano/store-inventory/internal/inventory"
	"github.com/rogerio-castellano/store-inventory/internal/report"
	"github.com/rogerio-castellano/store-inventory/internal/repo"
)

// @title Store Inventory API
// @version 1.0
// @description REST API for a single store's products, customers, sales and supplier deliveries.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database); err != nil {
		log.Fatal("❌ Could not apply schema:", err)
	}

	store := repo.NewPostgresStore(database, cfg.QueryTimeout)
	svc := inventory.NewService(store)

	var notifier alerts.Notifier
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Could not connect to Redis: %v", err)
		}
		defer rdb.Close()
		notifier = alerts.NewRedisNotifier(rdb, cfg.AlertsKeep)
	} else {
		log.Println("REDIS_ADDR not set, low stock alerts are kept in memory")
		notifier = alerts.NewLogNotifier(cfg.AlertsKeep)
	}

	limiter := rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute, 5*time.Minute)

	srv := handlers.NewServer(svc, report.NewGenerator(svc, cfg.ReportWindowDays), notifier)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(srv, limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
		}
	}()

	log.Printf("✅ Server running on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
