package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/user/a11y-scraper/internal/adapter/chromedp_fetcher"
	"github.com/user/a11y-scraper/internal/adapter/postgres"
	redis_adapter "github.com/user/a11y-scraper/internal/adapter/redis"
	"github.com/user/a11y-scraper/internal/delivery/http/handler"
	"github.com/user/a11y-scraper/internal/delivery/http/router"
	"github.com/user/a11y-scraper/internal/usecase"
	"github.com/user/a11y-scraper/pkg/config"
	"github.com/user/a11y-scraper/pkg/logger"
	"github.com/user/a11y-scraper/pkg/metrics"
)

// queuePollInterval is how long an idle worker sleeps between queue polls.
const queuePollInterval = 2 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	slog.Info("Logger initialized", "level", cfg.LogLevel)

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// PostgreSQL
	dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	slog.Info("PostgreSQL connection pool established")

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("Redis connection established")

	// Repositories
	productRepo := postgres.NewProductRepo(dbpool)
	queueRepo := redis_adapter.NewQueueRepo(rdb)
	visitedRepo := redis_adapter.NewVisitedRepo(rdb)

	if err := productRepo.Init(ctx); err != nil {
		slog.Error("Failed to initialize database schema", "error", err)
		os.Exit(1)
	}

	fetcher, err := chromedp_fetcher.NewChromedpFetcher(cfg.ScrapeWorkers, cfg.PageLoadTimeout())
	if err != nil {
		slog.Error("Failed to initialize browser fetcher", "error", err)
		os.Exit(1)
	}

	// Use cases
	scraper := usecase.NewScraper(fetcher, productRepo, queueRepo)
	urlManager := usecase.NewURLManager(visitedRepo, queueRepo, productRepo, cfg.DeduplicationWindow())
	catalog := usecase.NewCatalog(productRepo)

	// Workers
	var workers sync.WaitGroup
	for i := 0; i < cfg.ScrapeWorkers; i++ {
		workers.Add(1)
		go func(id int) {
			defer workers.Done()
			runWorker(ctx, id, scraper)
		}(i)
	}
	slog.Info("Scrape workers started", "count", cfg.ScrapeWorkers)

	// HTTP server
	apiHandler := handler.NewHandler(urlManager, catalog, map[string]handler.HealthCheck{
		"postgres": dbpool.Ping,
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router.New(apiHandler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shut down", "error", err)
	}

	workers.Wait()
	slog.Info("Shutdown complete")
}

// runWorker polls the scrape queue until the context is cancelled.
func runWorker(ctx context.Context, id int, scraper usecase.Scraper) {
	for {
		if err := scraper.ProcessQueue(ctx); err != nil {
			slog.Error("Worker failed to process queue entry", "worker", id, "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(queuePollInterval):
		}
	}
}
