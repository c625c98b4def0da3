package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"orderservice/internal/httpx"
	"orderservice/internal/order"
	"orderservice/internal/platform/catalog"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	loadEnvFiles()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	dbPool := mustOpenDB(cfg.DatabaseDSN)
	defer dbPool.Close()

	catalogCfg := catalog.DefaultConfig(cfg.CatalogURL)
	catalogCfg.Timeout = cfg.CatalogTimeout
	catalogCfg.MaxRetries = cfg.CatalogRetries
	catalogCfg.BackoffBase = cfg.CatalogBackoff
	catalogCfg.RPS = cfg.CatalogRPS
	bookClient := catalog.NewClient(catalogCfg)

	orderRepository := order.NewPostgresRepo(dbPool, cfg.DBQueryTimeout)
	orderService := order.NewService(orderRepository, bookClient)

	rateLimiter := httpx.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Close()

	httpServer := &http.Server{
		Addr: cfg.Addr,
		Handler: newRouter(routerDeps{
			orders:       order.NewHTTPHandler(orderService),
			db:           dbPool,
			jwtSecret:    cfg.JWTSecret,
			rateLimiter:  rateLimiter,
			maxBodyBytes: cfg.MaxBodyBytes,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting server addr=%s catalog_url=%s", cfg.Addr, cfg.CatalogURL)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
