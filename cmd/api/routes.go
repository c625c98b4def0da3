package main

import (
	"context"
	"net/http"
	"time"

	"orderservice/internal/httpx"
	"orderservice/internal/order"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	orders       *order.HTTPHandler
	db           pinger
	jwtSecret    string
	rateLimiter  *httpx.RateLimiter
	maxBodyBytes int64
}

func newRouter(d routerDeps) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	auth := httpx.AuthMiddleware(d.jwtSecret)
	router.Handle("POST /orders", auth(http.HandlerFunc(d.orders.Submit)))
	router.Handle("GET /orders", auth(http.HandlerFunc(d.orders.List)))
	router.Handle("GET /orders/{id}", auth(http.HandlerFunc(d.orders.Get)))

	middlewares := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware,
	}
	if d.rateLimiter != nil {
		middlewares = append(middlewares, d.rateLimiter.Middleware)
	}
	middlewares = append(middlewares, httpx.RequestSizeLimitMiddleware(d.maxBodyBytes))

	return httpx.Chain(router, middlewares...)
}
