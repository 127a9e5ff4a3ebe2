package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogservice "domainstore/internal/catalog/service"
	catalogstore "domainstore/internal/catalog/store"
	"domainstore/internal/comment"
	"domainstore/internal/platform/config"
	"domainstore/internal/platform/httpserver"
	"domainstore/internal/platform/logger"
	"domainstore/internal/platform/metrics"
	"domainstore/internal/purchase"
	"domainstore/internal/session"
	ticketservice "domainstore/internal/ticket/service"
	ticketstore "domainstore/internal/ticket/store"
	httptransport "domainstore/internal/transport/http"
	"domainstore/internal/upstream"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	client := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, log)
	scope := upstream.Scope(cfg.UpstreamScope)

	catalogStore := catalogstore.NewInMemoryCatalogStore()
	catalogSvc := catalogservice.New(client, catalogStore, scope, m, log)

	statusStore := ticketstore.NewInMemoryStatusStore()
	ticketSvc := ticketservice.New(client, catalogStore, statusStore, m, log)

	purchaseSvc := purchase.New(client, scope, catalogStore, ticketSvc, cfg.AbsentMeansSold, m, log)
	commentSvc := comment.New(client, log)
	sessions := session.NewManager()

	// Warm the catalog before taking traffic; a failed first fetch is not
	// fatal, the store stays empty until a refresh succeeds.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), cfg.UpstreamTimeout)
	if err := catalogSvc.Refresh(startupCtx); err != nil {
		log.Warn("initial catalog load failed", "error", err)
	}
	cancelStartup()

	handler := httptransport.NewHandler(catalogSvc, ticketSvc, purchaseSvc, commentSvc, sessions, log)
	router := httptransport.NewRouter(handler, cfg.BotToken, cfg.SkipInitDataCheck)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting domainstore", "addr", cfg.Addr, "scope", string(scope))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
