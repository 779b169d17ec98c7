package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"showroom-gallery/internal/catalog"
	"showroom-gallery/internal/handlers"
	"showroom-gallery/internal/logging"
	"showroom-gallery/internal/manifest"
	"showroom-gallery/internal/metrics"
	"showroom-gallery/internal/middleware"
	"showroom-gallery/internal/startup"
	"showroom-gallery/internal/storage"
)

func main() {
	startTime := time.Now()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	settings, err := startup.LoadSettings(config.SettingsFile, config.ContactPhone)
	if err != nil {
		startup.LogFatal("Settings error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Snapshot cache (optional; disabled when the cache dir is unwritable)
	var cache *catalog.Cache
	if config.CacheEnabled {
		cacheStart := time.Now()
		cache, err = catalog.OpenCache(ctx, config.CachePath)
		if err != nil {
			logging.Warn("Snapshot cache unavailable: %v", err)
		} else {
			defer cache.Close()
			startup.LogCacheInit(time.Since(cacheStart))
		}
	}

	// Manifest loader, with S3 routing when credentials are configured
	loader := manifest.NewLoader(config.ManifestJSONURL, config.ManifestCSVURL, settings.Rules)
	if config.S3.Configured() {
		s3Fetcher, err := storage.NewS3Fetcher(config.S3)
		if err != nil {
			startup.LogFatal("Failed to initialize S3 fetcher: %v", err)
		}
		loader.RegisterFetcher("s3", s3Fetcher)
	}

	// Catalog and reloader
	startup.LogReloaderInit(config.ReloadInterval)
	cat := catalog.New(settings.Rules)
	reloader := catalog.NewReloader(cat, loader, cache, config.ReloadInterval)
	go reloader.Start(ctx)

	// Handlers and router
	h := handlers.New(cat, reloader, cache, settings.Contact)
	router := setupRouter(h)
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(router)
	handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	handler = middleware.Compression(middleware.DefaultCompressionConfig())(handler)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metrics.InitializeMetrics()
		metricsSrv = startMetricsServer(config.MetricsPort)
	}

	go handleShutdown(cancel, srv, metricsSrv, reloader)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Gallery API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/items", h.ListItems).Methods("GET")
	api.HandleFunc("/items/{id}", h.GetItem).Methods("GET")
	api.HandleFunc("/facets", h.GetFacets).Methods("GET")
	api.HandleFunc("/manifest/status", h.GetManifestStatus).Methods("GET")
	api.HandleFunc("/manifest/history", h.GetLoadHistory).Methods("GET")
	api.HandleFunc("/manifest/reload", h.TriggerReload).Methods("POST")
	api.HandleFunc("/links/whatsapp", h.GetWhatsAppLink).Methods("GET")
	api.HandleFunc("/links/call", h.GetCallLink).Methods("GET")

	return r
}

func startMetricsServer(port string) *http.Server {
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     metricsMux,
		ReadTimeout: 15 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logging.Error("Metrics server error: %v", err)
		}
	}()

	return srv
}

func handleShutdown(cancel context.CancelFunc, srv, metricsSrv *http.Server, reloader *catalog.Reloader) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	// Cancel in-flight manifest loads first, then stop the reload loop.
	cancel()
	reloader.Stop()
	startup.LogShutdownStepComplete("Reloader stopped")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logging.Error("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server shutdown error: %v", err)
	}
	startup.LogShutdownStepComplete("HTTP server stopped")
	startup.LogShutdownComplete()
}
