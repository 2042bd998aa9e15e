package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"redstring/internal/client"
	"redstring/internal/infra"
	"redstring/internal/infra/geoip"
	"redstring/internal/web"
)

func main() {
	infra.LoadDotEnv()

	cfg, err := infra.LoadConfig(infra.RequireAPIBaseURL)
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "web")

	api, err := client.New(client.Options{
		BaseURL:        cfg.APIBaseURL,
		Logger:         &logger,
		RequestTimeout: cfg.APITimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid API_BASE_URL")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.GeoIPDBPath).Msg("geoip disabled")
	}
	defer resolver.Close()

	srv, err := web.NewServer(api, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load templates")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := web.NewRouter(srv, web.RouterOptions{
		CountryLookup:   resolver.Lookup(),
		RateLimitPerMin: cfg.RateLimitPerMin,
		Registry:        registry,
	})

	server := infra.NewHTTPServer(cfg, cfg.WebPort, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("api", api.BaseURL()).Msg("web listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
