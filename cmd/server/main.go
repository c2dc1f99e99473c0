package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"repurpose/backend/internal/config"
	"repurpose/backend/internal/db"
	"repurpose/backend/internal/handler"
	transport "repurpose/backend/internal/http"
	"repurpose/backend/internal/logger"
	"repurpose/backend/internal/network"
	"repurpose/backend/internal/repository"
	"repurpose/backend/internal/service"
	"repurpose/backend/internal/service/ai"
	"repurpose/backend/internal/service/anubis"
	"repurpose/backend/internal/service/article"
	"repurpose/backend/internal/snowflake"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	if err := snowflake.Init(cfg.NodeID); err != nil {
		logger.Error("snowflake init", "module", "main", "action", "start", "resource", "snowflake", "result", "failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		recorder    service.Recorder = service.NopRecorder{}
		asyncRec    *service.AsyncRecorder
		conversions repository.ConversionRepository
	)
	if cfg.Store.Enabled() {
		driver, dsn, err := db.ParseStoreURL(cfg.Store.URL, cfg.Store.Token)
		if err != nil {
			logger.Error("parse store url", "module", "main", "action", "start", "resource", "store", "result", "failed", "error", err)
			os.Exit(1)
		}
		storeHandle, err := db.Open(driver, dsn)
		if err != nil {
			logger.Error("open store", "module", "main", "action", "start", "resource", "store", "result", "failed", "driver", driver, "error", err)
			os.Exit(1)
		}
		defer storeHandle.Close()

		conversions = repository.NewConversionRepository(storeHandle, driver)
		asyncRec = service.NewAsyncRecorder(conversions, service.DefaultRecordQueueSize)
		asyncRec.Start()
		recorder = asyncRec
		logger.Info("persistence enabled", "module", "main", "action", "start", "resource", "store", "result", "ok", "driver", driver)
	} else {
		logger.Info("persistence disabled", "module", "main", "action", "start", "resource", "store", "result", "skipped")
	}

	aiConfig := ai.Config{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		BaseURL:  cfg.AI.BaseURL,
		Model:    cfg.AI.Model,
	}
	if aiConfig.Model == "" {
		aiConfig.Model = ai.DefaultModel(aiConfig.Provider)
	}
	if aiConfig.APIKey == "" {
		logger.Warn("ai api key missing, conversions will fail", "module", "main", "action", "start", "resource", "provider", "result", "failed", "provider", aiConfig.Provider)
	}

	clientFactory := network.NewClientFactory(cfg.Fetch.ProxyURL)
	solver := anubis.NewSolver(clientFactory.NewHTTPClient(cfg.Fetch.Timeout), anubis.NewCookieCache())
	extractor := article.NewExtractor(article.NewFetcher(cfg.Fetch, clientFactory, solver))
	limiter := ai.NewRateLimiter(cfg.AI.RateLimit)

	convertService := service.NewConvertService(extractor, aiConfig, ai.NewProvider, limiter, cfg.AI.Timeout, recorder)
	conversionService := service.NewConversionService(conversions)
	exportService := service.NewExportService()

	router := transport.NewRouter(
		handler.NewConvertHandler(convertService),
		handler.NewExportHandler(exportService),
		handler.NewConversionHandler(conversionService),
		handler.NewHealthHandler(aiConfig.Provider, aiConfig.Model, cfg.Store.Enabled()),
		cfg.StaticDir,
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "module", "main", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr, "fetch_mode", cfg.Fetch.Mode, "rate_limit", limiter.Limit())
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down", "module", "main", "action", "stop", "resource", "http", "result", "ok")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := router.Shutdown(shutdownCtx)
		if asyncRec != nil {
			asyncRec.Stop()
		}
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited", "module", "main", "action", "stop", "resource", "http", "result", "failed", "error", err)
		os.Exit(1)
	}
}
