// cmd/outreach-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"conference-outreach/internal/cache"
	"conference-outreach/internal/common/aws"
	"conference-outreach/internal/common/config"
	"conference-outreach/internal/common/database"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/common/observability"
	"conference-outreach/internal/jobs"
	"conference-outreach/internal/notify"
	"conference-outreach/internal/providers/genai"
	"conference-outreach/internal/providers/profile"
	"conference-outreach/internal/providers/search"
	"conference-outreach/internal/server"
	"conference-outreach/internal/stages/compose"
	"conference-outreach/internal/stages/intake"
	"conference-outreach/internal/stages/report"
	"conference-outreach/internal/stages/research"
	"conference-outreach/internal/stages/send"
	"conference-outreach/internal/store"
	"conference-outreach/internal/tracker"
	"conference-outreach/internal/workflow"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting outreach server...")

	obs := observability.New("outreach-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Durable store ---
	var st store.Store
	switch cfg.Database.Backend {
	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		pgStore := store.NewPostgres(pg)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("schema migration failed", zap.Error(err))
		}
		st = pgStore
		zapLog.Info("PostgreSQL store ready")

	default:
		st = store.NewMemory()
		zapLog.Info("In-memory store ready")
	}

	// --- Elasticsearch (optional, send-log indexing) ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Redis (optional, research cache) ---
	var redisClient *database.RedisClient
	if cfg.Database.Redis.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Providers ---
	searchClient := search.NewClient(&search.Config{
		BaseURL:         cfg.Providers.Search.BaseURL,
		APIKey:          cfg.Providers.Search.APIKey,
		Timeout:         config.GetDuration(cfg.Providers.Search.Timeout),
		ResultsPerQuery: cfg.Research.ResultsPerQuery,
	}, log)
	profileClient := profile.NewClient(&profile.Config{
		BaseURL: cfg.Providers.Profile.BaseURL,
		APIKey:  cfg.Providers.Profile.APIKey,
		Timeout: config.GetDuration(cfg.Providers.Profile.Timeout),
	}, log)
	genaiClient := genai.NewClient(&genai.Config{
		BaseURL:    cfg.Providers.GenAI.BaseURL,
		APIKey:     cfg.Providers.GenAI.APIKey,
		Model:      cfg.Providers.GenAI.Model,
		Timeout:    config.GetDuration(cfg.Providers.GenAI.Timeout),
		MaxRetries: cfg.Providers.GenAI.MaxRetries,
	}, log)

	researchCache := cache.New(redisClient, time.Duration(cfg.Research.CacheTTL)*time.Second, log)

	// --- Pipeline stages ---
	approvalTracker := tracker.New(st, log)

	intakeConfig := intake.LoadConfig()
	intakeConfig.EventPageURL = cfg.Intake.EventPageURL
	intakeConfig.AllowPlaceholderFallback = cfg.Intake.AllowPlaceholderFallback
	intakeConfig.PlaceholderCount = cfg.Intake.PlaceholderCount
	intakeHandler := intake.NewHandler(intakeConfig, searchClient, st, approvalTracker, log)

	researchHandler := research.NewHandler(searchClient, profileClient, researchCache, log)
	composeHandler := compose.NewHandler(researchHandler, genaiClient, st, approvalTracker, log)

	sendConfig := send.LoadConfig()
	sendConfig.CaptureScreenshots = cfg.Send.CaptureScreenshots
	sendConfig.PlatformURL = cfg.Send.PlatformURL
	sendConfig.LogIndex = cfg.Database.Elasticsearch.SendIndex
	var indexer send.Indexer
	if esClient != nil {
		indexer = esClient
	}
	sendHandler := send.NewHandler(sendConfig, st, approvalTracker, indexer, log)

	reportHandler := report.NewHandler(report.LoadConfig(), st, approvalTracker, genaiClient, log)

	// --- Operator notifications ---
	var notifier notify.Notifier = notify.Noop{}
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		notifier = notify.NewOperator(&cfg.Notifications, sesClient, snsClient, log)
		zapLog.Info("Operator notifications enabled")
	}

	runner := workflow.NewRunner(intakeHandler, researchHandler, composeHandler, obs, log)
	jobManager := jobs.NewManager(runner, notifier, log)

	srv := server.New(intakeHandler, jobManager, approvalTracker, sendHandler, reportHandler, notifier, log)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: srv.Router(),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Outreach server stopped")
}
