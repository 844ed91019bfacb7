package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hrsearch/internal/config"
	"github.com/kailas-cloud/hrsearch/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/hrsearch/internal/db/redis"
	"github.com/kailas-cloud/hrsearch/internal/domain"
	logpkg "github.com/kailas-cloud/hrsearch/internal/logger"
	"github.com/kailas-cloud/hrsearch/internal/metrics"
	"github.com/kailas-cloud/hrsearch/internal/observability"
	budgetrepo "github.com/kailas-cloud/hrsearch/internal/repository/budget"
	"github.com/kailas-cloud/hrsearch/internal/repository/embcache"
	employeerepo "github.com/kailas-cloud/hrsearch/internal/repository/employee"
	"github.com/kailas-cloud/hrsearch/internal/repository/profilevec"
	"github.com/kailas-cloud/hrsearch/internal/repository/querycache"
	"github.com/kailas-cloud/hrsearch/internal/textnorm"
	chiTransport "github.com/kailas-cloud/hrsearch/internal/transport/chi"
	"github.com/kailas-cloud/hrsearch/internal/transport/gemini"
	"github.com/kailas-cloud/hrsearch/internal/transport/kafka"
	openaiProv "github.com/kailas-cloud/hrsearch/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/hrsearch/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/hrsearch/internal/usecase/health"
	interpretuc "github.com/kailas-cloud/hrsearch/internal/usecase/interpret"
	profileuc "github.com/kailas-cloud/hrsearch/internal/usecase/profile"
	rankinguc "github.com/kailas-cloud/hrsearch/internal/usecase/ranking"
	usageuc "github.com/kailas-cloud/hrsearch/internal/usecase/usage"
	"github.com/kailas-cloud/hrsearch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting hrsearch API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing, logger)
	if err != nil {
		logger.Fatal("Failed to set up tracing", zap.Error(err))
	}

	// Redis and Valkey speak the same protocol for the commands we use.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:        cfg.Database.Addrs,
		Password:     cfg.Database.Password,
		WriteTimeout: time.Duration(cfg.Database.WriteTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer store.Close()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Cache store not ready", zap.Error(err))
	}
	logger.Info("Connected to cache store")

	pool, err := postgres.NewPool(ctx, postgres.Config{DSN: cfg.Postgres.DSN, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		logger.Fatal("Failed to create postgres pool", zap.Error(err))
	}
	defer pool.Close()
	if err := postgres.WaitForReady(ctx, pool, time.Duration(cfg.Postgres.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Postgres not ready", zap.Error(err))
	}
	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		logger.Info("Schema applied")
	}
	logger.Info("Connected to postgres")

	// Register metrics explicitly (no init())
	metrics.Register()

	completer, err := buildCompleter(ctx, cfg.AI.Completion, logger)
	if err != nil {
		logger.Fatal("Failed to create completion provider", zap.Error(err))
	}

	embCfg := cfg.AI.Embedding
	baseEmbedder := openaiProv.NewEmbedder(&openaiProv.Config{
		APIKey:         embCfg.APIKey,
		BaseURL:        embCfg.BaseURL,
		Model:          embCfg.Model,
		Provider:       embCfg.Provider,
		Timeout:        time.Duration(embCfg.TimeoutSec) * time.Second,
		RequestsPerSec: embCfg.RequestsPerSec,
		Logger:         logger,
	}, embCfg.Dimensions)

	// Single budget shared by both embedder chains and the usage service.
	budget := buildBudget(ctx, embCfg, store, logger)

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	var budgetChecker embeddinguc.BudgetChecker
	var budgetReporter usageuc.BudgetReporter
	if budget != nil {
		budgetChecker = budget
		budgetReporter = budget
	}

	// Profile texts are cached as profile vectors, so only the query chain gets the embedding cache.
	profileEmbedder := embeddinguc.NewInstrumentedEmbedder(
		baseEmbedder, embCfg.Provider, embCfg.Model, budgetChecker, logger,
	)
	queryEmbedder := buildQueryEmbedder(baseEmbedder, embCfg, cfg.Search, store, budgetChecker, logger)
	logger.Info("Embedders created",
		zap.String("provider", embCfg.Provider),
		zap.String("model", embCfg.Model),
		zap.Int("dimensions", embCfg.Dimensions),
	)

	norm := textnorm.New()
	employees := employeerepo.New(pool)
	vectors := profilevec.New(store, logger)

	interpreter := interpretuc.New(
		completer, norm,
		querycache.New(cfg.Search.QueryCacheSize, time.Duration(cfg.Search.QueryCacheTTLSec)*time.Second),
		interpretuc.Options{MaxTokens: cfg.AI.Completion.MaxTokens, Temperature: cfg.AI.Completion.Temperature},
		logger,
	)
	profileSvc := profileuc.New(
		vectors, employees, profileEmbedder, norm,
		profileuc.NewTruncator(embCfg.MaxInputTokens, logger),
		cfg.Search.MissConcurrency, logger,
	)
	w := cfg.Search.Weights
	engine := rankinguc.New(interpreter, employees, profileSvc, queryEmbedder, norm, rankinguc.Options{
		Weights: rankinguc.Weights{Semantic: w.Semantic, Grade: w.Grade, Overlap: w.Overlap, Reputation: w.Reputation},
		Limit:   cfg.Search.ResultLimit,
	}, logger)

	var completionChecker healthuc.ProviderChecker
	if hc, ok := completer.(domain.HealthChecker); ok {
		completionChecker = hc
	}
	healthSvc := healthuc.New(pool, store, baseEmbedder, completionChecker)
	usageSvc := usageuc.New(budgetReporter)

	server := chiTransport.NewServer(engine, profileSvc, usageSvc, healthSvc, logger)
	handler := chiTransport.NewRouter(server, cfg.HTTP, cfg.Auth.APIKeys, logger)

	if cfg.Events.Enabled {
		consumer, err := kafka.NewConsumer(cfg.Events, profileSvc, logger)
		if err != nil {
			logger.Fatal("Failed to create profile event consumer", zap.Error(err))
		}
		defer consumer.Close()
		go func() {
			if err := consumer.Run(ctx); err != nil {
				logger.Error("Profile event consumer stopped", zap.Error(err))
			}
		}()
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("Failed to flush traces", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func buildCompleter(ctx context.Context, cfg config.CompletionConfig, logger *zap.Logger) (domain.Completer, error) {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if cfg.Provider == "gemini" {
		c, err := gemini.NewCompleter(ctx, cfg.APIKey, cfg.Model, timeout, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return openaiProv.NewCompleter(&openaiProv.Config{
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.BaseURL,
		Model:          cfg.Model,
		Provider:       cfg.Provider,
		Timeout:        timeout,
		RequestsPerSec: cfg.RequestsPerSec,
		Logger:         logger,
	}), nil
}

func buildBudget(
	ctx context.Context, cfg config.EmbeddingConfig, store *dbRedis.Store, logger *zap.Logger,
) *embeddinguc.Budget {
	bc := cfg.Budget
	if bc.DailyTokenLimit <= 0 && bc.MonthlyTokenLimit <= 0 {
		return nil
	}
	action := embeddinguc.BudgetActionWarn
	if bc.Action == "reject" {
		action = embeddinguc.BudgetActionReject
	}
	return embeddinguc.NewBudget(cfg.Provider, bc.DailyTokenLimit, bc.MonthlyTokenLimit, action, logger).
		WithStore(ctx, budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour))
}

// buildQueryEmbedder assembles the query chain: OpenAI -> Cached -> Instrumented -> Instruction.
func buildQueryEmbedder(
	base domain.Embedder,
	embCfg config.EmbeddingConfig,
	searchCfg config.SearchConfig,
	store *dbRedis.Store,
	budget embeddinguc.BudgetChecker,
	logger *zap.Logger,
) domain.Embedder {
	var embedder domain.Embedder = embcache.New(
		base, store, embCfg.Model,
		time.Duration(searchCfg.EmbedCacheTTLSec)*time.Second,
		metrics.EmbeddingCacheTotal, logger,
	)
	embedder = embeddinguc.NewInstrumentedEmbedder(embedder, embCfg.Provider, embCfg.Model, budget, logger)

	// Instruction prefix is outermost so the cache key includes it.
	if embCfg.QueryInstruction != "" {
		return domain.NewInstructionEmbedder(embedder, embCfg.QueryInstruction)
	}
	return embedder
}
