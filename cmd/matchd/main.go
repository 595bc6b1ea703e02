package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brucee63/namematch/internal/catalog"
	"github.com/brucee63/namematch/internal/dictionary"
	"github.com/brucee63/namematch/internal/service"
	"github.com/brucee63/namematch/pkg/config"
	"github.com/brucee63/namematch/pkg/health"
	"github.com/brucee63/namematch/pkg/kafka"
	"github.com/brucee63/namematch/pkg/logger"
	"github.com/brucee63/namematch/pkg/metrics"
	"github.com/brucee63/namematch/pkg/middleware"
	"github.com/brucee63/namematch/pkg/postgres"
	pkgredis "github.com/brucee63/namematch/pkg/redis"
	"github.com/brucee63/namematch/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting match service", "port", cfg.Server.Port, "column", cfg.Matching.Column)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownMetrics(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown error", "error", err)
			}
		}()
	}

	store := catalog.NewStore()
	if m != nil {
		store.OnChange = func(size int) {
			m.CatalogSize.Set(float64(size))
		}
	}

	idColumn := "id"
	if len(cfg.Catalog.Columns) > 0 {
		idColumn = cfg.Catalog.Columns[0]
	}

	var pgClient *postgres.Client
	pgClient, err = postgres.New(cfg.Postgres)
	if err != nil {
		slog.Warn("postgres unavailable, starting with an empty catalog", "error", err)
		pgClient = nil
	} else {
		defer pgClient.Close()
		loader := catalog.NewLoader(pgClient.DB, cfg.Catalog)
		err := resilience.Retry(ctx, "catalog-load", resilience.RetryConfig{MaxAttempts: 3}, func() error {
			rows, err := loader.Load(ctx)
			if err != nil {
				return err
			}
			store.Replace(rows, idColumn)
			return nil
		})
		if err != nil {
			slog.Warn("candidate load failed, starting with an empty catalog", "error", err)
		}
	}

	var dict dictionary.Provider = dictionary.Static(cfg.Matching.Acronyms)
	redisClient, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, using static acronym dictionary", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		provider := dictionary.NewRedisProvider(
			redisClient,
			cfg.Matching.DictionaryKey,
			cfg.Matching.DictionaryInterval,
			cfg.Matching.Acronyms,
		)
		if m != nil {
			provider.OnRefresh = func(status string, size int) {
				m.DictionaryRefreshes.WithLabelValues(status).Inc()
				m.DictionarySize.Set(float64(size))
				m.CircuitBreakerState.WithLabelValues("dictionary-redis").Set(float64(provider.BreakerState()))
			}
		}
		go provider.Start(ctx)
		dict = provider
		slog.Info("redis acronym dictionary enabled",
			"key", cfg.Matching.DictionaryKey,
			"interval", cfg.Matching.DictionaryInterval,
		)
	}

	consumer := kafka.NewConsumer(
		cfg.Kafka,
		cfg.Kafka.Topics.CandidateUpserts,
		catalog.HandleEvent(store, idColumn),
	)
	go func() {
		if err := consumer.Start(ctx); err != nil {
			slog.Error("candidate consumer error", "error", err)
		}
	}()
	slog.Info("candidate consumer started", "topic", cfg.Kafka.Topics.CandidateUpserts)

	checker := health.NewChecker()
	checker.Register("catalog", func(ctx context.Context) health.ComponentHealth {
		if n := store.Len(); n > 0 {
			return health.ComponentHealth{Status: health.StatusUp, Message: fmt.Sprintf("%d candidates", n)}
		}
		return health.ComponentHealth{Status: health.StatusDegraded, Message: "no candidates loaded"}
	})
	checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
		if pgClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := pgClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})

	h := service.New(store, dict, m, cfg.Matching)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/match", h.Match)
	mux.HandleFunc("POST /api/v1/match", h.MatchInline)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("match service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("match service stopped")
}
