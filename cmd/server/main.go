package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"cyberins/internal/ledger"
	ledgermemory "cyberins/internal/ledger/memory"
	ledgerpg "cyberins/internal/ledger/postgres"
	"cyberins/internal/platform/config"
	"cyberins/internal/platform/httpserver"
	"cyberins/internal/platform/logger"
	"cyberins/internal/platform/postgres"
	platformredis "cyberins/internal/platform/redis"
	"cyberins/internal/policyholder"
	"cyberins/internal/policyholder/cache"
	"cyberins/internal/policyholder/metrics"
	"cyberins/internal/policyholder/service"
	audit "cyberins/pkg/platform/audit"
	auditkafka "cyberins/pkg/platform/audit/kafka"
	auditpublisher "cyberins/pkg/platform/audit/publisher"
	auditmemory "cyberins/pkg/platform/audit/store/memory"
	"cyberins/pkg/platform/middleware/requestid"
	"cyberins/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in the policyholder
// service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var store ledger.Store
	if cfg.PostgresURL != "" {
		pool, err := postgres.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = ledgerpg.New(pool)
		log.Info("using postgres ledger")
	} else {
		store = ledgermemory.NewInMemory()
		log.Warn("no postgres configured, using in-memory ledger")
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	recordCache := cache.New(redisClient, cfg.Redis.ReadTTL, log)

	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := auditkafka.NewSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka connect failed", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		auditStore = sink
		log.Info("audit events flowing to kafka", "topic", cfg.Kafka.Topic)
	}
	publisher := auditpublisher.NewPublisher(auditStore,
		auditpublisher.WithAsyncBuffer(256),
		auditpublisher.WithLogger(log),
	)
	defer publisher.Close()

	m := metrics.New()
	svc := policyholder.NewService(store,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithCache(recordCache),
		service.WithAuditPublisher(publisher),
	)
	h := policyholder.NewHandler(policyholder.NewContract(svc, m), log, cfg.AdminToken)

	router := chi.NewRouter()
	router.Use(requestid.Middleware)
	router.Use(requesttime.Middleware)
	h.Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				log.WarnContext(r.Context(), "redis health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("redis unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting cyberins ledger engine", "addr", cfg.Addr)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
