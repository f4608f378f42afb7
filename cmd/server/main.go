package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"curbo/internal/audit"
	httpapi "curbo/internal/http"
	jwttoken "curbo/internal/jwt_token"
	"curbo/internal/platform/config"
	"curbo/internal/platform/httpserver"
	"curbo/internal/platform/logger"
	platformmetrics "curbo/internal/platform/metrics"
	platformredis "curbo/internal/platform/redis"
	"curbo/internal/policy"
	"curbo/internal/ratelimit"
	"curbo/internal/recall"
	"curbo/internal/vehicle"
	"curbo/internal/verification"
)

const shutdownTimeout = 10 * time.Second

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Postgres is optional: without DATABASE_URL everything runs on
	// in-memory stores, which is how demo mode operates.
	var pool *pgxpool.Pool
	if cfg.PostgresURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("failed to create postgres pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	var (
		vehicleStore       vehicle.Store
		policyStore        policy.Store
		cacheStore         recall.CacheStore
		standingStore      recall.StandingStore
		profileStore       verification.ProfileSource
		verificationAudits verification.AuditStore
		auditStore         audit.Store
	)
	if pool != nil {
		vehicleStore = vehicle.NewPostgresStore(pool)
		policyStore = policy.NewPostgresStore(pool)
		cacheStore = recall.NewPostgresCacheStore(pool)
		standingStore = recall.NewPostgresStandingStore(pool)
		profileStore = verification.NewPostgresProfileStore(pool)
		verificationAudits = verification.NewPostgresAuditStore(pool)
		auditStore = audit.NewPostgresStore(pool)
	} else {
		vehicleStore = vehicle.NewInMemoryStore()
		policyStore = policy.NewInMemoryStore()
		cacheStore = recall.NewInMemoryCacheStore()
		standingStore = recall.NewInMemoryStandingStore()
		profileStore = verification.NewInMemoryProfileStore()
		verificationAudits = verification.NewInMemoryAuditStore()
		auditStore = audit.NewInMemoryStore()
	}

	// Rate-limit buckets live in Redis when configured so the limit holds
	// across replicas; otherwise a per-process sliding window suffices.
	var buckets ratelimit.BucketStore = ratelimit.NewInMemoryBucketStore()
	if cfg.Redis.URL != "" {
		redisClient, err := platformredis.New(cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, falling back to in-memory rate limiting", "error", err)
		} else {
			defer redisClient.Close()
			buckets = ratelimit.NewRedisBucketStore(redisClient.Client)
		}
	}

	publisher := audit.NewPublisher(256, log)
	var sink audit.Sink
	if kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic); err != nil {
		log.Warn("kafka sink unavailable, audit events will not be published", "error", err)
	} else if kafkaSink != nil {
		defer kafkaSink.Close()
		sink = kafkaSink
	}
	worker := audit.NewWorker(auditStore, sink, publisher.Inbox(), log)
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	limiter := ratelimit.New(buckets, cfg.RateLimit.Requests, cfg.RateLimit.Window, log,
		ratelimit.WithDisabled(cfg.DemoMode),
	)

	registry := recall.NewHTTPRegistryClient(cfg.Recall.BaseURL, cfg.Recall.Timeout)
	vinDecoder := recall.NewHTTPVINDecoder(cfg.Recall.VINDecoderURL, cfg.Recall.Timeout)
	recallService := recall.NewService(
		vehicleStore, registry, cacheStore, standingStore, limiter, cfg.Recall.CacheTTL, log,
		recall.WithVINDecoder(vinDecoder),
		recall.WithMetrics(recall.NewMetrics()),
		recall.WithPublisher(publisher),
	)

	policyService := policy.NewService(policyStore, policy.WithPublisher(publisher))

	bot := verification.NewBot(profileStore, verificationAudits, log,
		verification.WithPublisher(publisher),
	)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "curbo", "curbo-api")
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:       log,
		JWTValidator: jwttoken.NewJWTServiceAdapter(jwtService),
		HTTPMetrics:  platformmetrics.NewHTTP(),
		Recalls:      recallService,
		Policies:     policyService,
		Verification: bot,
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Addr, "demo_mode", cfg.DemoMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
