// Command server starts the hireflow HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/hireflow/internal/adapter/events"
	httpserver "github.com/fairyhunter13/hireflow/internal/adapter/httpserver"
	"github.com/fairyhunter13/hireflow/internal/adapter/observability"
	"github.com/fairyhunter13/hireflow/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/hireflow/internal/app"
	"github.com/fairyhunter13/hireflow/internal/config"
	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/service/ratelimiter"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

// connectDB retries the initial pool creation and ping; the database is
// usually the last container up in compose environments.
func connectDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	op := func() error {
		p, err := postgres.NewPool(ctx, dsn)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 60 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return pool, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()
	pool, err := connectDB(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		slog.Error("schema setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Repositories
	candidateRepo := postgres.NewCandidateRepo(pool)
	offerRepo := postgres.NewOfferRepo(pool)
	testRepo := postgres.NewTestRepo(pool)
	flowRepo := postgres.NewFlowRepo(pool)
	inviteRepo := postgres.NewInviteRepo(pool)
	orgRepo := postgres.NewOrgRepo(pool)
	membershipRepo := postgres.NewMembershipRepo(pool)

	// Event publisher: best effort, NOP when no brokers are configured.
	var publisher domain.EventPublisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			slog.Error("event producer connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() { _ = producer.Close() }()
		publisher = producer
	}

	// Shared limiter for the public endpoints; nil when Redis is absent.
	var rdb *redis.Client
	var limiter ratelimiter.Limiter
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		lim := ratelimiter.NewRedisLuaLimiter(rdb, map[string]ratelimiter.BucketConfig{
			app.PublicBucketKey: ratelimiter.NewBucketConfigFromPerMinute(cfg.RateLimitPerMin),
		})
		limiter = lim
		defer func() { _ = rdb.Close() }()
	}

	// Usecases
	candidateSvc := usecase.NewCandidateService(candidateRepo)
	offerSvc := usecase.NewOfferService(offerRepo)
	testSvc := usecase.NewTestService(testRepo, flowRepo)
	flowSvc := usecase.NewFlowService(flowRepo, testRepo)
	inviteSvc := usecase.NewInviteService(inviteRepo, candidateRepo, publisher)
	submissionSvc := usecase.NewSubmissionService(testRepo, inviteRepo, publisher, cfg.ScoreApplyReversed)
	reviewSvc := usecase.NewReviewService(testRepo)
	orgSvc := usecase.NewOrgService(orgRepo, membershipRepo, httpserver.ContextSessionReader{})

	if cfg.SeedFile != "" && cfg.SeedOrgID != "" {
		if err := seedTestsFromYAML(ctx, testSvc, cfg.SeedFile, cfg.SeedOrgID); err != nil {
			slog.Error("seed failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	sessions := httpserver.NewSessionManager(cfg)
	srv := httpserver.NewServer(cfg, sessions,
		candidateSvc, offerSvc, testSvc, flowSvc,
		inviteSvc, submissionSvc, reviewSvc, orgSvc)

	dbCheck, redisCheck := app.BuildReadinessChecks(pool, rdb)
	readyz := app.ReadyzHandler(map[string]func(ctx context.Context) error{
		"db":    dbCheck,
		"redis": redisCheck,
	})

	handler := app.BuildRouter(cfg, srv, limiter, readyz)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
