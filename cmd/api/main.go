package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/launchstack/benefits-api/internal/api"
	"github.com/launchstack/benefits-api/internal/core/ports"
	"github.com/launchstack/benefits-api/internal/core/service"
	"github.com/launchstack/benefits-api/internal/infrastructure/catalog"
	mongodb "github.com/launchstack/benefits-api/internal/infrastructure/db/mongo"
	redisdb "github.com/launchstack/benefits-api/internal/infrastructure/db/redis"
	"github.com/launchstack/benefits-api/internal/infrastructure/queue"
	"github.com/launchstack/benefits-api/internal/pkg/config"
	"github.com/launchstack/benefits-api/pkg/logger"
)

// @title        Startup Benefits API
// @version      1.0
// @description  Deal catalog, sessions, and claim lifecycle for the startup benefits aggregator.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	claimRepo := mongodb.NewClaimRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := claimRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure claim indexes")
	}

	deals, err := catalog.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load deal catalog")
	}
	log.Info().Int("deals", deals.Len()).Msg("deal catalog loaded")

	// --- Services ---
	denylist := redisdb.NewTokenDenylist(rdb)
	guard := redisdb.NewClaimGuard(rdb)

	reviewSvc := service.NewReviewService(claimRepo, deals, log)
	scheduler := queue.NewReviewScheduler(cfg.Review.Workers, reviewSvc, log)
	scheduler.Start(ctx)

	authSvc := service.NewAuthService(userRepo, denylist, service.EmailMarkerPolicy{}, cfg.JWTSecret, cfg.TokenTTL)
	claimSvc := service.NewClaimService(userRepo, deals, claimRepo, guard, scheduler, cfg.Review.Delay, log)
	catalogSvc := service.NewCatalogService(deals)

	// Reviews scheduled before a restart must still happen: re-enqueue every
	// claim that is still pending, due at its original review time.
	rescueReviews(ctx, claimRepo, scheduler, cfg.Review.Delay, log)

	// --- HTTP server ---
	e := api.NewRouter(api.Services{
		Auth:    authSvc,
		Catalog: catalogSvc,
		Claims:  claimSvc,
	}, denylist, cfg.JWTSecret, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
	log.Info().Msg("shutdown complete")
}

// rescueReviews re-schedules reviews for claims left pending by a previous
// run. Claims already past their due time are decided immediately.
func rescueReviews(ctx context.Context, claims ports.ClaimRepository, scheduler *queue.ReviewScheduler, delay time.Duration, log zerolog.Logger) {
	pending, err := claims.ListPending(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list pending claims, skipping review rescue")
		return
	}
	if len(pending) == 0 {
		return
	}

	tasks := make([]ports.ReviewTask, 0, len(pending))
	for _, c := range pending {
		tasks = append(tasks, ports.ReviewTask{ClaimID: c.ID, DueAt: c.ClaimedAt.Add(delay)})
	}
	scheduler.ScheduleBatch(tasks)
	log.Info().Int("count", len(tasks)).Msg("re-scheduled pending claim reviews")
}
