// @title        Event Organizer API
// @version      1.0
// @description  Event organization service: accounts, roles, events, participants and payments.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/newyears/event-organizer/internal/api"
	"github.com/newyears/event-organizer/internal/api/handler"
	"github.com/newyears/event-organizer/internal/core/security"
	"github.com/newyears/event-organizer/internal/core/service"
	"github.com/newyears/event-organizer/internal/infrastructure/db/mongo"
	"github.com/newyears/event-organizer/internal/infrastructure/db/redis"
	"github.com/newyears/event-organizer/internal/infrastructure/queue"
	"github.com/newyears/event-organizer/internal/pkg/config"
	"github.com/newyears/event-organizer/internal/pkg/seed"
	"github.com/newyears/event-organizer/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.ForEnv(cfg.Env, cfg.LogLevel, "event-organizer"))

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:      cfg.Redis.Addr,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		PoolSize:  cfg.Redis.PoolSize,
		OpTimeout: cfg.Redis.OpTimeout,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := mongo.NewUserRepository(db)
	eventRepo := mongo.NewEventRepository(db)
	auditRepo := mongo.NewAuditRepository(db)
	if err := mongo.EnsureIndexes(ctx, userRepo, eventRepo, auditRepo); err != nil {
		return err
	}

	// --- Audit trail ---
	auditCtx, stopAudit := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, logger.For(log, "audit"))
	dispatcher.Start(auditCtx)
	defer func() {
		stopAudit()
		dispatcher.Wait()
	}()

	// --- Services ---
	tokens := security.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	authService := service.NewAuthService(userRepo, hasher, tokens, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	eventCache := redis.NewEventCache(eventRepo, rdb, cfg.EventCacheTTL, logger.For(log, "event_cache"))
	eventService := service.NewEventService(eventCache, dispatcher, log)

	if err := seedAccounts(ctx, cfg.Seed, authService, log); err != nil {
		return err
	}

	// --- HTTP ---
	router := api.NewRouter(api.Dependencies{
		Auth:   authService,
		Users:  userService,
		Events: eventService,
		Checks: healthChecks(db, rdb),
		Log:    log,
	})

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return router.Shutdown(shutdownCtx)
}

// seedAccounts ensures the admin account and, when configured, the accounts
// listed in the seed file.
func seedAccounts(ctx context.Context, cfg config.SeedConfig, s seed.UserEnsurer, log zerolog.Logger) error {
	if _, err := seed.Admin(ctx, s, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}
	if cfg.UsersPath == "" {
		return nil
	}
	n, err := seed.FromFile(ctx, s, cfg.UsersPath)
	if err != nil {
		return err
	}
	log.Info().Int("created", n).Str("path", cfg.UsersPath).Msg("seed file applied")
	return nil
}

func healthChecks(db *mongodriver.Database, rdb *goredis.Client) []handler.DependencyCheck {
	return []handler.DependencyCheck{
		{Name: "mongodb", Ping: func(ctx context.Context) error { return db.Client().Ping(ctx, nil) }},
		{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	}
}
