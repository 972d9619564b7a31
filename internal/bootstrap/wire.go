package bootstrap

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/culturalite/backend/internal/application/auth"
	"github.com/culturalite/backend/internal/application/event"
	"github.com/culturalite/backend/internal/config"
	"github.com/culturalite/backend/internal/infrastructure/db/postgres"
	"github.com/culturalite/backend/internal/infrastructure/memory"
	"github.com/culturalite/backend/internal/infrastructure/redis"
	"github.com/culturalite/backend/internal/infrastructure/security"
	"github.com/culturalite/backend/internal/logger"
	"github.com/culturalite/backend/internal/transport/http/handlers"
	"github.com/culturalite/backend/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	OpenDB func(dsn string) (*sql.DB, error)

	// NewRedis may fail; the server then falls back to the in-memory
	// blacklist and runs with caching and throttling disabled.
	NewRedis func(url string) (*redis.Client, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.OpenDB(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	userRepo := postgres.NewUserRepo(db)
	eventRepo := postgres.NewEventRepo(db)

	// 2) redis (best-effort)
	var redisCli *redis.Client
	if cfg.RedisURL != "" && deps.NewRedis != nil {
		c, err := deps.NewRedis(cfg.RedisURL)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; cache and throttling disabled")
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 3) blacklist: redis-backed when available so revocation survives
	// restarts, in-memory otherwise
	var blacklist auth.TokenBlacklist
	if redisCli != nil {
		blacklist = redis.NewTokenBlacklist(redisCli)
	} else {
		blacklist = memory.NewTokenBlacklist()
	}

	// 4) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(12)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// seed (dev only)
	if cfg.SeedDemoData {
		postgres.Seed(context.Background(), db, userRepo, hasher)
	}

	// 5) services
	authSvc := auth.NewService(userRepo, hasher, signer, blacklist, auth.Config{
		AccessTTL:           cfg.AccessTokenTTL,
		RefreshTTL:          cfg.RefreshTokenTTL,
		RotateRefreshTokens: cfg.RotateRefreshTokens,
	})

	var listCache event.Cache
	if redisCli != nil {
		listCache = redisCli
	}
	eventSvc := event.New(eventRepo, listCache, cfg.CacheTTLList)

	// 6) handlers + middleware
	authH := handlers.NewAuthHandler(authSvc, cfg.RefreshTokenTTL, cfg.SecureCookies())
	eventH := handlers.NewEventHandler(eventSvc)
	healthH := handlers.NewHealthHandler(cfg.Version)

	var limiter *redis.FixedWindowLimiter
	if redisCli != nil {
		limiter = redis.NewFixedWindowLimiter(redisCli)
	}

	// 7) router
	mux, err := deps.NewRouter(router.Deps{
		Health:  healthH,
		Auth:    authH,
		Events:  eventH,
		Limiter: limiter,
		Limits: router.RateLimits{
			Register: cfg.RateLimitRegister,
			Login:    cfg.RateLimitLogin,
			Refresh:  cfg.RateLimitRefresh,
			Logout:   cfg.RateLimitLogout,
			Events:   cfg.RateLimitEvents,
		},
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 8) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		OpenDB:     postgres.Open,
		NewRedis:   redis.New,
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
