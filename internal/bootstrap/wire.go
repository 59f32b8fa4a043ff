package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/securitysvcs/auth-service/internal/application/auth"
	"github.com/securitysvcs/auth-service/internal/audit"
	"github.com/securitysvcs/auth-service/internal/config"
	"github.com/securitysvcs/auth-service/internal/infrastructure/db/postgres"
	"github.com/securitysvcs/auth-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/securitysvcs/auth-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/securitysvcs/auth-service/internal/infrastructure/redis"
	"github.com/securitysvcs/auth-service/internal/infrastructure/security"
	"github.com/securitysvcs/auth-service/internal/logger"
	http_handlers "github.com/securitysvcs/auth-service/internal/transport/http/handlers"
	"github.com/securitysvcs/auth-service/internal/transport/http/middleware"
	"github.com/securitysvcs/auth-service/internal/transport/http/response"
	"github.com/securitysvcs/auth-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
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

	NewDB func(addr string, debug bool) (DBCloser, error)

	NewRedis func(addr string, db int) RedisClient

	NewPublisher func(rabbitURL, exchange string) (auth.EventPublisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
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
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	// 2) schema lifecycle
	ctx := context.Background()
	if cfg.DBReset {
		logger.Logger.Warn().Msg("DB_RESET set; dropping schema")
		if err := postgres.DropSchema(ctx, sqlDB); err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}
	if err := postgres.CreateSchema(ctx, sqlDB); err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	accountRepo := postgres.NewAccountRepo(sqlDB)
	eventRepo := postgres.NewEventRepo(sqlDB)

	// 3) redis (best-effort; only the login throttle depends on it)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if err := c.Ping(pingCtx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; login throttle disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) publisher
	var pub auth.EventPublisher
	if deps.NewPublisher != nil && cfg.RabbitURL != "" {
		p, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
				pub = memory.NewNoopPublisher()
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		} else {
			pub = p
			if c, ok := p.(interface{ Close() error }); ok {
				cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			}
		}
	} else {
		pub = memory.NewNoopPublisher()
	}

	// 5) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	// seed (dev only)
	if cfg.Env == "dev" {
		postgres.SeedAccounts(ctx, accountRepo, hasher)
	}

	// 6) service
	authSvc := auth.NewService(accountRepo, hasher, eventRepo, pub).
		WithAudit(audit.New(logger.Logger).Sink())

	// 7) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	accountsH := http_handlers.NewAccountsHandler(authSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	var loginRateMW func(http.Handler) http.Handler
	if redisCli != nil {
		if rc, ok := redisCli.(*redis.Client); ok {
			loginRateMW = middleware.RateLimitFixedWindow(
				redis.NewFixedWindowLimiter(rc),
				middleware.FixedWindowConfig{
					RouteKey: "auth.login",
					Limit:    cfg.LoginRateLimit,
					Window:   cfg.LoginRateWindow,
				},
				response.WriteError,
			)
		}
	}

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:   healthH,
		Auth:     authH,
		Accounts: accountsH,

		RequestIDMW: middleware.RequestID,
		LoginRateMW: loginRateMW,
		AdminAuthMW: middleware.InternalAuth(cfg.AdminSecret),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
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
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		NewRedis: func(addr string, db int) RedisClient {
			return redis.New(addr, db)
		},
		NewPublisher: func(url, exchange string) (auth.EventPublisher, error) {
			return rabbitmq_pub.NewPublisher(url, exchange)
		},
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
