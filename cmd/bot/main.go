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

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Proton-105/warung-bot/internal/bot"
	"github.com/Proton-105/warung-bot/internal/bot/handlers"
	"github.com/Proton-105/warung-bot/internal/bot/keyboard"
	"github.com/Proton-105/warung-bot/internal/cart"
	"github.com/Proton-105/warung-bot/internal/database"
	apperrors "github.com/Proton-105/warung-bot/internal/errors"
	"github.com/Proton-105/warung-bot/internal/health"
	"github.com/Proton-105/warung-bot/internal/httpapi"
	"github.com/Proton-105/warung-bot/internal/idempotency"
	"github.com/Proton-105/warung-bot/internal/jobs"
	jobhandlers "github.com/Proton-105/warung-bot/internal/jobs/handlers"
	"github.com/Proton-105/warung-bot/internal/lifecycle"
	"github.com/Proton-105/warung-bot/internal/middleware"
	"github.com/Proton-105/warung-bot/internal/notify"
	"github.com/Proton-105/warung-bot/internal/order"
	"github.com/Proton-105/warung-bot/internal/ratelimit"
	"github.com/Proton-105/warung-bot/internal/repository/postgres"
	"github.com/Proton-105/warung-bot/internal/session"
	"github.com/Proton-105/warung-bot/internal/user"
	"github.com/Proton-105/warung-bot/pkg/config"
	"github.com/Proton-105/warung-bot/pkg/graceful"
	"github.com/Proton-105/warung-bot/pkg/logger"
	"github.com/Proton-105/warung-bot/pkg/metrics"
	"github.com/Proton-105/warung-bot/pkg/money"
	redisclient "github.com/Proton-105/warung-bot/pkg/redis"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "warung-bot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Environment: cfg.AppEnv}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	log, level := logger.New(logger.Options{Logger: cfg.Logger, Sentry: cfg.Sentry.Enabled})
	slog.SetDefault(log)
	config.Watch(v, log, func(next *config.Config) {
		level.Set(logger.ParseLevel(next.Logger.Level))
	})

	log.Info("starting warung bot",
		slog.String("env", cfg.AppEnv),
		slog.String("mode", cfg.Bot.Mode),
		slog.String("http_port", cfg.Server.Port),
	)

	shutdown := lifecycle.NewShutdown(log)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown.Execute(shutdownCtx); err != nil {
			log.Error("shutdown finished with errors", slog.Any("error", err))
		}
	}()

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	shutdown.Register("postgres", func(context.Context) error { return db.Close() })

	if err := database.NewMigrator(db.DB, log).Up(); err != nil {
		return err
	}

	var rdb *goredis.Client
	if cfg.Redis.Enabled {
		err := apperrors.WithRetry(ctx, startupRetry(), func(ctx context.Context) error {
			var connErr error
			rdb, connErr = redisclient.New(ctx, cfg.Redis)
			return connErr
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		shutdown.Register("redis", func(context.Context) error { return rdb.Close() })
	}

	store := postgres.New(db, log)
	users := user.NewService(store, log)
	if err := users.EnsureSuperAdmin(ctx, cfg.Bot.SuperAdminID); err != nil {
		return err
	}

	tgBot, err := bot.New(cfg.Bot, log)
	if err != nil {
		return err
	}
	messenger := tgBot.Messenger()
	formatter := money.NewFormatter(cfg.Currency)

	var notifier order.Notifier = notify.NewDirect(messenger, formatter)
	if cfg.Notifications.Async {
		if rdb == nil {
			return errors.New("notifications.async requires redis.enabled")
		}

		redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		queue := jobs.NewManager(redisOpt, log)
		shutdown.Register("jobs-client", func(context.Context) error { return queue.Close() })

		worker := jobs.NewWorker(redisOpt, nil, log)
		worker.RegisterHandler(jobs.TaskTypeCustomerNotification, jobhandlers.NewNotificationHandler(messenger, log))
		if err := worker.Run(); err != nil {
			return fmt.Errorf("start jobs worker: %w", err)
		}
		shutdown.Register("jobs-worker", func(context.Context) error { worker.Shutdown(); return nil })

		notifier = notify.NewQueued(queue, formatter, log)
	}

	sessions := session.NewEngine()
	carts := cart.NewStore()
	metrics.RegisterStateGauges(prometheus.DefaultRegisterer, sessions.Count, carts.Users)

	orders := order.NewService(store, notifier, log,
		order.WithTransitionRecorder(metrics.RecordOrderTransition),
		order.WithNotificationRecorder(metrics.RecordNotification),
	)

	h := handlers.New(handlers.Deps{
		Messenger: messenger,
		Sessions:  sessions,
		Carts:     carts,
		Orders:    orders,
		Users:     users,
		Store:     store,
		Money:     formatter,
		Keyboard:  keyboard.NewBuilder(log),
		Log:       log,
	})

	router := bot.NewRouter(sessions, log)
	bot.RegisterRoutes(router, h)

	errHandler := apperrors.NewHandler(log, cfg.Sentry.Enabled)
	idem, limiter := guards(ctx, rdb, log)
	limits, err := ratelimit.NewRules(cfg.RateLimit)
	if err != nil {
		return err
	}

	router.Use(bot.RecoveryMiddleware(messenger, log, errHandler))
	router.Use(bot.LoggingMiddleware(log))
	router.Use(middleware.Metrics)
	router.Use(middleware.Idempotency(idem, log))
	router.Use(middleware.NewRateLimitMiddleware(limiter, limits, messenger, log).Handle)
	router.Use(bot.ErrorHandlingMiddleware(messenger, errHandler))
	tgBot.Mount(router)

	go session.NewCleaner(sessions, log, cfg.Session.TTL, cfg.Session.SweepInterval).Run(ctx)

	checker := health.NewChecker(log)
	checker.AddCheck("postgres", health.NewDBChecker(db.DB))
	checker.AddCheck("telegram", health.NewTelegramChecker(tgBot.Telebot()))
	if rdb != nil {
		checker.AddCheck("redis", health.NewRedisChecker(rdb))
	}
	probes := lifecycle.NewProbes(checker, log)

	srv := graceful.NewServer(log, &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: httpapi.New(httpapi.Deps{
			Store:  store,
			Probes: probes,
			Token:  cfg.Server.APIToken,
			Log:    log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}, cfg.Server.ShutdownTimeout)

	httpCtx, stopHTTP := context.WithCancel(context.Background())
	httpDone := make(chan error, 1)
	go func() { httpDone <- srv.ListenAndServe(httpCtx) }()
	shutdown.Register("http", func(hookCtx context.Context) error {
		stopHTTP()
		select {
		case err := <-httpDone:
			return err
		case <-hookCtx.Done():
			return hookCtx.Err()
		}
	})

	go tgBot.Start()
	shutdown.Register("telegram", func(context.Context) error {
		probes.Drain()
		tgBot.Stop()
		return nil
	})

	log.Info("warung bot started")

	<-ctx.Done()
	log.Info("shutdown signal received")

	return nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(cfg.MaxConnections)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := apperrors.WithRetry(ctx, startupRetry(), func(ctx context.Context) error {
		if pingErr := db.PingContext(ctx); pingErr != nil {
			log.Warn("database not ready", slog.Any("error", pingErr))
			return pingErr
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// startupRetry retries every error: dependencies are often still booting next to us.
func startupRetry() apperrors.RetryPolicy {
	policy := apperrors.DefaultRetryPolicy
	policy.Retryable = apperrors.Always
	return policy
}

// guards builds update de-duplication and rate limiting, on Redis when available
// and in memory otherwise.
func guards(ctx context.Context, rdb *goredis.Client, log *slog.Logger) (idempotency.Manager, ratelimit.Limiter) {
	memLimiter := ratelimit.NewMemoryLimiter(log)

	if rdb == nil {
		memStore := idempotency.NewMemoryStore()
		go idempotency.NewCleaner(memStore, log, sweepInterval).Run(ctx)
		go ratelimit.NewCleaner(nil, memLimiter, log, sweepInterval).Run(ctx)

		return idempotency.NewManager(memStore, log), ratelimit.NewAdaptiveLimiter(nil, memLimiter, log)
	}

	go ratelimit.NewCleaner(rdb, memLimiter, log, sweepInterval).Run(ctx)

	return idempotency.NewManager(idempotency.NewRedisStore(rdb, log), log),
		ratelimit.NewAdaptiveLimiter(ratelimit.NewRedisLimiter(rdb, log), memLimiter, log)
}
