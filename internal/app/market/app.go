package market

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"marketplace/internal/api"
	"marketplace/internal/command"
	"marketplace/internal/config"
	"marketplace/internal/events"
	"marketplace/internal/infrastructure/kafka"
	"marketplace/internal/infrastructure/local"
	"marketplace/internal/infrastructure/redis"
	zapLogger "marketplace/internal/logger/zap"
	svcMarket "marketplace/internal/services/market"
	"marketplace/internal/storage/memory"
)

// Run assembles and runs the market daemon until a shutdown signal.
func Run(cfg *config.Config) {
	app := fx.New(
		fx.Provide(
			func() *config.Config {
				return cfg
			},
		),
		fx.Provide(
			provideBook,
			providePublisher,
			provideRateLimiters,
			provideService,
			provideAPIServer,
			provideListener,
		),
		fx.Invoke(
			registerLogger,
			startHTTPServer,
		),
	)

	app.Run()
}

func registerLogger(lifeCycle fx.Lifecycle, cfg *config.Config) error {
	if err := zapLogger.Init(cfg.LogLevel, cfg.LogFormat == "json"); err != nil {
		return err
	}

	lifeCycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = zapLogger.Sync()
			return nil
		},
	})

	return nil
}

func provideBook() *memory.OrderStore {
	return memory.NewOrderStore()
}

func providePublisher(lifeCycle fx.Lifecycle, cfg *config.Config) svcMarket.EventPublisher {
	if !cfg.Kafka.Enabled() {
		return events.NopPublisher{}
	}

	publisher := kafka.NewPublisher(cfg.Kafka.BrokerList(), cfg.Kafka.Topic)

	lifeCycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})

	return publisher
}

type rateLimiters struct {
	Post    svcMarket.RateLimiter
	Aggress svcMarket.RateLimiter
}

func provideRateLimiters(lifeCycle fx.Lifecycle, cfg *config.Config) rateLimiters {
	if !cfg.Redis.Enabled() {
		return rateLimiters{
			Post:    local.NewDealerRateLimiter(cfg.RateLimiter.Post, cfg.RateLimiter.Window),
			Aggress: local.NewDealerRateLimiter(cfg.RateLimiter.Aggress, cfg.RateLimiter.Window),
		}
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Redis.Address,
		DB:          cfg.Redis.DB,
		DialTimeout: cfg.Redis.ConnectionTimeout,
	})

	lifeCycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return rateLimiters{
		Post:    redis.NewCommandRateLimiter(client, cfg.RateLimiter.Post, cfg.RateLimiter.Window, "rate:market:post:"),
		Aggress: redis.NewCommandRateLimiter(client, cfg.RateLimiter.Aggress, cfg.RateLimiter.Window, "rate:market:aggress:"),
	}
}

func provideService(
	book *memory.OrderStore,
	publisher svcMarket.EventPublisher,
	limiters rateLimiters,
) command.Registry {
	return svcMarket.NewService(book, publisher, limiters.Post, limiters.Aggress)
}

func provideAPIServer(registry command.Registry, cfg *config.Config) *api.Server {
	return api.NewServer(registry, cfg.DispatchTimeout)
}

func provideListener(lifeCycle fx.Lifecycle, cfg *config.Config) (net.Listener, error) {
	listener, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("net.Listen: %w", err)
	}

	lifeCycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			errClose := listener.Close()
			if errClose != nil && !errors.Is(errClose, net.ErrClosed) {
				return errClose
			}

			return nil
		},
	})

	return listener, nil
}

func startHTTPServer(
	lifeCycle fx.Lifecycle,
	server *api.Server,
	listener net.Listener,
	cfg *config.Config,
) {
	httpServer := &http.Server{Handler: server.Handler()}

	lifeCycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			zapLogger.Info(ctx, fmt.Sprintf("Starting market server on %s", listener.Addr()))

			go func() {
				if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					zapLogger.Error(ctx, "market server error", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
	})
}
