package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"agriteranga-courier/internal/config"
	"agriteranga-courier/internal/gateway/backend"
	"agriteranga-courier/internal/http/handlers"
	"agriteranga-courier/internal/http/middleware/ratelimit"
	"agriteranga-courier/internal/http/router"
	"agriteranga-courier/internal/logx"
	"agriteranga-courier/internal/metrics"
	"agriteranga-courier/internal/notify"
	"agriteranga-courier/internal/store"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		logFatalf: log.Fatalf,
	}
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerGateway(container); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	if err := registerStore(container); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

type countersOut struct {
	dig.Out

	GatewayRetries    prometheus.Counter `name:"gateway_retries_total"`
	PollCycles        prometheus.Counter `name:"poll_cycles_total"`
	Notifications     prometheus.Counter `name:"notifications_emitted_total"`
	RateLimitExceeded prometheus.Counter `name:"rate_limit_exceeded_total"`
}

func newCounters() countersOut {
	return countersOut{
		GatewayRetries:    registered(metrics.NewGatewayRetriesTotal()),
		PollCycles:        registered(metrics.NewPollCyclesTotal()),
		Notifications:     registered(metrics.NewNotificationsTotal()),
		RateLimitExceeded: registered(metrics.NewRateLimitExceededTotal()),
	}
}

// registered registers the counter with the default registry; duplicate
// registration (containers built more than once in tests) is tolerated.
func registered(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return c
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		newCounters,
	)
}

type gatewayIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func registerGateway(container *dig.Container) error {
	httpClient := func(cfg *config.Config) *http.Client {
		return &http.Client{Timeout: cfg.Backend.Timeout}
	}
	doer := func(in gatewayIn, client *http.Client) backend.Doer {
		return backend.NewRetryingDoer(client, in.Logger, in.Retries, backend.RetryConfig{
			MaxAttempts: in.Cfg.Retry.MaxAttempts,
			BaseDelay:   in.Cfg.Retry.BaseDelay,
			MaxDelay:    in.Cfg.Retry.MaxDelay,
		})
	}
	client := func(cfg *config.Config, d backend.Doer, logger logx.Logger) *backend.Client {
		return backend.NewClient(d, cfg.Backend.BaseURL, cfg.Backend.Token, logger)
	}
	return provideAll(container,
		httpClient,
		doer,
		client,
		func(c *backend.Client) store.Gateway { return c },
	)
}

type notifierIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Emitted prometheus.Counter `name:"notifications_emitted_total"`
}

type notifierOut struct {
	dig.Out

	Notifier notify.Notifier
	Kafka    *notify.KafkaNotifier
}

func newNotifier(in notifierIn) (notifierOut, error) {
	logN := notify.NewLogNotifier(in.Logger, in.Emitted)

	kafkaN, err := notify.NewKafkaNotifier(in.Cfg.Kafka.Brokers, in.Cfg.Kafka.Topic, in.Logger)
	if err != nil {
		return notifierOut{}, fmt.Errorf("kafka notifier: %w", err)
	}
	if kafkaN == nil {
		return notifierOut{Notifier: logN}, nil
	}
	return notifierOut{Notifier: notify.Fanout{logN, kafkaN}, Kafka: kafkaN}, nil
}

type storeIn struct {
	dig.In

	Cfg        *config.Config
	Gw         store.Gateway
	Notifier   notify.Notifier
	Logger     logx.Logger
	PollCycles prometheus.Counter `name:"poll_cycles_total"`
}

func registerStore(container *dig.Container) error {
	newStore := func(in storeIn) *store.Store {
		return store.New(in.Gw, in.Notifier, in.Logger, store.Config{
			PollInterval: in.Cfg.Poll.Interval,
			Stagger:      in.Cfg.Poll.Stagger,
			SettleDelay:  in.Cfg.Poll.SettleDelay,
			PageSize:     in.Cfg.Poll.PageSize,
		}, in.PollCycles)
	}
	return provideAll(container,
		newNotifier,
		newStore,
	)
}

type rateLimitIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	var limiter ratelimit.Limiter = ratelimit.NopLimiter{}
	if in.Cfg.RateLimit.Limit > 0 {
		limiter = ratelimit.NewPerClientLimiter(ratelimit.RealClock{}, ratelimit.Config{
			Limit:  in.Cfg.RateLimit.Limit,
			Window: in.Cfg.RateLimit.Window,
		})
	}
	return ratelimit.New(in.Logger, in.Counter, limiter)
}

func registerHTTP(container *dig.Container) error {
	newRouter := func(
		logger logx.Logger,
		base *handlers.Handlers,
		delivery *handlers.DeliveryHandler,
		profile *handlers.ProfileHandler,
		limiter *ratelimit.Middleware,
	) http.Handler {
		return router.New(logger, base, delivery, profile, limiter)
	}
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDeliveryUsecase,
		handlers.NewDeliveryHandler,
		handlers.NewProfileUsecase,
		handlers.NewProfileHandler,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
	)
}
