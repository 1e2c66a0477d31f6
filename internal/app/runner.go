package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"

	"agriteranga-courier/internal/config"
	"agriteranga-courier/internal/http/pprofserver"
	"agriteranga-courier/internal/logx"
	"agriteranga-courier/internal/notify"
	"agriteranga-courier/internal/store"
)

// MustRun starts the dashboard facade and the store's polling loop using
// the provided DI container.
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

func run(container *dig.Container) error {
	return container.Invoke(func(
		ctx context.Context,
		cfg *config.Config,
		server *http.Server,
		st *store.Store,
		kafka *notify.KafkaNotifier,
		logger logx.Logger,
	) error {
		defer closeResources(server, kafka, logger)

		startPprof(cfg, logger)
		startStore(ctx, st, logger)
		startServer(server, logger)

		<-ctx.Done()
		logger.Info("shutting down courier dashboard")
		gracefulShutdown(server, logger, 15*time.Second)
		return ctx.Err()
	})
}

func startStore(ctx context.Context, st *store.Store, logger logx.Logger) {
	go func() {
		if err := st.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("store run error", logx.Any("err", err))
		}
	}()
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("courier dashboard listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func startPprof(cfg *config.Config, logger logx.Logger) {
	if cfg.Pprof.Addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              cfg.Pprof.Addr,
		Handler:           pprofserver.Handler(pprofserver.Config{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("pprof listening", logx.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("pprof listen error", logx.Any("err", err))
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Any("err", err))
	}
}

func closeResources(server *http.Server, kafka *notify.KafkaNotifier, logger logx.Logger) {
	if err := server.Close(); err != nil {
		logger.Warn("server close error", logx.Any("err", err))
	}
	if err := kafka.Close(); err != nil {
		logger.Warn("kafka notifier close error", logx.Any("err", err))
	}
	_ = logger.Sync()
}
