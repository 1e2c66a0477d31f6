package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"agriteranga-courier/internal/logx"
	"agriteranga-courier/internal/notify"
	"agriteranga-courier/internal/store"
)

// WatcherRunner runs the headless polling loop: no HTTP facade, just the
// store refreshing and emitting notifications.
type WatcherRunner struct {
	runFn func(*dig.Container) error
}

// NewWatcherRunner returns a new WatcherRunner.
func NewWatcherRunner() *WatcherRunner {
	return &WatcherRunner{runFn: runWatcher}
}

// MustRun starts the polling loop using the provided DI container.
func (r *WatcherRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWatcher(container *dig.Container) error {
	return container.Invoke(watcherRun)
}

func watcherRun(
	ctx context.Context,
	st *store.Store,
	kafka *notify.KafkaNotifier,
	logger logx.Logger,
) error {
	defer func() {
		if err := kafka.Close(); err != nil {
			logger.Error("kafka notifier close error", logx.Any("err", err))
		}
		_ = logger.Sync()
	}()

	logger.Info("courier watcher started")
	return st.Run(ctx)
}
