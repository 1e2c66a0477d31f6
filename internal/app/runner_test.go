package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"agriteranga-courier/internal/domain"
	"agriteranga-courier/internal/store"
	testlog "agriteranga-courier/internal/testutil"
)

// idleGateway is an always-empty backend for runner tests.
type idleGateway struct{}

func (idleGateway) Stats(context.Context) (domain.DeliveryStats, error) {
	return domain.DeliveryStats{}, nil
}

func (idleGateway) ListAvailable(context.Context, int, int, domain.AvailableFilters) ([]domain.AvailableDelivery, domain.Pagination, error) {
	return nil, domain.Pagination{Page: 1, TotalPages: 1}, nil
}

func (idleGateway) ListMine(context.Context, int, int, domain.MineFilters) ([]domain.MyDelivery, domain.Pagination, error) {
	return nil, domain.Pagination{Page: 1, TotalPages: 1}, nil
}

func (idleGateway) ListHistory(context.Context, int, int, domain.HistoryFilters) ([]domain.HistoryEntry, domain.Pagination, error) {
	return nil, domain.Pagination{Page: 1, TotalPages: 1}, nil
}

func (idleGateway) Accept(context.Context, string) error { return nil }

func (idleGateway) UpdateStatus(context.Context, string, domain.DeliveryStatus, string) error {
	return nil
}

func (idleGateway) Complete(context.Context, string, string) error { return nil }

func (idleGateway) Details(context.Context, string) (domain.DeliveryDetails, error) {
	return domain.DeliveryDetails{}, nil
}

func (idleGateway) Profile(context.Context) (domain.Profile, error) {
	return domain.Profile{}, nil
}

func (idleGateway) UpdateProfile(context.Context, domain.PartialProfileUpdate) (domain.Profile, error) {
	return domain.Profile{}, nil
}

func (idleGateway) ChangePassword(context.Context, string, string) error { return nil }

func TestWatcherRunner_MustRunSwallowsCancellation(t *testing.T) {
	t.Parallel()

	r := &WatcherRunner{runFn: func(*dig.Container) error {
		return context.Canceled
	}}
	require.NotPanics(t, func() { r.MustRun(nil) })

	r = &WatcherRunner{runFn: func(*dig.Container) error { return nil }}
	require.NotPanics(t, func() { r.MustRun(nil) })
}

func TestWatcherRunner_MustRunPanicsOnFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("watcher wiring broken")
	r := &WatcherRunner{runFn: func(*dig.Container) error { return boom }}
	require.PanicsWithValue(t, boom, func() { r.MustRun(nil) })
}

func TestWatcherRun_StopsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	logs := testlog.New()
	st := store.New(idleGateway{}, nil, logs.Logger(), store.Config{PollInterval: 5 * time.Millisecond}, nil)
	require.NotNil(t, st)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := watcherRun(ctx, st, nil, logs.Logger())
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, logs.HasMsg("courier watcher started"))
}

func TestGracefulShutdown_IdleServerIsClean(t *testing.T) {
	t.Parallel()

	logs := testlog.New()
	gracefulShutdown(&http.Server{}, logs.Logger(), time.Second)
	require.False(t, logs.HasMsg("graceful shutdown error"))
}

func TestCloseResources_NilKafkaIsSafe(t *testing.T) {
	t.Parallel()

	logs := testlog.New()
	closeResources(&http.Server{}, nil, logs.Logger())
	require.False(t, logs.HasMsg("server close error"))
	require.False(t, logs.HasMsg("kafka notifier close error"))
}
