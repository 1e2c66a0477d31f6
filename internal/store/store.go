// Package store owns the courier dashboard's client-side state: four
// paginated collections (stats, available deliveries, my deliveries,
// history) plus the courier profile, fetched from the AgriTeranga backend,
// kept fresh by a staggered polling loop and mutated by courier actions.
package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"agriteranga-courier/internal/domain"
	"agriteranga-courier/internal/logx"
	"agriteranga-courier/internal/notify"
)

// Config stores the refresh scheduling settings of the store.
type Config struct {
	// PollInterval is the period of the background refresh loop.
	PollInterval time.Duration
	// Stagger is the wait inserted between sequential collection loads so a
	// full refresh does not burst the backend with simultaneous requests.
	Stagger time.Duration
	// SettleDelay is the wait before re-reading dependent collections after
	// a delivery reaches a terminal status, giving the backend time to
	// settle its dependent records.
	SettleDelay time.Duration
	// PageSize is the page size requested for every collection.
	PageSize int
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = 15 * time.Second
	}
	if c.Stagger < 0 {
		c.Stagger = 0
	}
	if c.SettleDelay < 0 {
		c.SettleDelay = 0
	}
	if c.PageSize <= 0 {
		c.PageSize = 10
	}
	return c
}

// Snapshot is a point-in-time copy of the store's state, safe to hand to
// presentation code.
type Snapshot struct {
	Stats     domain.DeliveryStats
	Available []domain.AvailableDelivery
	Mine      []domain.MyDelivery
	History   []domain.HistoryEntry

	AvailablePage domain.Pagination
	MinePage      domain.Pagination
	HistoryPage   domain.Pagination

	AvailableFilters domain.AvailableFilters
	MineFilters      domain.MineFilters
	HistoryFilters   domain.HistoryFilters

	Loading bool
	LastErr string

	Profile        domain.Profile
	ProfileLoading bool
	ProfileErr     string
}

// Store is the delivery data store. All state lives behind one mutex;
// loaders are idempotent under overlap thanks to per-collection in-flight
// guards: a second call while one is outstanding is a silent no-op, not
// queued and not cancelled.
type Store struct {
	gw         Gateway
	notifier   notify.Notifier
	logger     logx.Logger
	cfg        Config
	pollCycles counter
	sleep      func(ctx context.Context, d time.Duration) bool

	mu   sync.RWMutex
	snap Snapshot

	statsBusy     atomic.Bool
	availableBusy atomic.Bool
	mineBusy      atomic.Bool
	historyBusy   atomic.Bool
	profileBusy   atomic.Bool
}

// New creates a Store. pollCycles may be nil.
func New(gw Gateway, notifier notify.Notifier, logger logx.Logger, cfg Config, pollCycles counter) *Store {
	if gw == nil {
		return nil
	}
	if notifier == nil {
		notifier = notify.Nop()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Store{
		gw:         gw,
		notifier:   notifier,
		logger:     logger,
		cfg:        cfg.withDefaults(),
		pollCycles: pollCycles,
		sleep:      sleepCtx,
		snap: Snapshot{
			AvailablePage: domain.Pagination{Page: 1, TotalPages: 1},
			MinePage:      domain.Pagination{Page: 1, TotalPages: 1},
			HistoryPage:   domain.Pagination{Page: 1, TotalPages: 1},
		},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.snap
	out.Available = append([]domain.AvailableDelivery(nil), s.snap.Available...)
	out.Mine = append([]domain.MyDelivery(nil), s.snap.Mine...)
	out.History = append([]domain.HistoryEntry(nil), s.snap.History...)
	return out
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.snap.Loading = v
	s.mu.Unlock()
}

func (s *Store) setLastErr(err error) {
	s.mu.Lock()
	if err != nil {
		s.snap.LastErr = err.Error()
	} else {
		s.snap.LastErr = ""
	}
	s.mu.Unlock()
}

// minePosition returns the current page and filters of the my-deliveries
// collection, used by actions that trigger a reload at the current view.
func (s *Store) minePosition() (int, domain.MineFilters) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page := s.snap.MinePage.Page
	if page < 1 {
		page = 1
	}
	return page, s.snap.MineFilters
}

func (s *Store) historyPosition() (int, domain.HistoryFilters) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page := s.snap.HistoryPage.Page
	if page < 1 {
		page = 1
	}
	return page, s.snap.HistoryFilters
}

func (s *Store) availablePosition() (int, domain.AvailableFilters) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page := s.snap.AvailablePage.Page
	if page < 1 {
		page = 1
	}
	return page, s.snap.AvailableFilters
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
