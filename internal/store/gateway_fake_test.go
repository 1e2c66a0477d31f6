package store

import (
	"context"
	"sync"
	"time"

	"agriteranga-courier/internal/domain"
)

// fakeGateway is a scriptable Gateway double. Every method records the
// call; list methods also record the page and filters that went on the
// wire. A non-nil block channel makes the call wait until it is closed,
// to exercise the in-flight guards.
type fakeGateway struct {
	mu    sync.Mutex
	order []string

	stats      domain.DeliveryStats
	statsErr   error
	statsCalls int
	statsBlock chan struct{}

	available      []domain.AvailableDelivery
	availableErr   error
	availableCalls int
	lastAvailPage  int

	mine            []domain.MyDelivery
	mineErr         error
	mineCalls       int
	lastMinePage    int
	lastMineFilters domain.MineFilters
	mineBlock       chan struct{}

	history            []domain.HistoryEntry
	historyErr         error
	historyCalls       int
	lastHistoryPage    int
	lastHistoryFilters domain.HistoryFilters

	acceptErr   error
	acceptIDs   []string
	updateErr   error
	updateIDs   []string
	completeErr error
	completeIDs []string

	details    domain.DeliveryDetails
	detailsErr error

	profile    domain.Profile
	profileErr error
}

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	f.order = append(f.order, name)
	f.mu.Unlock()
}

func (f *fakeGateway) callOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.order...)
}

func (f *fakeGateway) Stats(context.Context) (domain.DeliveryStats, error) {
	f.record("stats")
	f.mu.Lock()
	f.statsCalls++
	block := f.statsBlock
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.statsErr != nil {
		return domain.DeliveryStats{}, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeGateway) ListAvailable(_ context.Context, page, _ int, _ domain.AvailableFilters) ([]domain.AvailableDelivery, domain.Pagination, error) {
	f.record("available")
	f.mu.Lock()
	f.availableCalls++
	f.lastAvailPage = page
	f.mu.Unlock()
	if f.availableErr != nil {
		return nil, domain.Pagination{}, f.availableErr
	}
	return f.available, domain.Pagination{Page: page, TotalPages: 1, Total: len(f.available)}, nil
}

func (f *fakeGateway) ListMine(_ context.Context, page, _ int, filters domain.MineFilters) ([]domain.MyDelivery, domain.Pagination, error) {
	f.record("mine")
	f.mu.Lock()
	f.mineCalls++
	f.lastMinePage = page
	f.lastMineFilters = filters
	block := f.mineBlock
	mine := f.mine
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.mineErr != nil {
		return nil, domain.Pagination{}, f.mineErr
	}
	return mine, domain.Pagination{Page: page, TotalPages: 1, Total: len(mine)}, nil
}

func (f *fakeGateway) ListHistory(_ context.Context, page, _ int, filters domain.HistoryFilters) ([]domain.HistoryEntry, domain.Pagination, error) {
	f.record("history")
	f.mu.Lock()
	f.historyCalls++
	f.lastHistoryPage = page
	f.lastHistoryFilters = filters
	f.mu.Unlock()
	if f.historyErr != nil {
		return nil, domain.Pagination{}, f.historyErr
	}
	return f.history, domain.Pagination{Page: page, TotalPages: 1, Total: len(f.history)}, nil
}

func (f *fakeGateway) Accept(_ context.Context, id string) error {
	f.record("accept")
	f.mu.Lock()
	f.acceptIDs = append(f.acceptIDs, id)
	f.mu.Unlock()
	return f.acceptErr
}

func (f *fakeGateway) UpdateStatus(_ context.Context, id string, _ domain.DeliveryStatus, _ string) error {
	f.record("update")
	f.mu.Lock()
	f.updateIDs = append(f.updateIDs, id)
	f.mu.Unlock()
	return f.updateErr
}

func (f *fakeGateway) Complete(_ context.Context, id, _ string) error {
	f.record("complete")
	f.mu.Lock()
	f.completeIDs = append(f.completeIDs, id)
	f.mu.Unlock()
	return f.completeErr
}

func (f *fakeGateway) Details(context.Context, string) (domain.DeliveryDetails, error) {
	f.record("details")
	return f.details, f.detailsErr
}

func (f *fakeGateway) Profile(context.Context) (domain.Profile, error) {
	f.record("profile")
	return f.profile, f.profileErr
}

func (f *fakeGateway) UpdateProfile(context.Context, domain.PartialProfileUpdate) (domain.Profile, error) {
	f.record("update_profile")
	return f.profile, f.profileErr
}

func (f *fakeGateway) ChangePassword(context.Context, string, string) error {
	f.record("change_password")
	return f.profileErr
}

func (f *fakeGateway) setMine(mine []domain.MyDelivery) {
	f.mu.Lock()
	f.mine = mine
	f.mu.Unlock()
}

var _ Gateway = (*fakeGateway)(nil)

// recordingSleeper replaces the store's sleep with an instant one that
// remembers the requested delays.
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) bool {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return ctx.Err() == nil
}

func (r *recordingSleeper) recorded() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}
