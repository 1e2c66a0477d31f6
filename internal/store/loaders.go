package store

import (
	"context"

	"agriteranga-courier/internal/domain"
	"agriteranga-courier/internal/logx"
	"agriteranga-courier/internal/notify"
)

// LoadStats fetches the aggregate counters. Overlapping calls collapse to
// one outstanding request. On failure the prior stats are kept and a single
// error notification is emitted; the error is returned for callers that
// care, the polling loop ignores it.
func (s *Store) LoadStats(ctx context.Context) error {
	if !s.statsBusy.CompareAndSwap(false, true) {
		return nil
	}
	defer s.statsBusy.Store(false)

	stats, err := s.gw.Stats(ctx)
	if err != nil {
		s.logger.Error("stats load failed", logx.Any("err", err))
		notify.Error(s.notifier, "failed to load delivery stats")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	s.snap.Stats = stats
	s.mu.Unlock()
	return nil
}

// LoadAvailableDeliveries fetches a page of open orders. This is the only
// loader that toggles the store-wide loading flag, an asymmetry inherited
// from the original dashboard and kept on purpose.
func (s *Store) LoadAvailableDeliveries(ctx context.Context, page int, f domain.AvailableFilters) error {
	if !s.availableBusy.CompareAndSwap(false, true) {
		return nil
	}
	defer s.availableBusy.Store(false)

	s.setLoading(true)
	defer s.setLoading(false)

	items, pg, err := s.gw.ListAvailable(ctx, page, s.cfg.PageSize, f)
	if err != nil {
		s.logger.Error("available load failed", logx.Int("page", page), logx.Any("err", err))
		notify.Error(s.notifier, "failed to load available deliveries")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	s.snap.Available = items
	s.snap.AvailablePage = pg
	s.snap.AvailableFilters = f
	s.mu.Unlock()
	return nil
}

// LoadMyDeliveries fetches a page of the courier's assigned deliveries.
// The cancelled-status derivation is applied by the gateway's projection.
func (s *Store) LoadMyDeliveries(ctx context.Context, page int, f domain.MineFilters) error {
	if !s.mineBusy.CompareAndSwap(false, true) {
		return nil
	}
	defer s.mineBusy.Store(false)

	items, pg, err := s.gw.ListMine(ctx, page, s.cfg.PageSize, f)
	if err != nil {
		s.logger.Error("my deliveries load failed", logx.Int("page", page), logx.Any("err", err))
		notify.Error(s.notifier, "failed to load your deliveries")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	s.snap.Mine = items
	s.snap.MinePage = pg
	s.snap.MineFilters = f
	s.mu.Unlock()
	return nil
}

// LoadDeliveryHistory fetches a page of terminal deliveries.
func (s *Store) LoadDeliveryHistory(ctx context.Context, page int, f domain.HistoryFilters) error {
	if !s.historyBusy.CompareAndSwap(false, true) {
		return nil
	}
	defer s.historyBusy.Store(false)

	items, pg, err := s.gw.ListHistory(ctx, page, s.cfg.PageSize, f)
	if err != nil {
		s.logger.Error("history load failed", logx.Int("page", page), logx.Any("err", err))
		notify.Error(s.notifier, "failed to load delivery history")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	s.snap.History = items
	s.snap.HistoryPage = pg
	s.snap.HistoryFilters = f
	s.mu.Unlock()
	return nil
}
