package store

import (
	"context"
	"fmt"
	"sync"

	"agriteranga-courier/internal/apperr"
	"agriteranga-courier/internal/domain"
	"agriteranga-courier/internal/logx"
	"agriteranga-courier/internal/notify"
)

// AcceptDelivery claims an open order. On success the delivery is removed
// from the available list optimistically, then stats and my-deliveries are
// reloaded at their current position so the delivery shows up as the
// courier's own. Failures are notified and returned so the initiating view
// can also react inline.
func (s *Store) AcceptDelivery(ctx context.Context, id string) error {
	if err := s.gw.Accept(ctx, id); err != nil {
		s.logger.Error("accept failed", logx.String("delivery_id", id), logx.Any("err", err))
		notify.Error(s.notifier, actionMessage("could not accept delivery", err))
		return fmt.Errorf("accept delivery: %w", err)
	}

	s.mu.Lock()
	s.snap.Available = removeAvailable(s.snap.Available, id)
	s.mu.Unlock()

	notify.Success(s.notifier, "delivery accepted")

	page, f := s.minePosition()
	_ = s.LoadStats(ctx)
	_ = s.LoadMyDeliveries(ctx, page, f)
	return nil
}

// UpdateDeliveryStatus reports a new status for one of the courier's
// deliveries and patches the matching local entry in place. When the
// delivery reaches delivered, the dependent collections are re-read after
// the settle delay: the backend needs a moment to finish its own updates
// before history and stats reflect the change.
func (s *Store) UpdateDeliveryStatus(ctx context.Context, id string, status domain.DeliveryStatus, notes string) error {
	if !status.Mutable() {
		return fmt.Errorf("update delivery status: %w", apperr.ErrInvalid)
	}
	if err := s.gw.UpdateStatus(ctx, id, status, notes); err != nil {
		s.logger.Error("status update failed",
			logx.String("delivery_id", id),
			logx.String("status", string(status)),
			logx.Any("err", err),
		)
		notify.Error(s.notifier, actionMessage("could not update delivery status", err))
		return fmt.Errorf("update delivery status: %w", err)
	}

	s.patchMineStatus(id, status)
	notify.Success(s.notifier, "delivery status updated")

	if status == domain.StatusDelivered {
		if !s.sleep(ctx, s.cfg.SettleDelay) {
			return ctx.Err()
		}
		s.refreshAfterTerminal(ctx)
	}
	return nil
}

// CompleteDelivery is the terminal variant of a status update with a
// mandatory notes payload. The local entry is marked delivered
// optimistically, then my-deliveries, history and stats are re-fetched
// concurrently and awaited.
func (s *Store) CompleteDelivery(ctx context.Context, id, notes string) error {
	if err := s.gw.Complete(ctx, id, notes); err != nil {
		s.logger.Error("complete failed", logx.String("delivery_id", id), logx.Any("err", err))
		notify.Error(s.notifier, actionMessage("could not complete delivery", err))
		return fmt.Errorf("complete delivery: %w", err)
	}

	s.patchMineStatus(id, domain.StatusDelivered)
	notify.Success(s.notifier, "delivery completed")

	minePage, mineF := s.minePosition()
	histPage, histF := s.historyPosition()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		_ = s.LoadMyDeliveries(ctx, minePage, mineF)
	}()
	go func() {
		defer wg.Done()
		_ = s.LoadDeliveryHistory(ctx, histPage, histF)
	}()
	go func() {
		defer wg.Done()
		_ = s.LoadStats(ctx)
	}()
	wg.Wait()
	return nil
}

// DeliveryDetails is a read-through fetch; no local state is mutated.
func (s *Store) DeliveryDetails(ctx context.Context, id string) (domain.DeliveryDetails, error) {
	d, err := s.gw.Details(ctx, id)
	if err != nil {
		return domain.DeliveryDetails{}, fmt.Errorf("delivery details: %w", err)
	}
	return d, nil
}

// FilterMyDeliveriesByStatus applies a status filter and reloads the
// collection from its first page.
func (s *Store) FilterMyDeliveriesByStatus(ctx context.Context, status domain.DeliveryStatus) error {
	if status != "" && !status.Valid() {
		return fmt.Errorf("filter my deliveries: %w", apperr.ErrInvalid)
	}
	return s.LoadMyDeliveries(ctx, 1, domain.MineFilters{Status: status})
}

// FilterHistoryByDateRange applies a date range (and optional status) filter
// and reloads history from its first page.
func (s *Store) FilterHistoryByDateRange(ctx context.Context, from, to string, status domain.DeliveryStatus) error {
	if status != "" && !status.Valid() {
		return fmt.Errorf("filter history: %w", apperr.ErrInvalid)
	}
	return s.LoadDeliveryHistory(ctx, 1, domain.HistoryFilters{Status: status, DateFrom: from, DateTo: to})
}

// ChangeAvailablePage reloads the available list at the requested page with
// its current filters.
func (s *Store) ChangeAvailablePage(ctx context.Context, page int) error {
	if page < 1 {
		return fmt.Errorf("change available page: %w", apperr.ErrInvalid)
	}
	_, f := s.availablePosition()
	return s.LoadAvailableDeliveries(ctx, page, f)
}

// ChangeMyDeliveriesPage reloads the courier's deliveries at the requested page.
func (s *Store) ChangeMyDeliveriesPage(ctx context.Context, page int) error {
	if page < 1 {
		return fmt.Errorf("change my deliveries page: %w", apperr.ErrInvalid)
	}
	_, f := s.minePosition()
	return s.LoadMyDeliveries(ctx, page, f)
}

// ChangeHistoryPage reloads history at the requested page.
func (s *Store) ChangeHistoryPage(ctx context.Context, page int) error {
	if page < 1 {
		return fmt.Errorf("change history page: %w", apperr.ErrInvalid)
	}
	_, f := s.historyPosition()
	return s.LoadDeliveryHistory(ctx, page, f)
}

// refreshAfterTerminal re-reads the collections a terminal status change
// invalidates: history, my-deliveries and stats, in that order.
func (s *Store) refreshAfterTerminal(ctx context.Context) {
	histPage, histF := s.historyPosition()
	minePage, mineF := s.minePosition()
	_ = s.LoadDeliveryHistory(ctx, histPage, histF)
	_ = s.LoadMyDeliveries(ctx, minePage, mineF)
	_ = s.LoadStats(ctx)
}

// patchMineStatus updates the status of the matching local entry in place.
// The raw backend record is untouched; this is display state only.
func (s *Store) patchMineStatus(id string, status domain.DeliveryStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snap.Mine {
		if s.snap.Mine[i].ID == id {
			s.snap.Mine[i].Status = status
			return
		}
	}
}

func removeAvailable(list []domain.AvailableDelivery, id string) []domain.AvailableDelivery {
	out := list[:0]
	for _, d := range list {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}

// actionMessage surfaces the backend's message when one is present, or the
// default otherwise.
func actionMessage(def string, err error) string {
	if err == nil {
		return def
	}
	return def + ": " + err.Error()
}
