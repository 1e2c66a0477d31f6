package store

import (
	"context"
	"time"

	"agriteranga-courier/internal/logx"
)

// step is one operation of a refresh sequence with the minimum wait that
// must pass before it runs.
type step struct {
	name        string
	delayBefore time.Duration
	run         func(context.Context) error
}

// refreshSteps builds the full refresh sequence at its current pages and
// filters. Order is significant: stats first (cheapest, feeds the header
// badges), then the courier's own deliveries, then available, then history.
func (s *Store) refreshSteps() []step {
	return []step{
		{name: "stats", run: s.LoadStats},
		{name: "mine", delayBefore: s.cfg.Stagger, run: func(ctx context.Context) error {
			page, f := s.minePosition()
			return s.LoadMyDeliveries(ctx, page, f)
		}},
		{name: "available", delayBefore: s.cfg.Stagger, run: func(ctx context.Context) error {
			page, f := s.availablePosition()
			return s.LoadAvailableDeliveries(ctx, page, f)
		}},
		{name: "history", delayBefore: s.cfg.Stagger, run: func(ctx context.Context) error {
			page, f := s.historyPosition()
			return s.LoadDeliveryHistory(ctx, page, f)
		}},
	}
}

// RefreshAll reloads all four collections sequentially, spaced by the
// configured stagger. A failed step does not stop the sequence; the first
// failure is returned once every step has run.
func (s *Store) RefreshAll(ctx context.Context) error {
	return s.runSequence(ctx, s.refreshSteps())
}

func (s *Store) runSequence(ctx context.Context, steps []step) error {
	var firstErr error
	for _, st := range steps {
		if st.delayBefore > 0 && !s.sleep(ctx, st.delayBefore) {
			if firstErr == nil {
				firstErr = ctx.Err()
			}
			return firstErr
		}
		if err := st.run(ctx); err != nil {
			s.logger.Debug("refresh step failed",
				logx.String("step", st.name),
				logx.Any("err", err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Run performs the mount-time load pass and then polls RefreshAll on the
// configured interval until ctx is cancelled. Poll failures never abort the
// loop; a collection at worst stays stale until the next cycle.
func (s *Store) Run(ctx context.Context) error {
	s.setLoading(true)
	err := s.RefreshAll(ctx)
	s.setLastErr(err)
	s.setLoading(false)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.RefreshAll(ctx); err != nil {
				s.logger.Warn("background refresh incomplete", logx.Any("err", err))
			}
			if s.pollCycles != nil {
				s.pollCycles.Inc()
			}
		}
	}
}
