package store

import (
	"context"
	"fmt"

	"agriteranga-courier/internal/domain"
	"agriteranga-courier/internal/logx"
	"agriteranga-courier/internal/notify"
)

// LoadProfile fetches the courier's own user record. The profile has its
// own loading and error state, independent of the delivery collections.
func (s *Store) LoadProfile(ctx context.Context) error {
	if !s.profileBusy.CompareAndSwap(false, true) {
		return nil
	}
	defer s.profileBusy.Store(false)

	s.mu.Lock()
	s.snap.ProfileLoading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.snap.ProfileLoading = false
		s.mu.Unlock()
	}()

	p, err := s.gw.Profile(ctx)
	if err != nil {
		s.logger.Error("profile load failed", logx.Any("err", err))
		notify.Error(s.notifier, "failed to load profile")
		s.mu.Lock()
		s.snap.ProfileErr = err.Error()
		s.mu.Unlock()
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	s.snap.Profile = p
	s.snap.ProfileErr = ""
	s.mu.Unlock()
	return nil
}

// UpdateProfile applies a partial update to the courier's record.
func (s *Store) UpdateProfile(ctx context.Context, upd domain.PartialProfileUpdate) error {
	p, err := s.gw.UpdateProfile(ctx, upd)
	if err != nil {
		s.logger.Error("profile update failed", logx.Any("err", err))
		notify.Error(s.notifier, actionMessage("could not update profile", err))
		return fmt.Errorf("update profile: %w", err)
	}

	if p.ID != "" {
		s.mu.Lock()
		s.snap.Profile = p
		s.snap.ProfileErr = ""
		s.mu.Unlock()
	} else {
		// backend answered without the updated record
		_ = s.LoadProfile(ctx)
	}
	notify.Success(s.notifier, "profile updated")
	return nil
}

// ChangePassword replaces the courier's password.
func (s *Store) ChangePassword(ctx context.Context, current, next string) error {
	if err := s.gw.ChangePassword(ctx, current, next); err != nil {
		s.logger.Error("password change failed", logx.Any("err", err))
		notify.Error(s.notifier, actionMessage("could not change password", err))
		return fmt.Errorf("change password: %w", err)
	}
	notify.Success(s.notifier, "password changed")
	return nil
}

// RefreshProfile re-reads the profile from the backend.
func (s *Store) RefreshProfile(ctx context.Context) error {
	return s.LoadProfile(ctx)
}
