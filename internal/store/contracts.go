package store

import (
	"context"

	"agriteranga-courier/internal/domain"
)

// Gateway abstracts the subset of backend operations the delivery store
// needs. *backend.Client satisfies it; tests use handwritten fakes.
type Gateway interface {
	Stats(ctx context.Context) (domain.DeliveryStats, error)
	ListAvailable(ctx context.Context, page, pageSize int, f domain.AvailableFilters) ([]domain.AvailableDelivery, domain.Pagination, error)
	ListMine(ctx context.Context, page, pageSize int, f domain.MineFilters) ([]domain.MyDelivery, domain.Pagination, error)
	ListHistory(ctx context.Context, page, pageSize int, f domain.HistoryFilters) ([]domain.HistoryEntry, domain.Pagination, error)
	Accept(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status domain.DeliveryStatus, notes string) error
	Complete(ctx context.Context, id, notes string) error
	Details(ctx context.Context, id string) (domain.DeliveryDetails, error)
	Profile(ctx context.Context) (domain.Profile, error)
	UpdateProfile(ctx context.Context, upd domain.PartialProfileUpdate) (domain.Profile, error)
	ChangePassword(ctx context.Context, current, next string) error
}

type counter interface {
	Inc()
}
