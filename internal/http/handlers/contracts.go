package handlers

import (
	"context"

	"agriteranga-courier/internal/domain"
	"agriteranga-courier/internal/store"
)

// deliveryUsecase is the slice of the delivery store the dashboard
// handlers dispatch into.
type deliveryUsecase interface {
	Snapshot() store.Snapshot
	AcceptDelivery(ctx context.Context, id string) error
	UpdateDeliveryStatus(ctx context.Context, id string, status domain.DeliveryStatus, notes string) error
	CompleteDelivery(ctx context.Context, id, notes string) error
	DeliveryDetails(ctx context.Context, id string) (domain.DeliveryDetails, error)
	FilterMyDeliveriesByStatus(ctx context.Context, status domain.DeliveryStatus) error
	FilterHistoryByDateRange(ctx context.Context, from, to string, status domain.DeliveryStatus) error
	ChangeAvailablePage(ctx context.Context, page int) error
	ChangeMyDeliveriesPage(ctx context.Context, page int) error
	ChangeHistoryPage(ctx context.Context, page int) error
	RefreshAll(ctx context.Context) error
}

// NewDeliveryUsecase wires the delivery store into a deliveryUsecase.
func NewDeliveryUsecase(st *store.Store) deliveryUsecase {
	return st
}

// profileUsecase is the slice of the store backing the profile screens.
type profileUsecase interface {
	Snapshot() store.Snapshot
	LoadProfile(ctx context.Context) error
	UpdateProfile(ctx context.Context, upd domain.PartialProfileUpdate) error
	ChangePassword(ctx context.Context, current, next string) error
	RefreshProfile(ctx context.Context) error
}

// NewProfileUsecase wires the delivery store into a profileUsecase.
func NewProfileUsecase(st *store.Store) profileUsecase {
	return st
}
