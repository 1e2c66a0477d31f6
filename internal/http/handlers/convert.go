package handlers

import (
	"agriteranga-courier/internal/domain"
	"agriteranga-courier/internal/store"
)

func statsToResponse(s domain.DeliveryStats) statsDTO {
	return statsDTO{
		TotalDeliveries:     s.TotalDeliveries,
		CompletedDeliveries: s.CompletedDeliveries,
		PendingDeliveries:   s.PendingDeliveries,
		TotalEarnings:       s.TotalEarnings,
		AverageRating:       s.AverageRating,
	}
}

func customerToResponse(c domain.Customer) customerDTO {
	return customerDTO{Name: c.Name, Phone: c.Phone}
}

func paginationToResponse(p domain.Pagination) paginationDTO {
	return paginationDTO{Page: p.Page, TotalPages: p.TotalPages, Total: p.Total}
}

func availableToResponse(d domain.AvailableDelivery) availableDeliveryDTO {
	return availableDeliveryDTO{
		ID:              d.ID,
		ProductName:     d.ProductName,
		Quantity:        d.Quantity,
		Amount:          d.Amount,
		Customer:        customerToResponse(d.Customer),
		OrderDate:       d.OrderDate,
		PickupAddress:   d.PickupAddress,
		DeliveryAddress: d.DeliveryAddress,
		Instructions:    d.Instructions,
		Notes:           d.Notes,
		ProductImage:    d.ProductImage,
	}
}

func mineToResponse(d domain.MyDelivery) myDeliveryDTO {
	return myDeliveryDTO{
		ID:              d.ID,
		ProductName:     d.ProductName,
		Quantity:        d.Quantity,
		Amount:          d.Amount,
		Customer:        customerToResponse(d.Customer),
		Status:          string(d.Status),
		OrderStatus:     d.OrderStatus,
		DeliveryAddress: d.DeliveryAddress,
		OrderDate:       d.OrderDate,
	}
}

func historyToResponse(e domain.HistoryEntry) historyEntryDTO {
	return historyEntryDTO{
		ID:          e.ID,
		ProductName: e.ProductName,
		Customer:    customerToResponse(e.Customer),
		Amount:      e.Amount,
		CompletedAt: e.CompletedAt,
	}
}

func detailsToResponse(d domain.DeliveryDetails) deliveryDetailsDTO {
	return deliveryDetailsDTO{
		myDeliveryDTO: mineToResponse(d.MyDelivery),
		PickupAddress: d.PickupAddress,
		Instructions:  d.Instructions,
		Notes:         d.Notes,
	}
}

func availableListResponse(snap store.Snapshot) listResponse[availableDeliveryDTO] {
	items := make([]availableDeliveryDTO, 0, len(snap.Available))
	for _, d := range snap.Available {
		items = append(items, availableToResponse(d))
	}
	return listResponse[availableDeliveryDTO]{Items: items, Pagination: paginationToResponse(snap.AvailablePage)}
}

func mineListResponse(snap store.Snapshot) listResponse[myDeliveryDTO] {
	items := make([]myDeliveryDTO, 0, len(snap.Mine))
	for _, d := range snap.Mine {
		items = append(items, mineToResponse(d))
	}
	return listResponse[myDeliveryDTO]{Items: items, Pagination: paginationToResponse(snap.MinePage)}
}

func historyListResponse(snap store.Snapshot) listResponse[historyEntryDTO] {
	items := make([]historyEntryDTO, 0, len(snap.History))
	for _, e := range snap.History {
		items = append(items, historyToResponse(e))
	}
	return listResponse[historyEntryDTO]{Items: items, Pagination: paginationToResponse(snap.HistoryPage)}
}

func profileToResponse(p domain.Profile) profileDTO {
	return profileDTO{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Email:     p.Email,
		Zone:      p.Zone,
		Vehicle:   p.Vehicle,
	}
}

func (r updateProfileRequest) toModel() domain.PartialProfileUpdate {
	return domain.PartialProfileUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Zone:      r.Zone,
		Vehicle:   r.Vehicle,
	}
}
