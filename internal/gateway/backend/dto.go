package backend

import (
	"strings"
	"time"

	"agriteranga-courier/internal/domain"
)

// Wire shapes of the AgriTeranga backend. The contract is only loosely
// documented, so every field that has been observed under more than one
// name carries all known spellings and is resolved by a picker method.

type statsDTO struct {
	TotalDeliveries     int     `json:"totalDeliveries"`
	CompletedDeliveries int     `json:"completedDeliveries"`
	PendingDeliveries   int     `json:"pendingDeliveries"`
	TotalEarnings       float64 `json:"totalEarnings"`
	AverageRating       float64 `json:"averageRating"`
}

func (s statsDTO) toDomain() domain.DeliveryStats {
	return domain.DeliveryStats{
		TotalDeliveries:     s.TotalDeliveries,
		CompletedDeliveries: s.CompletedDeliveries,
		PendingDeliveries:   s.PendingDeliveries,
		TotalEarnings:       s.TotalEarnings,
		AverageRating:       s.AverageRating,
	}
}

type productDTO struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

type orderItemDTO struct {
	Product  productDTO `json:"product"`
	Quantity int        `json:"quantity"`
}

type customerDTO struct {
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func (c customerDTO) toDomain() domain.Customer {
	name := c.Name
	if name == "" {
		name = strings.TrimSpace(c.FirstName + " " + c.LastName)
	}
	return domain.Customer{Name: name, Phone: c.Phone}
}

type orderDTO struct {
	ID              string         `json:"id"`
	MongoID         string         `json:"_id"`
	Status          string         `json:"status"`
	Items           []orderItemDTO `json:"items"`
	TotalPrice      float64        `json:"totalPrice"`
	Customer        customerDTO    `json:"customer"`
	CreatedAt       time.Time      `json:"createdAt"`
	PickupAddress   string         `json:"pickupAddress"`
	DeliveryAddress string         `json:"deliveryAddress"`
	Instructions    string         `json:"instructions"`
	Notes           string         `json:"notes"`
}

func (o orderDTO) id() string {
	if o.ID != "" {
		return o.ID
	}
	return o.MongoID
}

// firstItem projects the order's leading line item. Orders with more items
// lose the rest of the detail; couriers carry single-item orders.
func (o orderDTO) firstItem() orderItemDTO {
	if len(o.Items) == 0 {
		return orderItemDTO{}
	}
	return o.Items[0]
}

func (o orderDTO) toAvailable() domain.AvailableDelivery {
	item := o.firstItem()
	image := ""
	if len(item.Product.Images) > 0 {
		image = item.Product.Images[0]
	}
	return domain.AvailableDelivery{
		ID:              o.id(),
		ProductName:     item.Product.Name,
		Quantity:        item.Quantity,
		Amount:          o.TotalPrice,
		Customer:        o.Customer.toDomain(),
		OrderDate:       o.CreatedAt,
		PickupAddress:   o.PickupAddress,
		DeliveryAddress: o.DeliveryAddress,
		Instructions:    o.Instructions,
		Notes:           o.Notes,
		ProductImage:    image,
	}
}

type deliveryDTO struct {
	ID          string    `json:"id"`
	MongoID     string    `json:"_id"`
	Status      string    `json:"status"`
	Order       orderDTO  `json:"order"`
	Notes       string    `json:"notes"`
	CompletedAt time.Time `json:"completedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (d deliveryDTO) id() string {
	if d.ID != "" {
		return d.ID
	}
	if d.MongoID != "" {
		return d.MongoID
	}
	return d.Order.id()
}

func (d deliveryDTO) toMine() domain.MyDelivery {
	item := d.Order.firstItem()
	return domain.MyDelivery{
		ID:              d.id(),
		ProductName:     item.Product.Name,
		Quantity:        item.Quantity,
		Amount:          d.Order.TotalPrice,
		Customer:        d.Order.Customer.toDomain(),
		Status:          domain.DeriveDisplayStatus(d.Status, d.Order.Status),
		OrderStatus:     d.Order.Status,
		DeliveryAddress: d.Order.DeliveryAddress,
		OrderDate:       d.Order.CreatedAt,
	}
}

func (d deliveryDTO) toHistory() domain.HistoryEntry {
	completed := d.CompletedAt
	if completed.IsZero() {
		completed = d.UpdatedAt
	}
	return domain.HistoryEntry{
		ID:          d.id(),
		ProductName: d.Order.firstItem().Product.Name,
		Customer:    d.Order.Customer.toDomain(),
		Amount:      d.Order.TotalPrice,
		CompletedAt: completed,
	}
}

func (d deliveryDTO) toDetails() domain.DeliveryDetails {
	return domain.DeliveryDetails{
		MyDelivery:    d.toMine(),
		PickupAddress: d.Order.PickupAddress,
		Instructions:  d.Order.Instructions,
		Notes:         d.Notes,
	}
}

type profileDTO struct {
	ID        string `json:"id"`
	MongoID   string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Zone      string `json:"zone"`
	Vehicle   string `json:"vehicle"`
}

func (p profileDTO) toDomain() domain.Profile {
	id := p.ID
	if id == "" {
		id = p.MongoID
	}
	return domain.Profile{
		ID:        id,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Email:     p.Email,
		Zone:      p.Zone,
		Vehicle:   p.Vehicle,
	}
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Zone      *string `json:"zone,omitempty"`
	Vehicle   *string `json:"vehicle,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

type completeRequest struct {
	Notes string `json:"notes"`
}
