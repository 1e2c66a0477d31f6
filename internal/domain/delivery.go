package domain

import "time"

// DeliveryStats - aggregate counters shown on the courier dashboard header.
// Replaced wholesale on each fetch, never merged.
type DeliveryStats struct {
	TotalDeliveries     int
	CompletedDeliveries int
	PendingDeliveries   int
	TotalEarnings       float64
	AverageRating       float64
}

// Customer carries the contact details a courier needs for a drop-off.
type Customer struct {
	Name  string
	Phone string
}

// AvailableDelivery is the delivery-offer projection of an open marketplace order.
// It is derived from the first line item of the order; detail of further items
// is dropped (known product simplification, couriers carry single-item orders).
type AvailableDelivery struct {
	ID              string
	ProductName     string
	Quantity        int
	Amount          float64
	Customer        Customer
	OrderDate       time.Time
	PickupAddress   string
	DeliveryAddress string
	Instructions    string
	Notes           string
	ProductImage    string
}

// MyDelivery is the projection of a delivery assigned to the courier.
// Status is the display status (see DeriveDisplayStatus); OrderStatus keeps
// the raw parent-order status as reported by the backend.
type MyDelivery struct {
	ID              string
	ProductName     string
	Quantity        int
	Amount          float64
	Customer        Customer
	Status          DeliveryStatus
	OrderStatus     string
	DeliveryAddress string
	OrderDate       time.Time
}

// DeliveryDetails is the full detail payload of a single delivery,
// fetched read-through and never cached by the store.
type DeliveryDetails struct {
	MyDelivery
	PickupAddress string
	Instructions  string
	Notes         string
}

// HistoryEntry is the projection of a terminal delivery shown on the history screen.
type HistoryEntry struct {
	ID          string
	ProductName string
	Customer    Customer
	Amount      float64
	CompletedAt time.Time
}

// Pagination tracks the page position of one collection. Each collection
// (available, mine, history) paginates independently.
type Pagination struct {
	Page       int
	TotalPages int
	Total      int
}

// AvailableFilters is reserved for future filter keys on the available list.
type AvailableFilters struct{}

// MineFilters narrows the courier's own deliveries by display status.
// Empty status means no filtering.
type MineFilters struct {
	Status DeliveryStatus
}

// HistoryFilters narrows delivery history by status and completion date range.
type HistoryFilters struct {
	Status   DeliveryStatus
	DateFrom string
	DateTo   string
}
