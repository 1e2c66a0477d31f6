package domain

// DeliveryStatus is the display status of a delivery on the courier dashboard.
type DeliveryStatus string

// List of possible delivery display statuses. StatusCancelled is synthesized
// on the client and never sent to the backend.
const (
	StatusAssigned  DeliveryStatus = "assigned"
	StatusInTransit DeliveryStatus = "in-transit"
	StatusDelivered DeliveryStatus = "delivered"
	StatusCancelled DeliveryStatus = "cancelled"
)

// orderStatusCancelled is the parent-order status that forces the display
// status to cancelled.
const orderStatusCancelled = "cancelled"

// rawStatusFailed is the backend delivery status that displays as cancelled.
const rawStatusFailed = "failed"

var allowedStatuses = [...]DeliveryStatus{
	StatusAssigned, StatusInTransit, StatusDelivered, StatusCancelled,
}

// Valid checks if the DeliveryStatus is valid.
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Mutable reports whether the courier may send this status to the backend.
// Cancelled exists only as a derived display value.
func (s DeliveryStatus) Mutable() bool {
	return s.Valid() && s != StatusCancelled
}

// DeriveDisplayStatus maps a raw backend delivery status plus its parent-order
// status into the display status. A cancelled parent order or a failed raw
// status always displays as cancelled; the underlying record is never mutated.
func DeriveDisplayStatus(rawStatus, orderStatus string) DeliveryStatus {
	if orderStatus == orderStatusCancelled || rawStatus == rawStatusFailed {
		return StatusCancelled
	}
	if s := DeliveryStatus(rawStatus); s.Valid() {
		return s
	}
	return StatusAssigned
}
