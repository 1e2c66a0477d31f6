package handlers

import "time"

type statsDTO struct {
	TotalDeliveries     int     `json:"total_deliveries"`
	CompletedDeliveries int     `json:"completed_deliveries"`
	PendingDeliveries   int     `json:"pending_deliveries"`
	TotalEarnings       float64 `json:"total_earnings"`
	AverageRating       float64 `json:"average_rating"`
}

type customerDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type paginationDTO struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
}

type availableDeliveryDTO struct {
	ID              string      `json:"id"`
	ProductName     string      `json:"product_name"`
	Quantity        int         `json:"quantity"`
	Amount          float64     `json:"amount"`
	Customer        customerDTO `json:"customer"`
	OrderDate       time.Time   `json:"order_date"`
	PickupAddress   string      `json:"pickup_address"`
	DeliveryAddress string      `json:"delivery_address"`
	Instructions    string      `json:"instructions,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	ProductImage    string      `json:"product_image,omitempty"`
}

type myDeliveryDTO struct {
	ID              string      `json:"id"`
	ProductName     string      `json:"product_name"`
	Quantity        int         `json:"quantity"`
	Amount          float64     `json:"amount"`
	Customer        customerDTO `json:"customer"`
	Status          string      `json:"status"`
	OrderStatus     string      `json:"order_status"`
	DeliveryAddress string      `json:"delivery_address"`
	OrderDate       time.Time   `json:"order_date"`
}

type historyEntryDTO struct {
	ID          string      `json:"id"`
	ProductName string      `json:"product_name"`
	Customer    customerDTO `json:"customer"`
	Amount      float64     `json:"amount"`
	CompletedAt time.Time   `json:"completed_at"`
}

type deliveryDetailsDTO struct {
	myDeliveryDTO
	PickupAddress string `json:"pickup_address"`
	Instructions  string `json:"instructions,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type dashboardResponse struct {
	Stats          statsDTO `json:"stats"`
	AvailableCount int      `json:"available_count"`
	MineCount      int      `json:"mine_count"`
	Loading        bool     `json:"loading"`
	LastError      string   `json:"last_error,omitempty"`
}

type listResponse[T any] struct {
	Items      []T           `json:"items"`
	Pagination paginationDTO `json:"pagination"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type completeDeliveryRequest struct {
	Notes string `json:"notes"`
}

type statusFilterRequest struct {
	Status string `json:"status"`
}

type historyFilterRequest struct {
	Status   string `json:"status"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

type changePageRequest struct {
	Page int `json:"page"`
}

type profileDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Zone      string `json:"zone,omitempty"`
	Vehicle   string `json:"vehicle,omitempty"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Zone      *string `json:"zone"`
	Vehicle   *string `json:"vehicle"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
