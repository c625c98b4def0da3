package entity

import "time"

type OrderStatus string

const (
	OrderStatusAccepted   OrderStatus = "ACCEPTED"
	OrderStatusRejected   OrderStatus = "REJECTED"
	OrderStatusDispatched OrderStatus = "DISPATCHED"
)

type Order struct {
	ID        string      `json:"id"`
	BookISBN  string      `json:"book_isbn"`
	BookName  string      `json:"book_name,omitempty"`
	BookPrice *float64    `json:"book_price,omitempty"`
	Quantity  int         `json:"quantity"`
	Status    OrderStatus `json:"status"`
	CreatedBy string      `json:"created_by,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Version   int         `json:"version"`
}
