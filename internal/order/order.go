package order

import (
	"errors"

	"orderservice/internal/entity"
)

// ErrNotFound is returned when an order does not exist or is not visible to
// the caller.
var ErrNotFound = errors.New("order not found")

// BuildAcceptedOrder composes an order for a book the catalog knows about.
func BuildAcceptedOrder(book entity.Book, quantity int) entity.Order {
	price := book.Price
	return entity.Order{
		BookISBN:  book.ISBN,
		BookName:  book.Title + " - " + book.Author,
		BookPrice: &price,
		Quantity:  quantity,
		Status:    entity.OrderStatusAccepted,
	}
}

// BuildRejectedOrder composes an order for an ISBN the catalog could not
// resolve.
func BuildRejectedOrder(isbn string, quantity int) entity.Order {
	return entity.Order{
		BookISBN: isbn,
		Quantity: quantity,
		Status:   entity.OrderStatusRejected,
	}
}
