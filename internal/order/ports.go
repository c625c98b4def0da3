package order

import (
	"context"

	"orderservice/internal/entity"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=order

// Repository defines the contract for order storage.
type Repository interface {
	Save(ctx context.Context, o *entity.Order) error
	ListByCreator(ctx context.Context, createdBy string) ([]entity.Order, error)
	GetByID(ctx context.Context, id string) (entity.Order, error)
}

// BookLookup resolves an ISBN against the catalog. It reports absence
// instead of failing.
type BookLookup interface {
	GetBookByISBN(ctx context.Context, isbn string) (entity.Book, bool)
}
