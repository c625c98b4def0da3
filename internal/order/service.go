package order

import (
	"context"
	"fmt"
	"log"

	"orderservice/internal/entity"

	"github.com/google/uuid"
)

// Service provides order placement and retrieval.
type Service struct {
	repo  Repository
	books BookLookup
}

// NewService creates a new order service.
func NewService(repo Repository, books BookLookup) *Service {
	return &Service{repo: repo, books: books}
}

// SubmitOrder accepts the order when the catalog knows the book and rejects
// it otherwise. Either way the order is stored.
func (s *Service) SubmitOrder(ctx context.Context, req OrderRequest, userID string) (entity.Order, error) {
	var o entity.Order
	if book, ok := s.books.GetBookByISBN(ctx, req.ISBN); ok {
		o = BuildAcceptedOrder(book, req.Qty())
	} else {
		o = BuildRejectedOrder(req.ISBN, req.Qty())
	}
	o.ID = uuid.New().String()
	o.CreatedBy = userID

	if err := s.repo.Save(ctx, &o); err != nil {
		return entity.Order{}, fmt.Errorf("save order: %w", err)
	}
	log.Printf("order submitted id=%s isbn=%s quantity=%d status=%s user_id=%s", o.ID, o.BookISBN, o.Quantity, o.Status, userID)
	return o, nil
}

// ListOrders returns the caller's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, userID string) ([]entity.Order, error) {
	return s.repo.ListByCreator(ctx, userID)
}

// GetOrder returns one of the caller's orders.
func (s *Service) GetOrder(ctx context.Context, id, userID string) (entity.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.Order{}, err
	}
	if o.CreatedBy != userID {
		return entity.Order{}, ErrNotFound
	}
	return o, nil
}
