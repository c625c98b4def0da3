package order

import (
	"context"
	"errors"
	"time"

	"orderservice/internal/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const orderColumns = `id::text, book_isbn, book_name, book_price::float8, quantity, status, created_by, created_at, updated_at, version`

func scanOrder(row pgx.Row) (entity.Order, error) {
	var o entity.Order
	var bookName, createdBy *string
	var status string
	err := row.Scan(&o.ID, &o.BookISBN, &bookName, &o.BookPrice, &o.Quantity, &status,
		&createdBy, &o.CreatedAt, &o.UpdatedAt, &o.Version)
	if err != nil {
		return entity.Order{}, err
	}
	if bookName != nil {
		o.BookName = *bookName
	}
	if createdBy != nil {
		o.CreatedBy = *createdBy
	}
	o.Status = entity.OrderStatus(status)
	return o, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Save inserts o and fills in the timestamps and version assigned by the
// database.
func (r *PostgresRepo) Save(ctx context.Context, o *entity.Order) error {
	const sql = `
		INSERT INTO orders (id, book_isbn, book_name, book_price, quantity, status, created_by, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW(), 1)
		RETURNING created_at, updated_at, version`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, sql,
		o.ID, o.BookISBN, nullable(o.BookName), o.BookPrice, o.Quantity, string(o.Status), nullable(o.CreatedBy),
	).Scan(&o.CreatedAt, &o.UpdatedAt, &o.Version)
}

func (r *PostgresRepo) ListByCreator(ctx context.Context, createdBy string) ([]entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE created_by = $1 ORDER BY created_at DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, createdBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	o, err := scanOrder(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Order{}, ErrNotFound
		}
		var pgErr *pgconn.PgError
		// 22P02: id is not a valid uuid.
		if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
			return entity.Order{}, ErrNotFound
		}
		return entity.Order{}, err
	}
	return o, nil
}
