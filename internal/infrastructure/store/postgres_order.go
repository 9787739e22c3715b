package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/domain/order"
)

// PostgresOrderStore implements order.Repository. The header and its lines
// are written in one transaction: a failed line insert rolls the header
// back, so an orphaned PENDING order cannot land.
type PostgresOrderStore struct {
	db *sql.DB
}

func NewPostgresOrderStore(db *sql.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

func (os *PostgresOrderStore) Create(ctx context.Context, o *order.Order) error {
	if len(o.Lines) == 0 {
		return order.ErrEmptyOrder
	}

	tx, err := os.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer tx.Rollback()

	var userID any
	if o.UserID != "" {
		userID = o.UserID
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, name, email, phone, address, city, postal_code,
			total, payment_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, o.ID, userID, o.Name, o.Email, o.Phone, o.Address, o.City, o.PostalCode,
		o.Total.String(), o.Method, string(o.Status), o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, l := range o.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, l.ID, o.ID, l.ProductID, l.ProductName, l.Quantity, l.UnitPrice.String())
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

func (os *PostgresOrderStore) GetByID(ctx context.Context, id string) (*order.Order, error) {
	o, err := os.scanHeader(os.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(user_id, ''), name, email, phone, address, city, postal_code,
			total, payment_method, status, created_at, updated_at
		FROM orders WHERE id = $1
	`, id))
	if err != nil {
		return nil, err
	}

	if err := os.loadLines(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (os *PostgresOrderStore) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	rows, err := os.db.QueryContext(ctx, `
		SELECT id, COALESCE(user_id, ''), name, email, phone, address, city, postal_code,
			total, payment_method, status, created_at, updated_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		o, err := os.scanHeader(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if err := os.loadLines(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (os *PostgresOrderStore) scanHeader(row rowScanner) (*order.Order, error) {
	var (
		o     order.Order
		total string
	)
	err := row.Scan(&o.ID, &o.UserID, &o.Name, &o.Email, &o.Phone, &o.Address, &o.City,
		&o.PostalCode, &total, &o.Method, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("bad total for order %s: %w", o.ID, err)
	}
	return &o, nil
}

func (os *PostgresOrderStore) loadLines(ctx context.Context, o *order.Order) error {
	rows, err := os.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price
		FROM order_items WHERE order_id = $1 ORDER BY id
	`, o.ID)
	if err != nil {
		return fmt.Errorf("failed to load order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l    order.Line
			unit string
		)
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &unit); err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}
		if l.UnitPrice, err = decimal.NewFromString(unit); err != nil {
			return fmt.Errorf("bad unit price on order %s: %w", o.ID, err)
		}
		o.Lines = append(o.Lines, l)
	}
	return rows.Err()
}
