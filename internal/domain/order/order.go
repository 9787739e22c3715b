package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

// Orders start PENDING. Payment-provider webhooks that would advance the
// status live outside this service.
const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
	StatusShipped Status = "SHIPPED"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyOrder    = errors.New("order must have at least one line")
	ErrZeroTotal     = errors.New("order total is required")
)

// Line is a frozen snapshot of one cart line at submission time: product
// name and unit price are decoupled from any later catalog edit.
type Line struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Order is the persisted order header plus its lines. The stored total must
// equal the cart's total at submission time to the cent, and the lines must
// mirror the cart exactly; a header without all of its lines is a
// data-integrity failure the store must prevent.
type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id,omitempty"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	City       string          `json:"city"`
	PostalCode string          `json:"postal_code"`
	Total      decimal.Decimal `json:"total"`
	Method     string          `json:"payment_method"`
	Status     Status          `json:"status"`
	Lines      []Line          `json:"lines"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// LinesTotal sums unit_price × quantity across the lines. For a correctly
// persisted order it equals Total.
func (o *Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Repository persists orders. Create must write the header and all lines as
// one atomic unit: a failed line write rolls the header back rather than
// leaving an orphaned PENDING order.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
}
