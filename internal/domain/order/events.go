package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderPlaced = "OrderPlaced"

// PlacedLine is the line snapshot carried inside an OrderPlaced message.
type PlacedLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// OrderPlaced is published after an order has durably committed. The
// notifier consumes it to send the confirmation email, so it carries the
// shopper contact and chosen method alongside the order snapshot.
type OrderPlaced struct {
	OrderID  string          `json:"order_id"`
	UserID   string          `json:"user_id,omitempty"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Method   string          `json:"payment_method"`
	Total    decimal.Decimal `json:"total"`
	Lines    []PlacedLine    `json:"lines"`
	PlacedAt time.Time       `json:"placed_at"`
}
