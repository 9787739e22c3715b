package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// SessionLine is one order line handed to the card gateway when opening a
// hosted payment session.
type SessionLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CardGateway opens a hosted card-payment session for an order and returns
// the URL the shopper is redirected to. The wire protocol behind it is the
// collaborator's business; "no response" and "explicit error" are the same
// thing to callers.
type CardGateway interface {
	CreateSession(ctx context.Context, orderID string, lines []SessionLine) (redirectURL string, err error)
}

// WalletGateway creates a wallet order for an amount and returns the
// approval URL.
type WalletGateway interface {
	CreateOrder(ctx context.Context, orderID string, amount decimal.Decimal) (approveURL string, err error)
}
