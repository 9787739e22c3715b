package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/payment"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidDetails    = errors.New("customer details are incomplete")
	ErrMethodUnavailable = errors.New("payment method is not available")

	// ErrPaymentSession means the order row already exists in PENDING but
	// the external payment session could not be opened. Callers must show a
	// retryable failure, not pretend no order happened.
	ErrPaymentSession = errors.New("payment session could not be created")
)

// CustomerDetails are the contact and shipping fields required to place an
// order.
type CustomerDetails struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// Result is the outcome of a submission. Exactly one of RedirectURL or
// Placed is meaningful: gateway paths redirect and leave the cart intact,
// the bank-transfer path places immediately.
type Result struct {
	Order           *order.Order            `json:"order"`
	RedirectURL     string                  `json:"redirect_url,omitempty"`
	Placed          bool                    `json:"placed"`
	TransferDetails *payment.TransferConfig `json:"transfer_details,omitempty"`
}

// EventPublisher is the order-event feed. Satisfied by the Kafka producer.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Orchestrator turns a cart into a durable order and dispatches to the
// chosen payment path.
type Orchestrator struct {
	orders    order.Repository
	carts     *cart.Service
	directory *payment.Directory
	card      payment.CardGateway
	wallet    payment.WalletGateway
	events    EventPublisher
	validate  *validator.Validate
}

func NewOrchestrator(
	orders order.Repository,
	carts *cart.Service,
	directory *payment.Directory,
	card payment.CardGateway,
	wallet payment.WalletGateway,
	events EventPublisher,
) *Orchestrator {
	return &Orchestrator{
		orders:    orders,
		carts:     carts,
		directory: directory,
		card:      card,
		wallet:    wallet,
		events:    events,
		validate:  validator.New(),
	}
}

// Submit validates, persists the order header and all of its lines as one
// atomic write, then branches on the chosen method. All validation happens
// before the first external call.
func (o *Orchestrator) Submit(ctx context.Context, userID string, details CustomerDetails, method payment.Method) (*Result, error) {
	c, err := o.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if err := o.validate.Struct(details); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDetails, err)
	}

	active, err := o.directory.IsActive(ctx, method)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, fmt.Errorf("%w: %s", ErrMethodUnavailable, method)
	}

	total := c.TotalPrice()
	if !total.IsPositive() {
		return nil, order.ErrZeroTotal
	}

	now := time.Now()
	ord := &order.Order{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       details.Name,
		Email:      details.Email,
		Phone:      details.Phone,
		Address:    details.Address,
		City:       details.City,
		PostalCode: details.PostalCode,
		Total:      total,
		Method:     string(method),
		Status:     order.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, l := range c.Lines {
		ord.Lines = append(ord.Lines, order.Line{
			ID:          uuid.New().String(),
			OrderID:     ord.ID,
			ProductID:   l.ProductID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}

	if err := o.orders.Create(ctx, ord); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	o.publishPlaced(ctx, ord)

	switch method {
	case payment.MethodCard:
		lines := make([]payment.SessionLine, len(ord.Lines))
		for i, l := range ord.Lines {
			lines[i] = payment.SessionLine{Name: l.ProductName, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
		}
		url, err := o.card.CreateSession(ctx, ord.ID, lines)
		if err != nil {
			return &Result{Order: ord}, fmt.Errorf("%w: %v", ErrPaymentSession, err)
		}
		return &Result{Order: ord, RedirectURL: url}, nil

	case payment.MethodWallet:
		url, err := o.wallet.CreateOrder(ctx, ord.ID, ord.Total)
		if err != nil {
			return &Result{Order: ord}, fmt.Errorf("%w: %v", ErrPaymentSession, err)
		}
		return &Result{Order: ord, RedirectURL: url}, nil

	default:
		// Bank transfer: no external call, the order is placed as-is and
		// the cart is cleared right away.
		if err := o.carts.Clear(ctx, userID); err != nil {
			log.Printf("[Checkout] Failed to clear cart for user %s: %v", userID, err)
		}
		result := &Result{Order: ord, Placed: true}
		if transfer, err := o.directory.TransferDetails(ctx); err == nil {
			result.TransferDetails = &transfer
		}
		return result, nil
	}
}

// ConfirmReturn handles the shopper coming back from a gateway redirect.
// Only a success marker clears the cart; a cancelled payment keeps it so
// the shopper can retry.
func (o *Orchestrator) ConfirmReturn(ctx context.Context, userID, orderID string, success bool) (*order.Order, error) {
	ord, err := o.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if success {
		if err := o.carts.Clear(ctx, userID); err != nil {
			log.Printf("[Checkout] Failed to clear cart for user %s: %v", userID, err)
		}
	}
	return ord, nil
}

// publishPlaced emits the OrderPlaced message for the notifier. Best
// effort: the order is already durable, a dead broker must not fail it.
func (o *Orchestrator) publishPlaced(ctx context.Context, ord *order.Order) {
	if o.events == nil {
		return
	}
	lines := make([]order.PlacedLine, len(ord.Lines))
	for i, l := range ord.Lines {
		lines[i] = order.PlacedLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
	}
	event := order.OrderPlaced{
		OrderID:  ord.ID,
		UserID:   ord.UserID,
		Name:     ord.Name,
		Email:    ord.Email,
		Method:   ord.Method,
		Total:    ord.Total,
		Lines:    lines,
		PlacedAt: ord.CreatedAt,
	}
	if err := o.events.Publish(ctx, ord.ID, event); err != nil {
		log.Printf("[Checkout] Failed to publish OrderPlaced for order %s: %v", ord.ID, err)
	}
}
