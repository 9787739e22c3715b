package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/email"
	"github.com/example/storefront/internal/payment"
)

// Handler consumes OrderPlaced messages and sends confirmation emails.
type Handler struct {
	emailService *email.Service
	settings     payment.SettingsRepository
}

func NewHandler(emailSvc *email.Service, settings payment.SettingsRepository) *Handler {
	return &Handler{
		emailService: emailSvc,
		settings:     settings,
	}
}

// HandleEvent processes one message from Kafka. The message value is the
// OrderPlaced payload; the key is the order id.
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var e order.OrderPlaced
	if err := json.Unmarshal(value, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderPlaced event: %v", err)
		return err
	}
	if e.OrderID == "" || e.Email == "" {
		log.Printf("[Notifier] Skipping message %s: no order id or email", string(key))
		return nil
	}

	log.Printf("[Notifier] Processing OrderPlaced for order %s (%s)", e.OrderID, e.Method)

	items := make([]email.OrderItem, len(e.Lines))
	for i, l := range e.Lines {
		items[i] = email.OrderItem{
			ProductID: l.ProductID,
			Name:      l.ProductName,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
		}
	}

	// Bank-transfer orders carry the transfer instructions in the email.
	var transfer *email.TransferDetails
	if payment.Method(e.Method) == payment.MethodTransfer {
		if s, err := h.settings.Load(ctx); err == nil {
			transfer = &email.TransferDetails{
				AccountHolder: s.Transfer.AccountHolder,
				IBAN:          s.Transfer.IBAN,
				Instructions:  s.Transfer.Instructions,
			}
		}
	}

	if err := h.emailService.SendOrderConfirmation(e.Email, e.OrderID, e.Total, items, transfer); err != nil {
		log.Printf("[Notifier] Failed to send email to %s: %v", e.Email, err)
		return err
	}

	log.Printf("[Notifier] Order confirmation email sent to %s for order %s", e.Email, e.OrderID)
	return nil
}
