package payment

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoActiveMethod means checkout must be blocked: no provider is both
// enabled and fully credentialed.
var ErrNoActiveMethod = errors.New("no active payment method configured")

// Directory exposes which payment methods are currently usable, derived
// from the admin-configured provider settings on every call.
type Directory struct {
	settings SettingsRepository
}

func NewDirectory(settings SettingsRepository) *Directory {
	return &Directory{settings: settings}
}

// ActiveMethods lists usable methods in fixed priority order.
func (d *Directory) ActiveMethods(ctx context.Context) ([]Info, error) {
	s, err := d.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment settings: %w", err)
	}

	var methods []Info
	for _, m := range priority {
		if active(s, m) {
			methods = append(methods, Info{ID: m, Label: m.Label()})
		}
	}
	return methods, nil
}

// DefaultMethod is the first active method in priority order, or
// ErrNoActiveMethod when nothing is usable.
func (d *Directory) DefaultMethod(ctx context.Context) (Method, error) {
	methods, err := d.ActiveMethods(ctx)
	if err != nil {
		return "", err
	}
	if len(methods) == 0 {
		return "", ErrNoActiveMethod
	}
	return methods[0].ID, nil
}

// IsActive reports whether one specific method is currently usable.
func (d *Directory) IsActive(ctx context.Context, m Method) (bool, error) {
	s, err := d.settings.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load payment settings: %w", err)
	}
	return active(s, m), nil
}

// TransferDetails returns the bank-transfer configuration for confirmation
// screens and emails.
func (d *Directory) TransferDetails(ctx context.Context) (TransferConfig, error) {
	s, err := d.settings.Load(ctx)
	if err != nil {
		return TransferConfig{}, fmt.Errorf("failed to load payment settings: %w", err)
	}
	return s.Transfer, nil
}

func active(s *Settings, m Method) bool {
	switch m {
	case MethodCard:
		return s.Card.Active()
	case MethodWallet:
		return s.Wallet.Active()
	case MethodTransfer:
		return s.Transfer.Active()
	default:
		return false
	}
}
