package mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/payment"
)

// MockSettingsStore is an in-memory payment.SettingsRepository.
type MockSettingsStore struct {
	Settings payment.Settings
	LoadErr  error
}

func (m *MockSettingsStore) Load(ctx context.Context) (*payment.Settings, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsStore) Save(ctx context.Context, s *payment.Settings) error {
	m.Settings = *s
	return nil
}

// MockCardGateway records session requests and returns a canned redirect.
type MockCardGateway struct {
	RedirectURL string
	Err         error

	Calls []CardSessionCall
}

type CardSessionCall struct {
	OrderID string
	Lines   []payment.SessionLine
}

func (m *MockCardGateway) CreateSession(ctx context.Context, orderID string, lines []payment.SessionLine) (string, error) {
	m.Calls = append(m.Calls, CardSessionCall{OrderID: orderID, Lines: lines})
	if m.Err != nil {
		return "", m.Err
	}
	return m.RedirectURL, nil
}

// MockWalletGateway records wallet orders and returns a canned approve URL.
type MockWalletGateway struct {
	ApproveURL string
	Err        error

	Calls []WalletOrderCall
}

type WalletOrderCall struct {
	OrderID string
	Amount  decimal.Decimal
}

func (m *MockWalletGateway) CreateOrder(ctx context.Context, orderID string, amount decimal.Decimal) (string, error) {
	m.Calls = append(m.Calls, WalletOrderCall{OrderID: orderID, Amount: amount})
	if m.Err != nil {
		return "", m.Err
	}
	return m.ApproveURL, nil
}

// MockPublisher records published events.
type MockPublisher struct {
	Published []PublishedEvent
	Err       error
}

type PublishedEvent struct {
	Key   string
	Event any
}

func (m *MockPublisher) Publish(ctx context.Context, key string, event any) error {
	m.Published = append(m.Published, PublishedEvent{Key: key, Event: event})
	return m.Err
}
