package mocks

import (
	"context"
	"sync"

	"github.com/example/storefront/internal/domain/order"
)

// MockOrderStore is an in-memory order.Repository that records Create
// calls for assertions.
type MockOrderStore struct {
	mu     sync.RWMutex
	orders map[string]*order.Order

	CreateCalls []*order.Order
	CreateErr   error
}

func NewMockOrderStore() *MockOrderStore {
	return &MockOrderStore{
		orders:      make(map[string]*order.Order),
		CreateCalls: make([]*order.Order, 0),
	}
}

func (m *MockOrderStore) Create(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, o)
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if len(o.Lines) == 0 {
		return order.ErrEmptyOrder
	}
	m.orders[o.ID] = o
	return nil
}

func (m *MockOrderStore) GetByID(ctx context.Context, id string) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (m *MockOrderStore) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*order.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
