package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/example/storefront/internal/domain/cart"
)

// MockCartStore is an in-memory cart.Repository. Carts round-trip through
// JSON so tests exercise the same serialization as the durable store, and
// a corrupt slot (seeded via SetRaw) degrades to an empty cart.
type MockCartStore struct {
	mu    sync.RWMutex
	slots map[string][]byte

	SaveCalls int
	SaveErr   error
}

func NewMockCartStore() *MockCartStore {
	return &MockCartStore{slots: make(map[string][]byte)}
}

// SetRaw seeds a slot with arbitrary bytes, e.g. corrupt state.
func (m *MockCartStore) SetRaw(cartID string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[cartID] = raw
}

func (m *MockCartStore) Load(ctx context.Context, cartID string) (*cart.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := &cart.Cart{ID: cartID}
	raw, ok := m.slots[cartID]
	if !ok {
		return c, nil
	}
	if err := json.Unmarshal(raw, c); err != nil {
		// Unparseable state degrades to an empty cart.
		return &cart.Cart{ID: cartID}, nil
	}
	return c, nil
}

func (m *MockCartStore) Save(ctx context.Context, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.slots[c.ID] = raw
	return nil
}

func (m *MockCartStore) Delete(ctx context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, cartID)
	return nil
}
