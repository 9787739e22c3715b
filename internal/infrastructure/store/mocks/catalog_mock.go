package mocks

import (
	"context"
	"sync"

	"github.com/example/storefront/internal/domain/catalog"
)

// MockCatalog is an in-memory catalog.Repository. Variants keep insertion
// order, like the SQL store.
type MockCatalog struct {
	mu       sync.RWMutex
	products map[string]*catalog.Product
	order    []string
}

func NewMockCatalog(products ...*catalog.Product) *MockCatalog {
	m := &MockCatalog{products: make(map[string]*catalog.Product)}
	for _, p := range products {
		m.products[p.ID] = p
		m.order = append(m.order, p.ID)
	}
	return m
}

func (m *MockCatalog) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (m *MockCatalog) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if m.products[id].Slug == slug {
			return m.products[id], nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

func (m *MockCatalog) List(ctx context.Context) ([]*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*catalog.Product
	for _, id := range m.order {
		if !m.products[id].IsVariant() {
			out = append(out, m.products[id])
		}
	}
	return out, nil
}

func (m *MockCatalog) Variants(ctx context.Context, parentID string) ([]*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*catalog.Product
	for _, id := range m.order {
		if m.products[id].ParentID == parentID {
			out = append(out, m.products[id])
		}
	}
	return out, nil
}

func (m *MockCatalog) Upsert(ctx context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		m.order = append(m.order, p.ID)
	}
	m.products[p.ID] = p
	return nil
}
