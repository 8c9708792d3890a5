package product

import (
	"context"
	"sync"

	"tienda/internal/domain"
)

// Memory keeps the catalog in process. A nil product list means nothing was ever
// saved, which Load reports as domain.ErrNotFound like a missing file.
type Memory struct {
	mu       sync.Mutex
	products []domain.Product
	saves    int
	SaveErr  error
}

func NewMemory(seed ...domain.Product) *Memory {
	m := &Memory{}
	if seed != nil {
		m.products = append([]domain.Product{}, seed...)
	}
	return m
}

func (m *Memory) Load(_ context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.products == nil {
		return nil, domain.ErrNotFound
	}
	return append([]domain.Product{}, m.products...), nil
}

func (m *Memory) Save(_ context.Context, products []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.products = append([]domain.Product{}, products...)
	m.saves++
	return nil
}

// Saves reports how many successful Save calls the store received.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
