package cache

import (
	"context"
	"sync"
	"time"

	"github.com/umalmyha/customers-viewer/internal/model"
)

type memoryEntry struct {
	customers []model.Customer
	expiresAt time.Time
}

type memoryCustomerListCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCustomerListCache builds process-local cache, it lives as long as the process does
func NewMemoryCustomerListCache(ttl time.Duration) CustomerListCache {
	if ttl <= 0 {
		ttl = DefaultTimeToLive
	}
	return &memoryCustomerListCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *memoryCustomerListCache) Find(_ context.Context, f model.RoleFilter) ([]model.Customer, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[f.Key()]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, f.Key())
		m.mu.Unlock()
		return nil, false, nil
	}

	customers := make([]model.Customer, len(e.customers))
	copy(customers, e.customers)
	return customers, true, nil
}

func (m *memoryCustomerListCache) Cache(_ context.Context, f model.RoleFilter, customers []model.Customer) error {
	stored := make([]model.Customer, len(customers))
	copy(stored, customers)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[f.Key()] = memoryEntry{customers: stored, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *memoryCustomerListCache) Evict(_ context.Context, f model.RoleFilter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, f.Key())
	return nil
}
