package favorites

import (
	"context"
	"sync"

	"github.com/campusdine/eatery-availability/internal/domain"
)

// memoryRepository keeps favorites in process memory. It backs test
// fixtures and lets the service run without redis.
type memoryRepository struct {
	mu  sync.RWMutex
	set map[int64]bool
}

func NewMemoryRepository() domain.FavoriteRepository {
	return &memoryRepository{set: make(map[int64]bool)}
}

func (m *memoryRepository) IsFavorite(_ context.Context, eateryID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set[eateryID], nil
}

func (m *memoryRepository) SetFavorite(_ context.Context, eateryID int64, favorite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if favorite {
		m.set[eateryID] = true
	} else {
		delete(m.set, eateryID)
	}
	return nil
}

func (m *memoryRepository) Snapshot(context.Context) (map[int64]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[int64]bool, len(m.set))
	for id := range m.set {
		out[id] = true
	}
	return out, nil
}
