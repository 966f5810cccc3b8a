// Package memory holds process-local stores. Nothing here survives a restart.
package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"carprice/internal/domain"
	"carprice/internal/port"
)

const defaultStateTTL = 2 * time.Hour

type batchStore struct {
	cache *cache.Cache
}

// NewBatchStore creates a port.BatchStore backed by go-cache. Session state
// that is not touched for ttl is evicted.
func NewBatchStore(ttl time.Duration) port.BatchStore {
	if ttl <= 0 {
		ttl = defaultStateTTL
	}
	return &batchStore{cache: cache.New(ttl, ttl/2)}
}

func (s *batchStore) Get(sessionID string) (*domain.BatchState, bool) {
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return nil, false
	}
	state, ok := v.(*domain.BatchState)
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}

func (s *batchStore) Put(sessionID string, state *domain.BatchState) {
	s.cache.SetDefault(sessionID, state.Clone())
}

func (s *batchStore) Delete(sessionID string) {
	s.cache.Delete(sessionID)
}
