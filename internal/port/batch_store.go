package port

import "carprice/internal/domain"

// BatchStore holds per-session batch state in process memory.
type BatchStore interface {
	Get(sessionID string) (*domain.BatchState, bool)
	Put(sessionID string, state *domain.BatchState)
	Delete(sessionID string)
}
