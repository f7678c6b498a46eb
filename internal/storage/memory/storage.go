package memory

import (
	"context"
	"sync"

	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/storage"
)

// Storage is an in-memory evaluation cache
type Storage struct {
	mu          sync.RWMutex
	evaluations map[string]int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		evaluations: make(map[string]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Cache = (*Storage)(nil)

func (s *Storage) GetEvaluation(ctx context.Context, key string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.evaluations[key]
	if !ok {
		return 0, model.ErrEvaluationNotFound
	}
	return score, nil
}

func (s *Storage) SaveEvaluation(ctx context.Context, key string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluations[key] = score
	return nil
}

// Len returns the number of cached evaluations
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.evaluations)
}

// Close is a no-op for the in-memory cache
func (s *Storage) Close() error {
	return nil
}
