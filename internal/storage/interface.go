package storage

import "context"

// Cache remembers board evaluations between searches. Keys come from
// board.Board.Key.
type Cache interface {
	// GetEvaluation returns model.ErrEvaluationNotFound for unknown keys
	GetEvaluation(ctx context.Context, key string) (int, error)
	SaveEvaluation(ctx context.Context, key string, score int) error
	Close() error
}
