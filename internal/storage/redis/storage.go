package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/storage"
)

// Storage is a Redis-backed evaluation cache, shared between client runs
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Cache = (*Storage)(nil)

func (s *Storage) GetEvaluation(ctx context.Context, key string) (int, error) {
	score, err := s.client.Get(ctx, evaluationKey(key)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, model.ErrEvaluationNotFound
		}
		return 0, err
	}
	return score, nil
}

func (s *Storage) SaveEvaluation(ctx context.Context, key string, score int) error {
	return s.client.Set(ctx, evaluationKey(key), score, s.cfg.EvaluationTTL).Err()
}
