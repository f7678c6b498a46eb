package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/mcoot/piranhas-client/internal/dependencies/random"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/services/board"
	"github.com/mcoot/piranhas-client/internal/storage"
)

// ConnectedBonus is added to the score of a position where the mover's
// piranhas form a single swarm
const ConnectedBonus = 1000

// SwarmStrategy looks one move ahead and prefers positions that grow the
// mover's biggest swarm, reduce its number of swarms and shrink the
// opponent's biggest swarm
type SwarmStrategy struct {
	cache  storage.Cache
	random random.Random
	logger *slog.Logger
}

// NewSwarmStrategy creates a new SwarmStrategy
func NewSwarmStrategy(cache storage.Cache, rnd random.Random, logger *slog.Logger) *SwarmStrategy {
	return &SwarmStrategy{
		cache:  cache,
		random: rnd,
		logger: logger.With(slog.String("component", "swarm-strategy")),
	}
}

// ChooseMove returns the best scoring legal move. Equal scores are decided
// by a random evaluation order. If ctx expires the best move found so far
// is returned.
func (s *SwarmStrategy) ChooseMove(ctx context.Context, b *board.Board) (*model.Move, error) {
	moves := b.PossibleMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	s.random.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	mover := b.CurrentPlayer()
	bestScore := math.MinInt
	var best *model.Move
	evaluated := 0

	for i := range moves {
		if ctx.Err() != nil {
			break
		}

		if err := b.PerformMove(moves[i]); err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", moves[i], err)
		}
		score := s.evaluate(ctx, b, mover)
		b.UndoLastMove()
		evaluated++

		if score > bestScore {
			bestScore = score
			best = &moves[i]
		}
	}

	if best == nil {
		return nil, ctx.Err()
	}
	if evaluated < len(moves) {
		s.logger.Warn("search cut short",
			slog.Int("evaluated", evaluated),
			slog.Int("candidates", len(moves)),
		)
	}

	move := best.Clone()
	move.AddHint(fmt.Sprintf("score=%d", bestScore))
	return &move, nil
}

// evaluate scores b from the point of view of mover, consulting the cache
func (s *SwarmStrategy) evaluate(ctx context.Context, b *board.Board, mover model.PlayerColor) int {
	key := b.Key()

	score, err := s.cache.GetEvaluation(ctx, key)
	if err == nil {
		return score
	}
	if !errors.Is(err, model.ErrEvaluationNotFound) {
		s.logger.Warn("failed to read evaluation", slog.String("error", err.Error()))
	}

	score = Evaluate(b, mover)
	if err := s.cache.SaveEvaluation(ctx, key, score); err != nil {
		s.logger.Warn("failed to save evaluation", slog.String("error", err.Error()))
	}
	return score
}

// Evaluate scores a position for color
func Evaluate(b *board.Board, color model.PlayerColor) int {
	swarms := b.Swarms(color)
	score := len(b.BiggestSwarm(color)) - len(swarms) - len(b.BiggestSwarm(color.Opponent()))
	if len(swarms) == 1 {
		score += ConnectedBonus
	}
	return score
}
