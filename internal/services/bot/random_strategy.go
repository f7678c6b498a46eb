package bot

import (
	"context"

	"github.com/mcoot/piranhas-client/internal/dependencies/random"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/services/board"
)

// RandomStrategy picks uniformly among the legal moves
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove returns a random legal move
func (s *RandomStrategy) ChooseMove(ctx context.Context, b *board.Board) (*model.Move, error) {
	moves := b.PossibleMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	move := moves[s.random.Intn(len(moves))]
	return &move, nil
}
