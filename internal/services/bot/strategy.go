package bot

import (
	"context"

	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/services/board"
)

// Strategy defines how a bot chooses its move
type Strategy interface {
	// ChooseMove picks a legal move for the current player of b. It returns
	// nil without an error when no legal move exists. b may be modified but
	// must be restored before returning.
	ChooseMove(ctx context.Context, b *board.Board) (*model.Move, error)
}
