package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/piranhas-client/internal/dependencies/clock"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/protocol"
	"github.com/mcoot/piranhas-client/internal/services/board"
)

// Player plays one game for a single color by asking its strategy
type Player struct {
	color        model.PlayerColor
	strategyName string
	strategy     Strategy
	moveTimeout  time.Duration
	clock        clock.Clock
	logger       *slog.Logger

	movesPlayed int
	result      *model.GameResult
}

// Ensure Player implements the game logic interface
var _ protocol.Logic = (*Player)(nil)

// Color returns the color this player plays
func (p *Player) Color() model.PlayerColor {
	return p.color
}

// MovesPlayed returns how many moves the player has chosen
func (p *Player) MovesPlayed() int {
	return p.movesPlayed
}

// Result returns the final result, if the game has one
func (p *Player) Result() (model.GameResult, bool) {
	if p.result == nil {
		return model.GameResult{}, false
	}
	return *p.result, true
}

// OnGameEnded logs the end of the game
func (p *Player) OnGameEnded() {
	p.logger.Info("game ended", slog.Int("moves_played", p.movesPlayed))
}

// OnGameResultReceived stores and logs the result
func (p *Player) OnGameResultReceived(result model.GameResult) {
	p.result = &result

	outcome := "draw"
	if result.Winner != nil {
		outcome = "lost"
		if result.Winner.Color == p.color {
			outcome = "won"
		}
	}
	p.logger.Info("game result", slog.String("outcome", outcome))
}

// OnGameStateUpdated logs the new position
func (p *Player) OnGameStateUpdated(snapshot *board.Board) {
	p.logger.Debug("state updated",
		slog.Int("turn", snapshot.Turn()),
		slog.Int("own_pieces", snapshot.PieceCount(p.color)),
		slog.Int("opponent_pieces", snapshot.PieceCount(p.color.Opponent())),
	)
}

// OnMoveRequested asks the strategy for a move and annotates it. It returns
// nil if the strategy fails or no legal move exists.
func (p *Player) OnMoveRequested(snapshot *board.Board) *model.Move {
	start := p.clock.Now()
	candidates := len(snapshot.PossibleMoves())

	ctx, cancel := context.WithTimeout(context.Background(), p.moveTimeout)
	defer cancel()

	move, err := p.strategy.ChooseMove(ctx, snapshot)
	if err != nil {
		p.logger.Error("strategy failed", slog.String("error", err.Error()))
		return nil
	}
	if move == nil {
		p.logger.Warn("no legal move", slog.Int("turn", snapshot.Turn()))
		return nil
	}

	move.AddHint("strategy=" + p.strategyName)
	move.AddHint(fmt.Sprintf("candidates=%d", candidates))
	p.movesPlayed++

	p.logger.Info("move chosen",
		slog.String("move", move.String()),
		slog.Int("turn", snapshot.Turn()),
		slog.Int("candidates", candidates),
		slog.Duration("elapsed", p.clock.Since(start)),
	)
	return move
}
