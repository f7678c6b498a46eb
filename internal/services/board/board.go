package board

import (
	"fmt"

	"github.com/mcoot/piranhas-client/internal/model"
)

// undoEntry records what a performed move overwrote
type undoEntry struct {
	previousLastMove *model.Move
	destination      model.Field // Destination as it was before the move
}

// Board is the authoritative game state: grid, turn counter, current player
// and the log needed to take moves back
type Board struct {
	startPlayer   model.PlayerColor
	currentPlayer model.PlayerColor
	turn          int
	lastMove      *model.Move

	// cells[x][y], y grows upwards
	cells [model.BoardSize][model.BoardSize]model.FieldState

	history []undoEntry
}

// New creates an empty board where startPlayer moves first
func New(startPlayer model.PlayerColor) *Board {
	return &Board{
		startPlayer:   startPlayer,
		currentPlayer: startPlayer,
	}
}

// Clone returns an independent deep copy of the board
func (b *Board) Clone() *Board {
	c := *b
	if b.lastMove != nil {
		m := b.lastMove.Clone()
		c.lastMove = &m
	}
	if b.history != nil {
		c.history = make([]undoEntry, len(b.history))
		copy(c.history, b.history)
	}
	return &c
}

// StartPlayer returns the color that moved first
func (b *Board) StartPlayer() model.PlayerColor {
	return b.startPlayer
}

// CurrentPlayer returns the color whose turn it is
func (b *Board) CurrentPlayer() model.PlayerColor {
	return b.currentPlayer
}

// Turn returns the number of moves performed so far
func (b *Board) Turn() int {
	return b.turn
}

// Round returns the current round, starting at 1
func (b *Board) Round() int {
	return b.turn/2 + 1
}

// LastMove returns the most recently performed move, if any
func (b *Board) LastMove() (model.Move, bool) {
	if b.lastMove == nil {
		return model.Move{}, false
	}
	return b.lastMove.Clone(), true
}

// LastDestination returns the field the last move landed on
func (b *Board) LastDestination() (x, y int, ok bool) {
	if b.lastMove == nil || len(b.history) == 0 {
		return 0, 0, false
	}
	dest := b.history[len(b.history)-1].destination
	return dest.X, dest.Y, true
}

// Field returns the field at (x, y); ok is false off the board
func (b *Board) Field(x, y int) (model.Field, bool) {
	if !model.IsOnBoard(x, y) {
		return model.Field{}, false
	}
	return model.Field{X: x, Y: y, State: b.cells[x][y]}, true
}

// FieldState returns the state of the field at (x, y); ok is false off the board
func (b *Board) FieldState(x, y int) (model.FieldState, bool) {
	if !model.IsOnBoard(x, y) {
		return model.FieldEmpty, false
	}
	return b.cells[x][y], true
}

// SetFieldState overwrites the state of the field at (x, y)
func (b *Board) SetFieldState(x, y int, state model.FieldState) error {
	if !model.IsOnBoard(x, y) {
		return fmt.Errorf("%w: (%d,%d)", model.ErrOutOfBounds, x, y)
	}
	b.cells[x][y] = state
	return nil
}

// Fields returns all fields holding a piranha of the given color
func (b *Board) Fields(color model.PlayerColor) []model.Field {
	want := color.FieldState()
	var fields []model.Field
	for x := 0; x < model.BoardSize; x++ {
		for y := 0; y < model.BoardSize; y++ {
			if b.cells[x][y] == want {
				fields = append(fields, model.Field{X: x, Y: y, State: want})
			}
		}
	}
	return fields
}

// PieceCount returns the number of piranhas of the given color
func (b *Board) PieceCount(color model.PlayerColor) int {
	want := color.FieldState()
	count := 0
	for x := 0; x < model.BoardSize; x++ {
		for y := 0; y < model.BoardSize; y++ {
			if b.cells[x][y] == want {
				count++
			}
		}
	}
	return count
}

// Destination returns the field a move of the given distance ends on.
// ok is false for non-positive distances and destinations off the board.
func (b *Board) Destination(move model.Move, distance int) (model.Field, bool) {
	if distance <= 0 || !move.Direction.IsValid() {
		return model.Field{}, false
	}
	dx, dy := move.Direction.Vector()
	return b.Field(move.X+dx*distance, move.Y+dy*distance)
}

// Path returns the fields strictly between the origin and the destination.
// It is empty whenever Destination would not be ok.
func (b *Board) Path(move model.Move, distance int) []model.Field {
	if _, ok := b.Destination(move, distance); !ok {
		return nil
	}
	dx, dy := move.Direction.Vector()
	path := make([]model.Field, 0, distance-1)
	for i := 1; i < distance; i++ {
		f, _ := b.Field(move.X+dx*i, move.Y+dy*i)
		path = append(path, f)
	}
	return path
}

// CheckMove reports why the move is illegal for the current player, or nil
func (b *Board) CheckMove(move model.Move) error {
	if b.turn >= model.TurnLimit {
		return model.ErrTurnLimitReached
	}
	return b.checkMotion(move)
}

// checkMotion validates everything except the turn limit
func (b *Board) checkMotion(move model.Move) error {
	origin, ok := b.Field(move.X, move.Y)
	if !ok {
		return fmt.Errorf("%w: (%d,%d)", model.ErrOutOfBounds, move.X, move.Y)
	}
	if !origin.HasPiranhaOf(b.currentPlayer) {
		return fmt.Errorf("%w: %s at (%d,%d)", model.ErrNotOwnPiece, origin.State, move.X, move.Y)
	}

	distance, ok := b.Distance(move)
	if !ok {
		return model.ErrNoDistance
	}
	dest, ok := b.Destination(move, distance)
	if !ok {
		return fmt.Errorf("%w: %s leaves the board", model.ErrDestinationBlocked, move)
	}
	if !dest.IsCoverable(b.currentPlayer) {
		return fmt.Errorf("%w: %s at (%d,%d)", model.ErrDestinationBlocked, dest.State, dest.X, dest.Y)
	}
	for _, f := range b.Path(move, distance) {
		if !f.IsSkippable(b.currentPlayer) {
			return fmt.Errorf("%w: (%d,%d)", model.ErrPathBlocked, f.X, f.Y)
		}
	}
	return nil
}

// PossibleMoves returns every legal move of the current player in no
// particular order. Once the turn limit is reached there are none.
func (b *Board) PossibleMoves() []model.Move {
	if b.turn >= model.TurnLimit {
		return nil
	}
	var moves []model.Move
	for _, f := range b.Fields(b.currentPlayer) {
		for _, dir := range model.Directions {
			move := model.NewMove(f.X, f.Y, dir)
			if b.checkMotion(move) == nil {
				moves = append(moves, move)
			}
		}
	}
	return moves
}

// PerformMove applies the move for the current player. On error the board
// is left unchanged.
func (b *Board) PerformMove(move model.Move) error {
	if err := b.CheckMove(move); err != nil {
		return err
	}

	distance, _ := b.Distance(move)
	dest, _ := b.Destination(move, distance)

	b.history = append(b.history, undoEntry{
		previousLastMove: b.lastMove,
		destination:      dest,
	})

	b.cells[move.X][move.Y] = model.FieldEmpty
	b.cells[dest.X][dest.Y] = b.currentPlayer.FieldState()
	b.turn++
	b.currentPlayer = b.currentPlayer.Opponent()
	performed := move.Clone()
	b.lastMove = &performed

	return nil
}

// UndoLastMove takes back the most recent move. It returns false if there
// was nothing to undo.
func (b *Board) UndoLastMove() bool {
	if len(b.history) == 0 || b.lastMove == nil {
		return false
	}

	entry := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	mover := b.currentPlayer.Opponent()
	move := b.lastMove

	b.cells[entry.destination.X][entry.destination.Y] = entry.destination.State
	b.cells[move.X][move.Y] = mover.FieldState()
	b.currentPlayer = mover
	b.turn--
	b.lastMove = entry.previousLastMove

	return true
}
