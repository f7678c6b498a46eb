package board

import "github.com/mcoot/piranhas-client/internal/model"

// A piranha moves exactly as many fields as there are piranhas of either
// color on the whole line it moves along, itself included.

// DistanceHorizontal returns the move distance along the given row
func (b *Board) DistanceHorizontal(row int) (int, bool) {
	if row < 0 || row >= model.BoardSize {
		return 0, false
	}
	return b.countLine(0, row, 1, 0), true
}

// DistanceVertical returns the move distance along the given column
func (b *Board) DistanceVertical(column int) (int, bool) {
	if column < 0 || column >= model.BoardSize {
		return 0, false
	}
	return b.countLine(column, 0, 0, 1), true
}

// DistanceRising returns the move distance along the diagonal through
// (x, y) that runs from bottom left to top right
func (b *Board) DistanceRising(x, y int) (int, bool) {
	if !model.IsOnBoard(x, y) {
		return 0, false
	}
	return b.countLine(x, y, 1, 1), true
}

// DistanceFalling returns the move distance along the diagonal through
// (x, y) that runs from top left to bottom right
func (b *Board) DistanceFalling(x, y int) (int, bool) {
	if !model.IsOnBoard(x, y) {
		return 0, false
	}
	return b.countLine(x, y, 1, -1), true
}

// MoveDistance returns the distance a piranha at (x, y) covers in dir
func (b *Board) MoveDistance(x, y int, dir model.Direction) (int, bool) {
	switch dir {
	case model.DirectionLeft, model.DirectionRight:
		if !model.IsOnBoard(x, y) {
			return 0, false
		}
		return b.DistanceHorizontal(y)
	case model.DirectionUp, model.DirectionDown:
		if !model.IsOnBoard(x, y) {
			return 0, false
		}
		return b.DistanceVertical(x)
	case model.DirectionUpRight, model.DirectionDownLeft:
		return b.DistanceRising(x, y)
	case model.DirectionDownRight, model.DirectionUpLeft:
		return b.DistanceFalling(x, y)
	default:
		return 0, false
	}
}

// Distance returns the distance the move covers
func (b *Board) Distance(move model.Move) (int, bool) {
	return b.MoveDistance(move.X, move.Y, move.Direction)
}

// countLine counts piranhas on the full line through (x, y) with step (dx, dy)
func (b *Board) countLine(x, y, dx, dy int) int {
	for model.IsOnBoard(x-dx, y-dy) {
		x, y = x-dx, y-dy
	}
	count := 0
	for ; model.IsOnBoard(x, y); x, y = x+dx, y+dy {
		if s := b.cells[x][y]; s == model.FieldRed || s == model.FieldBlue {
			count++
		}
	}
	return count
}
