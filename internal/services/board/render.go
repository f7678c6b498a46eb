package board

import (
	"strings"

	"github.com/mcoot/piranhas-client/internal/model"
)

// Glyph returns the single character used to draw a field state
func Glyph(s model.FieldState) byte {
	switch s {
	case model.FieldRed:
		return 'R'
	case model.FieldBlue:
		return 'B'
	case model.FieldObstructed:
		return 'X'
	default:
		return '-'
	}
}

// Key returns a compact string identifying the grid and the player to move
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(model.BoardSize*model.BoardSize + 1)
	for x := 0; x < model.BoardSize; x++ {
		for y := 0; y < model.BoardSize; y++ {
			sb.WriteByte(Glyph(b.cells[x][y]))
		}
	}
	sb.WriteByte(Glyph(b.currentPlayer.FieldState()))
	return sb.String()
}

// String draws the board with the top row (y = 9) first
func (b *Board) String() string {
	border := strings.Repeat("─", 2*model.BoardSize)

	var sb strings.Builder
	sb.WriteString("┌" + border + "─┐\n")
	for y := model.BoardSize - 1; y >= 0; y-- {
		sb.WriteString("│ ")
		for x := 0; x < model.BoardSize; x++ {
			sb.WriteByte(Glyph(b.cells[x][y]))
			sb.WriteByte(' ')
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + border + "─┘")
	return sb.String()
}
