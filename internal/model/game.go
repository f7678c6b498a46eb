package model

// Game dimensions and limits
const (
	// BoardSize is the edge length of the square board
	BoardSize = 10
	// MaxPiranhas is the number of piranhas each player starts with
	MaxPiranhas = (BoardSize - 2) * 2
	// RoundLimit is the number of rounds after which the game ends
	RoundLimit = 30
	// TurnLimit is the number of single-player turns after which the game ends
	TurnLimit = RoundLimit * 2
)

// IsOnBoard returns true if the coordinates are within the board
func IsOnBoard(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}
