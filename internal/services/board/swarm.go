package board

import "github.com/mcoot/piranhas-client/internal/model"

// Swarms partitions the piranhas of the given color into groups connected
// horizontally, vertically or diagonally. Groups are discovered in x-major
// order of their first field.
func (b *Board) Swarms(color model.PlayerColor) [][]model.Field {
	want := color.FieldState()
	var visited [model.BoardSize][model.BoardSize]bool
	var swarms [][]model.Field

	for x := 0; x < model.BoardSize; x++ {
		for y := 0; y < model.BoardSize; y++ {
			if visited[x][y] || b.cells[x][y] != want {
				continue
			}

			var swarm []model.Field
			stack := []model.Field{{X: x, Y: y, State: want}}
			visited[x][y] = true

			for len(stack) > 0 {
				f := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				swarm = append(swarm, f)

				for _, dir := range model.Directions {
					dx, dy := dir.Vector()
					nx, ny := f.X+dx, f.Y+dy
					if !model.IsOnBoard(nx, ny) || visited[nx][ny] || b.cells[nx][ny] != want {
						continue
					}
					visited[nx][ny] = true
					stack = append(stack, model.Field{X: nx, Y: ny, State: want})
				}
			}

			swarms = append(swarms, swarm)
		}
	}

	return swarms
}

// BiggestSwarm returns the largest swarm of the given color, or nil if the
// color has no piranhas left
func (b *Board) BiggestSwarm(color model.PlayerColor) []model.Field {
	var biggest []model.Field
	for _, swarm := range b.Swarms(color) {
		if len(swarm) > len(biggest) {
			biggest = swarm
		}
	}
	return biggest
}

// IsSwarmConnected returns true if all piranhas of the color form at most
// one swarm
func (b *Board) IsSwarmConnected(color model.PlayerColor) bool {
	return len(b.Swarms(color)) <= 1
}
