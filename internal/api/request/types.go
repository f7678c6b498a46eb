package request

import (
	"net/url"
	"strconv"
)

// CheckMoveRequest is the request body for checking a move against the
// latest board
type CheckMoveRequest struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
}

// Origin restricts a move listing to a single piece
type Origin struct {
	X, Y int
}

// ParseOrigin reads the optional x and y query parameters. Both must be
// given together; ok is false when neither is.
func ParseOrigin(q url.Values) (origin Origin, ok bool, err error) {
	xs, ys := q.Get("x"), q.Get("y")
	if xs == "" && ys == "" {
		return Origin{}, false, nil
	}
	if xs == "" || ys == "" {
		return Origin{}, false, strconv.ErrSyntax
	}
	if origin.X, err = strconv.Atoi(xs); err != nil {
		return Origin{}, false, err
	}
	if origin.Y, err = strconv.Atoi(ys); err != nil {
		return Origin{}, false, err
	}
	return origin, true, nil
}
