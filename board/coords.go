package board

import (
	"errors"
	"fmt"
)

var ErrInvalidCoords = errors.New("invalid coordinates")

// Coords is an (x, y) square on the grid. x is the file (a, b, c...) and y
// is the rank, both zero-based.
type Coords struct {
	X int
	Y int
}

func C(x, y int) Coords {
	return Coords{X: x, Y: y}
}

// CoordsFromString parses algebraic notation such as "e4".
func CoordsFromString(s string) (Coords, error) {
	if len(s) < 2 {
		return Coords{}, fmt.Errorf("%w: %q", ErrInvalidCoords, s)
	}
	file := s[0]
	if file < 'a' || file > 'z' {
		return Coords{}, fmt.Errorf("%w: bad file in %q", ErrInvalidCoords, s)
	}
	rank := 0
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return Coords{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidCoords, s)
		}
		rank = rank*10 + int(r-'0')
	}
	if rank < 1 {
		return Coords{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidCoords, s)
	}
	return Coords{X: int(file - 'a'), Y: rank - 1}, nil
}

// MustCoords is CoordsFromString for literals known to be valid.
func MustCoords(s string) Coords {
	c, err := CoordsFromString(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coords) String() string {
	return fmt.Sprintf("%c%d", 'a'+c.X, c.Y+1)
}

func (c Coords) Add(o Coords) Coords {
	return Coords{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coords) Sub(o Coords) Coords {
	return Coords{X: c.X - o.X, Y: c.Y - o.Y}
}

// Sign returns the unit step along each axis, for walking sliding paths.
func (c Coords) Sign() Coords {
	return Coords{X: sign(c.X), Y: sign(c.Y)}
}

func (c Coords) InBounds(dim int) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < dim && c.Y < dim
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
