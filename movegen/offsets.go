package movegen

import "github.com/domino14/rookery/board"

var (
	pawnAttacksWhite = []board.Coords{board.C(-1, 1), board.C(1, 1)}
	pawnAttacksBlack = []board.Coords{board.C(-1, -1), board.C(1, -1)}
)

var knightOffsets = []board.Coords{
	board.C(1, 2), board.C(2, 1), board.C(-1, 2), board.C(-2, 1),
	board.C(1, -2), board.C(2, -1), board.C(-1, -2), board.C(-2, -1),
}

var kingOffsets = []board.Coords{
	board.C(1, 0), board.C(1, 1), board.C(0, 1), board.C(-1, 1),
	board.C(-1, 0), board.C(-1, -1), board.C(0, -1), board.C(1, -1),
}

var (
	diagonalSteps   = []board.Coords{board.C(1, 1), board.C(-1, 1), board.C(1, -1), board.C(-1, -1)}
	orthogonalSteps = []board.Coords{board.C(1, 0), board.C(-1, 0), board.C(0, 1), board.C(0, -1)}
)

// slidingOffsets lists every displacement 1..dim along the given unit
// steps, nearest first. Squares behind a blocker are removed later by the
// path check.
func slidingOffsets(steps []board.Coords, dim int) []board.Coords {
	offsets := make([]board.Coords, 0, len(steps)*dim)
	for dist := 1; dist <= dim; dist++ {
		for _, s := range steps {
			offsets = append(offsets, board.C(s.X*dist, s.Y*dist))
		}
	}
	return offsets
}

// offsetTables holds the sliding tables for one board size.
type offsetTables struct {
	bishop []board.Coords
	rook   []board.Coords
	queen  []board.Coords
}

func newOffsetTables(dim int) *offsetTables {
	t := &offsetTables{
		bishop: slidingOffsets(diagonalSteps, dim),
		rook:   slidingOffsets(orthogonalSteps, dim),
	}
	t.queen = append(append([]board.Coords{}, t.bishop...), t.rook...)
	return t
}

var defaultTables = newOffsetTables(board.DefaultDim)

func tablesFor(dim int) *offsetTables {
	if dim == board.DefaultDim {
		return defaultTables
	}
	return newOffsetTables(dim)
}
