package alphabeta

import (
	"sort"

	"github.com/domino14/rookery/board"
)

// Priority is a static move-ordering hint. A pawn capturing anything
// comes first, then any move onto a queen, then everything else.
func Priority(pos *board.Position, m *board.Move) int {
	target := pos.At(m.To())
	if target.IsEmpty() {
		return 0
	}
	if pos.At(m.From()).IsPawn() {
		return 2
	}
	if target.IsQueen() {
		return 1
	}
	return 0
}

type moveSorter struct {
	priorities []int
	moves      []*board.Move
}

func (p moveSorter) Len() int { return len(p.moves) }
func (p moveSorter) Swap(i, j int) {
	p.priorities[i], p.priorities[j] = p.priorities[j], p.priorities[i]
	p.moves[i], p.moves[j] = p.moves[j], p.moves[i]
}
func (p moveSorter) Less(i, j int) bool {
	return p.priorities[i] > p.priorities[j]
}

// orderMoves sorts moves in place, highest priority first. Moves of equal
// priority keep their generation order.
func orderMoves(pos *board.Position, moves []*board.Move) {
	priorities := make([]int, len(moves))
	for i, m := range moves {
		priorities[i] = Priority(pos, m)
	}
	sort.Stable(moveSorter{priorities: priorities, moves: moves})
}
