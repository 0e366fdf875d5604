package alphabeta

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/rookery/board"
)

type RankedMove struct {
	Move  *board.Move
	Score float64
}

// MarshalYAML writes the move in its short text form.
func (r RankedMove) MarshalYAML() (any, error) {
	return struct {
		Move  string  `yaml:"move"`
		Score float64 `yaml:"score"`
	}{r.Move.ShortDescription(), r.Score}, nil
}

// Ranking is a set of root moves with their scores, in search order.
type Ranking []RankedMove

// Extreme returns the best score for side: the maximum for White, the
// minimum for Black. ok is false for an empty ranking.
func (r Ranking) Extreme(side board.Color) (score float64, ok bool) {
	if len(r) == 0 {
		return 0, false
	}
	best := lo.MaxBy(r, func(a, b RankedMove) bool {
		if side == board.White {
			return a.Score > b.Score
		}
		return a.Score < b.Score
	})
	return best.Score, true
}

// BestMoves returns every move achieving the extreme score for side.
func (r Ranking) BestMoves(side board.Color) []*board.Move {
	score, ok := r.Extreme(side)
	if !ok {
		return nil
	}
	best := lo.Filter(r, func(rm RankedMove, _ int) bool {
		return rm.Score == score
	})
	return lo.Map(best, func(rm RankedMove, _ int) *board.Move {
		return rm.Move
	})
}

// Scores maps each move's short description to its score.
func (r Ranking) Scores() map[string]float64 {
	return lo.SliceToMap(r, func(rm RankedMove) (string, float64) {
		return rm.Move.ShortDescription(), rm.Score
	})
}

// Score looks up the score of m.
func (r Ranking) Score(m *board.Move) (float64, bool) {
	rm, ok := lo.Find(r, func(rm RankedMove) bool {
		return rm.Move.Equals(m)
	})
	return rm.Score, ok
}

// Sorted returns a copy ordered best-first for side.
func (r Ranking) Sorted(side board.Color) Ranking {
	out := make(Ranking, len(r))
	copy(out, r)
	sort.SliceStable(out, func(i, j int) bool {
		if side == board.White {
			return out[i].Score > out[j].Score
		}
		return out[i].Score < out[j].Score
	})
	return out
}
