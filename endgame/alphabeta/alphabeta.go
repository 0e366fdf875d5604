// Package alphabeta searches chess positions with depth-limited minimax
// and alpha-beta pruning, and ranks root moves by iterative deepening.
package alphabeta

import (
	"errors"
	"sync/atomic"

	"github.com/domino14/rookery/board"
	"github.com/domino14/rookery/config"
	"github.com/domino14/rookery/equity"
	"github.com/domino14/rookery/movegen"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
**/

const (
	// Infinity is 10 million.
	Infinity = 10000000.0
)

var (
	ErrNoEvaluator  = errors.New("solver has no evaluator")
	ErrInvalidDepth = errors.New("depth must not be negative")
)

// Solver scores positions for White (maximizing) and Black (minimizing).
type Solver struct {
	evaluator     equity.Evaluator
	ttable        *TranspositionTable
	threads       int
	ttMemFraction float64

	transpositionTableOptim bool
	moveOrderingOptim       bool
	pruningDisabled         bool

	nodes atomic.Uint64
}

// branch is the mutable state owned by one search goroutine.
type branch struct {
	pool *board.Pool
	tt   *TranspositionTable
}

// Init sets up the solver. cfg may be nil, in which case defaults apply.
func (s *Solver) Init(ev equity.Evaluator, cfg *config.Config) error {
	if ev == nil {
		return ErrNoEvaluator
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s.evaluator = ev
	s.threads = max(1, cfg.GetInt(config.ConfigThreads))
	s.ttMemFraction = cfg.GetFloat64(config.ConfigTTableMemFraction)
	s.transpositionTableOptim = true
	s.moveOrderingOptim = true
	s.pruningDisabled = false
	s.ttable = NewTranspositionTable()
	s.ttable.Reset(s.ttMemFraction)
	return nil
}

func (s *Solver) SetThreads(threads int) {
	switch {
	case threads < 2:
		s.threads = 1
	case threads >= 2:
		s.threads = threads
	}
}

func (s *Solver) SetTranspositionTableOptim(o bool) { s.transpositionTableOptim = o }
func (s *Solver) SetMoveOrdering(o bool)            { s.moveOrderingOptim = o }

// SetPruningDisabled turns the search into plain minimax. It is meant for
// checking the pruned search against.
func (s *Solver) SetPruningDisabled(d bool) { s.pruningDisabled = d }

func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

// Nodes returns the number of nodes visited since Init.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Score returns the minimax value of pos with side to move, searched to
// the given depth in plies.
func (s *Solver) Score(pos *board.Position, side board.Color, depth int) (float64, error) {
	if s.evaluator == nil {
		return 0, ErrNoEvaluator
	}
	if depth < 0 {
		return 0, ErrInvalidDepth
	}
	return s.alphabeta(s.newBranch(), pos, side, depth, -Infinity, Infinity), nil
}

func (s *Solver) newBranch() *branch {
	br := &branch{pool: board.NewPool()}
	if s.transpositionTableOptim {
		br.tt = s.ttable
	}
	return br
}

func (s *Solver) alphabeta(br *branch, pos *board.Position, side board.Color,
	depth int, α, β float64) float64 {

	s.nodes.Add(1)
	if depth <= 0 {
		return s.evaluator.Evaluate(pos)
	}
	if pos.KingTaken() {
		// Scaling by remaining depth makes quicker wins worth more.
		return s.evaluator.Evaluate(pos) * float64(depth+1)
	}

	if br.tt != nil {
		if e, ok := br.tt.Lookup(pos.Hash(), depth); ok {
			switch {
			case e.Bound == BoundExact:
				return e.Score
			case e.Bound == BoundLower && e.Score >= β:
				return e.Score
			case e.Bound == BoundUpper && e.Score <= α:
				return e.Score
			}
		}
	}

	moves := movegen.GenerateMoves(pos, side)
	if len(moves) == 0 {
		if br.tt != nil {
			br.tt.Put(pos.Hash(), depth, 0)
		}
		return 0
	}
	if s.moveOrderingOptim {
		orderMoves(pos, moves)
	}

	αOrig, βOrig := α, β
	maximizing := side == board.White
	var best float64
	if maximizing {
		best = -Infinity
	} else {
		best = Infinity
	}

	for _, m := range moves {
		v := s.child(br, pos, m, side, depth, α, β)
		if maximizing {
			best = max(best, v)
			α = max(α, best)
		} else {
			best = min(best, v)
			β = min(β, best)
		}
		if α >= β && !s.pruningDisabled {
			break
		}
	}

	if br.tt != nil {
		bound := BoundExact
		if best <= αOrig {
			bound = BoundUpper
		} else if best >= βOrig {
			bound = BoundLower
		}
		br.tt.Store(TableEntry{Hash: pos.Hash(), Depth: depth, Score: best, Bound: bound})
	}
	return best
}

// child plays m on a pooled copy of pos and searches the result one ply
// shallower. The copy goes back to the pool on every exit path.
func (s *Solver) child(br *branch, pos *board.Position, m *board.Move,
	side board.Color, depth int, α, β float64) float64 {

	next := br.pool.Acquire(pos)
	defer br.pool.Release(next)
	next.ApplyMove(m)
	return s.alphabeta(br, next, side.Other(), depth-1, α, β)
}
