package alphabeta

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/rookery/board"
	"github.com/domino14/rookery/movegen"
)

// RankMoves scores every move side can make from pos. The search runs once
// per entry in depths; after each pass only the moves that reached the
// best score are searched again at the next depth. It stops early once a
// single candidate is left and returns the ranking of the last pass run.
// Once a king has been captured there is nothing left to rank.
//
// With parallel set, root moves are searched on up to SetThreads
// goroutines, each with its own position pool and its own copy of the
// transposition table.
func (s *Solver) RankMoves(pos *board.Position, side board.Color, depths []int,
	parallel bool) (Ranking, error) {

	if s.evaluator == nil {
		return nil, ErrNoEvaluator
	}
	for _, d := range depths {
		if d < 0 {
			return nil, ErrInvalidDepth
		}
	}

	if pos.KingTaken() {
		log.Debug().Msg("king-already-captured")
		return Ranking{}, nil
	}

	candidates := movegen.GenerateMoves(pos, side)
	if s.moveOrderingOptim {
		orderMoves(pos, candidates)
	}
	if len(candidates) == 0 {
		log.Debug().Str("side", side.String()).Msg("no-candidate-moves")
		return Ranking{}, nil
	}

	log.Debug().Ints("depths", depths).Bool("parallel", parallel).
		Int("candidates", len(candidates)).Msg("deepening-iteratively")

	start := time.Now()
	var ranking Ranking
	for _, depth := range depths {
		iterStart := time.Now()
		var err error
		if parallel && s.threads > 1 && len(candidates) > 1 {
			ranking, err = s.rankParallel(pos, side, candidates, depth)
			if err != nil {
				return nil, err
			}
		} else {
			ranking = s.rankSequential(pos, side, candidates, depth)
		}
		candidates = ranking.BestMoves(side)
		best, _ := ranking.Extreme(side)
		log.Debug().Int("depth", depth).Float64("best-score", best).
			Int("remaining", len(candidates)).
			Float64("time-elapsed-sec", time.Since(iterStart).Seconds()).
			Msg("depth-done")
		if len(candidates) <= 1 {
			break
		}
	}

	log.Info().Uint64("ttable-stores", s.ttable.Stores()).
		Uint64("ttable-lookups", s.ttable.Lookups()).
		Uint64("ttable-hits", s.ttable.Hits()).
		Uint64("nodes", s.nodes.Load()).
		Float64("time-elapsed-sec", time.Since(start).Seconds()).
		Msg("ranking-done")
	return ranking, nil
}

// BestMoves returns the moves that share the best final score, along with
// that score. ok is false when side has no moves.
func (s *Solver) BestMoves(pos *board.Position, side board.Color, depths []int,
	parallel bool) (moves []*board.Move, score float64, ok bool, err error) {

	ranking, err := s.RankMoves(pos, side, depths, parallel)
	if err != nil {
		return nil, 0, false, err
	}
	score, ok = ranking.Extreme(side)
	return ranking.BestMoves(side), score, ok, nil
}

// Root moves are searched with the full window so every score is exact.
func (s *Solver) rankSequential(pos *board.Position, side board.Color,
	candidates []*board.Move, depth int) Ranking {

	br := s.newBranch()
	ranking := make(Ranking, len(candidates))
	for i, m := range candidates {
		ranking[i] = RankedMove{
			Move:  m,
			Score: s.child(br, pos, m, side, depth, -Infinity, Infinity),
		}
	}
	return ranking
}

func (s *Solver) rankParallel(pos *board.Position, side board.Color,
	candidates []*board.Move, depth int) (Ranking, error) {

	ranking := make(Ranking, len(candidates))
	// Guards s.ttable: branches clone it on start and merge back when done.
	var mu sync.RWMutex

	g := errgroup.Group{}
	g.SetLimit(s.threads)
	for i, m := range candidates {
		i, m := i, m
		g.Go(func() error {
			br := &branch{pool: board.NewPool()}
			if s.transpositionTableOptim {
				mu.RLock()
				br.tt = s.ttable.Clone()
				mu.RUnlock()
			}
			ranking[i] = RankedMove{
				Move:  m,
				Score: s.child(br, pos, m, side, depth, -Infinity, Infinity),
			}
			if br.tt != nil {
				mu.Lock()
				s.ttable.Merge(br.tt)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ranking, nil
}
