// Package automatic plays engine-vs-engine games from the initial
// position, for self-play data collection and for sanity checks of the
// search.
package automatic

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/rookery/board"
	"github.com/domino14/rookery/cache"
	"github.com/domino14/rookery/config"
	"github.com/domino14/rookery/endgame/alphabeta"
	"github.com/domino14/rookery/equity"
	"github.com/domino14/rookery/zobrist"
)

const (
	ResultWhiteWins = "white-wins"
	ResultBlackWins = "black-wins"
	ResultNoMoves   = "no-moves"
	ResultPlyLimit  = "ply-limit"
)

// PlyRecord is one played move.
type PlyRecord struct {
	Ply        int     `yaml:"ply"`
	Side       string  `yaml:"side"`
	Move       string  `yaml:"move"`
	Score      float64 `yaml:"score"`
	Candidates int     `yaml:"candidates"`
}

type GameRecord struct {
	ID            int         `yaml:"id"`
	Plies         []PlyRecord `yaml:"plies"`
	Result        string      `yaml:"result"`
	FinalPosition string      `yaml:"final-position"`
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	solver   *alphabeta.Solver
	zobrist  *zobrist.Zobrist
	rng      *frand.RNG
	depths   []int
	parallel bool

	config  *config.Config
	logchan chan string
	gameID  int
}

// NewGameRunner sets up a runner with its own solver. Ties between equally
// good moves are broken with an RNG seeded from the configured zobrist
// seed, so games are reproducible; pass a non-nil 32-byte seed to
// override it.
func NewGameRunner(logchan chan string, cfg *config.Config, ev equity.Evaluator,
	seed []byte) (*GameRunner, error) {

	r := &GameRunner{logchan: logchan, config: cfg}
	if err := r.Init(ev, seed); err != nil {
		return nil, err
	}
	return r, nil
}

// Init (re)initializes the runner's solver and RNG.
func (r *GameRunner) Init(ev equity.Evaluator, seed []byte) error {
	var err error
	r.depths, err = r.config.DepthSchedule()
	if err != nil {
		return err
	}
	r.parallel = r.config.GetBool(config.ConfigParallel)

	r.solver = &alphabeta.Solver{}
	if err := r.solver.Init(ev, r.config); err != nil {
		return err
	}
	r.solver.SetThreads(r.config.GetInt(config.ConfigThreads))

	zseed := r.config.GetString(config.ConfigZobristSeed)
	r.zobrist, err = cache.Load(r.config, zobrist.CacheKey(board.DefaultDim, zseed), zobrist.CacheLoadFunc)
	if err != nil {
		return err
	}
	if seed == nil {
		seed = zobrist.SeedFromString(zseed + "/selfplay")
	}
	r.rng = frand.NewCustom(seed, 1024, 12)
	return nil
}

func (r *GameRunner) Solver() *alphabeta.Solver {
	return r.solver
}

// PlayGame plays from the initial position until a king is captured, the
// side to move has no moves, or maxPlies moves have been played.
func (r *GameRunner) PlayGame(maxPlies int) (*GameRecord, error) {
	r.gameID++
	rec := &GameRecord{ID: r.gameID, Result: ResultPlyLimit}
	pos := board.NewInitialPosition(r.zobrist)
	side := board.White

	for ply := 1; ply <= maxPlies; ply++ {
		moves, score, ok, err := r.solver.BestMoves(pos, side, r.depths, r.parallel)
		if err != nil {
			return nil, err
		}
		if !ok {
			rec.Result = ResultNoMoves
			break
		}
		m := moves[r.rng.Intn(len(moves))]
		pos.ApplyMove(m)

		pr := PlyRecord{
			Ply:        ply,
			Side:       side.String(),
			Move:       m.ShortDescription(),
			Score:      score,
			Candidates: len(moves),
		}
		rec.Plies = append(rec.Plies, pr)
		log.Debug().Int("game", rec.ID).Int("ply", ply).Str("move", pr.Move).
			Float64("score", score).Msg("ply-played")
		if r.logchan != nil {
			r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%.3f,%v\n",
				rec.ID, pr.Ply, pr.Side, pr.Move, pr.Score, pr.Candidates)
		}

		if pos.KingTakenFor(board.Black) {
			rec.Result = ResultWhiteWins
			break
		}
		if pos.KingTakenFor(board.White) {
			rec.Result = ResultBlackWins
			break
		}
		side = side.Other()
	}
	rec.FinalPosition = pos.ToDisplayText()
	return rec, nil
}
