package alphabeta

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/rookery/board"
	"github.com/domino14/rookery/equity"
	"github.com/domino14/rookery/zobrist"
)

var testZobrist = zobrist.New(board.DefaultDim, zobrist.SeedFromString("alphabeta-test"))

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func testEvaluator() equity.Evaluator {
	return equity.NewPositionalEvaluator()
}

func newSolver(t testing.TB, ev equity.Evaluator) *Solver {
	s := &Solver{}
	if err := s.Init(ev, nil); err != nil {
		t.Fatal(err)
	}
	return s
}

// minimaxSolver searches every node: no pruning, no table, no ordering.
func minimaxSolver(t testing.TB, ev equity.Evaluator) *Solver {
	s := newSolver(t, ev)
	s.SetPruningDisabled(true)
	s.SetTranspositionTableOptim(false)
	s.SetMoveOrdering(false)
	return s
}

func place(side board.Color, pieces map[string]board.Piece) *board.Position {
	placement := make(map[board.Coords]board.Piece, len(pieces))
	for sq, p := range pieces {
		placement[board.MustCoords(sq)] = p
	}
	return board.NewPosition(testZobrist, placement, side)
}

// A cramped middlegame with captures available to both sides.
func tacticalPosition() *board.Position {
	return place(board.White, map[string]board.Piece{
		"d1": board.WhiteKing.WithMoved(),
		"a1": board.WhiteRook,
		"c3": board.WhiteKnight.WithMoved(),
		"e4": board.WhitePawn.WithMoved(),
		"f2": board.WhitePawn,
		"g5": board.WhiteBishop.WithMoved(),
		"d8": board.BlackKing,
		"d5": board.BlackPawn.WithMoved(),
		"f6": board.BlackKnight.WithMoved(),
		"e7": board.BlackQueen.WithMoved(),
		"h8": board.BlackRook,
		"b7": board.BlackPawn,
	})
}

func TestInitNeedsEvaluator(t *testing.T) {
	is := is.New(t)
	s := &Solver{}
	is.Equal(s.Init(nil, nil), ErrNoEvaluator)

	_, err := s.Score(board.NewInitialPosition(testZobrist), board.White, 1)
	is.Equal(err, ErrNoEvaluator)
}

func TestNegativeDepth(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, equity.MaterialEvaluator{})
	pos := board.NewInitialPosition(testZobrist)

	_, err := s.Score(pos, board.White, -1)
	is.Equal(err, ErrInvalidDepth)
	_, err = s.RankMoves(pos, board.White, []int{2, -1}, false)
	is.Equal(err, ErrInvalidDepth)
}

func TestDepthZeroIsStaticEvaluation(t *testing.T) {
	is := is.New(t)
	ev := equity.NewPositionalEvaluator()
	for _, pos := range []*board.Position{
		board.NewInitialPosition(testZobrist),
		tacticalPosition(),
	} {
		s := newSolver(t, ev)
		score, err := s.Score(pos, board.White, 0)
		is.NoErr(err)
		is.Equal(score, ev.Evaluate(pos))
	}
}

func TestPruningMatchesMinimax(t *testing.T) {
	is := is.New(t)
	ev := equity.NewPositionalEvaluator()

	cases := []struct {
		name  string
		pos   *board.Position
		side  board.Color
		depth int
	}{
		{"initial-white-3", board.NewInitialPosition(testZobrist), board.White, 3},
		{"tactical-white-3", tacticalPosition(), board.White, 3},
		{"tactical-black-3", tacticalPosition(), board.Black, 3},
		{"tactical-white-4", tacticalPosition(), board.White, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.side == board.Black {
				tc.pos.RecalculateHash(board.Black)
			}
			want, err := minimaxSolver(t, ev).Score(tc.pos, tc.side, tc.depth)
			is.NoErr(err)

			pruned := newSolver(t, ev)
			got, err := pruned.Score(tc.pos, tc.side, tc.depth)
			is.NoErr(err)
			is.Equal(got, want)

			// A second search hits the table and must agree as well.
			again, err := pruned.Score(tc.pos, tc.side, tc.depth)
			is.NoErr(err)
			is.Equal(again, want)
			is.True(pruned.TranspositionTable().Hits() > 0)
		})
	}
}

func TestPruningVisitsFewerNodes(t *testing.T) {
	is := is.New(t)
	ev := equity.MaterialEvaluator{}
	pos := tacticalPosition()

	full := minimaxSolver(t, ev)
	_, err := full.Score(pos, board.White, 3)
	is.NoErr(err)

	pruned := newSolver(t, ev)
	_, err = pruned.Score(pos, board.White, 3)
	is.NoErr(err)

	is.True(pruned.Nodes() < full.Nodes())
}

func TestSearchLeavesPositionUntouched(t *testing.T) {
	is := is.New(t)
	pos := tacticalPosition()
	before := pos.Copy()

	s := newSolver(t, equity.NewPositionalEvaluator())
	_, err := s.Score(pos, board.White, 3)
	is.NoErr(err)
	is.True(pos.Equals(before))
}

func TestCaptureTheQueen(t *testing.T) {
	is := is.New(t)
	pos := place(board.White, map[string]board.Piece{
		"h1": board.WhiteKing,
		"a1": board.WhiteRook,
		"h8": board.BlackKing,
		"a8": board.BlackQueen,
	})
	s := newSolver(t, equity.MaterialEvaluator{})

	moves, score, ok, err := s.BestMoves(pos, board.White, []int{1}, false)
	is.NoErr(err)
	is.True(ok)
	is.Equal(len(moves), 1)
	is.Equal(moves[0].ShortDescription(), "a1a8")
	is.Equal(score, 5.0)
}

func TestKingCaptureScalesWithRemainingDepth(t *testing.T) {
	is := is.New(t)
	pos := place(board.White, map[string]board.Piece{
		"h1": board.WhiteKing,
		"a1": board.WhiteRook,
		"a8": board.BlackKing,
	})
	s := newSolver(t, equity.MaterialEvaluator{})

	moves, score, ok, err := s.BestMoves(pos, board.White, []int{3}, false)
	is.NoErr(err)
	is.True(ok)
	is.Equal(len(moves), 1)
	is.Equal(moves[0].ShortDescription(), "a1a8")
	// King and rook left for White, nothing for Black, two plies to spare.
	is.Equal(score, (equity.KingValue+equity.RookValue)*3)
}

func TestRankMovesNoCandidates(t *testing.T) {
	is := is.New(t)
	pos := place(board.Black, map[string]board.Piece{
		"d1": board.WhiteKing,
	})
	s := newSolver(t, equity.MaterialEvaluator{})

	ranking, err := s.RankMoves(pos, board.Black, []int{2, 4}, false)
	is.NoErr(err)
	is.Equal(len(ranking), 0)

	moves, _, ok, err := s.BestMoves(pos, board.Black, []int{2, 4}, true)
	is.NoErr(err)
	is.True(!ok)
	is.Equal(len(moves), 0)
}

func TestRankMovesAfterKingCapture(t *testing.T) {
	is := is.New(t)
	pos := place(board.White, map[string]board.Piece{
		"d1": board.WhiteKing,
		"a1": board.WhiteRook,
		"a8": board.BlackKing,
		"h8": board.BlackRook,
	})
	pos.ApplyMove(board.NewMove(board.MustCoords("a1"), board.MustCoords("a8"), board.White))
	is.True(pos.KingTakenFor(board.Black))

	s := newSolver(t, equity.MaterialEvaluator{})
	ranking, err := s.RankMoves(pos, board.Black, []int{1, 2}, false)
	is.NoErr(err)
	is.Equal(len(ranking), 0)
	is.Equal(s.Nodes(), uint64(0))
}

func TestNoMovesScoresZero(t *testing.T) {
	is := is.New(t)
	pos := place(board.Black, map[string]board.Piece{
		"d1": board.WhiteKing,
	})
	s := newSolver(t, equity.MaterialEvaluator{})
	score, err := s.Score(pos, board.Black, 2)
	is.NoErr(err)
	is.Equal(score, 0.0)
}

func TestIterativeDeepeningNarrowsCandidates(t *testing.T) {
	is := is.New(t)
	ev := equity.NewPositionalEvaluator()
	pos := board.NewInitialPosition(testZobrist)

	first, err := newSolver(t, ev).RankMoves(pos, board.White, []int{1}, false)
	is.NoErr(err)
	is.Equal(len(first), 20)
	survivors := first.BestMoves(board.White)
	is.True(len(survivors) >= 1)

	second, err := newSolver(t, ev).RankMoves(pos, board.White, []int{1, 3}, false)
	is.NoErr(err)
	if len(survivors) == 1 {
		is.Equal(len(second), 20)
		return
	}
	is.Equal(len(second), len(survivors))
	for _, rm := range second {
		_, ok := first.Score(rm.Move)
		is.True(ok)
		is.True(isIn(rm.Move, survivors))
	}
}

func isIn(m *board.Move, moves []*board.Move) bool {
	for _, o := range moves {
		if o.Equals(m) {
			return true
		}
	}
	return false
}

func BenchmarkScoreInitialDepth4(b *testing.B) {
	ev := equity.NewPositionalEvaluator()
	pos := board.NewInitialPosition(testZobrist)
	for i := 0; i < b.N; i++ {
		s := newSolver(b, ev)
		if _, err := s.Score(pos, board.White, 4); err != nil {
			b.Fatal(err)
		}
	}
}
