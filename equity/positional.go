package equity

import (
	"github.com/domino14/rookery/board"
	"github.com/domino14/rookery/movegen"
)

const (
	DefaultPawnFactor        = 1.0
	DefaultMobilityFactor    = 0.05
	DefaultDevelopmentFactor = 1.0

	pawnAdvanceBonus = 0.2
	developmentBonus = 0.5
	centerPawnBonus  = 0.6
)

// PositionalEvaluator adds a few positional terms on top of material:
// pawn advancement, development of knights, bishops and queens off the
// back rank, and pawns holding the four central squares.
type PositionalEvaluator struct {
	PawnFactor        float64
	MobilityFactor    float64
	DevelopmentFactor float64

	// Mobility is an optional mobility term, scaled by MobilityFactor.
	// It is nil by default; counting moves at every leaf is expensive.
	Mobility func(pos *board.Position) float64
}

func NewPositionalEvaluator() *PositionalEvaluator {
	return &PositionalEvaluator{
		PawnFactor:        DefaultPawnFactor,
		MobilityFactor:    DefaultMobilityFactor,
		DevelopmentFactor: DefaultDevelopmentFactor,
	}
}

func (e *PositionalEvaluator) Evaluate(pos *board.Position) float64 {
	score := MaterialEvaluator{}.Evaluate(pos)
	score += e.pawns(pos) * e.PawnFactor
	score += e.development(pos) * e.DevelopmentFactor
	if e.Mobility != nil {
		score += e.Mobility(pos) * e.MobilityFactor
	}
	return score
}

// pawns rewards each pawn for every rank it has advanced from its home
// rank.
func (e *PositionalEvaluator) pawns(pos *board.Position) float64 {
	score := 0.0
	pos.Pieces(func(c board.Coords, p board.Piece) {
		if !p.IsPawn() {
			return
		}
		if p.Color() == board.White {
			score += float64(c.Y-pos.HomeRank(board.White)) * pawnAdvanceBonus
		} else {
			score -= float64(pos.HomeRank(board.Black)-c.Y) * pawnAdvanceBonus
		}
	})
	return score
}

func (e *PositionalEvaluator) development(pos *board.Position) float64 {
	score := 0.0
	lo, hi := pos.Dim()/2-1, pos.Dim()/2
	pos.Pieces(func(c board.Coords, p board.Piece) {
		sign := 1.0
		backRank := 0
		if p.Color() == board.Black {
			sign = -1.0
			backRank = pos.Dim() - 1
		}
		if p.IsMinorOrQueen() && c.Y != backRank {
			score += sign * developmentBonus
		}
		if p.IsPawn() && (c.X == lo || c.X == hi) && (c.Y == lo || c.Y == hi) {
			score += sign * centerPawnBonus
		}
	})
	return score
}

// Mobility is the difference between the number of valid moves White and
// Black have in pos.
func Mobility(pos *board.Position) float64 {
	white := len(movegen.GenerateMoves(pos, board.White))
	black := len(movegen.GenerateMoves(pos, board.Black))
	return float64(white - black)
}
