package equity

import "github.com/domino14/rookery/board"

// The king is worth more than every other piece combined, so losing it
// dominates any material count.
const (
	PawnValue   = 1.0
	KnightValue = 3.0
	BishopValue = 3.0
	RookValue   = 5.0
	QueenValue  = 9.0
	KingValue   = 200.0
)

// PieceValue is the material value of a piece, regardless of color.
func PieceValue(p board.Piece) float64 {
	switch {
	case p.IsPawn():
		return PawnValue
	case p.IsKnight():
		return KnightValue
	case p.IsBishop():
		return BishopValue
	case p.IsRook():
		return RookValue
	case p.IsQueen():
		return QueenValue
	case p.IsKing():
		return KingValue
	}
	return 0
}

// MaterialEvaluator counts material: White's pieces minus Black's.
type MaterialEvaluator struct{}

func (MaterialEvaluator) Evaluate(pos *board.Position) float64 {
	score := 0.0
	pos.Pieces(func(_ board.Coords, p board.Piece) {
		if p.Color() == board.White {
			score += PieceValue(p)
		} else {
			score -= PieceValue(p)
		}
	})
	return score
}
