package board

import "fmt"

// Move relocates one piece. A move may also capture en passant (removing
// the pawn on a square other than the destination) or carry the rook leg
// of a castle. Moves are not modified after construction.
type Move struct {
	from Coords
	to   Coords
	side Color

	enPassant    Coords
	hasEnPassant bool

	castleRook *Move
}

func NewMove(from, to Coords, side Color) *Move {
	return &Move{from: from, to: to, side: side}
}

// NewEnPassantMove builds a pawn capture that also removes the pawn on
// captured.
func NewEnPassantMove(from, to Coords, side Color, captured Coords) *Move {
	return &Move{from: from, to: to, side: side, enPassant: captured, hasEnPassant: true}
}

// NewCastlingMove builds the king leg of a castle carrying the rook leg.
func NewCastlingMove(from, to Coords, side Color, rookFrom, rookTo Coords) *Move {
	return &Move{
		from:       from,
		to:         to,
		side:       side,
		castleRook: NewMove(rookFrom, rookTo, side),
	}
}

func (m *Move) From() Coords { return m.from }
func (m *Move) To() Coords   { return m.to }
func (m *Move) Side() Color  { return m.side }

// EnPassantCapture returns the square of the pawn captured en passant.
func (m *Move) EnPassantCapture() (Coords, bool) {
	return m.enPassant, m.hasEnPassant
}

// CastleCompanion is the rook relocation of a castle, or nil.
func (m *Move) CastleCompanion() *Move {
	return m.castleRook
}

// Equals compares moves structurally, including any companion move.
func (m *Move) Equals(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.from != o.from || m.to != o.to || m.side != o.side ||
		m.hasEnPassant != o.hasEnPassant || m.enPassant != o.enPassant {
		return false
	}
	return m.castleRook.Equals(o.castleRook)
}

// ShortDescription is the move in coordinate notation, e.g. "e2e4".
func (m *Move) ShortDescription() string {
	return m.from.String() + m.to.String()
}

func (m *Move) String() string {
	s := fmt.Sprintf("%v -> %v", m.from, m.to)
	if m.castleRook != nil {
		s += fmt.Sprintf(" (%v)", m.castleRook)
	}
	if m.hasEnPassant {
		s += fmt.Sprintf(" x%v e.p.", m.enPassant)
	}
	return s
}
