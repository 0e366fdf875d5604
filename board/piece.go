package board

import "strings"

// Color is a side. White moves first and is the side the evaluator scores
// positively.
type Color uint8

const (
	White Color = 0
	Black Color = 0b01000000
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Piece is a bit-packed piece code: one unit-type bit, the color bit and
// the moved bit. Zero is an empty square.
type Piece uint8

const (
	NoPiece Piece = 0

	PawnMask   Piece = 0b00000001
	KnightMask Piece = 0b00000010
	BishopMask Piece = 0b00000100
	RookMask   Piece = 0b00001000
	QueenMask  Piece = 0b00010000
	KingMask   Piece = 0b00100000

	ColorMask Piece = Piece(Black)
	MovedMask Piece = 0b10000000

	unitMask = PawnMask | KnightMask | BishopMask | RookMask | QueenMask | KingMask
)

// UnitMasks lists every unit type, pawn first.
var UnitMasks = []Piece{PawnMask, KnightMask, BishopMask, RookMask, QueenMask, KingMask}

const (
	WhitePawn   = PawnMask
	WhiteKnight = KnightMask
	WhiteBishop = BishopMask
	WhiteRook   = RookMask
	WhiteQueen  = QueenMask
	WhiteKing   = KingMask

	BlackPawn   = PawnMask | ColorMask
	BlackKnight = KnightMask | ColorMask
	BlackBishop = BishopMask | ColorMask
	BlackRook   = RookMask | ColorMask
	BlackQueen  = QueenMask | ColorMask
	BlackKing   = KingMask | ColorMask
)

// NewPiece builds an unmoved piece of the given unit type and color.
func NewPiece(unit Piece, c Color) Piece {
	return (unit & unitMask) | Piece(c)
}

func (p Piece) IsEmpty() bool  { return p == NoPiece }
func (p Piece) IsPawn() bool   { return p&PawnMask != 0 }
func (p Piece) IsKnight() bool { return p&KnightMask != 0 }
func (p Piece) IsBishop() bool { return p&BishopMask != 0 }
func (p Piece) IsRook() bool   { return p&RookMask != 0 }
func (p Piece) IsQueen() bool  { return p&QueenMask != 0 }
func (p Piece) IsKing() bool   { return p&KingMask != 0 }
func (p Piece) Moved() bool    { return p&MovedMask != 0 }

// IsMinorOrQueen is true for knights, bishops and queens; the pieces that
// count towards development.
func (p Piece) IsMinorOrQueen() bool {
	return p&(KnightMask|BishopMask|QueenMask) != 0
}

func (p Piece) Unit() Piece {
	return p & unitMask
}

func (p Piece) Color() Color {
	return Color(p & ColorMask)
}

// Is reports whether p is a non-empty piece of color c.
func (p Piece) Is(c Color) bool {
	return p != NoPiece && p.Color() == c
}

func (p Piece) WithMoved() Piece {
	return p | MovedMask
}

// String is a one letter code: lowercase for white, uppercase for black,
// "." for an empty square.
func (p Piece) String() string {
	key := "."
	switch {
	case p.IsPawn():
		key = "p"
	case p.IsKnight():
		key = "n"
	case p.IsBishop():
		key = "b"
	case p.IsRook():
		key = "r"
	case p.IsQueen():
		key = "q"
	case p.IsKing():
		key = "k"
	}
	if p.Color() == Black {
		return strings.ToUpper(key)
	}
	return key
}
