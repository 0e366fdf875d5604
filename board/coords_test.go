package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestCoordsRoundTrip(t *testing.T) {
	is := is.New(t)
	for x := 0; x < DefaultDim; x++ {
		for y := 0; y < DefaultDim; y++ {
			c := C(x, y)
			back, err := CoordsFromString(c.String())
			is.NoErr(err)
			is.Equal(back, c)
		}
	}
	is.Equal(MustCoords("a1"), C(0, 0))
	is.Equal(MustCoords("e4"), C(4, 3))
	is.Equal(MustCoords("h8").String(), "h8")
	// ranks past 9 for larger boards
	is.Equal(MustCoords("c12"), C(2, 11))
}

func TestCoordsFromStringErrors(t *testing.T) {
	is := is.New(t)
	for _, s := range []string{"", "a", "1a", "A1", "a0", "e-4", "ee"} {
		_, err := CoordsFromString(s)
		is.True(errors.Is(err, ErrInvalidCoords))
	}
}

func TestCoordsArithmetic(t *testing.T) {
	is := is.New(t)
	a := MustCoords("b2")
	b := MustCoords("e6")
	is.Equal(a.Add(C(3, 4)), b)
	is.Equal(b.Sub(a), C(3, 4))
	is.Equal(b.Sub(a).Sign(), C(1, 1))
	is.Equal(a.Sub(b).Sign(), C(-1, -1))
	is.Equal(C(0, -5).Sign(), C(0, -1))
	is.True(C(7, 7).InBounds(8))
	is.True(!C(8, 0).InBounds(8))
	is.True(!C(0, -1).InBounds(8))
}

func TestPieceCodes(t *testing.T) {
	is := is.New(t)
	is.True(NoPiece.IsEmpty())
	is.True(!NoPiece.Is(White))
	is.True(!NoPiece.Is(Black))

	is.Equal(NewPiece(KnightMask, Black), BlackKnight)
	is.True(BlackKnight.IsKnight())
	is.True(BlackKnight.Is(Black))
	is.Equal(BlackKnight.Color(), Black)
	is.Equal(WhiteRook.Color(), White)

	moved := WhiteKing.WithMoved()
	is.True(moved.Moved())
	is.True(moved.IsKing())
	is.Equal(moved.Unit(), KingMask)
	is.True(!WhiteKing.Moved())

	is.True(WhiteQueen.IsMinorOrQueen())
	is.True(BlackBishop.IsMinorOrQueen())
	is.True(!WhiteRook.IsMinorOrQueen())

	is.Equal(WhitePawn.String(), "p")
	is.Equal(BlackQueen.WithMoved().String(), "Q")
	is.Equal(NoPiece.String(), ".")
	is.Equal(White.Other(), Black)
	is.Equal(Black.String(), "black")
}

func TestMoveText(t *testing.T) {
	is := is.New(t)
	m := NewMove(MustCoords("e2"), MustCoords("e4"), White)
	is.Equal(m.ShortDescription(), "e2e4")
	is.Equal(m.String(), "e2 -> e4")

	castle := NewCastlingMove(MustCoords("d1"), MustCoords("b1"), White, MustCoords("a1"), MustCoords("c1"))
	is.Equal(castle.String(), "d1 -> b1 (a1 -> c1)")
	is.Equal(castle.CastleCompanion().From(), MustCoords("a1"))

	ep := NewEnPassantMove(MustCoords("e5"), MustCoords("d6"), White, MustCoords("d5"))
	is.Equal(ep.String(), "e5 -> d6 xd5 e.p.")
	sq, ok := ep.EnPassantCapture()
	is.True(ok)
	is.Equal(sq, MustCoords("d5"))
	_, ok = m.EnPassantCapture()
	is.True(!ok)
}

func TestMoveEquals(t *testing.T) {
	is := is.New(t)
	a := NewMove(MustCoords("e2"), MustCoords("e4"), White)
	b := NewMove(MustCoords("e2"), MustCoords("e4"), White)
	is.True(a.Equals(b))
	is.True(!a.Equals(NewMove(MustCoords("e2"), MustCoords("e3"), White)))
	is.True(!a.Equals(nil))

	c1 := NewCastlingMove(MustCoords("d1"), MustCoords("b1"), White, MustCoords("a1"), MustCoords("c1"))
	c2 := NewCastlingMove(MustCoords("d1"), MustCoords("b1"), White, MustCoords("a1"), MustCoords("c1"))
	is.True(c1.Equals(c2))
	is.True(!c1.Equals(NewMove(MustCoords("d1"), MustCoords("b1"), White)))
}
