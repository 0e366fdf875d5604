package zobrist

import (
	"testing"

	"github.com/matryer/is"
)

func TestSeedFromString(t *testing.T) {
	is := is.New(t)
	a := SeedFromString("rookery")
	is.Equal(len(a), 32)
	is.Equal(a, SeedFromString("rookery"))
	is.True(string(a) != string(SeedFromString("rookery2")))
}

func TestKeysAreDeterministic(t *testing.T) {
	is := is.New(t)
	z1 := New(8, SeedFromString("abc"))
	z2 := New(8, SeedFromString("abc"))
	z3 := New(8, SeedFromString("abd"))

	is.Equal(z1.BoardDim(), 8)
	is.Equal(z1.SideToMove(), z2.SideToMove())
	is.True(z1.SideToMove() != z3.SideToMove())
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			is.Equal(z1.PieceKey(x, y, 0b00000001), z2.PieceKey(x, y, 0b00000001))
		}
	}
}

func TestEveryReachableCodeHasAKey(t *testing.T) {
	is := is.New(t)
	z := New(4, SeedFromString("keys"))
	seen := map[uint64]bool{}
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			is.Equal(z.PieceKey(x, y, 0), uint64(0))
			for u := 0; u < unitTypeBits; u++ {
				for _, extra := range []int{0, colorBit, movedBit, colorBit | movedBit} {
					k := z.PieceKey(x, y, uint8(1<<u|extra))
					is.True(k != 0)
					is.True(!seen[k])
					seen[k] = true
				}
			}
			// two unit bits at once is not a piece
			is.Equal(z.PieceKey(x, y, 0b00000011), uint64(0))
		}
	}
	is.Equal(len(seen), 4*4*unitTypeBits*4)
}

func TestHash(t *testing.T) {
	is := is.New(t)
	z := New(2, SeedFromString("hash"))
	// squares indexed x*2+y
	squares := []uint8{0b00100000, 0, 0, 0b01100000}

	want := z.PieceKey(0, 0, squares[0]) ^ z.PieceKey(1, 1, squares[3])
	is.Equal(Hash(z, squares, false), want)
	is.Equal(Hash(z, squares, true), want^z.SideToMove())
	is.Equal(Hash(z, make([]uint8, 4), false), uint64(0))
}
