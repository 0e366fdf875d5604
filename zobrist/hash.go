package zobrist

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"
)

const bignum = 1<<63 - 2

// PieceCodes is the number of distinct values a piece code can take. Codes
// are bytes, so every square gets a full row of keys and unreachable codes
// just keep a zero key.
const PieceCodes = 256

// Piece code bit layout, mirrored from the board package so that this
// package stays a leaf.
const (
	unitTypeBits = 6
	colorBit     = 1 << 6
	movedBit     = 1 << 7
)

// generate a zobrist hash for a square-grid game position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// A Zobrist is immutable once built, so a single instance can be shared by
// every position and every search goroutine.
type Zobrist struct {
	secondToMove uint64

	// posTable is indexed [x*boardDim+y][pieceCode]
	posTable [][PieceCodes]uint64
	boardDim int
}

// SeedFromString expands an arbitrary string into the 32-byte seed the key
// generator wants.
func SeedFromString(s string) []byte {
	seed := make([]byte, 32)
	for i := 0; i < 4; i++ {
		h := xxhash.Sum64String(fmt.Sprintf("%s/%d", s, i))
		binary.LittleEndian.PutUint64(seed[i*8:], h)
	}
	return seed
}

// New builds the key table for a boardDim x boardDim board. The same seed
// always yields the same keys.
func New(boardDim int, seed []byte) *Zobrist {
	rng := frand.NewCustom(seed, 1024, 12)
	z := &Zobrist{boardDim: boardDim}
	z.posTable = make([][PieceCodes]uint64, boardDim*boardDim)
	for i := 0; i < boardDim*boardDim; i++ {
		for _, color := range []int{0, colorBit} {
			for _, moved := range []int{movedBit, 0} {
				for t := 0; t < unitTypeBits; t++ {
					code := (1 << t) | color | moved
					z.posTable[i][code] = rng.Uint64n(bignum) + 1
				}
			}
		}
	}
	z.secondToMove = rng.Uint64n(bignum) + 1
	return z
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

// PieceKey returns the key for a piece code on square (x, y). The empty
// square (code 0) has a zero key.
func (z *Zobrist) PieceKey(x, y int, code uint8) uint64 {
	return z.posTable[x*z.boardDim+y][code]
}

// SideToMove is xor-ed into the key whenever the second player is on turn.
func (z *Zobrist) SideToMove() uint64 {
	return z.secondToMove
}

// Hash folds a full board into a key. squares is indexed x*boardDim+y.
// En passant availability is not part of the key.
func Hash[P ~uint8](z *Zobrist, squares []P, secondToMove bool) uint64 {
	key := uint64(0)
	for i, code := range squares {
		if code == 0 {
			continue
		}
		key ^= z.posTable[i][code]
	}
	if secondToMove {
		key ^= z.secondToMove
	}
	return key
}
