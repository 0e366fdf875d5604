package board

import (
	"strings"

	"github.com/domino14/rookery/zobrist"
)

// DefaultDim is the side length of a standard board.
const DefaultDim = 8

// Position is a board state: the piece grid, the last move played, an
// incrementally maintained zobrist key and the king-capture flags that the
// search uses as its terminal signal.
//
// After construction a Position is only changed by ApplyMove.
type Position struct {
	dim     int
	squares []Piece // indexed x*dim+y

	lastMove *Move
	hash     uint64

	whiteKingTaken bool
	blackKingTaken bool

	zobrist *zobrist.Zobrist
	// pool is the Pool that handed out this position, if any. available
	// is set while the position sits in that pool's free list.
	pool      *Pool
	available bool
}

func newEmptyPosition(z *zobrist.Zobrist) *Position {
	dim := z.BoardDim()
	return &Position{
		dim:     dim,
		squares: make([]Piece, dim*dim),
		zobrist: z,
	}
}

// NewInitialPosition sets up the opening layout with White to move. White
// occupies the low ranks. Kings start on the d-file and queens on the
// e-file.
func NewInitialPosition(z *zobrist.Zobrist) *Position {
	p := newEmptyPosition(z)
	dim := p.dim
	last := dim - 1
	for x := 0; x < dim; x++ {
		p.set(C(x, 1), WhitePawn)
		p.set(C(x, dim-2), BlackPawn)
	}
	backRank := []struct {
		x    int
		unit Piece
	}{
		{0, RookMask}, {last, RookMask},
		{1, KnightMask}, {last - 1, KnightMask},
		{2, BishopMask}, {last - 2, BishopMask},
		{3, KingMask}, {4, QueenMask},
	}
	for _, sq := range backRank {
		if sq.x < 0 || sq.x >= dim {
			continue
		}
		p.set(C(sq.x, 0), NewPiece(sq.unit, White))
		p.set(C(sq.x, last), NewPiece(sq.unit, Black))
	}
	p.RecalculateHash(White)
	return p
}

// NewPosition builds a position from an explicit placement, e.g. for
// puzzles and tests. Pieces keep whatever moved bit they are given.
func NewPosition(z *zobrist.Zobrist, placement map[Coords]Piece, sideToMove Color) *Position {
	p := newEmptyPosition(z)
	for c, piece := range placement {
		if !c.InBounds(p.dim) {
			continue
		}
		p.set(c, piece)
	}
	p.RecalculateHash(sideToMove)
	return p
}

// Copy returns an independent duplicate that does not belong to any pool.
// The hash is copied, not recomputed.
func (p *Position) Copy() *Position {
	c := &Position{}
	c.CopyFrom(p)
	return c
}

// CopyFrom overwrites p with the state of src, reusing p's storage when
// the dimensions match. Pool membership is left untouched.
func (p *Position) CopyFrom(src *Position) {
	if len(p.squares) != len(src.squares) {
		p.squares = make([]Piece, len(src.squares))
	}
	copy(p.squares, src.squares)
	p.dim = src.dim
	p.lastMove = src.lastMove
	p.hash = src.hash
	p.whiteKingTaken = src.whiteKingTaken
	p.blackKingTaken = src.blackKingTaken
	p.zobrist = src.zobrist
}

// Equals compares the game state of two positions; pool membership is
// ignored.
func (p *Position) Equals(o *Position) bool {
	if p.dim != o.dim || p.hash != o.hash || p.lastMove != o.lastMove ||
		p.whiteKingTaken != o.whiteKingTaken || p.blackKingTaken != o.blackKingTaken ||
		p.zobrist != o.zobrist {
		return false
	}
	for i := range p.squares {
		if p.squares[i] != o.squares[i] {
			return false
		}
	}
	return true
}

func (p *Position) Dim() int        { return p.dim }
func (p *Position) Hash() uint64    { return p.hash }
func (p *Position) LastMove() *Move { return p.lastMove }

// At returns the piece on c. c must be in bounds.
func (p *Position) At(c Coords) Piece {
	return p.squares[c.X*p.dim+c.Y]
}

func (p *Position) Empty(c Coords) bool {
	return p.At(c) == NoPiece
}

func (p *Position) InBounds(c Coords) bool {
	return c.InBounds(p.dim)
}

// KingTaken is true once either king has been captured.
func (p *Position) KingTaken() bool {
	return p.whiteKingTaken || p.blackKingTaken
}

// KingTakenFor reports whether the king of color c has been captured.
func (p *Position) KingTakenFor(c Color) bool {
	if c == White {
		return p.whiteKingTaken
	}
	return p.blackKingTaken
}

// Pieces calls fn for every occupied square, file by file.
func (p *Position) Pieces(fn func(c Coords, piece Piece)) {
	for i, piece := range p.squares {
		if piece == NoPiece {
			continue
		}
		fn(C(i/p.dim, i%p.dim), piece)
	}
}

// RecalculateHash recomputes the key from scratch. It is only needed when
// a position is set up; ApplyMove keeps the key current afterwards.
func (p *Position) RecalculateHash(sideToMove Color) {
	p.hash = zobrist.Hash(p.zobrist, p.squares, sideToMove == Black)
}

// PromotionRank is the rank on which a pawn of color c promotes.
func (p *Position) PromotionRank(c Color) int {
	if c == White {
		return p.dim - 1
	}
	return 0
}

// HomeRank is the rank from which pawns of color c may push two squares.
func (p *Position) HomeRank(c Color) int {
	if c == White {
		return 1
	}
	return p.dim - 2
}

func (p *Position) set(c Coords, piece Piece) {
	p.squares[c.X*p.dim+c.Y] = piece
}

func (p *Position) key(c Coords, piece Piece) uint64 {
	return p.zobrist.PieceKey(c.X, c.Y, uint8(piece))
}

// ApplyMove plays m, which must come from the move generator or otherwise
// be known to be legal. It is the only way a Position changes.
func (p *Position) ApplyMove(m *Move) {
	moved := p.relocate(m)
	if moved.IsKing() && m.castleRook != nil {
		p.relocate(m.castleRook)
	}
	p.lastMove = m
	p.hash ^= p.zobrist.SideToMove()
}

// relocate moves a single piece and keeps the hash in sync. It returns
// the piece as it stood before the move.
func (p *Position) relocate(m *Move) Piece {
	src := p.At(m.from)
	dst := p.At(m.to)
	if dst.IsKing() {
		if dst.Color() == White {
			p.whiteKingTaken = true
		} else {
			p.blackKingTaken = true
		}
	}
	p.hash ^= p.key(m.to, dst) ^ p.key(m.from, src)
	p.set(m.from, NoPiece)

	if m.hasEnPassant {
		captured := p.At(m.enPassant)
		p.hash ^= p.key(m.enPassant, captured)
		p.set(m.enPassant, NoPiece)
	}

	piece := src
	if piece.IsPawn() && m.to.Y == p.PromotionRank(piece.Color()) {
		piece = NewPiece(QueenMask, piece.Color())
	}
	piece = piece.WithMoved()
	p.set(m.to, piece)
	p.hash ^= p.key(m.to, piece)
	return src
}

// ToDisplayText renders the board with the highest rank first.
func (p *Position) ToDisplayText() string {
	var sb strings.Builder
	for y := p.dim - 1; y >= 0; y-- {
		if y != p.dim-1 {
			sb.WriteString("\n")
		}
		for x := 0; x < p.dim; x++ {
			if x != 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(p.At(C(x, y)).String())
		}
	}
	return sb.String()
}

func (p *Position) String() string {
	return p.ToDisplayText()
}
