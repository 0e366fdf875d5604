// Package movegen enumerates candidate moves for a position. Moves are
// recomputed on every call; positions change in place, so nothing is
// cached between calls.
//
// The generator does not look for check. A king may move onto an attacked
// square and castling does not verify that the king's path is safe; the
// search treats king capture as the end of the game instead.
package movegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/rookery/board"
)

var ErrIllegalMove = errors.New("illegal move")

// GenerateMoves returns every valid move for side.
func GenerateMoves(pos *board.Position, side board.Color) []*board.Move {
	tables := tablesFor(pos.Dim())
	moves := make([]*board.Move, 0, 48)
	pos.Pieces(func(c board.Coords, piece board.Piece) {
		if piece.Is(side) {
			moves = genForPiece(pos, side, c, piece, tables, moves)
		}
	})
	return moves
}

// MovesForSquare returns the valid moves of the piece standing on c, for
// whichever side owns it. An empty or out of bounds square has no moves.
func MovesForSquare(pos *board.Position, c board.Coords) []*board.Move {
	if !pos.InBounds(c) || pos.Empty(c) {
		return nil
	}
	piece := pos.At(c)
	return genForPiece(pos, piece.Color(), c, piece, tablesFor(pos.Dim()), nil)
}

// ParseMove looks up a move given in coordinate notation ("e2e4",
// "e2-e4" or "e2 e4") among the valid moves of the piece on the source
// square. Moves coming from outside the engine should go through here
// before being applied.
func ParseMove(pos *board.Position, side board.Color, s string) (*board.Move, error) {
	s = strings.NewReplacer("-", "", " ", "").Replace(strings.ToLower(s))
	if len(s) < 4 {
		return nil, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}
	split := 2
	for split < len(s) && s[split] >= '0' && s[split] <= '9' {
		split++
	}
	from, err := board.CoordsFromString(s[:split])
	if err != nil {
		return nil, err
	}
	to, err := board.CoordsFromString(s[split:])
	if err != nil {
		return nil, err
	}
	if !pos.InBounds(from) || !pos.At(from).Is(side) {
		return nil, fmt.Errorf("%w: no %v piece on %v", ErrIllegalMove, side, from)
	}
	for _, m := range MovesForSquare(pos, from) {
		if m.To() == to {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %v -> %v", ErrIllegalMove, from, to)
}

func genForPiece(pos *board.Position, side board.Color, c board.Coords,
	piece board.Piece, tables *offsetTables, moves []*board.Move) []*board.Move {

	if !piece.Is(side) {
		return moves
	}
	switch {
	case piece.IsKnight():
		moves = genOffsets(pos, side, c, knightOffsets, moves)
	case piece.IsBishop():
		moves = genOffsets(pos, side, c, tables.bishop, moves)
	case piece.IsRook():
		moves = genOffsets(pos, side, c, tables.rook, moves)
	case piece.IsQueen():
		moves = genOffsets(pos, side, c, tables.queen, moves)
	case piece.IsKing():
		moves = genOffsets(pos, side, c, kingOffsets, moves)
		moves = genCastles(pos, side, c, piece, moves)
	case piece.IsPawn():
		moves = genPawn(pos, side, c, moves)
	}
	return moves
}

func genOffsets(pos *board.Position, side board.Color, c board.Coords,
	offsets []board.Coords, moves []*board.Move) []*board.Move {

	for _, off := range offsets {
		to := c.Add(off)
		if valid(pos, side, c, to) {
			moves = append(moves, board.NewMove(c, to, side))
		}
	}
	return moves
}

// genCastles adds castling moves towards each corner rook. The king moves
// two squares towards the rook and the rook lands on the square the king
// passed over.
func genCastles(pos *board.Position, side board.Color, c board.Coords,
	king board.Piece, moves []*board.Move) []*board.Move {

	if king.Moved() {
		return moves
	}
	for _, rookX := range []int{0, pos.Dim() - 1} {
		rookSq := board.C(rookX, c.Y)
		if rookSq == c {
			continue
		}
		rook := pos.At(rookSq)
		if !rook.IsRook() || !rook.Is(side) || rook.Moved() {
			continue
		}
		dir := board.C(rookX-c.X, 0).Sign()
		emptyBetween := true
		for sq := c.Add(dir); sq != rookSq; sq = sq.Add(dir) {
			if !pos.Empty(sq) {
				emptyBetween = false
				break
			}
		}
		if !emptyBetween {
			continue
		}
		kingTo := c.Add(dir).Add(dir)
		if !valid(pos, side, c, kingTo) {
			continue
		}
		moves = append(moves, board.NewCastlingMove(c, kingTo, side, rookSq, c.Add(dir)))
	}
	return moves
}

func genPawn(pos *board.Position, side board.Color, c board.Coords,
	moves []*board.Move) []*board.Move {

	forward := 1
	attacks := pawnAttacksWhite
	if side == board.Black {
		forward = -1
		attacks = pawnAttacksBlack
	}

	pushes := 1
	if c.Y == pos.HomeRank(side) {
		pushes = 2
	}
	for n := 1; n <= pushes; n++ {
		to := c.Add(board.C(0, forward*n))
		if pos.InBounds(to) && pos.Empty(to) && valid(pos, side, c, to) {
			moves = append(moves, board.NewMove(c, to, side))
		}
	}

	opp := side.Other()
	for _, off := range attacks {
		to := c.Add(off)
		if pos.InBounds(to) && pos.At(to).Is(opp) && valid(pos, side, c, to) {
			moves = append(moves, board.NewMove(c, to, side))
		}
	}

	// en passant: the previous move was a two-square push by an enemy pawn
	// that landed right beside this one.
	last := pos.LastMove()
	if last == nil || abs(last.To().Y-last.From().Y) != 2 ||
		c.Y != pos.HomeRank(opp)-2*forward {
		return moves
	}
	for _, off := range attacks {
		to := c.Add(off)
		beside := c.Add(board.C(off.X, 0))
		if !pos.InBounds(to) || !pos.InBounds(beside) {
			continue
		}
		if last.To() != beside {
			continue
		}
		victim := pos.At(beside)
		if !victim.IsPawn() || !victim.Is(opp) || !pos.Empty(to) {
			continue
		}
		if valid(pos, side, c, to) {
			moves = append(moves, board.NewEnPassantMove(c, to, side, beside))
		}
	}
	return moves
}

// valid applies the checks every candidate must pass, in order: both
// squares on the board, a clear path for sliding displacements, and a
// destination that is empty or holds an enemy piece.
func valid(pos *board.Position, side board.Color, from, to board.Coords) bool {
	if !pos.InBounds(from) || !pos.InBounds(to) {
		return false
	}
	if !pathClear(pos, from, to) {
		return false
	}
	dst := pos.At(to)
	return dst.IsEmpty() || !dst.Is(side)
}

// pathClear checks the squares strictly between from and to along a rank,
// file or diagonal. Adjacent squares and knight jumps are always clear.
func pathClear(pos *board.Position, from, to board.Coords) bool {
	vec := to.Sub(from)
	if abs(vec.X) <= 1 && abs(vec.Y) <= 1 {
		return true
	}
	straight := vec.X == 0 || vec.Y == 0
	diagonal := abs(vec.X) == abs(vec.Y)
	if !straight && !diagonal {
		return true
	}
	step := vec.Sign()
	for sq := from.Add(step); sq != to; sq = sq.Add(step) {
		if !pos.Empty(sq) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
