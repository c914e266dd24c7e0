// Package board holds the position representation exchanged between the
// search core, the evaluators and the host: a flat 64-cell state string
// plus the side-to-move/castling context that cannot be read off the cells.
package board

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// Empty is the cell code for an unoccupied square.
const Empty = '0'

// State is a board snapshot, index 0 = a1 through 63 = h8.
// Uppercase letters are white pieces, lowercase black.
type State [64]byte

// Context carries the position facts that live outside the 64 cells.
type Context struct {
	WhiteToMove          bool
	WhiteCastleKingside  bool
	WhiteCastleQueenside bool
	BlackCastleKingside  bool
	BlackCastleQueenside bool
}

func validPiece(c byte) bool {
	switch c {
	case 'P', 'N', 'B', 'R', 'Q', 'K', 'p', 'n', 'b', 'r', 'q', 'k':
		return true
	}
	return false
}

// ParseFEN converts the placement field of a FEN string (rank 8 first,
// '/'-separated, digits run-length-encoding empty squares) into a State.
func ParseFEN(placement string) (State, error) {
	var st State
	for i := range st {
		st[i] = Empty
	}

	rank := 7
	file := 0
	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			rank--
			file = 0
			if rank < 0 {
				return st, fmt.Errorf("board: too many ranks in %q", placement)
			}
		case c >= '1' && c <= '8':
			file += int(c - '0')
			if file > 8 {
				return st, fmt.Errorf("board: rank overflow in %q", placement)
			}
		default:
			if !validPiece(c) {
				return st, fmt.Errorf("board: bad piece character %q", c)
			}
			if file > 7 {
				return st, fmt.Errorf("board: rank overflow in %q", placement)
			}
			st[rank*8+file] = c
			file++
		}
	}
	return st, nil
}

// FEN renders the placement field of the position, rank 8 first.
func (st State) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			c := st[rank*8+file]
			if c == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// Occupied counts the non-empty cells.
func (st State) Occupied() int {
	n := 0
	for _, c := range st {
		if c != Empty {
			n++
		}
	}
	return n
}

func fill(st *State, bb uint64, code byte) {
	for bb != 0 {
		st[bits.TrailingZeros64(bb)] = code
		bb &= bb - 1
	}
}

// FromGame snapshots the external game board into the core data model.
// Castling rights come from the FEN castling field, the only portable way
// to read them off the generator's board.
func FromGame(b *dragontoothmg.Board) (State, Context) {
	var st State
	for i := range st {
		st[i] = Empty
	}

	fill(&st, b.White.Pawns, 'P')
	fill(&st, b.White.Knights, 'N')
	fill(&st, b.White.Bishops, 'B')
	fill(&st, b.White.Rooks, 'R')
	fill(&st, b.White.Queens, 'Q')
	fill(&st, b.White.Kings, 'K')
	fill(&st, b.Black.Pawns, 'p')
	fill(&st, b.Black.Knights, 'n')
	fill(&st, b.Black.Bishops, 'b')
	fill(&st, b.Black.Rooks, 'r')
	fill(&st, b.Black.Queens, 'q')
	fill(&st, b.Black.Kings, 'k')

	ctx := Context{WhiteToMove: b.Wtomove}
	fields := strings.Fields(b.ToFen())
	if len(fields) >= 3 {
		rights := fields[2]
		ctx.WhiteCastleKingside = strings.Contains(rights, "K")
		ctx.WhiteCastleQueenside = strings.Contains(rights, "Q")
		ctx.BlackCastleKingside = strings.Contains(rights, "k")
		ctx.BlackCastleQueenside = strings.Contains(rights, "q")
	}
	return st, ctx
}
