package eval

import "chess-hybrid/board"

// Network architecture dimensions. The serialized model embeds these and
// load rejects any file that disagrees.
const (
	InputSize   = 773 // 64 squares x 12 piece kinds + 5 context scalars
	Hidden1Size = 256
	Hidden2Size = 64
	OutputSize  = 1

	boardCells = 64
	pieceKinds = 12
)

// pieceSlot maps a cell code to its one-hot plane. Unknown codes land in
// slot 0 alongside the white pawn; callers are expected to feed states that
// already went through board.ParseFEN, which rejects bad letters.
var pieceSlot = func() [256]int {
	var t [256]int
	t['P'] = 0
	t['R'] = 1
	t['N'] = 2
	t['B'] = 3
	t['Q'] = 4
	t['K'] = 5
	t['p'] = 6
	t['r'] = 7
	t['n'] = 8
	t['b'] = 9
	t['q'] = 10
	t['k'] = 11
	return t
}()

// Encode builds the network input: one indicator per occupied square in the
// plane of its piece kind, then the five context scalars.
func Encode(st board.State, ctx board.Context) []float32 {
	encoded := make([]float32, InputSize)
	for i := 0; i < boardCells; i++ {
		c := st[i]
		if c == board.Empty {
			continue
		}
		encoded[i+pieceSlot[c]*boardCells] = 1
	}

	base := boardCells * pieceKinds
	if ctx.WhiteToMove {
		encoded[base] = 1
	}
	if ctx.WhiteCastleKingside {
		encoded[base+1] = 1
	}
	if ctx.WhiteCastleQueenside {
		encoded[base+2] = 1
	}
	if ctx.BlackCastleKingside {
		encoded[base+3] = 1
	}
	if ctx.BlackCastleQueenside {
		encoded[base+4] = 1
	}
	return encoded
}
