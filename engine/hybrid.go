package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"

	"chess-hybrid/board"
	"chess-hybrid/eval"
)

// endgameThreshold: at this many occupied cells or fewer, every position
// counts as critical and goes to the network.
const endgameThreshold = 12

// Hybrid scores positions with the network when they are tactically
// critical and with the bare material count otherwise, behind a bounded
// fingerprint cache. Single-goroutine use only.
type Hybrid struct {
	net   *eval.Network
	cache *evalCache

	// MaterialOnly bypasses the network entirely; used by hosts that have
	// no trained model and by deterministic tests.
	MaterialOnly bool
}

// NewHybrid wraps net in a hybrid evaluator with an empty cache.
func NewHybrid(net *eval.Network) *Hybrid {
	return &Hybrid{net: net, cache: newEvalCache()}
}

// Network exposes the wrapped evaluator for training and persistence.
func (h *Hybrid) Network() *eval.Network {
	return h.net
}

// CacheSize reports the number of cached fingerprints.
func (h *Hybrid) CacheSize() int {
	return h.cache.len()
}

// isCapture: the destination is occupied, or a pawn leaves its file onto an
// empty square (en passant).
func isCapture(b *dragontoothmg.Board, m dragontoothmg.Move) bool {
	occ := b.White.All | b.Black.All
	toBB := uint64(1) << m.To()
	if occ&toBB != 0 {
		return true
	}
	fromBB := uint64(1) << m.From()
	pawns := b.White.Pawns | b.Black.Pawns
	return fromBB&pawns != 0 && m.From()%8 != m.To()%8
}

// isCritical decides whether a position deserves the network: any capture
// or promotion available, or an endgame-sized occupancy.
func (h *Hybrid) isCritical(b *dragontoothmg.Board, moves []dragontoothmg.Move) bool {
	if bits.OnesCount64(b.White.All|b.Black.All) <= endgameThreshold {
		return true
	}
	for _, m := range moves {
		if m.Promote() != dragontoothmg.Nothing || isCapture(b, m) {
			return true
		}
	}
	return false
}

// Evaluate returns a white-positive centipawn score for the position.
//
// The cache only ever stores material scores: even when the network scores
// a critical position, the fingerprint is filled with the material value,
// so later hits on the same fingerprint serve material until evicted. That
// trades precision for speed and is deliberate.
func (h *Hybrid) Evaluate(b *dragontoothmg.Board) int {
	st, ctx := board.FromGame(b)
	key := Fingerprint(st, ctx.WhiteToMove)
	if score, ok := h.cache.get(key); ok {
		return score
	}

	material := Material(st)
	score := material
	if !h.MaterialOnly {
		moves := b.GenerateLegalMoves()
		if h.isCritical(b, moves) {
			score = h.net.Evaluate(st, ctx)
		}
	}

	h.cache.put(key, material)
	return score
}
