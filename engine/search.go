package engine

import (
	"math/rand"
	"time"

	"github.com/dylhunn/dragontoothmg"
)

const (
	// MaxScore is the search window bound; no evaluation reaches it.
	MaxScore = 1 << 30

	// noMovesPenalty is returned whenever the side to move has no legal
	// moves. Checkmate and stalemate deliberately score the same; the
	// evaluator contract folds both into one terminal value.
	noMovesPenalty = -1000000

	// candidateBand: root moves scoring within this many centipawns of the
	// best are interchangeable, and one is picked at random.
	candidateBand = 10
)

// Evaluator scores a position, white-positive. Satisfied by *Hybrid.
type Evaluator interface {
	Evaluate(b *dragontoothmg.Board) int
}

// Result describes a finished root search.
type Result struct {
	Move    dragontoothmg.Move
	Score   int
	Nodes   uint64
	Elapsed time.Duration
	NPS     uint64
}

// Engine runs fixed-depth negamax searches. Depth is the only cost control;
// a Search call blocks its goroutine until the walk completes.
type Engine struct {
	eval  Evaluator
	rnd   *rand.Rand
	nodes uint64
}

// NewEngine builds a search engine over eval. The random source drives root
// move shuffling and tie-breaking; tests inject a seeded one.
func NewEngine(eval Evaluator, rnd *rand.Rand) *Engine {
	return &Engine{eval: eval, rnd: rnd}
}

// negamax returns the score of the position from the white-positive
// evaluator through the negamax convention. Every Apply is matched by
// exactly one undo on every exit path, including beta cutoffs.
func (e *Engine) negamax(b *dragontoothmg.Board, depth, alpha, beta int) int {
	e.nodes++

	if depth == 0 {
		return e.eval.Evaluate(b)
	}

	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		return noMovesPenalty
	}

	best := -MaxScore
	for _, move := range moves {
		unapply := b.Apply(move)
		score := -e.negamax(b, depth-1, -beta, -alpha)
		unapply()

		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// Search picks a move for the side to move at the given depth. The root
// move list is shuffled, every root move is searched with a full window,
// and the final move is drawn uniformly from the candidates within
// candidateBand of the best score. Returns false when there is no legal
// move, so the host can end the turn.
func (e *Engine) Search(b *dragontoothmg.Board, depth int) (Result, bool) {
	if depth < 1 {
		depth = 1
	}
	e.nodes = 0
	start := time.Now()

	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		return Result{}, false
	}
	e.rnd.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	scores := make([]int, len(moves))
	best := -MaxScore
	for i, move := range moves {
		unapply := b.Apply(move)
		scores[i] = -e.negamax(b, depth-1, -MaxScore, MaxScore)
		unapply()
		if scores[i] > best {
			best = scores[i]
		}
	}

	var candidates []int
	for i, score := range scores {
		if score >= best-candidateBand {
			candidates = append(candidates, i)
		}
	}
	pick := candidates[e.rnd.Intn(len(candidates))]

	elapsed := time.Since(start)
	var nps uint64
	if ms := elapsed.Milliseconds(); ms > 0 {
		nps = uint64(float64(e.nodes) * 1000 / float64(ms))
	}

	return Result{
		Move:    moves[pick],
		Score:   scores[pick],
		Nodes:   e.nodes,
		Elapsed: elapsed,
		NPS:     nps,
	}, true
}
