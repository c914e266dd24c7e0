// Package engine is the decision core: a fixed-depth negamax search with
// alpha-beta pruning over the external move generator, scored at the leaves
// by a hybrid neural/material evaluator with a bounded cache.
package engine

import "chess-hybrid/board"

// Standard piece values in centipawns.
var pieceValues = map[byte]int{
	'P': 100,
	'N': 320,
	'B': 330,
	'R': 500,
	'Q': 900,
	'K': 20000,
	'p': -100,
	'n': -320,
	'b': -330,
	'r': -500,
	'q': -900,
	'k': -20000,
}

// Material sums piece values over the board, white-positive.
func Material(st board.State) int {
	score := 0
	for _, c := range st {
		if c != board.Empty {
			score += pieceValues[c]
		}
	}
	return score
}
