// Command play runs one search from a FEN position and prints the chosen
// move, the search statistics and the resulting position.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"chess-hybrid/engine"
	"chess-hybrid/eval"
)

var (
	fen          = flag.String("fen", dragontoothmg.Startpos, "Position to search, as a FEN string")
	depth        = flag.Int("depth", 3, "Fixed search depth in plies")
	modelPath    = flag.String("model", "", "Optional model file; material-only evaluation without one")
	seed         = flag.Int64("seed", 0, "Random seed (0 = time-based)")
	materialOnly = flag.Bool("material", false, "Force material-only evaluation")
)

func main() {
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(s))

	net := eval.New(rnd)
	hybrid := engine.NewHybrid(net)
	if *modelPath != "" {
		if !net.LoadModel(*modelPath) {
			fmt.Println("falling back to material-only evaluation")
			hybrid.MaterialOnly = true
		}
	} else {
		hybrid.MaterialOnly = true
	}
	if *materialOnly {
		hybrid.MaterialOnly = true
	}

	board := dragontoothmg.ParseFen(*fen)
	e := engine.NewEngine(hybrid, rnd)

	result, ok := e.Search(&board, *depth)
	if !ok {
		fmt.Println("no legal moves in position")
		os.Exit(1)
	}

	fmt.Println(
		"info depth", *depth,
		"score cp", result.Score,
		"nodes", result.Nodes,
		"time", result.Elapsed.Milliseconds(),
		"nps", result.NPS,
	)
	fmt.Println("bestmove", result.Move.String())

	unapply := board.Apply(result.Move)
	fmt.Println("position", board.ToFen())
	unapply()
}
