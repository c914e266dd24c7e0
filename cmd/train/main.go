// Command train fits the evaluator network to a dataset of positions
// labelled with reference-engine scores, checkpointing the model after
// every epoch.
//
// Dataset format, one position per line:
//
//	<fen>;<score_cp>
//
// where score_cp is the reference evaluation in centipawns, white-positive.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"
)

var (
	dataPath    = flag.String("data", "", "Path to fen;score dataset")
	outPath     = flag.String("out", "model.bin", "Where to write model checkpoints")
	initPath    = flag.String("init", "", "Optional model file to resume from")
	epochs      = flag.Int("epochs", 1, "Training epochs")
	lr          = flag.Float64("lr", 0, "Learning rate (0 = evaluator default)")
	maxRows     = flag.Int("max_rows", 0, "Optional cap on rows loaded (0=all)")
	holdout     = flag.Int("holdout", 1000, "Samples held out for validation")
	seed        = flag.Int64("seed", 1, "Random seed for init and shuffling")
	statusEvery = flag.Int("status", 10000, "Print a status report every N positions")
	verbose     = flag.Bool("verbose", false, "Print per-position training details")
)

func main() {
	flag.Parse()
	if *dataPath == "" {
		fmt.Println("Usage:")
		flag.PrintDefaults()
		os.Exit(2)
	}

	fmt.Printf("Loading dataset: %s\n", *dataPath)
	start := time.Now()
	samples, err := loadDataset(*dataPath, *maxRows)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	fmt.Printf("Loaded %d samples in %s\n", len(samples), time.Since(start).Round(time.Millisecond))

	rnd := rand.New(rand.NewSource(*seed))
	trainer := newTrainer(samples, rnd, *holdout)

	if *initPath != "" {
		if !trainer.net.LoadModel(*initPath) {
			log.Fatalf("cannot resume from %s", *initPath)
		}
		m := trainer.net.Metrics()
		fmt.Println("\n=== Model Statistics ===")
		fmt.Printf("Positions Trained:   %d\n", m.PositionsTrained)
		fmt.Printf("Initial Error:       %.1f centipawns\n", m.InitialAverageError)
		fmt.Printf("Current Error:       %.1f centipawns\n", m.RunningAverageError)
		fmt.Println("=====================")
	}

	for epoch := 1; epoch <= *epochs; epoch++ {
		t0 := time.Now()
		trainer.runEpoch(float32(*lr), *statusEvery, *verbose)
		fmt.Printf("epoch %d  avg_err=%.1f  validation_err=%.1f  time=%s\n",
			epoch,
			trainer.net.RunningAverageError(),
			trainer.validationError(),
			time.Since(t0).Round(time.Millisecond))
		trainer.reportWorst(5)

		if !trainer.net.SaveModel(*outPath) {
			log.Fatalf("checkpoint to %s failed", *outPath)
		}
		fmt.Printf("checkpoint written to %s\n", *outPath)
	}

	fmt.Println()
	fmt.Print(trainer.net.TrainingStatus())
}
