package main

import (
	"math/rand"
	"testing"
)

func TestTrainFeedback(t *testing.T) {
	cases := []struct {
		pre, post, target int
		want              string
	}{
		{100, 50, 0, "training ++++++++ position evaluation (50 centipawns)"},
		{50, 100, 0, "training -------- position evaluation (100 centipawns)"},
		{-100, 20, 0, "training ++++++++ position evaluation (20 centipawns)"},
		{200, 160, 150, "training ++++++++ position evaluation (10 centipawns)"},
		// Equal error either side of the target is not an improvement.
		{120, 80, 100, "training -------- position evaluation (20 centipawns)"},
	}
	for _, c := range cases {
		if got := trainFeedback(c.pre, c.post, c.target); got != c.want {
			t.Errorf("trainFeedback(%d, %d, %d) = %q, want %q", c.pre, c.post, c.target, got, c.want)
		}
	}
}

func TestRunEpochVerboseTrainsEverySample(t *testing.T) {
	lines := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1;20",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1;900",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1;35",
	}
	samples := make([]Sample, 0, len(lines))
	for _, line := range lines {
		s, err := parseSample(line)
		if err != nil {
			t.Fatalf("parseSample(%q): %v", line, err)
		}
		samples = append(samples, s)
	}

	tr := newTrainer(samples, rand.New(rand.NewSource(3)), 0)
	tr.runEpoch(0.001, 0, true)

	if got := tr.net.Metrics().PositionsTrained; got != int32(len(samples)) {
		t.Errorf("verbose epoch trained %d positions, want %d", got, len(samples))
	}
}
