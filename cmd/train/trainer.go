package main

import (
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/exp/slices"

	"chess-hybrid/eval"
)

type trainer struct {
	net        *eval.Network
	rnd        *rand.Rand
	training   []Sample
	validation []Sample
	order      []int
}

func newTrainer(samples []Sample, rnd *rand.Rand, holdout int) *trainer {
	if holdout > len(samples)/2 {
		holdout = len(samples) / 2
	}
	split := len(samples) - holdout

	t := &trainer{
		net:        eval.New(rnd),
		rnd:        rnd,
		training:   samples[:split],
		validation: samples[split:],
		order:      make([]int, split),
	}
	for i := range t.order {
		t.order[i] = i
	}
	return t
}

func (t *trainer) runEpoch(lr float32, statusEvery int, verbose bool) {
	t.rnd.Shuffle(len(t.order), func(i, j int) {
		t.order[i], t.order[j] = t.order[j], t.order[i]
	})

	for n, idx := range t.order {
		s := t.training[idx]
		if verbose {
			pre := t.net.Evaluate(s.State, s.Ctx)
			t.net.Train(s.State, s.Ctx, s.Target, lr)
			post := t.net.Evaluate(s.State, s.Ctx)
			fmt.Printf("\nposition %d training details:\n", n+1)
			fmt.Printf("reference eval:  %d\n", s.Target)
			fmt.Printf("our eval before: %d\n", pre)
			fmt.Printf("our eval after:  %d\n", post)
			fmt.Println(trainFeedback(pre, post, s.Target))
		} else {
			t.net.Train(s.State, s.Ctx, s.Target, lr)
		}
		if statusEvery > 0 && (n+1)%statusEvery == 0 {
			fmt.Printf("trained %d/%d  avg_err=%.1f\n",
				n+1, len(t.order), t.net.RunningAverageError())
		}
	}
}

// trainFeedback reports whether one training step moved the evaluation
// toward the reference score. Equal errors count as not improved.
func trainFeedback(pre, post, target int) string {
	marker := "--------"
	if absInt(post-target) < absInt(pre-target) {
		marker = "++++++++"
	}
	return fmt.Sprintf("training %s position evaluation (%d centipawns)", marker, absInt(post-target))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// validationError is the mean absolute centipawn error on the held-out set.
func (t *trainer) validationError() float64 {
	if len(t.validation) == 0 {
		return 0
	}
	var total float64
	for _, s := range t.validation {
		got := t.net.Evaluate(s.State, s.Ctx)
		total += math.Abs(float64(got - s.Target))
	}
	return total / float64(len(t.validation))
}

// reportWorst prints the held-out positions the network is furthest from.
func (t *trainer) reportWorst(n int) {
	if len(t.validation) == 0 {
		return
	}

	type miss struct {
		fen    string
		got    int
		want   int
		absErr int
	}
	misses := make([]miss, 0, len(t.validation))
	for _, s := range t.validation {
		got := t.net.Evaluate(s.State, s.Ctx)
		absErr := got - s.Target
		if absErr < 0 {
			absErr = -absErr
		}
		misses = append(misses, miss{fen: s.State.FEN(), got: got, want: s.Target, absErr: absErr})
	}
	slices.SortFunc(misses, func(a, b miss) int {
		return b.absErr - a.absErr
	})

	if n > len(misses) {
		n = len(misses)
	}
	for _, m := range misses[:n] {
		fmt.Printf("  worst: %s  got=%d want=%d\n", m.fen, m.got, m.want)
	}
}
