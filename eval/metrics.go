package eval

import (
	"fmt"
	"math"
	"strings"
)

// TrainingMetrics accumulates over the life of a network instance and is
// embedded verbatim in the checkpoint file, so its field set and order are
// part of the model format.
type TrainingMetrics struct {
	PositionsTrained    int32
	Iterations          int32
	LastLoss            float32
	AverageLoss         float32
	BestLoss            float32
	InitialAverageError float32
	RunningAverageError float32
	ErrorWindowSize     int32
}

func newTrainingMetrics() TrainingMetrics {
	return TrainingMetrics{
		BestLoss:        math.MaxFloat32,
		ErrorWindowSize: 100,
	}
}

// Metrics returns a copy of the current training counters.
func (n *Network) Metrics() TrainingMetrics {
	return n.metrics
}

// RunningAverageError is the exponential moving average of the absolute
// centipawn error across training calls.
func (n *Network) RunningAverageError() float32 {
	return n.metrics.RunningAverageError
}

// TrainingStatus renders the human-readable progress report exposed to the
// host orchestration layer.
func (n *Network) TrainingStatus() string {
	m := n.metrics
	var sb strings.Builder
	sb.WriteString("Training Status Report:\n")
	sb.WriteString("=====================\n")
	fmt.Fprintf(&sb, "Positions Trained: %d\n", m.PositionsTrained)
	fmt.Fprintf(&sb, "Total Iterations: %d\n", m.Iterations)
	fmt.Fprintf(&sb, "Average Error: %.1f centipawns\n", m.RunningAverageError)
	fmt.Fprintf(&sb, "Initial Error: %.1f centipawns\n", m.InitialAverageError)

	var progress float32
	if m.InitialAverageError > 1e-5 {
		progress = 100 * (1 - m.RunningAverageError/m.InitialAverageError)
	}
	fmt.Fprintf(&sb, "Error Reduction: %.1f%%\n", progress)
	return sb.String()
}

func (m *TrainingMetrics) recordLoss(loss float32) {
	m.LastLoss = loss
	if m.Iterations == 0 {
		m.AverageLoss = loss
		m.BestLoss = loss
	} else {
		m.AverageLoss = m.AverageLoss*0.99 + loss*0.01
		if loss < m.BestLoss {
			m.BestLoss = loss
		}
	}
	m.Iterations++
}

// recordError folds one training step's pre/post errors into the running
// averages. Errors are sign-normalized for the side to move only on the
// very first sample, matching the original bookkeeping.
func (m *TrainingMetrics) recordError(preError, postError float32, whiteToMove bool) {
	normalizedPre := preError
	normalizedPost := postError
	if !whiteToMove {
		normalizedPre = -preError
		normalizedPost = -postError
	}

	m.LastLoss = normalizedPost * normalizedPost

	if m.PositionsTrained == 0 {
		m.InitialAverageError = float32(math.Abs(float64(normalizedPre)))
		m.RunningAverageError = float32(math.Abs(float64(normalizedPost)))
	} else {
		const alpha = 0.01
		absError := float32(math.Abs(float64(postError)))
		m.RunningAverageError = (1-alpha)*m.RunningAverageError + alpha*absError
	}
	m.PositionsTrained++
}
