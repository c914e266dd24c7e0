package eval

import (
	"math"

	"chess-hybrid/board"
)

const (
	// DefaultLearningRate applies when the caller passes a non-positive rate.
	DefaultLearningRate = 0.0000005

	// clipThreshold caps the magnitude of every computed gradient.
	clipThreshold = 5.0

	// mateSignalThreshold: targets beyond this are forced-mate scores, not
	// positional evaluations, and are excluded from training.
	mateSignalThreshold = 5000
)

func clipGradient(g float32) float32 {
	if g > clipThreshold {
		return clipThreshold
	}
	if g < -clipThreshold {
		return -clipThreshold
	}
	return g
}

// Train runs one gradient step toward target (a white-positive centipawn
// score from the reference engine). The effective learning rate is fixed,
// not decayed.
func (n *Network) Train(st board.State, ctx board.Context, target int, learningRate float32) {
	if target > mateSignalThreshold || target < -mateSignalThreshold {
		return
	}
	if learningRate <= 0 {
		learningRate = DefaultLearningRate
	}

	preTrainEval := n.Evaluate(st, ctx)

	input := Encode(st, ctx)
	act := n.forward(input)
	clampedTarget := float32(math.Max(-OutputScale, math.Min(OutputScale, float64(target))))
	n.backpropagate(act, clampedTarget, learningRate)

	postTrainEval := n.Evaluate(st, ctx)

	n.metrics.recordError(
		float32(preTrainEval)-clampedTarget,
		float32(postTrainEval)-clampedTarget,
		ctx.WhiteToMove)
}

func (n *Network) backpropagate(act layerActivations, target, learningRate float32) {
	output := act.output
	errSignal := target - output

	n.metrics.recordLoss(errSignal * errSignal)

	// The output is OutputScale*tanh(raw), so the gradient carries the tanh
	// derivative on the normalized output.
	normOutput := output / OutputScale
	tanhDerivative := OutputScale * (1 - normOutput*normOutput)

	dBias3 := clipGradient(errSignal * tanhDerivative)
	dWeights3 := make([]float32, Hidden2Size)
	for i := 0; i < Hidden2Size; i++ {
		dWeights3[i] = clipGradient(errSignal * tanhDerivative * act.hidden2[i])
	}

	dHidden2 := make([]float32, Hidden2Size)
	for i := 0; i < Hidden2Size; i++ {
		grad := clipGradient(errSignal * tanhDerivative * n.weights3[0][i])
		if act.hidden2[i] > 0 {
			dHidden2[i] = grad
		}
	}

	dHidden1 := make([]float32, Hidden1Size)
	for i := 0; i < Hidden1Size; i++ {
		var sum float32
		for j := 0; j < Hidden2Size; j++ {
			sum += dHidden2[j] * n.weights2[j][i]
		}
		sum = clipGradient(sum)
		if act.hidden1[i] > 0 {
			dHidden1[i] = sum
		}
	}

	for i := 0; i < Hidden2Size; i++ {
		n.weights3[0][i] += learningRate * dWeights3[i]
	}
	n.bias3[0] += learningRate * dBias3

	for i := 0; i < Hidden2Size; i++ {
		for j := 0; j < Hidden1Size; j++ {
			n.weights2[i][j] += learningRate * clipGradient(dHidden2[i]*act.hidden1[j])
		}
		n.bias2[i] += learningRate * dHidden2[i]
	}

	for i := 0; i < Hidden1Size; i++ {
		for j := 0; j < InputSize; j++ {
			n.weights1[i][j] += learningRate * clipGradient(dHidden1[i]*act.input[j])
		}
		n.bias1[i] += learningRate * dHidden1[i]
	}
}
