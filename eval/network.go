// Package eval implements the trainable position evaluator: a small
// feedforward network over a one-hot board encoding, with manual
// backpropagation and a binary checkpoint format.
package eval

import (
	"math"
	"math/rand"

	"chess-hybrid/board"
)

// OutputScale bounds the network output to +/-2000 centipawns via tanh.
const OutputScale = 2000.0

// layerActivations keeps every intermediate vector of one forward pass so
// the training step can reuse them. Never retained across calls.
type layerActivations struct {
	input   []float32
	hidden1 []float32
	hidden2 []float32
	output  float32
}

// Network is a 773 -> 256 -> 64 -> 1 feedforward evaluator. A single
// goroutine must own an instance; training mutates the weights in place.
type Network struct {
	weights1 [][]float32 // Hidden1Size x InputSize
	bias1    []float32
	weights2 [][]float32 // Hidden2Size x Hidden1Size
	bias2    []float32
	weights3 [][]float32 // OutputSize x Hidden2Size
	bias3    []float32

	metrics TrainingMetrics

	// Carried through checkpoints for the host's bookkeeping.
	castleStatus  int32
	currentTurnNo int32
}

// New builds a network with small random weights drawn from rnd.
func New(rnd *rand.Rand) *Network {
	n := &Network{
		weights1: newMatrix(Hidden1Size, InputSize),
		bias1:    make([]float32, Hidden1Size),
		weights2: newMatrix(Hidden2Size, Hidden1Size),
		bias2:    make([]float32, Hidden2Size),
		weights3: newMatrix(OutputSize, Hidden2Size),
		bias3:    make([]float32, OutputSize),
		metrics:  newTrainingMetrics(),
	}
	n.initializeWeights(rnd, n.weights1, n.bias1)
	n.initializeWeights(rnd, n.weights2, n.bias2)
	n.initializeWeights(rnd, n.weights3, n.bias3)
	return n
}

func newMatrix(rows, cols int) [][]float32 {
	m := make([][]float32, rows)
	for i := range m {
		m[i] = make([]float32, cols)
	}
	return m
}

func (n *Network) initializeWeights(rnd *rand.Rand, weights [][]float32, bias []float32) {
	for _, row := range weights {
		for i := range row {
			row[i] = float32(rnd.NormFloat64() * 0.1)
		}
	}
	for i := range bias {
		bias[i] = float32(rnd.NormFloat64() * 0.1)
	}
}

func relu(x float32) float32 {
	if x > 0 {
		return x
	}
	return 0
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func (n *Network) forward(input []float32) layerActivations {
	act := layerActivations{
		input:   input,
		hidden1: make([]float32, Hidden1Size),
		hidden2: make([]float32, Hidden2Size),
	}
	for i := 0; i < Hidden1Size; i++ {
		act.hidden1[i] = relu(dot(n.weights1[i], input) + n.bias1[i])
	}
	for i := 0; i < Hidden2Size; i++ {
		act.hidden2[i] = relu(dot(n.weights2[i], act.hidden1) + n.bias2[i])
	}
	raw := dot(n.weights3[0], act.hidden2) + n.bias3[0]
	act.output = OutputScale * float32(math.Tanh(float64(raw)))
	return act
}

// Evaluate scores a position in centipawns. The raw forward output is
// negated before returning; the search's per-ply negation depends on this
// exact convention, so it must not be "fixed" in isolation.
func (n *Network) Evaluate(st board.State, ctx board.Context) int {
	act := n.forward(Encode(st, ctx))
	return -int(act.output)
}

// SetGameState records the host's castle bitmask and turn counter so they
// travel with the next checkpoint.
func (n *Network) SetGameState(castleStatus, turnNo int) {
	n.castleStatus = int32(castleStatus)
	n.currentTurnNo = int32(turnNo)
}

// GameState returns the castle bitmask and turn counter carried by the
// last checkpoint load or SetGameState call.
func (n *Network) GameState() (castleStatus, turnNo int) {
	return int(n.castleStatus), int(n.currentTurnNo)
}
