package model

import (
	"fmt"

	kerrors "github.com/gabisponciano/secure-ai-model/internal/errors"
)

// Layer is a single dense layer: Weights is row-major [out][in].
type Layer struct {
	Name    string      `json:"name"`
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}

// Network is a small feed-forward classifier. ReLU is applied between
// layers, never after the last one.
type Network struct {
	Arch     string  `json:"arch"`
	Layers   []Layer `json:"layers"`
	training bool
}

// NewClassifier returns an empty 784 -> 128 -> 10 classifier shell in
// training mode. Parameters are filled in by the loader.
func NewClassifier() *Network {
	return &Network{
		Arch: "mlp",
		Layers: []Layer{
			{Name: "hidden", Weights: zeroMatrix(128, 784), Biases: make([]float64, 128)},
			{Name: "output", Weights: zeroMatrix(10, 128), Biases: make([]float64, 10)},
		},
		training: true,
	}
}

// Eval switches the network into inference mode.
func (n *Network) Eval() {
	n.training = false
}

// Training reports whether the network is still in training mode.
func (n *Network) Training() bool {
	return n.training
}

// InputSize returns the width the first layer expects, or 0 for an
// empty network.
func (n *Network) InputSize() int {
	if len(n.Layers) == 0 || len(n.Layers[0].Weights) == 0 {
		return 0
	}
	return len(n.Layers[0].Weights[0])
}

// Forward runs one input vector through every layer and returns the
// raw output activations.
func (n *Network) Forward(input []float64) ([]float64, error) {
	if len(n.Layers) == 0 {
		return nil, fmt.Errorf("%w: network has no layers", kerrors.ErrDeserialization)
	}

	current := input
	for i, layer := range n.Layers {
		if len(layer.Weights) == 0 {
			return nil, fmt.Errorf("%w: layer %s has no weights", kerrors.ErrDeserialization, layer.Name)
		}
		if len(current) != len(layer.Weights[0]) {
			return nil, fmt.Errorf("layer %s expects %d inputs, got %d", layer.Name, len(layer.Weights[0]), len(current))
		}

		next := make([]float64, len(layer.Weights))
		for row := range layer.Weights {
			sum := layer.Biases[row]
			for col, w := range layer.Weights[row] {
				sum += w * current[col]
			}
			next[row] = sum
		}

		// ReLU on every hidden layer.
		if i < len(n.Layers)-1 {
			for j, v := range next {
				if v < 0 {
					next[j] = 0
				}
			}
		}
		current = next
	}

	return current, nil
}

func zeroMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}
