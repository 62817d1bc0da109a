package model

import (
	"fmt"
	"math/rand"
)

// NewSyntheticInput builds a deterministic batch of inference inputs
// for the shape [batch, features]. Values are seeded so repeated
// benchmark sessions feed the network identical data.
func NewSyntheticInput(shape []int) ([][]float64, error) {
	if len(shape) != 2 || shape[0] < 1 || shape[1] < 1 {
		return nil, fmt.Errorf("input shape must be [batch, features], got %v", shape)
	}

	rng := rand.New(rand.NewSource(42))
	batch := make([][]float64, shape[0])
	for i := range batch {
		row := make([]float64, shape[1])
		for j := range row {
			row[j] = rng.NormFloat64()
		}
		batch[i] = row
	}
	return batch, nil
}

// Consume runs every row of the batch through the network, discarding
// the outputs. The first error stops the batch.
func Consume(net *Network, batch [][]float64) error {
	for _, row := range batch {
		if _, err := net.Forward(row); err != nil {
			return err
		}
	}
	return nil
}
