package model

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	kerrors "github.com/gabisponciano/secure-ai-model/internal/errors"
)

// Loader turns decrypted asset bytes back into a usable network. It
// accepts the four layouts the export tooling has produced over time:
//
//   - a full model document
//   - {"model": <full model document>}
//   - {"model": <parameter map>}
//   - a bare parameter map
//
// Parameter maps key tensors as "<layer>.weight" and "<layer>.bias"
// and are applied onto a fresh network from Factory.
type Loader struct {
	// Factory builds the architecture a parameter map is applied to.
	// Defaults to NewClassifier.
	Factory func() *Network
}

// Load deserializes asset bytes and returns the network in inference
// mode.
func (l *Loader) Load(data []byte) (*Network, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrDeserialization, err)
	}

	// Unwrap one level of {"model": ...}. Sibling keys (epoch counters,
	// optimizer state) ride along in checkpoints and are ignored.
	if inner, ok := doc["model"]; ok {
		if err := json.Unmarshal(inner, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrDeserialization, err)
		}
		data = inner
	}

	net, err := l.loadDocument(data, doc)
	if err != nil {
		return nil, err
	}

	net.Eval()
	return net, nil
}

func (l *Loader) loadDocument(data []byte, doc map[string]json.RawMessage) (*Network, error) {
	if _, ok := doc["layers"]; ok {
		var net Network
		if err := json.Unmarshal(data, &net); err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrDeserialization, err)
		}
		if err := validateLayers(&net); err != nil {
			return nil, err
		}
		return &net, nil
	}

	if isParameterMap(doc) {
		return l.fromParameters(doc)
	}

	return nil, fmt.Errorf("%w: unrecognized model layout", kerrors.ErrDeserialization)
}

func isParameterMap(doc map[string]json.RawMessage) bool {
	for key := range doc {
		if strings.HasSuffix(key, ".weight") || strings.HasSuffix(key, ".bias") {
			return true
		}
	}
	return false
}

func (l *Loader) fromParameters(params map[string]json.RawMessage) (*Network, error) {
	factory := l.Factory
	if factory == nil {
		factory = NewClassifier
	}
	net := factory()

	for i := range net.Layers {
		layer := &net.Layers[i]

		weights, ok := params[layer.Name+".weight"]
		if !ok {
			return nil, fmt.Errorf("%w: parameter map is missing %s.weight", kerrors.ErrDeserialization, layer.Name)
		}
		if err := json.Unmarshal(weights, &layer.Weights); err != nil {
			return nil, fmt.Errorf("%w: %s.weight: %v", kerrors.ErrDeserialization, layer.Name, err)
		}

		biases, ok := params[layer.Name+".bias"]
		if !ok {
			return nil, fmt.Errorf("%w: parameter map is missing %s.bias", kerrors.ErrDeserialization, layer.Name)
		}
		if err := json.Unmarshal(biases, &layer.Biases); err != nil {
			return nil, fmt.Errorf("%w: %s.bias: %v", kerrors.ErrDeserialization, layer.Name, err)
		}
	}

	if err := validateLayers(net); err != nil {
		return nil, err
	}
	return net, nil
}

// validateLayers rejects tensor shapes Forward cannot run: empty or
// ragged weight matrices, and bias vectors that do not match the layer
// output count.
func validateLayers(net *Network) error {
	if len(net.Layers) == 0 {
		return fmt.Errorf("%w: model document has no layers", kerrors.ErrDeserialization)
	}
	for _, layer := range net.Layers {
		if len(layer.Weights) == 0 {
			return fmt.Errorf("%w: layer %s has no weights", kerrors.ErrDeserialization, layer.Name)
		}
		width := len(layer.Weights[0])
		for _, row := range layer.Weights {
			if len(row) != width {
				return fmt.Errorf("%w: layer %s has ragged weight rows", kerrors.ErrDeserialization, layer.Name)
			}
		}
		if len(layer.Biases) != len(layer.Weights) {
			return fmt.Errorf("%w: layer %s has %d biases for %d outputs",
				kerrors.ErrDeserialization, layer.Name, len(layer.Biases), len(layer.Weights))
		}
	}
	return nil
}
