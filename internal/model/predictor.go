// Package model abstracts the trained efficiency-scoring artifact behind a
// narrow batch-predict interface so the pipeline never depends on any
// particular model format.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/genomexlab/genome-x/internal/errors"
)

// Predictor scores feature-vector batches. One efficiency estimate per input
// row, same order, no reordering. Implementations are black boxes to the
// pipeline: scores are expected to land in roughly [0,1] but that range is
// not enforced here.
type Predictor interface {
	Predict(batch [][]float64) ([]float64, error)
}

// Artifact is the on-disk representation of a shipped scoring model.
type Artifact struct {
	Kind    string    `json:"kind"`
	Bias    float64   `json:"bias"`
	Weights []float64 `json:"weights"`
}

// LinearPredictor scores a vector as sigmoid(bias + w.x).
type LinearPredictor struct {
	bias    float64
	weights []float64
}

// Load reads a scoring artifact from path. A missing or malformed artifact
// is a model-unavailable condition that must short-circuit the pipeline;
// callers never fall back to scoring zero.
func Load(path string) (Predictor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewModelUnavailableError(path, err)
	}
	defer file.Close()

	var art Artifact
	if err := json.NewDecoder(file).Decode(&art); err != nil {
		return nil, errors.NewModelUnavailableError(path, err)
	}

	switch art.Kind {
	case "linear":
		if len(art.Weights) == 0 {
			return nil, errors.NewModelUnavailableError(path, fmt.Errorf("artifact has no weights"))
		}
		return &LinearPredictor{bias: art.Bias, weights: art.Weights}, nil
	default:
		return nil, errors.NewModelUnavailableError(path, fmt.Errorf("unsupported artifact kind %q", art.Kind))
	}
}

// Predict scores each row of the batch in order.
func (p *LinearPredictor) Predict(batch [][]float64) ([]float64, error) {
	scores := make([]float64, len(batch))
	for i, row := range batch {
		if len(row) != len(p.weights) {
			return nil, fmt.Errorf("feature vector width %d does not match model width %d", len(row), len(p.weights))
		}
		z := p.bias
		for j, v := range row {
			z += p.weights[j] * v
		}
		scores[i] = sigmoid(z)
	}
	return scores, nil
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
