// Package encoding converts candidate windows into the fixed-width numeric
// feature vectors the scoring model was trained on.
package encoding

import (
	"strings"

	"github.com/genomexlab/genome-x/internal/scan"
	"github.com/genomexlab/genome-x/internal/types"
)

// VectorWidth is gc_content + molecular_weight + one code per window base.
// The model artifact is trained against exactly this layout; do not reorder.
const VectorWidth = 2 + scan.WindowLength

// molecularWeights holds per-base monophosphate weights. Unrecognized bases
// contribute 0.
var molecularWeights = map[byte]float64{
	'A': 313.2,
	'T': 304.2,
	'G': 329.2,
	'C': 289.2,
}

// baseCodes is the ordinal encoding the model expects. Unrecognized bases
// map to 0.
var baseCodes = map[byte]float64{
	'A': 1,
	'T': 2,
	'G': 3,
	'C': 4,
}

// GCContent returns the percentage of bases in window that are G or C.
func GCContent(window string) float64 {
	if len(window) == 0 {
		return 0
	}
	gc := strings.Count(window, "G") + strings.Count(window, "C")
	return 100 * float64(gc) / float64(len(window))
}

// MolecularWeight sums the per-base weight lookup over window.
func MolecularWeight(window string) float64 {
	var mw float64
	for i := 0; i < len(window); i++ {
		mw += molecularWeights[window[i]]
	}
	return mw
}

// Encode maps a candidate window to its feature vector:
// [gc_content, molecular_weight, per-base codes...]. Pure and deterministic;
// the same window always yields an identical vector.
func Encode(window string) []float64 {
	vec := make([]float64, 0, 2+len(window))
	vec = append(vec, GCContent(window), MolecularWeight(window))
	for i := 0; i < len(window); i++ {
		vec = append(vec, baseCodes[window[i]])
	}
	return vec
}

// EncodeAll encodes candidates in order, one row per candidate.
func EncodeAll(candidates []types.Candidate) [][]float64 {
	rows := make([][]float64, len(candidates))
	for i, c := range candidates {
		rows[i] = Encode(c.Window)
	}
	return rows
}
