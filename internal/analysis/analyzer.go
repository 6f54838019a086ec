// Package analysis wires the scanning and scoring pipeline together:
// parse -> scan -> encode -> score -> rank -> assemble.
package analysis

import (
	"io"

	"github.com/genomexlab/genome-x/internal/encoding"
	"github.com/genomexlab/genome-x/internal/errors"
	"github.com/genomexlab/genome-x/internal/fasta"
	"github.com/genomexlab/genome-x/internal/model"
	"github.com/genomexlab/genome-x/internal/report"
	"github.com/genomexlab/genome-x/internal/scan"
	"github.com/genomexlab/genome-x/internal/types"
)

// PredictorLoader resolves the scoring artifact for a run. The production
// loader reads the configured model path on every request, so an artifact
// that goes missing surfaces as a model-unavailable error rather than a
// stale predictor; tests swap in a deterministic stub.
type PredictorLoader func() (model.Predictor, error)

// Analyzer orchestrates the full pipeline. Each run is a single synchronous
// pass with no shared mutable state, so one Analyzer serves concurrent
// requests.
type Analyzer struct {
	loadPredictor PredictorLoader
}

// NewAnalyzer creates an analyzer that loads the scoring artifact from path.
func NewAnalyzer(modelPath string) *Analyzer {
	return &Analyzer{
		loadPredictor: func() (model.Predictor, error) {
			return model.Load(modelPath)
		},
	}
}

// NewAnalyzerWithLoader creates an analyzer with a custom predictor loader.
func NewAnalyzerWithLoader(loader PredictorLoader) *Analyzer {
	return &Analyzer{loadPredictor: loader}
}

// RunStats summarizes a completed run for logging and persistence.
type RunStats struct {
	Sequences  int
	Candidates int
}

// Analyze runs the pipeline over one FASTA upload. All pipeline errors are
// terminal for the request: no retries, no partial report.
func (a *Analyzer) Analyze(r io.Reader) (*types.Report, RunStats, error) {
	var stats RunStats

	seqs, err := fasta.Parse(r)
	if err != nil {
		return nil, stats, err
	}
	stats.Sequences = len(seqs)

	candidates := scan.ScanAll(seqs)
	stats.Candidates = len(candidates)
	if len(candidates) == 0 {
		return nil, stats, errors.NewNoCandidatesError()
	}

	predictor, err := a.loadPredictor()
	if err != nil {
		return nil, stats, err
	}

	scored, err := Score(predictor, candidates)
	if err != nil {
		return nil, stats, err
	}

	ranked := report.Rank(scored)
	rep := report.Assemble(ranked)
	return rep, stats, nil
}

// Score applies the predictor to the encoded candidates and attaches the
// derived fields. Output order matches candidate order; a predictor failure
// on valid input is a scoring error, never a silent zero.
func Score(predictor model.Predictor, candidates []types.Candidate) ([]types.ScoredCandidate, error) {
	vectors := encoding.EncodeAll(candidates)

	efficiencies, err := predictor.Predict(vectors)
	if err != nil {
		return nil, errors.NewScoringError("scoring model failed on encoded candidates", err)
	}
	if len(efficiencies) != len(candidates) {
		return nil, errors.NewScoringError("scoring model returned wrong number of predictions", nil)
	}

	scored := make([]types.ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = types.ScoredCandidate{
			Candidate:  c,
			Efficiency: efficiencies[i],
			GCContent:  encoding.GCContent(c.Window),
		}
	}
	return scored, nil
}
