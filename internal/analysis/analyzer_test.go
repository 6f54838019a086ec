package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/genomexlab/genome-x/internal/encoding"
	"github.com/genomexlab/genome-x/internal/errors"
	"github.com/genomexlab/genome-x/internal/model"
	"github.com/genomexlab/genome-x/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPredictor returns a constant score for every input row.
type stubPredictor struct {
	score float64
	err   error
	seen  [][]float64
}

func (s *stubPredictor) Predict(batch [][]float64) ([]float64, error) {
	s.seen = batch
	if s.err != nil {
		return nil, s.err
	}
	scores := make([]float64, len(batch))
	for i := range scores {
		scores[i] = s.score
	}
	return scores, nil
}

func stubAnalyzer(p model.Predictor) *Analyzer {
	return NewAnalyzerWithLoader(func() (model.Predictor, error) { return p, nil })
}

func TestAnalyzeNoCandidates(t *testing.T) {
	// 23 A's: room for one scan position, no GG motif anywhere
	a := stubAnalyzer(&stubPredictor{score: 0.9})

	rep, stats, err := a.Analyze(strings.NewReader(">s\n" + strings.Repeat("A", 23) + "\n"))
	require.Error(t, err)
	assert.Nil(t, rep)
	assert.Equal(t, 1, stats.Sequences)
	assert.Equal(t, 0, stats.Candidates)

	appErr := errors.ToAppError(err)
	assert.Equal(t, errors.CategoryNoCandidates, appErr.Category)
}

func TestAnalyzeParseError(t *testing.T) {
	a := stubAnalyzer(&stubPredictor{score: 0.9})

	rep, _, err := a.Analyze(strings.NewReader(""))
	require.Error(t, err)
	assert.Nil(t, rep)
	assert.Equal(t, errors.CategoryParse, errors.ToAppError(err).Category)
}

func TestAnalyzeSingleCandidate(t *testing.T) {
	// 43 bases with the only GG at offsets 21-22: one candidate at position 0
	bases := strings.Repeat("AT", 10) + "TGG" + strings.Repeat("AT", 10)
	stub := &stubPredictor{score: 0.9}
	a := stubAnalyzer(stub)

	rep, stats, err := a.Analyze(strings.NewReader(">s\n" + bases + "\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Candidates)

	require.Len(t, rep.Ranked, 1)
	assert.Equal(t, 0, rep.Ranked[0].Position)
	assert.Equal(t, "TGG", rep.Ranked[0].PAM)

	// The predictor saw one vector of the fixed model width
	require.Len(t, stub.seen, 1)
	assert.Len(t, stub.seen[0], encoding.VectorWidth)
}

func TestAnalyzeQualificationByGCContent(t *testing.T) {
	// Two single-candidate records scoring the same 0.9: the 50% GC window
	// qualifies, the 70% GC window does not.
	gc50 := "GCGCGCGCGCATATATATAT" + "TGG"
	gc70 := "GCGCGCGCGCGCGCATATAT" + "TGG"
	input := fmt.Sprintf(">mid\n%s\n>high\n%s\n", gc50, gc70)

	a := stubAnalyzer(&stubPredictor{score: 0.9})

	rep, stats, err := a.Analyze(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sequences)
	assert.Equal(t, 2, rep.Total)

	assert.Equal(t, 1, rep.QualifiedCount)
	require.Len(t, rep.TopCandidates, 1)
	assert.Equal(t, "mid", rep.TopCandidates[0].SequenceID)
	assert.InDelta(t, 50.0, rep.TopCandidates[0].GCContent, 1e-9)
}

func TestAnalyzeModelUnavailable(t *testing.T) {
	a := NewAnalyzer("/nonexistent/model.json")

	rep, _, err := a.Analyze(strings.NewReader(">s\n" + strings.Repeat("G", 23) + "\n"))
	require.Error(t, err)
	assert.Nil(t, rep)
	assert.Equal(t, errors.CategoryModelUnavailable, errors.ToAppError(err).Category)
}

func TestAnalyzeScoringError(t *testing.T) {
	a := stubAnalyzer(&stubPredictor{err: fmt.Errorf("model exploded")})

	rep, _, err := a.Analyze(strings.NewReader(">s\n" + strings.Repeat("G", 23) + "\n"))
	require.Error(t, err)
	assert.Nil(t, rep)
	assert.Equal(t, errors.CategoryScoring, errors.ToAppError(err).Category)
}

func TestScoreKeepsCandidateOrder(t *testing.T) {
	candidates := []types.Candidate{
		{SequenceID: "s", Position: 0, Window: strings.Repeat("A", 20), PAM: "AGG"},
		{SequenceID: "s", Position: 7, Window: strings.Repeat("G", 20), PAM: "TGG"},
	}

	scored, err := Score(&stubPredictor{score: 0.5}, candidates)
	require.NoError(t, err)
	require.Len(t, scored, 2)
	assert.Equal(t, 0, scored[0].Position)
	assert.Equal(t, 7, scored[1].Position)
	assert.InDelta(t, 0.0, scored[0].GCContent, 1e-9)
	assert.InDelta(t, 100.0, scored[1].GCContent, 1e-9)
}

// shortPredictor returns fewer scores than inputs.
type shortPredictor struct{}

func (shortPredictor) Predict(batch [][]float64) ([]float64, error) {
	return []float64{0.5}, nil
}

func TestScoreRejectsLengthMismatch(t *testing.T) {
	candidates := []types.Candidate{
		{SequenceID: "s", Position: 0, Window: strings.Repeat("A", 20), PAM: "AGG"},
		{SequenceID: "s", Position: 1, Window: strings.Repeat("A", 20), PAM: "AGG"},
	}

	scored, err := Score(shortPredictor{}, candidates)
	require.Error(t, err)
	assert.Nil(t, scored)
	assert.Equal(t, errors.CategoryScoring, errors.ToAppError(err).Category)
}
