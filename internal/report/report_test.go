package report

import (
	"strings"
	"testing"

	"github.com/genomexlab/genome-x/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(id string, pos int, eff, gc float64) types.ScoredCandidate {
	return types.ScoredCandidate{
		Candidate: types.Candidate{
			SequenceID: id,
			Position:   pos,
			Window:     strings.Repeat("A", 20),
			PAM:        "AGG",
		},
		Efficiency: eff,
		GCContent:  gc,
	}
}

func TestRankDescending(t *testing.T) {
	in := []types.ScoredCandidate{
		scored("s", 0, 0.2, 50),
		scored("s", 1, 0.9, 50),
		scored("s", 2, 0.5, 50),
	}

	ranked := Rank(in)
	require.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].Position)
	assert.Equal(t, 2, ranked[1].Position)
	assert.Equal(t, 0, ranked[2].Position)

	// Input is untouched
	assert.Equal(t, 0, in[0].Position)
}

func TestRankStability(t *testing.T) {
	// Equal scores keep original scan order
	in := []types.ScoredCandidate{
		scored("s", 0, 0.7, 50),
		scored("s", 1, 0.7, 50),
		scored("s", 2, 0.9, 50),
		scored("s", 3, 0.7, 50),
	}

	ranked := Rank(in)
	require.Len(t, ranked, 4)
	assert.Equal(t, 2, ranked[0].Position)
	assert.Equal(t, 0, ranked[1].Position)
	assert.Equal(t, 1, ranked[2].Position)
	assert.Equal(t, 3, ranked[3].Position)
}

func TestQualifiedBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		eff       float64
		gc        float64
		qualified bool
	}{
		{name: "well inside both bands", eff: 0.9, gc: 50, qualified: true},
		{name: "gc exactly 40 qualifies", eff: 0.9, gc: 40.0, qualified: true},
		{name: "gc exactly 60 qualifies", eff: 0.9, gc: 60.0, qualified: true},
		{name: "gc just below 40 does not", eff: 0.9, gc: 39.999, qualified: false},
		{name: "gc just above 60 does not", eff: 0.9, gc: 60.001, qualified: false},
		{name: "efficiency exactly 0.80 does not qualify", eff: 0.80, gc: 50, qualified: false},
		{name: "efficiency 0.8001 qualifies", eff: 0.8001, gc: 50, qualified: true},
		{name: "high gc with high score does not qualify", eff: 0.9, gc: 70, qualified: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.qualified, Qualified(scored("s", 0, tt.eff, tt.gc)))
		})
	}
}

func TestAssembleCountsAndCap(t *testing.T) {
	// 25 qualifying candidates plus 5 non-qualifying ones
	var in []types.ScoredCandidate
	for i := 0; i < 25; i++ {
		in = append(in, scored("q", i, 0.95, 50))
	}
	for i := 0; i < 5; i++ {
		in = append(in, scored("n", i, 0.95, 70))
	}

	rep := Assemble(Rank(in))

	assert.Equal(t, 30, rep.Total)
	// QualifiedCount counts every qualifying candidate, not the display cap
	assert.Equal(t, 25, rep.QualifiedCount)
	assert.Len(t, rep.TopCandidates, DisplayCap)
	assert.Len(t, rep.Ranked, 30)
}

func TestAssembleDisplayRounding(t *testing.T) {
	in := []types.ScoredCandidate{
		scored("s", 0, 0.912345678, 47.6190476),
	}

	rep := Assemble(Rank(in))
	require.Len(t, rep.TopCandidates, 1)

	assert.InDelta(t, 0.9123, rep.TopCandidates[0].Efficiency, 1e-12)
	assert.InDelta(t, 47.6, rep.TopCandidates[0].GCContent, 1e-12)

	// The ranked set keeps full precision for export
	assert.InDelta(t, 0.912345678, rep.Ranked[0].Efficiency, 1e-12)
	assert.InDelta(t, 47.6190476, rep.Ranked[0].GCContent, 1e-12)
}

func TestAssembleCharts(t *testing.T) {
	in := []types.ScoredCandidate{
		{
			Candidate:  types.Candidate{SequenceID: "s", Position: 0, Window: "AATTGGCC" + strings.Repeat("A", 12), PAM: "TGG"},
			Efficiency: 0.9,
			GCContent:  20,
		},
		{
			Candidate:  types.Candidate{SequenceID: "s", Position: 3, Window: strings.Repeat("G", 20), PAM: "AGG"},
			Efficiency: 0.4,
			GCContent:  100,
		},
	}

	rep := Assemble(Rank(in))

	assert.Len(t, rep.Charts.GCScatter, 2)
	assert.Equal(t, int64(14), rep.Charts.BaseComposition["A"])
	assert.Equal(t, int64(2), rep.Charts.BaseComposition["T"])
	assert.Equal(t, int64(22), rep.Charts.BaseComposition["G"])
	assert.Equal(t, int64(2), rep.Charts.BaseComposition["C"])

	require.Len(t, rep.Charts.ScoreHistogram, 20)
	total := 0
	for _, bin := range rep.Charts.ScoreHistogram {
		total += bin.Count
	}
	assert.Equal(t, 2, total)
	assert.InDelta(t, 0.4, rep.Charts.ScoreHistogram[0].Low, 1e-9)
	assert.InDelta(t, 0.9, rep.Charts.ScoreHistogram[19].High, 1e-9)
}

func TestAssembleEmptyRankedSet(t *testing.T) {
	rep := Assemble(nil)
	assert.Equal(t, 0, rep.Total)
	assert.Equal(t, 0, rep.QualifiedCount)
	assert.Empty(t, rep.TopCandidates)
	assert.Nil(t, rep.Charts.ScoreHistogram)
}
