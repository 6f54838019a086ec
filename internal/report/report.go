// Package report ranks scored candidates, applies the qualification filter,
// and shapes the final report and its downloadable export.
package report

import (
	"math"
	"sort"
	"strings"

	"github.com/genomexlab/genome-x/internal/types"
)

const (
	// EfficiencyThreshold is exclusive: a candidate qualifies only above it.
	EfficiencyThreshold = 0.80
	// GCMin and GCMax bound the qualified GC-content band, both inclusive.
	GCMin = 40.0
	GCMax = 60.0
	// DisplayCap limits how many qualified candidates the report shows.
	DisplayCap = 20
	// histogramBins matches the dashboard's efficiency distribution chart.
	histogramBins = 20
)

// Rank sorts candidates descending by predicted efficiency. The sort is
// stable so equal scores keep their original scan order, keeping output
// deterministic for a given upload.
func Rank(scored []types.ScoredCandidate) []types.ScoredCandidate {
	ranked := make([]types.ScoredCandidate, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Efficiency > ranked[j].Efficiency
	})
	return ranked
}

// Qualified reports whether a candidate clears both thresholds: efficiency
// strictly above 0.80 and GC content between 40 and 60 inclusive.
func Qualified(c types.ScoredCandidate) bool {
	return c.Efficiency > EfficiencyThreshold && c.GCContent >= GCMin && c.GCContent <= GCMax
}

// Assemble builds the final report from the ranked candidate set. The ranked
// slice is kept at full precision for export; the displayed top candidates
// get GC content rounded to 1 decimal and efficiency to 4.
func Assemble(ranked []types.ScoredCandidate) *types.Report {
	qualifiedCount := 0
	top := make([]types.ScoredCandidate, 0, DisplayCap)

	for _, c := range ranked {
		if !Qualified(c) {
			continue
		}
		qualifiedCount++
		if len(top) < DisplayCap {
			display := c
			display.Efficiency = roundTo(c.Efficiency, 4)
			display.GCContent = roundTo(c.GCContent, 1)
			top = append(top, display)
		}
	}

	return &types.Report{
		Ranked:         ranked,
		TopCandidates:  top,
		Total:          len(ranked),
		QualifiedCount: qualifiedCount,
		Charts:         buildCharts(ranked),
	}
}

// buildCharts assembles the data behind the three dashboard charts from the
// full-precision ranked set.
func buildCharts(ranked []types.ScoredCandidate) types.ChartData {
	charts := types.ChartData{
		ScoreHistogram:  scoreHistogram(ranked),
		GCScatter:       make([]types.ScatterPoint, 0, len(ranked)),
		BaseComposition: map[string]int64{"A": 0, "T": 0, "G": 0, "C": 0},
	}

	for _, c := range ranked {
		charts.GCScatter = append(charts.GCScatter, types.ScatterPoint{
			GCContent:  c.GCContent,
			Efficiency: c.Efficiency,
			Window:     c.Window,
			PAM:        c.PAM,
		})
		for _, base := range []string{"A", "T", "G", "C"} {
			charts.BaseComposition[base] += int64(strings.Count(c.Window, base))
		}
	}

	return charts
}

// scoreHistogram buckets efficiencies into equal-width bins over the
// observed score range; the maximum lands in the last bin.
func scoreHistogram(ranked []types.ScoredCandidate) []types.HistogramBin {
	if len(ranked) == 0 {
		return nil
	}

	lo, hi := ranked[0].Efficiency, ranked[0].Efficiency
	for _, c := range ranked {
		if c.Efficiency < lo {
			lo = c.Efficiency
		}
		if c.Efficiency > hi {
			hi = c.Efficiency
		}
	}

	bins := make([]types.HistogramBin, histogramBins)
	width := (hi - lo) / histogramBins
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = lo + float64(i+1)*width
	}

	for _, c := range ranked {
		idx := histogramBins - 1
		if width > 0 {
			idx = int((c.Efficiency - lo) / width)
			if idx >= histogramBins {
				idx = histogramBins - 1
			}
		}
		bins[idx].Count++
	}
	return bins
}

// roundTo rounds v to the given number of decimal places, for display only.
func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
