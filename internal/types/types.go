package types

// Sequence is a single named record parsed from a FASTA upload. Bases are
// upper-cased at parse time and never mutated afterwards.
type Sequence struct {
	ID    string `json:"id"`
	Bases string `json:"bases"`
}

// Candidate is a 20-base guide window found immediately upstream of an NGG
// protospacer-adjacent motif.
type Candidate struct {
	SequenceID string `json:"id"`
	Position   int    `json:"pos"`
	Window     string `json:"seq"`
	PAM        string `json:"pam"`
}

// ScoredCandidate is a Candidate with its derived fields attached.
// Efficiency and GCContent hold full precision; rounded display copies are
// produced by the report assembler and never fed back into ranking or export.
type ScoredCandidate struct {
	Candidate
	Efficiency float64 `json:"predicted_efficiency"`
	GCContent  float64 `json:"gc_content"`
}

// HistogramBin is one bucket of the predicted-efficiency distribution.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// ScatterPoint is one candidate in GC-content vs efficiency space.
type ScatterPoint struct {
	GCContent  float64 `json:"gc_content"`
	Efficiency float64 `json:"predicted_efficiency"`
	Window     string  `json:"seq"`
	PAM        string  `json:"pam"`
}

// ChartData carries the numbers behind the dashboard visualizations. The
// server ships data only; rendering belongs to the frontend.
type ChartData struct {
	ScoreHistogram  []HistogramBin   `json:"score_histogram"`
	GCScatter       []ScatterPoint   `json:"gc_scatter"`
	BaseComposition map[string]int64 `json:"base_composition"`
}

// Report is the shaped result of one analysis run. Ranked holds every scored
// candidate at full precision in descending efficiency order. TopCandidates
// holds at most the first 20 qualifying candidates with display rounding
// applied. QualifiedCount counts all qualifying candidates, independent of
// the display cap.
type Report struct {
	Ranked         []ScoredCandidate `json:"-"`
	TopCandidates  []ScoredCandidate `json:"candidates"`
	Total          int               `json:"total"`
	QualifiedCount int               `json:"qualified"`
	Charts         ChartData         `json:"charts"`
}
