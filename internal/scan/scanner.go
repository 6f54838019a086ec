// Package scan locates candidate guide windows adjacent to an NGG
// protospacer-adjacent motif.
package scan

import (
	"strings"

	"github.com/genomexlab/genome-x/internal/types"
)

const (
	// WindowLength is the guide window size preceding the PAM.
	WindowLength = 20
	// PAMLength is the recognition motif size.
	PAMLength = 3
	// siteLength is the full footprint a candidate needs.
	siteLength = WindowLength + PAMLength
)

// Scan emits every candidate in seq whose 3-base motif at offset i+20 ends in
// "GG", for each i in [0, len-23]. Candidates come out in strictly increasing
// position order. Sequences shorter than 23 bases yield no candidates; that
// is not an error. Single linear pass, no backtracking.
func Scan(seq types.Sequence) []types.Candidate {
	bases := seq.Bases
	if len(bases) < siteLength {
		return nil
	}

	var candidates []types.Candidate
	for i := 0; i+siteLength <= len(bases); i++ {
		pam := bases[i+WindowLength : i+siteLength]
		if strings.HasSuffix(pam, "GG") {
			candidates = append(candidates, types.Candidate{
				SequenceID: seq.ID,
				Position:   i,
				Window:     bases[i : i+WindowLength],
				PAM:        pam,
			})
		}
	}
	return candidates
}

// ScanAll scans sequences in input order; per-sequence candidate order is
// preserved so the combined slice is deterministic for a given upload.
func ScanAll(seqs []types.Sequence) []types.Candidate {
	var all []types.Candidate
	for _, s := range seqs {
		all = append(all, Scan(s)...)
	}
	return all
}
