// Package fasta parses FASTA formatted uploads into named sequences. Parsing
// is intentionally simple and conservative: header lines start with '>',
// sequence lines are concatenated and upper-cased.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/genomexlab/genome-x/internal/errors"
	"github.com/genomexlab/genome-x/internal/types"
)

// maxLine allows very long single-line sequences.
const maxLine = 64 * 1024 * 1024

// Parse reads all FASTA records from r. Records with an empty sequence body
// are skipped. An input with no valid records yields a parse error; the only
// way to restart is to re-read the input.
func Parse(r io.Reader) ([]types.Sequence, error) {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		records []types.Sequence
		id      string
		seen    bool
		seq     strings.Builder
	)

	flush := func() {
		if seen && seq.Len() > 0 {
			records = append(records, types.Sequence{ID: id, Bases: seq.String()})
		}
		seq.Reset()
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			flush()
			id = headerID(line[1:])
			seen = true
			continue
		}
		if !seen {
			return nil, errors.NewParseError("FASTA input must start with a '>' header line", nil)
		}
		seq.WriteString(strings.ToUpper(line))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.NewParseError("failed to read FASTA input", err)
	}
	flush()

	if len(records) == 0 {
		return nil, errors.NewParseError("no valid FASTA records found", nil)
	}

	return records, nil
}

// headerID takes the first whitespace-delimited token of a header line,
// matching how record IDs are reported downstream.
func headerID(header string) string {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
