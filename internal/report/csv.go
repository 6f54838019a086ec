package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/genomexlab/genome-x/internal/errors"
	"github.com/genomexlab/genome-x/internal/types"
)

// csvHeader is fixed for compatibility with downstream consumers of the
// original dashboard export. Column order must not change.
var csvHeader = []string{"id", "pos", "seq", "pam", "Predicted_Efficiency", "GC_Content"}

// WriteCSV serializes the full ranked set at full precision, in rank order.
func WriteCSV(w io.Writer, ranked []types.ScoredCandidate) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return errors.WrapError(err, "failed to write export header")
	}
	for _, c := range ranked {
		row := []string{
			c.SequenceID,
			strconv.Itoa(c.Position),
			c.Window,
			c.PAM,
			strconv.FormatFloat(c.Efficiency, 'g', -1, 64),
			strconv.FormatFloat(c.GCContent, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return errors.WrapError(err, "failed to write export row")
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an export produced by WriteCSV back into scored candidates.
func ReadCSV(r io.Reader) ([]types.ScoredCandidate, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, errors.WrapError(err, "failed to read export header")
	}
	if len(header) != len(csvHeader) {
		return nil, errors.NewParseError("export header has unexpected column count", nil)
	}

	var out []types.ScoredCandidate
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapError(err, "failed to read export row")
		}

		pos, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, errors.WrapError(err, "bad position in export row")
		}
		eff, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, errors.WrapError(err, "bad efficiency in export row")
		}
		gc, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, errors.WrapError(err, "bad GC content in export row")
		}

		out = append(out, types.ScoredCandidate{
			Candidate: types.Candidate{
				SequenceID: row[0],
				Position:   pos,
				Window:     row[2],
				PAM:        row[3],
			},
			Efficiency: eff,
			GCContent:  gc,
		})
	}
	return out, nil
}
