package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// LoadCSV loads labelled examples from CSV (Kaggle-style):
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
//	0,0,0,0,...,0
//
// A leading header row is skipped. Every other row must hold a non-negative
// integer label followed by nIn pixel values in 0-255, which are normalized
// to [0, 1]. maxSamples > 0 limits the number of rows read.
func LoadCSV(r io.Reader, nIn, maxSamples int) (*Set, error) {
	if nIn <= 0 {
		return nil, errors.Wrapf(ErrInvalid, "csv: input width %d must be positive", nIn)
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = nIn + 1
	reader.ReuseRecord = true

	set := &Set{}
	for row := 1; maxSamples <= 0 || set.NumSamples() < maxSamples; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(ErrMalformed, err.Error())
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			if row == 1 {
				continue // header
			}
			return nil, errors.Wrapf(ErrMalformed, "invalid label at row %d: %q", row, record[0])
		}
		if label < 0 {
			return nil, errors.Wrapf(ErrMalformed, "negative label at row %d: %d", row, label)
		}

		in := make([]float32, nIn)
		for j := range in {
			pixel, err := strconv.ParseFloat(record[j+1], 32)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformed, "invalid pixel at row %d, column %d: %q", row, j+1, record[j+1])
			}
			in[j] = float32(pixel) / 255.0
		}
		set.Inputs = append(set.Inputs, in)
		set.Labels = append(set.Labels, label)
	}

	if set.NumSamples() == 0 {
		return nil, errors.Wrap(ErrInvalid, "csv: no samples")
	}
	return set, nil
}
