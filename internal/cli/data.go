package cli

import (
	"encoding/csv"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/JP-Fernando/global-scanner-pro-sub003/pkg/errors"
)

// dataset holds a parsed factor export. The last CSV column is the
// target; everything before it is a feature.
type dataset struct {
	X        *mat.Dense
	Y        *mat.Dense
	Features []string
}

// loadCSV reads a factor export. A non-numeric first row is treated as a
// header and used for feature names.
func loadCSV(path string) (*dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening data file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parsing CSV")
	}
	if len(records) == 0 {
		return nil, errors.NewValueError("loadCSV", "data file is empty")
	}

	var header []string
	if !numericRow(records[0]) {
		header = records[0]
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, errors.NewValueError("loadCSV", "data file has a header but no rows")
	}

	cols := len(records[0])
	if cols < 2 {
		return nil, errors.NewValueError("loadCSV", "need at least one feature column and a target column")
	}

	n := len(records)
	m := cols - 1
	xData := make([]float64, n*m)
	yData := make([]float64, n)

	for i, record := range records {
		if len(record) != cols {
			return nil, errors.Newf("row %d has %d columns, want %d", i+1, len(record), cols)
		}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d column %d", i+1, j+1)
			}
			if j < m {
				xData[i*m+j] = v
			} else {
				yData[i] = v
			}
		}
	}

	features := make([]string, m)
	for j := 0; j < m; j++ {
		if header != nil {
			features[j] = header[j]
		} else {
			features[j] = "x" + strconv.Itoa(j+1)
		}
	}

	return &dataset{
		X:        mat.NewDense(n, m, xData),
		Y:        mat.NewDense(n, 1, yData),
		Features: features,
	}, nil
}

// allColumns rejoins features and target into a single matrix.
func (ds *dataset) allColumns() *mat.Dense {
	n, m := ds.X.Dims()
	full := mat.NewDense(n, m+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			full.Set(i, j, ds.X.At(i, j))
		}
		full.Set(i, m, ds.Y.At(i, 0))
	}
	return full
}

func numericRow(record []string) bool {
	for _, field := range record {
		if _, err := strconv.ParseFloat(field, 64); err != nil {
			return false
		}
	}
	return true
}
