package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"krishimitra/pkg/errors"
)

// Row is one record of the crop/fertilizer reference dataset.
// District and soil color are stored as the numeric label-encoded codes
// assigned during offline training; the crop name is kept as a string.
type Row struct {
	Index       float64
	District    float64
	SoilColor   float64
	Nitrogen    float64
	Phosphorus  float64
	Potassium   float64
	PH          float64
	Rainfall    float64
	Temperature float64
	Crop        string
	Fertilizer  string
	Link        string
}

// Table is the reference dataset, loaded once at startup and read-only
// afterwards.
type Table struct {
	Rows []Row
}

// requiredColumns must be present in the CSV header. The training index
// column has no header name and is resolved separately.
var requiredColumns = []string{
	"District_Name", "Soil_color", "Nitrogen", "Phosphorus", "Potassium",
	"pH", "Rainfall", "Temperature", "Crop_string", "Fertilizer", "Link",
}

// Load reads the crop/fertilizer reference CSV from path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open reference dataset")
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads the reference dataset from r.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read dataset header")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, errors.Newf("reference dataset missing column %q", name)
		}
	}

	// The vestigial training-index column is the first, unnamed one when
	// present; otherwise the row position substitutes.
	indexCol := -1
	if len(header) > 0 && header[0] == "" {
		indexCol = 0
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read dataset line %d", line)
		}

		row := Row{
			Crop:       record[cols["Crop_string"]],
			Fertilizer: record[cols["Fertilizer"]],
			Link:       record[cols["Link"]],
		}

		numeric := []struct {
			name string
			dst  *float64
		}{
			{"District_Name", &row.District},
			{"Soil_color", &row.SoilColor},
			{"Nitrogen", &row.Nitrogen},
			{"Phosphorus", &row.Phosphorus},
			{"Potassium", &row.Potassium},
			{"pH", &row.PH},
			{"Rainfall", &row.Rainfall},
			{"Temperature", &row.Temperature},
		}
		for _, col := range numeric {
			v, err := strconv.ParseFloat(record[cols[col.name]], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset line %d: column %q is not numeric", line, col.name)
			}
			*col.dst = v
		}

		if indexCol >= 0 {
			v, err := strconv.ParseFloat(record[indexCol], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset line %d: index column is not numeric", line)
			}
			row.Index = v
		} else {
			row.Index = float64(len(rows))
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errors.New("reference dataset is empty")
	}

	return &Table{Rows: rows}, nil
}

// FilterByCrop returns all rows whose crop matches name exactly.
func (t *Table) FilterByCrop(name string) []Row {
	var matches []Row
	for _, row := range t.Rows {
		if row.Crop == name {
			matches = append(matches, row)
		}
	}
	return matches
}

// Fertilizers returns the unique fertilizer names in first-seen order.
func (t *Table) Fertilizers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.Rows {
		if !seen[row.Fertilizer] {
			seen[row.Fertilizer] = true
			out = append(out, row.Fertilizer)
		}
	}
	return out
}
