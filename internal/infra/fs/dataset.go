package fs

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	logging "sales-chart/internal/infra/log"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ErrUnsupportedFormat is returned for dataset files other than .json, .csv and .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Dataset is a raw X/Y column pair as read from disk. Lengths are not
// checked here; the renderer owns that validation.
type Dataset struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// LoadDataset reads a dataset file, picking the decoder by extension.
func LoadDataset(path string) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		ds, err = loadJSONDataset(path)
	case ".csv":
		ds, err = loadCSVDataset(path)
	case ".xlsx":
		ds, err = loadXLSXDataset(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}

	logging.LogDebug("Loaded dataset",
		zap.String("file", path),
		zap.Int("xCount", len(ds.X)),
		zap.Int("yCount", len(ds.Y)))

	return ds, nil
}

func loadJSONDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset JSON: %w", err)
	}
	return &ds, nil
}

func loadCSVDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset CSV: %w", err)
		}
		rows = append(rows, row)
	}

	return datasetFromRows(rows)
}

func loadXLSXDataset(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("dataset workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return datasetFromRows(rows)
}

// datasetFromRows takes the first two columns of each row. The first non-blank
// row that does not parse as numbers is treated as a header; blank rows are skipped.
func datasetFromRows(rows [][]string) (*Dataset, error) {
	ds := &Dataset{X: []float64{}, Y: []float64{}}
	headerSeen := false

	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected 2 columns, got %d", i+1, len(row))
		}

		x, errX := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if errX != nil || errY != nil {
			if len(ds.X) == 0 && !headerSeen {
				headerSeen = true
				continue
			}
			return nil, fmt.Errorf("row %d: non-numeric value %q, %q", i+1, row[0], row[1])
		}

		ds.X = append(ds.X, x)
		ds.Y = append(ds.Y, y)
	}

	return ds, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
