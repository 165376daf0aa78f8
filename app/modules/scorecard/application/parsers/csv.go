package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
)

// CSVParser parses delimited text scorecard exports. Some scoring apps
// export XLSX files with a .csv name, so a failed CSV read falls back to the
// XLSX path before giving up.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads the CSV data into a cell grid and runs the shared parsing
// core.
func (p *CSVParser) Parse(data []byte, mode scorecardtypes.TokenMode) (*scorecardtypes.ParsedScorecard, error) {
	rows, err := readCSVGrid(data)
	if err != nil {
		if result, xlsxErr := NewXLSXParser().Parse(data, mode); xlsxErr == nil {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	return parseGrid(rows, mode)
}

func readCSVGrid(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}
