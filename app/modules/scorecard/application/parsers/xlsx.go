package parsers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
)

// XLSXParser parses native spreadsheet scorecard exports.
type XLSXParser struct{}

// NewXLSXParser creates a new XLSX parser.
func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// Parse reads the first sheet of an XLSX file and runs layout detection and
// row parsing over its cell grid.
func (p *XLSXParser) Parse(data []byte, mode scorecardtypes.TokenMode) (*scorecardtypes.ParsedScorecard, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if strings.Contains(err.Error(), "zip: not a valid zip file") {
			return nil, fmt.Errorf("failed to open XLSX file: %w. (Hint: if this is a delimited text export, give it a .csv extension)", err)
		}
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	return parseGrid(rows, mode)
}

// parseGrid is the format-independent core shared by the XLSX and CSV
// parsers.
func parseGrid(rows [][]string, mode scorecardtypes.TokenMode) (*scorecardtypes.ParsedScorecard, error) {
	layout, err := DetectLayout(rows)
	if err != nil {
		return nil, err
	}

	par, err := AssemblePar(rows, layout)
	if err != nil {
		return nil, err
	}

	players, rejected := ParseRows(rows, layout, par, mode)
	return &scorecardtypes.ParsedScorecard{
		Par:      par,
		Players:  players,
		Rejected: rejected,
	}, nil
}
