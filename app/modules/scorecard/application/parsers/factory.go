package parsers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
)

// Parser is implemented by every scorecard file format.
type Parser interface {
	Parse(data []byte, mode scorecardtypes.TokenMode) (*scorecardtypes.ParsedScorecard, error)
}

// Factory selects a parser from the uploaded file's extension.
type Factory struct{}

// NewFactory creates a new parser factory.
func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns the parser for the given filename.
func (f *Factory) GetParser(filename string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return NewCSVParser(), nil
	case ".xlsx", ".xls":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported scorecard file type: %q", filepath.Ext(filename))
	}
}
