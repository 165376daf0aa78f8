package parsers

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
)

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "scores.csv", want: "csv"},
		{name: "txt file", filename: "scores.txt", want: "csv"},
		{name: "xlsx file", filename: "scores.xlsx", want: "xlsx"},
		{name: "xls file", filename: "scores.xls", want: "xlsx"},
		{name: "unsupported file", filename: "scores.pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				_, ok := parser.(*CSVParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXParser)
				require.True(t, ok)
			default:
				t.Fatalf("unexpected parser type %q", tt.want)
			}
		})
	}
}

// buildXLSX writes the grid into an in-memory workbook.
func buildXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &cells))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func buildCSV(rows [][]string) []byte {
	var b bytes.Buffer
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return b.Bytes()
}

func fixtureSheet() [][]string {
	diffs := zeros18()
	diffs[0] = "+1"
	return [][]string{
		sheetHeader(),
		sheetParRow(),
		playerRow("Alice Chen", diffs, "71", "69.5", "1", "RED"),
		playerRow("Bob Lee", zeros18(), "70", "", "1", "BLUE"),
	}
}

func TestXLSXParser_Parse(t *testing.T) {
	data := buildXLSX(t, fixtureSheet())

	result, err := NewXLSXParser().Parse(data, scorecardtypes.TokenModeDiff)
	require.NoError(t, err)

	require.Len(t, result.Players, 2)
	require.Empty(t, result.Rejected)
	require.Equal(t, "Alice Chen", result.Players[0].Name)
	require.Equal(t, 5, result.Players[0].ActualStrokes[0])
	require.Equal(t, 4, result.Par[0])
}

func TestXLSXParser_NotAWorkbook(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte("name,1,2\n"), scorecardtypes.TokenModeDiff)
	require.Error(t, err)
	require.Contains(t, err.Error(), "csv")
}

func TestCSVParser_Parse(t *testing.T) {
	data := buildCSV(fixtureSheet())

	result, err := NewCSVParser().Parse(data, scorecardtypes.TokenModeDiff)
	require.NoError(t, err)
	require.Len(t, result.Players, 2)
	require.Equal(t, 71, result.Players[0].TotalStrokes)
}

func TestCSVParser_FallsBackToXLSX(t *testing.T) {
	// An XLSX workbook uploaded with a .csv name still parses.
	data := buildXLSX(t, fixtureSheet())

	result, err := NewCSVParser().Parse(data, scorecardtypes.TokenModeDiff)
	require.NoError(t, err)
	require.Len(t, result.Players, 2)
}

func TestCSVXLSXParity(t *testing.T) {
	rows := fixtureSheet()

	fromCSV, err := NewCSVParser().Parse(buildCSV(rows), scorecardtypes.TokenModeDiff)
	require.NoError(t, err)
	fromXLSX, err := NewXLSXParser().Parse(buildXLSX(t, rows), scorecardtypes.TokenModeDiff)
	require.NoError(t, err)

	require.Equal(t, fromCSV.Par, fromXLSX.Par)
	require.Equal(t, len(fromCSV.Players), len(fromXLSX.Players))
	for i := range fromCSV.Players {
		require.Equal(t, fromCSV.Players[i], fromXLSX.Players[i],
			fmt.Sprintf("player %d differs between CSV and XLSX", i))
	}
}
