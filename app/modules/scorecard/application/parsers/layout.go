package parsers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// Layout describes where the interesting rows and columns live inside one
// sheet. Everything downstream of detection works off these indices, so the
// detector is the only place that knows about header conventions.
type Layout struct {
	HeaderRow   int // -1 when no header row was found
	ParRow      int // -1 when the sheet carries no PAR row
	DataStart   int
	Hole1Start  int
	Hole10Start int
	TotalCol    int
	NetCol      int
	GroupCol    int
	TeamCol     int
	TotalDiff   int
}

// Column keyword sets. Exports come from a bilingual scoring app, so both
// the Chinese and English header variants must resolve.
var (
	netKeywords       = []string{"净杆", "net"}
	totalDiffKeywords = []string{"总差", "difference"}
	totalKeywords     = []string{"总杆", "total", "strokes"}
	groupKeywords     = []string{"分组", "group"}
	teamKeywords      = []string{"团体", "team", "对抗"}
	front9Keywords    = []string{"前9", "front 9"}
)

// DefaultPar is substituted hole-by-hole when a sheet carries no PAR row or
// an unreadable one. A standard par-72 sequence.
var DefaultPar = [sharedtypes.HoleCount]int{4, 4, 5, 3, 4, 4, 5, 3, 4, 4, 4, 5, 3, 4, 4, 5, 3, 4}

// DetectLayout locates the header, PAR and first data row of an arbitrary
// scorecard export and resolves the column offsets the row parser needs.
// It is a pure function over the cell grid so header variants can be tested
// directly.
func DetectLayout(rows [][]string) (*Layout, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet has no rows")
	}

	l := &Layout{
		HeaderRow: findHeaderRow(rows),
		ParRow:    -1,
		NetCol:    -1,
		TotalCol:  -1,
		GroupCol:  -1,
		TeamCol:   -1,
		TotalDiff: -1,
	}

	var header []string
	if l.HeaderRow >= 0 {
		header = rows[l.HeaderRow]
	}

	l.Hole1Start = findHole1Start(header)
	l.Hole10Start = findHole10Start(header, l.Hole1Start)
	resolveKeywordColumns(header, l)
	applyDefaultColumns(l)

	if l.HeaderRow >= 0 {
		next := l.HeaderRow + 1
		if next < len(rows) && len(rows[next]) > 0 &&
			strings.EqualFold(strings.TrimSpace(rows[next][0]), "PAR") {
			l.ParRow = next
		}
	}

	switch {
	case l.ParRow >= 0:
		l.DataStart = l.ParRow + 1
	case l.HeaderRow >= 0:
		l.DataStart = l.HeaderRow + 1
	default:
		// Last resort: assume the first row is a header we could not read.
		l.DataStart = 1
	}

	return l, nil
}

// AssemblePar builds the 18 PAR values for the sheet, reading the PAR row
// where one was detected and substituting DefaultPar hole-by-hole otherwise.
// Failing to assemble all 18 is fatal for the whole file.
func AssemblePar(rows [][]string, l *Layout) ([sharedtypes.HoleCount]int, error) {
	var par [sharedtypes.HoleCount]int

	var parRow []string
	if l.ParRow >= 0 && l.ParRow < len(rows) {
		parRow = rows[l.ParRow]
	}

	for h := 0; h < sharedtypes.HoleCount; h++ {
		par[h] = DefaultPar[h]
		if parRow == nil {
			continue
		}
		v, ok := intAt(parRow, holeColumn(l, h))
		if ok && v > 0 && v <= 15 {
			par[h] = v
		}
	}

	for h, v := range par {
		if v <= 0 {
			return par, fmt.Errorf("could not assemble a usable PAR value for hole %d", h+1)
		}
	}
	return par, nil
}

// holeColumn maps a zero-based hole index to its sheet column.
func holeColumn(l *Layout, hole int) int {
	if hole < 9 {
		return l.Hole1Start + hole
	}
	return l.Hole10Start + (hole - 9)
}

func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		if len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "HOLE") {
			return i
		}
	}

	// No literal HOLE header; fall back to a shape heuristic. A scorecard
	// header is wide and either names score columns or leads straight into
	// numbered hole columns.
	for i, row := range rows {
		if len(row) < 20 {
			continue
		}
		if rowHasScoreKeyword(row) {
			return i
		}
		if _, ok := intAt(row, 1); ok {
			if _, ok := intAt(row, 2); ok {
				return i
			}
		}
	}
	return -1
}

func rowHasScoreKeyword(row []string) bool {
	for _, cell := range row {
		c := strings.ToLower(cell)
		for _, kw := range [][]string{totalKeywords, netKeywords, groupKeywords, teamKeywords} {
			if containsAny(c, kw) {
				return true
			}
		}
	}
	return false
}

func findHole1Start(header []string) int {
	for idx, cell := range header {
		if strings.EqualFold(strings.TrimSpace(cell), "HOLE") {
			return idx + 1
		}
	}
	return 1
}

// findHole10Start scans past the hole-9 column for either the "10" header
// cell or a front-9 subtotal column sitting between the halves.
func findHole10Start(header []string, hole1Start int) int {
	for idx := hole1Start + 9; idx < len(header); idx++ {
		cell := strings.TrimSpace(header[idx])
		if cell == "10" {
			return idx
		}
		if containsAny(strings.ToLower(cell), front9Keywords) {
			return idx + 1
		}
	}
	return hole1Start + 10
}

func resolveKeywordColumns(header []string, l *Layout) {
	for idx, cell := range header {
		c := strings.ToLower(strings.TrimSpace(cell))
		if c == "" {
			continue
		}
		switch {
		case l.NetCol < 0 && containsAny(c, netKeywords):
			l.NetCol = idx
		case l.TotalDiff < 0 && containsAny(c, totalDiffKeywords):
			l.TotalDiff = idx
		case l.TotalCol < 0 && containsAny(c, totalKeywords):
			l.TotalCol = idx
		case l.GroupCol < 0 && containsAny(c, groupKeywords):
			l.GroupCol = idx
		case l.TeamCol < 0 && containsAny(c, teamKeywords):
			l.TeamCol = idx
		}
	}
}

// applyDefaultColumns fills any column the header scan could not resolve
// with its conventional offset relative to the back nine.
func applyDefaultColumns(l *Layout) {
	base := l.Hole10Start + 9
	if l.TotalDiff < 0 {
		l.TotalDiff = base
	}
	if l.TotalCol < 0 {
		l.TotalCol = base + 1
	}
	if l.NetCol < 0 {
		l.NetCol = base + 2
	}
	if l.GroupCol < 0 {
		l.GroupCol = base + 3
	}
	if l.TeamCol < 0 {
		l.TeamCol = base + 4
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// intAt parses an integer cell, tolerating surrounding whitespace and a
// short row.
func intAt(row []string, idx int) (int, bool) {
	if idx < 0 || idx >= len(row) {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(row[idx]))
	if err != nil {
		return 0, false
	}
	return v, true
}
