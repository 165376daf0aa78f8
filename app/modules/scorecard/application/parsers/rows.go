package parsers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// ParseRows walks every row at or after the data-start index and converts it
// into a PlayerRow. Rows that are structurally not player data (blank names,
// repeated headers, trailing captions, group 0 placeholders) are skipped
// silently; rows that look like player data but are incomplete come back as
// RowErrors naming the player.
func ParseRows(rows [][]string, l *Layout, par [sharedtypes.HoleCount]int, mode scorecardtypes.TokenMode) ([]scorecardtypes.PlayerRow, []scorecardtypes.RowError) {
	var players []scorecardtypes.PlayerRow
	var rejected []scorecardtypes.RowError

	for i := l.DataStart; i < len(rows); i++ {
		row := rows[i]
		if skipRow(row) {
			continue
		}

		name := strings.TrimSpace(row[0])

		group, ok := intAt(row, l.GroupCol)
		if !ok || group == 0 {
			// Marker and placeholder rows carry no group; they are
			// non-participants, not errors.
			continue
		}

		player, err := parsePlayerRow(row, l, par, mode)
		if err != nil {
			rejected = append(rejected, scorecardtypes.RowError{
				RowIndex: i,
				Name:     name,
				Reason:   err.Error(),
			})
			continue
		}
		player.GroupNumber = group
		players = append(players, *player)
	}

	return players, rejected
}

func skipRow(row []string) bool {
	if len(row) == 0 {
		return true
	}
	first := strings.TrimSpace(row[0])
	if first == "" {
		return true
	}
	// Stray repeated headers from concatenated sheets.
	if strings.EqualFold(first, "HOLE") || strings.EqualFold(first, "PAR") {
		return true
	}
	// Trailing metadata rows start with a quoted date caption.
	if strings.HasPrefix(first, `"`) || strings.HasPrefix(first, "'") {
		return true
	}
	return false
}

func parsePlayerRow(row []string, l *Layout, par [sharedtypes.HoleCount]int, mode scorecardtypes.TokenMode) (*scorecardtypes.PlayerRow, error) {
	player := &scorecardtypes.PlayerRow{
		Name: strings.TrimSpace(row[0]),
	}

	present := 0
	for h := 0; h < sharedtypes.HoleCount; h++ {
		tok := tokenAt(row, holeColumn(l, h))
		player.HoleDiffsRaw[h] = tok
		if tok != "" {
			present++
		}
	}
	if present < sharedtypes.HoleCount {
		return nil, fmt.Errorf("incomplete scorecard for %q: %d of %d holes present",
			player.Name, present, sharedtypes.HoleCount)
	}

	for h := 0; h < sharedtypes.HoleCount; h++ {
		diff, strokes, err := convertToken(player.HoleDiffsRaw[h], par[h], mode)
		if err != nil {
			return nil, fmt.Errorf("hole %d for %q: %w", h+1, player.Name, err)
		}
		player.HoleDiffs[h] = diff
		player.ActualStrokes[h] = strokes
	}

	if total, ok := intAt(row, l.TotalCol); ok && total > 0 {
		player.TotalStrokes = total
	} else {
		for _, s := range player.ActualStrokes {
			player.TotalStrokes += s
		}
	}

	if net, ok := floatAt(row, l.NetCol); ok {
		player.NetStrokes = &net
	}
	player.TeamName = tokenAt(row, l.TeamCol)

	return player, nil
}

// tokenAt returns the trimmed cell content, with the dash placeholder
// normalized to the missing token.
func tokenAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	tok := strings.TrimSpace(row[idx])
	if tok == "-" {
		return ""
	}
	return tok
}

// convertToken turns one hole token into (diff, actual strokes). Signed
// tokens are always diffs from par; a bare numeral follows the import's
// TokenMode because the export format does not disambiguate it.
func convertToken(tok string, par int, mode scorecardtypes.TokenMode) (diff, strokes int, err error) {
	switch {
	case strings.HasPrefix(tok, "+"):
		v, perr := strconv.Atoi(tok[1:])
		if perr != nil {
			return 0, 0, fmt.Errorf("unparsable score token %q", tok)
		}
		return v, par + v, nil
	case strings.HasPrefix(tok, "-"):
		v, perr := strconv.Atoi(tok)
		if perr != nil {
			return 0, 0, fmt.Errorf("unparsable score token %q", tok)
		}
		return v, par + v, nil
	default:
		v, perr := strconv.Atoi(tok)
		if perr != nil {
			return 0, 0, fmt.Errorf("unparsable score token %q", tok)
		}
		if mode == scorecardtypes.TokenModeStrokes {
			return v - par, v, nil
		}
		return v, par + v, nil
	}
}

func floatAt(row []string, idx int) (float64, bool) {
	if idx < 0 || idx >= len(row) {
		return 0, false
	}
	s := strings.TrimSpace(row[idx])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
