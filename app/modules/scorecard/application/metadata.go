package scorecardservice

import (
	"strings"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// Team color swatches auto-detected from the team name. Exports name teams
// in Chinese or English, so both keyword sets resolve.
var teamColorKeywords = []struct {
	keywords []string
	color    string
}{
	{[]string{"红", "red"}, "#e53935"},
	{[]string{"蓝", "blue"}, "#1e88e5"},
	{[]string{"绿", "green"}, "#43a047"},
	{[]string{"黄", "yellow"}, "#fdd835"},
	{[]string{"白", "white"}, "#eceff1"},
	{[]string{"黑", "black"}, "#212121"},
}

// fallbackPalette cycles for team names with no color keyword.
var fallbackPalette = []string{"#e53935", "#1e88e5", "#43a047", "#fdd835", "#8e24aa", "#fb8c00"}

// DeriveEventMetadata assembles the event-level side data an import
// carries: the PAR sequence and the team display mapping. It is a pure
// function so the statistics engine and presentation layers can be tested
// against fixed fixtures.
func DeriveEventMetadata(rows []scorecardtypes.PlayerRow, par [sharedtypes.HoleCount]int) *scorecardtypes.EventMetadata {
	meta := &scorecardtypes.EventMetadata{
		Par:        par,
		TeamColors: make(map[string]string),
	}

	seen := make(map[string]bool)
	for _, row := range rows {
		team := strings.TrimSpace(row.TeamName)
		if team == "" || seen[team] {
			continue
		}
		seen[team] = true
		meta.TeamNames = append(meta.TeamNames, team)
		meta.TeamColors[team] = detectTeamColor(team, len(meta.TeamNames)-1)
	}
	return meta
}

func detectTeamColor(teamName string, ordinal int) string {
	lower := strings.ToLower(teamName)
	for _, entry := range teamColorKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.color
			}
		}
	}
	return fallbackPalette[ordinal%len(fallbackPalette)]
}
