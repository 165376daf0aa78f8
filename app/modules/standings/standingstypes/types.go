// Package standingstypes defines the result shapes of the standings
// computations, shared between the standings service and the import report.
package standingstypes

// WinnerTie marks a group whose top teams finished level.
const WinnerTie = "tie"

// TeamScore is one team's outcome within a group.
type TeamScore struct {
	TeamName    string  `json:"teamName"`
	Points      float64 `json:"points"`
	PlayerCount int     `json:"playerCount"`
}

// GroupOutcome is the match-play result of one group.
type GroupOutcome struct {
	Group  int         `json:"group"`
	Teams  []TeamScore `json:"teams"`
	Winner string      `json:"winner"`
}

// TeamTotal is one team's event-wide standing: the sum of its rounded
// per-group point totals.
type TeamTotal struct {
	TeamName    string `json:"teamName"`
	TotalPoints int    `json:"totalPoints"`
}

// MatchPlayResult is the full Ryder-Cup-style summary for an event.
type MatchPlayResult struct {
	PerGroup    []GroupOutcome `json:"perGroup"`
	TotalScores []TeamTotal    `json:"totalScores"`
}
