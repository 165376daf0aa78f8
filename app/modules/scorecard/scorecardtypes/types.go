package scorecardtypes

import (
	"math"
	"strings"

	"github.com/greenside-club/scoring/app/modules/standings/standingstypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// TokenMode controls how a bare numeral in a hole cell is interpreted.
// Exports from some scoring devices write diffs from par ("+1", "-2", "0"),
// others write the raw stroke count ("4", "5"). Signed tokens are unambiguous;
// the mode only decides bare numerals.
type TokenMode string

const (
	TokenModeDiff    TokenMode = "diff"
	TokenModeStrokes TokenMode = "strokes"
)

// PlayerRow is one parsed data row from a scorecard sheet. It is ephemeral:
// produced by the parser, shown in the operator preview, then consumed by the
// resolver and the persistence adapter.
type PlayerRow struct {
	Name          string
	HoleDiffs     [sharedtypes.HoleCount]int
	HoleDiffsRaw  [sharedtypes.HoleCount]string
	ActualStrokes [sharedtypes.HoleCount]int
	TotalStrokes  int
	NetStrokes    *float64
	GroupNumber   int
	TeamName      string
}

// ParsedScorecard is the full result of parsing one uploaded file.
type ParsedScorecard struct {
	Par      [sharedtypes.HoleCount]int
	Players  []PlayerRow
	Rejected []RowError
}

// RowError describes a data row that could not be imported.
type RowError struct {
	RowIndex int
	Name     string
	Reason   string
}

// Participant is the resolved identity behind a parsed name: a registered
// member, or a guest known only by display name.
type Participant struct {
	MemberID    sharedtypes.MemberID // empty for guests
	DisplayName string
}

func (p Participant) IsGuest() bool {
	return p.MemberID == ""
}

// RosterEntry is one registered member of an event, as returned by the
// roster collaborator.
type RosterEntry struct {
	ID          sharedtypes.MemberID
	DisplayName string
}

// ScoreRecord is a persisted per-participant score row, the unit both
// standings paths operate on. HoleScores holds actual strokes and is nil
// unless all 18 holes were present at import time.
type ScoreRecord struct {
	Participant  Participant
	TotalStrokes int
	NetStrokes   *float64
	Handicap     int
	HoleScores   []int
	GroupNumber  *int
	TeamName     string
	Rank         *int
}

// EventMetadata captures event-level side data derived from an import: the
// PAR sequence and the team display mapping. A later import overwrites it
// wholesale, it is never merged field by field.
type EventMetadata struct {
	Par        [sharedtypes.HoleCount]int
	TeamNames  []string
	TeamColors map[string]string
}

// ImportReport is the per-batch outcome returned to the operator. For
// team-mode events TeamAggregate carries the match-play totals recomputed
// over the event's persisted scores after the batch landed.
type ImportReport struct {
	SuccessCount  int                             `json:"successCount"`
	FailedCount   int                             `json:"failedCount"`
	GuestCount    int                             `json:"guestCount"`
	Errors        []string                        `json:"errors"`
	TeamAggregate *standingstypes.MatchPlayResult `json:"teamAggregate,omitempty"`
}

// PreviewResult is what the operator sees before committing an import.
type PreviewResult struct {
	Scorecard *ParsedScorecard `json:"scorecard"`
	Unmatched []string         `json:"unmatched"`
}

// DeriveHandicap is the gross-minus-net derivation used on every persisted
// score. Without net strokes it defaults to 0.
func DeriveHandicap(totalStrokes int, netStrokes *float64) int {
	if netStrokes == nil {
		return 0
	}
	return int(math.Round(float64(totalStrokes) - *netStrokes))
}

// NormalizeName trims the whitespace the roster match is sensitive to.
// Matching itself stays case-sensitive.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
