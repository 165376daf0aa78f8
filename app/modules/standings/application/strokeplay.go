package standingsservice

import (
	"sort"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
)

// RankStrokePlay sorts persisted scores by total strokes ascending, breaking
// ties by net strokes where present, and assigns sequential ranks. The input
// is not mutated.
func RankStrokePlay(records []scorecardtypes.ScoreRecord) []scorecardtypes.ScoreRecord {
	ranked := make([]scorecardtypes.ScoreRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalStrokes != b.TotalStrokes {
			return a.TotalStrokes < b.TotalStrokes
		}
		switch {
		case a.NetStrokes != nil && b.NetStrokes != nil:
			return *a.NetStrokes < *b.NetStrokes
		case a.NetStrokes != nil:
			return true
		default:
			return false
		}
	})

	for i := range ranked {
		rank := i + 1
		ranked[i].Rank = &rank
	}
	return ranked
}
