package scorecardservice

import (
	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// ResolvedRow pairs a parsed row with the identity it will be persisted
// under.
type ResolvedRow struct {
	Row         scorecardtypes.PlayerRow
	Participant scorecardtypes.Participant
}

// ResolveParticipants maps each parsed name to a registered member by
// exact, trimmed, case-sensitive display-name match, or to a guest when no
// member matches. There is no fuzzy matching: consistent naming is the
// operator's job, and an unmatched name is always a guest, never a failure.
func ResolveParticipants(rows []scorecardtypes.PlayerRow, roster []scorecardtypes.RosterEntry) []ResolvedRow {
	index := make(map[string]sharedtypes.MemberID, len(roster))
	for _, entry := range roster {
		index[scorecardtypes.NormalizeName(entry.DisplayName)] = entry.ID
	}

	resolved := make([]ResolvedRow, 0, len(rows))
	for _, row := range rows {
		name := scorecardtypes.NormalizeName(row.Name)
		participant := scorecardtypes.Participant{DisplayName: name}
		if memberID, ok := index[name]; ok {
			participant.MemberID = memberID
		}
		resolved = append(resolved, ResolvedRow{Row: row, Participant: participant})
	}
	return resolved
}

// UnmatchedNames lists the parsed names that did not resolve to a member,
// for the operator preview.
func UnmatchedNames(resolved []ResolvedRow) []string {
	var unmatched []string
	for _, r := range resolved {
		if r.Participant.IsGuest() {
			unmatched = append(unmatched, r.Participant.DisplayName)
		}
	}
	return unmatched
}
