package scorecarddb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// RosterDBImpl reads the registration system's event roster.
type RosterDBImpl struct {
	DB *bun.DB
}

func (db *RosterDBImpl) RosterForEvent(ctx context.Context, eventID sharedtypes.EventID) ([]scorecardtypes.RosterEntry, error) {
	var rows []RosterRow
	err := db.DB.NewSelect().
		Model(&rows).
		Where("event_id = ?", eventID.String()).
		Order("display_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster for event %s: %w", eventID, err)
	}

	entries := make([]scorecardtypes.RosterEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, scorecardtypes.RosterEntry{
			ID:          sharedtypes.MemberID(row.MemberID),
			DisplayName: row.DisplayName,
		})
	}
	return entries, nil
}
