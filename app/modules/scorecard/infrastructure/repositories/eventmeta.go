package scorecarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// EventMetaDBImpl is the bun-backed EventMetaRepository.
type EventMetaDBImpl struct {
	DB *bun.DB
}

// UpsertEventMeta replaces the stored metadata wholesale. A later import
// that supplies new values overwrites, it never merges.
func (db *EventMetaDBImpl) UpsertEventMeta(ctx context.Context, eventID sharedtypes.EventID, meta *scorecardtypes.EventMetadata) error {
	row := &EventMeta{
		EventID:    eventID.String(),
		Par:        meta.Par[:],
		TeamNames:  meta.TeamNames,
		TeamColors: meta.TeamColors,
		UpdatedAt:  time.Now().UTC(),
	}

	_, err := db.DB.NewInsert().
		Model(row).
		On("CONFLICT (event_id) DO UPDATE").
		Set("par = EXCLUDED.par").
		Set("team_names = EXCLUDED.team_names").
		Set("team_colors = EXCLUDED.team_colors").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert event metadata for %s: %w", eventID, err)
	}
	return nil
}

func (db *EventMetaDBImpl) EventMetaForEvent(ctx context.Context, eventID sharedtypes.EventID) (*scorecardtypes.EventMetadata, error) {
	var row EventMeta
	err := db.DB.NewSelect().
		Model(&row).
		Where("event_id = ?", eventID.String()).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch event metadata for %s: %w", eventID, err)
	}

	meta := &scorecardtypes.EventMetadata{
		TeamNames:  row.TeamNames,
		TeamColors: row.TeamColors,
	}
	copy(meta.Par[:], row.Par)
	return meta, nil
}
