package scorecarddb

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// ScoreDBImpl is the bun-backed Repository.
type ScoreDBImpl struct {
	DB *bun.DB
}

func (db *ScoreDBImpl) UpsertMemberScore(ctx context.Context, score *MemberScore) error {
	score.UpdatedAt = time.Now().UTC()

	_, err := db.DB.NewInsert().
		Model(score).
		On("CONFLICT (event_id, member_id) DO UPDATE").
		Set("display_name = EXCLUDED.display_name").
		Set("total_strokes = EXCLUDED.total_strokes").
		Set("net_strokes = EXCLUDED.net_strokes").
		Set("handicap = EXCLUDED.handicap").
		Set("hole_scores = EXCLUDED.hole_scores").
		Set("group_number = EXCLUDED.group_number").
		Set("team_name = EXCLUDED.team_name").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert member score for %s in event %s: %w", score.MemberID, score.EventID, err)
	}
	return nil
}

func (db *ScoreDBImpl) UpsertGuestScore(ctx context.Context, score *GuestScore) error {
	score.UpdatedAt = time.Now().UTC()

	_, err := db.DB.NewInsert().
		Model(score).
		On("CONFLICT (event_id, display_name) DO UPDATE").
		Set("total_strokes = EXCLUDED.total_strokes").
		Set("net_strokes = EXCLUDED.net_strokes").
		Set("handicap = EXCLUDED.handicap").
		Set("hole_scores = EXCLUDED.hole_scores").
		Set("group_number = EXCLUDED.group_number").
		Set("team_name = EXCLUDED.team_name").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert guest score for %q in event %s: %w", score.DisplayName, score.EventID, err)
	}
	return nil
}

// ScoresForEvent merges the member and guest score tables into the record
// shape the standings engine consumes.
func (db *ScoreDBImpl) ScoresForEvent(ctx context.Context, eventID sharedtypes.EventID) ([]scorecardtypes.ScoreRecord, error) {
	var memberScores []MemberScore
	err := db.DB.NewSelect().
		Model(&memberScores).
		Where("event_id = ?", eventID.String()).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member scores for event %s: %w", eventID, err)
	}

	var guestScores []GuestScore
	err = db.DB.NewSelect().
		Model(&guestScores).
		Where("event_id = ?", eventID.String()).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guest scores for event %s: %w", eventID, err)
	}

	records := make([]scorecardtypes.ScoreRecord, 0, len(memberScores)+len(guestScores))
	for i := range memberScores {
		ms := &memberScores[i]
		records = append(records, scorecardtypes.ScoreRecord{
			Participant: scorecardtypes.Participant{
				MemberID:    sharedtypes.MemberID(ms.MemberID),
				DisplayName: ms.DisplayName,
			},
			TotalStrokes: ms.TotalStrokes,
			NetStrokes:   ms.NetStrokes,
			Handicap:     ms.Handicap,
			HoleScores:   ms.HoleScores,
			GroupNumber:  ms.GroupNumber,
			TeamName:     ms.TeamName,
			Rank:         ms.Rank,
		})
	}
	for i := range guestScores {
		gs := &guestScores[i]
		records = append(records, scorecardtypes.ScoreRecord{
			Participant: scorecardtypes.Participant{
				DisplayName: gs.DisplayName,
			},
			TotalStrokes: gs.TotalStrokes,
			NetStrokes:   gs.NetStrokes,
			Handicap:     gs.Handicap,
			HoleScores:   gs.HoleScores,
			GroupNumber:  gs.GroupNumber,
			TeamName:     gs.TeamName,
			Rank:         gs.Rank,
		})
	}
	return records, nil
}

// UpdateRanks writes stroke-play ranks back onto existing rows. A rank for
// a row that no longer exists is skipped, not an error.
func (db *ScoreDBImpl) UpdateRanks(ctx context.Context, eventID sharedtypes.EventID, ranks []RankAssignment) error {
	for _, ra := range ranks {
		var err error
		if ra.Participant.IsGuest() {
			_, err = db.DB.NewUpdate().
				Model((*GuestScore)(nil)).
				Set("rank = ?", ra.Rank).
				Where("event_id = ? AND display_name = ?", eventID.String(), ra.Participant.DisplayName).
				Exec(ctx)
		} else {
			_, err = db.DB.NewUpdate().
				Model((*MemberScore)(nil)).
				Set("rank = ?", ra.Rank).
				Where("event_id = ? AND member_id = ?", eventID.String(), ra.Participant.MemberID.String()).
				Exec(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to update rank for event %s: %w", eventID, err)
		}
	}
	return nil
}
