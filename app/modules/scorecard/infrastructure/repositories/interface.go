package scorecarddb

import (
	"context"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// RankAssignment carries one stroke-play rank back to storage.
type RankAssignment struct {
	Participant scorecardtypes.Participant
	Rank        int
}

// Repository is the score persistence adapter: idempotent upserts keyed by
// (event, identity) plus the merged read path the standings engine uses.
type Repository interface {
	UpsertMemberScore(ctx context.Context, score *MemberScore) error
	UpsertGuestScore(ctx context.Context, score *GuestScore) error
	ScoresForEvent(ctx context.Context, eventID sharedtypes.EventID) ([]scorecardtypes.ScoreRecord, error)
	UpdateRanks(ctx context.Context, eventID sharedtypes.EventID, ranks []RankAssignment) error
}

// RosterRepository reads the registration system's roster for an event.
type RosterRepository interface {
	RosterForEvent(ctx context.Context, eventID sharedtypes.EventID) ([]scorecardtypes.RosterEntry, error)
}

// EventMetaRepository persists event-level metadata derived from imports.
type EventMetaRepository interface {
	UpsertEventMeta(ctx context.Context, eventID sharedtypes.EventID, meta *scorecardtypes.EventMetadata) error
	EventMetaForEvent(ctx context.Context, eventID sharedtypes.EventID) (*scorecardtypes.EventMetadata, error)
}
