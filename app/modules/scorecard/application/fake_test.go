package scorecardservice

import (
	"context"
	"fmt"

	scorecarddb "github.com/greenside-club/scoring/app/modules/scorecard/infrastructure/repositories"
	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// ------------------------
// Fake score repository
// ------------------------

// FakeScoreRepository is a programmable stub for scorecarddb.Repository.
// By default it stores rows in maps keyed the same way the real upserts
// are, so idempotency is observable through row counts.
type FakeScoreRepository struct {
	trace []string

	MemberScores map[string]*scorecarddb.MemberScore
	GuestScores  map[string]*scorecarddb.GuestScore
	LastRanks    []scorecarddb.RankAssignment

	UpsertMemberScoreFunc func(ctx context.Context, score *scorecarddb.MemberScore) error
	UpsertGuestScoreFunc  func(ctx context.Context, score *scorecarddb.GuestScore) error
	ScoresForEventFunc    func(ctx context.Context, eventID sharedtypes.EventID) ([]scorecardtypes.ScoreRecord, error)
	UpdateRanksFunc       func(ctx context.Context, eventID sharedtypes.EventID, ranks []scorecarddb.RankAssignment) error
}

func NewFakeScoreRepository() *FakeScoreRepository {
	return &FakeScoreRepository{
		MemberScores: make(map[string]*scorecarddb.MemberScore),
		GuestScores:  make(map[string]*scorecarddb.GuestScore),
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScoreRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoreRepository) UpsertMemberScore(ctx context.Context, score *scorecarddb.MemberScore) error {
	f.record("UpsertMemberScore")
	if f.UpsertMemberScoreFunc != nil {
		return f.UpsertMemberScoreFunc(ctx, score)
	}
	f.MemberScores[score.EventID+"|"+score.MemberID] = score
	return nil
}

func (f *FakeScoreRepository) UpsertGuestScore(ctx context.Context, score *scorecarddb.GuestScore) error {
	f.record("UpsertGuestScore")
	if f.UpsertGuestScoreFunc != nil {
		return f.UpsertGuestScoreFunc(ctx, score)
	}
	f.GuestScores[score.EventID+"|"+score.DisplayName] = score
	return nil
}

func (f *FakeScoreRepository) ScoresForEvent(ctx context.Context, eventID sharedtypes.EventID) ([]scorecardtypes.ScoreRecord, error) {
	f.record("ScoresForEvent")
	if f.ScoresForEventFunc != nil {
		return f.ScoresForEventFunc(ctx, eventID)
	}

	var records []scorecardtypes.ScoreRecord
	for _, ms := range f.MemberScores {
		if ms.EventID != eventID.String() {
			continue
		}
		records = append(records, scorecardtypes.ScoreRecord{
			Participant:  scorecardtypes.Participant{MemberID: sharedtypes.MemberID(ms.MemberID), DisplayName: ms.DisplayName},
			TotalStrokes: ms.TotalStrokes,
			NetStrokes:   ms.NetStrokes,
			Handicap:     ms.Handicap,
			HoleScores:   ms.HoleScores,
			GroupNumber:  ms.GroupNumber,
			TeamName:     ms.TeamName,
			Rank:         ms.Rank,
		})
	}
	for _, gs := range f.GuestScores {
		if gs.EventID != eventID.String() {
			continue
		}
		records = append(records, scorecardtypes.ScoreRecord{
			Participant:  scorecardtypes.Participant{DisplayName: gs.DisplayName},
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

func (f *FakeScoreRepository) UpdateRanks(ctx context.Context, eventID sharedtypes.EventID, ranks []scorecarddb.RankAssignment) error {
	f.record("UpdateRanks")
	f.LastRanks = ranks
	if f.UpdateRanksFunc != nil {
		return f.UpdateRanksFunc(ctx, eventID, ranks)
	}
	return nil
}

// ------------------------
// Fake roster repository
// ------------------------

type FakeRosterRepository struct {
	Entries            []scorecardtypes.RosterEntry
	RosterForEventFunc func(ctx context.Context, eventID sharedtypes.EventID) ([]scorecardtypes.RosterEntry, error)
}

func (f *FakeRosterRepository) RosterForEvent(ctx context.Context, eventID sharedtypes.EventID) ([]scorecardtypes.RosterEntry, error) {
	if f.RosterForEventFunc != nil {
		return f.RosterForEventFunc(ctx, eventID)
	}
	return f.Entries, nil
}

// ------------------------
// Fake event metadata repository
// ------------------------

type FakeEventMetaRepository struct {
	Saved               map[string]*scorecardtypes.EventMetadata
	UpsertEventMetaFunc func(ctx context.Context, eventID sharedtypes.EventID, meta *scorecardtypes.EventMetadata) error
}

func NewFakeEventMetaRepository() *FakeEventMetaRepository {
	return &FakeEventMetaRepository{Saved: make(map[string]*scorecardtypes.EventMetadata)}
}

func (f *FakeEventMetaRepository) UpsertEventMeta(ctx context.Context, eventID sharedtypes.EventID, meta *scorecardtypes.EventMetadata) error {
	if f.UpsertEventMetaFunc != nil {
		return f.UpsertEventMetaFunc(ctx, eventID, meta)
	}
	f.Saved[eventID.String()] = meta
	return nil
}

func (f *FakeEventMetaRepository) EventMetaForEvent(_ context.Context, eventID sharedtypes.EventID) (*scorecardtypes.EventMetadata, error) {
	meta, ok := f.Saved[eventID.String()]
	if !ok {
		return nil, scorecarddb.ErrNotFound
	}
	return meta, nil
}

// ------------------------
// Fake event bus
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakeEventBus struct {
	Published   []publishedEvent
	PublishFunc func(ctx context.Context, topic string, payload any) error
}

func (f *FakeEventBus) Publish(ctx context.Context, topic string, payload any) error {
	f.Published = append(f.Published, publishedEvent{Topic: topic, Payload: payload})
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, topic, payload)
	}
	return nil
}

func (f *FakeEventBus) Close() error { return nil }

// failOn returns an upsert func that fails only for the named player.
func failOn(name string) func(context.Context, *scorecarddb.GuestScore) error {
	return func(_ context.Context, score *scorecarddb.GuestScore) error {
		if score.DisplayName == name {
			return fmt.Errorf("constraint violation for %s", name)
		}
		return nil
	}
}
