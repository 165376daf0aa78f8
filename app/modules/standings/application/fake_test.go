package standingsservice

import (
	"context"

	scorecarddb "github.com/greenside-club/scoring/app/modules/scorecard/infrastructure/repositories"
	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// FakeScoreRepository is a programmable stub for scorecarddb.Repository.
type FakeScoreRepository struct {
	Records   []scorecardtypes.ScoreRecord
	LastRanks []scorecarddb.RankAssignment

	ScoresForEventFunc func(ctx context.Context, eventID sharedtypes.EventID) ([]scorecardtypes.ScoreRecord, error)
	UpdateRanksFunc    func(ctx context.Context, eventID sharedtypes.EventID, ranks []scorecarddb.RankAssignment) error
}

func (f *FakeScoreRepository) UpsertMemberScore(context.Context, *scorecarddb.MemberScore) error {
	return nil
}

func (f *FakeScoreRepository) UpsertGuestScore(context.Context, *scorecarddb.GuestScore) error {
	return nil
}

func (f *FakeScoreRepository) ScoresForEvent(ctx context.Context, eventID sharedtypes.EventID) ([]scorecardtypes.ScoreRecord, error) {
	if f.ScoresForEventFunc != nil {
		return f.ScoresForEventFunc(ctx, eventID)
	}
	return f.Records, nil
}

func (f *FakeScoreRepository) UpdateRanks(ctx context.Context, eventID sharedtypes.EventID, ranks []scorecarddb.RankAssignment) error {
	f.LastRanks = ranks
	if f.UpdateRanksFunc != nil {
		return f.UpdateRanksFunc(ctx, eventID, ranks)
	}
	return nil
}

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
