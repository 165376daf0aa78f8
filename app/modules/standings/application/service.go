package standingsservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	scorecardevents "github.com/greenside-club/scoring/app/modules/scorecard/events"
	scorecarddb "github.com/greenside-club/scoring/app/modules/scorecard/infrastructure/repositories"
	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/modules/standings/standingstypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
	"github.com/greenside-club/scoring/internal/eventbus"
	"github.com/greenside-club/scoring/internal/observability/attr"
	"github.com/greenside-club/scoring/internal/observability/metrics"
)

// StandingsService computes match-play and stroke-play standings over an
// event's persisted scores.
type StandingsService struct {
	scores   scorecarddb.Repository
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  metrics.StandingsMetrics
	tracer   trace.Tracer
}

// NewStandingsService creates a new StandingsService.
func NewStandingsService(
	scores scorecarddb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	standingsMetrics metrics.StandingsMetrics,
	tracer trace.Tracer,
) *StandingsService {
	return &StandingsService{
		scores:   scores,
		eventBus: eventBus,
		logger:   logger,
		metrics:  standingsMetrics,
		tracer:   tracer,
	}
}

// MatchPlayStandings loads every persisted score for the event and runs the
// match-play engine over the eligible population.
func (s *StandingsService) MatchPlayStandings(ctx context.Context, eventID sharedtypes.EventID) (*standingstypes.MatchPlayResult, error) {
	ctx, span := s.tracer.Start(ctx, "MatchPlayStandings", trace.WithAttributes(
		attribute.String("event_id", eventID.String()),
	))
	defer span.End()

	s.metrics.RecordComputeAttempt(eventID.String(), "matchplay")
	start := time.Now()
	defer func() {
		s.metrics.RecordComputeDuration(eventID.String(), "matchplay", time.Since(start))
	}()

	records, err := s.scores.ScoresForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores for event %s: %w", eventID, err)
	}

	result := ComputeMatchPlay(records)

	s.logger.InfoContext(ctx, "Match play standings computed",
		attr.EventID("event_id", eventID),
		attr.Int("group_count", len(result.PerGroup)),
		attr.Int("team_count", len(result.TotalScores)),
	)

	s.publishComputed(ctx, eventID, "matchplay")
	return result, nil
}

// StrokePlayStandings ranks the event's persisted scores and writes the
// ranks back onto the score rows.
func (s *StandingsService) StrokePlayStandings(ctx context.Context, eventID sharedtypes.EventID) ([]scorecardtypes.ScoreRecord, error) {
	ctx, span := s.tracer.Start(ctx, "StrokePlayStandings", trace.WithAttributes(
		attribute.String("event_id", eventID.String()),
	))
	defer span.End()

	s.metrics.RecordComputeAttempt(eventID.String(), "strokeplay")
	start := time.Now()
	defer func() {
		s.metrics.RecordComputeDuration(eventID.String(), "strokeplay", time.Since(start))
	}()

	records, err := s.scores.ScoresForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores for event %s: %w", eventID, err)
	}

	ranked := RankStrokePlay(records)

	assignments := make([]scorecarddb.RankAssignment, 0, len(ranked))
	for _, r := range ranked {
		assignments = append(assignments, scorecarddb.RankAssignment{
			Participant: r.Participant,
			Rank:        *r.Rank,
		})
	}
	if err := s.scores.UpdateRanks(ctx, eventID, assignments); err != nil {
		return nil, fmt.Errorf("failed to persist ranks for event %s: %w", eventID, err)
	}

	s.logger.InfoContext(ctx, "Stroke play standings computed",
		attr.EventID("event_id", eventID),
		attr.Int("player_count", len(ranked)),
	)

	s.publishComputed(ctx, eventID, "strokeplay")
	return ranked, nil
}

func (s *StandingsService) publishComputed(ctx context.Context, eventID sharedtypes.EventID, mode string) {
	payload := scorecardevents.StandingsComputedPayload{EventID: eventID, Mode: mode}
	if err := s.eventBus.Publish(ctx, scorecardevents.StandingsComputed, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish standings event",
			attr.EventID("event_id", eventID),
			attr.String("mode", mode),
			attr.Error(err),
		)
	}
}
