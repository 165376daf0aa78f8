package scorecardservice

import (
	"context"
	"fmt"

	scorecardevents "github.com/greenside-club/scoring/app/modules/scorecard/events"
	scorecarddb "github.com/greenside-club/scoring/app/modules/scorecard/infrastructure/repositories"
	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	standingsservice "github.com/greenside-club/scoring/app/modules/standings/application"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
	"github.com/greenside-club/scoring/internal/observability/attr"
)

// Preview parses an uploaded scorecard and resolves names against the
// roster without writing anything. The operator inspects the result before
// committing; abandoning the import at this point leaves no trace.
func (s *ImportService) Preview(
	ctx context.Context,
	eventID sharedtypes.EventID,
	filename string,
	data []byte,
	mode scorecardtypes.TokenMode,
) (*scorecardtypes.PreviewResult, error) {
	var result *scorecardtypes.PreviewResult

	err := s.withOperation(ctx, "PreviewScorecard", eventID, func(ctx context.Context) error {
		scorecard, err := s.parse(filename, data, mode)
		if err != nil {
			return err
		}

		roster, err := s.roster.RosterForEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to load roster for event %s: %w", eventID, err)
		}

		resolved := ResolveParticipants(scorecard.Players, roster)
		result = &scorecardtypes.PreviewResult{
			Scorecard: scorecard,
			Unmatched: UnmatchedNames(resolved),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Commit parses the file again, resolves identities, persists event
// metadata, and upserts one score row per participant. One player's
// persistence failure is recorded and does not abort the batch.
func (s *ImportService) Commit(
	ctx context.Context,
	eventID sharedtypes.EventID,
	filename string,
	data []byte,
	mode scorecardtypes.TokenMode,
) (*scorecardtypes.ImportReport, error) {
	report := &scorecardtypes.ImportReport{Errors: []string{}}
	var meta *scorecardtypes.EventMetadata

	err := s.withOperation(ctx, "CommitScorecard", eventID, func(ctx context.Context) error {
		s.metrics.RecordImportAttempt(eventID.String())

		scorecard, err := s.parse(filename, data, mode)
		if err != nil {
			// Fatal parse errors abort before any write.
			return err
		}
		s.metrics.RecordRowsParsed(eventID.String(), len(scorecard.Players))
		s.metrics.RecordRowsRejected(eventID.String(), len(scorecard.Rejected))

		for _, rejected := range scorecard.Rejected {
			report.Errors = append(report.Errors,
				fmt.Sprintf("row %d (%s): %s", rejected.RowIndex+1, rejected.Name, rejected.Reason))
		}

		roster, err := s.roster.RosterForEvent(ctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to load roster for event %s: %w", eventID, err)
		}
		resolved := ResolveParticipants(scorecard.Players, roster)

		meta = DeriveEventMetadata(scorecard.Players, scorecard.Par)
		if err := s.meta.UpsertEventMeta(ctx, eventID, meta); err != nil {
			return fmt.Errorf("failed to persist event metadata for %s: %w", eventID, err)
		}

		for _, r := range resolved {
			if r.Participant.IsGuest() {
				report.GuestCount++
				s.metrics.RecordGuestResolved(eventID.String())
			}
			if err := s.persistRow(ctx, eventID, r); err != nil {
				report.FailedCount++
				report.Errors = append(report.Errors,
					fmt.Sprintf("%s: %v", r.Participant.DisplayName, err))
				s.metrics.RecordUpsertFailure(eventID.String())
				s.logger.ErrorContext(ctx, "Failed to persist score row",
					attr.EventID("event_id", eventID),
					attr.String("player", r.Participant.DisplayName),
					attr.Error(err),
				)
				continue
			}
			report.SuccessCount++
		}

		// Team-mode commits answer with the match-play totals over whatever
		// the event now holds, not just this batch. Persistence already
		// succeeded, so a read failure here degrades to a report without
		// the aggregate.
		if len(meta.TeamNames) > 0 {
			records, err := s.scores.ScoresForEvent(ctx, eventID)
			if err != nil {
				s.logger.WarnContext(ctx, "Failed to load scores for team aggregate",
					attr.EventID("event_id", eventID),
					attr.Error(err),
				)
			} else {
				report.TeamAggregate = standingsservice.ComputeMatchPlay(records)
			}
		}

		s.logger.InfoContext(ctx, "Scorecard import committed",
			attr.EventID("event_id", eventID),
			attr.Int("success_count", report.SuccessCount),
			attr.Int("failed_count", report.FailedCount),
			attr.Int("guest_count", report.GuestCount),
			attr.ExtractCorrelationID(ctx),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishImported(ctx, eventID, filename, report, meta)
	return report, nil
}

func (s *ImportService) parse(filename string, data []byte, mode scorecardtypes.TokenMode) (*scorecardtypes.ParsedScorecard, error) {
	parser, err := s.factory.GetParser(filename)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = scorecardtypes.TokenModeDiff
	}
	return parser.Parse(data, mode)
}

func (s *ImportService) persistRow(ctx context.Context, eventID sharedtypes.EventID, r ResolvedRow) error {
	handicap := scorecardtypes.DeriveHandicap(r.Row.TotalStrokes, r.Row.NetStrokes)
	holeScores := make([]int, sharedtypes.HoleCount)
	copy(holeScores, r.Row.ActualStrokes[:])
	group := r.Row.GroupNumber

	if r.Participant.IsGuest() {
		return s.scores.UpsertGuestScore(ctx, &scorecarddb.GuestScore{
			EventID:      eventID.String(),
			DisplayName:  r.Participant.DisplayName,
			TotalStrokes: r.Row.TotalStrokes,
			NetStrokes:   r.Row.NetStrokes,
			Handicap:     handicap,
			HoleScores:   holeScores,
			GroupNumber:  &group,
			TeamName:     r.Row.TeamName,
		})
	}

	return s.scores.UpsertMemberScore(ctx, &scorecarddb.MemberScore{
		EventID:      eventID.String(),
		MemberID:     r.Participant.MemberID.String(),
		DisplayName:  r.Participant.DisplayName,
		TotalStrokes: r.Row.TotalStrokes,
		NetStrokes:   r.Row.NetStrokes,
		Handicap:     handicap,
		HoleScores:   holeScores,
		GroupNumber:  &group,
		TeamName:     r.Row.TeamName,
	})
}

// publishImported is best effort: a broker hiccup must not fail a batch
// that already committed.
func (s *ImportService) publishImported(
	ctx context.Context,
	eventID sharedtypes.EventID,
	filename string,
	report *scorecardtypes.ImportReport,
	meta *scorecardtypes.EventMetadata,
) {
	payload := scorecardevents.ScorecardImportedPayload{
		EventID:       eventID,
		Report:        *report,
		SourceFile:    filename,
		CorrelationID: attr.CorrelationID(ctx),
	}
	if meta != nil {
		payload.TeamNames = meta.TeamNames
		payload.MatchPlay = len(meta.TeamNames) > 0
	}

	if err := s.eventBus.Publish(ctx, scorecardevents.ScorecardImported, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish import event",
			attr.EventID("event_id", eventID),
			attr.Error(err),
		)
	}
}
