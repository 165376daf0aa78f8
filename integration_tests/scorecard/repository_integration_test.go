package scorecardintegration

import (
	"context"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	scorecarddb "github.com/greenside-club/scoring/app/modules/scorecard/infrastructure/repositories"
	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
	"github.com/greenside-club/scoring/config"
	"github.com/greenside-club/scoring/integration_tests/containers"
	"github.com/greenside-club/scoring/internal/bundb"
)

const eventID = sharedtypes.EventID("event-2026-spring")

func setupDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, dsn, err := containers.SetupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	db, err := bundb.NewDB(ctx, config.PostgresConfig{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, bundb.CreateSchema(ctx, db))
	return db
}

func fullRound(stroke int) []int {
	holes := make([]int, sharedtypes.HoleCount)
	for i := range holes {
		holes[i] = stroke
	}
	return holes
}

func TestScoreRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db := setupDB(t)
	ctx := context.Background()
	repo := &scorecarddb.ScoreDBImpl{DB: db}
	group := 1

	t.Run("member upsert is idempotent by event and member", func(t *testing.T) {
		first := &scorecarddb.MemberScore{
			EventID:      eventID.String(),
			MemberID:     "m-001",
			DisplayName:  "Alice Chen",
			TotalStrokes: 74,
			HoleScores:   fullRound(4),
			GroupNumber:  &group,
			TeamName:     "RED",
		}
		require.NoError(t, repo.UpsertMemberScore(ctx, first))

		second := &scorecarddb.MemberScore{
			EventID:      eventID.String(),
			MemberID:     "m-001",
			DisplayName:  "Alice Chen",
			TotalStrokes: 71,
			HoleScores:   fullRound(4),
			GroupNumber:  &group,
			TeamName:     "RED",
		}
		require.NoError(t, repo.UpsertMemberScore(ctx, second))

		count, err := db.NewSelect().Model((*scorecarddb.MemberScore)(nil)).
			Where("event_id = ?", eventID.String()).
			Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, count)

		var stored scorecarddb.MemberScore
		err = db.NewSelect().Model(&stored).
			Where("event_id = ? AND member_id = ?", eventID.String(), "m-001").
			Scan(ctx)
		require.NoError(t, err)
		require.Equal(t, 71, stored.TotalStrokes)
	})

	t.Run("guest upsert is idempotent by event and name", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			guest := &scorecarddb.GuestScore{
				EventID:      eventID.String(),
				DisplayName:  "Walk-in Guest",
				TotalStrokes: 80 - i,
				HoleScores:   fullRound(5),
				GroupNumber:  &group,
				TeamName:     "BLUE",
			}
			require.NoError(t, repo.UpsertGuestScore(ctx, guest))
		}

		count, err := db.NewSelect().Model((*scorecarddb.GuestScore)(nil)).
			Where("event_id = ?", eventID.String()).
			Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("scores for event merges members and guests", func(t *testing.T) {
		records, err := repo.ScoresForEvent(ctx, eventID)
		require.NoError(t, err)
		require.Len(t, records, 2)

		byName := make(map[string]scorecardtypes.ScoreRecord, len(records))
		for _, r := range records {
			byName[r.Participant.DisplayName] = r
		}
		require.False(t, byName["Alice Chen"].Participant.IsGuest())
		require.True(t, byName["Walk-in Guest"].Participant.IsGuest())
		require.Equal(t, 71, byName["Alice Chen"].TotalStrokes)
	})

	t.Run("update ranks writes back onto score rows", func(t *testing.T) {
		assignments := []scorecarddb.RankAssignment{
			{Participant: scorecardtypes.Participant{MemberID: "m-001", DisplayName: "Alice Chen"}, Rank: 1},
			{Participant: scorecardtypes.Participant{DisplayName: "Walk-in Guest"}, Rank: 2},
		}
		require.NoError(t, repo.UpdateRanks(ctx, eventID, assignments))

		records, err := repo.ScoresForEvent(ctx, eventID)
		require.NoError(t, err)
		for _, r := range records {
			require.NotNil(t, r.Rank)
			if r.Participant.DisplayName == "Alice Chen" {
				require.Equal(t, 1, *r.Rank)
			}
		}
	})
}

func TestEventMetaRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db := setupDB(t)
	ctx := context.Background()
	repo := &scorecarddb.EventMetaDBImpl{DB: db}

	_, err := repo.EventMetaForEvent(ctx, eventID)
	require.ErrorIs(t, err, scorecarddb.ErrNotFound)

	var par [sharedtypes.HoleCount]int
	for i := range par {
		par[i] = 4
	}
	meta := &scorecardtypes.EventMetadata{
		Par:        par,
		TeamNames:  []string{"RED", "BLUE"},
		TeamColors: map[string]string{"RED": "#e53935", "BLUE": "#1e88e5"},
	}
	require.NoError(t, repo.UpsertEventMeta(ctx, eventID, meta))

	stored, err := repo.EventMetaForEvent(ctx, eventID)
	require.NoError(t, err)
	require.Equal(t, meta.TeamNames, stored.TeamNames)
	require.Equal(t, meta.TeamColors, stored.TeamColors)
	require.Equal(t, par, stored.Par)

	// A later import replaces the mapping wholesale.
	replacement := &scorecardtypes.EventMetadata{
		Par:        par,
		TeamNames:  []string{"GREEN"},
		TeamColors: map[string]string{"GREEN": "#43a047"},
	}
	require.NoError(t, repo.UpsertEventMeta(ctx, eventID, replacement))

	stored, err = repo.EventMetaForEvent(ctx, eventID)
	require.NoError(t, err)
	require.Equal(t, []string{"GREEN"}, stored.TeamNames)
	require.NotContains(t, stored.TeamColors, "RED")
}
