package eventbusintegration

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	nc "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	scorecardevents "github.com/greenside-club/scoring/app/modules/scorecard/events"
	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
	"github.com/greenside-club/scoring/integration_tests/containers"
	"github.com/greenside-club/scoring/internal/eventbus"
)

func TestJetStreamEventBus_PublishesToProvisionedStream(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, natsURL, err := containers.SetupNatsContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus, err := eventbus.NewJetStreamEventBus(natsURL, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })

	payload := scorecardevents.ScorecardImportedPayload{
		EventID:    sharedtypes.EventID("event-2026-spring"),
		Report:     scorecardtypes.ImportReport{SuccessCount: 3, GuestCount: 1, Errors: []string{}},
		TeamNames:  []string{"RED", "BLUE"},
		MatchPlay:  true,
		SourceFile: "scores.xlsx",
	}
	require.NoError(t, bus.Publish(ctx, scorecardevents.ScorecardImported, payload))

	conn, err := nc.Connect(natsURL)
	require.NoError(t, err)
	t.Cleanup(conn.Close)

	js, err := conn.JetStream()
	require.NoError(t, err)

	// The bus provisions a stream named after the topic's first segment.
	info, err := js.StreamInfo("scorecard")
	require.NoError(t, err)
	require.Equal(t, uint64(1), info.State.Msgs)

	raw, err := js.GetMsg("scorecard", 1)
	require.NoError(t, err)
	require.Equal(t, scorecardevents.ScorecardImported, raw.Subject)

	var received scorecardevents.ScorecardImportedPayload
	require.NoError(t, json.Unmarshal(raw.Data, &received))
	require.Equal(t, payload.EventID, received.EventID)
	require.Equal(t, 3, received.Report.SuccessCount)
	require.Equal(t, []string{"RED", "BLUE"}, received.TeamNames)
}
