// Package scorecardevents defines the topics and payloads published after
// scorecard operations.
package scorecardevents

import (
	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

const (
	// ScorecardImported is published once after a successful commit.
	ScorecardImported = "scorecard.imported"
	// StandingsComputed is published after a standings computation.
	StandingsComputed = "standings.computed"
)

// ScorecardImportedPayload summarizes one committed import batch.
type ScorecardImportedPayload struct {
	EventID       sharedtypes.EventID         `json:"eventId"`
	Report        scorecardtypes.ImportReport `json:"report"`
	TeamNames     []string                    `json:"teamNames,omitempty"`
	MatchPlay     bool                        `json:"matchPlay"`
	SourceFile    string                      `json:"sourceFile"`
	CorrelationID string                      `json:"correlationId,omitempty"`
}

// StandingsComputedPayload announces fresh standings for an event.
type StandingsComputedPayload struct {
	EventID sharedtypes.EventID `json:"eventId"`
	Mode    string              `json:"mode"` // "matchplay" or "strokeplay"
}
