package scorecarddb

import (
	"time"

	"github.com/uptrace/bun"
)

// MemberScore is the persisted score row for a registered member. One row
// per (event_id, member_id); imports upsert against that key.
type MemberScore struct {
	bun.BaseModel `bun:"table:member_scores,alias:ms"`

	ID           int64     `bun:"id,pk,autoincrement"`
	EventID      string    `bun:"event_id,notnull,unique:member_scores_event_member"`
	MemberID     string    `bun:"member_id,notnull,unique:member_scores_event_member"`
	DisplayName  string    `bun:"display_name,notnull"`
	TotalStrokes int       `bun:"total_strokes,notnull"`
	NetStrokes   *float64  `bun:"net_strokes"`
	Handicap     int       `bun:"handicap,notnull,default:0"`
	HoleScores   []int     `bun:"hole_scores,array"`
	GroupNumber  *int      `bun:"group_number"`
	TeamName     string    `bun:"team_name"`
	Rank         *int      `bun:"rank"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// GuestScore is the persisted score row for a walk-in guest, keyed by
// display name within the event.
type GuestScore struct {
	bun.BaseModel `bun:"table:guest_scores,alias:gs"`

	ID           int64     `bun:"id,pk,autoincrement"`
	EventID      string    `bun:"event_id,notnull,unique:guest_scores_event_name"`
	DisplayName  string    `bun:"display_name,notnull,unique:guest_scores_event_name"`
	TotalStrokes int       `bun:"total_strokes,notnull"`
	NetStrokes   *float64  `bun:"net_strokes"`
	Handicap     int       `bun:"handicap,notnull,default:0"`
	HoleScores   []int     `bun:"hole_scores,array"`
	GroupNumber  *int      `bun:"group_number"`
	TeamName     string    `bun:"team_name"`
	Rank         *int      `bun:"rank"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// RosterRow mirrors the registration system's view of who signed up for an
// event. This service only ever reads it.
type RosterRow struct {
	bun.BaseModel `bun:"table:event_roster,alias:er"`

	EventID     string `bun:"event_id,pk"`
	MemberID    string `bun:"member_id,pk"`
	DisplayName string `bun:"display_name,notnull"`
}

// EventMeta stores the event-level side data derived from an import: PAR
// values and the team display mapping.
type EventMeta struct {
	bun.BaseModel `bun:"table:event_meta,alias:em"`

	EventID    string            `bun:"event_id,pk"`
	Par        []int             `bun:"par,array"`
	TeamNames  []string          `bun:"team_names,array"`
	TeamColors map[string]string `bun:"team_colors,type:jsonb"`
	UpdatedAt  time.Time         `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
