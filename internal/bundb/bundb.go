// Package bundb builds the bun database handle and owns schema setup for
// the score, roster and metadata tables.
package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	scorecarddb "github.com/greenside-club/scoring/app/modules/scorecard/infrastructure/repositories"
	"github.com/greenside-club/scoring/config"
)

// NewDB connects to Postgres and returns the bun handle.
func NewDB(ctx context.Context, cfg config.PostgresConfig) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// CreateSchema creates the module's tables when missing. The roster table
// belongs to the registration system; it is created here only so local and
// test environments work standalone.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*scorecarddb.MemberScore)(nil),
		(*scorecarddb.GuestScore)(nil),
		(*scorecarddb.RosterRow)(nil),
		(*scorecarddb.EventMeta)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}
	return nil
}
