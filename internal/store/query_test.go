package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/schema"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

// dryRun returns a DB that builds statements without a server and records
// the last SQL it built.
func dryRun(t *testing.T) (*gorm.DB, *string) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test password=test dbname=test port=5432 sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	require.NoError(t, err)

	var last string
	capture := func(tx *gorm.DB) { last = tx.Statement.SQL.String() }
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", capture))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture_create", capture))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture_update", capture))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("test:capture_delete", capture))

	return db, &last
}

func TestSelectBuildsFiltersOrderAndLimit(t *testing.T) {
	db, sql := dryRun(t)
	events := schema.Default.Tables.Events

	_, err := From(db, events).
		Gte(events.Col.EventDate, time.Now()).
		Eq(events.Col.Location, nil).
		Order(events.Col.EventDate, false).
		Limit(5).
		Select(context.Background())
	require.NoError(t, err)

	assert.Contains(t, *sql, `FROM "public"."events"`)
	assert.Contains(t, *sql, `"event_date" >= `)
	assert.Contains(t, *sql, `"location" IS NULL`)
	assert.Contains(t, *sql, `ORDER BY "event_date" DESC`)
	assert.Contains(t, *sql, "LIMIT")
}

func TestInFilter(t *testing.T) {
	db, sql := dryRun(t)
	profiles := schema.Default.Tables.Profiles

	_, err := From(db, profiles).In(profiles.Col.UserID, uuid.New(), uuid.New()).Select(context.Background())
	require.NoError(t, err)
	assert.Contains(t, *sql, `"user_id" IN (`)
}

func TestInsertFillsServerDefaults(t *testing.T) {
	db, sql := dryRun(t)

	when := time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)
	row, err := From(db, schema.Default.Tables.Events).Insert(context.Background(), entity.EventInsert{
		Title:     "Chashak Final",
		EventDate: when,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)

	assert.Contains(t, *sql, `INSERT INTO "public"."events"`)
	assert.NotEqual(t, uuid.Nil, row.ID)
	assert.False(t, row.CreatedAt.IsZero())
	assert.False(t, row.UpdatedAt.IsZero())
	assert.Nil(t, row.Description)
	assert.Nil(t, row.Location)
	assert.Nil(t, row.ImageURL)
	assert.Equal(t, when, row.EventDate)
}

func TestInsertRejectsInvalidShape(t *testing.T) {
	db, sql := dryRun(t)

	_, err := From(db, schema.Default.Tables.Photos).Insert(context.Background(), entity.PhotoInsert{UploadedBy: uuid.New()})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, *sql)
}

func TestInsertIgnoreAddsOnConflict(t *testing.T) {
	db, sql := dryRun(t)

	_, err := From(db, schema.Default.Tables.UserRoles).InsertIgnore(context.Background(), entity.UserRoleInsert{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Contains(t, *sql, "ON CONFLICT DO NOTHING")
}

func TestUpdateWritesOnlySetColumns(t *testing.T) {
	db, sql := dryRun(t)
	players := schema.Default.Tables.Players

	_, err := From(db, players).
		Eq(players.Col.ID, uuid.New()).
		Update(context.Background(), entity.PlayerUpdate{Position: entity.Null[string]()})
	require.NoError(t, err)

	assert.Contains(t, *sql, `UPDATE "public"."players" SET`)
	assert.Contains(t, *sql, `"position"=`)
	assert.Contains(t, *sql, `"updated_at"=`)
	assert.NotContains(t, *sql, `"name"=`)
	assert.Contains(t, *sql, "RETURNING")
}

func TestEmptyUpdateDoesNotWrite(t *testing.T) {
	db, sql := dryRun(t)
	players := schema.Default.Tables.Players

	_, err := From(db, players).Eq(players.Col.ID, uuid.New()).Update(context.Background(), entity.PlayerUpdate{})
	require.NoError(t, err)

	assert.NotContains(t, *sql, "UPDATE")
	assert.Contains(t, *sql, `SELECT * FROM "public"."players"`)
}

func TestUpdateAndDeleteNeedFilter(t *testing.T) {
	db, _ := dryRun(t)

	_, err := From(db, schema.Default.Tables.Photos).Update(context.Background(), entity.PhotoUpdate{Title: entity.Null[string]()})
	require.ErrorIs(t, err, ErrMissingFilter)

	_, err = From(db, schema.Default.Tables.Photos).Delete(context.Background())
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestDeleteBuildsFilteredStatement(t *testing.T) {
	db, sql := dryRun(t)
	stats := schema.Default.Tables.PlayerStats

	_, err := From(db, stats).Eq(stats.Col.PlayerID, uuid.New()).Delete(context.Background())
	require.NoError(t, err)
	assert.Contains(t, *sql, `DELETE FROM "public"."player_stats" WHERE "player_id" = `)
}

func TestMapError(t *testing.T) {
	assert.ErrorIs(t, mapError("events", gorm.ErrRecordNotFound), apperror.ErrNotFound)
	assert.ErrorIs(t, mapError("profiles", gorm.ErrDuplicatedKey), apperror.ErrConflict)
	assert.ErrorIs(t, mapError("photos", gorm.ErrForeignKeyViolated), apperror.ErrInvalidInput)

	other := errors.New("connection reset")
	err := mapError("players", other)
	assert.ErrorIs(t, err, other)
	assert.Contains(t, err.Error(), "players")
}
