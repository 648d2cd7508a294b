package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/schema"
	"github.com/atulpawar07/sp-cricket-hub/internal/store"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

type PlayerStatRepository interface {
	// ListByPlayer returns a player's match lines, latest match first.
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]entity.PlayerStat, error)
	FindByID(ctx context.Context, id uuid.UUID) (entity.PlayerStat, error)
	Create(ctx context.Context, in entity.PlayerStatInsert) (entity.PlayerStat, error)
	Update(ctx context.Context, id uuid.UUID, patch entity.PlayerStatUpdate) (entity.PlayerStat, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type playerStatRepository struct {
	db *gorm.DB
}

func NewPlayerStatRepository(db *gorm.DB) PlayerStatRepository {
	return &playerStatRepository{db: db}
}

var stats = schema.Default.Tables.PlayerStats

func (r *playerStatRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]entity.PlayerStat, error) {
	return store.From(r.db, stats).
		Eq(stats.Col.PlayerID, playerID).
		Order(stats.Col.MatchDate, false).
		Order(stats.Col.CreatedAt, false).
		Select(ctx)
}

func (r *playerStatRepository) FindByID(ctx context.Context, id uuid.UUID) (entity.PlayerStat, error) {
	return store.From(r.db, stats).Eq(stats.Col.ID, id).Single(ctx)
}

func (r *playerStatRepository) Create(ctx context.Context, in entity.PlayerStatInsert) (entity.PlayerStat, error) {
	return store.From(r.db, stats).Insert(ctx, in)
}

func (r *playerStatRepository) Update(ctx context.Context, id uuid.UUID, patch entity.PlayerStatUpdate) (entity.PlayerStat, error) {
	return store.From(r.db, stats).Eq(stats.Col.ID, id).UpdateOne(ctx, patch)
}

func (r *playerStatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := store.From(r.db, stats).Eq(stats.Col.ID, id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("player stat: %w", apperror.ErrNotFound)
	}
	return nil
}
