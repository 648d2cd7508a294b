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

type PlayerRepository interface {
	// List returns the squad ordered by name.
	List(ctx context.Context) ([]entity.Player, error)
	FindByID(ctx context.Context, id uuid.UUID) (entity.Player, error)
	Create(ctx context.Context, in entity.PlayerInsert) (entity.Player, error)
	Update(ctx context.Context, id uuid.UUID, patch entity.PlayerUpdate) (entity.Player, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

var players = schema.Default.Tables.Players

func (r *playerRepository) List(ctx context.Context) ([]entity.Player, error) {
	return store.From(r.db, players).Order(players.Col.Name, true).Select(ctx)
}

func (r *playerRepository) FindByID(ctx context.Context, id uuid.UUID) (entity.Player, error) {
	return store.From(r.db, players).Eq(players.Col.ID, id).Single(ctx)
}

func (r *playerRepository) Create(ctx context.Context, in entity.PlayerInsert) (entity.Player, error) {
	return store.From(r.db, players).Insert(ctx, in)
}

func (r *playerRepository) Update(ctx context.Context, id uuid.UUID, patch entity.PlayerUpdate) (entity.Player, error) {
	return store.From(r.db, players).Eq(players.Col.ID, id).UpdateOne(ctx, patch)
}

func (r *playerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := store.From(r.db, players).Eq(players.Col.ID, id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("player: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *playerRepository) Count(ctx context.Context) (int64, error) {
	return store.From(r.db, players).Count(ctx)
}
