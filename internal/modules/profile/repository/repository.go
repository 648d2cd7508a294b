package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/schema"
	"github.com/atulpawar07/sp-cricket-hub/internal/store"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (entity.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (entity.Profile, error)
	ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]entity.Profile, error)
	List(ctx context.Context) ([]entity.Profile, error)
	UpdateByUserID(ctx context.Context, userID uuid.UUID, patch entity.ProfileUpdate) (entity.Profile, error)
	Count(ctx context.Context) (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

var profiles = schema.Default.Tables.Profiles

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (entity.Profile, error) {
	return store.From(r.db, profiles).Eq(profiles.Col.ID, id).Single(ctx)
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (entity.Profile, error) {
	return store.From(r.db, profiles).Eq(profiles.Col.UserID, userID).Single(ctx)
}

func (r *profileRepository) ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]entity.Profile, error) {
	if len(userIDs) == 0 {
		return []entity.Profile{}, nil
	}
	ids := make([]any, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id
	}
	return store.From(r.db, profiles).In(profiles.Col.UserID, ids...).Select(ctx)
}

func (r *profileRepository) List(ctx context.Context) ([]entity.Profile, error) {
	return store.From(r.db, profiles).Order(profiles.Col.FullName, true).Select(ctx)
}

func (r *profileRepository) UpdateByUserID(ctx context.Context, userID uuid.UUID, patch entity.ProfileUpdate) (entity.Profile, error) {
	return store.From(r.db, profiles).Eq(profiles.Col.UserID, userID).UpdateOne(ctx, patch)
}

func (r *profileRepository) Count(ctx context.Context) (int64, error) {
	return store.From(r.db, profiles).Count(ctx)
}
