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

type PhotoRepository interface {
	// List returns photos newest first, optionally only those of one event.
	List(ctx context.Context, eventID *uuid.UUID, limit int) ([]entity.Photo, error)
	FindByID(ctx context.Context, id uuid.UUID) (entity.Photo, error)
	Create(ctx context.Context, in entity.PhotoInsert) (entity.Photo, error)
	Update(ctx context.Context, id uuid.UUID, patch entity.PhotoUpdate) (entity.Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

var photos = schema.Default.Tables.Photos

func (r *photoRepository) List(ctx context.Context, eventID *uuid.UUID, limit int) ([]entity.Photo, error) {
	q := store.From(r.db, photos)
	if eventID != nil {
		q = q.Eq(photos.Col.EventID, *eventID)
	}
	return q.Order(photos.Col.CreatedAt, false).Limit(limit).Select(ctx)
}

func (r *photoRepository) FindByID(ctx context.Context, id uuid.UUID) (entity.Photo, error) {
	return store.From(r.db, photos).Eq(photos.Col.ID, id).Single(ctx)
}

func (r *photoRepository) Create(ctx context.Context, in entity.PhotoInsert) (entity.Photo, error) {
	return store.From(r.db, photos).Insert(ctx, in)
}

func (r *photoRepository) Update(ctx context.Context, id uuid.UUID, patch entity.PhotoUpdate) (entity.Photo, error) {
	return store.From(r.db, photos).Eq(photos.Col.ID, id).UpdateOne(ctx, patch)
}

func (r *photoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := store.From(r.db, photos).Eq(photos.Col.ID, id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("photo: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *photoRepository) Count(ctx context.Context) (int64, error) {
	return store.From(r.db, photos).Count(ctx)
}
