package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/schema"
	"github.com/atulpawar07/sp-cricket-hub/internal/store"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

type EventRepository interface {
	// List returns events newest first. Zero bounds and limit are ignored.
	List(ctx context.Context, from, to *time.Time, limit int) ([]entity.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (entity.Event, error)
	Create(ctx context.Context, in entity.EventInsert) (entity.Event, error)
	Update(ctx context.Context, id uuid.UUID, patch entity.EventUpdate) (entity.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

var events = schema.Default.Tables.Events

func (r *eventRepository) List(ctx context.Context, from, to *time.Time, limit int) ([]entity.Event, error) {
	q := store.From(r.db, events)
	if from != nil {
		q = q.Gte(events.Col.EventDate, *from)
	}
	if to != nil {
		q = q.Lte(events.Col.EventDate, *to)
	}
	return q.Order(events.Col.EventDate, false).Limit(limit).Select(ctx)
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (entity.Event, error) {
	return store.From(r.db, events).Eq(events.Col.ID, id).Single(ctx)
}

func (r *eventRepository) Create(ctx context.Context, in entity.EventInsert) (entity.Event, error) {
	return store.From(r.db, events).Insert(ctx, in)
}

func (r *eventRepository) Update(ctx context.Context, id uuid.UUID, patch entity.EventUpdate) (entity.Event, error) {
	return store.From(r.db, events).Eq(events.Col.ID, id).UpdateOne(ctx, patch)
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := store.From(r.db, events).Eq(events.Col.ID, id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *eventRepository) Count(ctx context.Context) (int64, error) {
	return store.From(r.db, events).Count(ctx)
}
