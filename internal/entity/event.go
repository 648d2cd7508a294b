package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	EventDate   time.Time `gorm:"type:timestamptz;not null;index" json:"event_date"`
	Location    *string   `gorm:"type:text" json:"location"`
	ImageURL    *string   `gorm:"type:text" json:"image_url"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID, err = uuid.NewV7()
	}
	return
}

type EventInsert struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	EventDate   time.Time  `json:"event_date"`
	Location    *string    `json:"location,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (in EventInsert) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("event title is required")
	}
	if in.EventDate.IsZero() {
		return invalid("event date is required")
	}
	if in.CreatedBy == uuid.Nil {
		return invalid("event creator is required")
	}
	return nil
}

func (in EventInsert) Row() Event {
	return Event{
		ID:          uuidOrNil(in.ID),
		Title:       in.Title,
		Description: in.Description,
		EventDate:   in.EventDate,
		Location:    in.Location,
		ImageURL:    in.ImageURL,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   timeOrZero(in.CreatedAt),
		UpdatedAt:   timeOrZero(in.UpdatedAt),
	}
}

type EventUpdate struct {
	Title       Opt[string]    `json:"title"`
	Description Opt[*string]   `json:"description"`
	EventDate   Opt[time.Time] `json:"event_date"`
	Location    Opt[*string]   `json:"location"`
	ImageURL    Opt[*string]   `json:"image_url"`
	CreatedBy   Opt[uuid.UUID] `json:"created_by"`
	CreatedAt   Opt[time.Time] `json:"created_at"`
	UpdatedAt   Opt[time.Time] `json:"updated_at"`
}

func (u EventUpdate) Validate() error {
	if u.Title.Set && strings.TrimSpace(u.Title.Value) == "" {
		return invalid("event title cannot be empty")
	}
	if u.EventDate.Set && u.EventDate.Value.IsZero() {
		return invalid("event date cannot be empty")
	}
	return errors.Join(
		notNullID(u.CreatedBy, "created_by"),
		notNullTime(u.CreatedAt, "created_at"),
		notNullTime(u.UpdatedAt, "updated_at"),
	)
}

func (u EventUpdate) Columns() map[string]any {
	cols := map[string]any{}
	u.Title.put(cols, "title")
	u.Description.put(cols, "description")
	u.EventDate.put(cols, "event_date")
	u.Location.put(cols, "location")
	u.ImageURL.put(cols, "image_url")
	u.CreatedBy.put(cols, "created_by")
	u.CreatedAt.put(cols, "created_at")
	u.UpdatedAt.put(cols, "updated_at")
	return cols
}

func (u EventUpdate) Apply(e *Event) {
	u.Title.apply(&e.Title)
	u.Description.apply(&e.Description)
	u.EventDate.apply(&e.EventDate)
	u.Location.apply(&e.Location)
	u.ImageURL.apply(&e.ImageURL)
	u.CreatedBy.apply(&e.CreatedBy)
	u.CreatedAt.apply(&e.CreatedAt)
	u.UpdatedAt.apply(&e.UpdatedAt)
}
