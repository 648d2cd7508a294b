package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Photo struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       *string    `gorm:"type:text" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	ImageURL    string     `gorm:"type:text;not null" json:"image_url"`
	EventID     *uuid.UUID `gorm:"type:uuid;index" json:"event_id"`
	UploadedBy  uuid.UUID  `gorm:"type:uuid;not null" json:"uploaded_by"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Photo) TableName() string {
	return "photos"
}

func (p *Photo) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

type PhotoInsert struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	ImageURL    string     `json:"image_url"`
	EventID     *uuid.UUID `json:"event_id,omitempty"`
	UploadedBy  uuid.UUID  `json:"uploaded_by"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

func (in PhotoInsert) Validate() error {
	if strings.TrimSpace(in.ImageURL) == "" {
		return invalid("photo image url is required")
	}
	if in.UploadedBy == uuid.Nil {
		return invalid("photo uploader is required")
	}
	return nil
}

func (in PhotoInsert) Row() Photo {
	return Photo{
		ID:          uuidOrNil(in.ID),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		EventID:     in.EventID,
		UploadedBy:  in.UploadedBy,
		CreatedAt:   timeOrZero(in.CreatedAt),
	}
}

type PhotoUpdate struct {
	Title       Opt[*string]    `json:"title"`
	Description Opt[*string]    `json:"description"`
	ImageURL    Opt[string]     `json:"image_url"`
	EventID     Opt[*uuid.UUID] `json:"event_id"`
	UploadedBy  Opt[uuid.UUID]  `json:"uploaded_by"`
	CreatedAt   Opt[time.Time]  `json:"created_at"`
}

func (u PhotoUpdate) Validate() error {
	if u.ImageURL.Set && strings.TrimSpace(u.ImageURL.Value) == "" {
		return invalid("photo image url cannot be empty")
	}
	return errors.Join(
		notNullID(u.UploadedBy, "uploaded_by"),
		notNullTime(u.CreatedAt, "created_at"),
	)
}

func (u PhotoUpdate) Columns() map[string]any {
	cols := map[string]any{}
	u.Title.put(cols, "title")
	u.Description.put(cols, "description")
	u.ImageURL.put(cols, "image_url")
	u.EventID.put(cols, "event_id")
	u.UploadedBy.put(cols, "uploaded_by")
	u.CreatedAt.put(cols, "created_at")
	return cols
}

func (u PhotoUpdate) Apply(p *Photo) {
	u.Title.apply(&p.Title)
	u.Description.apply(&p.Description)
	u.ImageURL.apply(&p.ImageURL)
	u.EventID.apply(&p.EventID)
	u.UploadedBy.apply(&p.UploadedBy)
	u.CreatedAt.apply(&p.CreatedAt)
}
