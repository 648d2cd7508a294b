package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Player struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"type:text;not null;index" json:"name"`
	DateOfBirth  *time.Time `gorm:"type:date" json:"date_of_birth"`
	JerseyNumber *int       `json:"jersey_number"`
	Position     *string    `gorm:"type:text" json:"position"`
	ProfileID    *uuid.UUID `gorm:"type:uuid;index" json:"profile_id"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Player) TableName() string {
	return "players"
}

func (p *Player) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

type PlayerInsert struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	Name         string     `json:"name"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	JerseyNumber *int       `json:"jersey_number,omitempty"`
	Position     *string    `json:"position,omitempty"`
	ProfileID    *uuid.UUID `json:"profile_id,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func (in PlayerInsert) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("player name is required")
	}
	if !nonNegative(in.JerseyNumber) {
		return invalid("jersey number cannot be negative")
	}
	return errors.Join(
		notNullTime(u.CreatedAt, "created_at"),
		notNullTime(u.UpdatedAt, "updated_at"),
	)
}

func (in PlayerInsert) Row() Player {
	return Player{
		ID:           uuidOrNil(in.ID),
		Name:         in.Name,
		DateOfBirth:  in.DateOfBirth,
		JerseyNumber: in.JerseyNumber,
		Position:     in.Position,
		ProfileID:    in.ProfileID,
		CreatedAt:    timeOrZero(in.CreatedAt),
		UpdatedAt:    timeOrZero(in.UpdatedAt),
	}
}

type PlayerUpdate struct {
	Name         Opt[string]     `json:"name"`
	DateOfBirth  Opt[*time.Time] `json:"date_of_birth"`
	JerseyNumber Opt[*int]       `json:"jersey_number"`
	Position     Opt[*string]    `json:"position"`
	ProfileID    Opt[*uuid.UUID] `json:"profile_id"`
	CreatedAt    Opt[time.Time]  `json:"created_at"`
	UpdatedAt    Opt[time.Time]  `json:"updated_at"`
}

func (u PlayerUpdate) Validate() error {
	if u.Name.Set && strings.TrimSpace(u.Name.Value) == "" {
		return invalid("player name cannot be empty")
	}
	if u.JerseyNumber.Set && !nonNegative(u.JerseyNumber.Value) {
		return invalid("jersey number cannot be negative")
	}
	return nil
}

func (u PlayerUpdate) Columns() map[string]any {
	cols := map[string]any{}
	u.Name.put(cols, "name")
	u.DateOfBirth.put(cols, "date_of_birth")
	u.JerseyNumber.put(cols, "jersey_number")
	u.Position.put(cols, "position")
	u.ProfileID.put(cols, "profile_id")
	u.CreatedAt.put(cols, "created_at")
	u.UpdatedAt.put(cols, "updated_at")
	return cols
}

func (u PlayerUpdate) Apply(p *Player) {
	u.Name.apply(&p.Name)
	u.DateOfBirth.apply(&p.DateOfBirth)
	u.JerseyNumber.apply(&p.JerseyNumber)
	u.Position.apply(&p.Position)
	u.ProfileID.apply(&p.ProfileID)
	u.CreatedAt.apply(&p.CreatedAt)
	u.UpdatedAt.apply(&p.UpdatedAt)
}
