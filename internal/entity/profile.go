package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the member-facing record of an Account, one per account.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName  string    `gorm:"type:text;not null" json:"full_name"`
	AvatarURL *string   `gorm:"type:text" json:"avatar_url"`
	Phone     *string   `gorm:"type:text" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

type ProfileInsert struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	UserID    uuid.UUID  `json:"user_id"`
	FullName  string     `json:"full_name"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (in ProfileInsert) Validate() error {
	if in.UserID == uuid.Nil {
		return invalid("profile account is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return invalid("full name is required")
	}
	return nil
}

func (in ProfileInsert) Row() Profile {
	return Profile{
		ID:        uuidOrNil(in.ID),
		UserID:    in.UserID,
		FullName:  in.FullName,
		AvatarURL: in.AvatarURL,
		Phone:     in.Phone,
		CreatedAt: timeOrZero(in.CreatedAt),
		UpdatedAt: timeOrZero(in.UpdatedAt),
	}
}

type ProfileUpdate struct {
	UserID    Opt[uuid.UUID] `json:"user_id"`
	FullName  Opt[string]    `json:"full_name"`
	AvatarURL Opt[*string]   `json:"avatar_url"`
	Phone     Opt[*string]   `json:"phone"`
	CreatedAt Opt[time.Time] `json:"created_at"`
	UpdatedAt Opt[time.Time] `json:"updated_at"`
}

func (u ProfileUpdate) Validate() error {
	if u.FullName.Set && strings.TrimSpace(u.FullName.Value) == "" {
		return invalid("full name cannot be empty")
	}
	if u.UserID.Set && u.UserID.Value == uuid.Nil {
		return invalid("profile account cannot be empty")
	}
	return errors.Join(
		notNullTime(u.CreatedAt, "created_at"),
		notNullTime(u.UpdatedAt, "updated_at"),
	)
}

func (u ProfileUpdate) Columns() map[string]any {
	cols := map[string]any{}
	u.UserID.put(cols, "user_id")
	u.FullName.put(cols, "full_name")
	u.AvatarURL.put(cols, "avatar_url")
	u.Phone.put(cols, "phone")
	u.CreatedAt.put(cols, "created_at")
	u.UpdatedAt.put(cols, "updated_at")
	return cols
}

func (u ProfileUpdate) Apply(p *Profile) {
	u.UserID.apply(&p.UserID)
	u.FullName.apply(&p.FullName)
	u.AvatarURL.apply(&p.AvatarURL)
	u.Phone.apply(&p.Phone)
	u.CreatedAt.apply(&p.CreatedAt)
	u.UpdatedAt.apply(&p.UpdatedAt)
}
