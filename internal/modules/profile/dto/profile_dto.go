package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
)

// UpdateProfileInput is bound from a multipart form. An empty phone clears
// it; the avatar travels as a separate file part.
type UpdateProfileInput struct {
	FullName    *string `json:"full_name" form:"full_name" binding:"omitempty,min=1,max=120"`
	Phone       *string `json:"phone" form:"phone" binding:"omitempty,max=30"`
	ClearAvatar bool    `json:"clear_avatar" form:"clear_avatar"`
}

// ProfileResponse is the signed-in member's own view.
type ProfileResponse struct {
	Profile entity.Profile `json:"profile"`
	Email   string         `json:"email"`
	Role    entity.AppRole `json:"role"`
	IsAdmin bool           `json:"is_admin"`
}

// PublicProfileResponse leaves out contact details.
type PublicProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPublicProfile(p entity.Profile) PublicProfileResponse {
	return PublicProfileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}
