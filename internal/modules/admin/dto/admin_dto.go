package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
)

type MemberResponse struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	Role      entity.AppRole  `json:"role"`
	Profile   *entity.Profile `json:"profile"`
	CreatedAt time.Time       `json:"created_at"`
}

type UpdateRoleInput struct {
	Role entity.AppRole `json:"role" binding:"required,oneof=admin user"`
}
