package dto

import (
	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
)

// DefaultLimit is the gallery size when no limit is given.
const DefaultLimit = 12

type PhotoFilter struct {
	EventID string `form:"event_id" binding:"omitempty,uuid"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// CreatePhotoRequest is bound from JSON or from the fields of a multipart
// upload. ImageURL is only read when no file is attached.
type CreatePhotoRequest struct {
	Title       *string `json:"title" form:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" form:"description" binding:"omitempty,max=2000"`
	EventID     *string `json:"event_id" form:"event_id" binding:"omitempty,uuid"`
	ImageURL    string  `json:"image_url" form:"image_url" binding:"omitempty,url"`
}

type UpdatePhotoRequest struct {
	Title       entity.Opt[*string] `json:"title"`
	Description entity.Opt[*string] `json:"description"`
	EventID     entity.Opt[*string] `json:"event_id"`
}
