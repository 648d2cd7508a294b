package dto

import (
	"time"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
)

// UnknownMember is shown when an event's creator has no profile.
const UnknownMember = "Unknown member"

type EventFilter struct {
	From  *time.Time `form:"from"`
	To    *time.Time `form:"to"`
	Limit int        `form:"limit" binding:"omitempty,min=1,max=100"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=5000"`
	EventDate   time.Time `json:"event_date" binding:"required"`
	Location    *string   `json:"location" binding:"omitempty,max=200"`
	ImageURL    *string   `json:"image_url" binding:"omitempty,url"`
}

// UpdateEventRequest is a partial update: absent keys are left alone and a
// null clears a nullable column.
type UpdateEventRequest struct {
	Title       entity.Opt[string]    `json:"title"`
	Description entity.Opt[*string]   `json:"description"`
	EventDate   entity.Opt[time.Time] `json:"event_date"`
	Location    entity.Opt[*string]   `json:"location"`
	ImageURL    entity.Opt[*string]   `json:"image_url"`
}

type EventResponse struct {
	entity.Event
	CreatorName string `json:"creator_name"`
}
