package dto

import (
	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	eventDto "github.com/atulpawar07/sp-cricket-hub/internal/modules/event/dto"
)

// RecentPhotos is how many photos the dashboard shows.
const RecentPhotos = 12

type DashboardResponse struct {
	Events  []eventDto.EventResponse `json:"events"`
	Photos  []entity.Photo           `json:"photos"`
	Players []entity.Player          `json:"players"`
	IsAdmin bool                     `json:"is_admin"`
}
