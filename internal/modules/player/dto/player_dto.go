package dto

import (
	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	statDto "github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/dto"
)

type CreatePlayerRequest struct {
	Name         string  `json:"name" binding:"required,max=120"`
	DateOfBirth  *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	JerseyNumber *int    `json:"jersey_number" binding:"omitempty,min=0,max=999"`
	Position     *string `json:"position" binding:"omitempty,max=50"`
	ProfileID    *string `json:"profile_id" binding:"omitempty,uuid"`
}

type UpdatePlayerRequest struct {
	Name         entity.Opt[string]  `json:"name"`
	DateOfBirth  entity.Opt[*string] `json:"date_of_birth"`
	JerseyNumber entity.Opt[*int]    `json:"jersey_number"`
	Position     entity.Opt[*string] `json:"position"`
	ProfileID    entity.Opt[*string] `json:"profile_id"`
}

type PlayerStatsResponse struct {
	Player  entity.Player        `json:"player"`
	Matches []entity.PlayerStat  `json:"matches"`
	Career  statDto.CareerTotals `json:"career"`
}
