package dto

import (
	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
)

// DateLayout is the format of match dates in requests and CSV files.
const DateLayout = "2006-01-02"

// MaxImportSize bounds an uploaded CSV file.
const MaxImportSize = 1 << 20

type CreatePlayerStatRequest struct {
	PlayerID     string  `json:"player_id" binding:"required,uuid"`
	MatchDate    *string `json:"match_date" binding:"omitempty,datetime=2006-01-02"`
	RunsScored   *int    `json:"runs_scored" binding:"omitempty,min=0"`
	BallsFaced   *int    `json:"balls_faced" binding:"omitempty,min=0"`
	Fours        *int    `json:"fours" binding:"omitempty,min=0"`
	Sixes        *int    `json:"sixes" binding:"omitempty,min=0"`
	WicketsTaken *int    `json:"wickets_taken" binding:"omitempty,min=0"`
	RunsConceded *int    `json:"runs_conceded" binding:"omitempty,min=0"`
	BallsBowled  *int    `json:"balls_bowled" binding:"omitempty,min=0"`
	Catches      *int    `json:"catches" binding:"omitempty,min=0"`
	Stumpings    *int    `json:"stumpings" binding:"omitempty,min=0"`
}

type UpdatePlayerStatRequest struct {
	MatchDate    entity.Opt[*string] `json:"match_date"`
	RunsScored   entity.Opt[*int]    `json:"runs_scored"`
	BallsFaced   entity.Opt[*int]    `json:"balls_faced"`
	Fours        entity.Opt[*int]    `json:"fours"`
	Sixes        entity.Opt[*int]    `json:"sixes"`
	WicketsTaken entity.Opt[*int]    `json:"wickets_taken"`
	RunsConceded entity.Opt[*int]    `json:"runs_conceded"`
	BallsBowled  entity.Opt[*int]    `json:"balls_bowled"`
	Catches      entity.Opt[*int]    `json:"catches"`
	Stumpings    entity.Opt[*int]    `json:"stumpings"`
}

// CareerTotals sums a player's match lines. Missing counters count as zero.
type CareerTotals struct {
	Matches      int     `json:"matches"`
	Runs         int     `json:"runs"`
	BallsFaced   int     `json:"balls_faced"`
	Fours        int     `json:"fours"`
	Sixes        int     `json:"sixes"`
	HighestScore int     `json:"highest_score"`
	Wickets      int     `json:"wickets"`
	RunsConceded int     `json:"runs_conceded"`
	BallsBowled  int     `json:"balls_bowled"`
	Catches      int     `json:"catches"`
	Stumpings    int     `json:"stumpings"`
	StrikeRate   float64 `json:"strike_rate"`
	Economy      float64 `json:"economy"`
}

type LineError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

type ImportResult struct {
	Imported int                 `json:"imported"`
	Failed   int                 `json:"failed"`
	Rows     []entity.PlayerStat `json:"rows"`
	Errors   []LineError         `json:"errors"`
}
