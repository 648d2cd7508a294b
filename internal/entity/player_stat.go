package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayerStat is one player's line for one match. Every counter is optional
// and non-negative when present.
type PlayerStat struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PlayerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"player_id"`
	MatchDate    *time.Time `gorm:"type:date" json:"match_date"`
	RunsScored   *int       `json:"runs_scored"`
	BallsFaced   *int       `json:"balls_faced"`
	Fours        *int       `json:"fours"`
	Sixes        *int       `json:"sixes"`
	WicketsTaken *int       `json:"wickets_taken"`
	RunsConceded *int       `json:"runs_conceded"`
	BallsBowled  *int       `json:"balls_bowled"`
	Catches      *int       `json:"catches"`
	Stumpings    *int       `json:"stumpings"`
	CreatedBy    uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (PlayerStat) TableName() string {
	return "player_stats"
}

func (s *PlayerStat) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}

// Counters maps each numeric column name to its value.
func (s PlayerStat) Counters() map[string]*int {
	return map[string]*int{
		"runs_scored":   s.RunsScored,
		"balls_faced":   s.BallsFaced,
		"fours":         s.Fours,
		"sixes":         s.Sixes,
		"wickets_taken": s.WicketsTaken,
		"runs_conceded": s.RunsConceded,
		"balls_bowled":  s.BallsBowled,
		"catches":       s.Catches,
		"stumpings":     s.Stumpings,
	}
}

type PlayerStatInsert struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	PlayerID     uuid.UUID  `json:"player_id"`
	MatchDate    *time.Time `json:"match_date,omitempty"`
	RunsScored   *int       `json:"runs_scored,omitempty"`
	BallsFaced   *int       `json:"balls_faced,omitempty"`
	Fours        *int       `json:"fours,omitempty"`
	Sixes        *int       `json:"sixes,omitempty"`
	WicketsTaken *int       `json:"wickets_taken,omitempty"`
	RunsConceded *int       `json:"runs_conceded,omitempty"`
	BallsBowled  *int       `json:"balls_bowled,omitempty"`
	Catches      *int       `json:"catches,omitempty"`
	Stumpings    *int       `json:"stumpings,omitempty"`
	CreatedBy    uuid.UUID  `json:"created_by"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

func (in PlayerStatInsert) Validate() error {
	if in.PlayerID == uuid.Nil {
		return invalid("player is required")
	}
	if in.CreatedBy == uuid.Nil {
		return invalid("stat author is required")
	}
	return validateCounters(in.Row().Counters())
}

func (in PlayerStatInsert) Row() PlayerStat {
	return PlayerStat{
		ID:           uuidOrNil(in.ID),
		PlayerID:     in.PlayerID,
		MatchDate:    in.MatchDate,
		RunsScored:   in.RunsScored,
		BallsFaced:   in.BallsFaced,
		Fours:        in.Fours,
		Sixes:        in.Sixes,
		WicketsTaken: in.WicketsTaken,
		RunsConceded: in.RunsConceded,
		BallsBowled:  in.BallsBowled,
		Catches:      in.Catches,
		Stumpings:    in.Stumpings,
		CreatedBy:    in.CreatedBy,
		CreatedAt:    timeOrZero(in.CreatedAt),
	}
}

type PlayerStatUpdate struct {
	PlayerID     Opt[uuid.UUID]  `json:"player_id"`
	MatchDate    Opt[*time.Time] `json:"match_date"`
	RunsScored   Opt[*int]       `json:"runs_scored"`
	BallsFaced   Opt[*int]       `json:"balls_faced"`
	Fours        Opt[*int]       `json:"fours"`
	Sixes        Opt[*int]       `json:"sixes"`
	WicketsTaken Opt[*int]       `json:"wickets_taken"`
	RunsConceded Opt[*int]       `json:"runs_conceded"`
	BallsBowled  Opt[*int]       `json:"balls_bowled"`
	Catches      Opt[*int]       `json:"catches"`
	Stumpings    Opt[*int]       `json:"stumpings"`
	CreatedBy    Opt[uuid.UUID]  `json:"created_by"`
	CreatedAt    Opt[time.Time]  `json:"created_at"`
}

func (u PlayerStatUpdate) Validate() error {
	if u.PlayerID.Set && u.PlayerID.Value == uuid.Nil {
		return invalid("player cannot be empty")
	}
	if err := errors.Join(
		notNullID(u.CreatedBy, "created_by"),
		notNullTime(u.CreatedAt, "created_at"),
	); err != nil {
		return err
	}
	counters := map[string]*int{}
	for col, v := range u.Columns() {
		if n, ok := v.(*int); ok {
			counters[col] = n
		}
	}
	return validateCounters(counters)
}

func (u PlayerStatUpdate) Columns() map[string]any {
	cols := map[string]any{}
	u.PlayerID.put(cols, "player_id")
	u.MatchDate.put(cols, "match_date")
	u.RunsScored.put(cols, "runs_scored")
	u.BallsFaced.put(cols, "balls_faced")
	u.Fours.put(cols, "fours")
	u.Sixes.put(cols, "sixes")
	u.WicketsTaken.put(cols, "wickets_taken")
	u.RunsConceded.put(cols, "runs_conceded")
	u.BallsBowled.put(cols, "balls_bowled")
	u.Catches.put(cols, "catches")
	u.Stumpings.put(cols, "stumpings")
	u.CreatedBy.put(cols, "created_by")
	u.CreatedAt.put(cols, "created_at")
	return cols
}

func (u PlayerStatUpdate) Apply(s *PlayerStat) {
	u.PlayerID.apply(&s.PlayerID)
	u.MatchDate.apply(&s.MatchDate)
	u.RunsScored.apply(&s.RunsScored)
	u.BallsFaced.apply(&s.BallsFaced)
	u.Fours.apply(&s.Fours)
	u.Sixes.apply(&s.Sixes)
	u.WicketsTaken.apply(&s.WicketsTaken)
	u.RunsConceded.apply(&s.RunsConceded)
	u.BallsBowled.apply(&s.BallsBowled)
	u.Catches.apply(&s.Catches)
	u.Stumpings.apply(&s.Stumpings)
	u.CreatedBy.apply(&s.CreatedBy)
	u.CreatedAt.apply(&s.CreatedAt)
}

func validateCounters(counters map[string]*int) error {
	for col, v := range counters {
		if !nonNegative(v) {
			return invalid("%s cannot be negative", col)
		}
	}
	return nil
}
