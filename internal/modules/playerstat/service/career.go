package service

import (
	"math"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/dto"
)

// Career totals the given match lines. Strike rate is runs per hundred balls
// faced and economy is runs conceded per six balls bowled; both are zero when
// no balls were faced or bowled.
func Career(stats []entity.PlayerStat) dto.CareerTotals {
	var t dto.CareerTotals
	t.Matches = len(stats)
	for _, s := range stats {
		runs := value(s.RunsScored)
		t.Runs += runs
		if runs > t.HighestScore {
			t.HighestScore = runs
		}
		t.BallsFaced += value(s.BallsFaced)
		t.Fours += value(s.Fours)
		t.Sixes += value(s.Sixes)
		t.Wickets += value(s.WicketsTaken)
		t.RunsConceded += value(s.RunsConceded)
		t.BallsBowled += value(s.BallsBowled)
		t.Catches += value(s.Catches)
		t.Stumpings += value(s.Stumpings)
	}

	if t.BallsFaced > 0 {
		t.StrikeRate = round2(float64(t.Runs) * 100 / float64(t.BallsFaced))
	}
	if t.BallsBowled > 0 {
		t.Economy = round2(float64(t.RunsConceded) * 6 / float64(t.BallsBowled))
	}
	return t
}

func value(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
