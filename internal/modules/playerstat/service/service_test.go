package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	playerRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/player/repository"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/dto"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

type fakeStatRepository struct {
	rows []entity.PlayerStat
}

func (f *fakeStatRepository) ListByPlayer(_ context.Context, playerID uuid.UUID) ([]entity.PlayerStat, error) {
	out := []entity.PlayerStat{}
	for _, s := range f.rows {
		if s.PlayerID == playerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStatRepository) FindByID(_ context.Context, id uuid.UUID) (entity.PlayerStat, error) {
	for _, s := range f.rows {
		if s.ID == id {
			return s, nil
		}
	}
	return entity.PlayerStat{}, apperror.ErrNotFound
}

func (f *fakeStatRepository) Create(_ context.Context, in entity.PlayerStatInsert) (entity.PlayerStat, error) {
	if err := in.Validate(); err != nil {
		return entity.PlayerStat{}, err
	}
	s := in.Row()
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	f.rows = append(f.rows, s)
	return s, nil
}

func (f *fakeStatRepository) Update(_ context.Context, id uuid.UUID, patch entity.PlayerStatUpdate) (entity.PlayerStat, error) {
	for i, s := range f.rows {
		if s.ID == id {
			if err := patch.Validate(); err != nil {
				return entity.PlayerStat{}, err
			}
			patch.Apply(&s)
			f.rows[i] = s
			return s, nil
		}
	}
	return entity.PlayerStat{}, apperror.ErrNotFound
}

func (f *fakeStatRepository) Delete(_ context.Context, id uuid.UUID) error {
	for i, s := range f.rows {
		if s.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return apperror.ErrNotFound
}

type fakePlayers struct {
	playerRepo.PlayerRepository
	rows []entity.Player
}

func (f *fakePlayers) List(context.Context) ([]entity.Player, error) {
	return f.rows, nil
}

func (f *fakePlayers) FindByID(_ context.Context, id uuid.UUID) (entity.Player, error) {
	for _, p := range f.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return entity.Player{}, apperror.ErrNotFound
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func newTestService(players ...entity.Player) (*fakeStatRepository, PlayerStatService) {
	repo := &fakeStatRepository{}
	return repo, NewPlayerStatService(repo, &fakePlayers{rows: players})
}

var admin = session.Session{AccountID: uuid.New(), Role: entity.RoleAdmin}

func TestCareerTotals(t *testing.T) {
	stats := []entity.PlayerStat{
		{RunsScored: intPtr(45), BallsFaced: intPtr(30), Fours: intPtr(5), Sixes: intPtr(2), WicketsTaken: intPtr(1), RunsConceded: intPtr(24), BallsBowled: intPtr(18)},
		{RunsScored: intPtr(12), BallsFaced: intPtr(20), Catches: intPtr(2)},
		{WicketsTaken: intPtr(3), RunsConceded: intPtr(31), BallsBowled: intPtr(24), Stumpings: intPtr(1)},
	}

	got := Career(stats)
	assert.Equal(t, 3, got.Matches)
	assert.Equal(t, 57, got.Runs)
	assert.Equal(t, 50, got.BallsFaced)
	assert.Equal(t, 45, got.HighestScore)
	assert.Equal(t, 4, got.Wickets)
	assert.Equal(t, 2, got.Catches)
	assert.Equal(t, 1, got.Stumpings)
	assert.Equal(t, 114.0, got.StrikeRate)
	assert.Equal(t, 7.86, got.Economy)
}

func TestCareerTotalsWithoutBalls(t *testing.T) {
	got := Career([]entity.PlayerStat{{RunsScored: intPtr(10)}})
	assert.Equal(t, 10, got.Runs)
	assert.Zero(t, got.StrikeRate)
	assert.Zero(t, got.Economy)

	empty := Career(nil)
	assert.Zero(t, empty.Matches)
}

func TestCreateStat(t *testing.T) {
	player := entity.Player{ID: uuid.New(), Name: "Rohan Kulkarni"}
	repo, svc := newTestService(player)

	stat, err := svc.CreateStat(context.Background(), admin, dto.CreatePlayerStatRequest{
		PlayerID:   player.ID.String(),
		MatchDate:  strPtr("2024-11-03"),
		RunsScored: intPtr(67),
	})
	require.NoError(t, err)
	assert.Equal(t, player.ID, stat.PlayerID)
	assert.Equal(t, admin.AccountID, stat.CreatedBy)
	require.NotNil(t, stat.MatchDate)
	assert.Equal(t, "2024-11-03", stat.MatchDate.Format(dto.DateLayout))
	assert.Len(t, repo.rows, 1)
}

func TestCreateStatForMissingPlayer(t *testing.T) {
	repo, svc := newTestService()

	_, err := svc.CreateStat(context.Background(), admin, dto.CreatePlayerStatRequest{PlayerID: uuid.NewString()})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, repo.rows)
}

func TestUpdateStatClearsCounter(t *testing.T) {
	player := entity.Player{ID: uuid.New(), Name: "Rohan Kulkarni"}
	_, svc := newTestService(player)
	stat, err := svc.CreateStat(context.Background(), admin, dto.CreatePlayerStatRequest{PlayerID: player.ID.String(), Fours: intPtr(3)})
	require.NoError(t, err)

	updated, err := svc.UpdateStat(context.Background(), stat.ID, dto.UpdatePlayerStatRequest{
		Fours: entity.Opt[*int]{Set: true},
		Sixes: entity.Some(intPtr(1)),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Fours)
	assert.Equal(t, 1, *updated.Sixes)

	_, err = svc.UpdateStat(context.Background(), stat.ID, dto.UpdatePlayerStatRequest{Sixes: entity.Some(intPtr(-1))})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestImportCSVByName(t *testing.T) {
	rohan := entity.Player{ID: uuid.New(), Name: "Rohan Kulkarni"}
	amit := entity.Player{ID: uuid.New(), Name: "Amit Joshi"}
	repo, svc := newTestService(rohan, amit)

	csv := "player_name,match_date,runs_scored,balls_faced\n" +
		"rohan kulkarni,2024-10-05,34,28\n" +
		"Amit Joshi,2024-10-05,,\n" +
		"Nobody,2024-10-05,3,4\n" +
		"Amit Joshi,05/10/2024,1,1\n" +
		"Amit Joshi,2024-10-12,many,1\n"

	res, err := svc.ImportCSV(context.Background(), admin, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 3, res.Failed)
	assert.Len(t, repo.rows, 2)

	require.Len(t, res.Errors, 3)
	assert.Equal(t, 4, res.Errors[0].Line)
	assert.Contains(t, res.Errors[0].Error, "unknown player")
	assert.Equal(t, 5, res.Errors[1].Line)
	assert.Contains(t, res.Errors[1].Error, "match_date")
	assert.Equal(t, 6, res.Errors[2].Line)
	assert.Contains(t, res.Errors[2].Error, "runs_scored")

	assert.Equal(t, rohan.ID, res.Rows[0].PlayerID)
	assert.Equal(t, 34, *res.Rows[0].RunsScored)
	assert.Nil(t, res.Rows[1].RunsScored)
}

func TestImportCSVByIDAndNegativeCounter(t *testing.T) {
	rohan := entity.Player{ID: uuid.New(), Name: "Rohan Kulkarni"}
	_, svc := newTestService(rohan)

	csv := "\ufeffplayer_id,wickets_taken\n" +
		rohan.ID.String() + ",2\n" +
		rohan.ID.String() + ",-1\n" +
		uuid.NewString() + ",1\n" +
		"not-a-uuid,1\n" +
		rohan.ID.String() + "\n"

	res, err := svc.ImportCSV(context.Background(), admin, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 4, res.Failed)
	assert.Contains(t, res.Errors[0].Error, "negative")
	assert.Contains(t, res.Errors[1].Error, "does not exist")
	assert.Contains(t, res.Errors[2].Error, "invalid player_id")
	assert.Contains(t, res.Errors[3].Error, "expected 2 fields")
}

func TestImportCSVAmbiguousName(t *testing.T) {
	_, svc := newTestService(
		entity.Player{ID: uuid.New(), Name: "Sahil Patil"},
		entity.Player{ID: uuid.New(), Name: "Sahil Patil"},
	)

	res, err := svc.ImportCSV(context.Background(), admin, strings.NewReader("player_name,runs_scored\nSahil Patil,10\n"))
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Error, "ambiguous")
}

func TestImportCSVRejectsBadHeader(t *testing.T) {
	_, svc := newTestService()

	cases := map[string]string{
		"empty":     "",
		"unknown":   "player_id,overs\n",
		"duplicate": "player_id,runs_scored,Runs_Scored\n",
		"no player": "match_date,runs_scored\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ImportCSV(context.Background(), admin, strings.NewReader(body))
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		})
	}
}

func TestImportCSVOversizedFileWritesNothing(t *testing.T) {
	rohan := entity.Player{ID: uuid.New(), Name: "Rohan Kulkarni"}
	repo, svc := newTestService(rohan)

	var b strings.Builder
	b.WriteString("player_id,runs_scored\n")
	for i := 0; i <= maxImportRows; i++ {
		b.WriteString(rohan.ID.String() + ",10\n")
	}

	res, err := svc.ImportCSV(context.Background(), admin, strings.NewReader(b.String()))
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Nil(t, res)
	assert.Empty(t, repo.rows)
}

func TestImportCSVAtRowLimit(t *testing.T) {
	rohan := entity.Player{ID: uuid.New(), Name: "Rohan Kulkarni"}
	repo, svc := newTestService(rohan)

	var b strings.Builder
	b.WriteString("player_id,runs_scored\n")
	for i := 0; i < maxImportRows; i++ {
		b.WriteString(rohan.ID.String() + ",10\n")
	}

	res, err := svc.ImportCSV(context.Background(), admin, strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, maxImportRows, res.Imported)
	assert.Len(t, repo.rows, maxImportRows)
}
