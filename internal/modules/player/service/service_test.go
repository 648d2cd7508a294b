package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/player/dto"
	statRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/repository"
	search "github.com/atulpawar07/sp-cricket-hub/internal/modules/search/service"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

type fakePlayerRepository struct {
	rows map[uuid.UUID]entity.Player
}

func (f *fakePlayerRepository) List(context.Context) ([]entity.Player, error) {
	out := []entity.Player{}
	for _, p := range f.rows {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlayerRepository) FindByID(_ context.Context, id uuid.UUID) (entity.Player, error) {
	p, ok := f.rows[id]
	if !ok {
		return entity.Player{}, apperror.ErrNotFound
	}
	return p, nil
}

func (f *fakePlayerRepository) Create(_ context.Context, in entity.PlayerInsert) (entity.Player, error) {
	if err := in.Validate(); err != nil {
		return entity.Player{}, err
	}
	p := in.Row()
	p.ID = uuid.New()
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakePlayerRepository) Update(_ context.Context, id uuid.UUID, patch entity.PlayerUpdate) (entity.Player, error) {
	p, ok := f.rows[id]
	if !ok {
		return entity.Player{}, apperror.ErrNotFound
	}
	if err := patch.Validate(); err != nil {
		return entity.Player{}, err
	}
	patch.Apply(&p)
	f.rows[id] = p
	return p, nil
}

func (f *fakePlayerRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakePlayerRepository) Count(context.Context) (int64, error) { return int64(len(f.rows)), nil }

type fakeStats struct {
	statRepo.PlayerStatRepository
	rows []entity.PlayerStat
}

func (f *fakeStats) ListByPlayer(_ context.Context, playerID uuid.UUID) ([]entity.PlayerStat, error) {
	out := []entity.PlayerStat{}
	for _, s := range f.rows {
		if s.PlayerID == playerID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSearch struct {
	search.SearchService
	indexed []uuid.UUID
	deleted []string
}

func (f *fakeSearch) IndexPlayer(_ context.Context, p entity.Player) error {
	f.indexed = append(f.indexed, p.ID)
	return nil
}

func (f *fakeSearch) Delete(_ context.Context, index, id string) error {
	f.deleted = append(f.deleted, index+"/"+id)
	return nil
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func newTestService(stats ...entity.PlayerStat) (*fakePlayerRepository, *fakeSearch, PlayerService) {
	repo := &fakePlayerRepository{rows: map[uuid.UUID]entity.Player{}}
	idx := &fakeSearch{}
	return repo, idx, NewPlayerService(repo, &fakeStats{rows: stats}, idx)
}

func TestCreatePlayer(t *testing.T) {
	_, idx, svc := newTestService()
	profileID := uuid.New()

	player, err := svc.CreatePlayer(context.Background(), dto.CreatePlayerRequest{
		Name:         "  Vikram Deshmukh ",
		DateOfBirth:  strPtr("1998-04-21"),
		JerseyNumber: intPtr(18),
		Position:     strPtr("  "),
		ProfileID:    strPtr(profileID.String()),
	})
	require.NoError(t, err)
	assert.Equal(t, "Vikram Deshmukh", player.Name)
	require.NotNil(t, player.DateOfBirth)
	assert.Equal(t, time.Date(1998, 4, 21, 0, 0, 0, 0, time.UTC), *player.DateOfBirth)
	assert.Nil(t, player.Position)
	assert.Equal(t, profileID, *player.ProfileID)
	assert.Equal(t, []uuid.UUID{player.ID}, idx.indexed)
}

func TestCreatePlayerRejectsBadInput(t *testing.T) {
	_, idx, svc := newTestService()

	_, err := svc.CreatePlayer(context.Background(), dto.CreatePlayerRequest{Name: "A", DateOfBirth: strPtr("21/04/1998")})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = svc.CreatePlayer(context.Background(), dto.CreatePlayerRequest{Name: "A", ProfileID: strPtr("nope")})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = svc.CreatePlayer(context.Background(), dto.CreatePlayerRequest{Name: "   "})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	assert.Empty(t, idx.indexed)
}

func TestUpdatePlayer(t *testing.T) {
	_, _, svc := newTestService()
	player, err := svc.CreatePlayer(context.Background(), dto.CreatePlayerRequest{
		Name:         "Vikram Deshmukh",
		JerseyNumber: intPtr(18),
		Position:     strPtr("Batter"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePlayer(context.Background(), player.ID, dto.UpdatePlayerRequest{
		Position:     entity.Some(strPtr(" All-rounder ")),
		JerseyNumber: entity.Opt[*int]{Set: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Vikram Deshmukh", updated.Name)
	assert.Equal(t, "All-rounder", *updated.Position)
	assert.Nil(t, updated.JerseyNumber)

	_, err = svc.UpdatePlayer(context.Background(), uuid.New(), dto.UpdatePlayerRequest{Name: entity.Some("X")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetPlayerStats(t *testing.T) {
	repo, _, svc := newTestService()
	player, err := svc.CreatePlayer(context.Background(), dto.CreatePlayerRequest{Name: "Vikram Deshmukh"})
	require.NoError(t, err)

	stats := svc.(*playerService).stats.(*fakeStats)
	stats.rows = []entity.PlayerStat{
		{PlayerID: player.ID, RunsScored: intPtr(40), BallsFaced: intPtr(32)},
		{PlayerID: player.ID, RunsScored: intPtr(60), BallsFaced: intPtr(48)},
		{PlayerID: uuid.New(), RunsScored: intPtr(99)},
	}

	res, err := svc.GetPlayerStats(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Equal(t, repo.rows[player.ID], res.Player)
	assert.Len(t, res.Matches, 2)
	assert.Equal(t, 100, res.Career.Runs)
	assert.Equal(t, 60, res.Career.HighestScore)
	assert.Equal(t, 125.0, res.Career.StrikeRate)

	_, err = svc.GetPlayerStats(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeletePlayerRemovesSearchDocument(t *testing.T) {
	repo, idx, svc := newTestService()
	player, err := svc.CreatePlayer(context.Background(), dto.CreatePlayerRequest{Name: "Vikram Deshmukh"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlayer(context.Background(), player.ID))
	assert.Empty(t, repo.rows)
	assert.Equal(t, []string{search.PlayersIndex + "/" + player.ID.String()}, idx.deleted)

	assert.ErrorIs(t, svc.DeletePlayer(context.Background(), player.ID), apperror.ErrNotFound)
}
