package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	playerRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/player/repository"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/dto"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/repository"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

type PlayerStatService interface {
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]entity.PlayerStat, error)
	CreateStat(ctx context.Context, s session.Session, req dto.CreatePlayerStatRequest) (*entity.PlayerStat, error)
	UpdateStat(ctx context.Context, id uuid.UUID, req dto.UpdatePlayerStatRequest) (*entity.PlayerStat, error)
	DeleteStat(ctx context.Context, id uuid.UUID) error
	ImportCSV(ctx context.Context, s session.Session, file io.Reader) (*dto.ImportResult, error)
}

type playerStatService struct {
	repo    repository.PlayerStatRepository
	players playerRepo.PlayerRepository
}

func NewPlayerStatService(repo repository.PlayerStatRepository, players playerRepo.PlayerRepository) PlayerStatService {
	return &playerStatService{repo: repo, players: players}
}

func (s *playerStatService) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]entity.PlayerStat, error) {
	return s.repo.ListByPlayer(ctx, playerID)
}

func (s *playerStatService) CreateStat(ctx context.Context, sess session.Session, req dto.CreatePlayerStatRequest) (*entity.PlayerStat, error) {
	playerID, err := uuid.Parse(req.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player_id: %w", apperror.ErrBadRequest)
	}
	if err := s.ensurePlayer(ctx, playerID); err != nil {
		return nil, err
	}

	matchDate, err := parseDate(req.MatchDate)
	if err != nil {
		return nil, err
	}

	stat, err := s.repo.Create(ctx, entity.PlayerStatInsert{
		PlayerID:     playerID,
		MatchDate:    matchDate,
		RunsScored:   req.RunsScored,
		BallsFaced:   req.BallsFaced,
		Fours:        req.Fours,
		Sixes:        req.Sixes,
		WicketsTaken: req.WicketsTaken,
		RunsConceded: req.RunsConceded,
		BallsBowled:  req.BallsBowled,
		Catches:      req.Catches,
		Stumpings:    req.Stumpings,
		CreatedBy:    sess.AccountID,
	})
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (s *playerStatService) UpdateStat(ctx context.Context, id uuid.UUID, req dto.UpdatePlayerStatRequest) (*entity.PlayerStat, error) {
	patch := entity.PlayerStatUpdate{
		RunsScored:   req.RunsScored,
		BallsFaced:   req.BallsFaced,
		Fours:        req.Fours,
		Sixes:        req.Sixes,
		WicketsTaken: req.WicketsTaken,
		RunsConceded: req.RunsConceded,
		BallsBowled:  req.BallsBowled,
		Catches:      req.Catches,
		Stumpings:    req.Stumpings,
	}
	if req.MatchDate.Set {
		matchDate, err := parseDate(req.MatchDate.Value)
		if err != nil {
			return nil, err
		}
		patch.MatchDate = entity.Some(matchDate)
	}

	stat, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (s *playerStatService) DeleteStat(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *playerStatService) ensurePlayer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.players.FindByID(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return fmt.Errorf("player %s does not exist: %w", id, apperror.ErrInvalidInput)
		}
		return err
	}
	return nil
}

func parseDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, *v)
	if err != nil {
		return nil, fmt.Errorf("match_date must be YYYY-MM-DD: %w", apperror.ErrInvalidInput)
	}
	return &t, nil
}
