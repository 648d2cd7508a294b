package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/player/dto"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/player/repository"
	statDto "github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/dto"
	statRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/repository"
	playerstat "github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/service"
	search "github.com/atulpawar07/sp-cricket-hub/internal/modules/search/service"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

type PlayerService interface {
	ListPlayers(ctx context.Context) ([]entity.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*entity.Player, error)
	GetPlayerStats(ctx context.Context, id uuid.UUID) (*dto.PlayerStatsResponse, error)
	CreatePlayer(ctx context.Context, req dto.CreatePlayerRequest) (*entity.Player, error)
	UpdatePlayer(ctx context.Context, id uuid.UUID, req dto.UpdatePlayerRequest) (*entity.Player, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error
}

type playerService struct {
	repo   repository.PlayerRepository
	stats  statRepo.PlayerStatRepository
	search search.SearchService
}

func NewPlayerService(repo repository.PlayerRepository, stats statRepo.PlayerStatRepository, searchService search.SearchService) PlayerService {
	return &playerService{
		repo:   repo,
		stats:  stats,
		search: searchService,
	}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]entity.Player, error) {
	return s.repo.List(ctx)
}

func (s *playerService) GetPlayer(ctx context.Context, id uuid.UUID) (*entity.Player, error) {
	player, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *playerService) GetPlayerStats(ctx context.Context, id uuid.UUID) (*dto.PlayerStatsResponse, error) {
	player, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	matches, err := s.stats.ListByPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PlayerStatsResponse{
		Player:  player,
		Matches: matches,
		Career:  playerstat.Career(matches),
	}, nil
}

func (s *playerService) CreatePlayer(ctx context.Context, req dto.CreatePlayerRequest) (*entity.Player, error) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	profileID, err := parseOptionalID(req.ProfileID)
	if err != nil {
		return nil, err
	}

	player, err := s.repo.Create(ctx, entity.PlayerInsert{
		Name:         strings.TrimSpace(req.Name),
		DateOfBirth:  dob,
		JerseyNumber: req.JerseyNumber,
		Position:     trimOptional(req.Position),
		ProfileID:    profileID,
	})
	if err != nil {
		return nil, err
	}

	s.index(ctx, player)
	return &player, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id uuid.UUID, req dto.UpdatePlayerRequest) (*entity.Player, error) {
	patch := entity.PlayerUpdate{JerseyNumber: req.JerseyNumber}
	if req.Name.Set {
		patch.Name = entity.Some(strings.TrimSpace(req.Name.Value))
	}
	if req.Position.Set {
		patch.Position = entity.Some(trimOptional(req.Position.Value))
	}
	if req.DateOfBirth.Set {
		dob, err := parseDate(req.DateOfBirth.Value)
		if err != nil {
			return nil, err
		}
		patch.DateOfBirth = entity.Some(dob)
	}
	if req.ProfileID.Set {
		profileID, err := parseOptionalID(req.ProfileID.Value)
		if err != nil {
			return nil, err
		}
		patch.ProfileID = entity.Some(profileID)
	}

	player, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.index(ctx, player)
	return &player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.search != nil {
		if err := s.search.Delete(ctx, search.PlayersIndex, id.String()); err != nil {
			log.Printf("Failed to remove player %s from search: %v", id, err)
		}
	}
	return nil
}

func (s *playerService) index(ctx context.Context, player entity.Player) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexPlayer(ctx, player); err != nil {
		log.Printf("Failed to index player %s: %v", player.ID, err)
	}
}

func parseDate(v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := time.Parse(statDto.DateLayout, strings.TrimSpace(*v))
	if err != nil {
		return nil, fmt.Errorf("date_of_birth must be YYYY-MM-DD: %w", apperror.ErrInvalidInput)
	}
	return &t, nil
}

func parseOptionalID(v *string) (*uuid.UUID, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*v))
	if err != nil {
		return nil, fmt.Errorf("invalid profile_id: %w", apperror.ErrBadRequest)
	}
	return &id, nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
