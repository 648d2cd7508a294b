package service

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/dashboard/dto"
	eventDto "github.com/atulpawar07/sp-cricket-hub/internal/modules/event/dto"
	event "github.com/atulpawar07/sp-cricket-hub/internal/modules/event/service"
	photoDto "github.com/atulpawar07/sp-cricket-hub/internal/modules/photo/dto"
	photo "github.com/atulpawar07/sp-cricket-hub/internal/modules/photo/service"
	player "github.com/atulpawar07/sp-cricket-hub/internal/modules/player/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, s session.Session) *dto.DashboardResponse
}

type dashboardService struct {
	events  event.EventService
	photos  photo.PhotoService
	players player.PlayerService
}

func NewDashboardService(events event.EventService, photos photo.PhotoService, players player.PlayerService) DashboardService {
	return &dashboardService{
		events:  events,
		photos:  photos,
		players: players,
	}
}

// GetDashboard loads the three tabs concurrently. A tab that fails to load
// is logged and comes back empty; the others are unaffected.
func (s *dashboardService) GetDashboard(ctx context.Context, sess session.Session) *dto.DashboardResponse {
	res := &dto.DashboardResponse{
		Events:  []eventDto.EventResponse{},
		Photos:  []entity.Photo{},
		Players: []entity.Player{},
		IsAdmin: sess.IsAdmin(),
	}

	var g errgroup.Group
	g.Go(func() error {
		events, err := s.events.ListEvents(ctx, eventDto.EventFilter{})
		if err != nil {
			log.Printf("Failed to load dashboard events: %v", err)
			return nil
		}
		res.Events = events
		return nil
	})
	g.Go(func() error {
		photos, err := s.photos.ListPhotos(ctx, photoDto.PhotoFilter{Limit: dto.RecentPhotos})
		if err != nil {
			log.Printf("Failed to load dashboard photos: %v", err)
			return nil
		}
		res.Photos = photos
		return nil
	})
	g.Go(func() error {
		players, err := s.players.ListPlayers(ctx)
		if err != nil {
			log.Printf("Failed to load dashboard players: %v", err)
			return nil
		}
		res.Players = players
		return nil
	})
	_ = g.Wait()

	return res
}
