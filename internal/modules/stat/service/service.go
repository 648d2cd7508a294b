package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/atulpawar07/sp-cricket-hub/internal/modules/stat/dto"
)

// Counter is satisfied by every repository that can count its table.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type StatService interface {
	GetSummary(ctx context.Context) (*dto.SummaryResponse, error)
}

type statService struct {
	profiles Counter
	players  Counter
	events   Counter
	photos   Counter
}

func NewStatService(profiles, players, events, photos Counter) StatService {
	return &statService{
		profiles: profiles,
		players:  players,
		events:   events,
		photos:   photos,
	}
}

func (s *statService) GetSummary(ctx context.Context) (*dto.SummaryResponse, error) {
	var res dto.SummaryResponse
	g, ctx := errgroup.WithContext(ctx)

	count := func(c Counter, dst *int64) {
		g.Go(func() error {
			n, err := c.Count(ctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	count(s.profiles, &res.Members)
	count(s.players, &res.Players)
	count(s.events, &res.Events)
	count(s.photos, &res.Photos)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}
