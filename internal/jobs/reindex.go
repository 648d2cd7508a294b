package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	search "github.com/atulpawar07/sp-cricket-hub/internal/modules/search/service"
)

type EventLister interface {
	List(ctx context.Context, from, to *time.Time, limit int) ([]entity.Event, error)
}

type PlayerLister interface {
	List(ctx context.Context) ([]entity.Player, error)
}

type PhotoLister interface {
	List(ctx context.Context, eventID *uuid.UUID, limit int) ([]entity.Photo, error)
}

// SearchReindex pushes every event, player and photo to the search indexes,
// catching up documents a best-effort write failed to index.
type SearchReindex struct {
	events  EventLister
	players PlayerLister
	photos  PhotoLister
	search  search.SearchService
}

func NewSearchReindex(events EventLister, players PlayerLister, photos PhotoLister, searchService search.SearchService) *SearchReindex {
	return &SearchReindex{
		events:  events,
		players: players,
		photos:  photos,
		search:  searchService,
	}
}

func (j *SearchReindex) Name() string {
	return "search-reindex"
}

func (j *SearchReindex) Run(ctx context.Context) error {
	events, err := j.events.List(ctx, nil, nil, 0)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	players, err := j.players.List(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	photos, err := j.photos.List(ctx, nil, 0)
	if err != nil {
		return fmt.Errorf("list photos: %w", err)
	}

	failed := 0
	for _, e := range events {
		if err := j.search.IndexEvent(ctx, e); err != nil {
			failed++
		}
	}
	for _, p := range players {
		if err := j.search.IndexPlayer(ctx, p); err != nil {
			failed++
		}
	}
	for _, p := range photos {
		if err := j.search.IndexPhoto(ctx, p); err != nil {
			failed++
		}
	}

	total := len(events) + len(players) + len(photos)
	log.Printf("[%s] indexed %d of %d documents", j.Name(), total-failed, total)
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to index", failed, total)
	}
	return nil
}
