package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/search/dto"
)

const (
	EventsIndex  = "events"
	PlayersIndex = "players"
	PhotosIndex  = "photos"

	defaultLimit = 10
)

// SearchService mirrors club content into Meilisearch. With no client every
// call is a no-op and Search returns empty results.
type SearchService interface {
	IndexEvent(ctx context.Context, event entity.Event) error
	IndexPlayer(ctx context.Context, player entity.Player) error
	IndexPhoto(ctx context.Context, photo entity.Photo) error
	Delete(ctx context.Context, index, id string) error
	Search(ctx context.Context, query string, limit int) (*dto.SearchResponse, error)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if client != nil {
		s.initIndexes()
	}
	return s
}

func (s *meiliSearchService) initIndexes() {
	for _, index := range []string{EventsIndex, PlayersIndex, PhotosIndex} {
		sortable := []string{"date"}
		if _, err := s.client.Index(index).UpdateSortableAttributes(&sortable); err != nil {
			log.Printf("Failed to update %s sortable attributes: %v", index, err)
		}
	}
	log.Println("Meilisearch indexes initialized")
}

type searchDoc struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url,omitempty"`
	Date     int64  `json:"date"`
}

// cleanText strips markup so only readable text is indexed.
func (s *meiliSearchService) cleanText(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	cleaned := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleaned), " ")
}

func (s *meiliSearchService) eventDoc(e entity.Event) searchDoc {
	parts := []string{deref(e.Description), deref(e.Location)}
	return searchDoc{
		ID:       e.ID.String(),
		Kind:     "event",
		Title:    s.cleanText(e.Title),
		Body:     s.cleanText(strings.Join(parts, " ")),
		ImageURL: deref(e.ImageURL),
		Date:     e.EventDate.Unix(),
	}
}

func (s *meiliSearchService) playerDoc(p entity.Player) searchDoc {
	var parts []string
	if p.Position != nil {
		parts = append(parts, *p.Position)
	}
	if p.JerseyNumber != nil {
		parts = append(parts, "#"+strconv.Itoa(*p.JerseyNumber))
	}
	return searchDoc{
		ID:    p.ID.String(),
		Kind:  "player",
		Title: s.cleanText(p.Name),
		Body:  s.cleanText(strings.Join(parts, " ")),
		Date:  p.CreatedAt.Unix(),
	}
}

func (s *meiliSearchService) photoDoc(p entity.Photo) searchDoc {
	title := deref(p.Title)
	if title == "" {
		title = "Photo"
	}
	return searchDoc{
		ID:       p.ID.String(),
		Kind:     "photo",
		Title:    s.cleanText(title),
		Body:     s.cleanText(deref(p.Description)),
		ImageURL: p.ImageURL,
		Date:     p.CreatedAt.Unix(),
	}
}

func (s *meiliSearchService) IndexEvent(ctx context.Context, event entity.Event) error {
	return s.add(ctx, EventsIndex, s.eventDoc(event))
}

func (s *meiliSearchService) IndexPlayer(ctx context.Context, player entity.Player) error {
	return s.add(ctx, PlayersIndex, s.playerDoc(player))
}

func (s *meiliSearchService) IndexPhoto(ctx context.Context, photo entity.Photo) error {
	return s.add(ctx, PhotosIndex, s.photoDoc(photo))
}

func (s *meiliSearchService) add(ctx context.Context, index string, doc searchDoc) error {
	if s.client == nil {
		return nil
	}
	task, err := s.client.Index(index).AddDocumentsWithContext(ctx, []searchDoc{doc}, strPtr("id"))
	if err != nil {
		return fmt.Errorf("index %s %s: %w", index, doc.ID, err)
	}
	log.Printf("Indexed %s %s, task id: %d", doc.Kind, doc.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) Delete(ctx context.Context, index, id string) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index(index).DeleteDocumentWithContext(ctx, id)
	return err
}

func (s *meiliSearchService) Search(ctx context.Context, query string, limit int) (*dto.SearchResponse, error) {
	res := &dto.SearchResponse{
		Query:   strings.TrimSpace(query),
		Events:  []dto.Hit{},
		Players: []dto.Hit{},
		Photos:  []dto.Hit{},
	}
	if s.client == nil || res.Query == "" {
		return res, nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	g, ctx := errgroup.WithContext(ctx)
	targets := map[string]*[]dto.Hit{
		EventsIndex:  &res.Events,
		PlayersIndex: &res.Players,
		PhotosIndex:  &res.Photos,
	}
	for index, dst := range targets {
		index, dst := index, dst
		g.Go(func() error {
			raw, err := s.client.Index(index).SearchRawWithContext(ctx, res.Query, &meilisearch.SearchRequest{
				Limit: int64(limit),
			})
			if err != nil {
				return fmt.Errorf("search %s: %w", index, err)
			}
			hits, err := decodeHits(*raw)
			if err != nil {
				return fmt.Errorf("decode %s hits: %w", index, err)
			}
			*dst = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func decodeHits(raw []byte) ([]dto.Hit, error) {
	var body struct {
		Hits []searchDoc `json:"hits"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	hits := make([]dto.Hit, 0, len(body.Hits))
	for _, d := range body.Hits {
		hits = append(hits, dto.Hit(d))
	}
	return hits, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
