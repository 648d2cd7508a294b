package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/event/dto"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/event/repository"
	feed "github.com/atulpawar07/sp-cricket-hub/internal/modules/feed/service"
	profileRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/profile/repository"
	search "github.com/atulpawar07/sp-cricket-hub/internal/modules/search/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
	commonDto "github.com/atulpawar07/sp-cricket-hub/pkg/dto"
	"github.com/atulpawar07/sp-cricket-hub/pkg/storage"
)

type EventService interface {
	ListEvents(ctx context.Context, filter dto.EventFilter) ([]dto.EventResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	CreateEvent(ctx context.Context, s session.Session, req dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	UploadEventImage(ctx context.Context, id uuid.UUID, file *commonDto.UploadFile) (*dto.EventResponse, error)
}

type eventService struct {
	repo         repository.EventRepository
	profiles     profileRepo.ProfileRepository
	imageStorage storage.ImageStorage
	search       search.SearchService
	feed         feed.FeedService
	sanitizer    *bluemonday.Policy
}

func NewEventService(
	repo repository.EventRepository,
	profiles profileRepo.ProfileRepository,
	imageStorage storage.ImageStorage,
	searchService search.SearchService,
	feedService feed.FeedService,
) EventService {
	return &eventService{
		repo:         repo,
		profiles:     profiles,
		imageStorage: imageStorage,
		search:       searchService,
		feed:         feedService,
		sanitizer:    bluemonday.UGCPolicy(),
	}
}

func (s *eventService) ListEvents(ctx context.Context, filter dto.EventFilter) ([]dto.EventResponse, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("to must not be before from: %w", apperror.ErrBadRequest)
	}

	events, err := s.repo.List(ctx, filter.From, filter.To, filter.Limit)
	if err != nil {
		return nil, err
	}
	return s.withCreators(ctx, events), nil
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.one(ctx, event), nil
}

func (s *eventService) CreateEvent(ctx context.Context, sess session.Session, req dto.CreateEventRequest) (*dto.EventResponse, error) {
	event, err := s.repo.Create(ctx, entity.EventInsert{
		Title:       strings.TrimSpace(req.Title),
		Description: s.clean(req.Description),
		EventDate:   req.EventDate,
		Location:    trimOptional(req.Location),
		ImageURL:    trimOptional(req.ImageURL),
		CreatedBy:   sess.AccountID,
	})
	if err != nil {
		return nil, err
	}

	s.index(ctx, event)
	res := s.one(ctx, event)
	if s.feed != nil {
		s.feed.Publish(ctx, feed.EventCreated, res)
	}
	return res, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (*dto.EventResponse, error) {
	patch := entity.EventUpdate{
		EventDate: req.EventDate,
		ImageURL:  req.ImageURL,
	}
	if req.Title.Set {
		patch.Title = entity.Some(strings.TrimSpace(req.Title.Value))
	}
	if req.Description.Set {
		patch.Description = entity.Some(s.clean(req.Description.Value))
	}
	if req.Location.Set {
		patch.Location = entity.Some(trimOptional(req.Location.Value))
	}

	event, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.index(ctx, event)
	return s.one(ctx, event), nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.Delete(ctx, search.EventsIndex, id.String()); err != nil {
			log.Printf("Failed to remove event %s from search: %v", id, err)
		}
	}
	if event.ImageURL != nil {
		s.deleteImage(ctx, *event.ImageURL)
	}
	return nil
}

func (s *eventService) UploadEventImage(ctx context.Context, id uuid.UUID, file *commonDto.UploadFile) (*dto.EventResponse, error) {
	if file == nil || file.Reader == nil {
		return nil, fmt.Errorf("image file is required: %w", apperror.ErrBadRequest)
	}
	if s.imageStorage == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.imageStorage.UploadImage(ctx, file.Reader, "events", file.FileName)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.Update(ctx, id, entity.EventUpdate{ImageURL: entity.Some(&url)})
	if err != nil {
		s.deleteImage(ctx, url)
		return nil, err
	}

	if current.ImageURL != nil {
		s.deleteImage(ctx, *current.ImageURL)
	}
	s.index(ctx, event)
	return s.one(ctx, event), nil
}

func (s *eventService) index(ctx context.Context, event entity.Event) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexEvent(ctx, event); err != nil {
		log.Printf("Failed to index event %s: %v", event.ID, err)
	}
}

func (s *eventService) deleteImage(ctx context.Context, url string) {
	if s.imageStorage == nil {
		return
	}
	if err := s.imageStorage.DeleteImage(ctx, url); err != nil && !errors.Is(err, storage.ErrForeignURL) {
		log.Printf("Failed to delete event image %s: %v", url, err)
	}
}

func (s *eventService) one(ctx context.Context, event entity.Event) *dto.EventResponse {
	res := s.withCreators(ctx, []entity.Event{event})
	return &res[0]
}

// withCreators attaches the creator's full name to each event. A failed
// profile lookup is logged and every name falls back to UnknownMember.
func (s *eventService) withCreators(ctx context.Context, events []entity.Event) []dto.EventResponse {
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	for _, e := range events {
		if !seen[e.CreatedBy] {
			seen[e.CreatedBy] = true
			ids = append(ids, e.CreatedBy)
		}
	}

	names := map[uuid.UUID]string{}
	if len(ids) > 0 {
		profiles, err := s.profiles.ListByUserIDs(ctx, ids)
		if err != nil {
			log.Printf("Failed to load event creators: %v", err)
		}
		for _, p := range profiles {
			names[p.UserID] = p.FullName
		}
	}

	out := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		name, ok := names[e.CreatedBy]
		if !ok {
			name = dto.UnknownMember
		}
		out = append(out, dto.EventResponse{Event: e, CreatorName: name})
	}
	return out
}

func (s *eventService) clean(v *string) *string {
	v = trimOptional(v)
	if v == nil {
		return nil
	}
	cleaned := strings.TrimSpace(s.sanitizer.Sanitize(*v))
	if cleaned == "" {
		return nil
	}
	return &cleaned
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
