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
	feed "github.com/atulpawar07/sp-cricket-hub/internal/modules/feed/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/photo/dto"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/photo/repository"
	search "github.com/atulpawar07/sp-cricket-hub/internal/modules/search/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
	commonDto "github.com/atulpawar07/sp-cricket-hub/pkg/dto"
	"github.com/atulpawar07/sp-cricket-hub/pkg/storage"
)

type PhotoService interface {
	ListPhotos(ctx context.Context, filter dto.PhotoFilter) ([]entity.Photo, error)
	GetPhoto(ctx context.Context, id uuid.UUID) (*entity.Photo, error)
	// CreatePhoto stores file when given, otherwise uses req.ImageURL.
	CreatePhoto(ctx context.Context, s session.Session, req dto.CreatePhotoRequest, file *commonDto.UploadFile) (*entity.Photo, error)
	UpdatePhoto(ctx context.Context, id uuid.UUID, req dto.UpdatePhotoRequest) (*entity.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
}

type photoService struct {
	repo         repository.PhotoRepository
	imageStorage storage.ImageStorage
	search       search.SearchService
	feed         feed.FeedService
	sanitizer    *bluemonday.Policy
}

func NewPhotoService(
	repo repository.PhotoRepository,
	imageStorage storage.ImageStorage,
	searchService search.SearchService,
	feedService feed.FeedService,
) PhotoService {
	return &photoService{
		repo:         repo,
		imageStorage: imageStorage,
		search:       searchService,
		feed:         feedService,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func (s *photoService) ListPhotos(ctx context.Context, filter dto.PhotoFilter) ([]entity.Photo, error) {
	var eventID *uuid.UUID
	if filter.EventID != "" {
		id, err := uuid.Parse(filter.EventID)
		if err != nil {
			return nil, fmt.Errorf("invalid event_id: %w", apperror.ErrBadRequest)
		}
		eventID = &id
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = dto.DefaultLimit
	}
	return s.repo.List(ctx, eventID, limit)
}

func (s *photoService) GetPhoto(ctx context.Context, id uuid.UUID) (*entity.Photo, error) {
	photo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (s *photoService) CreatePhoto(ctx context.Context, sess session.Session, req dto.CreatePhotoRequest, file *commonDto.UploadFile) (*entity.Photo, error) {
	eventID, err := parseOptionalID(req.EventID)
	if err != nil {
		return nil, err
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	uploaded := false
	if file != nil && file.Reader != nil {
		if s.imageStorage == nil {
			return nil, fmt.Errorf("image storage is not configured")
		}
		imageURL, err = s.imageStorage.UploadImage(ctx, file.Reader, "photos", file.FileName)
		if err != nil {
			return nil, err
		}
		uploaded = true
	}
	if imageURL == "" {
		return nil, fmt.Errorf("an image file or image_url is required: %w", apperror.ErrBadRequest)
	}

	photo, err := s.repo.Create(ctx, entity.PhotoInsert{
		Title:       s.clean(req.Title),
		Description: s.clean(req.Description),
		ImageURL:    imageURL,
		EventID:     eventID,
		UploadedBy:  sess.AccountID,
	})
	if err != nil {
		if uploaded {
			s.deleteImage(ctx, imageURL)
		}
		return nil, err
	}

	s.index(ctx, photo)
	if s.feed != nil {
		s.feed.Publish(ctx, feed.PhotoCreated, photo)
	}
	return &photo, nil
}

func (s *photoService) UpdatePhoto(ctx context.Context, id uuid.UUID, req dto.UpdatePhotoRequest) (*entity.Photo, error) {
	var patch entity.PhotoUpdate
	if req.Title.Set {
		patch.Title = entity.Some(s.clean(req.Title.Value))
	}
	if req.Description.Set {
		patch.Description = entity.Some(s.clean(req.Description.Value))
	}
	if req.EventID.Set {
		eventID, err := parseOptionalID(req.EventID.Value)
		if err != nil {
			return nil, err
		}
		patch.EventID = entity.Some(eventID)
	}

	photo, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.index(ctx, photo)
	return &photo, nil
}

func (s *photoService) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	photo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.Delete(ctx, search.PhotosIndex, id.String()); err != nil {
			log.Printf("Failed to remove photo %s from search: %v", id, err)
		}
	}
	s.deleteImage(ctx, photo.ImageURL)
	return nil
}

func (s *photoService) index(ctx context.Context, photo entity.Photo) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexPhoto(ctx, photo); err != nil {
		log.Printf("Failed to index photo %s: %v", photo.ID, err)
	}
}

func (s *photoService) deleteImage(ctx context.Context, url string) {
	if s.imageStorage == nil || url == "" {
		return
	}
	if err := s.imageStorage.DeleteImage(ctx, url); err != nil && !errors.Is(err, storage.ErrForeignURL) {
		log.Printf("Failed to delete photo image %s: %v", url, err)
	}
}

func (s *photoService) clean(v *string) *string {
	if v == nil {
		return nil
	}
	cleaned := strings.TrimSpace(s.sanitizer.Sanitize(*v))
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func parseOptionalID(v *string) (*uuid.UUID, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*v))
	if err != nil {
		return nil, fmt.Errorf("invalid event_id: %w", apperror.ErrBadRequest)
	}
	return &id, nil
}
