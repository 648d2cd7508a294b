package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	profileDto "github.com/atulpawar07/sp-cricket-hub/internal/modules/profile/dto"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/profile/repository"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	commonDto "github.com/atulpawar07/sp-cricket-hub/pkg/dto"
	"github.com/atulpawar07/sp-cricket-hub/pkg/storage"
)

type ProfileService interface {
	GetCurrentProfile(ctx context.Context, s session.Session) (*profileDto.ProfileResponse, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (*profileDto.PublicProfileResponse, error)
	UpdateProfile(ctx context.Context, s session.Session, input profileDto.UpdateProfileInput, avatar *commonDto.UploadFile) (*profileDto.ProfileResponse, error)
}

type profileService struct {
	repo         repository.ProfileRepository
	imageStorage storage.ImageStorage
}

func NewProfileService(repo repository.ProfileRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{
		repo:         repo,
		imageStorage: imageStorage,
	}
}

func (s *profileService) GetCurrentProfile(ctx context.Context, sess session.Session) (*profileDto.ProfileResponse, error) {
	profile, err := s.repo.FindByUserID(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}
	return ownProfile(sess, profile), nil
}

func (s *profileService) GetProfileByID(ctx context.Context, id uuid.UUID) (*profileDto.PublicProfileResponse, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := profileDto.NewPublicProfile(profile)
	return &res, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, sess session.Session, input profileDto.UpdateProfileInput, avatar *commonDto.UploadFile) (*profileDto.ProfileResponse, error) {
	current, err := s.repo.FindByUserID(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}

	var patch entity.ProfileUpdate
	if input.FullName != nil {
		patch.FullName = entity.Some(strings.TrimSpace(*input.FullName))
	}
	if input.Phone != nil {
		patch.Phone = entity.Some(normalizeOptional(input.Phone))
	}

	if avatar != nil && avatar.Reader != nil {
		if s.imageStorage == nil {
			return nil, fmt.Errorf("image storage is not configured")
		}
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}
		patch.AvatarURL = entity.Some(&url)
	} else if input.ClearAvatar {
		patch.AvatarURL = entity.Null[string]()
	}

	updated, err := s.repo.UpdateByUserID(ctx, sess.AccountID, patch)
	if err != nil {
		return nil, err
	}

	if patch.AvatarURL.Set && current.AvatarURL != nil {
		s.deleteImage(ctx, *current.AvatarURL)
	}

	return ownProfile(sess, updated), nil
}

func (s *profileService) deleteImage(ctx context.Context, url string) {
	if s.imageStorage == nil {
		return
	}
	if err := s.imageStorage.DeleteImage(ctx, url); err != nil && !errors.Is(err, storage.ErrForeignURL) {
		log.Printf("Failed to delete old avatar %s: %v", url, err)
	}
}

func ownProfile(sess session.Session, p entity.Profile) *profileDto.ProfileResponse {
	return &profileDto.ProfileResponse{
		Profile: p,
		Email:   sess.Email,
		Role:    sess.Role,
		IsAdmin: sess.IsAdmin(),
	}
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
