package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	feed "github.com/atulpawar07/sp-cricket-hub/internal/modules/feed/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/photo/dto"
	search "github.com/atulpawar07/sp-cricket-hub/internal/modules/search/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
	commonDto "github.com/atulpawar07/sp-cricket-hub/pkg/dto"
)

type fakePhotoRepository struct {
	rows      []entity.Photo
	lastLimit int
	createErr error
}

func (f *fakePhotoRepository) List(_ context.Context, eventID *uuid.UUID, limit int) ([]entity.Photo, error) {
	f.lastLimit = limit
	out := []entity.Photo{}
	for _, p := range f.rows {
		if eventID != nil && (p.EventID == nil || *p.EventID != *eventID) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePhotoRepository) find(id uuid.UUID) int {
	for i, p := range f.rows {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakePhotoRepository) FindByID(_ context.Context, id uuid.UUID) (entity.Photo, error) {
	if i := f.find(id); i >= 0 {
		return f.rows[i], nil
	}
	return entity.Photo{}, apperror.ErrNotFound
}

func (f *fakePhotoRepository) Create(_ context.Context, in entity.PhotoInsert) (entity.Photo, error) {
	if f.createErr != nil {
		return entity.Photo{}, f.createErr
	}
	if err := in.Validate(); err != nil {
		return entity.Photo{}, err
	}
	p := in.Row()
	p.ID = uuid.New()
	p.CreatedAt = time.Now().Add(time.Duration(len(f.rows)) * time.Second)
	f.rows = append(f.rows, p)
	return p, nil
}

func (f *fakePhotoRepository) Update(_ context.Context, id uuid.UUID, patch entity.PhotoUpdate) (entity.Photo, error) {
	i := f.find(id)
	if i < 0 {
		return entity.Photo{}, apperror.ErrNotFound
	}
	patch.Apply(&f.rows[i])
	return f.rows[i], nil
}

func (f *fakePhotoRepository) Delete(_ context.Context, id uuid.UUID) error {
	i := f.find(id)
	if i < 0 {
		return apperror.ErrNotFound
	}
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	return nil
}

func (f *fakePhotoRepository) Count(context.Context) (int64, error) { return int64(len(f.rows)), nil }

type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (f *fakeStorage) UploadImage(_ context.Context, r io.Reader, folder, fileName string) (string, error) {
	_, _ = io.ReadAll(r)
	url := "https://cdn.test/" + folder + "/" + fileName
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeStorage) DeleteImage(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func newTestService() (*fakePhotoRepository, *fakeStorage, PhotoService) {
	repo := &fakePhotoRepository{}
	storage := &fakeStorage{}
	return repo, storage, NewPhotoService(repo, storage, search.NewMeiliSearchService(nil), feed.NewMemoryFeed())
}

func strPtr(s string) *string { return &s }

var uploader = session.Session{AccountID: uuid.New(), Role: entity.RoleAdmin}

func TestListPhotosDefaultsToTwelve(t *testing.T) {
	repo, _, svc := newTestService()
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		_, err := svc.CreatePhoto(ctx, uploader, dto.CreatePhotoRequest{ImageURL: "https://img.test/p.jpg"}, nil)
		require.NoError(t, err)
	}

	photos, err := svc.ListPhotos(ctx, dto.PhotoFilter{})
	require.NoError(t, err)
	assert.Len(t, photos, dto.DefaultLimit)
	assert.Equal(t, 12, repo.lastLimit)
	assert.True(t, photos[0].CreatedAt.After(photos[1].CreatedAt))

	_, err = svc.ListPhotos(ctx, dto.PhotoFilter{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.lastLimit)
}

func TestListPhotosByEvent(t *testing.T) {
	_, _, svc := newTestService()
	ctx := context.Background()
	eventID := uuid.New()
	idStr := eventID.String()

	_, err := svc.CreatePhoto(ctx, uploader, dto.CreatePhotoRequest{ImageURL: "https://img.test/a.jpg", EventID: &idStr}, nil)
	require.NoError(t, err)
	_, err = svc.CreatePhoto(ctx, uploader, dto.CreatePhotoRequest{ImageURL: "https://img.test/b.jpg"}, nil)
	require.NoError(t, err)

	photos, err := svc.ListPhotos(ctx, dto.PhotoFilter{EventID: idStr})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, eventID, *photos[0].EventID)
}

func TestCreatePhotoFromUpload(t *testing.T) {
	_, storage, svc := newTestService()
	p, err := svc.CreatePhoto(context.Background(), uploader, dto.CreatePhotoRequest{
		Title:       strPtr("<b>Winning</b> moment"),
		Description: strPtr("   "),
	}, &commonDto.UploadFile{Reader: strings.NewReader("jpg"), FileName: "win.jpg"})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.test/photos/win.jpg", p.ImageURL)
	require.NotNil(t, p.Title)
	assert.Equal(t, "Winning moment", *p.Title)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.EventID)
	assert.Equal(t, uploader.AccountID, p.UploadedBy)
	assert.Len(t, storage.uploaded, 1)
}

func TestCreatePhotoNeedsImage(t *testing.T) {
	_, _, svc := newTestService()
	_, err := svc.CreatePhoto(context.Background(), uploader, dto.CreatePhotoRequest{}, nil)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	bad := "not-a-uuid"
	_, err = svc.CreatePhoto(context.Background(), uploader, dto.CreatePhotoRequest{ImageURL: "https://x.test/a.png", EventID: &bad}, nil)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestFailedInsertRemovesUploadedImage(t *testing.T) {
	repo, storage, svc := newTestService()
	repo.createErr = errors.New("insert failed")

	_, err := svc.CreatePhoto(context.Background(), uploader, dto.CreatePhotoRequest{},
		&commonDto.UploadFile{Reader: strings.NewReader("jpg"), FileName: "lost.jpg"})
	require.Error(t, err)
	assert.Equal(t, []string{"https://cdn.test/photos/lost.jpg"}, storage.deleted)
}

func TestUpdateAndDeletePhoto(t *testing.T) {
	_, storage, svc := newTestService()
	ctx := context.Background()
	eventID := uuid.New().String()
	p, err := svc.CreatePhoto(ctx, uploader, dto.CreatePhotoRequest{ImageURL: "https://img.test/a.jpg", EventID: &eventID}, nil)
	require.NoError(t, err)

	updated, err := svc.UpdatePhoto(ctx, p.ID, dto.UpdatePhotoRequest{
		Title:   entity.Some(strPtr("Team photo")),
		EventID: entity.Null[string](),
	})
	require.NoError(t, err)
	assert.Equal(t, "Team photo", *updated.Title)
	assert.Nil(t, updated.EventID)
	assert.Equal(t, "https://img.test/a.jpg", updated.ImageURL)

	require.NoError(t, svc.DeletePhoto(ctx, p.ID))
	assert.Equal(t, []string{"https://img.test/a.jpg"}, storage.deleted)

	_, err = svc.GetPhoto(ctx, p.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
