package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestEventInsertLeavesOptionalFieldsNull(t *testing.T) {
	creator := uuid.New()
	in := EventInsert{
		Title:     "Chashak Final",
		EventDate: time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC),
		CreatedBy: creator,
	}
	require.NoError(t, in.Validate())

	row := in.Row()
	assert.Nil(t, row.Description)
	assert.Nil(t, row.Location)
	assert.Nil(t, row.ImageURL)
	assert.Equal(t, uuid.Nil, row.ID)
	assert.True(t, row.CreatedAt.IsZero())
	assert.Equal(t, creator, row.CreatedBy)

	require.NoError(t, row.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, row.ID)
}

func TestPhotoInsertWithoutEvent(t *testing.T) {
	in := PhotoInsert{ImageURL: "https://cdn.example/p.webp", UploadedBy: uuid.New()}
	require.NoError(t, in.Validate())
	assert.Nil(t, in.Row().EventID)
	assert.Nil(t, in.Row().Title)
}

func TestUserRoleInsertDefaultsToUser(t *testing.T) {
	in := UserRoleInsert{UserID: uuid.New()}
	require.NoError(t, in.Validate())
	assert.Equal(t, RoleUser, in.Row().Role)

	admin := RoleAdmin
	assert.Equal(t, RoleAdmin, UserRoleInsert{UserID: in.UserID, Role: &admin}.Row().Role)

	bogus := AppRole("owner")
	assert.ErrorIs(t, UserRoleInsert{UserID: in.UserID, Role: &bogus}.Validate(), apperror.ErrInvalidInput)
}

func TestInsertRequiredFields(t *testing.T) {
	cases := map[string]interface{ Validate() error }{
		"event without title":     EventInsert{EventDate: time.Now(), CreatedBy: uuid.New()},
		"event without date":      EventInsert{Title: "Final", CreatedBy: uuid.New()},
		"event without creator":   EventInsert{Title: "Final", EventDate: time.Now()},
		"photo without image":     PhotoInsert{UploadedBy: uuid.New()},
		"player without name":     PlayerInsert{Name: "  "},
		"stat without player":     PlayerStatInsert{CreatedBy: uuid.New()},
		"profile without name":    ProfileInsert{UserID: uuid.New()},
		"profile without account": ProfileInsert{FullName: "Rohit"},
		"role without account":    UserRoleInsert{},
	}

	for name, in := range cases {
		assert.ErrorIs(t, in.Validate(), apperror.ErrInvalidInput, name)
	}
}

func TestPlayerStatCountersMustBeNonNegative(t *testing.T) {
	in := PlayerStatInsert{PlayerID: uuid.New(), CreatedBy: uuid.New(), RunsScored: intPtr(54), Sixes: intPtr(-1)}
	err := in.Validate()
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, err.Error(), "sixes")

	in.Sixes = intPtr(0)
	assert.NoError(t, in.Validate())

	patch := PlayerStatUpdate{WicketsTaken: Some(intPtr(-2))}
	assert.ErrorIs(t, patch.Validate(), apperror.ErrInvalidInput)
	assert.NoError(t, PlayerStatUpdate{WicketsTaken: Null[int]()}.Validate())
}

func TestEmptyPatchIsNoOp(t *testing.T) {
	now := time.Now().UTC()
	id := uuid.New()

	event := Event{ID: id, Title: "Final", Location: strPtr("Oval"), CreatedAt: now, UpdatedAt: now}
	before := event
	EventUpdate{}.Apply(&event)
	assert.Equal(t, before, event)
	assert.Empty(t, EventUpdate{}.Columns())

	photo := Photo{ID: id, ImageURL: "https://cdn.example/p.webp"}
	beforePhoto := photo
	PhotoUpdate{}.Apply(&photo)
	assert.Equal(t, beforePhoto, photo)
	assert.Empty(t, PhotoUpdate{}.Columns())

	player := Player{ID: id, Name: "Rohit", JerseyNumber: intPtr(45)}
	beforePlayer := player
	PlayerUpdate{}.Apply(&player)
	assert.Equal(t, beforePlayer, player)
	assert.Empty(t, PlayerUpdate{}.Columns())

	stat := PlayerStat{ID: id, RunsScored: intPtr(12)}
	beforeStat := stat
	PlayerStatUpdate{}.Apply(&stat)
	assert.Equal(t, beforeStat, stat)
	assert.Empty(t, PlayerStatUpdate{}.Columns())

	profile := Profile{ID: id, FullName: "Rohit", Phone: strPtr("+91 98")}
	beforeProfile := profile
	ProfileUpdate{}.Apply(&profile)
	assert.Equal(t, beforeProfile, profile)
	assert.Empty(t, ProfileUpdate{}.Columns())

	role := UserRole{ID: id, Role: RoleAdmin}
	beforeRole := role
	UserRoleUpdate{}.Apply(&role)
	assert.Equal(t, beforeRole, role)
	assert.Empty(t, UserRoleUpdate{}.Columns())
}

func TestUpdateValidation(t *testing.T) {
	assert.ErrorIs(t, EventUpdate{Title: Some("")}.Validate(), apperror.ErrInvalidInput)
	assert.ErrorIs(t, PhotoUpdate{ImageURL: Some(" ")}.Validate(), apperror.ErrInvalidInput)
	assert.ErrorIs(t, UserRoleUpdate{Role: Some(AppRole("root"))}.Validate(), apperror.ErrInvalidInput)
	assert.NoError(t, PhotoUpdate{Title: Null[string]()}.Validate())
}

func TestUpdateRejectsEmptyNotNullColumns(t *testing.T) {
	patches := map[string]interface{ Validate() error }{
		"event created_by":     EventUpdate{CreatedBy: Some(uuid.Nil)},
		"event updated_at":     EventUpdate{UpdatedAt: Some(time.Time{})},
		"photo uploaded_by":    PhotoUpdate{UploadedBy: Some(uuid.Nil)},
		"photo created_at":     PhotoUpdate{CreatedAt: Some(time.Time{})},
		"player created_at":    PlayerUpdate{CreatedAt: Some(time.Time{})},
		"stat created_by":      PlayerStatUpdate{CreatedBy: Some(uuid.Nil)},
		"stat created_at":      PlayerStatUpdate{CreatedAt: Some(time.Time{})},
		"profile updated_at":   ProfileUpdate{UpdatedAt: Some(time.Time{})},
		"user role user_id":    UserRoleUpdate{UserID: Some(uuid.Nil)},
		"user role created_at": UserRoleUpdate{CreatedAt: Some(time.Time{})},
	}
	for name, patch := range patches {
		assert.ErrorIs(t, patch.Validate(), apperror.ErrInvalidInput, name)
	}

	assert.NoError(t, EventUpdate{CreatedBy: Some(uuid.New()), CreatedAt: Some(time.Now())}.Validate())
	assert.NoError(t, UserRoleUpdate{UserID: Some(uuid.New())}.Validate())
}
