package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

type staticRoles map[uuid.UUID]entity.AppRole

func (r staticRoles) ResolveRole(_ context.Context, id uuid.UUID) entity.AppRole {
	if role, ok := r[id]; ok {
		return role
	}
	return entity.RoleUser
}

func TestIssueAndLoad(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	roles := staticRoles{id: entity.RoleAdmin}
	m := NewManager("test-secret", time.Hour, roles, NewMemoryDenylist())

	token, issued, err := m.Issue(ctx, id, "captain@spcricket.club")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, issued.Role)
	assert.NotEmpty(t, issued.TokenID)

	loaded, err := m.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, id, loaded.AccountID)
	assert.Equal(t, "captain@spcricket.club", loaded.Email)
	assert.Equal(t, issued.TokenID, loaded.TokenID)
	assert.True(t, loaded.IsAdmin())
}

func TestRoleIsReReadNotTrustedFromToken(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	roles := staticRoles{id: entity.RoleAdmin}
	m := NewManager("test-secret", time.Hour, roles, NewMemoryDenylist())

	token, _, err := m.Issue(ctx, id, "a@b.c")
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &jwt.MapClaims{})
	require.NoError(t, err)
	assert.NotContains(t, *parsed.Claims.(*jwt.MapClaims), "role")

	delete(roles, id)
	loaded, err := m.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, loaded.Role, "demotion applies to existing tokens")
}

func TestLoadRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	m := NewManager("test-secret", time.Hour, staticRoles{}, NewMemoryDenylist())

	_, err := m.Load(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	other := NewManager("other-secret", time.Hour, staticRoles{}, NewMemoryDenylist())
	forged, _, err := other.Issue(ctx, id, "a@b.c")
	require.NoError(t, err)
	_, err = m.Load(ctx, forged)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	expiring := NewManager("test-secret", time.Minute, staticRoles{}, NewMemoryDenylist()).(*manager)
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expiring.Issue(ctx, id, "a@b.c")
	require.NoError(t, err)
	_, err = m.Load(ctx, old)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	m := NewManager("test-secret", time.Hour, staticRoles{}, NewMemoryDenylist())

	token, s, err := m.Issue(ctx, uuid.New(), "a@b.c")
	require.NoError(t, err)
	require.NoError(t, m.Revoke(ctx, s))

	_, err = m.Load(ctx, token)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	assert.Error(t, m.Revoke(ctx, Session{}))
}

func TestMemoryDenylistForgetsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDenylist().(*memoryDenylist)
	now := time.Now()
	d.now = func() time.Time { return now }

	require.NoError(t, d.Revoke(ctx, "a", now.Add(time.Minute)))
	require.NoError(t, d.Revoke(ctx, "b", now.Add(-time.Minute)))

	revoked, _ := d.IsRevoked(ctx, "a")
	assert.True(t, revoked)
	revoked, _ = d.IsRevoked(ctx, "b")
	assert.False(t, revoked)

	d.now = func() time.Time { return now.Add(2 * time.Minute) }
	revoked, _ = d.IsRevoked(ctx, "a")
	assert.False(t, revoked)
}

func TestAttachAndFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := Require(c)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	s := Session{AccountID: uuid.New(), Role: entity.RoleUser}
	Attach(c, s)

	got, ok := FromContext(c)
	require.True(t, ok)
	assert.Equal(t, s, got)
	assert.Equal(t, s.AccountID.String(), c.GetString("user_id"))
}
