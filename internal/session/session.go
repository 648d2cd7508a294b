// Package session owns the lifecycle of an authenticated session: issued on
// sign-in, refreshed on every authenticated request, revoked on sign-out.
//
// The JWT only names the account. The role is never taken from the token; it
// is re-read from user_roles whenever the session is refreshed.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

type Session struct {
	AccountID uuid.UUID      `json:"account_id"`
	Email     string         `json:"email"`
	Role      entity.AppRole `json:"role"`
	TokenID   string         `json:"-"`
	IssuedAt  time.Time      `json:"issued_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

func (s Session) IsAdmin() bool {
	return s.Role == entity.RoleAdmin
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RoleResolver answers the current role of an account.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID uuid.UUID) entity.AppRole
}

type Manager interface {
	Issue(ctx context.Context, accountID uuid.UUID, email string) (string, Session, error)
	// Load verifies token and returns the session it names with a freshly
	// resolved role.
	Load(ctx context.Context, token string) (Session, error)
	Refresh(ctx context.Context, s Session) Session
	Revoke(ctx context.Context, s Session) error
}

type manager struct {
	secret   []byte
	ttl      time.Duration
	roles    RoleResolver
	denylist Denylist
	now      func() time.Time
}

func NewManager(secret string, ttl time.Duration, roles RoleResolver, denylist Denylist) Manager {
	return &manager{
		secret:   []byte(secret),
		ttl:      ttl,
		roles:    roles,
		denylist: denylist,
		now:      time.Now,
	}
}

func (m *manager) Issue(ctx context.Context, accountID uuid.UUID, email string) (string, Session, error) {
	now := m.now()
	s := Session{
		AccountID: accountID,
		Email:     email,
		TokenID:   uuid.NewString(),
		IssuedAt:  now.Truncate(time.Second),
		ExpiresAt: now.Add(m.ttl).Truncate(time.Second),
	}

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.TokenID,
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, m.Refresh(ctx, s), nil
}

func (m *manager) Load(ctx context.Context, tokenString string) (Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return Session{}, fmt.Errorf("invalid or expired token: %w", apperror.ErrUnauthorized)
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return Session{}, fmt.Errorf("invalid token claims: %w", apperror.ErrUnauthorized)
	}

	revoked, err := m.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Session{}, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return Session{}, fmt.Errorf("session has been signed out: %w", apperror.ErrUnauthorized)
	}

	s := Session{
		AccountID: accountID,
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	return m.Refresh(ctx, s), nil
}

func (m *manager) Refresh(ctx context.Context, s Session) Session {
	s.Role = m.roles.ResolveRole(ctx, s.AccountID)
	return s
}

func (m *manager) Revoke(ctx context.Context, s Session) error {
	if s.TokenID == "" {
		return errors.New("session has no token id")
	}
	return m.denylist.Revoke(ctx, s.TokenID, s.ExpiresAt)
}
