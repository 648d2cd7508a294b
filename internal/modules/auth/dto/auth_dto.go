package dto

import (
	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
)

type SignUpInput struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	FullName string  `json:"full_name" binding:"required,max=120"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
}

type SignInInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"` // seconds
	Session     session.Session `json:"session"`
	Profile     *entity.Profile `json:"profile,omitempty"`
}

type SessionResponse struct {
	Session session.Session `json:"session"`
	Profile *entity.Profile `json:"profile,omitempty"`
	IsAdmin bool            `json:"is_admin"`
}

// GoogleUser is the subset of the Google userinfo payload used for sign-in.
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
