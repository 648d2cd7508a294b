package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/auth/dto"
	"github.com/atulpawar07/sp-cricket-hub/internal/modules/auth/repository"
	profileRepo "github.com/atulpawar07/sp-cricket-hub/internal/modules/profile/repository"
	role "github.com/atulpawar07/sp-cricket-hub/internal/modules/role/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/ratelimit"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

var ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperror.ErrUnauthorized)

type AuthService interface {
	SignUp(ctx context.Context, input dto.SignUpInput) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, input dto.SignInInput) (*dto.AuthResponse, error)
	SignOut(ctx context.Context, s session.Session) error
	Session(ctx context.Context, s session.Session) (*dto.SessionResponse, error)
	GoogleEnabled() bool
	GoogleLoginURL(state string) string
	GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error)
}

type Options struct {
	SignInWindow time.Duration
	AdminEmail   string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// GoogleUserFetcher loads the userinfo of the account behind an OAuth token.
type GoogleUserFetcher func(ctx context.Context, client *http.Client) (*dto.GoogleUser, error)

type authService struct {
	accounts     repository.AccountRepository
	profiles     profileRepo.ProfileRepository
	roles        role.RoleService
	sessions     session.Manager
	limiter      ratelimit.Limiter
	signInWindow time.Duration
	adminEmail   string
	googleConfig *oauth2.Config
	fetchGoogle  GoogleUserFetcher
}

func NewAuthService(
	accounts repository.AccountRepository,
	profiles profileRepo.ProfileRepository,
	roles role.RoleService,
	sessions session.Manager,
	limiter ratelimit.Limiter,
	opts Options,
) AuthService {
	s := &authService{
		accounts:     accounts,
		profiles:     profiles,
		roles:        roles,
		sessions:     sessions,
		limiter:      limiter,
		signInWindow: opts.SignInWindow,
		adminEmail:   normalizeEmail(opts.AdminEmail),
		fetchGoogle:  fetchGoogleUser,
	}

	if opts.GoogleClientID != "" && opts.GoogleClientSecret != "" && opts.GoogleRedirectURL != "" {
		s.googleConfig = &oauth2.Config{
			ClientID:     opts.GoogleClientID,
			ClientSecret: opts.GoogleClientSecret,
			RedirectURL:  opts.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}

	return s
}

func (s *authService) SignUp(ctx context.Context, input dto.SignUpInput) (*dto.AuthResponse, error) {
	email := normalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("full name is required: %w", apperror.ErrInvalidInput)
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", apperror.ErrConflict)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &entity.Account{Email: email, PasswordHash: string(hashed)}
	profile, err := s.accounts.CreateMember(ctx, account, entity.ProfileInsert{
		FullName: fullName,
		Phone:    trimOptional(input.Phone),
	})
	if err != nil {
		return nil, err
	}

	s.promoteAdmin(ctx, account)
	return s.issue(ctx, account, &profile)
}

func (s *authService) SignIn(ctx context.Context, input dto.SignInInput) (*dto.AuthResponse, error) {
	email := normalizeEmail(input.Email)

	if s.limiter != nil && s.signInWindow > 0 {
		ok, retry, err := s.limiter.Allow(ctx, "signin:"+email, s.signInWindow)
		if err != nil {
			log.Printf("sign-in rate limit check failed for %s: %v", email, err)
		} else if !ok {
			return nil, fmt.Errorf("too many sign-in attempts, retry in %s: %w",
				retry.Round(time.Second), apperror.ErrRateLimitExceeded)
		}
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, account, s.findProfile(ctx, account.ID))
}

func (s *authService) SignOut(ctx context.Context, sess session.Session) error {
	return s.sessions.Revoke(ctx, sess)
}

func (s *authService) Session(ctx context.Context, sess session.Session) (*dto.SessionResponse, error) {
	sess = s.sessions.Refresh(ctx, sess)
	return &dto.SessionResponse{
		Session: sess,
		Profile: s.findProfile(ctx, sess.AccountID),
		IsAdmin: sess.IsAdmin(),
	}, nil
}

func (s *authService) GoogleEnabled() bool {
	return s.googleConfig != nil
}

func (s *authService) GoogleLoginURL(state string) string {
	if s.googleConfig == nil {
		return ""
	}
	return s.googleConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *authService) GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	if s.googleConfig == nil {
		return nil, fmt.Errorf("google sign-in is not configured: %w", apperror.ErrNotFound)
	}

	token, err := s.googleConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %v: %w", err, apperror.ErrUnauthorized)
	}

	googleUser, err := s.fetchGoogle(ctx, s.googleConfig.Client(ctx, token))
	if err != nil {
		return nil, err
	}
	return s.signInGoogleUser(ctx, googleUser)
}

func (s *authService) signInGoogleUser(ctx context.Context, googleUser *dto.GoogleUser) (*dto.AuthResponse, error) {
	if googleUser.Email == "" || !googleUser.VerifiedEmail {
		return nil, fmt.Errorf("google account email is not verified: %w", apperror.ErrUnauthorized)
	}
	email := normalizeEmail(googleUser.Email)

	account, err := s.accounts.FindByGoogleID(ctx, googleUser.ID)
	if err == nil {
		return s.issue(ctx, account, s.findProfile(ctx, account.ID))
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	account, err = s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.accounts.LinkGoogle(ctx, account.ID, googleUser.ID); err != nil {
			log.Printf("Failed to link Google account for %s: %v", email, err)
		}
		return s.issue(ctx, account, s.findProfile(ctx, account.ID))
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, err
	}

	// Google-only accounts get an unusable random password.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	fullName := strings.TrimSpace(googleUser.Name)
	if fullName == "" {
		fullName = strings.Split(email, "@")[0]
	}
	googleID := googleUser.ID
	account = &entity.Account{Email: email, PasswordHash: string(hashed), GoogleID: &googleID}

	insert := entity.ProfileInsert{FullName: fullName}
	if googleUser.Picture != "" {
		insert.AvatarURL = &googleUser.Picture
	}
	profile, err := s.accounts.CreateMember(ctx, account, insert)
	if err != nil {
		return nil, err
	}

	s.promoteAdmin(ctx, account)
	return s.issue(ctx, account, &profile)
}

func (s *authService) issue(ctx context.Context, account *entity.Account, profile *entity.Profile) (*dto.AuthResponse, error) {
	token, sess, err := s.sessions.Issue(ctx, account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(sess.ExpiresAt).Seconds()),
		Session:     sess,
		Profile:     profile,
	}, nil
}

func (s *authService) findProfile(ctx context.Context, accountID uuid.UUID) *entity.Profile {
	p, err := s.profiles.FindByUserID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			log.Printf("Failed to load profile for %s: %v", accountID, err)
		}
		return nil
	}
	return &p
}

// promoteAdmin grants the admin role to the configured ADMIN_EMAIL account.
func (s *authService) promoteAdmin(ctx context.Context, account *entity.Account) {
	if s.adminEmail == "" || account.Email != s.adminEmail {
		return
	}
	if err := s.roles.SetRole(ctx, account.ID, entity.RoleAdmin); err != nil {
		log.Printf("Failed to promote %s to admin: %v", account.Email, err)
	}
}

func fetchGoogleUser(ctx context.Context, client *http.Client) (*dto.GoogleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned %s: %w", resp.Status, apperror.ErrUnauthorized)
	}

	var user dto.GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
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
