package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulpawar07/sp-cricket-hub/internal/modules/auth/dto"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
)

type stubAuthService struct {
	signUpErr error
	google    bool
}

func (s *stubAuthService) SignUp(_ context.Context, input dto.SignUpInput) (*dto.AuthResponse, error) {
	if s.signUpErr != nil {
		return nil, s.signUpErr
	}
	return &dto.AuthResponse{AccessToken: "tok", TokenType: "Bearer"}, nil
}

func (s *stubAuthService) SignIn(context.Context, dto.SignInInput) (*dto.AuthResponse, error) {
	return nil, apperror.ErrUnauthorized
}

func (s *stubAuthService) SignOut(context.Context, session.Session) error { return nil }

func (s *stubAuthService) Session(_ context.Context, sess session.Session) (*dto.SessionResponse, error) {
	return &dto.SessionResponse{Session: sess}, nil
}

func (s *stubAuthService) GoogleEnabled() bool { return s.google }

func (s *stubAuthService) GoogleLoginURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (s *stubAuthService) GoogleCallback(context.Context, string) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{AccessToken: "google-token"}, nil
}

func newRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc, "http://frontend.test", false)
	r := gin.New()
	r.POST("/sign-up", h.SignUp)
	r.POST("/sign-in", h.SignIn)
	r.GET("/session", h.Session)
	r.GET("/google/login", h.GoogleLogin)
	r.GET("/google/callback", h.GoogleCallback)
	return r
}

func TestSignUpValidation(t *testing.T) {
	r := newRouter(&stubAuthService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sign-up", strings.NewReader(`{"email":"bad","password":"short"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Email must be a valid email")
	assert.Contains(t, body["error"], "Full name is required")
}

func TestSignUpStatusCodes(t *testing.T) {
	payload := `{"email":"a@example.com","password":"long-enough","full_name":"A"}`

	w := httptest.NewRecorder()
	newRouter(&stubAuthService{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sign-up", strings.NewReader(payload)))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	newRouter(&stubAuthService{signUpErr: apperror.ErrConflict}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sign-up", strings.NewReader(payload)))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignInBadCredentials(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&stubAuthService{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sign-in",
		strings.NewReader(`{"email":"a@example.com","password":"x"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionNeedsAuth(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&stubAuthService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGoogleLoginDisabled(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&stubAuthService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/google/login", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGoogleFlowChecksState(t *testing.T) {
	r := newRouter(&stubAuthService{google: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/google/login", nil))
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)

	var state *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == oauthStateCookie {
			state = c
		}
	}
	require.NotNil(t, state)
	assert.Contains(t, w.Header().Get("Location"), "state="+state.Value)

	// mismatched state
	req := httptest.NewRequest(http.MethodGet, "/google/callback?code=c&state=other", nil)
	req.AddCookie(state)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "http://frontend.test/login?error="))

	req = httptest.NewRequest(http.MethodGet, "/google/callback?code=c&state="+state.Value, nil)
	req.AddCookie(state)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://frontend.test/auth/google/callback?token=google-token", w.Header().Get("Location"))
}
