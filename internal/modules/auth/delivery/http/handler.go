package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/atulpawar07/sp-cricket-hub/internal/modules/auth/dto"
	auth "github.com/atulpawar07/sp-cricket-hub/internal/modules/auth/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/response"
	"github.com/atulpawar07/sp-cricket-hub/pkg/validator"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	authService auth.AuthService
	frontendURL string
	secure      bool
}

func NewAuthHandler(authService auth.AuthService, frontendURL string, secure bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		frontendURL: frontendURL,
		secure:      secure,
	}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var input dto.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.SignUp(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var input dto.SignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.SignIn(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	sess, err := session.Require(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), sess); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func (h *AuthHandler) Session(c *gin.Context) {
	sess, err := session.Require(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.authService.Session(c.Request.Context(), sess)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if !h.authService.GoogleEnabled() {
		c.JSON(http.StatusNotFound, gin.H{"error": "google sign-in is not configured"})
		return
	}

	state, err := newState()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.secure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.authService.GoogleLoginURL(state))
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code not found"})
		return
	}

	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || expected == "" || expected != c.Query("state") {
		h.redirectError(c, "invalid oauth state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secure, true)

	res, err := h.authService.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		h.redirectError(c, err.Error())
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/auth/google/callback?token="+url.QueryEscape(res.AccessToken))
}

func (h *AuthHandler) redirectError(c *gin.Context, msg string) {
	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login?error="+url.QueryEscape(msg))
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
