package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	appidentity "github.com/balmstore/backend/internal/application/identity"
	"github.com/balmstore/backend/internal/interfaces/http/middleware"
)

const oauthStateCookie = "oauth_state"

// AuthHandler handles registration, login and OAuth endpoints
type AuthHandler struct {
	BaseHandler
	auth        *appidentity.AuthService
	frontendURL string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *appidentity.AuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{auth: auth, frontendURL: frontendURL}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	session, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// Me handles GET /auth/me and GET /auth/session
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.auth.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// GoogleLogin handles GET /auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := generateOAuthState()

	authURL, err := h.auth.GoogleAuthURL(state)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// state round-trips through a short-lived cookie
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	h.Success(c, gin.H{"url": authURL})
}

// GoogleCallback handles GET /auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		h.BadRequest(c, "Missing authorization code")
		return
	}

	state := c.Query("state")
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		h.Unauthorized(c, "OAuth state mismatch")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	session, err := h.auth.LoginWithGoogle(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, h.frontendURL+"/auth-callback?token="+session.AccessToken)
}

func generateOAuthState() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("oauth state generation failed: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
