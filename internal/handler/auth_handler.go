package handler

import (
	"net/http"
	"time"

	"hospital-management/internal/middleware"
	"hospital-management/internal/service"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// LoginRequest accepts a username or an email as identifier
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (r LoginRequest) identifier() string {
	switch {
	case r.Identifier != "":
		return r.Identifier
	case r.Username != "":
		return r.Username
	default:
		return r.Email
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.identifier(), req.Password)
	if err != nil {
		respondError(c, err, "Failed to login")
		return
	}

	h.setSessionCookie(c, response.Token, response.ExpiresAt)
	utils.SuccessResponse(c, response)
}

// Register handles patient self registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if !utils.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		respondError(c, err, "Failed to register")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"user_id":  user.ID,
		"redirect": "/login",
	})
}

// Logout destroys the session
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetIdentity(c)); err != nil {
		respondError(c, err, "Failed to logout")
		return
	}
	h.clearSessionCookie(c)
	utils.MessageResponse(c, "Logged out successfully")
}

// Refresh re-signs the token of a live session
func (h *AuthHandler) Refresh(c *gin.Context) {
	response, err := h.authService.Refresh(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondError(c, err, "Failed to refresh session")
		return
	}
	h.setSessionCookie(c, response.Token, response.ExpiresAt)
	utils.SuccessResponse(c, response)
}

// Me returns the current user
func (h *AuthHandler) Me(c *gin.Context) {
	me, err := h.authService.Me(middleware.GetIdentity(c))
	if err != nil {
		respondError(c, err, "Failed to fetch profile")
		return
	}
	utils.SuccessResponse(c, me)
}

// UpdateProfile edits the current user
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req service.ProfileInput
	if !utils.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(middleware.GetIdentity(c), req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	utils.SuccessResponse(c, user)
}
