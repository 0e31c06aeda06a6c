package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/apperrors"
	"github.com/yukikurage/project-tracker-api/internal/config"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/response"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

type signupRequest struct {
	Name     *string `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
}

// validate aggregates every field failure into one list.
func (r *signupRequest) validate() []string {
	var messages []string
	if r.Email == "" {
		messages = append(messages, "email is required")
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		messages = append(messages, "email must be a valid email address")
	}
	if len(r.Password) < constants.MinPasswordLength {
		messages = append(messages, fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
	}
	if r.Name != nil && len(*r.Name) > constants.MaxNameLength {
		messages = append(messages, fmt.Sprintf("name must be at most %d characters", constants.MaxNameLength))
	}
	return messages
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperrors.Validation([]string{"invalid request body"}))
		return
	}
	if messages := req.validate(); len(messages) > 0 {
		response.Fail(c, apperrors.Validation(messages))
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Respond(c, http.StatusCreated, dto.ToUserDTO(*user))
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *signinRequest) validate() []string {
	var messages []string
	if r.Email == "" {
		messages = append(messages, "email is required")
	}
	if r.Password == "" {
		messages = append(messages, "password is required")
	}
	return messages
}

// Signin authenticates a user, sets the identity token cookie, and returns
// the token.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperrors.Validation([]string{"invalid request body"}))
		return
	}
	if messages := req.validate(); len(messages) > 0 {
		response.Fail(c, apperrors.Validation(messages))
		return
	}

	_, signed, err := h.authService.Signin(services.SigninInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	isProduction := h.cfg.GinMode == "release"
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(constants.AuthCookieName, signed, int(h.cfg.TokenTTL.Seconds()), "/", "", isProduction, true)

	response.Respond(c, http.StatusOK, gin.H{"token": signed})
}

// Signout clears the identity token cookie. The token itself stays valid
// until expiry; there is no server-side revocation.
func (h *AuthHandler) Signout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(constants.AuthCookieName, "", -1, "/", "", h.cfg.GinMode == "release", true)

	response.Respond(c, http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// GetProfile returns the authenticated user.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Fail(c, apperrors.Unauthenticated("missing token"))
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Respond(c, http.StatusOK, dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		response.Fail(c, apperrors.Conflict(err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Fail(c, apperrors.Unauthenticated(err.Error()))
	case errors.Is(err, services.ErrUserNotFound):
		response.Fail(c, apperrors.NotFound(err.Error()))
	default:
		response.Fail(c, err)
	}
}
