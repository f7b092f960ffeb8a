package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/devboard/devboard/internal/constants"
	"github.com/devboard/devboard/internal/dto"
	apierrors "github.com/devboard/devboard/internal/errors"
	"github.com/devboard/devboard/internal/middleware"
	"github.com/devboard/devboard/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new developer account
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.Conflict(c, err.Error())
		case errors.Is(err, services.ErrUsernameRequired),
			errors.Is(err, services.ErrEmailRequired),
			errors.Is(err, services.ErrPasswordTooShort):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to register")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user_id": user.ID})
}

// Login verifies credentials and starts a session
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, "Invalid credentials")
			return
		}
		apierrors.InternalError(c, "Failed to log in")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	session.Set(constants.ContextKeyUserRole, string(user.Role))
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to create session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"temp_password": user.TempPassword,
		"user":          dto.ToUserDTO(*user),
	})
}

// Logout destroys the session
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Logout failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetCurrentUser returns the authenticated user
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ResetPassword replaces the caller's password and clears the temp flag
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ResetPasswordRequest struct {
		NewPassword string `json:"new_password" binding:"required"`
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ResetPassword(userID, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrPasswordTooShort) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CustomLinkAccess starts a session from a developer's custom access link
func (h *AuthHandler) CustomLinkAccess(c *gin.Context) {
	link := c.Param("link")

	user, err := h.authService.LoginByCustomLink(link)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLink) {
			apierrors.NotFound(c, "Invalid link")
			return
		}
		apierrors.InternalError(c, "Failed to resolve link")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	session.Set(constants.ContextKeyUserRole, string(user.Role))
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to create session")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// SecurityCheck verifies the caller's developer code
func (h *AuthHandler) SecurityCheck(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SecurityCheckRequest struct {
		DeveloperCode string `json:"developer_code" binding:"required"`
	}

	var req SecurityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.SecurityCheck(userID, req.DeveloperCode); err != nil {
		if errors.Is(err, services.ErrInvalidDeveloperCode) {
			apierrors.Unauthorized(c, "Invalid developer code")
			return
		}
		apierrors.InternalError(c, "Security check failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
