package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devboard/devboard/internal/dto"
	apierrors "github.com/devboard/devboard/internal/errors"
	"github.com/devboard/devboard/internal/services"
)

type DeveloperHandler struct {
	userService *services.UserService
}

func NewDeveloperHandler(userService *services.UserService) *DeveloperHandler {
	return &DeveloperHandler{
		userService: userService,
	}
}

// ListUsers returns all users
func (h *DeveloperHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	dtos := make([]dto.UserDTO, len(users))
	for i, user := range users {
		dtos[i] = dto.ToUserDTO(user)
	}
	c.JSON(http.StatusOK, dtos)
}

// ListDevelopers returns the developer roster with task and completion counts
func (h *DeveloperHandler) ListDevelopers(c *gin.Context) {
	stats, err := h.userService.ListDevelopers()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch developers")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ProvisionDeveloper creates a developer account with access credentials
func (h *DeveloperHandler) ProvisionDeveloper(c *gin.Context) {
	type ProvisionRequest struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.userService.ProvisionDeveloper(services.ProvisionDeveloperInput{
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
			apierrors.InternalError(c, "Failed to provision developer")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"user_id":        result.User.ID,
		"custom_link":    "/dev/" + result.CustomLink,
		"developer_code": result.DeveloperCode,
	})
}

// GenerateLink issues a fresh custom access link for a developer
func (h *DeveloperHandler) GenerateLink(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid developer ID")
		return
	}

	link, err := h.userService.RegenerateCustomLink(id)
	if err != nil {
		if errors.Is(err, services.ErrDeveloperNotFound) {
			apierrors.NotFound(c, "Developer not found")
			return
		}
		apierrors.InternalError(c, "Failed to generate link")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"link":    fmt.Sprintf("/dev/%s", link),
	})
}
