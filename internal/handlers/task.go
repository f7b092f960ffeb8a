package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devboard/devboard/internal/dto"
	apierrors "github.com/devboard/devboard/internal/errors"
	"github.com/devboard/devboard/internal/middleware"
	"github.com/devboard/devboard/internal/models"
	"github.com/devboard/devboard/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return id, true
}

// ListTasks returns every task with assignee and creator usernames joined in
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListClaimableTasks returns the open tasks
func (h *TaskHandler) ListClaimableTasks(c *gin.Context) {
	tasks, err := h.taskService.ListClaimableTasks()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch claimable tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListMyTasks returns the tasks assigned to the current user
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListAssignedTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns one task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Status      string     `json:"status"`
		Priority    string     `json:"priority"`
		AssignedTo  *uint64    `json:"assigned_to"`
		DueDate     *time.Time `json:"due_date"`
		Game        string     `json:"game"`
		IsClaimable bool       `json:"is_claimable"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		Game:        req.Game,
		Claimable:   req.IsClaimable,
		CreatorID:   userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleRequired),
			errors.Is(err, services.ErrInvalidStatus),
			errors.Is(err, services.ErrInvalidPriority),
			errors.Is(err, services.ErrInvalidAssignee):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create task")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task_id": task.ID})
}

// UpdateTask replaces the editable fields of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Status      string     `json:"status"`
		Priority    string     `json:"priority"`
		AssignedTo  *uint64    `json:"assigned_to"`
		DueDate     *time.Time `json:"due_date"`
		Game        string     `json:"game"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		Game:        req.Game,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrTitleRequired),
			errors.Is(err, services.ErrInvalidStatus),
			errors.Is(err, services.ErrInvalidPriority),
			errors.Is(err, services.ErrInvalidAssignee):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update task")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClaimTask lets the current user claim an open task. All failure causes
// collapse into one conflict response.
func (h *TaskHandler) ClaimTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.taskService.ClaimTask(id, userID); err != nil {
		if errors.Is(err, services.ErrTaskNotAvailable) {
			apierrors.Conflict(c, "Task not available or already claimed")
			return
		}
		apierrors.InternalError(c, "Failed to claim task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdvanceTask moves a task one step along the status cycle
func (h *TaskHandler) AdvanceTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	task, err := h.taskService.AdvanceStatus(id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrTaskPermissionDenied):
			apierrors.Forbidden(c, "")
		default:
			apierrors.InternalError(c, "Failed to advance task")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}
