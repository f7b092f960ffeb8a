package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/devboard/devboard/internal/authz"
	"github.com/devboard/devboard/internal/models"
	"github.com/devboard/devboard/internal/notify"
	"github.com/devboard/devboard/internal/repository"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTitleRequired        = errors.New("task title is required")
	ErrInvalidStatus        = errors.New("invalid task status")
	ErrInvalidPriority      = errors.New("invalid task priority")
	ErrInvalidAssignee      = errors.New("assignee must be an existing developer")
	ErrTaskNotAvailable     = errors.New("task not available or already claimed")
	ErrTaskPermissionDenied = errors.New("user does not have permission to modify this task")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	sink     notify.Sink
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, sink notify.Sink) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		sink:     sink,
	}
}

// CreateTaskInput represents input for creating a task. AssignedTo and
// Claimable are mutually exclusive: marking a task claimable leaves it
// unassigned, and pre-assigning it makes it unclaimable.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssignedTo  *uint64
	DueDate     *time.Time
	Game        string
	Claimable   bool
	CreatorID   uint64
}

// UpdateTaskInput represents input for a full task edit
type UpdateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssignedTo  *uint64
	DueDate     *time.Time
	Game        string
}

// CreateTask creates a new task with validation and emits taskCreated
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusNotStarted
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	assignedTo := input.AssignedTo
	claimable := input.Claimable
	if claimable {
		assignedTo = nil
	}
	if assignedTo != nil {
		if err := s.ensureDeveloper(*assignedTo); err != nil {
			return nil, err
		}
		claimable = false
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		AssignedTo:  assignedTo,
		CreatedBy:   input.CreatorID,
		DueDate:     input.DueDate,
		Game:        input.Game,
		Claimable:   claimable,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.sink.Emit(notify.EventTaskCreated, map[string]interface{}{
		"id":          task.ID,
		"title":       task.Title,
		"assigned_to": task.AssignedTo,
		"claimable":   task.Claimable,
	})

	return task, nil
}

// ListTasks returns all tasks with assignee and creator loaded, newest-first
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListClaimableTasks returns the open tasks, newest-first
func (s *TaskService) ListClaimableTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.ListClaimable()
	if err != nil {
		return nil, fmt.Errorf("failed to list claimable tasks: %w", err)
	}
	return tasks, nil
}

// ListAssignedTasks returns the tasks assigned to a user, newest-first
func (s *TaskService) ListAssignedTasks(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListAssignedTo(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignee", "Creator")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTask replaces the editable fields of a task and emits taskUpdated
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrTitleRequired
	}
	if !input.Status.Valid() {
		return ErrInvalidStatus
	}
	if !input.Priority.Valid() {
		return ErrInvalidPriority
	}
	if input.AssignedTo != nil {
		if err := s.ensureDeveloper(*input.AssignedTo); err != nil {
			return err
		}
	}

	rows, err := s.taskRepo.Update(taskID, repository.TaskUpdate{
		Title:       title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
		Game:        input.Game,
	})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if rows == 0 {
		return ErrTaskNotFound
	}

	s.sink.Emit(notify.EventTaskUpdated, map[string]interface{}{
		"id":     taskID,
		"status": input.Status,
	})

	return nil
}

// DeleteTask removes a task and emits taskDeleted
func (s *TaskService) DeleteTask(taskID uint64) error {
	rows, err := s.taskRepo.Delete(taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if rows == 0 {
		return ErrTaskNotFound
	}

	s.sink.Emit(notify.EventTaskDeleted, map[string]interface{}{
		"id": taskID,
	})

	return nil
}

// ClaimTask assigns an open task to the claimant. Exactly one claimant can
// win; every other outcome (missing, not claimable, already assigned)
// collapses into ErrTaskNotAvailable so callers learn nothing about the
// task's state.
func (s *TaskService) ClaimTask(taskID, userID uint64) error {
	rows, err := s.taskRepo.Claim(taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to claim task: %w", err)
	}
	if rows == 0 {
		return ErrTaskNotAvailable
	}

	s.sink.Emit(notify.EventTaskClaimed, map[string]interface{}{
		"id":     taskID,
		"userId": userID,
	})

	return nil
}

// AdvanceStatus moves a task one step along the status cycle. Developers may
// only advance tasks assigned to them.
func (s *TaskService) AdvanceStatus(taskID, actorID uint64, role models.Role) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !authz.CanAdvance(role, actorID, task) {
		return nil, ErrTaskPermissionDenied
	}

	task.Status = models.NextStatus(task.Status)

	rows, err := s.taskRepo.Update(task.ID, repository.TaskUpdate{
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		AssignedTo:  task.AssignedTo,
		DueDate:     task.DueDate,
		Game:        task.Game,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to advance status: %w", err)
	}
	if rows == 0 {
		return nil, ErrTaskNotFound
	}

	s.sink.Emit(notify.EventTaskUpdated, map[string]interface{}{
		"id":     task.ID,
		"status": task.Status,
	})

	return task, nil
}

// ensureDeveloper verifies the assignee exists and holds the developer role
func (s *TaskService) ensureDeveloper(userID uint64) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidAssignee
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	if user.Role != models.RoleDeveloper {
		return ErrInvalidAssignee
	}
	return nil
}
