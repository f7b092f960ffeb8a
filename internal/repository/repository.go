package repository

import (
	"time"

	"github.com/devboard/devboard/internal/models"
)

// TaskUpdate holds the replacement values for a full task edit.
type TaskUpdate struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssignedTo  *uint64
	DueDate     *time.Time
	Game        string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves all tasks newest-first with assignee and creator loaded
	List() ([]models.Task, error)

	// ListClaimable retrieves open tasks (claimable and unassigned), newest-first
	ListClaimable() ([]models.Task, error)

	// ListAssignedTo retrieves the tasks assigned to a user, newest-first
	ListAssignedTo(userID uint64) ([]models.Task, error)

	// Update replaces the editable fields of a task and returns the number
	// of rows matched
	Update(id uint64, update TaskUpdate) (int64, error)

	// Delete removes a task and returns the number of rows matched
	Delete(id uint64) (int64, error)

	// Claim atomically assigns an open task to the claimant and returns the
	// number of rows changed. One row means the claimant won the race.
	Claim(taskID, userID uint64) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByCustomLink finds a user by their custom access link
	FindByCustomLink(link string) (*models.User, error)

	// List retrieves all users
	List() ([]models.User, error)

	// ListDeveloperStats retrieves the developer roster with per-developer
	// task and completion counts, newest-first
	ListDeveloperStats() ([]DeveloperStats, error)

	// UpdatePassword replaces a user's password hash and clears the
	// temp-password flag
	UpdatePassword(id uint64, passwordHash string) error

	// UpdateCustomLink sets a new custom link for a developer and returns
	// the number of rows matched
	UpdateCustomLink(id uint64, link string) (int64, error)

	// TouchSecurityCheck stamps the user's last security check time
	TouchSecurityCheck(id uint64, at time.Time) error
}

// DeveloperStats is one row of the developer roster.
type DeveloperStats struct {
	ID             uint64    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	TaskCount      int64     `json:"task_count"`
	CompletedCount int64     `json:"completed_count"`
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a new notification
	Create(notification *models.Notification) error

	// ListByUser retrieves a user's notifications, newest-first
	ListByUser(userID uint64) ([]models.Notification, error)

	// MarkRead marks a notification as read for its owner and returns the
	// number of rows matched
	MarkRead(id, userID uint64) (int64, error)
}

// DashboardStats aggregates board-wide completion figures.
type DashboardStats struct {
	TotalTasks       int64            `json:"totalTasks"`
	CompletedTasks   int64            `json:"completedTasks"`
	InProgressTasks  int64            `json:"inProgressTasks"`
	OverdueTasks     int64            `json:"overdueTasks"`
	TasksByDeveloper []DeveloperStats `json:"tasksByDeveloper"`
}

// DashboardRepository defines the interface for aggregate statistics
type DashboardRepository interface {
	// Stats computes the dashboard aggregates
	Stats(now time.Time) (*DashboardStats, error)
}
