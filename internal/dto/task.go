package dto

import (
	"time"

	"github.com/devboard/devboard/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64      `json:"id"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Role           models.Role `json:"role"`
	ProfilePicture string      `json:"profile_picture,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// TaskDTO represents a task in API responses, with the assignee and creator
// usernames denormalized the way the board lists expect them.
type TaskDTO struct {
	ID               uint64              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Status           models.TaskStatus   `json:"status"`
	Priority         models.TaskPriority `json:"priority"`
	AssignedTo       *uint64             `json:"assigned_to"`
	CreatedBy        uint64              `json:"created_by"`
	DueDate          *time.Time          `json:"due_date"`
	Game             string              `json:"game,omitempty"`
	Claimable        bool                `json:"claimable"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	AssignedUsername string              `json:"assigned_username,omitempty"`
	CreatedUsername  string              `json:"created_username,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Role:           user.Role,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		AssignedTo:  task.AssignedTo,
		CreatedBy:   task.CreatedBy,
		DueDate:     task.DueDate,
		Game:        task.Game,
		Claimable:   task.Claimable,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.Assignee != nil {
		dto.AssignedUsername = task.Assignee.Username
	}
	if task.Creator != nil {
		dto.CreatedUsername = task.Creator.Username
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
