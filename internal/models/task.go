package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not-started"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether the status is one of the three known states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// NextStatus returns the next state on the not-started -> in-progress -> done
// cycle. Unrecognized input maps to in-progress.
func NextStatus(current TaskStatus) TaskStatus {
	switch current {
	case TaskStatusNotStarted:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusDone
	case TaskStatusDone:
		return TaskStatusNotStarted
	default:
		return TaskStatusInProgress
	}
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the three known levels.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'not-started'" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	AssignedTo  *uint64      `json:"assigned_to"`
	CreatedBy   uint64       `gorm:"not null" json:"created_by"`
	DueDate     *time.Time   `json:"due_date"`
	Game        string       `gorm:"type:varchar(255)" json:"game,omitempty"`
	Claimable   bool         `gorm:"not null;default:false" json:"claimable"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Assignee *User `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Creator  *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
