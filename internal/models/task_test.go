package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus_Cycle(t *testing.T) {
	assert.Equal(t, TaskStatusInProgress, NextStatus(TaskStatusNotStarted))
	assert.Equal(t, TaskStatusDone, NextStatus(TaskStatusInProgress))
	assert.Equal(t, TaskStatusNotStarted, NextStatus(TaskStatusDone))
}

func TestNextStatus_UnknownDefaultsToInProgress(t *testing.T) {
	assert.Equal(t, TaskStatusInProgress, NextStatus(TaskStatus("garbage")))
	assert.Equal(t, TaskStatusInProgress, NextStatus(TaskStatus("")))
}

func TestTaskStatus_Valid(t *testing.T) {
	assert.True(t, TaskStatusNotStarted.Valid())
	assert.True(t, TaskStatusInProgress.Valid())
	assert.True(t, TaskStatusDone.Valid())
	assert.False(t, TaskStatus("archived").Valid())
}

func TestTaskPriority_Valid(t *testing.T) {
	assert.True(t, TaskPriorityLow.Valid())
	assert.True(t, TaskPriorityMedium.Valid())
	assert.True(t, TaskPriorityHigh.Valid())
	assert.False(t, TaskPriority("urgent").Valid())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleDeveloper.Valid())
	assert.True(t, RoleCommunityManager.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("moderator").Valid())
}
