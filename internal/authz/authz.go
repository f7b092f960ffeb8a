// Package authz holds the capability table gating every task mutation.
// Role checks live here instead of being re-derived per endpoint.
package authz

import (
	"github.com/devboard/devboard/internal/models"
)

// Action identifies a role-gated operation.
type Action string

const (
	ActionViewTasks          Action = "tasks.view"
	ActionViewClaimable      Action = "tasks.view_claimable"
	ActionClaimTask          Action = "tasks.claim"
	ActionCreateTask         Action = "tasks.create"
	ActionEditTask           Action = "tasks.edit"
	ActionAdvanceTask        Action = "tasks.advance"
	ActionDeleteTask         Action = "tasks.delete"
	ActionViewDashboard      Action = "dashboard.view"
	ActionProvisionDeveloper Action = "developers.provision"
	ActionGenerateLink       Action = "developers.link"
	ActionSendNotification   Action = "notifications.send"
)

// capabilities maps each role to the actions it may perform. Admin is not
// listed: it implicitly satisfies every check (see Can).
var capabilities = map[models.Role]map[Action]bool{
	models.RoleDeveloper: {
		ActionViewTasks:     true,
		ActionViewClaimable: true,
		ActionClaimTask:     true,
		ActionAdvanceTask:   true,
	},
	models.RoleCommunityManager: {
		ActionViewTasks:          true,
		ActionViewClaimable:      true,
		ActionClaimTask:          true,
		ActionCreateTask:         true,
		ActionEditTask:           true,
		ActionAdvanceTask:        true,
		ActionViewDashboard:      true,
		ActionProvisionDeveloper: true,
		ActionGenerateLink:       true,
		ActionSendNotification:   true,
	},
}

// Can reports whether the role may perform the action. Admin satisfies every
// role-gated check.
func Can(role models.Role, action Action) bool {
	if role == models.RoleAdmin {
		return true
	}
	return capabilities[role][action]
}

// CanAdvance reports whether the actor may advance the task's status.
// Managers and admins may advance any task; a developer only their own.
func CanAdvance(role models.Role, userID uint64, task *models.Task) bool {
	if role == models.RoleAdmin || role == models.RoleCommunityManager {
		return true
	}
	if !Can(role, ActionAdvanceTask) {
		return false
	}
	return task.AssignedTo != nil && *task.AssignedTo == userID
}
