package repository

import (
	"github.com/devboard/devboard/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves all tasks newest-first with assignee and creator loaded
func (r *GormTaskRepository) List() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("Assignee").
		Preload("Creator").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListClaimable retrieves open tasks, newest-first
func (r *GormTaskRepository) ListClaimable() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("claimable = ? AND assigned_to IS NULL", true).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAssignedTo retrieves the tasks assigned to a user, newest-first
func (r *GormTaskRepository) ListAssignedTo(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("Creator").
		Where("assigned_to = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update replaces the editable fields of a task. Setting an assignee forces
// claimable off so the open/assigned pairing can never drift apart.
func (r *GormTaskRepository) Update(id uint64, update TaskUpdate) (int64, error) {
	fields := map[string]interface{}{
		"title":       update.Title,
		"description": update.Description,
		"status":      update.Status,
		"priority":    update.Priority,
		"assigned_to": update.AssignedTo,
		"due_date":    update.DueDate,
		"game":        update.Game,
	}
	if update.AssignedTo != nil {
		fields["claimable"] = false
	}

	res := r.db.Model(&models.Task{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) (int64, error) {
	res := r.db.Delete(&models.Task{}, id)
	return res.RowsAffected, res.Error
}

// Claim performs the conditional assignment in a single statement. The row
// count is the only success signal; there is no prior read that could race.
func (r *GormTaskRepository) Claim(taskID, userID uint64) (int64, error) {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND claimable = ? AND assigned_to IS NULL", taskID, true).
		Updates(map[string]interface{}{
			"assigned_to": userID,
			"claimable":   false,
		})
	return res.RowsAffected, res.Error
}
