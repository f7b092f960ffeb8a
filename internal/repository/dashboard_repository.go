package repository

import (
	"time"

	"github.com/devboard/devboard/internal/models"
	"gorm.io/gorm"
)

// GormDashboardRepository is a GORM implementation of DashboardRepository
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &GormDashboardRepository{db: db}
}

// Stats computes the dashboard aggregates
func (r *GormDashboardRepository) Stats(now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := r.db.Model(&models.Task{}).
		Count(&stats.TotalTasks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusDone).
		Count(&stats.CompletedTasks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusInProgress).
		Count(&stats.InProgressTasks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Task{}).
		Where("due_date < ? AND status != ?", now, models.TaskStatusDone).
		Count(&stats.OverdueTasks).Error; err != nil {
		return nil, err
	}

	var byDeveloper []DeveloperStats
	err := r.db.Model(&models.User{}).
		Select(`users.id, users.username, users.email, users.profile_picture, users.created_at,
			COUNT(tasks.id) AS task_count,
			COUNT(CASE WHEN tasks.status = 'done' THEN 1 END) AS completed_count`).
		Joins("LEFT JOIN tasks ON users.id = tasks.assigned_to").
		Where("users.role = ?", models.RoleDeveloper).
		Group("users.id, users.username, users.email, users.profile_picture, users.created_at").
		Order("users.username ASC").
		Scan(&byDeveloper).Error
	if err != nil {
		return nil, err
	}
	stats.TasksByDeveloper = byDeveloper

	return stats, nil
}
