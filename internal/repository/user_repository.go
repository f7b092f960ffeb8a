package repository

import (
	"time"

	"github.com/devboard/devboard/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByCustomLink finds a user by their custom access link
func (r *GormUserRepository) FindByCustomLink(link string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("custom_link = ?", link).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves all users
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListDeveloperStats retrieves the developer roster with task counts
func (r *GormUserRepository) ListDeveloperStats() ([]DeveloperStats, error) {
	var stats []DeveloperStats
	err := r.db.Model(&models.User{}).
		Select(`users.id, users.username, users.email, users.profile_picture, users.created_at,
			COUNT(tasks.id) AS task_count,
			COUNT(CASE WHEN tasks.status = 'done' THEN 1 END) AS completed_count`).
		Joins("LEFT JOIN tasks ON users.id = tasks.assigned_to").
		Where("users.role = ?", models.RoleDeveloper).
		Group("users.id, users.username, users.email, users.profile_picture, users.created_at").
		Order("users.created_at DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// UpdatePassword replaces the password hash and clears the temp flag
func (r *GormUserRepository) UpdatePassword(id uint64, passwordHash string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"temp_password": false,
		}).Error
}

// UpdateCustomLink sets a new custom link; only developers carry links
func (r *GormUserRepository) UpdateCustomLink(id uint64, link string) (int64, error) {
	res := r.db.Model(&models.User{}).
		Where("id = ? AND role = ?", id, models.RoleDeveloper).
		Update("custom_link", link)
	return res.RowsAffected, res.Error
}

// TouchSecurityCheck stamps the user's last security check time
func (r *GormUserRepository) TouchSecurityCheck(id uint64, at time.Time) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("last_security_check", at).Error
}
