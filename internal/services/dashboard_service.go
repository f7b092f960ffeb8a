package services

import (
	"fmt"

	"github.com/devboard/devboard/internal/repository"
)

// DashboardService computes aggregate completion statistics.
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
	}
}

// Stats returns the dashboard aggregates.
func (s *DashboardService) Stats() (*repository.DashboardStats, error) {
	stats, err := s.dashboardRepo.Stats(now())
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return stats, nil
}
