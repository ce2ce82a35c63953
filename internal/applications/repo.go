package applications

import (
	"context"
	"time"

	"aris-backend/internal/curriculum"
	"aris-backend/internal/verify"
)

// Stats is the dashboard counter set.
type Stats struct {
	TotalApplications int `json:"total_applications"`
	PendingReview     int `json:"pending_review"`
	Accepted          int `json:"accepted"`
	Rejected          int `json:"rejected"`
	NewThisWeek       int `json:"new_this_week"`
}

// Repo is the application persistence boundary.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	List(ctx context.Context, limit, offset int) ([]Application, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateTrainingPlan(ctx context.Context, id string, plan *curriculum.TrainingPlan) error
	UpdateVerification(ctx context.Context, id string, trustScore float64, report verify.Report, plan *curriculum.TrainingPlan) error
	Stats(ctx context.Context, newSince time.Time) (Stats, error)
}
