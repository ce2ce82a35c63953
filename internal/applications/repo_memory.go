package applications

import (
	"context"
	"sort"
	"sync"
	"time"

	"aris-backend/internal/curriculum"
	"aris-backend/internal/verify"
)

// MemoryRepo stores applications in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Application
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Application)}
}

// Create stores the application.
func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[app.ID] = app
	return nil
}

// GetByID returns an application by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.byID[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

// List returns applications newest first, with limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	apps := make([]Application, 0, len(r.byID))
	for _, app := range r.byID {
		apps = append(apps, app)
	}
	r.mu.RUnlock()

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})

	if offset >= len(apps) {
		return []Application{}, nil
	}
	end := len(apps)
	if offset+limit < end {
		end = offset + limit
	}
	return apps[offset:end], nil
}

// UpdateStatus moves an application to a new status.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.update(ctx, id, func(app *Application) {
		app.Status = status
	})
}

// UpdateTrainingPlan replaces the stored training plan.
func (r *MemoryRepo) UpdateTrainingPlan(ctx context.Context, id string, plan *curriculum.TrainingPlan) error {
	return r.update(ctx, id, func(app *Application) {
		app.TrainingPlan = plan
	})
}

// UpdateVerification stores the trust score and report; the plan is only
// replaced when one is supplied.
func (r *MemoryRepo) UpdateVerification(ctx context.Context, id string, trustScore float64, report verify.Report, plan *curriculum.TrainingPlan) error {
	return r.update(ctx, id, func(app *Application) {
		score := trustScore
		app.TrustScore = &score
		reportCopy := report
		app.VerificationReport = &reportCopy
		if plan != nil {
			app.TrainingPlan = plan
		}
	})
}

// Stats counts applications by status.
func (r *MemoryRepo) Stats(ctx context.Context, newSince time.Time) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats Stats
	for _, app := range r.byID {
		stats.TotalApplications++
		switch app.Status {
		case StatusPending, StatusInReview:
			stats.PendingReview++
		case StatusAccepted:
			stats.Accepted++
		case StatusRejected:
			stats.Rejected++
		}
		if !app.CreatedAt.Before(newSince) {
			stats.NewThisWeek++
		}
	}
	return stats, nil
}

func (r *MemoryRepo) update(ctx context.Context, id string, apply func(*Application)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	apply(&app)
	app.UpdatedAt = time.Now().UTC()
	r.byID[id] = app
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
