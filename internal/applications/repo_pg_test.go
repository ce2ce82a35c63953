package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"aris-backend/internal/scoring"
	"aris-backend/internal/verify"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	score := 72.5
	metrics := scoring.GitHubMetrics{Username: "jordanlee", TotalRepos: 10}
	app := Application{
		ID:             "app-1",
		FullName:       "Jordan Lee",
		Email:          "jordan@example.com",
		GitHubURL:      "https://github.com/jordanlee",
		RoleApplied:    "Backend Developer",
		Status:         StatusPending,
		MasterScore:    &score,
		ConfidenceBand: scoring.BandGood,
		Metrics:        &metrics,
		Breakdown:      &scoring.ScoreBreakdown{},
		LearningGaps:   []string{},
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO applications").
		WithArgs(
			app.ID,
			app.FullName,
			app.Email,
			app.GitHubURL,
			app.RoleApplied,
			app.Status,
			[]byte("{}"), // personal_json
			[]byte("{}"), // education_json
			[]byte("{}"), // experience_json
			[]byte("{}"), // professional_json
			[]byte("{}"), // motivation_json
			app.ResumeStorageKey,
			app.MasterScore,
			app.ConfidenceBand,
			sqlmock.AnyArg(), // github_metrics_json
			sqlmock.AnyArg(), // score_breakdown_json
			sqlmock.AnyArg(), // learning_gaps_json
			nil,              // resume_analysis_json
			nil,              // background_report_json
			nil,              // training_plan_json
			nil,              // trust_score
			nil,              // verification_report_json
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansNullableColumns(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "full_name", "email", "github_url", "role_applied", "status",
		"personal_json", "education_json", "experience_json", "professional_json", "motivation_json",
		"resume_storage_key", "master_score", "confidence_band", "github_metrics_json", "score_breakdown_json",
		"learning_gaps_json", "resume_analysis_json", "background_report_json",
		"training_plan_json", "trust_score", "verification_report_json",
		"created_at", "updated_at",
	}).AddRow(
		"app-1", "Jordan Lee", "jordan@example.com", "https://github.com/jordanlee", "Backend Developer", "pending",
		"{}", "{}", "{}", "{}", "{}",
		"resumes/app-1.pdf", 63.2, "Good", `{"username": "jordanlee", "total_repos": 10}`, `{"resume_skill_score": 12}`,
		`["Expand language diversity — learn a second core language"]`, nil, nil,
		nil, nil, nil,
		now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM applications").
		WithArgs("app-1").
		WillReturnRows(rows)

	app, err := repo.GetByID(context.Background(), "app-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if app.ResumeStorageKey != "resumes/app-1.pdf" {
		t.Errorf("resume storage key = %q", app.ResumeStorageKey)
	}
	if app.MasterScore == nil || *app.MasterScore != 63.2 {
		t.Errorf("master score = %v, want 63.2", app.MasterScore)
	}
	if app.Metrics == nil || app.Metrics.Username != "jordanlee" {
		t.Errorf("metrics = %+v", app.Metrics)
	}
	if app.Breakdown == nil || app.Breakdown.ResumeSkillScore != 12 {
		t.Errorf("breakdown = %+v", app.Breakdown)
	}
	if len(app.LearningGaps) != 1 {
		t.Errorf("learning gaps = %v", app.LearningGaps)
	}
	if app.TrustScore != nil {
		t.Errorf("trust score should be nil, got %v", *app.TrustScore)
	}
	if app.TrainingPlan != nil {
		t.Errorf("training plan should be nil, got %+v", app.TrainingPlan)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM applications").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateStatusNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE applications").
		WithArgs("accepted", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", "accepted")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateVerificationKeepsPlanWhenNil(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE applications").
		WithArgs(82.0, sqlmock.AnyArg(), nil, "app-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateVerification(context.Background(), "app-1", 82.0, verify.Report{
		TrustScore: 82,
		RiskLevel:  "clear",
	}, nil)
	if err != nil {
		t.Fatalf("UpdateVerification: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoStats(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "accepted", "rejected", "new"}).
			AddRow(12, 5, 4, 3, 2))

	stats, err := repo.Stats(context.Background(), time.Now().UTC().AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := Stats{TotalApplications: 12, PendingReview: 5, Accepted: 4, Rejected: 3, NewThisWeek: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}
