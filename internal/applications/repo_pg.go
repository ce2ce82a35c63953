package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"aris-backend/internal/curriculum"
	"aris-backend/internal/verify"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const applicationColumns = `
id, full_name, email, github_url, role_applied, status,
personal_json, education_json, experience_json, professional_json, motivation_json,
resume_storage_key,
master_score, confidence_band, github_metrics_json, score_breakdown_json,
learning_gaps_json, resume_analysis_json, background_report_json,
training_plan_json, trust_score, verification_report_json,
created_at, updated_at`

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (
	id, full_name, email, github_url, role_applied, status,
	personal_json, education_json, experience_json, professional_json, motivation_json,
	resume_storage_key,
	master_score, confidence_band, github_metrics_json, score_breakdown_json,
	learning_gaps_json, resume_analysis_json, background_report_json,
	training_plan_json, trust_score, verification_report_json, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

	metricsPayload, err := marshalNullable(app.Metrics)
	if err != nil {
		return err
	}
	breakdownPayload, err := marshalNullable(app.Breakdown)
	if err != nil {
		return err
	}
	gapsPayload, err := json.Marshal(emptyIfNil(app.LearningGaps))
	if err != nil {
		return err
	}
	resumePayload, err := marshalNullable(app.ResumeAnalysis)
	if err != nil {
		return err
	}
	reportPayload, err := marshalNullable(app.BackgroundReport)
	if err != nil {
		return err
	}
	planPayload, err := marshalNullable(app.TrainingPlan)
	if err != nil {
		return err
	}
	verificationPayload, err := marshalNullable(app.VerificationReport)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		app.ID,
		app.FullName,
		app.Email,
		app.GitHubURL,
		app.RoleApplied,
		app.Status,
		rawOrEmptyObject(app.Personal),
		rawOrEmptyObject(app.Education),
		rawOrEmptyObject(app.Experience),
		rawOrEmptyObject(app.Professional),
		rawOrEmptyObject(app.Motivation),
		app.ResumeStorageKey,
		app.MasterScore,
		nullableString(app.ConfidenceBand),
		metricsPayload,
		breakdownPayload,
		gapsPayload,
		resumePayload,
		reportPayload,
		planPayload,
		app.TrustScore,
		verificationPayload,
		app.CreatedAt,
		app.UpdatedAt,
	)
	return err
}

// GetByID returns an application by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Application, error) {
	query := `SELECT ` + applicationColumns + `
FROM applications
WHERE id = $1
LIMIT 1`
	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

// List returns applications ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Application, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + applicationColumns + `
FROM applications
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// UpdateStatus moves an application to a new status.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	const query = `
UPDATE applications
SET status = $1,
    updated_at = now()
WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTrainingPlan replaces the stored training plan.
func (r *PGRepo) UpdateTrainingPlan(ctx context.Context, id string, plan *curriculum.TrainingPlan) error {
	const query = `
UPDATE applications
SET training_plan_json = $1::jsonb,
    updated_at = now()
WHERE id = $2`
	payload, err := marshalNullable(plan)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, payload, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateVerification stores the trust score and report; the plan column is
// only touched when a plan is supplied.
func (r *PGRepo) UpdateVerification(ctx context.Context, id string, trustScore float64, report verify.Report, plan *curriculum.TrainingPlan) error {
	const query = `
UPDATE applications
SET trust_score = $1,
    verification_report_json = $2::jsonb,
    training_plan_json = COALESCE($3::jsonb, training_plan_json),
    updated_at = now()
WHERE id = $4`
	reportPayload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	planPayload, err := marshalNullable(plan)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, trustScore, reportPayload, planPayload, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns the dashboard counters in one query.
func (r *PGRepo) Stats(ctx context.Context, newSince time.Time) (Stats, error) {
	const query = `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE status IN ('pending', 'in_review')),
	COUNT(*) FILTER (WHERE status = 'accepted'),
	COUNT(*) FILTER (WHERE status = 'rejected'),
	COUNT(*) FILTER (WHERE created_at >= $1)
FROM applications`

	var stats Stats
	err := r.DB.QueryRowContext(ctx, query, newSince).Scan(
		&stats.TotalApplications,
		&stats.PendingReview,
		&stats.Accepted,
		&stats.Rejected,
		&stats.NewThisWeek,
	)
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var personal, education, experience, professional, motivation sql.NullString
	var masterScore sql.NullFloat64
	var confidenceBand sql.NullString
	var metricsJSON, breakdownJSON, gapsJSON sql.NullString
	var resumeJSON, reportJSON, planJSON sql.NullString
	var trustScore sql.NullFloat64
	var verificationJSON sql.NullString

	err := row.Scan(
		&app.ID,
		&app.FullName,
		&app.Email,
		&app.GitHubURL,
		&app.RoleApplied,
		&app.Status,
		&personal,
		&education,
		&experience,
		&professional,
		&motivation,
		&app.ResumeStorageKey,
		&masterScore,
		&confidenceBand,
		&metricsJSON,
		&breakdownJSON,
		&gapsJSON,
		&resumeJSON,
		&reportJSON,
		&planJSON,
		&trustScore,
		&verificationJSON,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return Application{}, err
	}

	app.Personal = rawFromNull(personal)
	app.Education = rawFromNull(education)
	app.Experience = rawFromNull(experience)
	app.Professional = rawFromNull(professional)
	app.Motivation = rawFromNull(motivation)
	if masterScore.Valid {
		app.MasterScore = &masterScore.Float64
	}
	if confidenceBand.Valid {
		app.ConfidenceBand = confidenceBand.String
	}
	if trustScore.Valid {
		app.TrustScore = &trustScore.Float64
	}
	unmarshalNullable(metricsJSON, &app.Metrics)
	unmarshalNullable(breakdownJSON, &app.Breakdown)
	if gapsJSON.Valid {
		_ = json.Unmarshal([]byte(gapsJSON.String), &app.LearningGaps)
	}
	unmarshalNullable(resumeJSON, &app.ResumeAnalysis)
	unmarshalNullable(reportJSON, &app.BackgroundReport)
	unmarshalNullable(planJSON, &app.TrainingPlan)
	unmarshalNullable(verificationJSON, &app.VerificationReport)
	return app, nil
}

// marshalNullable marshals a pointer, passing nil through so the column
// stays NULL.
func marshalNullable[T any](value *T) (any, error) {
	if value == nil {
		return nil, nil
	}
	return json.Marshal(value)
}

// unmarshalNullable decodes a jsonb column into *dst, leaving it nil on
// NULL or parse failure.
func unmarshalNullable[T any](column sql.NullString, dst **T) {
	if !column.Valid {
		return
	}
	var decoded T
	if err := json.Unmarshal([]byte(column.String), &decoded); err != nil {
		return
	}
	*dst = &decoded
}

func rawOrEmptyObject(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}

func rawFromNull(column sql.NullString) json.RawMessage {
	if !column.Valid || column.String == "" {
		return nil
	}
	return json.RawMessage(column.String)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func emptyIfNil(gaps []string) []string {
	if gaps == nil {
		return []string{}
	}
	return gaps
}
