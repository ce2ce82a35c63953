package applications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"aris-backend/internal/curriculum"
	"aris-backend/internal/llm"
	"aris-backend/internal/resumes"
	"aris-backend/internal/scoring"
	"aris-backend/internal/shared/storage/object"
	"aris-backend/internal/verify"
)

// MetricsFetcher is the GitHub activity collaborator.
type MetricsFetcher interface {
	FetchMetrics(ctx context.Context, githubURL string) (scoring.GitHubMetrics, error)
}

// Service contains the application lifecycle logic. The LLM enricher is
// always called first where it applies; every LLM failure falls back to the
// deterministic engines, except plan modification which has no fallback.
type Service struct {
	Repo     Repo
	Metrics  MetricsFetcher
	Enricher llm.Enricher
	Verifier verify.Pipeline

	// Store keeps the raw resume upload. Optional; submissions still go
	// through when it is absent or failing.
	Store object.ObjectStore
}

// CreateInput is one multipart submission.
type CreateInput struct {
	FullName    string
	Email       string
	GitHubURL   string
	RoleApplied string

	Personal     json.RawMessage
	Education    json.RawMessage
	Experience   json.RawMessage
	Professional json.RawMessage
	Motivation   json.RawMessage

	ResumeFile []byte
	ResumeMime string
	ResumeName string
}

// Create scores a submission end to end and persists it. Verification runs
// opportunistically afterwards; its failure never fails the create.
func (s *Service) Create(ctx context.Context, input CreateInput) (Application, error) {
	if err := validateCreate(input); err != nil {
		return Application{}, err
	}

	metrics, err := s.Metrics.FetchMetrics(ctx, input.GitHubURL)
	if err != nil {
		return Application{}, err
	}

	resume, rawText := s.parseResume(input)
	resume = s.mergeLLMScreening(ctx, resume, rawText, input)

	var resumeData *scoring.ResumeData
	if resume != nil {
		resumeData = &resume.ResumeData
	}
	result := scoring.ComputeScores(metrics, resumeData, input.RoleApplied)

	id := uuid.NewString()
	storageKey := s.storeResume(ctx, id, input)

	now := time.Now().UTC()
	app := Application{
		ID:               id,
		FullName:         input.FullName,
		Email:            input.Email,
		GitHubURL:        input.GitHubURL,
		RoleApplied:      input.RoleApplied,
		Status:           StatusPending,
		Personal:         input.Personal,
		Education:        input.Education,
		Experience:       input.Experience,
		Professional:     input.Professional,
		Motivation:       input.Motivation,
		ResumeStorageKey: storageKey,
		MasterScore:      &result.MasterScore,
		ConfidenceBand:   result.ConfidenceBand,
		Metrics:          &metrics,
		Breakdown:        &result.ScoreBreakdown,
		LearningGaps:     result.LearningGaps,
		ResumeAnalysis:   resume,
		BackgroundReport: s.backgroundReport(ctx, input, metrics, result, resumeData),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}

	// Best effort: without a configured LLM this fails with ErrNotConfigured
	// and the application stays unverified.
	if verified, err := s.Verify(ctx, app.ID); err == nil {
		app = verified
	}
	return app, nil
}

// Get returns one application.
func (s *Service) Get(ctx context.Context, id string) (Application, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns applications newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Application, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Stats returns the dashboard counters. "New" means created within the last
// seven days.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.Repo.Stats(ctx, time.Now().UTC().AddDate(0, 0, -7))
}

// PlanOptions are the optional overrides for plan generation.
type PlanOptions struct {
	Weeks      int
	DailyHours float64
	TargetRole string
}

// GeneratePlan builds a training plan for a scored application, preferring
// the LLM and falling back to the deterministic curriculum.
func (s *Service) GeneratePlan(ctx context.Context, id string, opts PlanOptions) (Application, error) {
	app, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if app.MasterScore == nil {
		return Application{}, ErrNotScored
	}

	result := compositeFrom(app)
	var resumeData *scoring.ResumeData
	if app.ResumeAnalysis != nil {
		resumeData = &app.ResumeAnalysis.ResumeData
	}
	var metrics scoring.GitHubMetrics
	if app.Metrics != nil {
		metrics = *app.Metrics
	}

	plan, err := s.Enricher.TrainingPlan(ctx, llm.PlanInput{
		CandidateName:  app.FullName,
		RoleApplied:    app.RoleApplied,
		ConfidenceBand: result.ConfidenceBand,
		MasterScore:    result.MasterScore,
		LearningGaps:   result.LearningGaps,
		Breakdown:      result.ScoreBreakdown,
		Metrics:        metrics,
		Resume:         resumeData,
		Weeks:          opts.Weeks,
		DailyHours:     opts.DailyHours,
		TargetRole:     opts.TargetRole,
	})
	if err != nil {
		fallback := curriculum.Generate(result, app.RoleApplied, app.FullName)
		plan = &fallback
	}

	if err := s.Repo.UpdateTrainingPlan(ctx, id, plan); err != nil {
		return Application{}, err
	}
	app.TrainingPlan = plan
	return app, nil
}

// ModifyPlan applies a natural-language instruction to an existing plan.
// There is no deterministic fallback for this path.
func (s *Service) ModifyPlan(ctx context.Context, id, message string) (Application, error) {
	if strings.TrimSpace(message) == "" {
		return Application{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	app, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if app.TrainingPlan == nil {
		return Application{}, ErrNoPlan
	}

	plan, err := s.Enricher.ModifyPlan(ctx, *app.TrainingPlan, message, app.FullName, app.RoleApplied)
	if err != nil {
		return Application{}, fmt.Errorf("%w: %v", ErrLLMUnavailable, err)
	}
	if err := s.Repo.UpdateTrainingPlan(ctx, id, plan); err != nil {
		return Application{}, err
	}
	app.TrainingPlan = plan
	return app, nil
}

// UpdateStatus moves an application through the status state machine.
func (s *Service) UpdateStatus(ctx context.Context, id, next string) (Application, error) {
	app, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if !CanTransition(app.Status, next) {
		return Application{}, ErrInvalidTransition
	}
	if err := s.Repo.UpdateStatus(ctx, id, next); err != nil {
		return Application{}, err
	}
	app.Status = next
	return app, nil
}

// Verify runs the verification pipeline and stores its outcome. The stored
// training plan is only replaced when the pipeline produces one.
func (s *Service) Verify(ctx context.Context, id string) (Application, error) {
	app, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}

	var metrics scoring.GitHubMetrics
	if app.Metrics != nil {
		metrics = *app.Metrics
	} else if fetched, err := s.Metrics.FetchMetrics(ctx, app.GitHubURL); err == nil {
		metrics = fetched
	}

	result, err := s.Verifier.Run(ctx, verify.Input{
		CandidateName: app.FullName,
		RoleApplied:   app.RoleApplied,
		Metrics:       metrics,
		ResumeSkills:  claimedSkills(app),
	})
	if err != nil {
		return Application{}, err
	}

	if err := s.Repo.UpdateVerification(ctx, id, result.TrustScore, result.Report, result.TrainingPlan); err != nil {
		return Application{}, err
	}
	app.TrustScore = &result.TrustScore
	app.VerificationReport = &result.Report
	if result.TrainingPlan != nil {
		app.TrainingPlan = result.TrainingPlan
	}
	return app, nil
}

func validateCreate(input CreateInput) error {
	for _, field := range []struct{ name, value string }{
		{"full_name", input.FullName},
		{"email", input.Email},
		{"github_url", input.GitHubURL},
		{"role_applied", input.RoleApplied},
	} {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, field.name)
		}
	}
	return nil
}

// parseResume extracts and analyzes the uploaded file. A broken upload is
// treated as no resume.
func (s *Service) parseResume(input CreateInput) (*ResumeAnalysis, string) {
	if len(input.ResumeFile) == 0 {
		return nil, ""
	}
	parsed, err := resumes.Parse(input.ResumeFile, input.ResumeMime, input.ResumeName)
	if err != nil {
		return nil, ""
	}
	return &ResumeAnalysis{ResumeData: parsed.Data}, parsed.RawText
}

// storeResume keeps the raw upload for later review. Failures are swallowed;
// scoring has already extracted everything it needs from the bytes.
func (s *Service) storeResume(ctx context.Context, id string, input CreateInput) string {
	if s.Store == nil || len(input.ResumeFile) == 0 {
		return ""
	}
	name := input.ResumeName
	if name == "" {
		name = "resume.pdf"
	}
	key, _, _, err := s.Store.Save(ctx, id, name, bytes.NewReader(input.ResumeFile))
	if err != nil {
		return ""
	}
	return key
}

// mergeLLMScreening folds LLM ATS results into the heuristic record:
// keyword union, ATS score raised but never lowered.
func (s *Service) mergeLLMScreening(ctx context.Context, resume *ResumeAnalysis, rawText string, input CreateInput) *ResumeAnalysis {
	if resume == nil || rawText == "" {
		return resume
	}
	report, err := s.Enricher.ResumeATS(ctx, rawText, input.RoleApplied, input.FullName)
	if err != nil {
		return resume
	}

	merged := make(map[string]struct{}, len(resume.KeywordsDetected)+len(report.KeywordsDetected))
	for _, kw := range resume.KeywordsDetected {
		merged[kw] = struct{}{}
	}
	for _, kw := range report.KeywordsDetected {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			merged[kw] = struct{}{}
		}
	}
	keywords := make([]string, 0, len(merged))
	for kw := range merged {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	resume.KeywordsDetected = keywords

	if report.ATSScore > 0 && report.ATSScore > resume.ATSScore {
		resume.ATSScore = report.ATSScore
	}
	resume.MissingKeywords = report.MissingKeywords
	resume.Suggestions = report.Suggestions
	return resume
}

// backgroundReport asks the LLM for a candidate assessment, degrading to a
// deterministic report built from the metrics.
func (s *Service) backgroundReport(ctx context.Context, input CreateInput, metrics scoring.GitHubMetrics, result scoring.CompositeResult, resume *scoring.ResumeData) *llm.ProfileReport {
	report, err := s.Enricher.ProfileAnalysis(ctx, llm.ProfileInput{
		CandidateName: input.FullName,
		RoleApplied:   input.RoleApplied,
		Metrics:       metrics,
		Breakdown:     result.ScoreBreakdown,
		LearningGaps:  result.LearningGaps,
		Resume:        resume,
	})
	if err == nil {
		return report
	}

	weaknesses := result.LearningGaps
	if len(weaknesses) > 3 {
		weaknesses = weaknesses[:3]
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{"No major weaknesses identified"}
	}
	return &llm.ProfileReport{
		Summary: fmt.Sprintf(
			"%s scored %s/100 (%s confidence) for the %s role. Their GitHub profile shows %d public repos with %d commits in the last 90 days.",
			input.FullName, strconv.FormatFloat(result.MasterScore, 'f', -1, 64),
			result.ConfidenceBand, input.RoleApplied,
			metrics.TotalPublicRepos, metrics.CommitsLast90Days,
		),
		Strengths:       []string{fmt.Sprintf("Active GitHub presence with %d repositories", metrics.TotalPublicRepos)},
		Weaknesses:      weaknesses,
		Risks:           []string{},
		GrowthDirection: fmt.Sprintf("Focus on strengthening %s specific skills.", input.RoleApplied),
	}
}

// claimedSkills collects the skills to cross-reference: resume keywords
// first, then the declared tech stack from the professional form section.
func claimedSkills(app Application) []string {
	if app.ResumeAnalysis != nil && len(app.ResumeAnalysis.KeywordsDetected) > 0 {
		return app.ResumeAnalysis.KeywordsDetected
	}
	if len(app.Professional) > 0 {
		var professional struct {
			PrimaryTechStack []string `json:"primaryTechStack"`
		}
		if err := json.Unmarshal(app.Professional, &professional); err == nil {
			return professional.PrimaryTechStack
		}
	}
	return nil
}

func compositeFrom(app Application) scoring.CompositeResult {
	result := scoring.CompositeResult{
		ConfidenceBand: app.ConfidenceBand,
		LearningGaps:   app.LearningGaps,
	}
	if app.MasterScore != nil {
		result.MasterScore = *app.MasterScore
	}
	if app.Breakdown != nil {
		result.ScoreBreakdown = *app.Breakdown
	}
	if result.ConfidenceBand == "" {
		result.ConfidenceBand = scoring.BandModerate
	}
	return result
}
