package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"aris-backend/internal/curriculum"
	"aris-backend/internal/scoring"
)

// Enricher runs the candidate-specific LLM analyses. Every method returns an
// error on any provider or decoding failure; callers fall back to the
// deterministic engines.
type Enricher struct {
	Client Client
}

// ProfileReport is the LLM background analysis of a candidate.
type ProfileReport struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Risks           []string `json:"risks"`
	GrowthDirection string   `json:"growth_direction"`
}

// ATSReport is the LLM resume screening result merged into ResumeData.
type ATSReport struct {
	ATSScore         float64  `json:"ats_score"`
	KeywordsDetected []string `json:"keywords_detected"`
	MissingKeywords  []string `json:"missing_keywords"`
	Suggestions      []string `json:"suggestions"`
}

// ProfileInput is the candidate context for profile analysis.
type ProfileInput struct {
	CandidateName string
	RoleApplied   string
	Metrics       scoring.GitHubMetrics
	Breakdown     scoring.ScoreBreakdown
	LearningGaps  []string
	Resume        *scoring.ResumeData
}

// PlanInput is the candidate context for LLM training plan generation.
type PlanInput struct {
	CandidateName  string
	RoleApplied    string
	ConfidenceBand string
	MasterScore    float64
	LearningGaps   []string
	Breakdown      scoring.ScoreBreakdown
	Metrics        scoring.GitHubMetrics
	Resume         *scoring.ResumeData
	Weeks          int
	DailyHours     float64
	TargetRole     string
}

// ProfileAnalysis generates a candidate-specific background report.
func (e Enricher) ProfileAnalysis(ctx context.Context, input ProfileInput) (*ProfileReport, error) {
	prompt := fmt.Sprintf(
		"Candidate: %s, applying for the %s role.\n%s\nScore breakdown: resume %.1f/30, activity %.1f/25, depth %.1f/20, alignment %.1f/15, recency %.1f/10.\nIdentified gaps: %s.%s\n\n"+
			"Write a thorough, candidate-specific assessment. Respond with a JSON object with keys: "+
			`"summary" (3-4 sentences), "strengths" (array), "weaknesses" (array), "risks" (array), "growth_direction" (string).`,
		input.CandidateName, input.RoleApplied, metricsContext(input.Metrics),
		input.Breakdown.ResumeSkillScore, input.Breakdown.GitHubActivityScore,
		input.Breakdown.ProjectQualityScore, input.Breakdown.RoleAlignmentScore,
		input.Breakdown.RecencyScore,
		joinOr(input.LearningGaps, "none"), resumeContext(input.Resume),
	)

	raw, err := e.Client.CompleteJSON(ctx, []Message{
		{Role: "system", Content: "You are a senior technical recruiter producing honest, evidence-based candidate assessments."},
		{Role: "user", Content: prompt},
	}, 2048)
	if err != nil {
		return nil, err
	}

	var report ProfileReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("profile analysis decode: %w", err)
	}
	if strings.TrimSpace(report.Summary) == "" {
		return nil, fmt.Errorf("profile analysis missing summary")
	}
	return &report, nil
}

// ResumeATS screens raw resume text against a role.
func (e Enricher) ResumeATS(ctx context.Context, resumeText, roleApplied, candidateName string) (*ATSReport, error) {
	if len(resumeText) > 6000 {
		resumeText = resumeText[:6000]
	}
	prompt := fmt.Sprintf(
		"Screen this resume for the %s role (candidate: %s).\n\nRESUME:\n%s\n\n"+
			"Respond with a JSON object with keys: \"ats_score\" (0-100 number), "+
			`"keywords_detected" (array of lowercase tech keywords), "missing_keywords" (array), "suggestions" (array of short strings).`,
		roleApplied, candidateName, resumeText,
	)

	raw, err := e.Client.CompleteJSON(ctx, []Message{
		{Role: "system", Content: "You are an ATS resume screening engine. Be strict and consistent."},
		{Role: "user", Content: prompt},
	}, 1024)
	if err != nil {
		return nil, err
	}

	var report ATSReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("resume ats decode: %w", err)
	}
	report.ATSScore = scoring.Clamp(report.ATSScore, 0, 100)
	return &report, nil
}

// TrainingPlan generates a candidate-specific plan honoring the
// curriculum.TrainingPlan shape.
func (e Enricher) TrainingPlan(ctx context.Context, input PlanInput) (*curriculum.TrainingPlan, error) {
	constraints := ""
	if input.Weeks > 0 {
		constraints += fmt.Sprintf(" The plan must span exactly %d weeks.", input.Weeks)
	}
	if input.DailyHours > 0 {
		constraints += fmt.Sprintf(" Assume %.1f hours of study per day.", input.DailyHours)
	}
	role := input.RoleApplied
	if strings.TrimSpace(input.TargetRole) != "" {
		role = input.TargetRole
	}

	prompt := fmt.Sprintf(
		"Create a weekly training plan for %s targeting the %s role. Evaluation: %.1f/100 (%s confidence). Gaps: %s.\n%s%s\n\n"+
			"Respond with a JSON object: {\"summary\": string, \"focus_areas\": [3-5 strings], "+
			"\"weekly_plan\": [{\"week\": int, \"goal\": string, \"objectives\": [2-3 strings], "+
			"\"topics\": [1-2 strings], \"tasks\": [1-2 strings], \"deliverables\": [1-2 strings]}]}.",
		input.CandidateName, role, input.MasterScore, input.ConfidenceBand,
		joinOr(input.LearningGaps, "none"), metricsContext(input.Metrics), constraints,
	)

	raw, err := e.Client.CompleteJSON(ctx, []Message{
		{Role: "system", Content: "You are a technical mentor designing practical, week-by-week onboarding curricula."},
		{Role: "user", Content: prompt},
	}, 3072)
	if err != nil {
		return nil, err
	}

	var plan curriculum.TrainingPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("training plan decode: %w", err)
	}
	if len(plan.WeeklyPlan) == 0 {
		return nil, fmt.Errorf("training plan has no weeks")
	}
	return &plan, nil
}

// ModifyPlan applies a natural-language admin instruction to an existing
// plan, preserving its shape.
func (e Enricher) ModifyPlan(ctx context.Context, existing curriculum.TrainingPlan, adminMessage, candidateName, roleApplied string) (*curriculum.TrainingPlan, error) {
	current, err := json.Marshal(existing)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		"Current training plan for %s (%s role):\n%s\n\nAdmin instruction: %s\n\n"+
			"Apply the instruction and respond with the full updated plan as a JSON object with the same shape (summary, focus_areas, weekly_plan).",
		candidateName, roleApplied, string(current), adminMessage,
	)

	raw, err := e.Client.CompleteJSON(ctx, []Message{
		{Role: "system", Content: "You edit structured training plans. Keep everything not mentioned in the instruction unchanged."},
		{Role: "user", Content: prompt},
	}, 3072)
	if err != nil {
		return nil, err
	}

	var plan curriculum.TrainingPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("modified plan decode: %w", err)
	}
	if len(plan.WeeklyPlan) == 0 {
		return nil, fmt.Errorf("modified plan has no weeks")
	}
	return &plan, nil
}

func metricsContext(metrics scoring.GitHubMetrics) string {
	langs := make([]string, 0, len(metrics.Languages))
	for lang, pct := range metrics.Languages {
		langs = append(langs, fmt.Sprintf("%s (%.0f%%)", lang, pct))
	}
	sort.Strings(langs)
	if len(langs) > 5 {
		langs = langs[:5]
	}
	return fmt.Sprintf("GitHub: %d public repos, %d stars, %d commits in the last 90 days. Languages: %s.",
		metrics.TotalPublicRepos, metrics.TotalStars, metrics.CommitsLast90Days, joinOr(langs, "none detected"))
}

func resumeContext(resume *scoring.ResumeData) string {
	if resume == nil {
		return ""
	}
	kw := resume.KeywordsDetected
	if len(kw) > 15 {
		kw = kw[:15]
	}
	return fmt.Sprintf("\nResume: ATS %.0f/100, project quality %.0f/100, keywords: %s.",
		resume.ATSScore, resume.ProjectQuality, joinOr(kw, "none"))
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
