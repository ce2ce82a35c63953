package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"aris-backend/internal/curriculum"
	"aris-backend/internal/llm"
	"aris-backend/internal/scoring"
)

// Report is the compliance output of the verification pipeline.
type Report struct {
	TrustScore          float64  `json:"trust_score"`
	RiskLevel           string   `json:"risk_level"`
	VerificationSummary string   `json:"verification_summary"`
	KeyFindings         []string `json:"key_findings"`
	RedFlags            []string `json:"red_flags"`
	Recommendation      string   `json:"recommendation"`
}

// Result bundles everything the pipeline produces.
type Result struct {
	TrustScore   float64
	RiskLevel    string
	Report       Report
	TrainingPlan *curriculum.TrainingPlan
}

// Input is the candidate evidence the pipeline verifies.
type Input struct {
	CandidateName string
	RoleApplied   string
	Metrics       scoring.GitHubMetrics
	ResumeSkills  []string
}

// Pipeline runs the sequential verification steps: github audit, claim
// cross-reference, compliance scoring, onboarding plan. Each step's output
// feeds the next. Without a configured LLM the pipeline fails fast.
type Pipeline struct {
	Client llm.Client
}

// Run executes the pipeline. The compliance step is mandatory; a failed
// onboarding step degrades to a nil plan instead of failing the run.
func (p Pipeline) Run(ctx context.Context, input Input) (Result, error) {
	audit, err := p.auditGitHub(ctx, input)
	if err != nil {
		return Result{}, fmt.Errorf("github audit: %w", err)
	}

	claims, err := p.crossReferenceClaims(ctx, input, audit)
	if err != nil {
		return Result{}, fmt.Errorf("claim cross-reference: %w", err)
	}

	report, err := p.complianceReport(ctx, input, audit, claims)
	if err != nil {
		return Result{}, fmt.Errorf("compliance report: %w", err)
	}

	plan, err := p.onboardingPlan(ctx, input, audit, report)
	if err != nil {
		plan = nil
	}

	return Result{
		TrustScore:   report.TrustScore,
		RiskLevel:    report.RiskLevel,
		Report:       report,
		TrainingPlan: plan,
	}, nil
}

func (p Pipeline) auditGitHub(ctx context.Context, input Input) (json.RawMessage, error) {
	evidence, err := json.Marshal(input.Metrics)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		"Audit the public coding activity of candidate '%s'.\n\nGITHUB METRICS:\n%s\n\n"+
			"Produce a JSON object with keys: total_repos, total_stars, commits_90_days, "+
			"top_languages (object), top_repositories (array), consistency_assessment (string), overall_quality (string).",
		input.CandidateName, string(evidence),
	)
	return p.Client.CompleteJSON(ctx, []llm.Message{
		{Role: "system", Content: "You audit developer profiles. Evidence speaks louder than claims."},
		{Role: "user", Content: prompt},
	}, 2048)
}

func (p Pipeline) crossReferenceClaims(ctx context.Context, input Input, audit json.RawMessage) (json.RawMessage, error) {
	skills, err := json.Marshal(input.ResumeSkills)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		"Candidate '%s' claims these skills: %s.\n\nGITHUB AUDIT:\n%s\n\n"+
			"Cross-reference each claim against the evidence. For each skill decide: verified, partial, contradicted or unverifiable. "+
			"Respond with a JSON object with keys: verification_results (array of {skill, status, evidence}), "+
			"red_flags (array of strings), overall_integrity ('high', 'medium' or 'low').",
		input.CandidateName, string(skills), string(audit),
	)
	return p.Client.CompleteJSON(ctx, []llm.Message{
		{Role: "system", Content: "You detect resume fabrications by comparing claims to real data. Always cite evidence."},
		{Role: "user", Content: prompt},
	}, 2048)
}

func (p Pipeline) complianceReport(ctx context.Context, input Input, audit, claims json.RawMessage) (Report, error) {
	prompt := fmt.Sprintf(
		"Candidate '%s' applied for the '%s' role.\n\nGITHUB AUDIT:\n%s\n\nCLAIM VERIFICATION:\n%s\n\n"+
			"Synthesize a final determination. Respond with a JSON object with keys: trust_score (0-100 number), "+
			"risk_level ('clear' for score >= 70, 'review_required' for 45-69, 'high_risk' below 45), "+
			"verification_summary (100-200 words), key_findings (array), red_flags (array), "+
			"recommendation ('approve', 'manual_review' or 'reject').",
		input.CandidateName, input.RoleApplied, string(audit), string(claims),
	)
	raw, err := p.Client.CompleteJSON(ctx, []llm.Message{
		{Role: "system", Content: "You are a hiring compliance officer. Justify every score with evidence."},
		{Role: "user", Content: prompt},
	}, 2048)
	if err != nil {
		return Report{}, err
	}

	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return Report{}, fmt.Errorf("compliance decode: %w", err)
	}
	report.TrustScore = scoring.Clamp(report.TrustScore, 0, 100)
	if strings.TrimSpace(report.RiskLevel) == "" {
		report.RiskLevel = riskLevelFor(report.TrustScore)
	}
	return report, nil
}

func (p Pipeline) onboardingPlan(ctx context.Context, input Input, audit json.RawMessage, report Report) (*curriculum.TrainingPlan, error) {
	findings, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		"Design a 4-6 week onboarding plan for '%s' targeting the '%s' role, based on the VERIFIED skill profile, not resume claims.\n\n"+
			"GITHUB AUDIT:\n%s\n\nCOMPLIANCE FINDINGS:\n%s\n\n"+
			"Respond with a JSON object: {\"summary\": string, \"focus_areas\": [strings], "+
			"\"weekly_plan\": [{\"week\", \"goal\", \"objectives\", \"topics\", \"tasks\", \"deliverables\"}]}.",
		input.CandidateName, input.RoleApplied, string(audit), string(findings),
	)
	raw, err := p.Client.CompleteJSON(ctx, []llm.Message{
		{Role: "system", Content: "You design onboarding curricula from verified abilities and gaps."},
		{Role: "user", Content: prompt},
	}, 3072)
	if err != nil {
		return nil, err
	}

	var plan curriculum.TrainingPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("onboarding plan decode: %w", err)
	}
	if len(plan.WeeklyPlan) == 0 {
		return nil, fmt.Errorf("onboarding plan has no weeks")
	}
	return &plan, nil
}

// riskLevelFor buckets a trust score the way the compliance step is
// instructed to.
func riskLevelFor(trustScore float64) string {
	switch {
	case trustScore >= 70:
		return "clear"
	case trustScore >= 45:
		return "review_required"
	default:
		return "high_risk"
	}
}
