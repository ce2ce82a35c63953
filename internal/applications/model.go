package applications

import (
	"encoding/json"
	"time"

	"aris-backend/internal/curriculum"
	"aris-backend/internal/llm"
	"aris-backend/internal/scoring"
	"aris-backend/internal/verify"
)

// Application statuses.
const (
	StatusPending  = "pending"
	StatusInReview = "in_review"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
	StatusIntern   = "intern"
)

// allowedTransitions is the status state machine. Missing or empty entries
// are terminal.
var allowedTransitions = map[string][]string{
	StatusPending:  {StatusInReview, StatusAccepted, StatusRejected},
	StatusInReview: {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusIntern},
	StatusIntern:   {},
	StatusRejected: {},
}

// CanTransition reports whether an application may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ResumeAnalysis is the stored resume screening record. Raw text is dropped
// before persisting.
type ResumeAnalysis struct {
	scoring.ResumeData
	MissingKeywords []string `json:"missing_keywords,omitempty"`
	Suggestions     []string `json:"suggestions,omitempty"`
}

// Application is one candidate submission with everything derived from it.
// Pointer fields are absent until the step that produces them has run.
type Application struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	GitHubURL   string `json:"github_url"`
	RoleApplied string `json:"role_applied"`
	Status      string `json:"status"`

	Personal     json.RawMessage `json:"personal,omitempty"`
	Education    json.RawMessage `json:"education,omitempty"`
	Experience   json.RawMessage `json:"experience,omitempty"`
	Professional json.RawMessage `json:"professional,omitempty"`
	Motivation   json.RawMessage `json:"motivation,omitempty"`

	ResumeStorageKey string `json:"resume_storage_key,omitempty"`

	MasterScore        *float64                 `json:"master_score"`
	ConfidenceBand     string                   `json:"confidence_band,omitempty"`
	Metrics            *scoring.GitHubMetrics   `json:"github_metrics,omitempty"`
	Breakdown          *scoring.ScoreBreakdown  `json:"score_breakdown,omitempty"`
	LearningGaps       []string                 `json:"learning_gaps"`
	ResumeAnalysis     *ResumeAnalysis          `json:"resume_analysis,omitempty"`
	BackgroundReport   *llm.ProfileReport       `json:"background_report,omitempty"`
	TrainingPlan       *curriculum.TrainingPlan `json:"training_plan,omitempty"`
	TrustScore         *float64                 `json:"trust_score"`
	VerificationReport *verify.Report           `json:"verification_report,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
