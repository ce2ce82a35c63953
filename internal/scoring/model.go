package scoring

// RepoSummary is one of a candidate's top repositories.
type RepoSummary struct {
	Name     string `json:"name"`
	Stars    int    `json:"stars"`
	Language string `json:"language"`
}

// GitHubMetrics is the public-activity record produced by the GitHub
// collaborator. A fetch failure yields the zero value with Username set,
// never a nil record.
type GitHubMetrics struct {
	Username                string             `json:"username"`
	TotalRepos              int                `json:"total_repos"`
	TotalPublicRepos        int                `json:"total_public_repos"`
	TotalStars              int                `json:"total_stars"`
	TopRepositories         []RepoSummary      `json:"top_repositories"`
	Languages               map[string]float64 `json:"languages"`
	LastActivity            string             `json:"last_activity,omitempty"`
	RecentActivityScoreBase float64            `json:"recent_activity_score_base"`
	CommitsLast90Days       int                `json:"commits_last_90_days"`
}

// ResumeData is the parsed-resume record. A nil *ResumeData means no resume
// was supplied; every scorer defines a no-resume fallback.
type ResumeData struct {
	KeywordsDetected []string `json:"keywords_detected"`
	ATSScore         float64  `json:"ats_score"`
	ProjectQuality   float64  `json:"project_quality"`
}

// ScoreBreakdown carries the five sub-scores. The ceilings (30, 25, 20, 15,
// 10) sum to exactly 100.
type ScoreBreakdown struct {
	ResumeSkillScore    float64            `json:"resume_skill_score"`
	GitHubActivityScore float64            `json:"github_activity_score"`
	ProjectQualityScore float64            `json:"project_quality_score"`
	RoleAlignmentScore  float64            `json:"role_alignment_score"`
	RecencyScore        float64            `json:"recency_score"`
	AllRoleScores       map[string]float64 `json:"all_role_scores"`
}

// Confidence bands, coarse buckets over the master score.
const (
	BandStrong   = "Strong"
	BandGood     = "Good"
	BandModerate = "Moderate"
	BandRisk     = "Risk"
)

// CompositeResult is the immutable output of one scoring invocation.
type CompositeResult struct {
	MasterScore    float64        `json:"master_score"`
	ConfidenceBand string         `json:"confidence_band"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	LearningGaps   []string       `json:"learning_gaps"`
}
