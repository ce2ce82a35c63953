package scoring

import "time"

// gapEvidence is the intermediate state the gap checks read.
type gapEvidence struct {
	LanguageCount int
	Commits90Days int
	TotalStars    int
	RolePts       float64
	ResumePts     float64
	ResumePresent bool
	RoleApplied   string
}

// gapChecks run unconditionally, in order, each appending at most one gap.
var gapChecks = []struct {
	when    func(gapEvidence) bool
	message func(gapEvidence) string
}{
	{
		when: func(e gapEvidence) bool { return e.LanguageCount < 2 },
		message: func(gapEvidence) string {
			return "Expand language diversity — learn a second core language"
		},
	},
	{
		when: func(e gapEvidence) bool { return e.Commits90Days < 10 },
		message: func(gapEvidence) string {
			return "Increase coding consistency — aim for regular commits"
		},
	},
	{
		when: func(e gapEvidence) bool { return e.TotalStars < 3 },
		message: func(gapEvidence) string {
			return "Build projects with greater visibility and documentation"
		},
	},
	{
		when: func(e gapEvidence) bool { return e.RolePts < 8 },
		message: func(e gapEvidence) string {
			role := e.RoleApplied
			if role == "" {
				role = "target"
			}
			return "Strengthen skills aligned to " + role + " role"
		},
	},
	{
		when: func(e gapEvidence) bool { return e.ResumePresent && e.ResumePts < 15 },
		message: func(gapEvidence) string {
			return "Add more relevant tech keywords and project details to resume"
		},
	},
}

// ComputeScores runs the five component scorers over the candidate evidence
// and aggregates them into a CompositeResult. It is pure and total: every
// missing or malformed optional input falls back to a defined default.
func ComputeScores(metrics GitHubMetrics, resume *ResumeData, roleApplied string) CompositeResult {
	return computeScoresAt(metrics, resume, roleApplied, time.Now().UTC())
}

func computeScoresAt(metrics GitHubMetrics, resume *ResumeData, roleApplied string, now time.Time) CompositeResult {
	category := NormalizeRole(roleApplied)

	resumePts := resumeSkillScore(resume, metrics.Languages)
	activityPts := activityScore(metrics)
	depthPts := projectDepthScore(metrics)
	rolePts := roleAlignmentScore(category, metrics.Languages, resume)
	recencyPts := recencyScore(metrics, now)

	masterScore := Clamp(resumePts+activityPts+depthPts+rolePts+recencyPts, 0, 100)

	gaps := []string{}
	evidence := gapEvidence{
		LanguageCount: len(metrics.Languages),
		Commits90Days: metrics.CommitsLast90Days,
		TotalStars:    metrics.TotalStars,
		RolePts:       rolePts,
		ResumePts:     resumePts,
		ResumePresent: resume != nil,
		RoleApplied:   roleApplied,
	}
	for _, check := range gapChecks {
		if check.when(evidence) {
			gaps = append(gaps, check.message(evidence))
		}
	}

	return CompositeResult{
		MasterScore:    round1(masterScore),
		ConfidenceBand: bandFor(masterScore),
		ScoreBreakdown: ScoreBreakdown{
			ResumeSkillScore:    round1(resumePts),
			GitHubActivityScore: round1(activityPts),
			ProjectQualityScore: round1(depthPts),
			RoleAlignmentScore:  round1(rolePts),
			RecencyScore:        round1(recencyPts),
			AllRoleScores:       allRoleScores(metrics.Languages, resume),
		},
		LearningGaps: gaps,
	}
}

// bandFor buckets a master score. Thresholds are inclusive lower bounds
// evaluated high to low, so exactly one band matches any score.
func bandFor(masterScore float64) string {
	switch {
	case masterScore >= 75:
		return BandStrong
	case masterScore >= 60:
		return BandGood
	case masterScore >= 45:
		return BandModerate
	default:
		return BandRisk
	}
}
