package scoring

import (
	"strings"
	"time"
)

// Component score ceilings. Together they sum to 100.
const (
	resumeSkillCeiling   = 30.0
	activityCeiling      = 25.0
	projectDepthCeiling  = 20.0
	roleAlignmentCeiling = 15.0
	recencyCeiling       = 10.0
)

// evidenceKeywords unions lowercased GitHub language names with lowercased
// resume keywords. A nil resume contributes nothing.
func evidenceKeywords(languages map[string]float64, resume *ResumeData) map[string]struct{} {
	combined := make(map[string]struct{}, len(languages))
	for lang := range languages {
		combined[strings.ToLower(lang)] = struct{}{}
	}
	if resume != nil {
		for _, kw := range resume.KeywordsDetected {
			trimmed := strings.ToLower(strings.TrimSpace(kw))
			if trimmed != "" {
				combined[trimmed] = struct{}{}
			}
		}
	}
	return combined
}

// resumeSkillScore rewards matched technology keywords, ~3 points each.
// Without a resume, credit comes from declared languages alone and caps at
// half the ceiling. An ATS score can only raise the result, never lower it.
func resumeSkillScore(resume *ResumeData, languages map[string]float64) float64 {
	if resume == nil {
		base := float64(len(evidenceKeywords(languages, nil))) * 3.0
		if base > 15 {
			base = 15
		}
		return Clamp(base, 0, resumeSkillCeiling)
	}

	combined := evidenceKeywords(languages, resume)
	matches := 0
	for kw := range combined {
		if _, ok := referenceVocabulary[kw]; ok {
			matches++
		}
	}
	score := float64(matches) * 3.0
	if score > resumeSkillCeiling {
		score = resumeSkillCeiling
	}
	if resume.ATSScore > 0 {
		// ats_score is 0-100
		if ats := resume.ATSScore * 0.3; ats > score {
			score = ats
		}
	}
	return Clamp(score, 0, resumeSkillCeiling)
}

// activityScore combines stars, recent commits and repo count on diminishing
// curves: 20 stars, 30 commits and 8 repos each roughly saturate.
func activityScore(metrics GitHubMetrics) float64 {
	starPts := DiminishingCurve(float64(metrics.TotalStars), 20) * 8.0
	commitPts := DiminishingCurve(float64(metrics.CommitsLast90Days), 30) * 10.0
	repoPts := DiminishingCurve(float64(metrics.TotalPublicRepos), 8) * 7.0
	return Clamp(starPts+commitPts+repoPts, 0, activityCeiling)
}

// projectDepthScore looks at top-repo stars, language diversity, repo count
// and how many top repositories the candidate can show at all.
func projectDepthScore(metrics GitHubMetrics) float64 {
	topStars := 0.0
	for _, repo := range metrics.TopRepositories {
		topStars += float64(repo.Stars)
	}
	starPts := DiminishingCurve(topStars, 10) * 7.0

	langRatio := float64(len(metrics.Languages)) / 3.0
	if langRatio > 1 {
		langRatio = 1
	}
	langPts := langRatio * 6.0

	repoPts := DiminishingCurve(float64(metrics.TotalPublicRepos), 5) * 4.0

	detail := len(metrics.TopRepositories)
	if detail > 3 {
		detail = 3
	}

	return Clamp(starPts+langPts+repoPts+float64(detail), 0, projectDepthCeiling)
}

// roleAlignmentScore scores the applied category by required-keyword
// coverage. Unknown categories get the neutral midpoint 7.5.
func roleAlignmentScore(category string, languages map[string]float64, resume *ResumeData) float64 {
	required := roleKeywords[category]
	if len(required) == 0 {
		return roleAlignmentCeiling / 2
	}
	combined := evidenceKeywords(languages, resume)
	matches := 0
	for _, kw := range required {
		if _, ok := combined[kw]; ok {
			matches++
		}
	}
	ratio := float64(matches) / float64(len(required))
	return Clamp(ratio*roleAlignmentCeiling, 0, roleAlignmentCeiling)
}

// Freshness bonus ladder over days since last activity.
var freshnessLadder = []struct {
	maxDays int
	bonus   float64
}{
	{7, 5.0},
	{30, 4.0},
	{90, 3.0},
	{180, 1.5},
}

// unparseableFreshnessBonus is the explicit default when a last-activity
// timestamp exists but cannot be parsed.
const unparseableFreshnessBonus = 2.0

func freshnessBonus(lastActivity string, now time.Time) float64 {
	if strings.TrimSpace(lastActivity) == "" {
		return 0
	}
	lastDt, err := time.Parse(time.RFC3339, lastActivity)
	if err != nil {
		return unparseableFreshnessBonus
	}
	daysAgo := int(now.Sub(lastDt).Hours() / 24)
	for _, rung := range freshnessLadder {
		if daysAgo <= rung.maxDays {
			return rung.bonus
		}
	}
	return 0
}

// recencyScore blends commit volume with a last-activity freshness bonus.
func recencyScore(metrics GitHubMetrics, now time.Time) float64 {
	commitPts := DiminishingCurve(float64(metrics.CommitsLast90Days), 20) * 5.0
	return Clamp(commitPts+freshnessBonus(metrics.LastActivity, now), 0, recencyCeiling)
}

// allRoleScores reports required-keyword coverage for every category as a
// 0-100 percentage, independent of the applied role.
func allRoleScores(languages map[string]float64, resume *ResumeData) map[string]float64 {
	combined := evidenceKeywords(languages, resume)
	scores := make(map[string]float64, len(roleKeywords))
	for category, required := range roleKeywords {
		matches := 0
		for _, kw := range required {
			if _, ok := combined[kw]; ok {
				matches++
			}
		}
		pct := float64(matches) / float64(len(required)) * 100
		scores[category] = round1(Clamp(pct, 0, 100))
	}
	return scores
}
