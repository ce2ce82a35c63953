package scoring

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResumeSkillScoreNoResume(t *testing.T) {
	cases := []struct {
		name      string
		languages map[string]float64
		expected  float64
	}{
		{name: "no_languages", languages: nil, expected: 0},
		{name: "two_languages", languages: map[string]float64{"Python": 60, "JavaScript": 40}, expected: 6},
		{
			name: "caps_at_half_ceiling",
			languages: map[string]float64{
				"Python": 20, "JavaScript": 20, "Go": 15, "Rust": 15,
				"Java": 10, "Ruby": 10, "C": 10,
			},
			expected: 15,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resumeSkillScore(nil, tc.languages); !almostEqual(got, tc.expected) {
				t.Fatalf("resumeSkillScore = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestResumeSkillScoreKeywordMatching(t *testing.T) {
	resume := &ResumeData{KeywordsDetected: []string{"python", "docker", "made-up-tech"}}
	languages := map[string]float64{"Go": 100}
	// python, docker and go are in the reference vocabulary; made-up-tech is not.
	if got := resumeSkillScore(resume, languages); !almostEqual(got, 9) {
		t.Fatalf("resumeSkillScore = %v, want 9", got)
	}
}

func TestResumeSkillScoreATSRaisesOnly(t *testing.T) {
	resume := &ResumeData{KeywordsDetected: []string{"python", "docker"}}

	resume.ATSScore = 80 // 80*0.3 = 24 > 6 keyword points
	if got := resumeSkillScore(resume, nil); !almostEqual(got, 24) {
		t.Fatalf("ats should raise score: got %v, want 24", got)
	}

	resume.ATSScore = 10 // 10*0.3 = 3 < 6 keyword points
	if got := resumeSkillScore(resume, nil); !almostEqual(got, 6) {
		t.Fatalf("ats must never lower score: got %v, want 6", got)
	}
}

func TestActivityScoreBounds(t *testing.T) {
	if got := activityScore(GitHubMetrics{}); got != 0 {
		t.Fatalf("empty metrics activity = %v, want 0", got)
	}
	saturated := GitHubMetrics{TotalStars: 500, CommitsLast90Days: 500, TotalPublicRepos: 100}
	if got := activityScore(saturated); !almostEqual(got, 25) {
		t.Fatalf("saturated activity = %v, want 25", got)
	}
}

func TestProjectDepthScore(t *testing.T) {
	metrics := GitHubMetrics{
		TotalPublicRepos: 5,
		Languages:        map[string]float64{"Python": 50, "Go": 30, "Rust": 20},
		TopRepositories: []RepoSummary{
			{Name: "a", Stars: 6, Language: "Python"},
			{Name: "b", Stars: 4, Language: "Go"},
			{Name: "c", Stars: 0, Language: "Rust"},
		},
	}
	// top stars saturate the 7pt curve, 3 languages earn the full 6,
	// repos saturate the 4pt curve, 3 top repos add 3 detail points.
	if got := projectDepthScore(metrics); !almostEqual(got, 20) {
		t.Fatalf("projectDepthScore = %v, want 20", got)
	}
	if got := projectDepthScore(GitHubMetrics{}); got != 0 {
		t.Fatalf("empty metrics depth = %v, want 0", got)
	}
}

func TestRoleAlignmentScore(t *testing.T) {
	languages := map[string]float64{"Python": 60, "JavaScript": 40}

	t.Run("unknown_category_neutral", func(t *testing.T) {
		if got := roleAlignmentScore("space pirate", languages, nil); !almostEqual(got, 7.5) {
			t.Fatalf("unknown role alignment = %v, want 7.5", got)
		}
	})

	t.Run("resolved_category_zero_matches", func(t *testing.T) {
		if got := roleAlignmentScore("devops", map[string]float64{"Haskell": 100}, nil); got != 0 {
			t.Fatalf("zero-match alignment = %v, want 0", got)
		}
	})

	t.Run("matches_scale_with_ratio", func(t *testing.T) {
		// backend has 18 required keywords; python matches one of them.
		got := roleAlignmentScore("backend", map[string]float64{"Python": 100}, nil)
		want := 1.0 / 18.0 * 15.0
		if !almostEqual(got, want) {
			t.Fatalf("alignment = %v, want %v", got, want)
		}
	})
}

func TestRoleAlignmentAgreesWithAllRolePercentage(t *testing.T) {
	languages := map[string]float64{"Python": 50, "JavaScript": 30, "Go": 20}
	resume := &ResumeData{KeywordsDetected: []string{"docker", "sql", "react"}}

	for _, category := range RoleLabels() {
		alignment := roleAlignmentScore(category, languages, resume)
		pct := allRoleScores(languages, resume)[category]
		want := round1(alignment / roleAlignmentCeiling * 100)
		if !almostEqual(pct, want) {
			t.Fatalf("category %q: percentage %v disagrees with alignment ratio %v", category, pct, want)
		}
	}
}

func TestFreshnessBonusLadder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		last     string
		expected float64
	}{
		{name: "within_week", last: "2025-05-29T10:00:00Z", expected: 5},
		{name: "within_month", last: "2025-05-10T10:00:00Z", expected: 4},
		{name: "within_quarter", last: "2025-03-15T10:00:00Z", expected: 3},
		{name: "within_half_year", last: "2025-01-05T10:00:00Z", expected: 1.5},
		{name: "stale", last: "2023-01-01T10:00:00Z", expected: 0},
		{name: "unparseable", last: "last week sometime", expected: 2},
		{name: "missing", last: "", expected: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := freshnessBonus(tc.last, now); !almostEqual(got, tc.expected) {
				t.Fatalf("freshnessBonus(%q) = %v, want %v", tc.last, got, tc.expected)
			}
		})
	}
}

func TestRecencyScoreClamped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	metrics := GitHubMetrics{CommitsLast90Days: 500, LastActivity: "2025-05-31T00:00:00Z"}
	if got := recencyScore(metrics, now); !almostEqual(got, 10) {
		t.Fatalf("recencyScore = %v, want ceiling 10", got)
	}
	if got := recencyScore(GitHubMetrics{}, now); got != 0 {
		t.Fatalf("recencyScore of empty metrics = %v, want 0", got)
	}
}
