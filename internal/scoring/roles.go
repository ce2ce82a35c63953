package scoring

import (
	"sort"
	"strings"
)

// roleKeywords maps each role category to its required technology keywords.
// Keys double as the category labels reported in all_role_scores.
var roleKeywords = map[string][]string{
	"backend": {
		"python", "fastapi", "django", "flask", "api", "sql", "postgresql",
		"mongodb", "redis", "docker", "node.js", "express", "go", "java",
		"spring", "rest", "graphql", "microservices",
	},
	"frontend": {
		"react", "javascript", "typescript", "html", "css", "vue", "angular",
		"next.js", "tailwind", "sass", "webpack", "vite", "ui", "ux",
		"responsive", "figma",
	},
	"data": {
		"pandas", "numpy", "ml", "tensorflow", "sklearn", "pytorch", "r",
		"jupyter", "data", "analysis", "visualization", "statistics",
		"spark", "airflow", "sql", "tableau",
	},
	"full stack": {
		"react", "javascript", "typescript", "python", "node.js", "api",
		"sql", "html", "css", "docker", "mongodb", "postgresql", "rest",
		"git", "ci/cd", "aws",
	},
	"devops": {
		"docker", "kubernetes", "aws", "gcp", "azure", "terraform",
		"ci/cd", "jenkins", "github actions", "linux", "shell", "ansible",
		"monitoring", "nginx", "prometheus",
	},
}

// roleLabels fixes the evaluation order of the category matchers.
var roleLabels = []string{"backend", "frontend", "data", "full stack", "devops"}

// roleMatchers is the ordered predicate table behind NormalizeRole,
// evaluated first-match-wins.
var roleMatchers = []func(key string) (string, bool){
	func(key string) (string, bool) {
		for _, label := range roleLabels {
			if strings.Contains(key, label) || strings.Contains(label, key) {
				return label, true
			}
		}
		return "", false
	},
	func(key string) (string, bool) {
		// "Backend Developer" still resolves via the label's first word.
		for _, label := range roleLabels {
			first, _, _ := strings.Cut(label, " ")
			if strings.Contains(key, first) {
				return label, true
			}
		}
		return "", false
	},
}

// NormalizeRole maps a free-text role title to a category label. Unmatched
// titles pass through lowercased and trimmed; such keys carry no keyword set
// and alignment scoring degrades to its neutral default.
func NormalizeRole(role string) string {
	key := strings.ToLower(strings.TrimSpace(role))
	if key == "" {
		return key
	}
	for _, match := range roleMatchers {
		if label, ok := match(key); ok {
			return label
		}
	}
	return key
}

// RoleLabels returns the fixed category labels in evaluation order.
func RoleLabels() []string {
	out := make([]string, len(roleLabels))
	copy(out, roleLabels)
	return out
}

// RequiredKeywords returns the keyword set for a category, or nil for
// unknown categories.
func RequiredKeywords(category string) []string {
	return roleKeywords[category]
}

// VocabularyTerms returns the reference technology vocabulary in sorted
// order. The resume parser scans against the same list the resume-skill
// score matches on.
func VocabularyTerms() []string {
	terms := make([]string, 0, len(referenceVocabulary))
	for term := range referenceVocabulary {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// referenceVocabulary is the fixed technology list resume keywords and
// GitHub languages are matched against for the resume-skill score.
var referenceVocabulary = map[string]struct{}{
	"python": {}, "fastapi": {}, "django": {}, "flask": {}, "api": {},
	"sql": {}, "react": {}, "javascript": {}, "typescript": {}, "html": {},
	"css": {}, "pandas": {}, "numpy": {}, "ml": {}, "tensorflow": {},
	"sklearn": {}, "docker": {}, "aws": {}, "postgresql": {}, "mongodb": {},
	"git": {}, "node.js": {}, "java": {}, "go": {}, "rust": {}, "vue": {},
	"angular": {}, "kubernetes": {}, "redis": {}, "graphql": {},
	"next.js": {}, "express": {}, "spring": {}, "pytorch": {}, "linux": {},
	"shell": {}, "ci/cd": {},
}
