package resumes

import (
	"regexp"
	"strings"

	"aris-backend/internal/scoring"
)

// Parsed is the resume analysis record handed to scoring, plus the raw text
// kept around for LLM enrichment.
type Parsed struct {
	Data    scoring.ResumeData
	RawText string
}

// aliases fold common spellings onto the reference vocabulary term.
var aliases = map[string]string{
	"golang":     "go",
	"postgres":   "postgresql",
	"node":       "node.js",
	"nodejs":     "node.js",
	"reactjs":    "react",
	"nextjs":     "next.js",
	"k8s":        "kubernetes",
	"js":         "javascript",
	"ts":         "typescript",
	"scikit":     "sklearn",
	"bash":       "shell",
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9.+#/\-]*`)
)

// sectionHeaders are the resume sections the ATS heuristic rewards.
var sectionHeaders = []string{"experience", "education", "skills", "projects"}

// Parse extracts text from a resume payload and derives the keyword/ATS
// record. Extraction failure is the caller's signal to score without a
// resume; analysis itself cannot fail.
func Parse(data []byte, mimeType string, fileName string) (*Parsed, error) {
	text, err := ExtractText(data, mimeType, fileName)
	if err != nil {
		return nil, err
	}
	return &Parsed{Data: Analyze(text), RawText: text}, nil
}

// Analyze derives keywords, an ATS score and a project-quality score from
// resume text. All outputs are deterministic and bounded to [0, 100].
func Analyze(text string) scoring.ResumeData {
	lower := strings.ToLower(text)
	keywords := detectKeywords(lower)
	return scoring.ResumeData{
		KeywordsDetected: keywords,
		ATSScore:         atsScore(lower, keywords),
		ProjectQuality:   projectQuality(lower, keywords),
	}
}

// detectKeywords scans text for reference-vocabulary terms. Single-token
// terms match whole tokens only; multi-word and slashed terms match as
// substrings of the normalized text.
func detectKeywords(lower string) []string {
	tokens := map[string]struct{}{}
	for _, token := range tokenPattern.FindAllString(lower, -1) {
		tokens[token] = struct{}{}
	}

	found := map[string]struct{}{}
	for _, term := range scoring.VocabularyTerms() {
		if strings.ContainsAny(term, " /") {
			if strings.Contains(lower, term) {
				found[term] = struct{}{}
			}
			continue
		}
		if _, ok := tokens[term]; ok {
			found[term] = struct{}{}
		}
	}
	for alias, term := range aliases {
		if _, ok := tokens[alias]; ok {
			found[term] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for _, term := range scoring.VocabularyTerms() {
		if _, ok := found[term]; ok {
			out = append(out, term)
		}
	}
	return out
}

// atsScore rewards scannable structure: recognizable sections, contact
// info and technology keyword density.
func atsScore(lower string, keywords []string) float64 {
	score := 20.0
	for _, header := range sectionHeaders {
		if strings.Contains(lower, header) {
			score += 10
		}
	}
	if emailPattern.MatchString(lower) {
		score += 10
	}
	score += scoring.Clamp(float64(len(keywords))*2.5, 0, 30)
	return scoring.Clamp(score, 0, 100)
}

// projectQuality rewards concrete project evidence: project mentions,
// public links and a varied tech vocabulary.
func projectQuality(lower string, keywords []string) float64 {
	score := 0.0
	score += scoring.Clamp(float64(strings.Count(lower, "project"))*8, 0, 32)
	if strings.Contains(lower, "github.com/") {
		score += 18
	}
	if strings.Contains(lower, "http://") || strings.Contains(lower, "https://") {
		score += 10
	}
	score += scoring.Clamp(float64(len(keywords))*2.5, 0, 40)
	return scoring.Clamp(score, 0, 100)
}
