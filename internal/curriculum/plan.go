package curriculum

import (
	"fmt"
	"strconv"
	"strings"

	"aris-backend/internal/scoring"
)

// focusMappers classify gap text into canonical focus areas, first match
// wins. Predicates are substring checks on the lowercased gap string.
var focusMappers = []struct {
	triggers []string
	label    func(roleApplied string) string
}{
	{
		triggers: []string{"language", "diversity"},
		label: func(role string) string {
			return "Technology stack expansion for " + role
		},
	},
	{
		triggers: []string{"consistency", "commit"},
		label: func(string) string {
			return "Regular coding practice & contribution discipline"
		},
	},
	{
		triggers: []string{"visibility", "documentation"},
		label: func(string) string {
			return "Project documentation & portfolio building"
		},
	},
	{
		triggers: []string{"role", "align"},
		label: func(role string) string {
			return "Core " + role + " skill development"
		},
	},
	{
		triggers: []string{"resume"},
		label: func(string) string {
			return "Resume & professional profile enhancement"
		},
	},
}

const fallbackFocusArea = "Technical skill development"

// Generate builds a deterministic training plan from a scoring result. It is
// the fallback when no LLM is configured; re-invocation with identical inputs
// yields identical output.
func Generate(result scoring.CompositeResult, roleApplied, candidateName string) TrainingPlan {
	params, ok := bandPlans[result.ConfidenceBand]
	if !ok {
		params = defaultBandPlan
	}

	category := scoring.NormalizeRole(roleApplied)
	topics := topicsForRole(category)
	focusAreas := focusAreasFor(result.LearningGaps, roleApplied)
	weekly := buildWeeklyPlan(params, topics)

	return TrainingPlan{
		Summary:    summaryLine(params, result, roleApplied, candidateName, focusAreas),
		FocusAreas: focusAreas,
		WeeklyPlan: weekly,
	}
}

func focusAreasFor(gaps []string, roleApplied string) []string {
	areas := make([]string, 0, 4)
	for _, gap := range gaps {
		if len(areas) == 4 {
			break
		}
		areas = append(areas, classifyGap(gap, roleApplied))
	}
	if len(areas) > 0 {
		return areas
	}
	return []string{
		"Deep " + roleApplied + " specialization",
		"Building production-ready projects",
		"Industry best practices & patterns",
	}
}

func classifyGap(gap, roleApplied string) string {
	lower := strings.ToLower(gap)
	for _, mapper := range focusMappers {
		for _, trigger := range mapper.triggers {
			if strings.Contains(lower, trigger) {
				return mapper.label(roleApplied)
			}
		}
	}
	return fallbackFocusArea
}

func buildWeeklyPlan(params planParams, topics map[string][]string) []WeekEntry {
	startIdx := 0
	for i, tier := range tierOrder {
		if tier == params.StartTier {
			startIdx = i
			break
		}
	}

	weekly := make([]WeekEntry, 0, params.Weeks)
	for week := 1; week <= params.Weeks; week++ {
		tier := tierForWeek(week, params.Weeks, startIdx)
		tierTopics := topics[tier]

		topicIdx := (week - 1) % len(tierTopics)
		mainTopic := tierTopics[topicIdx]

		weekTopics := []string{mainTopic}
		for i, topic := range tierTopics {
			if i != topicIdx {
				weekTopics = append(weekTopics, topic)
				break
			}
		}

		weekly = append(weekly, WeekEntry{
			Week: week,
			Goal: mainTopic,
			Objectives: []string{
				"Understand core concepts of " + strings.ToLower(mainTopic),
				"Complete hands-on exercises for " + beforeSeparator(mainTopic, "&"),
			},
			Topics: weekTopics,
			Tasks: []string{
				"Build a mini-project demonstrating " + beforeSeparator(mainTopic, "("),
			},
			Deliverables: []string{
				"Working code pushed to GitHub with documentation",
				"Progress report with learning reflections",
			},
		})
	}
	return weekly
}

// tierForWeek interpolates linearly from the start tier toward the advanced
// tier across the week range, clamping at the ceiling tier.
func tierForWeek(week, weeks, startIdx int) string {
	denom := weeks - 1
	if denom < 1 {
		denom = 1
	}
	progress := float64(week-1) / float64(denom)
	idx := startIdx + int(progress*float64(2-startIdx))
	if idx > 2 {
		idx = 2
	}
	return tierOrder[idx]
}

func beforeSeparator(topic, sep string) string {
	head, _, _ := strings.Cut(topic, sep)
	return strings.ToLower(strings.TrimSpace(head))
}

func summaryLine(params planParams, result scoring.CompositeResult, roleApplied, candidateName string, focusAreas []string) string {
	nameRef := ""
	if candidateName != "" {
		nameRef = " for " + candidateName
	}
	leadFocus := focusAreas
	if len(leadFocus) > 2 {
		leadFocus = leadFocus[:2]
	}
	score := strconv.FormatFloat(result.MasterScore, 'f', -1, 64)
	return fmt.Sprintf(
		"%s %d-week training plan%s targeting the %s role. Based on evaluation score of %s/100 (%s confidence). Focuses on %s to address identified skill gaps.",
		params.Track, params.Weeks, nameRef, roleApplied, score, result.ConfidenceBand,
		strings.ToLower(strings.Join(leadFocus, ", ")),
	)
}
