package curriculum

// WeekEntry is one week of a training plan.
type WeekEntry struct {
	Week         int      `json:"week"`
	Goal         string   `json:"goal"`
	Objectives   []string `json:"objectives"`
	Topics       []string `json:"topics"`
	Tasks        []string `json:"tasks"`
	Deliverables []string `json:"deliverables"`
}

// TrainingPlan is the structured curriculum produced for a candidate. An LLM
// enricher may replace it wholesale, but must honor the identical shape.
type TrainingPlan struct {
	Summary    string      `json:"summary"`
	FocusAreas []string    `json:"focus_areas"`
	WeeklyPlan []WeekEntry `json:"weekly_plan"`
}
