package curriculum

import "aris-backend/internal/scoring"

// Difficulty tiers, ordered. Weekly interpolation walks this slice toward
// its last entry.
var tierOrder = []string{tierFoundation, tierIntermediate, tierAdvanced}

const (
	tierFoundation   = "foundation"
	tierIntermediate = "intermediate"
	tierAdvanced     = "advanced"
)

// planParams fixes the plan shape per confidence band.
type planParams struct {
	Weeks     int
	Track     string
	StartTier string
}

var bandPlans = map[string]planParams{
	scoring.BandRisk:     {Weeks: 8, Track: "Foundational", StartTier: tierFoundation},
	scoring.BandModerate: {Weeks: 6, Track: "Strengthening", StartTier: tierFoundation},
	scoring.BandGood:     {Weeks: 5, Track: "Accelerated", StartTier: tierIntermediate},
	scoring.BandStrong:   {Weeks: 4, Track: "Advanced", StartTier: tierAdvanced},
}

// defaultBandPlan covers band values outside the fixed table.
var defaultBandPlan = bandPlans[scoring.BandModerate]

// roleTopics is the per-role training topic catalog, three tiers deep.
// Unknown roles fall back to the full stack catalog.
var roleTopics = map[string]map[string][]string{
	"backend": {
		tierFoundation: {
			"Python fundamentals & best practices",
			"HTTP & REST API design patterns",
			"SQL & database design principles",
		},
		tierIntermediate: {
			"FastAPI / Django development",
			"Authentication & authorization patterns",
			"Database optimization & indexing",
		},
		tierAdvanced: {
			"Microservices architecture",
			"Caching strategies (Redis)",
			"API security & rate limiting",
		},
	},
	"frontend": {
		tierFoundation: {
			"HTML5 & CSS3 fundamentals",
			"JavaScript ES6+ core concepts",
			"Responsive design principles",
		},
		tierIntermediate: {
			"React component architecture",
			"State management (Context, Redux)",
			"TypeScript for React applications",
		},
		tierAdvanced: {
			"Performance optimization & code splitting",
			"Testing (Jest, React Testing Library)",
			"Next.js & server-side rendering",
		},
	},
	"data": {
		tierFoundation: {
			"Python for data analysis",
			"Pandas & NumPy fundamentals",
			"SQL for data querying",
		},
		tierIntermediate: {
			"Data visualization (Matplotlib, Seaborn)",
			"Statistical analysis & hypothesis testing",
			"Machine learning basics (scikit-learn)",
		},
		tierAdvanced: {
			"Deep learning (TensorFlow/PyTorch)",
			"Feature engineering & model optimization",
			"Data pipeline design (Airflow, dbt)",
		},
	},
	"full stack": {
		tierFoundation: {
			"HTML/CSS/JS web fundamentals",
			"React component basics",
			"Node.js / Python backend basics",
		},
		tierIntermediate: {
			"Full stack CRUD application",
			"REST API + React integration",
			"Database design & ORM usage",
		},
		tierAdvanced: {
			"Docker & deployment workflows",
			"CI/CD pipeline setup",
			"System design & architecture",
		},
	},
	"devops": {
		tierFoundation: {
			"Linux command line & shell scripting",
			"Git workflows & branching strategies",
			"Basic networking concepts",
		},
		tierIntermediate: {
			"Docker containerization",
			"CI/CD with GitHub Actions",
			"Cloud services (AWS/GCP basics)",
		},
		tierAdvanced: {
			"Kubernetes orchestration",
			"Infrastructure as Code (Terraform)",
			"Monitoring & observability",
		},
	},
}

func topicsForRole(category string) map[string][]string {
	if topics, ok := roleTopics[category]; ok {
		return topics
	}
	return roleTopics["full stack"]
}
