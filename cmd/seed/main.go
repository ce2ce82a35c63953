package main

// Seed the database with mock candidate profiles:
//   go run ./cmd/seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"aris-backend/internal/applications"
	"aris-backend/internal/curriculum"
	"aris-backend/internal/llm"
	"aris-backend/internal/scoring"
	"aris-backend/internal/shared/config"
	"aris-backend/internal/shared/storage/db"
)

type profile struct {
	FullName    string
	Email       string
	GitHubURL   string
	RoleApplied string
	Status      string
	AgeDays     int

	Personal     map[string]any
	Education    map[string]any
	Experience   map[string]any
	Professional map[string]any

	Metrics scoring.GitHubMetrics
	Resume  *scoring.ResumeData
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	repo := &applications.PGRepo{DB: sqlDB}
	for _, p := range profiles() {
		app := buildApplication(p)
		if err := repo.Create(ctx, app); err != nil {
			log.Printf("seed %s: %v", p.FullName, err)
			os.Exit(1)
		}
		log.Printf("seeded %s (%s, %s) score=%.1f", app.FullName, app.RoleApplied, app.Status, *app.MasterScore)
	}
}

// buildApplication runs a profile through the scoring engine so seeded rows
// carry the same derived data a live submission would.
func buildApplication(p profile) applications.Application {
	result := scoring.ComputeScores(p.Metrics, p.Resume, p.RoleApplied)

	var resume *applications.ResumeAnalysis
	if p.Resume != nil {
		resume = &applications.ResumeAnalysis{ResumeData: *p.Resume}
	}

	now := time.Now().UTC().AddDate(0, 0, -p.AgeDays)
	app := applications.Application{
		ID:               uuid.NewString(),
		FullName:         p.FullName,
		Email:            p.Email,
		GitHubURL:        p.GitHubURL,
		RoleApplied:      p.RoleApplied,
		Status:           p.Status,
		Personal:         mustJSON(p.Personal),
		Education:        mustJSON(p.Education),
		Experience:       mustJSON(p.Experience),
		Professional:     mustJSON(p.Professional),
		MasterScore:      &result.MasterScore,
		ConfidenceBand:   result.ConfidenceBand,
		Metrics:          &p.Metrics,
		Breakdown:        &result.ScoreBreakdown,
		LearningGaps:     result.LearningGaps,
		ResumeAnalysis:   resume,
		BackgroundReport: seedReport(p, result),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if p.Status == applications.StatusAccepted || p.Status == applications.StatusIntern {
		plan := curriculum.Generate(result, p.RoleApplied, p.FullName)
		app.TrainingPlan = &plan
	}
	return app
}

func seedReport(p profile, result scoring.CompositeResult) *llm.ProfileReport {
	weaknesses := result.LearningGaps
	if len(weaknesses) > 3 {
		weaknesses = weaknesses[:3]
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{"No major weaknesses identified"}
	}
	return &llm.ProfileReport{
		Summary: fmt.Sprintf(
			"%s scored %s/100 (%s confidence) for the %s role. Their GitHub profile shows %d public repos with %d commits in the last 90 days.",
			p.FullName, strconv.FormatFloat(result.MasterScore, 'f', -1, 64),
			result.ConfidenceBand, p.RoleApplied,
			p.Metrics.TotalPublicRepos, p.Metrics.CommitsLast90Days,
		),
		Strengths:       []string{fmt.Sprintf("Active GitHub presence with %d repositories", p.Metrics.TotalPublicRepos)},
		Weaknesses:      weaknesses,
		Risks:           []string{},
		GrowthDirection: fmt.Sprintf("Focus on strengthening %s specific skills.", p.RoleApplied),
	}
}

func mustJSON(v map[string]any) json.RawMessage {
	if v == nil {
		return json.RawMessage("{}")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

func profiles() []profile {
	return []profile{
		{
			FullName: "Arjun Sharma", Email: "arjun.sharma@iitb.ac.in",
			GitHubURL: "https://github.com/arjunsharma", RoleApplied: "Backend Developer",
			Status: applications.StatusPending, AgeDays: 2,
			Personal:  map[string]any{"fullName": "Arjun Sharma", "age": 22, "location": "Bangalore, Karnataka"},
			Education: map[string]any{"degree": "Bachelor's Degree", "fieldOfStudy": "Computer Science", "institution": "IIT Bombay", "graduationYear": 2025, "gpa": "8.7"},
			Experience: map[string]any{"hasPreviousInternship": true, "company": "Infosys", "duration": "3 months", "projectLinks": []map[string]any{
				{"url": "https://github.com/arjunsharma/fastapi-blog", "description": "Blog API with FastAPI, PostgreSQL, JWT auth"},
			}},
			Professional: map[string]any{"githubUrl": "https://github.com/arjunsharma", "primaryTechStack": []string{"Python", "FastAPI", "PostgreSQL", "Docker", "Redis"}, "yearsOfExperience": 1, "currentStatus": "Student"},
			Metrics: scoring.GitHubMetrics{
				Username: "arjunsharma", TotalRepos: 18, TotalPublicRepos: 18, TotalStars: 23,
				TopRepositories: []scoring.RepoSummary{
					{Name: "fastapi-blog", Stars: 12, Language: "Python"},
					{Name: "task-manager", Stars: 8, Language: "Python"},
				},
				Languages:               map[string]float64{"Python": 52.4, "JavaScript": 18.1, "TypeScript": 14.3, "Shell": 8.7, "Dockerfile": 6.5},
				LastActivity:            "2026-08-19T10:30:00Z",
				RecentActivityScoreBase: 82, CommitsLast90Days: 78,
			},
			Resume: &scoring.ResumeData{
				KeywordsDetected: []string{"python", "fastapi", "django", "postgresql", "docker", "redis", "api", "sql", "git", "rest"},
				ATSScore:         82, ProjectQuality: 75,
			},
		},
		{
			FullName: "Priya Patel", Email: "priya.patel@vjti.ac.in",
			GitHubURL: "https://github.com/priyapatel", RoleApplied: "Frontend Developer",
			Status: applications.StatusInReview, AgeDays: 5,
			Personal:  map[string]any{"fullName": "Priya Patel", "age": 21, "location": "Mumbai, Maharashtra"},
			Education: map[string]any{"degree": "Bachelor's Degree", "fieldOfStudy": "Information Technology", "institution": "VJTI Mumbai", "graduationYear": 2026, "gpa": "8.2"},
			Experience: map[string]any{"hasPreviousInternship": false, "projectLinks": []map[string]any{
				{"url": "https://github.com/priyapatel/portfolio-site", "description": "Portfolio with React & Tailwind"},
			}},
			Professional: map[string]any{"githubUrl": "https://github.com/priyapatel", "primaryTechStack": []string{"React", "TypeScript", "Next.js", "Tailwind", "Figma"}, "yearsOfExperience": 0, "currentStatus": "Student"},
			Metrics: scoring.GitHubMetrics{
				Username: "priyapatel", TotalRepos: 12, TotalPublicRepos: 12, TotalStars: 15,
				TopRepositories: []scoring.RepoSummary{
					{Name: "portfolio-site", Stars: 8, Language: "TypeScript"},
					{Name: "expense-tracker", Stars: 5, Language: "TypeScript"},
				},
				Languages:               map[string]float64{"TypeScript": 38.5, "JavaScript": 24.3, "CSS": 19.8, "HTML": 17.4},
				LastActivity:            "2026-08-20T08:15:00Z",
				RecentActivityScoreBase: 68, CommitsLast90Days: 52,
			},
			Resume: &scoring.ResumeData{
				KeywordsDetected: []string{"react", "typescript", "javascript", "html", "css", "next.js", "tailwind", "figma", "git"},
				ATSScore:         75, ProjectQuality: 68,
			},
		},
		{
			FullName: "Rahul Verma", Email: "rahul.verma@iitd.ac.in",
			GitHubURL: "https://github.com/rahulverma", RoleApplied: "Data Science",
			Status: applications.StatusAccepted, AgeDays: 12,
			Personal:  map[string]any{"fullName": "Rahul Verma", "age": 23, "location": "New Delhi"},
			Education: map[string]any{"degree": "Master's Degree", "fieldOfStudy": "Data Science", "institution": "IIT Delhi", "graduationYear": 2025, "gpa": "9.1"},
			Experience: map[string]any{"hasPreviousInternship": true, "company": "Microsoft Research India", "duration": "6 months", "projectLinks": []map[string]any{
				{"url": "https://github.com/rahulverma/sentiment-analyzer", "description": "NLP sentiment analysis with transformers"},
			}},
			Professional: map[string]any{"githubUrl": "https://github.com/rahulverma", "primaryTechStack": []string{"Python", "TensorFlow", "PyTorch", "Pandas", "SQL"}, "yearsOfExperience": 2, "currentStatus": "Recent Graduate"},
			Metrics: scoring.GitHubMetrics{
				Username: "rahulverma", TotalRepos: 25, TotalPublicRepos: 25, TotalStars: 42,
				TopRepositories: []scoring.RepoSummary{
					{Name: "sentiment-analyzer", Stars: 18, Language: "Python"},
					{Name: "stock-predictor", Stars: 14, Language: "Python"},
				},
				Languages:               map[string]float64{"Python": 65.2, "Jupyter Notebook": 20.8, "R": 8.5, "SQL": 5.5},
				LastActivity:            "2026-08-21T06:00:00Z",
				RecentActivityScoreBase: 92, CommitsLast90Days: 120,
			},
			Resume: &scoring.ResumeData{
				KeywordsDetected: []string{"python", "tensorflow", "pytorch", "pandas", "numpy", "sklearn", "sql", "jupyter", "ml", "data"},
				ATSScore:         90, ProjectQuality: 88,
			},
		},
		{
			FullName: "Sneha Kulkarni", Email: "sneha.k@coep.ac.in",
			GitHubURL: "https://github.com/snehakulkarni", RoleApplied: "Full Stack Developer",
			Status: applications.StatusPending, AgeDays: 3,
			Personal:  map[string]any{"fullName": "Sneha Kulkarni", "age": 20, "location": "Pune, Maharashtra"},
			Education: map[string]any{"degree": "Bachelor's Degree", "fieldOfStudy": "Computer Engineering", "institution": "COEP Pune", "graduationYear": 2027, "gpa": "7.8"},
			Experience: map[string]any{"hasPreviousInternship": false, "projectLinks": []map[string]any{
				{"url": "https://github.com/snehakulkarni/todo-app", "description": "Full stack todo with React + Express"},
			}},
			Professional: map[string]any{"githubUrl": "https://github.com/snehakulkarni", "primaryTechStack": []string{"JavaScript", "React", "Node.js", "MongoDB"}, "yearsOfExperience": 0, "currentStatus": "Student"},
			Metrics: scoring.GitHubMetrics{
				Username: "snehakulkarni", TotalRepos: 8, TotalPublicRepos: 8, TotalStars: 6,
				TopRepositories: []scoring.RepoSummary{
					{Name: "todo-app", Stars: 3, Language: "JavaScript"},
					{Name: "weather-dashboard", Stars: 2, Language: "JavaScript"},
				},
				Languages:               map[string]float64{"JavaScript": 45.2, "HTML": 22.0, "CSS": 18.8, "Python": 14.0},
				LastActivity:            "2026-08-15T12:00:00Z",
				RecentActivityScoreBase: 55, CommitsLast90Days: 35,
			},
			Resume: &scoring.ResumeData{
				KeywordsDetected: []string{"javascript", "react", "node.js", "mongodb", "html", "css", "git", "api"},
				ATSScore:         62, ProjectQuality: 55,
			},
		},
		{
			FullName: "Vikram Joshi", Email: "vikram.joshi@mnit.ac.in",
			GitHubURL: "https://github.com/vikramjoshi", RoleApplied: "DevOps Engineer",
			Status: applications.StatusRejected, AgeDays: 20,
			Personal:  map[string]any{"fullName": "Vikram Joshi", "age": 24, "location": "Jaipur, Rajasthan"},
			Education: map[string]any{"degree": "Bachelor's Degree", "fieldOfStudy": "Mechanical Engineering", "institution": "MNIT Jaipur", "graduationYear": 2024, "gpa": "6.5"},
			Experience: map[string]any{"hasPreviousInternship": false, "projectLinks": []map[string]any{
				{"url": "https://github.com/vikramjoshi/hello-docker", "description": "Docker containerization tutorial"},
			}},
			Professional: map[string]any{"githubUrl": "https://github.com/vikramjoshi", "primaryTechStack": []string{"Docker", "Linux"}, "yearsOfExperience": 0, "currentStatus": "Job Seeker"},
			Metrics: scoring.GitHubMetrics{
				Username: "vikramjoshi", TotalRepos: 4, TotalPublicRepos: 4, TotalStars: 1,
				TopRepositories: []scoring.RepoSummary{
					{Name: "hello-docker", Stars: 1, Language: "Dockerfile"},
				},
				Languages:               map[string]float64{"Dockerfile": 40.0, "Shell": 35.0, "Python": 25.0},
				LastActivity:            "2026-06-30T09:00:00Z",
				RecentActivityScoreBase: 20, CommitsLast90Days: 6,
			},
			Resume: &scoring.ResumeData{
				KeywordsDetected: []string{"docker", "linux", "bash"},
				ATSScore:         38, ProjectQuality: 25,
			},
		},
		{
			FullName: "Ananya Iyer", Email: "ananya.iyer@nitt.edu",
			GitHubURL: "https://github.com/ananyaiyer", RoleApplied: "Backend Developer",
			Status: applications.StatusIntern, AgeDays: 35,
			Personal:  map[string]any{"fullName": "Ananya Iyer", "age": 22, "location": "Chennai, Tamil Nadu"},
			Education: map[string]any{"degree": "Bachelor's Degree", "fieldOfStudy": "Computer Science", "institution": "NIT Trichy", "graduationYear": 2026, "gpa": "8.9"},
			Experience: map[string]any{"hasPreviousInternship": true, "company": "Zoho", "duration": "2 months", "projectLinks": []map[string]any{
				{"url": "https://github.com/ananyaiyer/url-shortener", "description": "URL shortener in Go with Redis"},
			}},
			Professional: map[string]any{"githubUrl": "https://github.com/ananyaiyer", "primaryTechStack": []string{"Go", "PostgreSQL", "Redis", "Docker"}, "yearsOfExperience": 1, "currentStatus": "Student"},
			Metrics: scoring.GitHubMetrics{
				Username: "ananyaiyer", TotalRepos: 15, TotalPublicRepos: 15, TotalStars: 31,
				TopRepositories: []scoring.RepoSummary{
					{Name: "url-shortener", Stars: 16, Language: "Go"},
					{Name: "rate-limiter", Stars: 9, Language: "Go"},
				},
				Languages:               map[string]float64{"Go": 58.3, "Python": 20.1, "Shell": 12.6, "Makefile": 9.0},
				LastActivity:            "2026-08-22T14:45:00Z",
				RecentActivityScoreBase: 88, CommitsLast90Days: 95,
			},
			Resume: &scoring.ResumeData{
				KeywordsDetected: []string{"go", "golang", "postgresql", "redis", "docker", "api", "rest", "git", "sql"},
				ATSScore:         85, ProjectQuality: 80,
			},
		},
	}
}
