package githubmetrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"aris-backend/internal/scoring"
)

const (
	defaultAPIBase = "https://api.github.com"

	// Upstream caps mirrored from the metrics contract.
	maxCommitsCounted = 500
	commitsPerRepoCap = 100
	analyzedRepoLimit = 10
	topRepoLimit      = 3
)

// ErrUserNotFound signals a GitHub URL pointing at a non-existent user. All
// other fetch failures degrade to a defined empty record instead of an error.
var ErrUserNotFound = errors.New("github user not found")

// ErrInvalidURL signals a GitHub URL the username cannot be extracted from.
var ErrInvalidURL = errors.New("github username not found in URL")

// Client fetches public activity metrics from the GitHub REST API.
type Client struct {
	apiBase    string
	token      string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient constructs a metrics client. apiBase defaults to the public
// GitHub API; token is optional and raises rate limits when present.
func NewClient(apiBase, token string) *Client {
	base := strings.TrimRight(strings.TrimSpace(apiBase), "/")
	if base == "" {
		base = defaultAPIBase
	}
	return &Client{
		apiBase:    base,
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ExtractUsername pulls the GitHub username out of a profile URL. Raw
// usernames without a github.com host pass through as-is.
func ExtractUsername(githubURL string) (string, error) {
	trimmed := strings.TrimSpace(githubURL)
	if trimmed == "" {
		return "", fmt.Errorf("GitHub URL is required")
	}
	if !strings.Contains(trimmed, "github.com") {
		return strings.Trim(trimmed, "/"), nil
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", ErrInvalidURL
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return "", ErrInvalidURL
	}
	username, _, _ := strings.Cut(path, "/")
	return username, nil
}

type repoPayload struct {
	Name            string `json:"name"`
	Fork            bool   `json:"fork"`
	StargazersCount int    `json:"stargazers_count"`
	PushedAt        string `json:"pushed_at"`
	Language        string `json:"language"`
	Owner           struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// emptyMetrics is the defined empty record returned on fetch failure.
func emptyMetrics(username string) scoring.GitHubMetrics {
	return scoring.GitHubMetrics{
		Username:        username,
		TopRepositories: []scoring.RepoSummary{},
		Languages:       map[string]float64{},
	}
}

// FetchMetrics builds a GitHubMetrics record for the user behind githubURL.
// A missing user returns ErrUserNotFound; any other upstream failure returns
// the defined empty record with a nil error.
func (c *Client) FetchMetrics(ctx context.Context, githubURL string) (scoring.GitHubMetrics, error) {
	username, err := ExtractUsername(githubURL)
	if err != nil {
		return scoring.GitHubMetrics{}, err
	}

	status, _, err := c.get(ctx, fmt.Sprintf("%s/users/%s", c.apiBase, username))
	if err != nil {
		return emptyMetrics(username), nil
	}
	if status == http.StatusNotFound {
		return scoring.GitHubMetrics{}, ErrUserNotFound
	}
	if status != http.StatusOK {
		return emptyMetrics(username), nil
	}

	status, body, err := c.get(ctx, fmt.Sprintf("%s/users/%s/repos?per_page=100", c.apiBase, username))
	if err != nil || status != http.StatusOK {
		return emptyMetrics(username), nil
	}
	var repos []repoPayload
	if err := json.Unmarshal(body, &repos); err != nil {
		return emptyMetrics(username), nil
	}

	nonForks := make([]repoPayload, 0, len(repos))
	for _, repo := range repos {
		if !repo.Fork {
			nonForks = append(nonForks, repo)
		}
	}

	totalStars := 0
	for _, repo := range nonForks {
		totalStars += repo.StargazersCount
	}

	byPushed := append([]repoPayload{}, nonForks...)
	sort.SliceStable(byPushed, func(i, j int) bool {
		return byPushed[i].PushedAt > byPushed[j].PushedAt
	})
	analyzed := byPushed
	if len(analyzed) > analyzedRepoLimit {
		analyzed = analyzed[:analyzedRepoLimit]
	}

	byStars := append([]repoPayload{}, nonForks...)
	sort.SliceStable(byStars, func(i, j int) bool {
		return byStars[i].StargazersCount > byStars[j].StargazersCount
	})
	topRepos := make([]scoring.RepoSummary, 0, topRepoLimit)
	for _, repo := range byStars {
		if len(topRepos) == topRepoLimit {
			break
		}
		topRepos = append(topRepos, scoring.RepoSummary{
			Name:     repo.Name,
			Stars:    repo.StargazersCount,
			Language: repo.Language,
		})
	}

	commits, languageBytes := c.collectRepoDetails(ctx, username, analyzed)

	languages := map[string]float64{}
	totalBytes := 0
	for _, count := range languageBytes {
		totalBytes += count
	}
	if totalBytes > 0 {
		for lang, count := range languageBytes {
			languages[lang] = round2(float64(count) / float64(totalBytes) * 100)
		}
	}

	lastActivity := ""
	if len(analyzed) > 0 {
		lastActivity = analyzed[0].PushedAt
	}

	return scoring.GitHubMetrics{
		Username:                username,
		TotalRepos:              len(nonForks),
		TotalPublicRepos:        len(nonForks),
		TotalStars:              totalStars,
		TopRepositories:         topRepos,
		Languages:               languages,
		LastActivity:            lastActivity,
		RecentActivityScoreBase: round2(scoring.Clamp(float64(commits)/50.0*100, 0, 100)),
		CommitsLast90Days:       commits,
	}, nil
}

// collectRepoDetails walks the analyzed repos accumulating language bytes and
// 90-day commit counts. Per-repo failures are skipped; the commit total caps
// at maxCommitsCounted.
func (c *Client) collectRepoDetails(ctx context.Context, username string, analyzed []repoPayload) (int, map[string]int) {
	cutoff := c.now().Add(-90 * 24 * time.Hour)
	commits := 0
	languageBytes := map[string]int{}

	for _, repo := range analyzed {
		owner := repo.Owner.Login
		if owner == "" {
			owner = username
		}
		if repo.Name == "" {
			continue
		}

		langURL := fmt.Sprintf("%s/repos/%s/%s/languages", c.apiBase, owner, repo.Name)
		if status, body, err := c.get(ctx, langURL); err == nil && status == http.StatusOK {
			var repoLangs map[string]int
			if err := json.Unmarshal(body, &repoLangs); err == nil {
				for lang, count := range repoLangs {
					languageBytes[lang] += count
				}
			}
		}

		commitsURL := fmt.Sprintf("%s/repos/%s/%s/commits?since=%s&per_page=100",
			c.apiBase, owner, repo.Name, url.QueryEscape(cutoff.Format(time.RFC3339)))
		if status, body, err := c.get(ctx, commitsURL); err == nil && status == http.StatusOK {
			var repoCommits []json.RawMessage
			if err := json.Unmarshal(body, &repoCommits); err == nil {
				count := len(repoCommits)
				if count > commitsPerRepoCap {
					count = commitsPerRepoCap
				}
				commits += count
			}
		}

		if commits >= maxCommitsCounted {
			commits = maxCommitsCounted
			break
		}
	}

	return commits, languageBytes
}

func (c *Client) get(ctx context.Context, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
