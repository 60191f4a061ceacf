package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexvr/portfolio-backend/models"
)

const (
	defaultGitHubAPIURL     = "https://api.github.com"
	defaultGitHubGraphQLURL = "https://api.github.com/graphql"

	statsCacheKey = "github:stats"

	// StatsCacheTTL mirrors the hourly revalidation window of the
	// consuming site.
	StatsCacheTTL = time.Hour
)

// ErrNoUsername is returned when no GitHub account is configured; the
// consuming view renders its error state instead of a stats widget.
var ErrNoUsername = errors.New("github username not configured")

// GitHubService fetches aggregate account statistics and the contribution
// calendar for a configured account. The calendar requires an access token;
// without one the contribution fields stay at zero.
type GitHubService struct {
	username   string
	token      string
	apiBaseURL string
	graphqlURL string
	httpClient *http.Client
	cache      StatsCache
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

type GitHubOption func(*GitHubService)

func WithAPIBaseURL(url string) GitHubOption {
	return func(s *GitHubService) {
		s.apiBaseURL = url
	}
}

func WithGraphQLURL(url string) GitHubOption {
	return func(s *GitHubService) {
		s.graphqlURL = url
	}
}

func WithHTTPClient(client *http.Client) GitHubOption {
	return func(s *GitHubService) {
		s.httpClient = client
	}
}

func WithCacheTTL(ttl time.Duration) GitHubOption {
	return func(s *GitHubService) {
		s.cacheTTL = ttl
	}
}

func NewGitHubService(username, token string, cache StatsCache, opts ...GitHubOption) *GitHubService {
	s := &GitHubService{
		username:   username,
		token:      token,
		apiBaseURL: defaultGitHubAPIURL,
		graphqlURL: defaultGitHubGraphQLURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache,
		cacheTTL:   StatsCacheTTL,
		logger:     log.With().Str("component", "githubService").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns the cached statistics when fresh, otherwise fetches user
// data, the star sum over the first hundred repositories and, when a token
// is present, the contribution calendar.
func (s *GitHubService) Stats(ctx context.Context) (*models.GitHubStats, error) {
	if s.username == "" {
		return nil, ErrNoUsername
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, statsCacheKey); ok {
			var stats models.GitHubStats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
			s.logger.Warn().Msg("discarding undecodable cached stats")
		}
	}

	user, err := s.fetchUser(ctx)
	if err != nil {
		return nil, err
	}

	stars, err := s.fetchStarCount(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.GitHubStats{
		Repos:            user.PublicRepos,
		Stars:            stars,
		Followers:        user.Followers,
		Following:        user.Following,
		AvatarURL:        user.AvatarURL,
		Name:             user.Name,
		ContributionDays: []models.ContributionDay{},
	}
	if stats.Name == "" {
		stats.Name = s.username
	}

	if s.token != "" {
		total, days, err := s.fetchContributions(ctx)
		if err != nil {
			// Richer calendar data is best-effort; the aggregate counts
			// above are still valid without it.
			s.logger.Warn().Err(err).Msg("failed to fetch contribution calendar")
		} else {
			stats.TotalContributions = total
			stats.ContributionDays = days
		}
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			s.cache.Set(ctx, statsCacheKey, encoded, s.cacheTTL)
		}
	}

	return stats, nil
}

type githubUser struct {
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	AvatarURL   string `json:"avatar_url"`
	Name        string `json:"name"`
}

func (s *GitHubService) fetchUser(ctx context.Context) (*githubUser, error) {
	var user githubUser
	url := fmt.Sprintf("%s/users/%s", s.apiBaseURL, s.username)
	if err := s.getJSON(ctx, url, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GitHubService) fetchStarCount(ctx context.Context) (int, error) {
	var repos []struct {
		StargazersCount int `json:"stargazers_count"`
	}
	url := fmt.Sprintf("%s/users/%s/repos?per_page=100", s.apiBaseURL, s.username)
	if err := s.getJSON(ctx, url, &repos); err != nil {
		return 0, err
	}

	total := 0
	for _, repo := range repos {
		total += repo.StargazersCount
	}
	return total, nil
}

func (s *GitHubService) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if s.token != "" {
		req.Header.Set("Authorization", "token "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read github response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode github response: %w", err)
	}
	return nil
}

const contributionsQuery = `
query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            contributionCount
            date
          }
        }
      }
    }
  }
}`

func (s *GitHubService) fetchContributions(ctx context.Context) (int, []models.ContributionDay, error) {
	payload, err := json.Marshal(map[string]any{
		"query":     contributionsQuery,
		"variables": map[string]string{"login": s.username},
	})
	if err != nil {
		return 0, nil, fmt.Errorf("marshal graphql query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("github graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, nil, fmt.Errorf("github graphql error: status %d", resp.StatusCode)
	}

	var decoded struct {
		Data struct {
			User struct {
				ContributionsCollection struct {
					ContributionCalendar struct {
						TotalContributions int `json:"totalContributions"`
						Weeks              []struct {
							ContributionDays []models.ContributionDay `json:"contributionDays"`
						} `json:"weeks"`
					} `json:"contributionCalendar"`
				} `json:"contributionsCollection"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, nil, fmt.Errorf("decode graphql response: %w", err)
	}

	calendar := decoded.Data.User.ContributionsCollection.ContributionCalendar
	days := make([]models.ContributionDay, 0, len(calendar.Weeks)*7)
	for _, week := range calendar.Weeks {
		days = append(days, week.ContributionDays...)
	}
	return calendar.TotalContributions, days, nil
}
