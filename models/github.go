package models

// ContributionDay is one cell of the GitHub contribution calendar.
type ContributionDay struct {
	ContributionCount int    `json:"contributionCount"`
	Date              string `json:"date"`
}

// GitHubStats aggregates the public statistics shown on the homepage widget.
// The contribution calendar is only populated when an access token is
// configured; without one the counts stay at zero.
type GitHubStats struct {
	Repos              int               `json:"repos"`
	Stars              int               `json:"stars"`
	Followers          int               `json:"followers"`
	Following          int               `json:"following"`
	AvatarURL          string            `json:"avatarUrl"`
	Name               string            `json:"name"`
	TotalContributions int               `json:"totalContributions"`
	ContributionDays   []ContributionDay `json:"contributionDays"`
}
