package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultAPI is the GitHub REST endpoint the release lookup talks to.
const DefaultAPI = "https://api.github.com"

// ErrDevelopmentBuild is returned by probes running in a binary that was not
// built from a tagged release. There is nothing meaningful to compare against.
var ErrDevelopmentBuild = errors.New("version: development build")

// Prober reports the locally running version and the latest published one.
type Prober interface {
	Versions(ctx context.Context) (local, latest string, err error)
}

// ProberFunc adapts a plain function to the Prober interface.
type ProberFunc func(ctx context.Context) (string, string, error)

func (f ProberFunc) Versions(ctx context.Context) (string, string, error) {
	return f(ctx)
}

// GitHubProbe looks up the latest release of Repo on GitHub.
type GitHubProbe struct {
	Client  *http.Client
	BaseURL string // defaults to DefaultAPI
	Repo    string // owner/name
	Local   string // version of the running binary
}

// NewGitHubProbe returns a probe for this binary's own repository.
func NewGitHubProbe(baseURL string) *GitHubProbe {
	return &GitHubProbe{
		Client:  http.DefaultClient,
		BaseURL: baseURL,
		Repo:    Repo(),
		Local:   Version,
	}
}

func (p *GitHubProbe) Versions(ctx context.Context) (string, string, error) {
	local := Normalize(p.Local)
	if local == "" || local == "dev" {
		return "", "", ErrDevelopmentBuild
	}

	latest, err := p.latestTag(ctx)
	if err != nil {
		return "", "", err
	}

	return local, Normalize(latest), nil
}

func (p *GitHubProbe) latestTag(ctx context.Context) (string, error) {
	base := p.BaseURL
	if base == "" {
		base = DefaultAPI
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	apiURL := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimRight(base, "/"), p.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", Package+"/"+Version)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to parse release JSON: %w", err)
	}

	return release.TagName, nil
}

// Normalize strips surrounding whitespace and a leading "v" so tags and
// build versions compare equal.
func Normalize(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// CompareVersions orders two version strings the semver way, returning -1, 0
// or 1. Strings that are not valid semver sort before valid ones.
func CompareVersions(a, b string) int {
	return semver.Compare("v"+Normalize(a), "v"+Normalize(b))
}
