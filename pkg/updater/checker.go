// Package updater polls GitHub releases for a newer version of the
// service. Results are cached for 12 hours; the checker never blocks a
// request path.
package updater

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/artor/studysearch/pkg/log"
)

// CacheTTL is how long a release check result stays valid.
const CacheTTL = 12 * time.Hour

// Status is the outcome of the latest release check.
type Status struct {
	LatestVersion   string    `json:"latest_version"`
	UpdateAvailable bool      `json:"update_available"`
	CheckedAt       time.Time `json:"checked_at"`
	ReleaseURL      string    `json:"release_url,omitempty"`
}

type Checker struct {
	client  *github.Client
	owner   string
	repo    string
	current string
	logger  *log.Logger

	mu     sync.Mutex
	cached *Status
}

// NewChecker builds a release checker for an "owner/name" repository.
// A token is optional and only raises the API rate limit.
func NewChecker(repo, token, currentVersion string) (*Checker, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("invalid repository %q, expected owner/name", repo)
	}

	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(context.Background(), ts)
		client = github.NewClient(tc)
	} else {
		client = github.NewClient(nil)
	}

	return &Checker{
		client:  client,
		owner:   owner,
		repo:    name,
		current: currentVersion,
		logger:  log.ForService("updater"),
	}, nil
}

// Check returns the release status, hitting the GitHub API only when the
// cached result has expired.
func (c *Checker) Check(ctx context.Context) (*Status, error) {
	c.mu.Lock()
	if c.cached != nil && time.Since(c.cached.CheckedAt) < CacheTTL {
		status := c.cached
		c.mu.Unlock()
		return status, nil
	}
	c.mu.Unlock()

	release, _, err := c.client.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		return nil, fmt.Errorf("fetching latest release for %s/%s: %w", c.owner, c.repo, err)
	}

	latest := strings.TrimPrefix(release.GetTagName(), "v")
	status := &Status{
		LatestVersion:   latest,
		UpdateAvailable: newerVersion(latest, c.current),
		CheckedAt:       time.Now().UTC(),
		ReleaseURL:      release.GetHTMLURL(),
	}

	c.mu.Lock()
	c.cached = status
	c.mu.Unlock()

	if status.UpdateAvailable {
		c.logger.Infof("version %s is available (running %s): %s", latest, c.current, status.ReleaseURL)
	} else {
		c.logger.Debugf("running the latest version (%s)", c.current)
	}
	return status, nil
}

// CachedStatus returns the last check result without touching the
// network. Nil until the first successful check.
func (c *Checker) CachedStatus() *Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached
}

// Run checks immediately and then once per cache interval until the
// context is canceled. Failures are logged and retried next tick.
func (c *Checker) Run(ctx context.Context) {
	check := func() {
		if _, err := c.Check(ctx); err != nil {
			c.logger.Warnf("release check failed: %v", err)
		}
	}
	check()

	ticker := time.NewTicker(CacheTTL)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// newerVersion compares dotted numeric versions. Non-numeric segments
// fall back to string comparison.
func newerVersion(latest, current string) bool {
	if latest == "" || latest == current {
		return false
	}

	latestParts := strings.Split(latest, ".")
	currentParts := strings.Split(current, ".")
	for i := 0; i < len(latestParts) && i < len(currentParts); i++ {
		ln, lerr := strconv.Atoi(latestParts[i])
		cn, cerr := strconv.Atoi(currentParts[i])
		if lerr != nil || cerr != nil {
			if latestParts[i] != currentParts[i] {
				return latestParts[i] > currentParts[i]
			}
			continue
		}
		if ln != cn {
			return ln > cn
		}
	}
	return len(latestParts) > len(currentParts)
}
