// Package clickup implements the authenticated client for the ClickUp v2
// API. It is the fetch boundary: raw upstream records are validated and
// converted into typed time entries here, so the audit core can rely on
// well-formed input.
package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"timecop/internal/config"
	"timecop/internal/logger"
	"timecop/internal/model"
	"timecop/internal/timefmt"
)

// Client is an authenticated ClickUp API client scoped to one workspace.
type Client struct {
	baseURL    string
	teamID     string
	httpClient *http.Client
}

// NewClient creates a ClickUp client from the given configuration.
func NewClient(ctx context.Context, cfg config.ClickUpConfig) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		teamID:     cfg.TeamID,
		httpClient: newHTTPClient(ctx, cfg.APIToken, cfg.Timeout()),
	}
}

// get performs a GET request against the API and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clickup API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("clickup API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// teamResponse is the slice of the GET /team/{id} payload we care about.
type teamResponse struct {
	Team struct {
		Members []struct {
			User struct {
				ID       json.Number `json:"id"`
				Username string      `json:"username"`
				Email    string      `json:"email"`
			} `json:"user"`
		} `json:"members"`
	} `json:"team"`
}

// GetTeamMembers fetches all members of the workspace.
func (c *Client) GetTeamMembers(ctx context.Context) ([]model.Member, error) {
	body, err := c.get(ctx, "/team/"+c.teamID, nil)
	if err != nil {
		return nil, err
	}

	var page teamResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding team response: %w", err)
	}

	members := make([]model.Member, 0, len(page.Team.Members))
	for _, m := range page.Team.Members {
		username := m.User.Username
		if username == "" {
			username = "Unknown"
		}
		members = append(members, model.Member{
			ID:       m.User.ID.String(),
			Username: username,
			Email:    m.User.Email,
		})
	}
	return members, nil
}

// CheckConnection verifies that the workspace is reachable with the
// configured credentials.
func (c *Client) CheckConnection(ctx context.Context) error {
	_, err := c.get(ctx, "/team/"+c.teamID, nil)
	return err
}

// timeEntriesResponse is the paged payload of GET /team/{id}/time_entries.
type timeEntriesResponse struct {
	Data []rawTimeEntry `json:"data"`
}

// rawTimeEntry mirrors the upstream record. Duration and start are
// millisecond values encoded as strings; task may be null for unattached
// entries.
type rawTimeEntry struct {
	ID   string `json:"id"`
	Task *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"task"`
	User struct {
		ID       json.Number `json:"id"`
		Username string      `json:"username"`
		Email    string      `json:"email"`
	} `json:"user"`
	Duration string `json:"duration"`
	Start    string `json:"start"`
}

// mapEntry converts a raw upstream record into a TimeEntry. The second
// return is false for records that must not reach the audit: running timers
// are reported upstream with negative durations and are filtered out here.
func mapEntry(raw rawTimeEntry) (model.TimeEntry, bool, error) {
	durMS, err := strconv.ParseInt(raw.Duration, 10, 64)
	if err != nil {
		return model.TimeEntry{}, false, fmt.Errorf("entry %s: unparseable duration %q", raw.ID, raw.Duration)
	}
	if durMS < 0 {
		return model.TimeEntry{}, false, nil
	}

	var start time.Time
	if raw.Start != "" {
		startMS, err := strconv.ParseInt(raw.Start, 10, 64)
		if err != nil {
			return model.TimeEntry{}, false, fmt.Errorf("entry %s: unparseable start %q", raw.ID, raw.Start)
		}
		start = timefmt.FromEpochMillis(startMS)
	}

	taskID, taskName := "N/A", "No Task"
	if raw.Task != nil {
		taskID, taskName = raw.Task.ID, raw.Task.Name
	}
	userName := raw.User.Username
	if userName == "" {
		userName = "Unknown User"
	}

	return model.TimeEntry{
		ID:              raw.ID,
		TaskID:          taskID,
		TaskName:        taskName,
		UserID:          raw.User.ID.String(),
		UserName:        userName,
		UserEmail:       raw.User.Email,
		DurationSeconds: durMS / 1000,
		Start:           start,
	}, true, nil
}

// GetTimeEntries fetches one user's time entries in [from, to].
func (c *Client) GetTimeEntries(ctx context.Context, from, to time.Time, userID string) ([]model.TimeEntry, error) {
	query := url.Values{}
	query.Set("start_date", strconv.FormatInt(timefmt.EpochMillis(from), 10))
	query.Set("end_date", strconv.FormatInt(timefmt.EpochMillis(to), 10))
	query.Set("assignee", userID)

	body, err := c.get(ctx, "/team/"+c.teamID+"/time_entries", query)
	if err != nil {
		return nil, err
	}

	var page timeEntriesResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding time entries response: %w", err)
	}

	entries := make([]model.TimeEntry, 0, len(page.Data))
	for _, raw := range page.Data {
		entry, keep, err := mapEntry(raw)
		if err != nil {
			return nil, err
		}
		if !keep {
			logger.Debug("skipping running timer", "entry_id", raw.ID, "user_id", raw.User.ID.String())
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FetchWindow fetches the time entries of every workspace member in
// [from, to]. Per-user fetches run in parallel; the combined result is
// ordered by member, then by upstream order within each member, so repeated
// fetches of the same data produce the same sequence.
func (c *Client) FetchWindow(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	members, err := c.GetTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching team members: %w", err)
	}

	results := make([][]model.TimeEntry, len(members))
	g, gctx := errgroup.WithContext(ctx)
	for i, member := range members {
		g.Go(func() error {
			entries, err := c.GetTimeEntries(gctx, from, to, member.ID)
			if err != nil {
				return fmt.Errorf("fetching entries for user %s: %w", member.ID, err)
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.TimeEntry
	for _, entries := range results {
		all = append(all, entries...)
	}
	return all, nil
}
