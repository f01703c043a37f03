package model

import "time"

// TimeEntry represents a single time-tracking entry fetched from ClickUp.
// Entries are read-only inputs to the audit; nothing mutates them after fetch.
type TimeEntry struct {
	ID              string    `json:"id"`
	TaskID          string    `json:"task_id"`
	TaskName        string    `json:"task_name"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	UserEmail       string    `json:"user_email"`
	DurationSeconds int64     `json:"duration_seconds"`
	Start           time.Time `json:"start_time"`
}

// Member is a workspace member as returned by the ClickUp team endpoint.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
