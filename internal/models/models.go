package models

import (
	"time"
)

// RankingRecord represents one observation of a domain's rank on one date.
// At most one record exists per (domain, date) pair; a domain's history is
// replaced wholesale on refresh, never patched.
type RankingRecord struct {
	Domain    string    `json:"domain"`
	Date      string    `json:"date"` // YYYY-MM-DD, compared lexically
	Rank      int       `json:"rank"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimeSeries is one domain's ranking history as parallel arrays.
// Labels[i] is the date of Ranks[i]; labels are ascending by date.
type TimeSeries struct {
	Domain string   `json:"domain"`
	Labels []string `json:"labels"`
	Ranks  []int    `json:"ranks"`
}

// RankEntry is a single (date, rank) pair as returned by the upstream API
type RankEntry struct {
	Date string `json:"date"`
	Rank int    `json:"rank"`
}

// UpstreamRanking is the upstream ranking API's response shape for one domain
type UpstreamRanking struct {
	Domain string      `json:"domain"`
	Ranks  []RankEntry `json:"ranks"`
}

// LogSeverity represents the severity level of a log entry
type LogSeverity string

const (
	LogSeverityLow    LogSeverity = "low"
	LogSeverityMedium LogSeverity = "medium"
	LogSeverityHigh   LogSeverity = "high"
)

// ProcessType represents the type of process that created the log
type ProcessType string

const (
	ProcessTypeRequest  ProcessType = "request"
	ProcessTypeInternal ProcessType = "internal"
)

// LogEvent represents a process-specific logging context
type LogEvent struct {
	ProcessID   string      `json:"process_id"`
	ProcessType ProcessType `json:"process_type"`
	StartTime   time.Time   `json:"start_time"`
	ClientIP    string      `json:"client_ip,omitempty"`
}

// LogEntry represents a structured log entry for database storage
type LogEntry struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	Severity    LogSeverity            `json:"severity,omitempty"`
	Message     string                 `json:"message"`
	Operation   string                 `json:"operation"`
	TargetName  string                 `json:"target_name,omitempty"`
	ProcessID   string                 `json:"process_id"`
	ProcessType ProcessType            `json:"process_type"`
	ClientIP    string                 `json:"client_ip,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
