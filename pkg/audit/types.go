package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/clinickit/pkg/sanitizer"
)

// Result represents the outcome of an audited action.
type Result string

const (
	ResultSuccess Result = "success"
	ResultBlocked Result = "blocked"
	ResultFailure Result = "failure"
)

// Actions recorded by the input guard.
const (
	ActionThreatDetected   = "security.threat_detected"
	ActionPayloadSanitized = "security.payload_sanitized"
)

// Event represents a single audit log entry.
type Event struct {
	ID        string         `json:"id"`
	TenantID  string         `json:"tenant_id,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	Action    string         `json:"action"`
	Result    Result         `json:"result"`
	Threats   []string       `json:"threats,omitempty"`
	Source    string         `json:"source,omitempty"`
	Field     string         `json:"field,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Validate checks if the event has all required fields.
func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEventValidation)
	}
	if e.Result == "" {
		return fmt.Errorf("%w: result is required", ErrEventValidation)
	}
	return nil
}

// EventOption applies configuration to an Event during creation.
type EventOption func(*Event)

// Logger records audit events.
type Logger interface {
	// Log records action with ResultSuccess unless an option overrides it.
	Log(ctx context.Context, action string, opts ...EventOption) error
	// LogThreat records an ActionThreatDetected event carrying the verdict's
	// threat labels. Safe verdicts are not recorded.
	LogThreat(ctx context.Context, v sanitizer.Verdict, opts ...EventOption) error
}

// Storage persists audit events. Implementations must be safe for concurrent use.
type Storage interface {
	Store(ctx context.Context, events ...Event) error
}

// Criteria filters events returned by MemoryStorage.Query.
// Zero fields match everything.
type Criteria struct {
	TenantID string
	Action   string
	Result   Result
	Since    time.Time
	Until    time.Time
	Limit    int
}

func (c Criteria) match(e Event) bool {
	switch {
	case c.TenantID != "" && e.TenantID != c.TenantID:
		return false
	case c.Action != "" && e.Action != c.Action:
		return false
	case c.Result != "" && e.Result != c.Result:
		return false
	case !c.Since.IsZero() && e.CreatedAt.Before(c.Since):
		return false
	case !c.Until.IsZero() && !e.CreatedAt.Before(c.Until):
		return false
	}
	return true
}
