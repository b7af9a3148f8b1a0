package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/clinickit/pkg/sanitizer"
)

// contextExtractor returns a value from the request context and whether it was found.
type contextExtractor func(context.Context) (string, bool)

type auditLogger struct {
	storage            Storage
	now                func() time.Time
	tenantIDExtractor  contextExtractor
	requestIDExtractor contextExtractor
	ipExtractor        contextExtractor
	userAgentExtractor contextExtractor
}

// NewLogger creates an audit logger writing to storage.
func NewLogger(storage Storage, opts ...Option) Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	l := &auditLogger{
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *auditLogger) Log(ctx context.Context, action string, opts ...EventOption) error {
	event := l.newEvent(ctx, action, ResultSuccess)
	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	return l.storage.Store(ctx, event)
}

func (l *auditLogger) LogThreat(ctx context.Context, v sanitizer.Verdict, opts ...EventOption) error {
	if v.Safe {
		return nil
	}

	event := l.newEvent(ctx, ActionThreatDetected, ResultBlocked)
	event.Threats = v.Strings()
	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	return l.storage.Store(ctx, event)
}

func (l *auditLogger) newEvent(ctx context.Context, action string, result Result) Event {
	event := Event{
		ID:        uuid.New().String(),
		Action:    action,
		Result:    result,
		CreatedAt: l.now().UTC(),
	}

	extract(ctx, l.tenantIDExtractor, &event.TenantID)
	extract(ctx, l.requestIDExtractor, &event.RequestID)
	extract(ctx, l.ipExtractor, &event.IP)
	extract(ctx, l.userAgentExtractor, &event.UserAgent)

	return event
}

func extract(ctx context.Context, fn contextExtractor, dst *string) {
	if fn == nil {
		return
	}
	if v, ok := fn(ctx); ok {
		*dst = v
	}
}
