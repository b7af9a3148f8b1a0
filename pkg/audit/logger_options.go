package audit

import (
	"context"
	"time"
)

// Option configures Logger behavior during initialization
type Option func(*auditLogger)

// Context extractors populate events from the request context. A field stays
// empty when its extractor reports false.

func WithTenantIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *auditLogger) {
		l.tenantIDExtractor = fn
	}
}

func WithRequestIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *auditLogger) {
		l.requestIDExtractor = fn
	}
}

func WithIPExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *auditLogger) {
		l.ipExtractor = fn
	}
}

func WithUserAgentExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *auditLogger) {
		l.userAgentExtractor = fn
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *auditLogger) {
		if now != nil {
			l.now = now
		}
	}
}
