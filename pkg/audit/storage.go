package audit

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/clinickit/pkg/logger"
)

// SlogStorage writes events as structured log records. Blocked and failed
// actions are logged at WARN, everything else at INFO.
type SlogStorage struct {
	log *slog.Logger
}

func NewSlogStorage(log *slog.Logger) *SlogStorage {
	if log == nil {
		log = slog.Default()
	}
	return &SlogStorage{log: log.With(logger.Component("audit"))}
}

func (s *SlogStorage) Store(ctx context.Context, events ...Event) error {
	for _, e := range events {
		level := slog.LevelInfo
		if e.Result != ResultSuccess {
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("event_id", e.ID),
			slog.String("action", e.Action),
			slog.String("result", string(e.Result)),
			logger.TenantID(e.TenantID),
			logger.RequestID(e.RequestID),
			slog.Time("created_at", e.CreatedAt),
		}
		if len(e.Threats) > 0 {
			attrs = append(attrs, slog.Any("threats", e.Threats))
		}
		if e.Source != "" {
			attrs = append(attrs, logger.Source(e.Source))
		}
		if e.Field != "" {
			attrs = append(attrs, logger.Field(e.Field))
		}
		if e.IP != "" {
			attrs = append(attrs, slog.String("ip", e.IP))
		}
		if e.UserAgent != "" {
			attrs = append(attrs, slog.String("user_agent", e.UserAgent))
		}
		if len(e.Metadata) > 0 {
			attrs = append(attrs, slog.Any("metadata", e.Metadata))
		}

		s.log.LogAttrs(ctx, level, "audit event", attrs...)
	}
	return nil
}

// MemoryStorage keeps events in memory. It backs tests and single-node
// deployments that only need recent history.
type MemoryStorage struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Store(ctx context.Context, events ...Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.events = append(m.events, events...)
	m.mu.Unlock()
	return nil
}

// Events returns a copy of every stored event in insertion order.
func (m *MemoryStorage) Events() []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.events)
}

// Query returns stored events matching c, newest first.
func (m *MemoryStorage) Query(ctx context.Context, c Criteria) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Event, 0)
	for i := len(m.events) - 1; i >= 0; i-- {
		if !c.match(m.events[i]) {
			continue
		}
		out = append(out, m.events[i])
		if c.Limit > 0 && len(out) == c.Limit {
			break
		}
	}
	return out, nil
}

// Count returns the number of stored events matching c, ignoring c.Limit.
func (m *MemoryStorage) Count(ctx context.Context, c Criteria) (int, error) {
	c.Limit = 0
	events, err := m.Query(ctx, c)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}
