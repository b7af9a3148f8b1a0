package guard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/clinickit/pkg/audit"
	"github.com/dmitrymomot/clinickit/pkg/logger"
	"github.com/dmitrymomot/clinickit/pkg/sanitizer"
)

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, v sanitizer.Verdict)

// Guard inspects and sanitizes incoming requests. It is safe for concurrent
// use once constructed.
type Guard struct {
	cfg      Config
	log      *slog.Logger
	audit    audit.Logger
	policies Policies
	onReject ErrorHandler
	skip     map[string]struct{}
	check    func(string) sanitizer.Verdict
}

// Option configures a Guard.
type Option func(*Guard)

func WithConfig(cfg Config) Option {
	return func(g *Guard) {
		g.cfg = cfg
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// WithAuditLogger records rejected requests and modified payloads.
func WithAuditLogger(l audit.Logger) Option {
	return func(g *Guard) {
		g.audit = l
	}
}

func WithPolicies(p Policies) Option {
	return func(g *Guard) {
		g.policies = p
	}
}

// WithErrorHandler replaces the default 400 JSON response for rejected requests.
func WithErrorHandler(h ErrorHandler) Option {
	return func(g *Guard) {
		if h != nil {
			g.onReject = h
		}
	}
}

// New creates a Guard. Without WithConfig it uses DefaultConfig.
func New(opts ...Option) *Guard {
	g := &Guard{
		cfg:      DefaultConfig(),
		log:      slog.Default(),
		policies: Policies{},
		onReject: RejectJSON,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.cfg.MaxDepth <= 0 {
		g.cfg.MaxDepth = sanitizer.DefaultMaxDepth
	}
	if g.cfg.MaxBodySize <= 0 {
		g.cfg.MaxBodySize = DefaultConfig().MaxBodySize
	}

	g.skip = make(map[string]struct{}, len(g.cfg.SkipFields))
	for _, f := range g.cfg.SkipFields {
		if f != "" {
			g.skip[f] = struct{}{}
		}
	}

	g.check = sanitizer.SecurityCheck
	if g.cfg.DeepInspection {
		g.check = sanitizer.DeepSecurityCheck
	}

	g.log = g.log.With(logger.Component("guard"))

	return g
}

// NewFromConfig creates a Guard from cfg and loads cfg.PolicyFile when set
// and no WithPolicies option is given.
func NewFromConfig(cfg Config, opts ...Option) (*Guard, error) {
	if cfg.PolicyFile != "" {
		p, err := LoadPolicies(cfg.PolicyFile)
		if err != nil {
			return nil, err
		}
		opts = append([]Option{WithPolicies(p)}, opts...)
	}
	return New(append([]Option{WithConfig(cfg)}, opts...)...), nil
}

// Config returns the effective configuration.
func (g *Guard) Config() Config {
	return g.cfg
}

type errorResponse struct {
	Error   string   `json:"error"`
	Threats []string `json:"threats,omitempty"`
}

// RejectJSON is the default ErrorHandler. It responds 400 with
// {"error":"request rejected","threats":[...]}.
func RejectJSON(w http.ResponseWriter, _ *http.Request, v sanitizer.Verdict) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request rejected", Threats: v.Strings()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
