// Package guard is HTTP middleware that keeps hostile input away from
// handlers. It builds on the sanitizer package and works with chi routers.
//
// Middleware inspects URL parameters, query values, url-encoded forms and
// JSON bodies with sanitizer.SecurityCheck (or DeepSecurityCheck when
// Config.DeepInspection is set) and rejects the first unsafe value with 400.
// SanitizeBody and SanitizeFields rewrite JSON bodies instead: every string
// is sanitized and fields outside the allow-list are dropped.
//
// # Usage
//
//	cfg, err := guard.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	g, err := guard.NewFromConfig(cfg,
//	    guard.WithLogger(log),
//	    guard.WithAuditLogger(auditLog),
//	)
//	if err != nil {
//	    return err
//	}
//
//	r := chi.NewRouter()
//	r.Route("/patients", func(r chi.Router) {
//	    r.With(g.Middleware).Get("/{id}", getPatient)
//	    r.With(g.Middleware, g.SanitizeBody("patients")).Post("/", createPatient)
//	})
//
// Allow-lists come from a YAML policy file (GUARD_POLICY_FILE):
//
//	schemas:
//	  patients: [first_name, last_name, contacts, email, phone]
//
// # Configuration
//
//   - GUARD_ENABLED:          turn inspection off without removing the middleware (default true).
//   - GUARD_MAX_BODY_SIZE:    bodies above this many bytes get 413 (default 1 MiB).
//   - GUARD_MAX_DEPTH:        nesting limit for SanitizeBody (default 32).
//   - GUARD_DEEP_INSPECTION:  also check decoded variants of each value (default false).
//   - GUARD_SKIP_FIELDS:      comma-separated field names or dotted paths never inspected.
//   - GUARD_POLICY_FILE:      YAML policy file loaded by NewFromConfig.
//
// # Error Handling
//
// Rejections go through the ErrorHandler (RejectJSON by default), are logged
// at WARN and, with an audit logger, recorded as audit.ActionThreatDetected.
// A JSON body that cannot be decoded, or is nested deeper than the decoder
// allows, is rejected with 400 by both Middleware and SanitizeBody. Malformed
// form pairs are skipped and the well-formed ones are still inspected, which
// matches what net/http hands the handler. ParsePolicies returns errors wrapping ErrInvalidPolicy.
package guard
