package guard

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/dmitrymomot/clinickit/pkg/audit"
	"github.com/dmitrymomot/clinickit/pkg/logger"
	"github.com/dmitrymomot/clinickit/pkg/sanitizer"
)

// SanitizeBody rewrites JSON request bodies with every string sanitized and
// only the fields the schema's policy allows. A schema without a policy is
// sanitized without dropping fields. Malformed JSON is rejected with 400.
// Requests that are not JSON pass through untouched.
func (g *Guard) SanitizeBody(schema string) func(http.Handler) http.Handler {
	opts := []sanitizer.ObjectOption{sanitizer.WithMaxDepth(g.cfg.MaxDepth)}
	if fields, ok := g.policies.Fields(schema); ok {
		opts = append(opts, sanitizer.WithAllowedFields(fields...))
	} else {
		g.log.Warn("no policy for schema, fields will not be filtered", "schema", schema)
	}
	return g.sanitizeWith(schema, opts)
}

// SanitizeFields is SanitizeBody with an inline allow-list. With no fields
// every key is dropped.
func (g *Guard) SanitizeFields(fields ...string) func(http.Handler) http.Handler {
	return g.sanitizeWith("", []sanitizer.ObjectOption{
		sanitizer.WithMaxDepth(g.cfg.MaxDepth),
		sanitizer.WithAllowedFields(fields...),
	})
}

func (g *Guard) sanitizeWith(schema string, opts []sanitizer.ObjectOption) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.cfg.Enabled || !isJSON(r) {
				next.ServeHTTP(w, r)
				return
			}

			body, err := readBody(w, r, g.cfg.MaxBodySize)
			switch {
			case errors.Is(err, ErrBodyTooLarge):
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
				return
			case err != nil:
				g.log.ErrorContext(r.Context(), "read request body", logger.Error(err))
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable request body"})
				return
			case len(body) == 0:
				next.ServeHTTP(w, r)
				return
			}

			doc, err := sanitizer.ParseJSON(body)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
				return
			}

			original, err := doc.MarshalJSON()
			if err != nil {
				g.log.ErrorContext(r.Context(), "encode request body", logger.Error(err))
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
				return
			}
			clean, err := sanitizer.SanitizeObject(doc, opts...).MarshalJSON()
			if err != nil {
				g.log.ErrorContext(r.Context(), "encode sanitized body", logger.Error(err))
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
				return
			}

			if !bytes.Equal(original, clean) {
				g.log.DebugContext(r.Context(), "request body sanitized", "schema", schema)
				if g.audit != nil {
					err := g.audit.Log(r.Context(), audit.ActionPayloadSanitized,
						audit.WithSource(SourceBody),
						audit.WithMetadata("schema", schema),
						audit.WithRequest(r),
					)
					if err != nil {
						g.log.WarnContext(r.Context(), "audit write failed", logger.Error(err))
					}
				}
			}

			replaceBody(r, clean)
			next.ServeHTTP(w, r)
		})
	}
}
