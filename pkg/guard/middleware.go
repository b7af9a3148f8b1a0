package guard

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/clinickit/pkg/audit"
	"github.com/dmitrymomot/clinickit/pkg/logger"
	"github.com/dmitrymomot/clinickit/pkg/sanitizer"
)

// Input sources reported in logs and audit events.
const (
	SourcePath  = "path"
	SourceQuery = "query"
	SourceForm  = "form"
	SourceBody  = "body"
)

type finding struct {
	source  string
	field   string
	verdict sanitizer.Verdict
}

// Middleware rejects requests carrying an XSS, SQL injection or path
// traversal payload in a URL parameter, query value, url-encoded form value
// or JSON body (keys included). Inspection stops at the first unsafe value.
// A JSON body that cannot be decoded, including one nested too deeply, is
// rejected with 400.
//
// URL parameters are only visible once chi has matched the route, so mount
// the middleware with r.With or inside a route group rather than on the root
// router when path parameters should be inspected.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.cfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		f, found, err := g.inspect(w, r)
		if err != nil {
			switch {
			case errors.Is(err, ErrBodyTooLarge):
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
				return
			case errors.Is(err, ErrInvalidBody):
				g.log.WarnContext(r.Context(), "request body not inspectable", logger.Error(err))
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
				return
			}
			g.log.ErrorContext(r.Context(), "request inspection failed", logger.Error(err))
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable request body"})
			return
		}
		if found {
			g.reject(w, r, f)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *Guard) reject(w http.ResponseWriter, r *http.Request, f finding) {
	ctx := r.Context()

	g.log.WarnContext(ctx, "request rejected",
		logger.Source(f.source),
		logger.Field(f.field),
		logger.Threats(f.verdict),
	)

	if g.audit != nil {
		err := g.audit.LogThreat(ctx, f.verdict,
			audit.WithSource(f.source),
			audit.WithField(f.field),
			audit.WithRequest(r),
		)
		if err != nil {
			g.log.WarnContext(ctx, "audit write failed", logger.Error(err))
		}
	}

	g.onReject(w, r, f.verdict)
}

func (g *Guard) inspect(w http.ResponseWriter, r *http.Request) (finding, bool, error) {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		params := rctx.URLParams
		for i, key := range params.Keys {
			if i >= len(params.Values) {
				break
			}
			if f, ok := g.checkValue(SourcePath, key, params.Values[i]); ok {
				return f, true, nil
			}
		}
	}

	if f, ok := g.checkValues(SourceQuery, r.URL.Query()); ok {
		return f, true, nil
	}

	switch {
	case isForm(r):
		body, err := readBody(w, r, g.cfg.MaxBodySize)
		if err != nil {
			return finding{}, false, err
		}
		// ParseQuery keeps every well-formed pair when it reports an error,
		// and net/http hands the same pairs to the handler.
		form, _ := url.ParseQuery(string(body))
		if f, ok := g.checkValues(SourceForm, form); ok {
			return f, true, nil
		}

	case isJSON(r):
		body, err := readBody(w, r, g.cfg.MaxBodySize)
		if err != nil {
			return finding{}, false, err
		}
		if len(body) == 0 {
			return finding{}, false, nil
		}
		doc, err := sanitizer.ParseJSON(body)
		if err != nil {
			return finding{}, false, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}

		var (
			f     finding
			found bool
		)
		doc.Walk(func(path, s string) bool {
			f, found = g.checkValue(SourceBody, path, s)
			return !found
		})
		if found {
			return f, true, nil
		}
	}

	return finding{}, false, nil
}

// checkValues inspects keys and values of a query or form in key order.
func (g *Guard) checkValues(source string, values url.Values) (finding, bool) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if f, ok := g.checkValue(source, key, key); ok {
			return f, true
		}
		for _, v := range values[key] {
			if f, ok := g.checkValue(source, key, v); ok {
				return f, true
			}
		}
	}
	return finding{}, false
}

func (g *Guard) checkValue(source, field, value string) (finding, bool) {
	if value == "" || g.skipped(field) {
		return finding{}, false
	}

	v := g.check(value)
	if v.Safe {
		return finding{}, false
	}
	return finding{source: source, field: field, verdict: v}, true
}

// skipped reports whether a SkipFields entry names a prefix of the dotted
// field path or any one of its segments. Everything below a skipped field is
// skipped too.
func (g *Guard) skipped(field string) bool {
	if len(g.skip) == 0 {
		return false
	}
	for i := 0; i <= len(field); i++ {
		if i < len(field) && field[i] != '.' {
			continue
		}
		if _, ok := g.skip[field[:i]]; ok {
			return true
		}
	}
	for seg := range strings.SplitSeq(field, ".") {
		if _, ok := g.skip[seg]; ok {
			return true
		}
	}
	return false
}
