package audit

import (
	"net"
	"net/http"
)

// WithMetadata adds metadata to the event
func WithMetadata(key string, value any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata[key] = value
	}
}

// WithResult sets the event result
func WithResult(result Result) EventOption {
	return func(e *Event) {
		e.Result = result
	}
}

// WithSource records where the inspected value came from ("path", "query", "form", "body").
func WithSource(source string) EventOption {
	return func(e *Event) {
		e.Source = source
	}
}

// WithField records the dotted path of the inspected value.
func WithField(field string) EventOption {
	return func(e *Event) {
		e.Field = field
	}
}

// WithRequest fills client details the context extractors did not provide.
func WithRequest(r *http.Request) EventOption {
	return func(e *Event) {
		if r == nil {
			return
		}
		if e.IP == "" {
			e.IP = remoteIP(r.RemoteAddr)
		}
		if e.UserAgent == "" {
			e.UserAgent = r.UserAgent()
		}
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata["method"] = r.Method
		e.Metadata["path"] = r.URL.Path
	}
}

func remoteIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
