// Package sanitizer is the input-hardening core used at the trust boundary of
// the clinic application: every form field and request payload passes through
// it before reaching storage or rendering.
//
// The package is grouped into four areas:
//
//   - Field sanitizers: SanitizeString, SanitizeEmail, SanitizePhone,
//     SanitizeNationalID, SanitizeURL and SanitizeFilename. Each takes an
//     untrusted string and returns a cleaned one; an empty input yields an
//     empty output and every sanitizer is idempotent.
//
//   - Structured payloads: Value is an immutable tagged union (null, string,
//     number, bool, list, object) with ordered object fields. SanitizeObject
//     walks a Value, cleaning every string with SanitizeString and, when
//     WithAllowedFields is given, dropping every key outside the allow-list at
//     any depth. ParseJSON, SanitizeJSON and SanitizeMap adapt the walker to
//     raw JSON and decoded maps.
//
//   - Threat detectors: DetectXSS, DetectSQLInjection and DetectPathTraversal
//     classify a string without modifying it. SecurityCheck runs all three and
//     returns a Verdict listing every category that fired, in the fixed order
//     XSS, SQL Injection, Path Traversal.
//
//   - Pipelines: Apply and Compose chain string transformations.
//
// # Usage
//
//	import "github.com/dmitrymomot/clinickit/pkg/sanitizer"
//
//	email := sanitizer.SanitizeEmail(" JOHN@EXAMPLE.COM ") // "john@example.com"
//
//	if v := sanitizer.SecurityCheck(input); !v.Safe {
//	    // reject the request and record v.Threats
//	}
//
//	clean, err := sanitizer.SanitizeJSON(body,
//	    sanitizer.WithAllowedFields("first_name", "last_name", "phone"),
//	)
//
// Sanitization is defense in depth. It does not replace parameterized queries
// or context-aware output encoding.
//
// # Error handling
//
// Field sanitizers and detectors never fail: malformed input yields the safe
// default (an empty string, or a safe verdict for empty input). SanitizeURL
// reports rejection as an empty string. Only the helpers that decode
// structured input (ParseJSON, FromAny, SanitizeJSON, SanitizeMap) return
// errors.
//
// # Concurrency
//
// All patterns are compiled once at package initialisation and only read
// afterwards. Go's regexp engine guarantees matching in time linear to the
// input length, so crafted input cannot trigger catastrophic backtracking.
// Every function is safe for concurrent use.
package sanitizer
