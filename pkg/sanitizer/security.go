package sanitizer

import (
	"html"
	"net/url"

	"golang.org/x/text/unicode/norm"
)

// Threat is a category label reported by SecurityCheck.
type Threat string

const (
	ThreatXSS           Threat = "XSS"
	ThreatSQLInjection  Threat = "SQL Injection"
	ThreatPathTraversal Threat = "Path Traversal"
)

// threatOrder is the canonical reporting order.
var threatOrder = []Threat{ThreatXSS, ThreatSQLInjection, ThreatPathTraversal}

// Verdict is the result of a composite security check.
// Safe is true exactly when Threats is empty.
type Verdict struct {
	Safe    bool     `json:"safe"`
	Threats []Threat `json:"threats"`
}

// Has reports whether the verdict lists the given threat.
func (v Verdict) Has(t Threat) bool {
	for _, got := range v.Threats {
		if got == t {
			return true
		}
	}
	return false
}

// Strings returns the threat labels as plain strings, convenient for logs.
func (v Verdict) Strings() []string {
	out := make([]string, len(v.Threats))
	for i, t := range v.Threats {
		out[i] = string(t)
	}
	return out
}

// DetectXSS reports whether s contains a script-capable tag, a javascript:
// protocol, an inline event handler or an eval( call.
func DetectXSS(s string) bool {
	return matchAny(xssSignatures, s)
}

// DetectSQLInjection reports whether s carries SQL syntax typical of
// injection: UNION SELECT, quote-delimited tautologies, comment markers,
// stacked statements or time-based probes. A bare "or" in prose does not match.
func DetectSQLInjection(s string) bool {
	return matchAny(sqlSignatures, s)
}

// DetectPathTraversal reports whether s contains a ../ or ..\ segment or a
// sensitive absolute path prefix such as /etc/ or C:\windows\.
func DetectPathTraversal(s string) bool {
	return matchAny(pathSignatures, s)
}

var detectors = map[Threat]func(string) bool{
	ThreatXSS:           DetectXSS,
	ThreatSQLInjection:  DetectSQLInjection,
	ThreatPathTraversal: DetectPathTraversal,
}

// SecurityCheck runs every detector against s and collects the categories
// that fired. Detectors do not short-circuit each other.
func SecurityCheck(s string) Verdict {
	threats := make([]Threat, 0, len(threatOrder))
	for _, t := range threatOrder {
		if detectors[t](s) {
			threats = append(threats, t)
		}
	}
	return Verdict{Safe: len(threats) == 0, Threats: threats}
}

// maxDecodeRounds bounds how many layers of percent-encoding DeepSecurityCheck
// peels off.
const maxDecodeRounds = 2

// DeepSecurityCheck behaves like SecurityCheck but also inspects decoded
// variants of s: up to two rounds of percent-decoding, HTML entity decoding
// and Unicode NFKC normalization (which folds fullwidth ＜ into <). The threat
// sets of all variants are merged in canonical order.
func DeepSecurityCheck(s string) Verdict {
	found := make(map[Threat]bool, len(threatOrder))
	for _, variant := range decodedVariants(s) {
		for _, t := range SecurityCheck(variant).Threats {
			found[t] = true
		}
	}

	threats := make([]Threat, 0, len(found))
	for _, t := range threatOrder {
		if found[t] {
			threats = append(threats, t)
		}
	}
	return Verdict{Safe: len(threats) == 0, Threats: threats}
}

func decodedVariants(s string) []string {
	seen := map[string]bool{s: true}
	variants := []string{s}
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	current := s
	for range maxDecodeRounds {
		decoded, err := url.QueryUnescape(current)
		if err != nil {
			// Malformed escapes end percent-decoding; the variants collected
			// so far still go through the entity and NFKC steps.
			break
		}
		add(decoded)
		current = decoded
	}

	for _, v := range append([]string(nil), variants...) {
		unescaped := html.UnescapeString(v)
		add(unescaped)
		add(norm.NFKC.String(unescaped))
	}

	return variants
}
