package sanitizer

import "regexp"

// Pre-compiled regular expressions shared by every helper in the package.
// Go's regexp is RE2-based, so every pattern below matches in time linear to
// the input length regardless of how the input is crafted.
var (
	// Field character sets
	nonDigitRegex    = regexp.MustCompile(`[^0-9]`)
	nonPhoneRegex    = regexp.MustCompile(`[^0-9 +\-()]`)
	nonEmailRegex    = regexp.MustCompile(`[^a-z0-9._%+\-@]`)
	unsafeFilenameRx = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\x7f]`)

	// Markup stripping
	blockTagRegex   = regexp.MustCompile(`(?is)<\s*script\b[^>]*>.*?<\s*/\s*script\s*>|<\s*style\b[^>]*>.*?<\s*/\s*style\s*>`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	dangerousChars  = regexp.MustCompile(`[<>'"]`)
	jsProtocolRegex = regexp.MustCompile(`(?i)javascript\s*:`)
	eventAttrRegex  = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// Threat signatures. Each detector owns an ordered list so tests can point at
// the exact rule that fired.
var (
	xssSignatures = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<\s*(script|style|iframe|object)\b`),
		regexp.MustCompile(`(?i)javascript\s*:`),
		regexp.MustCompile(`(?i)\bon\w+\s*=`),
		regexp.MustCompile(`(?i)\beval\s*\(`),
	}

	sqlSignatures = []*regexp.Regexp{
		// UNION [ALL] SELECT
		regexp.MustCompile(`(?i)\bunion\b(\s+all)?\s+select\b`),
		// ' OR '1'='1, 'OR'1'='1, " or x like y, ' AND 1>0
		regexp.MustCompile(`(?i)['"]\s*\b(or|and)\b\s*['"]?[\w.]*['"]?\s*(=|<|>|\blike\b)`),
		// OR 1=1
		regexp.MustCompile(`(?i)\bor\s+(\d+)\s*=\s*\d+\b`),
		// comment markers
		regexp.MustCompile(`--|/\*|\*/`),
		// '; DROP TABLE, ' SELECT password
		regexp.MustCompile(`(?i)['"]\s*(;\s*|\s+)(select|union|insert|update|delete|drop)\s`),
		// stacked statements
		regexp.MustCompile(`(?i);\s*((drop|truncate|alter|create)\s+(table|database|schema|view|index)\b|delete\s+from\b|insert\s+into\b|update\s+\w+\s+set\b|exec(ute)?\s+\w)`),
		// time-based probes
		regexp.MustCompile(`(?i)\b(sleep|benchmark)\s*\(\s*\d|\bwaitfor\s+delay\b`),
	}

	pathSignatures = []*regexp.Regexp{
		regexp.MustCompile(`\.\.[/\\]`),
		regexp.MustCompile(`(?i)/(etc|proc)/`),
		regexp.MustCompile(`(?i)\\windows\\system32`),
		regexp.MustCompile(`(?i)\b[a-z]:[\\/]windows([\\/]|$)`),
	}
)

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
