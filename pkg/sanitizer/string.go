package sanitizer

import "strings"

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ToLower converts a string to lowercase.
func ToLower(s string) string {
	return strings.ToLower(s)
}

// StripTags removes <script> and <style> blocks together with their content,
// then removes every remaining markup tag.
func StripTags(s string) string {
	s = blockTagRegex.ReplaceAllString(s, "")
	return htmlTagRegex.ReplaceAllString(s, "")
}

// RemoveDangerousChars drops angle brackets and quote characters.
func RemoveDangerousChars(s string) string {
	return dangerousChars.ReplaceAllString(s, "")
}

// RemoveJavaScriptProtocol removes every case-insensitive "javascript:" prefix.
func RemoveJavaScriptProtocol(s string) string {
	return jsProtocolRegex.ReplaceAllString(s, "")
}

// RemoveEventHandlers removes inline event handler assignments such as
// onclick= or ONLOAD =. The match is not anchored to a word start, so
// "Condition=stable" loses "ondition=".
func RemoveEventHandlers(s string) string {
	return eventAttrRegex.ReplaceAllString(s, "")
}

// SanitizeString cleans untrusted free text. Tags are stripped before the
// dangerous characters are removed, and the whole removal pipeline runs until
// the value stops changing, so a pattern split by another pattern
// ("javajavascript:script:", "oonclick=nclick=") cannot survive.
func SanitizeString(s string) string {
	if s == "" {
		return ""
	}

	for {
		next := stripMarkup(s)
		if next == s {
			break
		}
		s = next
	}

	return strings.TrimSpace(s)
}

// stripMarkup only ever removes bytes, so the fixed-point loop in
// SanitizeString terminates after at most len(s) rounds.
func stripMarkup(s string) string {
	s = StripTags(s)
	s = RemoveDangerousChars(s)
	s = RemoveJavaScriptProtocol(s)
	return RemoveEventHandlers(s)
}
