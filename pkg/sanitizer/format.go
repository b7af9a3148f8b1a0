package sanitizer

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// MaxFilenameLength is the byte limit shared by common filesystems.
const MaxFilenameLength = 255

var sanitizeEmail = Compose(
	ToLower,
	func(s string) string { return nonEmailRegex.ReplaceAllString(s, "") },
	Trim,
)

// SanitizeEmail lowercases the address and keeps only characters that can
// appear in an e-mail address. It does not check the address structure; use a
// validator for that.
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	return sanitizeEmail(email)
}

// SanitizePhone keeps digits, spaces and the + - ( ) punctuation used by
// common phone formats. Everything else is dropped.
func SanitizePhone(phone string) string {
	if phone == "" {
		return ""
	}
	return nonPhoneRegex.ReplaceAllString(phone, "")
}

// SanitizeNationalID reduces a national identifier to its digits, whatever
// separators or prefixes the input used.
func SanitizeNationalID(id string) string {
	if id == "" {
		return ""
	}
	return nonDigitRegex.ReplaceAllString(id, "")
}

// SanitizeURL returns the canonical form of an absolute http or https URL, or
// an empty string for anything else. Rejection and empty input look the same
// to the caller; compare with the original input to tell them apart.
func SanitizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	// url.Parse lowercases the scheme.
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Opaque != "" || u.Hostname() == "" {
		return ""
	}

	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}

	return u.String()
}

// SanitizeFilename makes a user-supplied name safe to use as a single path
// segment: reserved characters and separators are removed, every ".." is
// removed until none remain, and leading dots are stripped so the result is
// never a hidden file or a traversal token.
func SanitizeFilename(filename string) string {
	if filename == "" {
		return ""
	}

	name := unsafeFilenameRx.ReplaceAllString(filename, "")
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", "")
	}
	name = strings.TrimLeft(name, ". ")
	name = truncateBytes(name, MaxFilenameLength)

	return strings.TrimRight(name, " ")
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
