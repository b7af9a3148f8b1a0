package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/clinickit/pkg/sanitizer"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		transforms []func(string) string
		expected   string
	}{
		{
			name:       "applies single transform",
			input:      "  hello  ",
			transforms: []func(string) string{sanitizer.Trim},
			expected:   "hello",
		},
		{
			name:  "applies transforms in sequence",
			input: "  <b>HELLO</b>  ",
			transforms: []func(string) string{
				sanitizer.StripTags,
				sanitizer.Trim,
				sanitizer.ToLower,
			},
			expected: "hello",
		},
		{
			name:       "handles empty transforms slice",
			input:      "hello world",
			transforms: []func(string) string{},
			expected:   "hello world",
		},
		{
			name:  "chains field sanitizers",
			input: "  <i>Patient</i> javascript:x ",
			transforms: []func(string) string{
				sanitizer.SanitizeString,
				strings.ToUpper,
			},
			expected: "PATIENT X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, sanitizer.Apply(tt.input, tt.transforms...))
		})
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(sanitizer.SanitizeString, sanitizer.ToLower)

	assert.Equal(t, "hello", clean("<b>HELLO</b>"))
	assert.Equal(t, "", clean(""))

	identity := sanitizer.Compose[string]()
	assert.Equal(t, "unchanged", identity("unchanged"))
}
