package sanitizer_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clinickit/pkg/sanitizer"
)

func mustParse(t *testing.T, doc string) sanitizer.Value {
	t.Helper()
	v, err := sanitizer.ParseJSON([]byte(doc))
	require.NoError(t, err)
	return v
}

func mustMarshal(t *testing.T, v sanitizer.Value) string {
	t.Helper()
	data, err := v.MarshalJSON()
	require.NoError(t, err)
	return string(data)
}

func TestSanitizeObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     []sanitizer.ObjectOption
		expected string
	}{
		{
			name:     "sanitizes strings and keeps scalars",
			input:    `{"name":"<b>John</b>","age":42,"active":true,"note":null}`,
			expected: `{"name":"John","age":42,"active":true,"note":null}`,
		},
		{
			name:     "preserves field order",
			input:    `{"z":"1","a":"2","m":"3"}`,
			expected: `{"z":"1","a":"2","m":"3"}`,
		},
		{
			name:     "maps lists element-wise",
			input:    `{"tags":["<i>a</i>",1,false,null,["'b'"]]}`,
			expected: `{"tags":["a",1,false,null,["b"]]}`,
		},
		{
			name:     "sanitizes nested objects",
			input:    `{"patient":{"notes":"<script>x()</script>ok","contact":{"email":"javascript:alert(1)"}}}`,
			expected: `{"patient":{"notes":"ok","contact":{"email":"alert(1)"}}}`,
		},
		{
			name:     "drops keys outside the allow-list",
			input:    `{"first_name":"Ann","role":"admin","last_name":"Lee"}`,
			opts:     []sanitizer.ObjectOption{sanitizer.WithAllowedFields("first_name", "last_name")},
			expected: `{"first_name":"Ann","last_name":"Lee"}`,
		},
		{
			name:     "applies allow-list at every depth",
			input:    `{"patient":{"name":"<b>x</b>","ssn":"123"},"debug":{"name":"y"},"list":[{"name":"z","secret":1}]}`,
			opts:     []sanitizer.ObjectOption{sanitizer.WithAllowedFields("patient", "name", "list")},
			expected: `{"patient":{"name":"x"},"list":[{"name":"z"}]}`,
		},
		{
			name:     "empty allow-list drops every key",
			input:    `{"a":1,"b":{"c":2}}`,
			opts:     []sanitizer.ObjectOption{sanitizer.WithAllowedFields()},
			expected: `{}`,
		},
		{
			name:     "allow-list options accumulate",
			input:    `{"a":1,"b":2,"c":3}`,
			opts:     []sanitizer.ObjectOption{sanitizer.WithAllowedFields("a"), sanitizer.WithAllowedFields("c")},
			expected: `{"a":1,"c":3}`,
		},
		{
			name:     "replaces containers beyond max depth with null",
			input:    `{"l1":{"l2":{"l3":{"l4":"deep"}},"s":"kept"}}`,
			opts:     []sanitizer.ObjectOption{sanitizer.WithMaxDepth(3)},
			expected: `{"l1":{"l2":{"l3":null},"s":"kept"}}`,
		},
		{
			name:     "ignores non-positive max depth",
			input:    `{"a":{"b":"c"}}`,
			opts:     []sanitizer.ObjectOption{sanitizer.WithMaxDepth(0)},
			expected: `{"a":{"b":"c"}}`,
		},
		{
			name:     "keeps large numbers exactly",
			input:    `{"id":12345678901234567890,"amount":10.50}`,
			expected: `{"id":12345678901234567890,"amount":10.50}`,
		},
		{
			name:     "sanitizes top-level string",
			input:    `"<b>hi</b>"`,
			expected: `"hi"`,
		},
		{
			name:     "decodes escapes before sanitizing",
			input:    `{"n":"\u003cb\u003eHi"}`,
			expected: `{"n":"Hi"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizer.SanitizeObject(mustParse(t, tt.input), tt.opts...)
			assert.Equal(t, tt.expected, mustMarshal(t, got))
		})
	}
}

func TestSanitizeObject_AllowListFidelity(t *testing.T) {
	t.Parallel()

	allowed := map[string]bool{"name": true, "items": true, "meta": true}
	doc := `{"name":"a","x":1,"items":[{"name":"b","y":2,"meta":{"z":3,"name":"c"}}],"meta":{"items":[],"w":{"name":"d"}}}`

	got := sanitizer.SanitizeObject(mustParse(t, doc), sanitizer.WithAllowedFields("name", "items", "meta"))

	var check func(v sanitizer.Value)
	check = func(v sanitizer.Value) {
		switch v.Kind() {
		case sanitizer.KindObject:
			for _, f := range v.Fields() {
				assert.True(t, allowed[f.Key], "unexpected key %q", f.Key)
				check(f.Value)
			}
		case sanitizer.KindList:
			for _, item := range v.Items() {
				check(item)
			}
		}
	}
	check(got)
}

func TestSanitizeObject_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := sanitizer.ObjectValue(
		sanitizer.Field{Key: "name", Value: sanitizer.StringValue("<b>x</b>")},
		sanitizer.Field{Key: "drop", Value: sanitizer.IntValue(1)},
	)

	out := sanitizer.SanitizeObject(in, sanitizer.WithAllowedFields("name"))

	name, _ := in.Get("name")
	s, ok := name.Str()
	require.True(t, ok)
	assert.Equal(t, "<b>x</b>", s)
	assert.Equal(t, 2, in.Len())
	assert.Equal(t, 1, out.Len())
}

func TestSanitizeObject_DeepNestingIsBounded(t *testing.T) {
	t.Parallel()

	doc := strings.Repeat("[", 250) + `"<b>x</b>"` + strings.Repeat("]", 250)
	got := sanitizer.SanitizeObject(mustParse(t, doc))

	depth := 0
	for got.Kind() == sanitizer.KindList {
		depth++
		items := got.Items()
		require.Len(t, items, 1)
		got = items[0]
	}
	assert.Equal(t, sanitizer.DefaultMaxDepth, depth)
	assert.True(t, got.IsNull())
}

func TestSanitizeJSON(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a payload", func(t *testing.T) {
		t.Parallel()

		out, err := sanitizer.SanitizeJSON(
			[]byte(`{"b":"<i>x</i>","a":1,"c":[true,null,"'q'"]}`),
		)
		require.NoError(t, err)
		assert.Equal(t, `{"b":"x","a":1,"c":[true,null,"q"]}`, string(out))
	})

	t.Run("escapes control characters", func(t *testing.T) {
		t.Parallel()

		out, err := sanitizer.SanitizeJSON([]byte(`{"n":"a\nb\u0000c"}`))
		require.NoError(t, err)
		assert.True(t, json.Valid(out), "output %s", out)
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := sanitizer.SanitizeJSON([]byte(`{"a":`))
		require.Error(t, err)
		assert.ErrorIs(t, err, sanitizer.ErrInvalidJSON)
	})
}

func TestSanitizeMap(t *testing.T) {
	t.Parallel()

	t.Run("sanitizes decoded map", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{
			"name":  "<b>Ann</b>",
			"age":   float64(30),
			"roles": []any{"'admin'", true},
			"drop":  "x",
		}

		out, err := sanitizer.SanitizeMap(in, sanitizer.WithAllowedFields("name", "age", "roles"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"name":  "Ann",
			"age":   json.Number("30"),
			"roles": []any{"admin", true},
		}, out)
		assert.Equal(t, "<b>Ann</b>", in["name"], "input must not be modified")
	})

	t.Run("nil map", func(t *testing.T) {
		t.Parallel()

		out, err := sanitizer.SanitizeMap(nil)
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("self-referencing map", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{}
		in["self"] = in

		_, err := sanitizer.SanitizeMap(in)
		assert.ErrorIs(t, err, sanitizer.ErrMaxDepthExceeded)
	})

	t.Run("unsupported value", func(t *testing.T) {
		t.Parallel()

		_, err := sanitizer.SanitizeMap(map[string]any{"ch": make(chan int)})
		assert.ErrorIs(t, err, sanitizer.ErrUnsupportedType)
	})
}
