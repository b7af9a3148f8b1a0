package sanitizer_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clinickit/pkg/sanitizer"
)

func TestValue_Constructors(t *testing.T) {
	t.Parallel()

	assert.True(t, sanitizer.NullValue().IsNull())
	assert.True(t, sanitizer.Value{}.IsNull(), "zero value is null")

	s, ok := sanitizer.StringValue("x").Str()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	n, ok := sanitizer.IntValue(-7).Number()
	assert.True(t, ok)
	assert.Equal(t, "-7", n)

	f, ok := sanitizer.FloatValue(1.5).Float64()
	assert.True(t, ok)
	assert.InDelta(t, 1.5, f, 0)

	b, ok := sanitizer.BoolValue(true).Bool()
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = sanitizer.StringValue("x").Bool()
	assert.False(t, ok)
}

func TestValue_FloatValueNonFinite(t *testing.T) {
	t.Parallel()

	zero := 0.0
	assert.True(t, sanitizer.FloatValue(zero/zero).IsNull())
}

func TestNumberValue(t *testing.T) {
	t.Parallel()

	for _, literal := range []string{"0", "-1", "3.14", "1e10", "-2.5E-3", "12345678901234567890"} {
		v, err := sanitizer.NumberValue(literal)
		require.NoError(t, err, literal)
		got, _ := v.Number()
		assert.Equal(t, literal, got)
	}

	for _, literal := range []string{"", "01", "1.", ".5", "0x1F", "NaN", "Inf", "1_000", "+1"} {
		_, err := sanitizer.NumberValue(literal)
		assert.ErrorIs(t, err, sanitizer.ErrInvalidNumber, literal)
	}
}

func TestValue_ConstructorsCopyInput(t *testing.T) {
	t.Parallel()

	items := []sanitizer.Value{sanitizer.StringValue("a")}
	list := sanitizer.ListValue(items...)
	items[0] = sanitizer.StringValue("changed")

	got, _ := list.Items()[0].Str()
	assert.Equal(t, "a", got)

	returned := list.Items()
	returned[0] = sanitizer.NullValue()
	got, _ = list.Items()[0].Str()
	assert.Equal(t, "a", got)
}

func TestValue_GetAndKeys(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{"a":1,"b":2,"a":3}`)
	assert.Equal(t, []string{"a", "b", "a"}, v.Keys())
	assert.Equal(t, 3, v.Len())

	a, ok := v.Get("a")
	require.True(t, ok)
	n, _ := a.Number()
	assert.Equal(t, "3", n, "last duplicate wins")

	_, ok = v.Get("missing")
	assert.False(t, ok)
}

func TestValue_Walk(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{"patient":{"name":"Ann","contacts":[{"email":"a@b.c"}]},"n":1}`)

	var visited []string
	v.Walk(func(path, s string) bool {
		visited = append(visited, path+"="+s)
		return true
	})

	assert.Equal(t, []string{
		"patient=patient",
		"patient.name=name",
		"patient.name=Ann",
		"patient.contacts=contacts",
		"patient.contacts.0.email=email",
		"patient.contacts.0.email=a@b.c",
		"n=n",
	}, visited)

	count := 0
	completed := v.Walk(func(string, string) bool {
		count++
		return count < 2
	})
	assert.False(t, completed)
	assert.Equal(t, 2, count)
}

func TestFromAny(t *testing.T) {
	t.Parallel()

	v, err := sanitizer.FromAny(map[string]any{
		"b":     []string{"x", "y"},
		"a":     int32(5),
		"c":     map[string]string{"k": "v"},
		"d":     nil,
		"e":     uint64(18446744073709551615),
		"f":     json.Number("1.25"),
		"g":     sanitizer.BoolValue(false),
		"float": float32(0.5),
	})
	require.NoError(t, err)

	data, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"a":5,"b":["x","y"],"c":{"k":"v"},"d":null,"e":18446744073709551615,"f":1.25,"float":0.5,"g":false}`,
		string(data),
	)

	_, err = sanitizer.FromAny(struct{}{})
	assert.ErrorIs(t, err, sanitizer.ErrUnsupportedType)

	_, err = sanitizer.FromAny(json.Number("abc"))
	assert.ErrorIs(t, err, sanitizer.ErrInvalidNumber)
}

func TestValue_JSONInterop(t *testing.T) {
	t.Parallel()

	type request struct {
		Schema  string          `json:"schema"`
		Payload sanitizer.Value `json:"payload"`
	}

	var req request
	require.NoError(t, json.Unmarshal([]byte(`{"schema":"patients","payload":{"z":"<b>1</b>","a":[2]}}`), &req))
	assert.Equal(t, sanitizer.KindObject, req.Payload.Kind())
	assert.Equal(t, []string{"z", "a"}, req.Payload.Keys())

	clean := sanitizer.SanitizeObject(req.Payload)
	out, err := json.Marshal(request{Schema: req.Schema, Payload: clean})
	require.NoError(t, err)
	assert.Equal(t, `{"schema":"patients","payload":{"z":"1","a":[2]}}`, string(out))
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "object", sanitizer.KindObject.String())
	assert.Equal(t, "null", sanitizer.KindNull.String())
	assert.Equal(t, "kind(42)", sanitizer.Kind(42).String())
}
