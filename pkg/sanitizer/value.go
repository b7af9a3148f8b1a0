package sanitizer

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Field is one key/value entry of an object Value.
type Field struct {
	Key   string
	Value Value
}

// Value is an immutable structured payload: null, string, number, bool, an
// ordered list, or an object with ordered fields. The zero Value is null.
//
// Constructors copy their arguments, so a Value never aliases caller memory
// and cannot contain itself.
type Value struct {
	kind   Kind
	str    string // string payload or number literal
	b      bool
	items  []Value
	fields []Field
}

var jsonNumberRegex = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

func NullValue() Value { return Value{} }

func StringValue(s string) Value { return Value{kind: KindString, str: s} }

func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

func IntValue(n int64) Value {
	return Value{kind: KindNumber, str: strconv.FormatInt(n, 10)}
}

// FloatValue returns a number Value. NaN and infinities have no JSON
// representation and become null.
func FloatValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NullValue()
	}
	return Value{kind: KindNumber, str: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NumberValue returns a number Value that keeps the literal text, so large
// identifiers and decimal amounts are not rounded through float64.
func NumberValue(literal string) (Value, error) {
	if !jsonNumberRegex.MatchString(literal) {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, literal)
	}
	return Value{kind: KindNumber, str: literal}, nil
}

func ListValue(items ...Value) Value {
	return Value{kind: KindList, items: slices.Clone(items)}
}

func ObjectValue(fields ...Field) Value {
	return Value{kind: KindObject, fields: slices.Clone(fields)}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Number returns the literal text of a number Value.
func (v Value) Number() (string, bool) {
	return v.str, v.kind == KindNumber
}

func (v Value) Float64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.str, 64)
	return f, err == nil
}

func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Items returns a copy of the list elements.
func (v Value) Items() []Value {
	return slices.Clone(v.items)
}

// Fields returns a copy of the object fields in their original order.
func (v Value) Fields() []Field {
	return slices.Clone(v.fields)
}

// Len is the number of list items or object fields.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.items)
	case KindObject:
		return len(v.fields)
	default:
		return 0
	}
}

// Get returns the value of the last field named key.
func (v Value) Get(key string) (Value, bool) {
	for i := len(v.fields) - 1; i >= 0; i-- {
		if v.fields[i].Key == key {
			return v.fields[i].Value, true
		}
	}
	return Value{}, false
}

// Keys returns the object keys in order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.fields))
	for i, f := range v.fields {
		keys[i] = f.Key
	}
	return keys
}

// Walk calls fn for every string in v, including object keys. The path is
// the dotted field path ("patient.contacts.0.email"). Walk stops and returns
// false as soon as fn returns false.
func (v Value) Walk(fn func(path string, s string) bool) bool {
	return v.walk("", fn)
}

func (v Value) walk(path string, fn func(string, string) bool) bool {
	switch v.kind {
	case KindString:
		return fn(path, v.str)
	case KindList:
		for i, item := range v.items {
			if !item.walk(joinPath(path, strconv.Itoa(i)), fn) {
				return false
			}
		}
	case KindObject:
		for _, f := range v.fields {
			p := joinPath(path, f.Key)
			if !fn(p, f.Key) || !f.Value.walk(p, fn) {
				return false
			}
		}
	}
	return true
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// maxConvertDepth bounds FromAny so a self-referencing map cannot recurse
// forever.
const maxConvertDepth = 256

// FromAny converts decoded Go data (as produced by encoding/json into an
// interface{}) into a Value. Map keys are visited in sorted order so the
// result is deterministic.
func FromAny(v any) (Value, error) {
	return fromAny(v, 0)
}

func fromAny(v any, depth int) (Value, error) {
	if depth > maxConvertDepth {
		return Value{}, ErrMaxDepthExceeded
	}

	switch x := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return x, nil
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case json.Number:
		return NumberValue(string(x))
	case int:
		return IntValue(int64(x)), nil
	case int8:
		return IntValue(int64(x)), nil
	case int16:
		return IntValue(int64(x)), nil
	case int32:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint:
		return Value{kind: KindNumber, str: strconv.FormatUint(uint64(x), 10)}, nil
	case uint8:
		return IntValue(int64(x)), nil
	case uint16:
		return IntValue(int64(x)), nil
	case uint32:
		return IntValue(int64(x)), nil
	case uint64:
		return Value{kind: KindNumber, str: strconv.FormatUint(x, 10)}, nil
	case float32:
		return FloatValue(float64(x)), nil
	case float64:
		return FloatValue(x), nil
	case []string:
		items := make([]Value, len(x))
		for i, s := range x {
			items[i] = StringValue(s)
		}
		return Value{kind: KindList, items: items}, nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			converted, err := fromAny(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			items[i] = converted
		}
		return Value{kind: KindList, items: items}, nil
	case map[string]string:
		keys := sortedKeys(x)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: StringValue(x[k])}
		}
		return Value{kind: KindObject, fields: fields}, nil
	case map[string]any:
		keys := sortedKeys(x)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			converted, err := fromAny(x[k], depth+1)
			if err != nil {
				return Value{}, err
			}
			fields[i] = Field{Key: k, Value: converted}
		}
		return Value{kind: KindObject, fields: fields}, nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Any converts v back to plain Go data: nil, string, json.Number, bool,
// []any or map[string]any. Duplicate object keys keep the last value.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return json.Number(v.str)
	case KindBool:
		return v.b
	case KindList:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Any()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Key] = f.Value.Any()
		}
		return out
	default:
		return nil
	}
}
