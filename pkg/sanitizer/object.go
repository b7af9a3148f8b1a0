package sanitizer

import "fmt"

// DefaultMaxDepth is the container nesting SanitizeObject keeps when no
// WithMaxDepth option is given.
const DefaultMaxDepth = 32

// ObjectOption configures SanitizeObject.
type ObjectOption func(*objectOptions)

type objectOptions struct {
	allowed  map[string]struct{}
	maxDepth int
}

// WithAllowedFields keeps only the listed keys, at every nesting level.
// Calling it with no fields drops every key.
func WithAllowedFields(fields ...string) ObjectOption {
	return func(o *objectOptions) {
		if o.allowed == nil {
			o.allowed = make(map[string]struct{}, len(fields))
		}
		for _, f := range fields {
			o.allowed[f] = struct{}{}
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Non-positive values are ignored.
func WithMaxDepth(depth int) ObjectOption {
	return func(o *objectOptions) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// SanitizeObject returns a sanitized copy of v: strings go through
// SanitizeString, numbers, booleans and nulls are kept, lists are mapped
// element by element, and objects are rebuilt key by key, omitting keys
// outside the allow-list. Lists and objects nested deeper than the maximum
// depth are replaced with null.
func SanitizeObject(v Value, opts ...ObjectOption) Value {
	o := objectOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o.sanitize(v, 0)
}

func (o *objectOptions) sanitize(v Value, depth int) Value {
	switch v.kind {
	case KindString:
		return StringValue(SanitizeString(v.str))

	case KindList:
		if depth >= o.maxDepth {
			return NullValue()
		}
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = o.sanitize(item, depth+1)
		}
		return Value{kind: KindList, items: items}

	case KindObject:
		if depth >= o.maxDepth {
			return NullValue()
		}
		fields := make([]Field, 0, len(v.fields))
		for _, f := range v.fields {
			if !o.isAllowed(f.Key) {
				continue
			}
			fields = append(fields, Field{Key: f.Key, Value: o.sanitize(f.Value, depth+1)})
		}
		return Value{kind: KindObject, fields: fields}

	default:
		return v
	}
}

func (o *objectOptions) isAllowed(key string) bool {
	if o.allowed == nil {
		return true
	}
	_, ok := o.allowed[key]
	return ok
}

// SanitizeMap is SanitizeObject for data decoded into map[string]any.
// Numbers come back as json.Number.
func SanitizeMap(m map[string]any, opts ...ObjectOption) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}

	v, err := FromAny(m)
	if err != nil {
		return nil, fmt.Errorf("sanitizer: convert map: %w", err)
	}

	out, _ := SanitizeObject(v, opts...).Any().(map[string]any)
	return out, nil
}

// SanitizeJSON decodes a JSON document, sanitizes it with SanitizeObject and
// encodes it again, preserving field order.
func SanitizeJSON(data []byte, opts ...ObjectOption) ([]byte, error) {
	v, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return SanitizeObject(v, opts...).MarshalJSON()
}
