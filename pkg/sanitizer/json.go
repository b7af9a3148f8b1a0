package sanitizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/valyala/fastjson"
)

// fastjson keeps object keys in document order, which lets a sanitized
// payload be written back with the caller's field order intact.
// Parsers are not safe for concurrent use, hence the pool.
var parserPool fastjson.ParserPool

// ParseJSON decodes a JSON document into a Value.
func ParseJSON(data []byte) (Value, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	doc, err := p.ParseBytes(data)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return fromFastJSON(doc, 0)
}

func fromFastJSON(v *fastjson.Value, depth int) (Value, error) {
	if depth > maxConvertDepth {
		return Value{}, ErrMaxDepthExceeded
	}

	switch v.Type() {
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return StringValue(string(b)), nil

	case fastjson.TypeNumber:
		return Value{kind: KindNumber, str: string(v.MarshalTo(nil))}, nil

	case fastjson.TypeTrue:
		return BoolValue(true), nil

	case fastjson.TypeFalse:
		return BoolValue(false), nil

	case fastjson.TypeArray:
		arr, err := v.Array()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		items := make([]Value, len(arr))
		for i, item := range arr {
			converted, err := fromFastJSON(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			items[i] = converted
		}
		return Value{kind: KindList, items: items}, nil

	case fastjson.TypeObject:
		obj, err := v.Object()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		fields := make([]Field, 0, obj.Len())
		var visitErr error
		obj.Visit(func(key []byte, item *fastjson.Value) {
			if visitErr != nil {
				return
			}
			converted, err := fromFastJSON(item, depth+1)
			if err != nil {
				visitErr = err
				return
			}
			fields = append(fields, Field{Key: string(key), Value: converted})
		})
		if visitErr != nil {
			return Value{}, visitErr
		}
		return Value{kind: KindObject, fields: fields}, nil

	default:
		return NullValue(), nil
	}
}

// MarshalJSON encodes v with object fields in their stored order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON lets a Value be embedded in structs decoded by encoding/json.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// encode writes v as compact JSON. Strings go through encoding/json, which
// escapes control characters the way JSON requires.
func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindString:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindNumber:
		buf.WriteString(v.str)
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
	return nil
}
