package db

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind discriminates the variants of a canonical Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindText
	KindArray
	KindObject
)

// Field is one key/value pair of an ordered object. Keys are unique within
// an object and keep the column order returned by the backend.
type Field struct {
	Key string
	Val Value
}

// Value is the backend-agnostic decoded representation of a database cell.
// Decoding never panics: anything that cannot be represented becomes Null.
type Value struct {
	kind ValueKind
	b    bool
	n    json.Number
	s    string
	arr  []Value
	obj  []Field
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value backed by a json.Number, which keeps the
// exact textual representation.
func Number(n json.Number) Value { return Value{kind: KindNumber, n: n} }

// Int returns a numeric value from an int64.
func Int(i int64) Value {
	return Value{kind: KindNumber, n: json.Number(strconv.FormatInt(i, 10))}
}

// Float returns a numeric value from a float64. NaN and infinities have no
// representation and become Null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, n: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Array returns an array value.
func Array(items []Value) Value { return Value{kind: KindArray, arr: items} }

// Object returns an ordered object. Duplicate keys keep the first occurrence.
func Object(fields []Field) Value {
	seen := make(map[string]struct{}, len(fields))
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Key]; dup {
			continue
		}
		seen[f.Key] = struct{}{}
		out = append(out, f)
	}
	return Value{kind: KindObject, obj: out}
}

// Kind returns the variant of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (json.Number, bool) { return v.n, v.kind == KindNumber }

// AsText returns the text payload.
func (v Value) AsText() (string, bool) { return v.s, v.kind == KindText }

// Items returns the elements of an array value.
func (v Value) Items() []Value { return v.arr }

// Fields returns the ordered fields of an object value.
func (v Value) Fields() []Field { return v.obj }

// Get looks up a key in an object value.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.obj {
		if f.Key == key {
			return f.Val, true
		}
	}
	return Null(), false
}

// Display renders the value the way the result grid shows it: NULL for null,
// bare text for strings, and compact JSON for everything else.
func (v Value) Display() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return v.n.String()
	case KindText:
		return v.s
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// MarshalJSON implements json.Marshaler. Object fields are written in their
// stored order, which map-based marshaling would not preserve.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		if v.n == "" {
			return []byte("0"), nil
		}
		return []byte(v.n), nil
	case KindText:
		return json.Marshal(v.s)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			raw, err := json.Marshal(item)
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, f := range v.obj {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			raw, err := json.Marshal(f.Val)
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// FromJSON decodes a JSON document into a Value, keeping object key order.
// Malformed input yields Null.
func FromJSON(raw []byte) Value {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return Null()
	}
	return v
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return Text(t), nil
	case json.Delim:
		switch t {
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeJSON(dec)
				if err != nil {
					return Null(), err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return Null(), err
			}
			return Array(items), nil
		case '{':
			var fields []Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null(), err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null(), fmt.Errorf("object key is not a string")
				}
				val, err := decodeJSON(dec)
				if err != nil {
					return Null(), err
				}
				fields = append(fields, Field{Key: key, Val: val})
			}
			if _, err := dec.Token(); err != nil { // closing }
				return Null(), err
			}
			return Object(fields), nil
		}
	}
	return Null(), fmt.Errorf("unexpected token %v", tok)
}

// BestEffortText converts an arbitrary driver value to a text Value, or Null
// when there is nothing to convert.
func BestEffortText(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case string:
		return Text(t)
	case []byte:
		return Text(string(t))
	case fmt.Stringer:
		return Text(t.String())
	default:
		s := fmt.Sprint(t)
		if strings.TrimSpace(s) == "" {
			return Null()
		}
		return Text(s)
	}
}
