package prefs

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the type tag stored next to every setting.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindDouble
	KindFloat
	KindString
)

var kindNames = [...]string{
	KindBool:   "bool",
	KindInt:    "int",
	KindDouble: "double",
	KindFloat:  "float",
	KindString: "string",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown setting kind %q", s)
}

// Value is a typed setting. The zero Value is Bool(false).
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }
func Float(f float32) Value  { return Value{kind: KindFloat, f: float64(f)} }
func String(s string) Value  { return Value{kind: KindString, s: s} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean held by v and whether v is a bool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns the integer held by v and whether v is an int.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Double returns the number held by a double or float value.
func (v Value) Double() (float64, bool) {
	return v.f, v.kind == KindDouble || v.kind == KindFloat
}

// Text returns the string held by v and whether v is a string.
func (v Value) Text() (string, bool) { return v.s, v.kind == KindString }

// Display renders v for listing: "true"/"false" for bools, the raw text for
// strings and the shortest exact decimal form for numbers.
func (v Value) Display() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindString:
		return v.s
	default:
		return strconv.FormatBool(v.b)
	}
}

func (v Value) String() string {
	return v.kind.String() + ":" + v.Display()
}

// ParseValue builds a Value of kind from its Display form.
func ParseValue(kind Kind, text string) (Value, error) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return Value{}, fmt.Errorf("parse bool setting: %w", err)
		}
		return Bool(b), nil
	case KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse int setting: %w", err)
		}
		return Int(i), nil
	case KindDouble:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse double setting: %w", err)
		}
		return Double(f), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
		if err != nil {
			return Value{}, fmt.Errorf("parse float setting: %w", err)
		}
		return Float(float32(f)), nil
	case KindString:
		return String(text), nil
	}
	return Value{}, fmt.Errorf("unknown setting kind %d", int(kind))
}
