package order

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Payload is a raw, loosely typed order document as received from a sales channel.
//
// Accessors never fail: a key that is missing, holds an empty value or holds a
// value of an unexpected type resolves to the documented default. "Empty" means
// nil, "", false, numeric zero, or an empty object/array, so that a chain of
// alternative keys falls through to the next candidate exactly like a chain of
// "a or b or default" expressions.
type Payload map[string]any

// Get returns the raw value stored under key, or nil.
func (p Payload) Get(key string) any {
	if p == nil {
		return nil
	}
	return p[key]
}

// First returns the first non-empty value among keys, or nil.
func (p Payload) First(keys ...string) any {
	for _, key := range keys {
		if v := p.Get(key); !IsEmpty(v) {
			return v
		}
	}
	return nil
}

// String returns the first non-empty value among keys rendered as a string.
func (p Payload) String(keys ...string) string {
	return Stringify(p.First(keys...))
}

// StringOr is String with a fallback for the case where every key is empty.
func (p Payload) StringOr(def string, keys ...string) string {
	v := p.First(keys...)
	if v == nil {
		return def
	}
	return Stringify(v)
}

// Object returns the nested object under key. A missing or non-object value
// yields an empty payload.
func (p Payload) Object(key string) Payload {
	switch v := p.Get(key).(type) {
	case Payload:
		return v
	case map[string]any:
		return Payload(v)
	default:
		return Payload{}
	}
}

// Objects returns the nested array of objects under key. Elements that are
// not objects are skipped.
func (p Payload) Objects(key string) []Payload {
	switch v := p.Get(key).(type) {
	case []Payload:
		return v
	case []map[string]any:
		out := make([]Payload, 0, len(v))
		for _, m := range v {
			out = append(out, Payload(m))
		}
		return out
	case []any:
		out := make([]Payload, 0, len(v))
		for _, elem := range v {
			switch m := elem.(type) {
			case Payload:
				out = append(out, m)
			case map[string]any:
				out = append(out, Payload(m))
			}
		}
		return out
	default:
		return nil
	}
}

// Decimal returns the first non-empty value among keys coerced to a decimal.
// Numbers and numeric strings are accepted; anything else is zero.
func (p Payload) Decimal(keys ...string) decimal.Decimal {
	return ToDecimal(p.First(keys...))
}

// Int returns the first non-empty value among keys coerced to an integer,
// truncating any fractional part. Unparsable values are zero.
func (p Payload) Int(keys ...string) int {
	return int(ToDecimal(p.First(keys...)).IntPart())
}

// IsEmpty reports whether v counts as an absent value.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case float32:
		return t == 0
	case int:
		return t == 0
	case int32:
		return t == 0
	case int64:
		return t == 0
	case json.Number:
		if t == "" {
			return true
		}
		f, err := t.Float64()
		return err == nil && f == 0
	case Payload:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case []Payload:
		return len(t) == 0
	case []map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// Stringify renders a payload value as text. Nil renders as "" and booleans
// as "True" or "False".
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		if t {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(t)
	}
}

// ToDecimal coerces a payload value to a decimal, returning zero when the value
// is not numeric.
func ToDecimal(v any) decimal.Decimal {
	d, _ := ParseDecimal(v)
	return d
}

// Bounds on accepted amounts. Values outside them are treated as non-numeric
// so that rounding and float conversion stay cheap.
const (
	maxDecimalExponent = 28
	maxDecimalDigits   = 38
)

// ParseDecimal coerces a payload value to a decimal and reports whether the
// value was numeric. Numeric strings are accepted. Values with an exponent
// beyond ±28 or more than 38 significant digits are rejected.
func ParseDecimal(v any) (decimal.Decimal, bool) {
	d, ok := coerceDecimal(v)
	if !ok || !withinBounds(d) {
		return decimal.Zero, false
	}
	return d, true
}

func coerceDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		return parseDecimal(string(t))
	case string:
		return parseDecimal(t)
	case float64:
		return decimal.NewFromFloat(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt32(t), true
	case int64:
		return decimal.NewFromInt(t), true
	case bool:
		if t {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	default:
		return decimal.Zero, false
	}
}

func withinBounds(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= -maxDecimalExponent && exp <= maxDecimalExponent && d.NumDigits() <= maxDecimalDigits
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
