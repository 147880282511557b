package ecommerce

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tectle/backend/internal/domain/order"
)

// isoLayouts are tried in order. Fractional seconds are accepted after the
// seconds field by every layout that has one. Layouts without an offset are
// read as UTC.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05-0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseISO parses an ISO-8601 date or date-time.
func parseISO(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// unixSeconds converts a possibly fractional count of epoch seconds to a UTC time.
func unixSeconds(d decimal.Decimal) time.Time {
	sec := d.IntPart()
	nanos := d.Sub(decimal.NewFromInt(sec)).Shift(9).IntPart()
	return time.Unix(sec, nanos).UTC()
}

// parseEpochOrISO handles timestamps that may be epoch seconds (numbers or
// all-digit strings) or ISO-8601 strings. Digit strings are always epoch seconds.
func parseEpochOrISO(value any) (time.Time, bool) {
	switch v := value.(type) {
	case json.Number, float64, float32, int, int32, int64:
		d, ok := order.ParseDecimal(v)
		if !ok {
			return time.Time{}, false
		}
		return unixSeconds(d), true
	case string:
		if isDigits(v) {
			d, ok := order.ParseDecimal(v)
			if !ok {
				return time.Time{}, false
			}
			return unixSeconds(d), true
		}
		return parseISO(v)
	default:
		return time.Time{}, false
	}
}

// parseZuluISO parses an ISO-8601 string in which "Z" stands for "+00:00".
func parseZuluISO(value any) (time.Time, bool) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	return parseISO(strings.ReplaceAll(s, "Z", "+00:00"))
}
