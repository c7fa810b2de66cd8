// Package coerce converts loosely typed values from external JSON into the
// domain's strict types. Conversions never fail: malformed input resolves to
// a documented default instead of an error.
package coerce

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"flowbit/internal/model"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// String returns the trimmed string form of raw, or "" for absent or
// non-string input.
func String(raw any) string {
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Decimal parses raw as a decimal amount. Numbers and numeric strings are
// accepted; anything else yields zero.
func Decimal(raw any) decimal.Decimal {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Int parses raw as an integer, falling back to def. Fractional input is
// truncated toward zero.
func Int(raw any, def int) int {
	switch v := raw.(type) {
	case nil:
		return def
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
		return def
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return def
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return def
	default:
		return def
	}
}

// Time parses raw as a timestamp, falling back to the supplied default.
// Numeric input is treated as Unix milliseconds.
func Time(raw any, fallback time.Time) time.Time {
	if t := parseTime(raw); t != nil {
		return *t
	}
	return fallback
}

// TimePtr parses raw as a timestamp for optional date fields, returning nil
// when raw is absent or unparsable.
func TimePtr(raw any) *time.Time {
	return parseTime(raw)
}

func parseTime(raw any) *time.Time {
	switch v := raw.(type) {
	case time.Time:
		return &v
	case float64:
		t := time.UnixMilli(int64(v)).UTC()
		return &t
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}

// Status matches raw case-insensitively against the invoice status set and
// falls back to PENDING for anything unrecognized.
func Status(raw any) string {
	s := strings.ToUpper(String(raw))
	if model.ValidStatus(s) {
		return s
	}
	return model.StatusPending
}
