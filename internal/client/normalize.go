package client

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Scalar normalizers for raw API values. JSON decoding hands us float64,
// string, or nil; everything funnels through these so a single bad cell
// degrades to nil instead of failing a whole computation.

// Float converts a raw scalar to *float64 rounded to the given number of
// decimal places. Returns nil for absent, empty, or non-numeric values.
func Float(v any, decimals int) *float64 {
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	scale := math.Pow(10, float64(decimals))
	f = math.Round(f*scale) / scale
	return &f
}

// Int converts a raw scalar to *int. Returns nil for absent, empty, or
// non-numeric values (including "Undrafted" style placeholders).
func Int(v any) *int {
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	i := int(f)
	return &i
}

// Str converts a raw scalar to a trimmed *string, nil for absent/empty.
func Str(v any) *string {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return nil
		}
		return &trimmed
	case float64:
		formatted := strconv.FormatFloat(s, 'f', -1, 64)
		return &formatted
	default:
		return nil
	}
}

// FractionToPercent rescales a 0-1 fraction (e.g. USG_PCT 0.234) to a
// whole percent rounded to one decimal (23.4). Nil for absent/non-numeric.
func FractionToPercent(v any) *float64 {
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	p := math.Round(f*100*10) / 10
	return &p
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case int:
		return float64(x), true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NormalizeGameDate converts the date formats the game log endpoint
// returns ('2026-03-15T00:00:00', '2026-03-15', 'Mar 15, 2026') to
// YYYY-MM-DD. Unparseable input is returned as-is.
func NormalizeGameDate(raw string) string {
	if raw == "" {
		return ""
	}
	if i := strings.IndexByte(raw, 'T'); i > 0 {
		return raw[:i]
	}
	if len(raw) == 10 && raw[4] == '-' {
		return raw
	}
	for _, layout := range []string{"Jan 2, 2006", "January 2, 2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}

// NormalizeCompactDate converts the shot chart endpoint's 'YYYYMMDD'
// dates to YYYY-MM-DD. Dates already carrying separators pass through
// truncated to the date part.
func NormalizeCompactDate(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) == 8 && isDigits(s) {
		return s[:4] + "-" + s[4:6] + "-" + s[6:8]
	}
	if len(s) >= 10 && s[4] == '-' {
		return s[:10]
	}
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
