package db

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgtype"
)

// NullDisplayValue is the string shown for NULL values.
const NullDisplayValue = "NULL"

// RowStringifier converts raw driver values to display text. Each
// backend supplies one implementation, chosen once when the session
// opens, since the drivers produce different value sets.
type RowStringifier interface {
	Stringify(val any) string
}

// StringifyRow converts a row of raw values to display strings.
func StringifyRow(s RowStringifier, values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = s.Stringify(v)
	}
	return out
}

// pgStringifier handles the value set produced by pgx: Go scalars for
// common types plus pgtype wrappers for the rest.
type pgStringifier struct{}

func (pgStringifier) Stringify(val any) string {
	if val == nil {
		return NullDisplayValue
	}

	switch v := val.(type) {
	case pgtype.Date:
		if v.Valid {
			return v.Time.Format("2006-01-02")
		}
		return NullDisplayValue
	case pgtype.Timestamp:
		if v.Valid {
			return v.Time.Format("2006-01-02 15:04:05")
		}
		return NullDisplayValue
	case pgtype.Timestamptz:
		if v.Valid {
			return v.Time.Format("2006-01-02 15:04:05 MST")
		}
		return NullDisplayValue

	case [16]byte:
		return formatUUID(v)
	case pgtype.UUID:
		if v.Valid {
			return formatUUID(v.Bytes)
		}
		return NullDisplayValue

	case map[string]any, []any:
		return formatJSON(v)

	case pgtype.Numeric:
		if !v.Valid {
			return NullDisplayValue
		}
		if v.NaN {
			return "NaN"
		}
		f, _ := v.Float64Value()
		if f.Valid {
			return formatFloat(f.Float64, 64)
		}
		return v.Int.String()

	case pgtype.Text:
		if v.Valid {
			return sanitizeForDisplay(v.String)
		}
		return NullDisplayValue
	case pgtype.Int2:
		if v.Valid {
			return strconv.FormatInt(int64(v.Int16), 10)
		}
		return NullDisplayValue
	case pgtype.Int4:
		if v.Valid {
			return strconv.FormatInt(int64(v.Int32), 10)
		}
		return NullDisplayValue
	case pgtype.Int8:
		if v.Valid {
			return strconv.FormatInt(v.Int64, 10)
		}
		return NullDisplayValue
	case pgtype.Float8:
		if v.Valid {
			return formatFloat(v.Float64, 64)
		}
		return NullDisplayValue
	case pgtype.Bool:
		if v.Valid {
			return strconv.FormatBool(v.Bool)
		}
		return NullDisplayValue

	case []string:
		return "{" + strings.Join(v, ",") + "}"
	case []int64:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return "{" + strings.Join(parts, ",") + "}"
	case []int32:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.FormatInt(int64(n), 10)
		}
		return "{" + strings.Join(parts, ",") + "}"

	default:
		return formatScalar(val)
	}
}

// sqliteStringifier handles the narrower value set produced by
// database/sql with go-sqlite3: int64, float64, bool, []byte, string,
// time.Time, and nil.
type sqliteStringifier struct{}

func (sqliteStringifier) Stringify(val any) string {
	if val == nil {
		return NullDisplayValue
	}
	return formatScalar(val)
}

// formatScalar covers the plain Go types both drivers can produce.
func formatScalar(val any) string {
	switch v := val.(type) {
	case bool:
		return strconv.FormatBool(v)

	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)

	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)

	case string:
		return sanitizeForDisplay(v)
	case []byte:
		if isPrintable(v) {
			return sanitizeForDisplay(string(v))
		}
		return fmt.Sprintf("\\x%x", v)

	case time.Time:
		return formatTime(v)

	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatFloat uses the shortest representation that round-trips, with
// at least one decimal place so floats read as floats.
func formatFloat(f float64, bitSize int) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if !strings.Contains(s, ".") && !strings.Contains(s, "e") {
		s += ".0"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.Nanosecond() > 0 {
		return t.Format("2006-01-02 15:04:05.000000")
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatUUID(b [16]byte) string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

func formatJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// isPrintable reports whether a byte slice is valid UTF-8 text without
// control characters other than whitespace.
func isPrintable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// sanitizeForDisplay flattens control characters that would break the
// table layout into single-space placeholders.
func sanitizeForDisplay(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			if !prevSpace {
				sb.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		sb.WriteRune(r)
		prevSpace = false
	}
	return sb.String()
}
