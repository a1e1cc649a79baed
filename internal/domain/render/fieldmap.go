// Package render holds the pure document-rendering logic: the semantic
// field-path vocabulary and its formatting, the line-items table layout and
// the totals block. It performs no I/O and knows nothing about the eventual
// rendering surface; the PDF generator in internal/infrastructure/pdf
// consumes its output.
//
// No operation here ever fails on malformed or missing data. Everything
// degrades to an empty string or the raw string representation; the only
// error surfaced is a structurally empty column list (see BuildLineItemsTable).
package render

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format is a value-formatting kind used by field mappings and the
// {{path|format}} placeholder modifier.
type Format string

const (
	FormatCurrency   Format = "currency"
	FormatDate       Format = "date"
	FormatDateLong   Format = "date_long"
	FormatNumber     Format = "number"
	FormatPercentage Format = "percentage"
	FormatText       Format = "text"
)

// Display date patterns (Australian order).
const (
	datePattern     = "02/01/2006"
	dateLongPattern = "2 January 2006"
	datetimePattern = "02/01/2006 3:04 PM"
)

// printer groups numbers with en locale separators ("1,234.50").
var printer = message.NewPrinter(language.English)

// FieldMapping is the flat path → formatted display string table used for
// placeholder substitution in free text.
type FieldMapping map[string]string

// FormatValue maps a raw value plus a formatting kind to a display string.
// It is a total function: nil formats to "" for every kind, an unknown kind
// falls through to text, and an unparseable date falls back to the raw
// string representation. It never panics and never returns an error.
//
// Date patterns are fixed per kind (date "02/01/2006", date_long
// "2 January 2006", datetime with 12-hour clock); callers needing a
// different pattern pick a different kind rather than passing a layout.
func FormatValue(v any, kind Format) string {
	if isAbsent(v) {
		return ""
	}
	switch kind {
	case FormatCurrency:
		d, ok := toDecimal(v)
		if !ok {
			return stringify(v)
		}
		return formatCurrency(d)
	case FormatNumber:
		d, ok := toDecimal(v)
		if !ok {
			return stringify(v)
		}
		return formatGrouped(d)
	case FormatPercentage:
		d, ok := toDecimal(v)
		if !ok {
			return stringify(v)
		}
		return d.StringFixed(1) + "%"
	case FormatDate:
		return formatDate(v, datePattern)
	case FormatDateLong:
		return formatDate(v, dateLongPattern)
	default:
		return stringify(v)
	}
}

// GetNestedValue resolves a dot-separated path (e.g.
// "customer.address.city") against an arbitrarily nested value built from
// structs, maps and pointers. It returns (nil, false) when any segment is
// missing or the traversal hits a non-container; it never panics.
func GetNestedValue(v any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	cur := v
	for _, seg := range strings.Split(path, ".") {
		next, ok := resolveSegment(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	if isAbsent(cur) {
		return nil, false
	}
	return cur, true
}

func resolveSegment(v any, seg string) (any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(seg))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if jsonName(f) == seg || strings.EqualFold(f.Name, seg) {
				return rv.Field(i).Interface(), true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

// ReplacePlaceholders scans text for {{path}} and {{path|format}} tokens and
// substitutes each with its mapping value, optionally re-formatted through
// FormatValue. Unresolvable paths substitute to "". This is a single-pass
// scanner: nested or escaped braces are not supported and malformed tokens
// are left as plain text.
func ReplacePlaceholders(text string, m FieldMapping) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	var b strings.Builder
	for {
		open := strings.Index(text, "{{")
		if open < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:open])
		rest := text[open+2:]
		end := strings.Index(rest, "}}")
		if end < 0 {
			b.WriteString(text[open:])
			break
		}
		token := rest[:end]
		if token == "" || strings.ContainsAny(token, "{}") {
			// Malformed token: emit the opening braces literally and rescan
			// from just past them.
			b.WriteString("{{")
			text = rest
			continue
		}
		path, format := token, ""
		if i := strings.Index(token, "|"); i >= 0 {
			path, format = token[:i], token[i+1:]
		}
		path = strings.TrimSpace(path)
		format = strings.TrimSpace(format)
		if val, ok := m[path]; ok {
			if format != "" {
				val = FormatValue(val, Format(format))
			}
			b.WriteString(val)
		}
		text = rest[end+2:]
	}
	return b.String()
}

// ── value coercion helpers ────────────────────────────────────────────────────

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, false
		}
		return *x, true
	case float64:
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt32(x), true
	case int64:
		return decimal.NewFromInt(x), true
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(x), "$"))
		s = strings.ReplaceAll(s, ",", "")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

// formatCurrency renders a two-decimal, locale-grouped monetary string with
// the sign ahead of the symbol: -$1,234.50.
func formatCurrency(d decimal.Decimal) string {
	f, _ := d.Abs().Float64()
	s := printer.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	if d.IsNegative() {
		return "-$" + s
	}
	return "$" + s
}

// formatGrouped renders a locale-grouped number preserving the value's own
// decimal places (capped at 6).
func formatGrouped(d decimal.Decimal) string {
	dp := 0
	if d.Exponent() < 0 {
		dp = int(-d.Exponent())
	}
	if dp > 6 {
		dp = 6
	}
	f, _ := d.Float64()
	return printer.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(dp), number.MaxFractionDigits(dp)))
}

func formatDate(v any, pattern string) string {
	switch x := v.(type) {
	case time.Time:
		return x.Format(pattern)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format(pattern)
	case string:
		if t, ok := parseDateString(x); ok {
			return t.Format(pattern)
		}
		return x
	}
	return stringify(v)
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", datePattern} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.Format(datePattern)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format(datePattern)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}
