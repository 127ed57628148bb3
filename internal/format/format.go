// Package format renders numbers and dates the way the dashboard shows them (pt-BR).
//
// Every formatter accepts loosely typed values because list pages hand over raw
// JSON fields. Absent values never render blank: numbers fall back to zero and
// dates to "-".
package format

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is shown for absent text and dates.
const Placeholder = "-"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats v as Brazilian reais, e.g. "R$ 1.234,50".
func Currency(v any) string {
	f, _ := Float(v)
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	return sign + "R$ " + printer.Sprintf("%.2f", f)
}

// Number formats v with pt-BR digit grouping. Whole values drop the fraction.
func Number(v any) string {
	f, _ := Float(v)
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return printer.Sprintf("%d", int64(f))
	}
	return printer.Sprintf("%.2f", f)
}

// Percent formats v (already in percent units) with one decimal, e.g. "12,5%".
func Percent(v any) string {
	f, _ := Float(v)
	return printer.Sprintf("%.1f", f) + "%"
}

// OrDash returns the text form of v, or Placeholder when v is absent or blank.
func OrDash(v any) string {
	s := Text(v)
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// Text converts a raw JSON value to display text without any locale rules.
func Text(v any) string {
	v = deref(v)
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "Sim"
		}
		return "Não"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, _ := Float(t)
		return strconv.FormatInt(int64(f), 10)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// Float extracts a finite float64 from v. The boolean is false when v is not numeric.
func Float(v any) (float64, bool) {
	v = deref(v)
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Truncate shortens s to n runes, appending an ellipsis when it was cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

func deref(v any) any {
	for v != nil {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer {
			return v
		}
		if rv.IsNil() {
			return nil
		}
		v = rv.Elem().Interface()
	}
	return nil
}
