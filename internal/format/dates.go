package format

import (
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
)

// Backend timestamps arrive as Python isoformat() output, usually without a zone.
var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Date formats v as dd/mm/yyyy. Absent values yield Placeholder; unparsable text is returned as-is.
func Date(v any) string {
	return formatTime(v, dateLayout)
}

// DateTime formats v as dd/mm/yyyy HH:MM.
func DateTime(v any) string {
	return formatTime(v, dateTimeLayout)
}

// ParseTime reads the timestamp shapes the backend emits.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatTime(v any, layout string) string {
	switch t := deref(v).(type) {
	case nil:
		return Placeholder
	case time.Time:
		if t.IsZero() {
			return Placeholder
		}
		return t.Format(layout)
	case string:
		if strings.TrimSpace(t) == "" {
			return Placeholder
		}
		parsed, ok := ParseTime(t)
		if !ok {
			return t
		}
		return parsed.Format(layout)
	default:
		return OrDash(t)
	}
}

// Relative describes how long before now t happened, in Portuguese.
// Future times read as "agora".
func Relative(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "agora"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minuto", "minutos")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hora", "horas")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "dia", "dias")
	default:
		return t.Format(dateTimeLayout)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "há 1 " + one
	}
	return "há " + strconv.Itoa(n) + " " + many
}
