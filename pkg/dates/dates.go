// Package dates normalizes upstream date strings to the display format.
package dates

import (
	"strings"
	"time"

	"github.com/agentstation/bankrot/pkg/constants"
)

// Normalize converts raw to dd.mm.yyyy. Offset-aware timestamps keep the
// calendar date of their own offset; anything else is read from its first ten
// characters as YYYY-MM-DD. Unparseable input yields "".
func Normalize(raw string) string {
	t, ok := parse(raw)
	if !ok {
		return ""
	}
	return t.Format(constants.DisplayDateFormat)
}

// NormalizeOrKeep is Normalize that returns the trimmed input unchanged when
// it cannot be parsed.
func NormalizeOrKeep(raw string) string {
	if out := Normalize(raw); out != "" {
		return out
	}
	return strings.TrimSpace(raw)
}

func parse(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}

	if len(s) < len(constants.ISODateFormat) {
		return time.Time{}, false
	}
	t, err := time.Parse(constants.ISODateFormat, s[:len(constants.ISODateFormat)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
