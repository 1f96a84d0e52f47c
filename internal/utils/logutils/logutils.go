package logutils

import (
	"fmt"
	"strings"
)

// FormatPrinter implements fmt.Stringer by printing an arbitrary object with a
// given verb. Formatting only happens when the logger actually renders the
// field, so it's fine to attach large API payloads to debug logs.
type FormatPrinter struct {
	verb string
	item any
}

func (v FormatPrinter) String() string {
	return fmt.Sprintf(v.verb, v.item)
}

func Format(verb string, item any) FormatPrinter {
	return FormatPrinter{verb, item}
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
// Newlines are collapsed so the result fits on a single log line.
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
