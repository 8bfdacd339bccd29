// Package format renders whole-number quantities for display.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Count returns n with English thousands separators (e.g., "12,500").
func Count(n int64) string {
	return CountIn(language.English, n)
}

// CountIn returns n grouped according to the given locale.
func CountIn(tag language.Tag, n int64) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("%d", n)
}

// Quantity returns a requirement count as "x500" for compact table output.
func Quantity(n int) string {
	return "x" + Count(int64(n))
}
