package services

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Replies render amounts as whole rupees with Indian digit grouping
// (1,00,000 style), matching how users read bank statements.
var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatRupees renders an amount as grouped whole rupees, without the sign.
func FormatRupees(amount float64) string {
	return inr.Sprintf("%d", int64(math.Round(amount)))
}

// formatHours renders hours with one decimal, dropping a trailing ".0".
func formatHours(hours float64) string {
	s := inr.Sprintf("%.1f", hours)
	return strings.TrimSuffix(s, ".0")
}
