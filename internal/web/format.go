package web

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var dollars = message.NewPrinter(language.AmericanEnglish)

// formatCents renders an amount in cents as US dollars, e.g. "$1,234.56".
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + "$" + dollars.Sprintf("%d", cents/100) + fmt.Sprintf(".%02d", cents%100)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
