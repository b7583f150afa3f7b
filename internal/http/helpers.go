package http

import (
	"fmt"
	"strconv"
	"strings"

	"spendview/internal/core"
)

// formatDollars formats cents as a currency string (e.g., "$12.34").
func formatDollars(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := "$" + strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// formatConfidence renders a confidence fraction as a percentage ("93%").
func formatConfidence(c float64) string {
	return strconv.Itoa(int(c*100+0.5)) + "%"
}

// sanitizeInput removes control characters and trims whitespace from
// user-supplied text before it reaches the filter engine.
func sanitizeInput(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 32 || r == 127 {
			continue
		}
		out = append(out, r)
	}
	const maxLen = 200
	if len(out) > maxLen {
		out = out[:maxLen]
	}
	return strings.TrimSpace(string(out))
}

// money is a tiny alias used by view models.
func money(m core.Money) string { return formatDollars(m.Cents) }
