package util

import (
	"fmt"
	"strings"
)

// FormatNumber formats a numeric cell: thousands separators, 2 decimals.
func FormatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPercent formats a percentage cell: 2 decimals, no separators.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
