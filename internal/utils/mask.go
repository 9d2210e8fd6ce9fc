package utils

import "strings"

// MaskIdentifier keeps the last visible characters of an identifier, for logs
func MaskIdentifier(s string, visible int) string {
	if visible < 0 {
		visible = 0
	}
	if len(s) <= visible {
		return s
	}
	return strings.Repeat("*", len(s)-visible) + s[len(s)-visible:]
}

// ShortHash renders a 0x hash as 0x1234…abcd
func ShortHash(h string) string {
	if len(h) <= 14 {
		return h
	}
	return h[:6] + "…" + h[len(h)-4:]
}

// Truncate cuts s to maxLength runes, ending with "..." when shortened
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return "..."
	}
	return string(runes[:maxLength-3]) + "..."
}
