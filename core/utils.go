package core

import "strings"

// CleanString trims surrounding whitespace and optionally lowers the
// result. Usernames and emails are stored in the lowered form.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanStrings maps CleanString over a slice and drops entries that end
// up empty. The result is never nil so callers can serialize it as an
// empty JSON array.
func CleanStrings(ss []string, lower ...bool) []string {
	cleaned := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = CleanString(s, lower...); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}
