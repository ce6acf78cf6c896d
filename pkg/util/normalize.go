package util

import "strings"

// NormalizeCase canonicalizes a free-text place name to Title Case so that
// "UTTAR PRADESH", "uttar pradesh", and "Uttar Pradesh" all form the same
// aggregation key. ASCII case folding only; the source data carries no
// accented names.
func NormalizeCase(s string) string {
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
