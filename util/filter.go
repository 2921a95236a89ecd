package util

import (
	"strings"
	"unicode"
)

const maskRune = '*'

// FilterWords masks every case-insensitive occurrence of each banned word with
// a run of '*' of the same length. Matching ignores word boundaries.
func FilterWords(text string, words []string) string {
	runes := []rune(text)
	for _, word := range words {
		pattern := []rune(strings.TrimSpace(word))
		if len(pattern) == 0 {
			continue
		}
		for i := 0; i+len(pattern) <= len(runes); {
			if !matchFold(runes[i:i+len(pattern)], pattern) {
				i++
				continue
			}
			for j := range pattern {
				runes[i+j] = maskRune
			}
			i += len(pattern)
		}
	}
	return string(runes)
}

func matchFold(window, pattern []rune) bool {
	for i := range pattern {
		if !equalFold(window[i], pattern[i]) {
			return false
		}
	}
	return true
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	return unicode.ToLower(a) == unicode.ToLower(b) || unicode.ToUpper(a) == unicode.ToUpper(b)
}
