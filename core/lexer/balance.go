package lexer

import "strings"

// IsBalanced reports whether delim pairs off in text, working inward from
// the first and last occurrences. Nesting order isn't checked, only that
// every occurrence has a partner on the opposite side.
func IsBalanced(text string, delim rune) bool {
	for {
		first := strings.IndexRune(text, delim)
		if first < 0 {
			return true
		}

		last := strings.LastIndex(text, string(delim))
		if first == last {
			return false
		}

		text = text[first+len(string(delim)) : last]
	}
}
