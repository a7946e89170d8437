package lexer

// FindSeparators returns the rune positions of every unescaped separator in
// line. A separator directly after an escape is escaped, unless that escape
// is itself escaped. Only two characters of look-behind are used, so runs of
// three or more escapes are treated the same as two.
//
// Quote state isn't consulted: a separator inside a quoted literal still
// splits the line. Use FindUnquotedSeparators for quote-aware scanning.
func FindSeparators(line string) []int {
	return scanSeparators(line, false)
}

// FindUnquotedSeparators is like FindSeparators but ignores separators that
// fall between a pair of quote delimiters. Quote state flips on every
// delimiter, so a separator between two nested pairs still splits the line.
func FindUnquotedSeparators(line string) []int {
	return scanSeparators(line, true)
}

func scanSeparators(line string, quoteAware bool) []int {
	positions := []int{}

	// prev1 and prev2 are the one and two characters before the current
	// one; zero means no such character.
	var prev1, prev2 rune
	inQuote := false

	pos := 0
	for _, r := range line {
		switch {
		case quoteAware && r == QuoteChar:
			inQuote = !inQuote
		case r != SeparatorChar, inQuote:
			// not a candidate
		case prev1 != EscapeChar:
			positions = append(positions, pos)
		case prev2 == EscapeChar:
			// The escape is escaped, so the separator stands.
			positions = append(positions, pos)
		}

		prev2, prev1 = prev1, r
		pos++
	}

	return positions
}

// SplitExclusive cuts line at each of the strictly increasing rune positions
// and drops the character at each position. It always returns
// len(positions)+1 substrings, some of which may be empty.
func SplitExclusive(line string, positions []int) []string {
	out := make([]string, 0, len(positions)+1)

	start := 0
	next := 0
	pos := 0
	for offset, r := range line {
		if next >= len(positions) {
			break
		}
		if pos == positions[next] {
			out = append(out, line[start:offset])
			start = offset + len(string(r))
			next++
		}
		pos++
	}

	return append(out, line[start:])
}

// byteOffsets returns the byte offset of each substring produced by
// SplitExclusive(line, positions).
func byteOffsets(line string, positions []int) []int {
	out := make([]int, 0, len(positions)+1)
	out = append(out, 0)

	next := 0
	pos := 0
	for offset, r := range line {
		if next >= len(positions) {
			break
		}
		if pos == positions[next] {
			out = append(out, offset+len(string(r)))
			next++
		}
		pos++
	}

	return out
}
