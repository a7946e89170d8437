package lexer

import (
	"strings"
	"unicode"
)

// Options control how a full line is tokenized.
type Options struct {
	// QuoteAwareSeparators keeps separators inside quoted literals from
	// splitting the line.
	QuoteAwareSeparators bool
}

// Tokenize splits line into segments and tokenizes each one. Segments are
// joined by Separator tokens, so a line with n separators always produces
// n Separator tokens, even around empty segments. Error spans are relative
// to the start of line.
func Tokenize(line string, opts Options) ([]Token, error) {
	var positions []int
	if opts.QuoteAwareSeparators {
		positions = FindUnquotedSeparators(line)
	} else {
		positions = FindSeparators(line)
	}

	segments := SplitExclusive(line, positions)
	offsets := byteOffsets(line, positions)

	var tokens []Token
	for i, segment := range segments {
		if i > 0 {
			tokens = append(tokens, NewSeparator())
		}

		segmentTokens, err := TokenizeAtomic(segment)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				return nil, pe.shift(offsets[i])
			}
			return nil, err
		}
		tokens = append(tokens, segmentTokens...)
	}

	return tokens, nil
}

// TokenizeAtomic tokenizes a single segment that contains no separators.
//
// The text between the first and last quote delimiter is treated as one
// literal argument with its quotes intact. Text on either side of it is
// split on whitespace. The first word becomes a ProgramName, or a Terminate
// if it is exactly QuitWord; everything after it is an Argument.
func TokenizeAtomic(segment string) ([]Token, error) {
	first := strings.IndexRune(segment, QuoteChar)
	if first < 0 {
		words, err := splitWords(segment, 0)
		if err != nil {
			return nil, err
		}
		return classify(words), nil
	}

	last := strings.LastIndex(segment, string(QuoteChar))
	end := last + len(string(QuoteChar))
	quoted := segment[first:end]
	if !IsBalanced(quoted, QuoteChar) {
		return nil, NewParseError(ErrUnbalancedQuote, Span{Offset: first, Text: quoted})
	}

	before, err := splitWords(segment[:first], 0)
	if err != nil {
		return nil, err
	}
	after, err := splitWords(segment[end:], end)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, len(before)+1+len(after))
	words = append(words, before...)
	words = append(words, quoted)
	words = append(words, after...)
	return classify(words), nil
}

// splitWords splits text on whitespace. Quote delimiters aren't allowed in
// the result; offset is where text starts in its segment and is only used
// for error reporting.
func splitWords(text string, offset int) ([]string, error) {
	if i := strings.IndexRune(text, QuoteChar); i >= 0 {
		return nil, NewParseError(ErrQuoteInsideUnquotedSegment, Span{Offset: offset, Text: text})
	}

	return strings.FieldsFunc(text, unicode.IsSpace), nil
}

func classify(words []string) []Token {
	tokens := make([]Token, 0, len(words))
	for i, word := range words {
		switch {
		case i == 0 && word == QuitWord:
			tokens = append(tokens, NewTerminate())
		case i == 0:
			tokens = append(tokens, NewProgramName(word))
		default:
			tokens = append(tokens, NewArgument(word))
		}
	}
	return tokens
}
