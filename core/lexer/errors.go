package lexer

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalancedQuote is returned when quote delimiters don't pair off.
	ErrUnbalancedQuote = errors.New("unbalanced quote")
	// ErrQuoteInsideUnquotedSegment is returned when a quote delimiter shows
	// up in text that should be free of them.
	ErrQuoteInsideUnquotedSegment = errors.New("quote inside unquoted segment")
	// ErrTokenOutOfPlace is returned when a token appears somewhere its kind
	// isn't allowed.
	ErrTokenOutOfPlace = errors.New("token out of place")
	// ErrEmbeddedNullByte is returned for words that can't be passed to exec.
	ErrEmbeddedNullByte = errors.New("embedded null byte")
)

// Span locates a piece of text within the line being parsed.
type Span struct {
	// Offset is the byte offset of Text in the line.
	Offset int
	Text   string
}

// ParseError describes why a line couldn't be parsed. It wraps one of the
// Err* sentinels so callers can use errors.Is.
type ParseError struct {
	Kind error
	Span Span
}

// NewParseError creates a ParseError of the given kind.
func NewParseError(kind error, span Span) *ParseError {
	return &ParseError{Kind: kind, Span: span}
}

func (e *ParseError) Error() string {
	if e.Span.Text == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s at %d: %q", e.Kind, e.Span.Offset, e.Span.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// shift moves the error's span right by offset bytes.
func (e *ParseError) shift(offset int) *ParseError {
	e.Span.Offset += offset
	return e
}
