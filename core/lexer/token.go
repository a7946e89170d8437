// Package lexer turns a line of shell input into a stream of tokens.
//
// A line is split into segments on unescaped separators, and each segment
// is split into words on whitespace. The first word of a segment names the
// program to run, the rest are its arguments. A single double-quoted span
// per segment is kept as one literal argument, quotes included.
package lexer

import "fmt"

const (
	// SeparatorChar ends one statement and starts the next.
	SeparatorChar = ';'
	// EscapeChar removes the special meaning of a following SeparatorChar.
	EscapeChar = '\\'
	// QuoteChar delimits a quoted literal.
	QuoteChar = '"'
	// QuitWord in first position ends the session.
	QuitWord = "quit"
)

// TokenKind identifies what a Token represents.
type TokenKind int

const (
	ProgramName TokenKind = iota
	Argument
	Separator
	Terminate
)

func (k TokenKind) String() string {
	switch k {
	case ProgramName:
		return "ProgramName"
	case Argument:
		return "Argument"
	case Separator:
		return "Separator"
	case Terminate:
		return "Terminate"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a single lexical unit. Text is a substring of the line it was
// read from and is empty for Separator and Terminate.
type Token struct {
	Kind TokenKind
	Text string
}

func (t Token) String() string {
	switch t.Kind {
	case Separator, Terminate:
		return t.Kind.String()
	default:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	}
}

// NewProgramName creates a ProgramName token.
func NewProgramName(text string) Token {
	return Token{Kind: ProgramName, Text: text}
}

// NewArgument creates an Argument token.
func NewArgument(text string) Token {
	return Token{Kind: Argument, Text: text}
}

// NewSeparator creates a Separator token.
func NewSeparator() Token {
	return Token{Kind: Separator}
}

// NewTerminate creates a Terminate token.
func NewTerminate() Token {
	return Token{Kind: Terminate}
}
