package parser

import (
	"strings"

	"github.com/josephlewis42/sheller/core/lexer"
)

// Build converts the tokens of one statement into a Directive.
//
// A statement starting with a Terminate token becomes a Terminate directive
// and any trailing arguments are accepted. Otherwise the statement must be
// a ProgramName followed only by Arguments.
func Build(tokens []lexer.Token) (Directive, error) {
	if len(tokens) == 0 {
		return Directive{}, lexer.NewParseError(lexer.ErrTokenOutOfPlace, lexer.Span{})
	}

	args, err := buildArgs(tokens[1:])
	if err != nil {
		return Directive{}, err
	}

	head := tokens[0]
	switch head.Kind {
	case lexer.Terminate:
		return NewTerminate(args...), nil
	case lexer.ProgramName:
		name, err := ownedString(head)
		if err != nil {
			return Directive{}, err
		}
		return NewRunCommand(name, args...), nil
	default:
		return Directive{}, outOfPlace(head)
	}
}

func buildArgs(tokens []lexer.Token) ([]string, error) {
	var args []string
	for _, tok := range tokens {
		if tok.Kind != lexer.Argument {
			return nil, outOfPlace(tok)
		}

		arg, err := ownedString(tok)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// ownedString copies the token's text so the result doesn't pin the input
// line in memory.
func ownedString(tok lexer.Token) (string, error) {
	if strings.IndexByte(tok.Text, 0) >= 0 {
		return "", lexer.NewParseError(lexer.ErrEmbeddedNullByte, lexer.Span{Text: tok.Text})
	}
	return strings.Clone(tok.Text), nil
}

func outOfPlace(tok lexer.Token) error {
	return lexer.NewParseError(lexer.ErrTokenOutOfPlace, lexer.Span{Text: tok.String()})
}
