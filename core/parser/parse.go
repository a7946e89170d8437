package parser

import "github.com/josephlewis42/sheller/core/lexer"

// ParseLine tokenizes line and builds a directive for every non-empty
// statement, in order. If any statement fails, no directives are returned.
func ParseLine(line string, opts lexer.Options) ([]Directive, error) {
	tokens, err := lexer.Tokenize(line, opts)
	if err != nil {
		return nil, err
	}

	var directives []Directive
	for _, statement := range SplitStatements(tokens) {
		if len(statement) == 0 {
			continue
		}

		directive, err := Build(statement)
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)
	}

	return directives, nil
}

// SplitStatements cuts a token stream at each Separator token. The
// separators are dropped and empty statements are kept.
func SplitStatements(tokens []lexer.Token) [][]lexer.Token {
	var out [][]lexer.Token

	start := 0
	for i, tok := range tokens {
		if tok.Kind == lexer.Separator {
			out = append(out, tokens[start:i])
			start = i + 1
		}
	}

	return append(out, tokens[start:])
}
