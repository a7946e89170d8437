package cmd

import (
	"fmt"
	"io"

	"github.com/josephlewis42/sheller/core/lexer"
	"github.com/josephlewis42/sheller/core/parser"
	"github.com/spf13/cobra"
)

var legacySeparators bool

// tokensCmd shows how a line is parsed without running it
var tokensCmd = &cobra.Command{
	Use:   "tokens LINE",
	Short: "Show the tokens and directives for a line.",
	Long: `Show how the shell splits, tokenizes and builds a line.

Nothing is executed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return writeTokens(cmd.OutOrStdout(), args[0], !legacySeparators)
	},
}

func writeTokens(w io.Writer, line string, quoteAware bool) error {
	fmt.Fprintf(w, "line: %q\n", line)

	if quoteAware {
		fmt.Fprintf(w, "separators: %v\n", lexer.FindUnquotedSeparators(line))
	} else {
		fmt.Fprintf(w, "separators: %v\n", lexer.FindSeparators(line))
	}

	opts := lexer.Options{QuoteAwareSeparators: quoteAware}
	tokens, err := lexer.Tokenize(line, opts)
	if err != nil {
		_, err = fmt.Fprintf(w, "error: %v\n", err)
		return err
	}

	fmt.Fprintln(w, "tokens:")
	for _, tok := range tokens {
		fmt.Fprintf(w, "  %v\n", tok)
	}

	directives, err := parser.ParseLine(line, opts)
	if err != nil {
		_, err = fmt.Fprintf(w, "error: %v\n", err)
		return err
	}

	fmt.Fprintln(w, "directives:")
	for _, directive := range directives {
		fmt.Fprintf(w, "  %v\n", directive)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().BoolVar(&legacySeparators, "legacy-separators", false, "split on separators inside quotes")
}
