package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestWriteTokens(t *testing.T) {
	cases := map[string]struct {
		line   string
		legacy bool
	}{
		"simple":                  {line: "echo hi; quit"},
		"quoted_separator":        {line: `echo "a;b" c`},
		"legacy_quoted_separator": {line: `echo "a;b" c`, legacy: true},
		"escaped_separator":       {line: `echo a\;b`},
		"empty_statements":        {line: ";; ls"},
		"quit_with_args":          {line: "quit now"},
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			out := &bytes.Buffer{}
			if err := writeTokens(out, tc.line, !tc.legacy); err != nil {
				t.Fatal(err)
			}

			g.Assert(t, tn, out.Bytes())
		})
	}
}
