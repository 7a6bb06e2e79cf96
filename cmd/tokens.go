package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arnavsurve/crux/internal/compiler"
	"github.com/arnavsurve/crux/internal/compiler/token"
)

// tokenRow is the YAML shape of one token.
type tokenRow struct {
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`
	Kind   string `yaml:"kind"`
	Lexeme string `yaml:"lexeme,omitempty"`
}

// tokens: dump the scanner output
func newTokensCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tokens <source.crx>",
		Short: "Dump the token stream of a Crux source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Tokens.Format
			}
			toks, err := compiler.TokenizeFile(args[0], a.options())
			if err != nil {
				return err
			}
			return writeTokens(a.output(cmd), toks, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, yaml or text (default from config)")
	return cmd
}

func writeTokens(w io.Writer, toks []token.Token, format string) error {
	switch format {
	case "table":
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Line", "Col", "Kind", "Lexeme"})
		table.SetAutoFormatHeaders(false)
		for _, tok := range toks {
			table.Append([]string{
				strconv.Itoa(tok.Line),
				strconv.Itoa(tok.Column),
				tok.Type.String(),
				tok.Text(),
			})
		}
		table.Render()
		return nil
	case "yaml":
		rows := make([]tokenRow, 0, len(toks))
		for _, tok := range toks {
			rows = append(rows, tokenRow{Line: tok.Line, Column: tok.Column, Kind: tok.Type.String(), Lexeme: tok.Text()})
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encode tokens: %w", err)
		}
		return enc.Close()
	case "text":
		for _, tok := range toks {
			if _, err := fmt.Fprintln(w, tok); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown token format %q", format)
}
