package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/crux/internal/compiler/grammar"
)

// first: print FIRST sets
func newFirstCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "first [NONTERMINAL]...",
		Short: "Print the FIRST-set table of the Crux grammar",
		Long: `Print the FIRST set of each named nonterminal, or of every
nonterminal when none is named. Names are upper snake case, e.g. EXPRESSION0.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			nts := grammar.NonTerminals()
			if len(args) > 0 {
				nts = nts[:0:0]
				for _, name := range args {
					nt, ok := grammar.Lookup(strings.ToUpper(name))
					if !ok {
						return fmt.Errorf("unknown nonterminal %q", name)
					}
					nts = append(nts, nt)
				}
			}
			writeFirstSets(cmd.OutOrStdout(), nts)
			return nil
		},
	}
}

func writeFirstSets(w io.Writer, nts []grammar.NonTerminal) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Nonterminal", "First set"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, nt := range nts {
		kinds := nt.FirstSet().Kinds()
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}
		table.Append([]string{nt.String(), strings.Join(names, " ")})
	}
	table.Render()
}
