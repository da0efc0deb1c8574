package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTablesCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "tables [parameters|surfaces|chemicals]",
		Short: "List the code table entries used to name products",
		Long: `List the parameter, fixed surface or chemical constituent entries of the
effective code tables: the built-in tables with any --catalog file laid
over them. Parameters are listed when no table is named.`,
		ValidArgs: []string{"parameters", "surfaces", "chemicals"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "parameters"
			if len(args) == 1 {
				which = args[0]
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			switch which {
			case "parameters":
				for _, k := range s.catalog.ParameterKeys() {
					e := s.catalog.Parameter(k.Discipline, k.Category, k.Number)
					fmt.Fprintf(tw, "%d.%d.%d\t%s\t%s\t%s\n", k.Discipline, k.Category, k.Number, e.Name, e.Units, e.LongName)
				}
			case "surfaces":
				for _, code := range s.catalog.SurfaceCodes() {
					e, _ := s.catalog.Surface(code)
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", code, e.Name, e.Units, e.LongName)
				}
			case "chemicals":
				for _, code := range s.catalog.ChemicalCodes() {
					e := s.catalog.Chemical(code)
					fmt.Fprintf(tw, "%d\t%s\t%s\n", code, e.Name, e.LongName)
				}
			}
			return tw.Flush()
		},
	}
}
