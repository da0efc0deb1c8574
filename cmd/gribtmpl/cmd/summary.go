package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sdifrance/gribtemplates/pdt"
)

func newSummaryCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <file>...",
		Short: "Print a one-line inventory of every record",
		Long: `Print one line per record: its short name, units, level, forecast time
and lead time from the reference time.

Example:
  gribtmpl summary --discipline 0 chem.grb2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			failed := 0
			for _, path := range args {
				records, errs, err := s.decodeFile(cmd.Context(), path)
				if err != nil {
					return err
				}
				for i, rec := range records {
					if errs[i] != nil {
						fmt.Fprintf(tw, "%s:%d\t%s\n", path, i+1, color.RedString("error: %v", errs[i]))
						failed++
						continue
					}
					lead := time.Duration(rec.Product.ForecastLeadSeconds()) * time.Second
					fmt.Fprintf(tw, "%s:%d\t%s\t%s\t%s\t%s\tlead=%s\n",
						path, i+1, rec.Summary.Name, rec.Summary.Units, level(rec.Summary), rec.Summary.ForecastTime, lead)
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d records could not be decoded", failed)
			}
			return nil
		},
	}
}

// level formats the level of s as "TYPE value", or "TYPE value1-value2" for a
// layer.
func level(s pdt.Summary) string {
	if s.LevelValue2 == pdt.MissingLevel || s.LevelValue2 == s.LevelValue {
		return fmt.Sprintf("%s %g", s.LevelType, s.LevelValue)
	}
	return fmt.Sprintf("%s %g-%g", s.LevelType, s.LevelValue, s.LevelValue2)
}

