package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sdifrance/gribtemplates"
)

func newDumpCmd(s *settings) *cobra.Command {
	var values bool
	cmd := &cobra.Command{
		Use:   "dump <file>...",
		Short: "Print every template of every record",
		Long: `Print the product definition and data representation templates of every
record, one field per line.

Example:
  gribtmpl dump --values forecast.grb2.bz2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				records, errs, err := s.decodeFile(cmd.Context(), path)
				if err != nil {
					return err
				}
				for i, rec := range records {
					fmt.Fprintln(w, header("%s: record %d", path, i+1))
					if errs[i] != nil {
						fmt.Fprintln(w, color.RedString("error: %v", errs[i]))
						failed++
						continue
					}
					if err := s.dumpRecord(w, rec, values); err != nil {
						return err
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d records could not be decoded", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&values, "values", false, "print the decoded data values")
	return cmd
}

func (s *settings) dumpRecord(w io.Writer, rec *gribtemplates.Record, values bool) error {
	fmt.Fprintln(w, color.YellowString("Product definition template 4.%d", rec.Product.Number()))
	if err := rec.Product.Print(w, s.config.Discipline, s.catalog); err != nil {
		return err
	}
	fmt.Fprintln(w, color.YellowString("Data representation template 5.%d", rec.Representation.Number()))
	if err := rec.Representation.Print(w); err != nil {
		return err
	}
	if rec.Bitmap != nil {
		present := 0
		for _, b := range rec.Bitmap {
			if b {
				present++
			}
		}
		fmt.Fprintf(w, "Bitmap: %d of %d points present\n", present, len(rec.Bitmap))
	}
	if !values {
		return nil
	}
	fmt.Fprintln(w, color.YellowString("Data template 7.%d", rec.Data.Number()))
	if err := rec.Data.Print(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
