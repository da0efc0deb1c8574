package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sdifrance/gribtemplates"
	"github.com/sdifrance/gribtemplates/catalog"
	"github.com/sdifrance/gribtemplates/gribio"
	"github.com/sdifrance/gribtemplates/internal/config"
)

// settings is the effective configuration shared by the subcommands. It is
// filled in before any subcommand runs.
type settings struct {
	config  *config.Config
	catalog *catalog.Table
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:   "gribtmpl",
		Short: "Inspect and write GRIB2 template sections",
		Long: `gribtmpl decodes the product definition, data representation, bitmap and
data sections of GRIB2 records and prints them, summarises them or lists
the code tables used to name them.

Files whose name ends in .bz2 are read and written bzip2 compressed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(cmd.Flags())
		},
	}

	f := root.PersistentFlags()
	f.String("config", "", "YAML configuration file")
	f.String("catalog", "", "YAML code tables laid over the built-in tables")
	f.Bool("color", true, "highlight record headers")
	f.Int("grid-points", 0, "grid size used to read bitmaps (0 derives it from the bitmap)")
	f.Uint8("discipline", 0, "product discipline, code table 0.0")
	f.Int("workers", 4, "records decoded in parallel")
	f.AddGoFlagSet(flag.CommandLine)

	root.AddCommand(
		newDumpCmd(s),
		newSummaryCmd(s),
		newTablesCmd(s),
		newSampleCmd(s),
		newConfigCmd(s),
	)
	return root
}

// Execute runs the command line and exits with status 1 on failure.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}

// load builds the effective configuration: defaults, then the --config file,
// then any flag given explicitly.
func (s *settings) load(flags *pflag.FlagSet) error {
	// glog complains when it logs before the standard flag set is parsed.
	if !flag.Parsed() {
		if err := flag.CommandLine.Parse(nil); err != nil {
			return fmt.Errorf("failed to parse logging flags: %w", err)
		}
	}

	c := config.DefaultConfig()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		c = loaded
	}
	if flags.Changed("catalog") {
		c.CatalogPath, _ = flags.GetString("catalog")
	}
	if flags.Changed("color") {
		c.Color, _ = flags.GetBool("color")
	}
	if flags.Changed("grid-points") {
		c.GridPoints, _ = flags.GetInt("grid-points")
	}
	if flags.Changed("discipline") {
		c.Discipline, _ = flags.GetUint8("discipline")
	}
	if flags.Changed("workers") {
		c.Workers, _ = flags.GetInt("workers")
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	t, err := c.Catalog()
	if err != nil {
		return err
	}
	if !c.Color {
		color.NoColor = true
	}
	s.config, s.catalog = c, t
	glog.V(1).Infof("effective config: %+v", *c)
	return nil
}

func (s *settings) context() gribtemplates.Context {
	return gribtemplates.Context{
		Discipline: s.config.Discipline,
		GridPoints: s.config.GridPoints,
		Catalog:    s.catalog,
	}
}

// decodeFile reads the stream at path and decodes its records. Per-record
// failures are returned in errs; err reports a stream that cannot be read.
func (s *settings) decodeFile(ctx context.Context, path string) (records []*gribtemplates.Record, errs []error, err error) {
	f, err := gribio.ReadPath(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	glog.V(1).Infof("%s: %d records", path, len(f.Records()))
	records, errs = gribtemplates.DecodeRecords(ctx, f.Records(), s.context(), s.config.Workers)
	return records, errs, nil
}

func header(format string, a ...interface{}) string {
	return color.New(color.FgCyan, color.Bold).Sprintf(format, a...)
}
