package cmd

import (
	"fmt"
	"math"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/sdifrance/gribtemplates"
	"github.com/sdifrance/gribtemplates/drt"
	"github.com/sdifrance/gribtemplates/dt"
	"github.com/sdifrance/gribtemplates/gribio"
	"github.com/sdifrance/gribtemplates/pdt"
	"github.com/sdifrance/gribtemplates/scaled"
)

func newSampleCmd(s *settings) *cobra.Command {
	var points int
	cmd := &cobra.Command{
		Use:   "sample <file>",
		Short: "Write a stream of synthetic records",
		Long: `Write three synthetic records on a grid of --points points:

  1. 3 hour average ozone mass density at 2 m (template 4.42), simple
     packing with a bitmap.
  2. Simulated brightness temperature (template 4.32), simple packing.
  3. The same brightness temperature stored as IEEE floats (template 5.4).

Example:
  gribtmpl sample /tmp/sample.grb2.bz2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if points < 1 {
				return fmt.Errorf("--points must be at least 1, got %d", points)
			}
			records, err := sampleRecords(points)
			if err != nil {
				return err
			}
			raw := make([]gribtemplates.RawRecord, len(records))
			for i, rec := range records {
				if raw[i], err = gribtemplates.EncodeRecord(rec); err != nil {
					return fmt.Errorf("failed to encode record %d: %w", i+1, err)
				}
			}
			if err := gribio.WritePath(args[0], raw); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}
			glog.Infof("wrote %d records of %d points to %s", len(raw), points, args[0])
			return nil
		},
	}
	cmd.Flags().IntVar(&points, "points", 100, "grid points per record")
	return cmd
}

func sampleRecords(points int) ([]*gribtemplates.Record, error) {
	gen := pdt.Generating{ProcessType: 2, ProcessID: 96, TimeUnit: pdt.UnitOfTimeHour, ForecastTime: 6}

	ozone := make([]float64, points)
	bitmap := make([]bool, points)
	for i := range ozone {
		bitmap[i] = i%7 != 3
		ozone[i] = 4e-8 + 1e-8*math.Sin(float64(i)/8)
	}
	chem := &pdt.ChemicalStatistics{
		ParameterCategory: 20,
		Generating:        gen,
		FirstSurface:      pdt.Surface{Type: 103, Value: scaled.Value{Scaled: 2}},
		SecondSurface:     pdt.Surface{Type: pdt.MissingSurface, Value: scaled.Missing},
		Statistics: pdt.Statistics{
			End:       pdt.EndTime{Year: 2024, Month: 2, Day: 29, Hour: 21},
			Intervals: []pdt.IntervalSpec{{StatisticalProcess: 0, IncrementType: 2, RangeUnit: pdt.UnitOfTimeHour, RangeLength: 3}},
		},
	}
	first, err := gribtemplates.NewSimpleRecord(chem, ozone, bitmap, 12, 16)
	if err != nil {
		return nil, err
	}

	bt := make([]float64, points)
	for i := range bt {
		bt[i] = 250 + 40*math.Cos(float64(i)/11)
	}
	sat := &pdt.Satellite{
		ParameterCategory: 4,
		ParameterNumber:   4,
		Generating:        gen,
		// GOES-16 ABI band 14, 11.2 um.
		Bands: []pdt.BandInfo{{SatelliteSeries: 333, SatelliteNumber: 16, InstrumentType: 207, CentralWaveNumber: scaled.Value{Scaled: 89286}}},
	}
	second, err := gribtemplates.NewSimpleRecord(sat, bt, nil, 2, 14)
	if err != nil {
		return nil, err
	}

	rep := &drt.IEEE{Header: drt.Header{DataPoints: uint32(points)}, Precision: drt.PrecisionSingle}
	data, err := dt.New(rep, dt.Field{GridPoints: points, Values: bt}, nil)
	if err != nil {
		return nil, err
	}
	third := &gribtemplates.Record{Product: sat, Representation: rep, Data: data}

	return []*gribtemplates.Record{first, second, third}, nil
}
