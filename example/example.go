package main

import (
	"context"
	"flag"
	"fmt"
	"math"

	"github.com/golang/glog"

	"github.com/sdifrance/gribtemplates"
	"github.com/sdifrance/gribtemplates/gribio"
	"github.com/sdifrance/gribtemplates/pdt"
	"github.com/sdifrance/gribtemplates/scaled"
)

var (
	input      = flag.String("input", "", "Path to a stream of GRIB2 template sections. When empty, a generated stream is used.")
	output     = flag.String("output", "", "Path the generated stream is written to when -input is empty.")
	gridPoints = flag.Int("grid_points", 64, "Grid size of the records.")
)

func main() {
	flag.Parse()
	if err := run(context.Background()); err != nil {
		glog.Exitf("got fatal error: %v", err)
	}
}

func run(ctx context.Context) error {
	path := *input
	if path == "" {
		if *output == "" {
			return fmt.Errorf("one of -input or -output is required")
		}
		if err := writeChemistry(*output, *gridPoints); err != nil {
			return err
		}
		path = *output
	}

	file, err := gribio.ReadPath(path)
	if err != nil {
		return fmt.Errorf("error parsing stream contents: %w", err)
	}
	records, errs := gribtemplates.DecodeRecords(ctx, file.Records(), gribtemplates.Context{GridPoints: *gridPoints}, 2)
	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	chem, err := extractChemistry(records)
	if err != nil {
		return err
	}
	for i, r := range records {
		glog.Infof("record[%d]: %+v", i, r.Summary)
	}
	glog.Infof("ozone mean %g, methane mean %g", mean(chem.ozone.Values()), mean(chem.methane.Values()))
	return nil
}

// writeChemistry writes 3 hour average ozone and methane mass densities at
// 2 m above ground.
func writeChemistry(path string, points int) error {
	var raw []gribtemplates.RawRecord
	for _, c := range []struct {
		chemical uint16
		base     float64
	}{{0, 4e-8}, {2, 1.2e-6}} {
		values := make([]float64, points)
		for i := range values {
			values[i] = c.base * (1 + 0.1*math.Sin(float64(i)/5))
		}
		product := &pdt.ChemicalStatistics{
			ParameterCategory: 20,
			Chemical:          c.chemical,
			Generating:        pdt.Generating{ProcessType: 2, TimeUnit: pdt.UnitOfTimeHour, ForecastTime: 6},
			FirstSurface:      pdt.Surface{Type: 103, Value: scaled.Value{Scaled: 2}},
			SecondSurface:     pdt.Surface{Type: pdt.MissingSurface, Value: scaled.Missing},
			Statistics: pdt.Statistics{
				Intervals: []pdt.IntervalSpec{{IncrementType: 2, RangeUnit: pdt.UnitOfTimeHour, RangeLength: 3}},
			},
		}
		rec, err := gribtemplates.NewSimpleRecord(product, values, nil, 12, 16)
		if err != nil {
			return err
		}
		r, err := gribtemplates.EncodeRecord(rec)
		if err != nil {
			return err
		}
		raw = append(raw, r)
	}
	return gribio.WritePath(path, raw)
}

type chemistry struct {
	ozone, methane *gribtemplates.Record
}

func extractChemistry(records []*gribtemplates.Record) (*chemistry, error) {
	out := &chemistry{
		ozone:   findByName(records, "MASSDEN_O33Hr_AVG"),
		methane: findByName(records, "MASSDEN_CH43Hr_AVG"),
	}
	if out.ozone == nil {
		return nil, fmt.Errorf("missing ozone record (MASSDEN_O33Hr_AVG)")
	}
	if out.methane == nil {
		return nil, fmt.Errorf("missing methane record (MASSDEN_CH43Hr_AVG)")
	}
	return out, nil
}

func findByName(records []*gribtemplates.Record, name string) *gribtemplates.Record {
	return find(records, func(r *gribtemplates.Record) (*gribtemplates.Record, bool) {
		if r.Summary.Name == name {
			return r, true
		}
		return nil, false
	}, nil)
}

func find[E, R any](slice []E, predicate func(E) (R, bool), defaultOutput R) R {
	for _, e := range slice {
		if r, ok := predicate(e); ok {
			return r
		}
	}
	return defaultOutput
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
