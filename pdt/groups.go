package pdt

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/golang/glog"

	"github.com/sdifrance/gribtemplates/catalog"
	"github.com/sdifrance/gribtemplates/internal/octet"
	"github.com/sdifrance/gribtemplates/scaled"
)

// Generating describes the process that produced the data and the forecast
// time. It occupies 11 octets.
type Generating struct {
	ProcessType       uint8 // code table 4.3
	BackgroundProcess uint8
	ProcessID         uint8
	CutoffHours       uint16
	CutoffMinutes     uint8
	TimeUnit          UnitOfTime
	ForecastTime      uint32
}

func (g *Generating) read(r *octet.Reader) {
	g.ProcessType = r.Uint8()
	g.BackgroundProcess = r.Uint8()
	g.ProcessID = r.Uint8()
	g.CutoffHours = r.Uint16()
	g.CutoffMinutes = r.Uint8()
	g.TimeUnit = UnitOfTime(r.Uint8())
	g.ForecastTime = r.Uint32()
}

func (g *Generating) write(w *octet.Writer) {
	w.Uint8(g.ProcessType)
	w.Uint8(g.BackgroundProcess)
	w.Uint8(g.ProcessID)
	w.Uint16(g.CutoffHours)
	w.Uint8(g.CutoffMinutes)
	w.Uint8(uint8(g.TimeUnit))
	w.Uint32(g.ForecastTime)
}

func (g *Generating) leadSeconds() int64 {
	return span(int64(g.ForecastTime), g.TimeUnit)
}

func (g *Generating) print(p *printer, c catalog.Catalog) {
	p.printf("Type of generating process: %s\n", c.GeneratingProcessType(g.ProcessType))
	p.printf("Background generating process identifier %d\n", g.BackgroundProcess)
	p.printf("Generating process identifier: Generating Process ID %d\n", g.ProcessID)
	p.printf("Hours of observational data cutoff after reference time %d\n", g.CutoffHours)
	p.printf("Minutes of observational data cutoff after reference time %d\n", g.CutoffMinutes)
	p.printf("Forecast time is %d %s\n", g.ForecastTime, g.TimeUnit)
}

// span converts n units of time to seconds. Unknown units count as zero.
// Spans beyond the int64 range saturate at math.MaxInt64.
func span(n int64, u UnitOfTime) int64 {
	s, ok := u.Seconds()
	if !ok {
		glog.Warningf("unknown unit of time %d, counting %d of them as 0 seconds", u, n)
		return 0
	}
	if n > 0 && s > math.MaxInt64/n {
		glog.Warningf("%d units of time %d overflow, counting them as %d seconds", n, u, int64(math.MaxInt64))
		return math.MaxInt64
	}
	return n * s
}

// addSeconds adds two non-negative second counts, saturating at
// math.MaxInt64.
func addSeconds(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// BandInfo describes one spectral band of a satellite product.
type BandInfo struct {
	SatelliteSeries   uint16
	SatelliteNumber   uint16
	InstrumentType    uint16
	CentralWaveNumber scaled.Value // m^-1
}

func readBands(r *octet.Reader, n int) []BandInfo {
	if n == 0 || !r.Need(n*BandSize) {
		return nil
	}
	bands := make([]BandInfo, n)
	for i := range bands {
		b := &bands[i]
		b.SatelliteSeries = r.Uint16()
		b.SatelliteNumber = r.Uint16()
		b.InstrumentType = r.Uint16()
		b.CentralWaveNumber = r.Scaled()
	}
	return bands
}

func writeBands(w *octet.Writer, bands []BandInfo) {
	for _, b := range bands {
		w.Uint16(b.SatelliteSeries)
		w.Uint16(b.SatelliteNumber)
		w.Uint16(b.InstrumentType)
		w.Scaled(b.CentralWaveNumber)
	}
}

func printBands(p *printer, bands []BandInfo) {
	p.printf("Number of contributing spectral bands (NB) %d\n", len(bands))
	for i, b := range bands {
		p.printf("  Band number %d\n", i)
		p.printf("    Satellite series is %d\n", b.SatelliteSeries)
		p.printf("    Satellite number is %d\n", b.SatelliteNumber)
		p.printf("    Instrument type is %d\n", b.InstrumentType)
		p.printf("    Central wave number scale factor is %d\n", b.CentralWaveNumber.Factor)
		p.printf("    Scaled central wave number is %d\n", b.CentralWaveNumber.Scaled)
		p.printf("\n")
	}
}

// IntervalSpec describes one time range of a statistically processed field.
type IntervalSpec struct {
	StatisticalProcess uint8 // code table 4.10
	IncrementType      uint8 // code table 4.11
	RangeUnit          UnitOfTime
	RangeLength        uint32
	IncrementUnit      UnitOfTime
	Increment          uint32
}

// Accumulating reports whether successive fields of the interval advance the
// forecast time, which moves the end of the product's valid time.
func (s IntervalSpec) Accumulating() bool {
	return s.IncrementType == 2 || s.IncrementType == 4
}

func (s IntervalSpec) rangeSeconds() int64 {
	return span(int64(s.RangeLength), s.RangeUnit)
}

// EnsembleInfo identifies a member of an ensemble forecast.
type EnsembleInfo struct {
	EnsembleType        uint8 // code table 4.6
	PerturbationNumber  uint8
	ForecastsInEnsemble uint8
}

func (e *EnsembleInfo) read(r *octet.Reader) {
	e.EnsembleType = r.Uint8()
	e.PerturbationNumber = r.Uint8()
	e.ForecastsInEnsemble = r.Uint8()
}

func (e *EnsembleInfo) write(w *octet.Writer) {
	w.Uint8(e.EnsembleType)
	w.Uint8(e.PerturbationNumber)
	w.Uint8(e.ForecastsInEnsemble)
}

func (e *EnsembleInfo) print(p *printer, c catalog.Catalog) {
	p.printf("Type of ensemble forecast: %s\n", c.EnsembleType(e.EnsembleType))
	p.printf("Perturbation Number %d\n", e.PerturbationNumber)
	p.printf("Number of forecasts in ensemble %d\n", e.ForecastsInEnsemble)
}

// MissingSurface is the surface type of an absent fixed surface.
const MissingSurface = 255

// Surface is a fixed surface, code table 4.5, with its scaled value.
type Surface struct {
	Type  uint8
	Value scaled.Value
}

func (s *Surface) read(r *octet.Reader) {
	s.Type = r.Uint8()
	s.Value = r.Scaled()
}

func (s *Surface) write(w *octet.Writer) {
	w.Uint8(s.Type)
	w.Scaled(s.Value)
}

func (s *Surface) print(p *printer, c catalog.Catalog, ordinal string) {
	p.printf("Type of %s fixed surface is %d\n", ordinal, s.Type)
	e, ok := c.Surface(s.Type)
	if !ok || s.Type == MissingSurface {
		p.printf("    unknown/missing %s surface type\n", ordinal)
		return
	}
	p.printf("    Surface name '%s'\n", e.Name)
	p.printf("       long name '%s'\n", e.LongName)
	p.printf("           units '%s'\n", e.Units)
	p.printf("    Scale factor of %s fixed surface %d\n", ordinal, s.Value.Factor)
	p.printf("    Scale value of %s fixed surface %d\n", ordinal, s.Value.Scaled)
}

// EndTime is the end of the overall time interval of a statistically
// processed field.
type EndTime struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// Time returns the end time in UTC.
func (e EndTime) Time() time.Time {
	return time.Date(int(e.Year), time.Month(e.Month), int(e.Day), int(e.Hour), int(e.Minute), int(e.Second), 0, time.UTC)
}

// EndTimeOf returns the EndTime fields of t in UTC.
func EndTimeOf(t time.Time) EndTime {
	t = t.UTC()
	return EndTime{
		Year:   uint16(t.Year()),
		Month:  uint8(t.Month()),
		Day:    uint8(t.Day()),
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Second: uint8(t.Second()),
	}
}

// Statistics holds the time ranges of a statistically processed field.
type Statistics struct {
	End           EndTime
	MissingValues uint32
	Intervals     []IntervalSpec
}

func (s *Statistics) read(r *octet.Reader) {
	s.End.Year = r.Uint16()
	s.End.Month = r.Uint8()
	s.End.Day = r.Uint8()
	s.End.Hour = r.Uint8()
	s.End.Minute = r.Uint8()
	s.End.Second = r.Uint8()
	n := int(r.Uint8())
	s.MissingValues = r.Uint32()
	s.Intervals = nil
	if n == 0 || !r.Need(n*IntervalSize) {
		return
	}
	s.Intervals = make([]IntervalSpec, n)
	for i := range s.Intervals {
		iv := &s.Intervals[i]
		iv.StatisticalProcess = r.Uint8()
		iv.IncrementType = r.Uint8()
		iv.RangeUnit = UnitOfTime(r.Uint8())
		iv.RangeLength = r.Uint32()
		iv.IncrementUnit = UnitOfTime(r.Uint8())
		iv.Increment = r.Uint32()
	}
}

func (s *Statistics) write(w *octet.Writer) {
	w.Uint16(s.End.Year)
	w.Uint8(s.End.Month)
	w.Uint8(s.End.Day)
	w.Uint8(s.End.Hour)
	w.Uint8(s.End.Minute)
	w.Uint8(s.End.Second)
	w.Uint8(uint8(len(s.Intervals)))
	w.Uint32(s.MissingValues)
	for _, iv := range s.Intervals {
		w.Uint8(iv.StatisticalProcess)
		w.Uint8(iv.IncrementType)
		w.Uint8(uint8(iv.RangeUnit))
		w.Uint32(iv.RangeLength)
		w.Uint8(uint8(iv.IncrementUnit))
		w.Uint32(iv.Increment)
	}
}

func (s *Statistics) length() int { return len(s.Intervals) * IntervalSize }

// totalSeconds sums the length of every interval.
func (s *Statistics) totalSeconds() int64 {
	var total int64
	for _, iv := range s.Intervals {
		total = addSeconds(total, iv.rangeSeconds())
	}
	return total
}

// accumulatedSeconds sums the length of the intervals that advance the
// forecast time.
func (s *Statistics) accumulatedSeconds() int64 {
	var total int64
	for _, iv := range s.Intervals {
		if iv.Accumulating() {
			total = addSeconds(total, iv.rangeSeconds())
		}
	}
	return total
}

// lastLabel is the summary name suffix built from the last interval, e.g.
// "3Hr_AVG". It is empty when there are no intervals.
func (s *Statistics) lastLabel(c catalog.Catalog) string {
	if len(s.Intervals) == 0 {
		return ""
	}
	last := s.Intervals[len(s.Intervals)-1]
	suffix, _ := c.StatisticalProcess(last.StatisticalProcess)
	return last.RangeUnit.Label(int64(last.RangeLength)) + suffix
}

// totalLabel is like lastLabel but uses the summed length of all intervals.
func (s *Statistics) totalLabel(c catalog.Catalog) string {
	if len(s.Intervals) == 0 {
		return ""
	}
	last := s.Intervals[len(s.Intervals)-1]
	var total int64
	for _, iv := range s.Intervals {
		total += int64(iv.RangeLength)
		if iv.RangeUnit != last.RangeUnit {
			glog.Warningf("time range units differ between intervals (%d and %d)", iv.RangeUnit, last.RangeUnit)
		}
		if iv.StatisticalProcess != last.StatisticalProcess {
			glog.Warningf("statistical processes differ between intervals (%d and %d)", iv.StatisticalProcess, last.StatisticalProcess)
		}
	}
	suffix, _ := c.StatisticalProcess(last.StatisticalProcess)
	return last.RangeUnit.Label(total) + suffix
}

func (s *Statistics) print(p *printer, c catalog.Catalog) {
	e := s.End
	p.printf("Time of end of overall time interval %4d%02d%02d%02d%02d%02d\n", e.Year, e.Month, e.Day, e.Hour, e.Minute, e.Second)
	p.printf("Number of time range specifications %d\n", len(s.Intervals))
	p.printf("Total number of missing values %d\n", s.MissingValues)
	for _, iv := range s.Intervals {
		_, desc := c.StatisticalProcess(iv.StatisticalProcess)
		p.printf("Statistical process: %s\n", desc)
		p.printf("    Type of time increment between successive fields: \n")
		p.printf("        %s\n", c.TimeIncrementType(iv.IncrementType))
		p.printf("    Length of the time range %d %s\n", iv.RangeLength, iv.RangeUnit)
		p.printf("    Time increment between successive fields %d %s\n", iv.Increment, iv.IncrementUnit)
	}
}

// Range is an interval of sizes or wavelengths, code table 4.91.
type Range struct {
	Type          uint8
	First, Second scaled.Value
}

func (rg *Range) read(r *octet.Reader) {
	rg.Type = r.Uint8()
	rg.First = r.Scaled()
	rg.Second = r.Scaled()
}

func (rg *Range) write(w *octet.Writer) {
	w.Uint8(rg.Type)
	w.Scaled(rg.First)
	w.Scaled(rg.Second)
}

// Relation formats the range as a comparison, e.g. ">= 1e-06 and < 2.5e-06".
// It is empty for unknown interval types.
func (rg Range) Relation() string {
	first, second := rg.First.Float(), rg.Second.Float()
	switch rg.Type {
	case 0:
		return fmt.Sprintf("< %e", first)
	case 1:
		return fmt.Sprintf("> %e", second)
	case 2:
		return fmt.Sprintf(">= %e and < %e", first, second)
	case 3:
		return fmt.Sprintf("> %e", first)
	case 4:
		return fmt.Sprintf("< %e", second)
	case 5:
		return fmt.Sprintf("<= %e", first)
	case 6:
		return fmt.Sprintf(">= %e", second)
	case 7:
		return fmt.Sprintf(">= %e and <= %e", first, second)
	case 8:
		return fmt.Sprintf(">= %e", first)
	case 9:
		return fmt.Sprintf("<= %e", second)
	case 10:
		return fmt.Sprintf("> %e and <= %e", first, second)
	case 11:
		return fmt.Sprintf("= %e", first)
	}
	return ""
}

func (rg *Range) print(p *printer, c catalog.Catalog, what string) {
	p.printf("  Type of Interval for first and second %s: %d\n", what, rg.Type)
	p.printf("    Scale factor of first %s %d\n", what, rg.First.Factor)
	p.printf("    Scale value of first %s %d\n", what, rg.First.Scaled)
	p.printf("    Scale factor of second %s %d\n", what, rg.Second.Factor)
	p.printf("    Scale value of second %s %d\n", what, rg.Second.Scaled)
	p.printf("   %s\n", c.IntervalType(rg.Type))
	if rel := rg.Relation(); rel != "" {
		p.printf("     %s\n", rel)
	}
}

func printParameter(p *printer, c catalog.Catalog, discipline, category, number uint8) {
	e := c.Parameter(discipline, category, number)
	p.printf("Parameter Discipline: %d\n", discipline)
	p.printf("Parameter Category: %d\n", category)
	p.printf("Parameter Number: %d\n", number)
	p.printf("Parameter name '%s'\n", e.Name)
	p.printf("     long name '%s'\n", e.LongName)
	p.printf("         units '%s'\n", e.Units)
}

func printChemical(p *printer, c catalog.Catalog, code uint16) {
	p.printf(" Type of Atmospheric Chemical / Aerosol: %s\n", c.Chemical(code).LongName)
}

// printer writes formatted lines and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
