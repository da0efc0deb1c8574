package pdt

import (
	"io"

	"github.com/sdifrance/gribtemplates/catalog"
	"github.com/sdifrance/gribtemplates/internal/octet"
)

// Satellite is template 4.32, an analysis or forecast at a horizontal level
// or in a horizontal layer for simulated (synthetic) satellite data.
type Satellite struct {
	ParameterCategory uint8
	ParameterNumber   uint8
	Generating
	Bands []BandInfo
}

// Number implements Template.
func (*Satellite) Number() int { return 32 }

// ByteLength implements Template.
func (t *Satellite) ByteLength() int { return SatelliteSize + len(t.Bands)*BandSize }

func (t *Satellite) readBody(r *octet.Reader) {
	t.ParameterCategory = r.Uint8()
	t.ParameterNumber = r.Uint8()
	t.Generating.read(r)
	t.Bands = readBands(r, int(r.Uint8()))
}

func (t *Satellite) writeBody(w *octet.Writer) {
	w.Uint8(t.ParameterCategory)
	w.Uint8(t.ParameterNumber)
	t.Generating.write(w)
	w.Uint8(uint8(len(t.Bands)))
	writeBands(w, t.Bands)
}

// Pack implements Template.
func (t *Satellite) Pack(out []byte) error {
	if err := checkCount("bands", len(t.Bands)); err != nil {
		return err
	}
	w, err := createSection(out, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	t.writeBody(w)
	return w.Close()
}

// Unpack implements Template.
func (t *Satellite) Unpack(in []byte) error {
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	var v Satellite
	v.readBody(r)
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// ForecastLeadSeconds implements Template.
func (t *Satellite) ForecastLeadSeconds() int64 { return t.Generating.leadSeconds() }

// Summary implements Template.
func (t *Satellite) Summary(discipline uint8, c catalog.Catalog) Summary {
	s := newSummary(discipline, t.ParameterCategory, t.ParameterNumber, c)
	s.satelliteLevel()
	s.forecast(t.Generating)
	return s
}

func (t *Satellite) print(p *printer, discipline uint8, c catalog.Catalog) {
	printParameter(p, c, discipline, t.ParameterCategory, t.ParameterNumber)
	t.Generating.print(p, c)
	printBands(p, t.Bands)
}

// Print implements Template.
func (t *Satellite) Print(w io.Writer, discipline uint8, c catalog.Catalog) error {
	p := &printer{w: w}
	t.print(p, discipline, c)
	p.printf("\n")
	return p.err
}

// SatelliteEnsemble is template 4.33, an individual ensemble forecast for
// simulated satellite data.
type SatelliteEnsemble struct {
	Satellite
	EnsembleInfo
}

// Number implements Template.
func (*SatelliteEnsemble) Number() int { return 33 }

// ByteLength implements Template.
func (t *SatelliteEnsemble) ByteLength() int {
	return SatelliteEnsembleSize + len(t.Bands)*BandSize
}

func (t *SatelliteEnsemble) readBody(r *octet.Reader) {
	t.Satellite.readBody(r)
	t.EnsembleInfo.read(r)
}

func (t *SatelliteEnsemble) writeBody(w *octet.Writer) {
	t.Satellite.writeBody(w)
	t.EnsembleInfo.write(w)
}

// Pack implements Template.
func (t *SatelliteEnsemble) Pack(out []byte) error {
	if err := checkCount("bands", len(t.Bands)); err != nil {
		return err
	}
	w, err := createSection(out, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	t.writeBody(w)
	return w.Close()
}

// Unpack implements Template.
func (t *SatelliteEnsemble) Unpack(in []byte) error {
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	var v SatelliteEnsemble
	v.readBody(r)
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// ForecastLeadSeconds implements Template.
func (t *SatelliteEnsemble) ForecastLeadSeconds() int64 { return t.Generating.leadSeconds() }

// Summary implements Template.
func (t *SatelliteEnsemble) Summary(discipline uint8, c catalog.Catalog) Summary {
	s := t.Satellite.Summary(discipline, c)
	s.ensemble(t.EnsembleInfo)
	return s
}

func (t *SatelliteEnsemble) print(p *printer, discipline uint8, c catalog.Catalog) {
	t.Satellite.print(p, discipline, c)
	t.EnsembleInfo.print(p, c)
}

// Print implements Template.
func (t *SatelliteEnsemble) Print(w io.Writer, discipline uint8, c catalog.Catalog) error {
	p := &printer{w: w}
	t.print(p, discipline, c)
	p.printf("\n")
	return p.err
}

// SatelliteEnsembleStatistics is template 4.34, an individual ensemble
// forecast for simulated satellite data, averaged, accumulated or otherwise
// processed over a time interval.
type SatelliteEnsembleStatistics struct {
	SatelliteEnsemble
	Statistics
}

// Number implements Template.
func (*SatelliteEnsembleStatistics) Number() int { return 34 }

// ByteLength implements Template.
func (t *SatelliteEnsembleStatistics) ByteLength() int {
	return SatelliteEnsembleStatisticsSize + len(t.Bands)*BandSize + t.Statistics.length()
}

// Pack implements Template.
func (t *SatelliteEnsembleStatistics) Pack(out []byte) error {
	if err := checkCount("bands", len(t.Bands)); err != nil {
		return err
	}
	if err := checkCount("time ranges", len(t.Intervals)); err != nil {
		return err
	}
	w, err := createSection(out, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	t.SatelliteEnsemble.writeBody(w)
	t.Statistics.write(w)
	return w.Close()
}

// Unpack implements Template.
func (t *SatelliteEnsembleStatistics) Unpack(in []byte) error {
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	var v SatelliteEnsembleStatistics
	v.SatelliteEnsemble.readBody(r)
	v.Statistics.read(r)
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// ForecastLeadSeconds implements Template. The lead runs to the end of the
// overall time interval.
func (t *SatelliteEnsembleStatistics) ForecastLeadSeconds() int64 {
	return addSeconds(t.Generating.leadSeconds(), t.Statistics.totalSeconds())
}

// Summary implements Template.
func (t *SatelliteEnsembleStatistics) Summary(discipline uint8, c catalog.Catalog) Summary {
	s := t.Satellite.Summary(discipline, c)
	s.Name += t.Statistics.totalLabel(c)
	s.ensemble(t.EnsembleInfo)
	return s
}

// Print implements Template.
func (t *SatelliteEnsembleStatistics) Print(w io.Writer, discipline uint8, c catalog.Catalog) error {
	p := &printer{w: w}
	t.SatelliteEnsemble.print(p, discipline, c)
	t.Statistics.print(p, c)
	p.printf("\n")
	return p.err
}

// SatelliteObservation is template 4.35, satellite product with or without
// associated quality values.
type SatelliteObservation struct {
	ParameterCategory    uint8
	ParameterNumber      uint8
	ProcessType          uint8 // code table 4.3
	ObservationProcessID uint8
	QualityValue         uint8 // code table 4.244
	Bands                []BandInfo
}

// Number implements Template.
func (*SatelliteObservation) Number() int { return 35 }

// ByteLength implements Template.
func (t *SatelliteObservation) ByteLength() int {
	return SatelliteObservationSize + len(t.Bands)*BandSize
}

// Pack implements Template.
func (t *SatelliteObservation) Pack(out []byte) error {
	if err := checkCount("bands", len(t.Bands)); err != nil {
		return err
	}
	w, err := createSection(out, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	w.Uint8(t.ParameterCategory)
	w.Uint8(t.ParameterNumber)
	w.Uint8(t.ProcessType)
	w.Uint8(t.ObservationProcessID)
	w.Uint8(t.QualityValue)
	w.Uint8(uint8(len(t.Bands)))
	writeBands(w, t.Bands)
	return w.Close()
}

// Unpack implements Template.
func (t *SatelliteObservation) Unpack(in []byte) error {
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	v := SatelliteObservation{
		ParameterCategory:    r.Uint8(),
		ParameterNumber:      r.Uint8(),
		ProcessType:          r.Uint8(),
		ObservationProcessID: r.Uint8(),
		QualityValue:         r.Uint8(),
	}
	v.Bands = readBands(r, int(r.Uint8()))
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// ForecastLeadSeconds implements Template. Observations carry no forecast
// time, so it is always 0.
func (*SatelliteObservation) ForecastLeadSeconds() int64 { return 0 }

// Summary implements Template.
func (t *SatelliteObservation) Summary(discipline uint8, c catalog.Catalog) Summary {
	s := newSummary(discipline, t.ParameterCategory, t.ParameterNumber, c)
	s.satelliteLevel()
	return s
}

// Print implements Template.
func (t *SatelliteObservation) Print(w io.Writer, discipline uint8, c catalog.Catalog) error {
	p := &printer{w: w}
	printParameter(p, c, discipline, t.ParameterCategory, t.ParameterNumber)
	p.printf("Type of generating process: %s\n", c.GeneratingProcessType(t.ProcessType))
	p.printf("Observation generating process identifier %d\n", t.ObservationProcessID)
	p.printf("Quality Value associated with parameter %s\n", c.QualityValue(t.QualityValue))
	printBands(p, t.Bands)
	p.printf("\n")
	return p.err
}
