package pdt

import (
	"io"

	"github.com/sdifrance/gribtemplates/catalog"
	"github.com/sdifrance/gribtemplates/internal/octet"
)

// ChemicalStatistics is template 4.42, average, accumulation or other
// statistically processed values at a horizontal level or layer in a
// continuous or non-continuous time interval for atmospheric chemical
// constituents.
type ChemicalStatistics struct {
	ParameterCategory uint8
	ParameterNumber   uint8
	Chemical          uint16 // code table 4.230
	Generating
	FirstSurface  Surface
	SecondSurface Surface
	Statistics
}

// Number implements Template.
func (*ChemicalStatistics) Number() int { return 42 }

// ByteLength implements Template.
func (t *ChemicalStatistics) ByteLength() int {
	return ChemicalStatisticsSize + t.Statistics.length()
}

// readHead reads the fields 4.42 shares with 4.43, up to the surfaces.
func (t *ChemicalStatistics) readHead(r *octet.Reader) {
	t.ParameterCategory = r.Uint8()
	t.ParameterNumber = r.Uint8()
	t.Chemical = r.Uint16()
	t.Generating.read(r)
	t.FirstSurface.read(r)
	t.SecondSurface.read(r)
}

func (t *ChemicalStatistics) writeHead(w *octet.Writer) {
	w.Uint8(t.ParameterCategory)
	w.Uint8(t.ParameterNumber)
	w.Uint16(t.Chemical)
	t.Generating.write(w)
	t.FirstSurface.write(w)
	t.SecondSurface.write(w)
}

// Pack implements Template.
func (t *ChemicalStatistics) Pack(out []byte) error {
	if err := checkCount("time ranges", len(t.Intervals)); err != nil {
		return err
	}
	w, err := createSection(out, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	t.writeHead(w)
	t.Statistics.write(w)
	return w.Close()
}

// Unpack implements Template.
func (t *ChemicalStatistics) Unpack(in []byte) error {
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	var v ChemicalStatistics
	v.readHead(r)
	v.Statistics.read(r)
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// ForecastLeadSeconds implements Template. Only time ranges whose successive
// fields advance the forecast time extend the lead.
func (t *ChemicalStatistics) ForecastLeadSeconds() int64 {
	return addSeconds(t.Generating.leadSeconds(), t.Statistics.accumulatedSeconds())
}

func (t *ChemicalStatistics) summary(discipline uint8, c catalog.Catalog) Summary {
	s := newSummary(discipline, t.ParameterCategory, t.ParameterNumber, c)
	s.forecast(t.Generating)
	s.surfaceLevel(c, t.FirstSurface, t.SecondSurface)
	s.chemical(c, t.Chemical)
	return s
}

// Summary implements Template.
func (t *ChemicalStatistics) Summary(discipline uint8, c catalog.Catalog) Summary {
	s := t.summary(discipline, c)
	s.Name += t.Statistics.lastLabel(c)
	return s
}

func (t *ChemicalStatistics) printHead(p *printer, discipline uint8, c catalog.Catalog) {
	printParameter(p, c, discipline, t.ParameterCategory, t.ParameterNumber)
	printChemical(p, c, t.Chemical)
	t.Generating.print(p, c)
	t.FirstSurface.print(p, c, "first")
	t.SecondSurface.print(p, c, "second")
}

// Print implements Template.
func (t *ChemicalStatistics) Print(w io.Writer, discipline uint8, c catalog.Catalog) error {
	p := &printer{w: w}
	t.printHead(p, discipline, c)
	t.Statistics.print(p, c)
	p.printf("\n")
	return p.err
}

// ChemicalEnsembleStatistics is template 4.43, individual ensemble forecast,
// control and perturbed, at a horizontal level or layer in a continuous or
// non-continuous time interval for atmospheric chemical constituents.
//
// The ensemble fields sit between the second surface and the end of the
// overall time interval.
type ChemicalEnsembleStatistics struct {
	ChemicalStatistics
	EnsembleInfo
}

// Number implements Template.
func (*ChemicalEnsembleStatistics) Number() int { return 43 }

// ByteLength implements Template.
func (t *ChemicalEnsembleStatistics) ByteLength() int {
	return ChemicalEnsembleStatisticsSize + t.Statistics.length()
}

// Pack implements Template.
func (t *ChemicalEnsembleStatistics) Pack(out []byte) error {
	if err := checkCount("time ranges", len(t.Intervals)); err != nil {
		return err
	}
	w, err := createSection(out, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	t.writeHead(w)
	t.EnsembleInfo.write(w)
	t.Statistics.write(w)
	return w.Close()
}

// Unpack implements Template.
func (t *ChemicalEnsembleStatistics) Unpack(in []byte) error {
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	var v ChemicalEnsembleStatistics
	v.readHead(r)
	v.EnsembleInfo.read(r)
	v.Statistics.read(r)
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// ForecastLeadSeconds implements Template. The lead runs to the end of the
// overall time interval.
func (t *ChemicalEnsembleStatistics) ForecastLeadSeconds() int64 {
	return addSeconds(t.Generating.leadSeconds(), t.Statistics.totalSeconds())
}

// Summary implements Template.
func (t *ChemicalEnsembleStatistics) Summary(discipline uint8, c catalog.Catalog) Summary {
	s := t.summary(discipline, c)
	s.Name += t.Statistics.totalLabel(c)
	s.ensemble(t.EnsembleInfo)
	return s
}

// Print implements Template.
func (t *ChemicalEnsembleStatistics) Print(w io.Writer, discipline uint8, c catalog.Catalog) error {
	p := &printer{w: w}
	t.printHead(p, discipline, c)
	t.EnsembleInfo.print(p, c)
	t.Statistics.print(p, c)
	p.printf("\n")
	return p.err
}
