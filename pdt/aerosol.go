package pdt

import (
	"io"

	"github.com/sdifrance/gribtemplates/catalog"
	"github.com/sdifrance/gribtemplates/internal/octet"
)

// AerosolEnsemble is template 4.45, individual ensemble forecast, control and
// perturbed, at a horizontal level or layer at a point in time for aerosol.
type AerosolEnsemble struct {
	ParameterCategory uint8
	ParameterNumber   uint8
	Chemical          uint16 // code table 4.233
	Size              Range  // particle diameter in m
	Generating
	FirstSurface  Surface
	SecondSurface Surface
	EnsembleInfo
}

// Number implements Template.
func (*AerosolEnsemble) Number() int { return 45 }

// ByteLength implements Template.
func (*AerosolEnsemble) ByteLength() int { return AerosolEnsembleSize }

func (t *AerosolEnsemble) readHead(r *octet.Reader) {
	t.ParameterCategory = r.Uint8()
	t.ParameterNumber = r.Uint8()
	t.Chemical = r.Uint16()
	t.Size.read(r)
}

func (t *AerosolEnsemble) writeHead(w *octet.Writer) {
	w.Uint8(t.ParameterCategory)
	w.Uint8(t.ParameterNumber)
	w.Uint16(t.Chemical)
	t.Size.write(w)
}

// readTail reads the fields after the size and wavelength ranges.
func (t *AerosolEnsemble) readTail(r *octet.Reader) {
	t.Generating.read(r)
	t.FirstSurface.read(r)
	t.SecondSurface.read(r)
	t.EnsembleInfo.read(r)
}

func (t *AerosolEnsemble) writeTail(w *octet.Writer) {
	t.Generating.write(w)
	t.FirstSurface.write(w)
	t.SecondSurface.write(w)
	t.EnsembleInfo.write(w)
}

// Pack implements Template.
func (t *AerosolEnsemble) Pack(out []byte) error {
	w, err := createSection(out, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	t.writeHead(w)
	t.writeTail(w)
	return w.Close()
}

// Unpack implements Template.
func (t *AerosolEnsemble) Unpack(in []byte) error {
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	var v AerosolEnsemble
	v.readHead(r)
	v.readTail(r)
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// ForecastLeadSeconds implements Template.
func (t *AerosolEnsemble) ForecastLeadSeconds() int64 { return t.Generating.leadSeconds() }

// Summary implements Template.
func (t *AerosolEnsemble) Summary(discipline uint8, c catalog.Catalog) Summary {
	s := newSummary(discipline, t.ParameterCategory, t.ParameterNumber, c)
	s.forecast(t.Generating)
	s.surfaceLevel(c, t.FirstSurface, t.SecondSurface)
	s.chemical(c, t.Chemical)
	s.ensemble(t.EnsembleInfo)
	return s
}

func (t *AerosolEnsemble) printHead(p *printer, discipline uint8, c catalog.Catalog) {
	printParameter(p, c, discipline, t.ParameterCategory, t.ParameterNumber)
	printChemical(p, c, t.Chemical)
	t.Size.print(p, c, "size")
}

func (t *AerosolEnsemble) printTail(p *printer, c catalog.Catalog) {
	t.Generating.print(p, c)
	t.FirstSurface.print(p, c, "first")
	t.SecondSurface.print(p, c, "second")
	t.EnsembleInfo.print(p, c)
}

// Print implements Template.
func (t *AerosolEnsemble) Print(w io.Writer, discipline uint8, c catalog.Catalog) error {
	p := &printer{w: w}
	t.printHead(p, discipline, c)
	t.printTail(p, c)
	p.printf("\n")
	return p.err
}

// AerosolStatistics is template 4.46, average, accumulation or other
// statistically processed values at a horizontal level or layer in a
// continuous or non-continuous time interval for aerosol.
type AerosolStatistics struct {
	ParameterCategory uint8
	ParameterNumber   uint8
	Chemical          uint16 // code table 4.233
	Size              Range  // particle diameter in m
	Generating
	FirstSurface  Surface
	SecondSurface Surface
	Statistics
}

// Number implements Template.
func (*AerosolStatistics) Number() int { return 46 }

// ByteLength implements Template.
func (t *AerosolStatistics) ByteLength() int {
	return AerosolStatisticsSize + t.Statistics.length()
}

// Pack implements Template.
func (t *AerosolStatistics) Pack(out []byte) error {
	if err := checkCount("time ranges", len(t.Intervals)); err != nil {
		return err
	}
	w, err := createSection(out, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	w.Uint8(t.ParameterCategory)
	w.Uint8(t.ParameterNumber)
	w.Uint16(t.Chemical)
	t.Size.write(w)
	t.Generating.write(w)
	t.FirstSurface.write(w)
	t.SecondSurface.write(w)
	t.Statistics.write(w)
	return w.Close()
}

// Unpack implements Template.
func (t *AerosolStatistics) Unpack(in []byte) error {
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	var v AerosolStatistics
	v.ParameterCategory = r.Uint8()
	v.ParameterNumber = r.Uint8()
	v.Chemical = r.Uint16()
	v.Size.read(r)
	v.Generating.read(r)
	v.FirstSurface.read(r)
	v.SecondSurface.read(r)
	v.Statistics.read(r)
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// ForecastLeadSeconds implements Template. Only time ranges whose successive
// fields advance the forecast time extend the lead.
func (t *AerosolStatistics) ForecastLeadSeconds() int64 {
	return addSeconds(t.Generating.leadSeconds(), t.Statistics.accumulatedSeconds())
}

// Summary implements Template.
func (t *AerosolStatistics) Summary(discipline uint8, c catalog.Catalog) Summary {
	s := newSummary(discipline, t.ParameterCategory, t.ParameterNumber, c)
	s.forecast(t.Generating)
	s.surfaceLevel(c, t.FirstSurface, t.SecondSurface)
	s.chemical(c, t.Chemical)
	s.Name += t.Statistics.lastLabel(c)
	return s
}

// Print implements Template.
func (t *AerosolStatistics) Print(w io.Writer, discipline uint8, c catalog.Catalog) error {
	p := &printer{w: w}
	printParameter(p, c, discipline, t.ParameterCategory, t.ParameterNumber)
	printChemical(p, c, t.Chemical)
	t.Size.print(p, c, "size")
	t.Generating.print(p, c)
	t.FirstSurface.print(p, c, "first")
	t.SecondSurface.print(p, c, "second")
	t.Statistics.print(p, c)
	p.printf("\n")
	return p.err
}

// AerosolOpticalEnsemble is template 4.49, individual ensemble forecast,
// control and perturbed, at a horizontal level or layer at a point in time
// for optical properties of aerosol.
type AerosolOpticalEnsemble struct {
	AerosolEnsemble
	Wavelength Range // m
}

// Number implements Template.
func (*AerosolOpticalEnsemble) Number() int { return 49 }

// ByteLength implements Template.
func (*AerosolOpticalEnsemble) ByteLength() int { return AerosolOpticalEnsembleSize }

// Pack implements Template.
func (t *AerosolOpticalEnsemble) Pack(out []byte) error {
	w, err := createSection(out, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	t.writeHead(w)
	t.Wavelength.write(w)
	t.writeTail(w)
	return w.Close()
}

// Unpack implements Template.
func (t *AerosolOpticalEnsemble) Unpack(in []byte) error {
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	var v AerosolOpticalEnsemble
	v.readHead(r)
	v.Wavelength.read(r)
	v.readTail(r)
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// Print implements Template.
func (t *AerosolOpticalEnsemble) Print(w io.Writer, discipline uint8, c catalog.Catalog) error {
	p := &printer{w: w}
	t.printHead(p, discipline, c)
	t.Wavelength.print(p, c, "wavelength")
	t.printTail(p, c)
	p.printf("\n")
	return p.err
}
