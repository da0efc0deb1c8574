// Package dt implements GRIB2 data templates (section 7). A data template
// is selected by, and decoded with, the data representation template of
// the same number.
package dt

import (
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/sdifrance/gribtemplates/drt"
	"github.com/sdifrance/gribtemplates/griberr"
	"github.com/sdifrance/gribtemplates/internal/octet"
)

// Section number of the data section.
const Section = 7

// HeaderLen is the length of the data section header.
const HeaderLen = 5

// Missing is the value given to grid points the bitmap marks absent.
const Missing = 9.999e20

// MaxConstantPoints bounds the point count of a field packed with zero bits
// when neither a bitmap nor the grid size limits it. Such a section carries
// no payload, so the count comes from the data representation alone.
const MaxConstantPoints = 1 << 26

// Template is a data template.
type Template interface {
	// Number returns the template number, equal to the number of the data
	// representation template it is paired with.
	Number() int
	// ByteLength returns the length of the section Pack would write.
	ByteLength() int
	// Pack encodes Values into out, which must hold ByteLength octets.
	Pack(out []byte) error
	// Unpack decodes the section in into Values. On failure Values is left
	// unchanged.
	Unpack(in []byte) error
	// Data returns the decoded grid, Missing where no value is present.
	Data() []float64
	// Print writes a text dump of the values.
	Print(w io.Writer) error
}

// Field holds the grid a data template encodes or decodes.
type Field struct {
	// GridPoints is the number of points in the grid definition, or 0 when
	// unknown.
	GridPoints int
	// Bitmap marks the grid points that carry a value. A nil bitmap means
	// every point is present.
	Bitmap []bool
	// Values holds one value per grid point.
	Values []float64
}

// Data implements Template.
func (f *Field) Data() []float64 { return f.Values }

// present returns the number of values Pack will store.
func (f *Field) present() int {
	if f.Bitmap == nil {
		return len(f.Values)
	}
	return countPresent(f.Bitmap)
}

// checkPacked validates the packed point count n of values bits wide
// against the bitmap and grid before anything is allocated for it.
func (f *Field) checkPacked(n int, bits uint8) error {
	if f.Bitmap != nil {
		if p := countPresent(f.Bitmap); p != n {
			return griberr.Malformed("data representation declares %d packed points but the bitmap marks %d present", n, p)
		}
		return nil
	}
	if f.GridPoints > 0 && n > f.GridPoints {
		return griberr.Malformed("data representation declares %d packed points for a grid of %d points", n, f.GridPoints)
	}
	if f.GridPoints > 0 && n < f.GridPoints {
		glog.Warningf("data representation declares %d packed points for a grid of %d points and no bitmap", n, f.GridPoints)
	}
	if f.GridPoints == 0 && bits == 0 && n > MaxConstantPoints {
		return griberr.Malformed("data representation declares %d points of a constant field with no grid size, limit is %d", n, MaxConstantPoints)
	}
	return nil
}

// compact returns the values to store, checked against the declared count.
func (f *Field) compact(rep drt.Template) ([]float64, error) {
	c, err := ApplyBitmapPack(f.Values, f.Bitmap)
	if err != nil {
		return nil, err
	}
	if n := rep.PackedPoints(); n != len(c) {
		return nil, griberr.Malformed("data representation declares %d packed points, field has %d", n, len(c))
	}
	return c, nil
}

// expand spreads decoded values over the grid.
func (f *Field) expand(compact []float64) ([]float64, error) {
	if f.Bitmap == nil {
		return compact, nil
	}
	return ApplyBitmapUnpack(compact, f.Bitmap, Missing)
}

func (f *Field) print(w io.Writer) error {
	p := &printer{w: w}
	p.printf("DS length: %d\n", len(f.Values))
	for _, v := range f.Values {
		p.printf("%f ", v)
	}
	p.printf("\n")
	return p.err
}

// New returns the data template that decodes data described by rep. codec
// is only used by template 7.42 and may be nil.
func New(rep drt.Template, f Field, codec BlockCodec) (Template, error) {
	switch r := rep.(type) {
	case *drt.SimplePacking:
		return &SimplePacking{Field: f, Rep: r}, nil
	case *drt.IEEE:
		return &IEEE{Field: f, Rep: r}, nil
	case *drt.CCSDS:
		return &CCSDS{Field: f, Rep: r, Codec: codec}, nil
	case *drt.LogSimplePacking:
		return &LogSimplePacking{Field: f, Rep: r}, nil
	case nil:
		return nil, griberr.Malformed("data template needs a data representation template")
	}
	return nil, &griberr.UnsupportedTemplateError{Section: Section, Number: rep.Number()}
}

func openSection(in []byte, number int) (*octet.Reader, error) {
	r, err := octet.OpenSection(in, Section, HeaderLen)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("unpacking template 7.%d from %d octets", number, len(in))
	return r, nil
}

func createSection(out []byte, length int) (*octet.Writer, error) {
	return octet.CreateSection(out, Section, length)
}

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
