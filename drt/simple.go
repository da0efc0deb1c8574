package drt

import (
	"fmt"
	"io"
	"math"

	"github.com/sdifrance/gribtemplates/bitpack"
	"github.com/sdifrance/gribtemplates/griberr"
	"github.com/sdifrance/gribtemplates/internal/octet"
)

// Params are the simple packing parameters shared by templates 5.0, 5.42
// and 5.61.
type Params struct {
	ReferenceValue float32 // R
	BinaryScale    int16   // E
	DecimalScale   int16   // D
	Bits           uint8   // 0 means a constant field of value R×10^-D
}

// Physical returns the value represented by the packed integer x:
// (x×2^E + R)×10^-D.
func (p Params) Physical(x int64) float64 {
	return (math.Ldexp(float64(x), int(p.BinaryScale)) + float64(p.ReferenceValue)) * math.Pow10(-int(p.DecimalScale))
}

// PhysicalAll decodes a slice of packed integers.
func (p Params) PhysicalAll(xs []int64) []float64 {
	dscale := math.Pow10(-int(p.DecimalScale))
	ref := float64(p.ReferenceValue)
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = (math.Ldexp(float64(x), int(p.BinaryScale)) + ref) * dscale
	}
	return out
}

// Packed returns the packed integer nearest to v. It fails with
// ErrBitWidthOverflow when v lies outside the range the parameters can
// represent.
func (p Params) Packed(v float64) (int64, error) {
	y := v*math.Pow10(int(p.DecimalScale)) - float64(p.ReferenceValue)
	x := math.Round(math.Ldexp(y, -int(p.BinaryScale)))
	if x >= 0 && x < math.Ldexp(1, bitpack.MaxWidth) && bitpack.Fits(int64(x), p.Bits) {
		return int64(x), nil
	}
	return 0, griberr.Overflow("value %g does not fit %d bits with R=%g E=%d D=%d", v, p.Bits, p.ReferenceValue, p.BinaryScale, p.DecimalScale)
}

func (p *Params) read(r *octet.Reader) {
	p.ReferenceValue = r.Float32()
	p.BinaryScale = r.Int16()
	p.DecimalScale = r.Int16()
	p.Bits = r.Uint8()
}

func (p *Params) write(w *octet.Writer) {
	w.Float32(p.ReferenceValue)
	w.Int16(p.BinaryScale)
	w.Int16(p.DecimalScale)
	w.Uint8(p.Bits)
}

func (p *Params) validate() error {
	if p.Bits > bitpack.MaxWidth {
		return griberr.Overflow("%d bits per value exceeds the maximum of %d", p.Bits, bitpack.MaxWidth)
	}
	return nil
}

func (p *Params) print(pr *printer) {
	pr.printf("Reference value (R) (IEEE 32-bit floating point value) %f\n", p.ReferenceValue)
	pr.printf("Binary scale factor (E) %d\n", p.BinaryScale)
	pr.printf("Decimal scale factor (D) %d\n", p.DecimalScale)
	pr.printf("Number of bits required to hold scaled/referenced values %d\n", p.Bits)
}

// FitSimplePacking chooses a reference value and binary scale factor so that
// values, scaled by 10^decimalScale, pack into the given number of bits.
// NaN values are ignored; callers strip missing points with a bitmap
// beforehand. A field whose values are all equal packs with zero bits.
func FitSimplePacking(values []float64, decimalScale int16, bits uint8) (Params, error) {
	p := Params{DecimalScale: decimalScale}
	if bits > bitpack.MaxWidth {
		return p, griberr.Overflow("%d bits per value exceeds the maximum of %d", bits, bitpack.MaxWidth)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return p, nil
	}
	scale := math.Pow10(int(decimalScale))
	lo, hi = lo*scale, hi*scale
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return p, griberr.Overflow("values do not fit a 32-bit reference value at decimal scale %d", decimalScale)
	}

	// R is stored as float32 and must not exceed the minimum.
	p.ReferenceValue = float32(lo)
	if float64(p.ReferenceValue) > lo {
		p.ReferenceValue = math.Nextafter32(p.ReferenceValue, float32(math.Inf(-1)))
	}
	spread := hi - float64(p.ReferenceValue)
	if spread == 0 {
		return p, nil
	}
	if bits == 0 {
		return p, griberr.Overflow("a varying field needs at least one bit per value")
	}
	p.Bits = bits
	maxX := math.Ldexp(1, int(bits)) - 1
	e := int(math.Ceil(math.Log2(spread / maxX)))
	for math.Round(math.Ldexp(spread, -e)) > maxX {
		e++
	}
	if e > math.MaxInt16 || e < -math.MaxInt16 {
		return p, griberr.Overflow("binary scale factor %d out of range", e)
	}
	p.BinaryScale = int16(e)
	return p, nil
}

// SimplePacking is template 5.0, grid point data with simple packing.
type SimplePacking struct {
	Header
	Params
	OriginalType uint8 // code table 5.1
}

// Number implements Template.
func (*SimplePacking) Number() int { return 0 }

// ByteLength implements Template.
func (*SimplePacking) ByteLength() int { return SimplePackingSize }

// Pack implements Template.
func (t *SimplePacking) Pack(out []byte) error {
	if err := t.validate(); err != nil {
		return err
	}
	w, err := createSection(out, t.Header, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	t.Params.write(w)
	w.Uint8(t.OriginalType)
	return w.Close()
}

// Unpack implements Template.
func (t *SimplePacking) Unpack(in []byte) error {
	r, h, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	v := SimplePacking{Header: h}
	v.Params.read(r)
	v.OriginalType = r.Uint8()
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// Print implements Template.
func (t *SimplePacking) Print(w io.Writer) error {
	p := &printer{w: w}
	p.printf("Grid Point Data, Simple Packing:\n")
	t.Params.print(p)
	p.printf("Type of original field values is %s\n", originalTypeName(t.OriginalType))
	p.printf("\n")
	return p.err
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
