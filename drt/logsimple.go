package drt

import (
	"io"
	"math"
)

// LogSimplePacking is template 5.61, grid point data with simple packing and
// logarithm pre-processing. Values are stored as ln(v+B).
type LogSimplePacking struct {
	Header
	Params
	PreProcessing float32 // B
}

// Number implements Template.
func (*LogSimplePacking) Number() int { return 61 }

// ByteLength implements Template.
func (*LogSimplePacking) ByteLength() int { return LogSimplePackingSize }

// Pack implements Template.
func (t *LogSimplePacking) Pack(out []byte) error {
	if err := t.validate(); err != nil {
		return err
	}
	w, err := createSection(out, t.Header, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	t.Params.write(w)
	w.Float32(t.PreProcessing)
	return w.Close()
}

// Unpack implements Template.
func (t *LogSimplePacking) Unpack(in []byte) error {
	r, h, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	v := LogSimplePacking{Header: h}
	v.Params.read(r)
	v.PreProcessing = r.Float32()
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// Value returns the field value represented by the packed integer x.
func (t *LogSimplePacking) Value(x int64) float64 {
	return math.Exp(t.Physical(x)) - float64(t.PreProcessing)
}

// Print implements Template.
func (t *LogSimplePacking) Print(w io.Writer) error {
	p := &printer{w: w}
	p.printf("Grid Point Data, Simple Packing with Logarithm Pre-processing:\n")
	t.Params.print(p)
	p.printf("Pre-processing parameter (B) %f\n", t.PreProcessing)
	p.printf("\n")
	return p.err
}
