package dt

import (
	"io"

	"github.com/sdifrance/gribtemplates/drt"
	"github.com/sdifrance/gribtemplates/griberr"
)

const ieeeSingleLen = 4

// IEEE is template 7.4, grid point data as IEEE floating point values. Only
// single precision is supported.
type IEEE struct {
	Field
	Rep *drt.IEEE
}

// Number implements Template.
func (*IEEE) Number() int { return 4 }

// ByteLength implements Template.
func (t *IEEE) ByteLength() int {
	return HeaderLen + ieeeSingleLen*t.present()
}

func (t *IEEE) checkPrecision() error {
	if t.Rep.Precision != drt.PrecisionSingle {
		return griberr.NotImplemented("IEEE data with precision code %d", t.Rep.Precision)
	}
	return nil
}

// Pack implements Template.
func (t *IEEE) Pack(out []byte) error {
	if err := t.checkPrecision(); err != nil {
		return err
	}
	c, err := t.compact(t.Rep)
	if err != nil {
		return err
	}
	w, err := createSection(out, HeaderLen+ieeeSingleLen*len(c))
	if err != nil {
		return err
	}
	for _, v := range c {
		w.Float32(float32(v))
	}
	return w.Close()
}

// Unpack implements Template.
func (t *IEEE) Unpack(in []byte) error {
	if err := t.checkPrecision(); err != nil {
		return err
	}
	n := t.Rep.PackedPoints()
	if err := t.checkPacked(n, 32); err != nil {
		return err
	}
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	if !r.Need(ieeeSingleLen * n) {
		return r.Err()
	}
	compact := make([]float64, n)
	for i := range compact {
		compact[i] = float64(r.Float32())
	}
	if err := r.Close(); err != nil {
		return err
	}
	values, err := t.expand(compact)
	if err != nil {
		return err
	}
	t.Values = values
	return nil
}

// Print implements Template.
func (t *IEEE) Print(w io.Writer) error { return t.print(w) }
