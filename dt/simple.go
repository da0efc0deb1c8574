package dt

import (
	"io"
	"math"

	"github.com/sdifrance/gribtemplates/bitpack"
	"github.com/sdifrance/gribtemplates/drt"
	"github.com/sdifrance/gribtemplates/griberr"
	"github.com/sdifrance/gribtemplates/internal/octet"
)

// SimplePacking is template 7.0, grid point data with simple packing.
type SimplePacking struct {
	Field
	Rep *drt.SimplePacking
}

// Number implements Template.
func (*SimplePacking) Number() int { return 0 }

// ByteLength implements Template.
func (t *SimplePacking) ByteLength() int {
	return HeaderLen + bitpack.PackedLen(t.present(), t.Rep.Bits)
}

// Pack implements Template.
func (t *SimplePacking) Pack(out []byte) error {
	c, err := t.compact(t.Rep)
	if err != nil {
		return err
	}
	xs, err := packInts(t.Rep.Params, c)
	if err != nil {
		return err
	}
	w, err := createSection(out, t.ByteLength())
	if err != nil {
		return err
	}
	if err := writeInts(w, xs, t.Rep.Bits); err != nil {
		return err
	}
	return w.Close()
}

// Unpack implements Template.
func (t *SimplePacking) Unpack(in []byte) error {
	n := t.Rep.PackedPoints()
	if err := t.checkPacked(n, t.Rep.Bits); err != nil {
		return err
	}
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	xs, err := readInts(r, n, t.Rep.Bits)
	if err != nil {
		return err
	}
	values, err := t.expand(t.Rep.PhysicalAll(xs))
	if err != nil {
		return err
	}
	t.Values = values
	return nil
}

// Print implements Template.
func (t *SimplePacking) Print(w io.Writer) error { return t.print(w) }

// packInts converts values to packed integers. Every value of a constant
// field must equal the reference value.
func packInts(p drt.Params, values []float64) ([]int64, error) {
	xs := make([]int64, len(values))
	for i, v := range values {
		x, err := p.Packed(v)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}

func writeInts(w *octet.Writer, xs []int64, bits uint8) error {
	b := w.Next(bitpack.PackedLen(len(xs), bits))
	if b == nil || bits == 0 {
		return nil
	}
	return bitpack.PackBits(b, xs, bits, 0)
}

// readInts reads n packed integers from the rest of the section.
func readInts(r *octet.Reader, n int, bits uint8) ([]int64, error) {
	payload := r.Bytes(bitpack.PackedLen(n, bits))
	if err := r.Close(); err != nil {
		return nil, err
	}
	return bitpack.UnpackBits(payload, bits, 0, n)
}

// LogSimplePacking is template 7.61, grid point data with simple packing and
// logarithm pre-processing. It is decode-only.
type LogSimplePacking struct {
	Field
	Rep *drt.LogSimplePacking
}

// Number implements Template.
func (*LogSimplePacking) Number() int { return 61 }

// ByteLength implements Template. It reports the length of the section
// described by Rep.
func (t *LogSimplePacking) ByteLength() int {
	return HeaderLen + bitpack.PackedLen(t.Rep.PackedPoints(), t.Rep.Bits)
}

// Pack implements Template. Encoding with logarithm pre-processing is not
// supported.
func (t *LogSimplePacking) Pack([]byte) error {
	return griberr.NotImplemented("packing template 7.61")
}

// Unpack implements Template. Each value is exp((X×2^E+R)×10^-D) - B; a
// field packed with zero bits holds exp(R×10^-D) - B everywhere.
func (t *LogSimplePacking) Unpack(in []byte) error {
	n := t.Rep.PackedPoints()
	if err := t.checkPacked(n, t.Rep.Bits); err != nil {
		return err
	}
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	xs, err := readInts(r, n, t.Rep.Bits)
	if err != nil {
		return err
	}
	compact := t.Rep.PhysicalAll(xs)
	b := float64(t.Rep.PreProcessing)
	for i, v := range compact {
		compact[i] = math.Exp(v) - b
	}
	values, err := t.expand(compact)
	if err != nil {
		return err
	}
	t.Values = values
	return nil
}

// Print implements Template.
func (t *LogSimplePacking) Print(w io.Writer) error { return t.print(w) }
