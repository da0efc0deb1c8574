package dt

import (
	"io"

	"github.com/sdifrance/gribtemplates/drt"
	"github.com/sdifrance/gribtemplates/griberr"
)

// BlockCodec compresses packed integers for template 7.42. Implementations
// wrap a CCSDS (szip/libaec) library.
type BlockCodec interface {
	// Encode compresses xs, each rep.Bits wide, using rep's options.
	Encode(xs []int64, rep *drt.CCSDS) ([]byte, error)
	// Decode decompresses payload into rep.PackedPoints() integers.
	Decode(payload []byte, rep *drt.CCSDS) ([]int64, error)
}

// CCSDS is template 7.42, grid point data with CCSDS lossless compression.
// The compressed payload is handled by Codec.
type CCSDS struct {
	Field
	Rep   *drt.CCSDS
	Codec BlockCodec
}

// Number implements Template.
func (*CCSDS) Number() int { return 42 }

// encode returns the compressed payload of Values.
func (t *CCSDS) encode() ([]byte, error) {
	c, err := t.compact(t.Rep)
	if err != nil {
		return nil, err
	}
	xs, err := packInts(t.Rep.Params, c)
	if err != nil {
		return nil, err
	}
	if t.Rep.Bits == 0 {
		return nil, nil
	}
	if t.Codec == nil {
		return nil, griberr.NotImplemented("template 7.42 without a CCSDS codec")
	}
	return t.Codec.Encode(xs, t.Rep)
}

// ByteLength implements Template. It compresses Values to find the length,
// and reports the header length alone when that fails.
func (t *CCSDS) ByteLength() int {
	payload, err := t.encode()
	if err != nil {
		return HeaderLen
	}
	return HeaderLen + len(payload)
}

// Pack implements Template.
func (t *CCSDS) Pack(out []byte) error {
	payload, err := t.encode()
	if err != nil {
		return err
	}
	w, err := createSection(out, HeaderLen+len(payload))
	if err != nil {
		return err
	}
	w.Bytes(payload)
	return w.Close()
}

// Unpack implements Template.
func (t *CCSDS) Unpack(in []byte) error {
	n := t.Rep.PackedPoints()
	if err := t.checkPacked(n, t.Rep.Bits); err != nil {
		return err
	}
	r, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	payload := r.Rest()
	if err := r.Close(); err != nil {
		return err
	}
	var xs []int64
	if t.Rep.Bits == 0 {
		xs = make([]int64, n)
	} else {
		if t.Codec == nil {
			return griberr.NotImplemented("template 7.42 without a CCSDS codec")
		}
		if xs, err = t.Codec.Decode(payload, t.Rep); err != nil {
			return err
		}
		if len(xs) != n {
			return griberr.Malformed("CCSDS codec returned %d values, want %d", len(xs), n)
		}
	}
	values, err := t.expand(t.Rep.PhysicalAll(xs))
	if err != nil {
		return err
	}
	t.Values = values
	return nil
}

// Print implements Template.
func (t *CCSDS) Print(w io.Writer) error { return t.print(w) }
