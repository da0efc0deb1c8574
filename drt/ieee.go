package drt

import "io"

// Precision of IEEE floating point data, code table 5.7.
const (
	PrecisionSingle    = 1
	PrecisionDouble    = 2
	PrecisionQuadruple = 3
	PrecisionMissing   = 255
)

// IEEE is template 5.4, grid point data stored as IEEE floating point values.
type IEEE struct {
	Header
	Precision uint8
}

// Number implements Template.
func (*IEEE) Number() int { return 4 }

// ByteLength implements Template.
func (*IEEE) ByteLength() int { return IEEESize }

// Pack implements Template.
func (t *IEEE) Pack(out []byte) error {
	w, err := createSection(out, t.Header, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	w.Uint8(t.Precision)
	return w.Close()
}

// Unpack implements Template.
func (t *IEEE) Unpack(in []byte) error {
	r, h, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	v := IEEE{Header: h, Precision: r.Uint8()}
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// Bits returns the width of one value, or 0 for an unknown precision.
func (t *IEEE) Bits() int {
	switch t.Precision {
	case PrecisionSingle:
		return 32
	case PrecisionDouble:
		return 64
	case PrecisionQuadruple:
		return 128
	}
	return 0
}

// Print implements Template.
func (t *IEEE) Print(w io.Writer) error {
	p := &printer{w: w}
	p.printf("Grid Point Data, IEEE Floating Point Data: \n")
	p.printf("Precision: ")
	switch t.Precision {
	case PrecisionSingle, PrecisionDouble, PrecisionQuadruple:
		p.printf("%d bit\n", t.Bits())
	case PrecisionMissing:
		p.printf("Missing\n")
	default:
		p.printf("Reserved for local use\n")
	}
	p.printf("\n")
	return p.err
}
