package drt

import "io"

// CCSDS is template 5.42, grid point and spectral data with CCSDS recommended
// lossless compression (szip).
type CCSDS struct {
	Header
	Params
	OriginalType            uint8 // code table 5.1
	Flags                   uint8 // CCSDS compression options mask
	BlockSize               uint8
	ReferenceSampleInterval uint16
}

// Number implements Template.
func (*CCSDS) Number() int { return 42 }

// ByteLength implements Template.
func (*CCSDS) ByteLength() int { return CCSDSSize }

// Pack implements Template.
func (t *CCSDS) Pack(out []byte) error {
	if err := t.validate(); err != nil {
		return err
	}
	w, err := createSection(out, t.Header, t.Number(), t.ByteLength())
	if err != nil {
		return err
	}
	t.Params.write(w)
	w.Uint8(t.OriginalType)
	w.Uint8(t.Flags)
	w.Uint8(t.BlockSize)
	w.Uint16(t.ReferenceSampleInterval)
	return w.Close()
}

// Unpack implements Template.
func (t *CCSDS) Unpack(in []byte) error {
	r, h, err := openSection(in, t.Number())
	if err != nil {
		return err
	}
	v := CCSDS{Header: h}
	v.Params.read(r)
	v.OriginalType = r.Uint8()
	v.Flags = r.Uint8()
	v.BlockSize = r.Uint8()
	v.ReferenceSampleInterval = r.Uint16()
	if err := r.Close(); err != nil {
		return err
	}
	*t = v
	return nil
}

// Print implements Template.
func (t *CCSDS) Print(w io.Writer) error {
	p := &printer{w: w}
	p.printf("Consultative Committee for Space Data Systems (CCSDS) szip:\n")
	t.Params.print(p)
	p.printf("Type of original field values is %s\n", originalTypeName(t.OriginalType))
	p.printf("CCSDS Compression Options Mask %d\n", t.Flags)
	p.printf("Block Size %d\n", t.BlockSize)
	p.printf("Reference Sample Interval %d\n", t.ReferenceSampleInterval)
	p.printf("\n")
	return p.err
}
