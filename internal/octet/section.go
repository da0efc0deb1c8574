package octet

import (
	"github.com/sdifrance/gribtemplates/griberr"
)

// SectionPrefix is the length of the part every section starts with: a
// 4-octet section length followed by the 1-octet section number.
const SectionPrefix = 5

// OpenSection validates the common section prefix of b and returns a Reader
// bounded by the declared section length, positioned after the prefix.
func OpenSection(b []byte, number uint8, headerLen int) (*Reader, error) {
	what := SectionName(number)
	if len(b) < headerLen {
		return nil, griberr.Truncated(what+" header", headerLen, len(b))
	}
	length := int(Uint32At(b, 0))
	if got := b[4]; got != number {
		return nil, griberr.Malformed("%s: section number is %d", what, got)
	}
	if length < headerLen {
		return nil, griberr.Malformed("%s: declared length %d is shorter than its header", what, length)
	}
	if length > len(b) {
		return nil, griberr.Truncated(what, length, len(b))
	}
	r := NewReader(b[:length], what)
	r.Skip(SectionPrefix)
	return r, nil
}

// CreateSection starts a section of the given length and returns a Writer
// positioned after its prefix. The section is built in a scratch buffer and
// copied into out by a successful Close; out is untouched on any failure.
func CreateSection(out []byte, number uint8, length int) (*Writer, error) {
	what := SectionName(number)
	if len(out) < length {
		return nil, griberr.Truncated(what+" output buffer", length, len(out))
	}
	w := NewWriter(make([]byte, length), what)
	w.dst = out[:length]
	w.Uint32(uint32(length))
	w.Uint8(number)
	return w, nil
}

// Close checks that a decoded layout consumed the whole section.
func (r *Reader) Close() error {
	if r.err != nil {
		return r.err
	}
	if r.pos != len(r.buf) {
		return griberr.Malformed("%s: layout ends at octet %d but section length is %d", r.what, r.pos, len(r.buf))
	}
	return nil
}

// Close checks that an encoded layout filled the whole section, then copies
// a section started by CreateSection into its output buffer.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if w.pos != len(w.buf) {
		return griberr.Malformed("%s: wrote %d octets of a %d octet section", w.what, w.pos, len(w.buf))
	}
	copy(w.dst, w.buf)
	return nil
}

// Uint32At reads a 4-octet unsigned integer at offset off.
func Uint32At(b []byte, off int) uint32 {
	return uint32(b[off])<<24 | uint32(b[off+1])<<16 | uint32(b[off+2])<<8 | uint32(b[off+3])
}

// SectionName returns a short description of a section number for messages.
func SectionName(number uint8) string {
	switch number {
	case 4:
		return "product definition section"
	case 5:
		return "data representation section"
	case 6:
		return "bitmap section"
	case 7:
		return "data section"
	default:
		return "section"
	}
}
