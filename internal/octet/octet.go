// Package octet provides cursors for reading and writing GRIB2 section
// octets.
//
// Both cursors keep the first error they hit and turn later calls into no-ops,
// so a template can decode or encode its whole layout and check Err once.
package octet

import (
	"github.com/sdifrance/gribtemplates/bitpack"
	"github.com/sdifrance/gribtemplates/griberr"
	"github.com/sdifrance/gribtemplates/scaled"
)

// Reader reads big-endian fields from a byte slice.
type Reader struct {
	buf  []byte
	pos  int
	err  error
	what string
}

// NewReader returns a Reader over b. what names the structure in errors.
func NewReader(b []byte, what string) *Reader {
	return &Reader{buf: b, what: what}
}

// Pos returns the current read position.
func (r *Reader) Pos() int { return r.pos }

// Len returns the size of the underlying buffer.
func (r *Reader) Len() int { return len(r.buf) }

// Remaining returns the number of unread octets.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Err returns the first error encountered.
func (r *Reader) Err() error { return r.err }

// Need records a truncation error unless n octets remain. It is used to
// validate repeating group counts before allocating for them.
func (r *Reader) Need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.Remaining() < n {
		r.err = griberr.Truncated(r.what, r.pos+n, len(r.buf))
		return false
	}
	return true
}

func (r *Reader) take(n int) []byte {
	if !r.Need(n) {
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

// Skip advances the cursor by n octets.
func (r *Reader) Skip(n int) { r.take(n) }

// Uint8 reads one octet.
func (r *Reader) Uint8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

// Uint16 reads a 2-octet unsigned integer.
func (r *Reader) Uint16() uint16 {
	if b := r.take(2); b != nil {
		return bitpack.Uint16(b)
	}
	return 0
}

// Uint32 reads a 4-octet unsigned integer.
func (r *Reader) Uint32() uint32 {
	if b := r.take(4); b != nil {
		return bitpack.Uint32(b)
	}
	return 0
}

// Int16 reads a 2-octet sign-magnitude integer.
func (r *Reader) Int16() int16 {
	if b := r.take(2); b != nil {
		return bitpack.Int16(b)
	}
	return 0
}

// Float32 reads a 4-octet IEEE-754 value.
func (r *Reader) Float32() float32 {
	if b := r.take(4); b != nil {
		return bitpack.Float32(b)
	}
	return 0
}

// Scaled reads a scale factor and scaled value pair.
func (r *Reader) Scaled() scaled.Value {
	if b := r.take(scaled.Size); b != nil {
		return scaled.Read(b)
	}
	return scaled.Value{}
}

// Bytes returns the next n octets without copying.
func (r *Reader) Bytes(n int) []byte { return r.take(n) }

// Rest returns the unread octets without copying and moves to the end.
func (r *Reader) Rest() []byte {
	return r.take(r.Remaining())
}

// Writer writes big-endian fields into a byte slice.
type Writer struct {
	buf  []byte
	pos  int
	err  error
	what string
	// dst receives buf on a successful Close, for writers from CreateSection.
	dst []byte
}

// NewWriter returns a Writer over b. what names the structure in errors.
func NewWriter(b []byte, what string) *Writer {
	return &Writer{buf: b, what: what}
}

// Pos returns the current write position.
func (w *Writer) Pos() int { return w.pos }

// Err returns the first error encountered.
func (w *Writer) Err() error { return w.err }

// Fail records err unless an earlier error is already held.
func (w *Writer) Fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) take(n int) []byte {
	if w.err != nil {
		return nil
	}
	if len(w.buf)-w.pos < n {
		w.err = griberr.Truncated(w.what, w.pos+n, len(w.buf))
		return nil
	}
	b := w.buf[w.pos : w.pos+n]
	w.pos += n
	return b
}

// Uint8 writes one octet.
func (w *Writer) Uint8(v uint8) {
	if b := w.take(1); b != nil {
		b[0] = v
	}
}

// Uint16 writes a 2-octet unsigned integer.
func (w *Writer) Uint16(v uint16) {
	if b := w.take(2); b != nil {
		bitpack.PutUint16(b, v)
	}
}

// Uint32 writes a 4-octet unsigned integer.
func (w *Writer) Uint32(v uint32) {
	if b := w.take(4); b != nil {
		bitpack.PutUint32(b, v)
	}
}

// Int16 writes a 2-octet sign-magnitude integer.
func (w *Writer) Int16(v int16) {
	if b := w.take(2); b != nil {
		w.Fail(bitpack.PutInt16(b, v))
	}
}

// Float32 writes a 4-octet IEEE-754 value.
func (w *Writer) Float32(v float32) {
	if b := w.take(4); b != nil {
		bitpack.PutFloat32(b, v)
	}
}

// Scaled writes a scale factor and scaled value pair.
func (w *Writer) Scaled(v scaled.Value) {
	if b := w.take(scaled.Size); b != nil {
		w.Fail(scaled.Put(b, v))
	}
}

// Bytes copies p into the buffer.
func (w *Writer) Bytes(p []byte) {
	if b := w.take(len(p)); b != nil {
		copy(b, p)
	}
}

// Next reserves n octets and returns them for the caller to fill.
func (w *Writer) Next(n int) []byte {
	return w.take(n)
}
