package bitpack

import (
	"github.com/sdifrance/gribtemplates/griberr"
)

// MaxWidth is the widest field PackBits and UnpackBits handle.
const MaxWidth = 63

// PackedLen returns the number of octets needed to hold count values of width
// bits each, starting on an octet boundary.
func PackedLen(count int, width uint8) int {
	return (count*int(width) + 7) / 8
}

// Fits reports whether v is representable as an unsigned width-bit field.
func Fits(v int64, width uint8) bool {
	if v < 0 {
		return false
	}
	if width >= 64 {
		return true
	}
	return uint64(v)>>width == 0
}

// PackBits writes each value as an unsigned width-bit field into dst,
// beginning at bit startBit (bit 0 is the most significant bit of dst[0]).
// Fields are contiguous and ignore octet boundaries. Bits of dst outside the
// written range are left untouched.
func PackBits(dst []byte, values []int64, width uint8, startBit int) error {
	if width > MaxWidth {
		return griberr.Overflow("bit width %d exceeds %d", width, MaxWidth)
	}
	end := startBit + len(values)*int(width)
	if end > len(dst)*8 {
		return griberr.Truncated("packed bit array", (end+7)/8, len(dst))
	}
	for i, v := range values {
		if !Fits(v, width) {
			return griberr.Overflow("value %d at index %d does not fit %d bits", v, i, width)
		}
	}
	pos := startBit
	for _, v := range values {
		u := uint64(v)
		for b := int(width) - 1; b >= 0; b-- {
			mask := byte(0x80) >> uint(pos%8)
			if (u>>uint(b))&1 == 1 {
				dst[pos/8] |= mask
			} else {
				dst[pos/8] &^= mask
			}
			pos++
		}
	}
	return nil
}

// UnpackBits reads count unsigned width-bit fields from src beginning at bit
// startBit. A zero width yields count zeros without reading src.
func UnpackBits(src []byte, width uint8, startBit, count int) ([]int64, error) {
	if width > MaxWidth {
		return nil, griberr.Overflow("bit width %d exceeds %d", width, MaxWidth)
	}
	if count < 0 || startBit < 0 {
		return nil, griberr.Malformed("negative bit offset %d or count %d", startBit, count)
	}
	end := startBit + count*int(width)
	if end > len(src)*8 {
		return nil, griberr.Truncated("packed bit array", (end+7)/8, len(src))
	}
	out := make([]int64, count)
	if width == 0 {
		return out, nil
	}
	r := bitReader{buf: src, pos: startBit}
	for i := range out {
		out[i] = int64(r.read(int(width)))
	}
	return out, nil
}

// bitReader reads MSB-first fields. Bounds are checked by the caller.
type bitReader struct {
	buf []byte
	pos int
}

func (r *bitReader) read(n int) uint64 {
	if r.pos%8 == 0 {
		off := r.pos / 8
		switch n {
		case 8:
			r.pos += 8
			return uint64(r.buf[off])
		case 16:
			r.pos += 16
			return uint64(Uint16(r.buf[off:]))
		case 32:
			r.pos += 32
			return uint64(Uint32(r.buf[off:]))
		}
	}
	var v uint64
	for i := 0; i < n; i++ {
		bit := (r.buf[r.pos/8] >> (7 - uint(r.pos%8))) & 1
		v = v<<1 | uint64(bit)
		r.pos++
	}
	return v
}
