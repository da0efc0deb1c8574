// Package bitpack contains the octet and bit level primitives shared by the
// GRIB2 template codecs.
//
// All multi-octet quantities in GRIB2 are big endian. Signed quantities are
// sign-magnitude, not two's complement:
//
//	Negative values shall be indicated by setting the most significant bit
//	(bit 1) of the left-hand octet to 1 (on); the remaining bits hold the
//	absolute value.
//
// Callers pass the slice positioned at the field, the way encoding/binary
// does, and must ensure it is long enough.
package bitpack

import (
	"encoding/binary"
	"math"

	"github.com/sdifrance/gribtemplates/griberr"
	"golang.org/x/exp/constraints"
)

const (
	signBit16 = 1 << 15
	signBit32 = 1 << 31

	// MaxInt16 is the largest magnitude a 2-octet sign-magnitude field holds.
	MaxInt16 = signBit16 - 1
	// MaxInt32 is the largest magnitude a 4-octet sign-magnitude field holds.
	MaxInt32 = signBit32 - 1
)

// Uint16 reads a 2-octet unsigned integer.
func Uint16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }

// Uint32 reads a 4-octet unsigned integer.
func Uint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// PutUint16 writes a 2-octet unsigned integer.
func PutUint16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }

// PutUint32 writes a 4-octet unsigned integer.
func PutUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }

// Int16 reads a 2-octet sign-magnitude integer.
func Int16(b []byte) int16 {
	unsigned := Uint16(b)
	abs := int16(unsigned &^ signBit16)
	if unsigned&signBit16 != 0 {
		return -abs
	}
	return abs
}

// Int32 reads a 4-octet sign-magnitude integer.
func Int32(b []byte) int32 {
	unsigned := Uint32(b)
	abs := int32(unsigned &^ signBit32)
	if unsigned&signBit32 != 0 {
		return -abs
	}
	return abs
}

// PutInt16 writes a 2-octet sign-magnitude integer. Every int16 except
// math.MinInt16 is representable.
func PutInt16(b []byte, v int16) error {
	abs, neg := magnitude(v)
	if abs > MaxInt16 {
		return griberr.Overflow("%d does not fit a 2-octet sign-magnitude field", v)
	}
	u := uint16(abs)
	if neg {
		u |= signBit16
	}
	PutUint16(b, u)
	return nil
}

// PutInt32 writes a 4-octet sign-magnitude integer. Every int32 except
// math.MinInt32 is representable.
func PutInt32(b []byte, v int32) error {
	abs, neg := magnitude(v)
	if abs > MaxInt32 {
		return griberr.Overflow("%d does not fit a 4-octet sign-magnitude field", v)
	}
	u := uint32(abs)
	if neg {
		u |= signBit32
	}
	PutUint32(b, u)
	return nil
}

func magnitude[T constraints.Signed](v T) (uint64, bool) {
	if v < 0 {
		return uint64(-int64(v)), true
	}
	return uint64(v), false
}

// ToIEEE returns the IEEE-754 single precision bit pattern of f.
func ToIEEE(f float32) uint32 { return math.Float32bits(f) }

// FromIEEE returns the float32 with the IEEE-754 bit pattern u.
func FromIEEE(u uint32) float32 { return math.Float32frombits(u) }

// Float32 reads a 4-octet IEEE-754 value.
func Float32(b []byte) float32 { return FromIEEE(Uint32(b)) }

// PutFloat32 writes a 4-octet IEEE-754 value.
func PutFloat32(b []byte, f float32) { PutUint32(b, ToIEEE(f)) }
