// Package scaled decodes the scale factor / scaled value pairs GRIB2 uses for
// levels, sizes, wavelengths and wave numbers.
//
// A pair occupies 5 octets: a 1-octet scale factor F followed by a 4-octet
// scaled value S. The physical value is S × 10^-F. The top bit of F is a sign
// flag on the exponent, not two's complement, so F = 0x85 means S × 10^5.
// F = 255, or S with all bits set, means the value is missing.
package scaled

import (
	"math"
	"strconv"

	"github.com/sdifrance/gribtemplates/bitpack"
)

const (
	// Size is the encoded size of a Value in octets.
	Size = 5

	// MissingFactor marks an unspecified value.
	MissingFactor = 255
	// MissingScaled is the scaled value with all 32 bits set, read as
	// sign-magnitude.
	MissingScaled = -bitpack.MaxInt32
)

// Missing is the canonical unspecified value.
var Missing = Value{Factor: MissingFactor, Scaled: MissingScaled}

// Value is a scale factor and scaled integer pair.
type Value struct {
	Factor uint8
	Scaled int32
}

// Decode returns the physical value of the pair, or NaN when it is unspecified.
func Decode(factor uint8, scaledValue int32) float64 {
	if IsUnspecified(factor, scaledValue) {
		return math.NaN()
	}
	if factor > 127 {
		return float64(scaledValue) * math.Pow10(int(factor&0x7f))
	}
	return float64(scaledValue) * math.Pow10(-int(factor))
}

// IsUnspecified reports whether the pair is the missing sentinel.
func IsUnspecified(factor uint8, scaledValue int32) bool {
	return factor == MissingFactor || scaledValue == MissingScaled
}

// FromFloat encodes v with the given number of decimals. Negative decimals
// scale up, so FromFloat(50000, -3) stores 50 with factor 0x83. NaN encodes as
// Missing.
func FromFloat(v float64, decimals int) Value {
	if math.IsNaN(v) {
		return Missing
	}
	var f uint8
	switch {
	case decimals >= 0:
		f = uint8(decimals)
	default:
		f = 0x80 | uint8(-decimals)
	}
	return Value{Factor: f, Scaled: int32(math.Round(v * math.Pow10(decimals)))}
}

// Float returns the physical value, NaN when unspecified.
func (v Value) Float() float64 { return Decode(v.Factor, v.Scaled) }

// Unspecified reports whether v is the missing sentinel.
func (v Value) Unspecified() bool { return IsUnspecified(v.Factor, v.Scaled) }

func (v Value) String() string {
	if v.Unspecified() {
		return "missing"
	}
	return strconv.FormatFloat(v.Float(), 'g', -1, 64)
}

// Read decodes a Value from the first 5 octets of b.
func Read(b []byte) Value {
	return Value{Factor: b[0], Scaled: bitpack.Int32(b[1:Size])}
}

// Put encodes v into the first 5 octets of b.
func Put(b []byte, v Value) error {
	b[0] = v.Factor
	return bitpack.PutInt32(b[1:Size], v.Scaled)
}
