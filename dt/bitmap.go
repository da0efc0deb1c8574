package dt

import (
	"github.com/sdifrance/gribtemplates/bitpack"
	"github.com/sdifrance/gribtemplates/griberr"
	"github.com/sdifrance/gribtemplates/internal/octet"
)

// Bitmap section (section 6) layout.
const (
	BitmapSection   = 6
	BitmapHeaderLen = 6
)

// Bitmap indicators, code table 6.0.
const (
	BitmapFollows = 0
	BitmapNone    = 255
)

func countPresent(bitmap []bool) int {
	n := 0
	for _, b := range bitmap {
		if b {
			n++
		}
	}
	return n
}

// ApplyBitmapPack returns the values of full at the points bitmap marks
// present. A nil bitmap keeps every value.
func ApplyBitmapPack(full []float64, bitmap []bool) ([]float64, error) {
	if bitmap == nil {
		return append([]float64(nil), full...), nil
	}
	if len(full) != len(bitmap) {
		return nil, griberr.Malformed("bitmap has %d points, field has %d", len(bitmap), len(full))
	}
	out := make([]float64, 0, countPresent(bitmap))
	for i, ok := range bitmap {
		if ok {
			out = append(out, full[i])
		}
	}
	return out, nil
}

// ApplyBitmapUnpack spreads compact over the points bitmap marks present and
// sets every other point to missing. It is the inverse of ApplyBitmapPack.
func ApplyBitmapUnpack(compact []float64, bitmap []bool, missing float64) ([]float64, error) {
	if bitmap == nil {
		return append([]float64(nil), compact...), nil
	}
	if n := countPresent(bitmap); n != len(compact) {
		return nil, griberr.Malformed("bitmap marks %d points present, have %d values", n, len(compact))
	}
	out := make([]float64, len(bitmap))
	j := 0
	for i, ok := range bitmap {
		if ok {
			out[i] = compact[j]
			j++
		} else {
			out[i] = missing
		}
	}
	return out, nil
}

// UnpackBitmapSection decodes a bitmap section for a grid of gridPoints
// points. It returns a nil bitmap when the indicator says none applies.
func UnpackBitmapSection(in []byte, gridPoints int) ([]bool, error) {
	r, err := octet.OpenSection(in, BitmapSection, BitmapHeaderLen)
	if err != nil {
		return nil, err
	}
	switch ind := r.Uint8(); ind {
	case BitmapFollows:
	case BitmapNone:
		return nil, r.Close()
	default:
		return nil, griberr.NotImplemented("bitmap indicator %d", ind)
	}
	if gridPoints < 0 {
		return nil, griberr.Malformed("negative grid point count %d", gridPoints)
	}
	payload := r.Bytes(bitpack.PackedLen(gridPoints, 1))
	if err := r.Close(); err != nil {
		return nil, err
	}
	bits, err := bitpack.UnpackBits(payload, 1, 0, gridPoints)
	if err != nil {
		return nil, err
	}
	bitmap := make([]bool, gridPoints)
	for i, b := range bits {
		bitmap[i] = b == 1
	}
	return bitmap, nil
}

// BitmapSectionLen returns the length of the bitmap section PackBitmapSection
// writes for bitmap.
func BitmapSectionLen(bitmap []bool) int {
	if bitmap == nil {
		return BitmapHeaderLen
	}
	return BitmapHeaderLen + bitpack.PackedLen(len(bitmap), 1)
}

// PackBitmapSection encodes bitmap as a bitmap section. A nil bitmap is
// written with the no-bitmap indicator.
func PackBitmapSection(bitmap []bool) ([]byte, error) {
	out := make([]byte, BitmapSectionLen(bitmap))
	w, err := octet.CreateSection(out, BitmapSection, len(out))
	if err != nil {
		return nil, err
	}
	if bitmap == nil {
		w.Uint8(BitmapNone)
		return out, w.Close()
	}
	w.Uint8(BitmapFollows)
	bits := make([]int64, len(bitmap))
	for i, ok := range bitmap {
		if ok {
			bits[i] = 1
		}
	}
	if err := bitpack.PackBits(w.Next(bitpack.PackedLen(len(bits), 1)), bits, 1, 0); err != nil {
		return nil, err
	}
	return out, w.Close()
}
