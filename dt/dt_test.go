package dt

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/sdifrance/gribtemplates/bitpack"
	"github.com/sdifrance/gribtemplates/drt"
	"github.com/sdifrance/gribtemplates/griberr"
)

var mask = []bool{true, false, true, true, false, false, true, true, true, false}

func TestApplyBitmap(t *testing.T) {
	full := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	compact, err := ApplyBitmapPack(full, mask)
	if err != nil {
		t.Fatalf("ApplyBitmapPack() error = %v", err)
	}
	if want := []float64{1, 3, 4, 7, 8, 9}; !reflect.DeepEqual(compact, want) {
		t.Errorf("ApplyBitmapPack() = %v, want %v", compact, want)
	}
	got, err := ApplyBitmapUnpack(compact, mask, Missing)
	if err != nil {
		t.Fatalf("ApplyBitmapUnpack() error = %v", err)
	}
	want := []float64{1, Missing, 3, 4, Missing, Missing, 7, 8, 9, Missing}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ApplyBitmapUnpack() = %v, want %v", got, want)
	}
	again, err := ApplyBitmapPack(got, mask)
	if err != nil || !reflect.DeepEqual(again, compact) {
		t.Errorf("ApplyBitmapPack(ApplyBitmapUnpack(x)) = %v, %v; want %v", again, err, compact)
	}
}

func TestApplyBitmapNil(t *testing.T) {
	in := []float64{1, 2}
	got, err := ApplyBitmapPack(in, nil)
	if err != nil || !reflect.DeepEqual(got, in) {
		t.Errorf("ApplyBitmapPack(nil bitmap) = %v, %v", got, err)
	}
	got[0] = 9
	if in[0] != 1 {
		t.Error("ApplyBitmapPack(nil bitmap) shares its input")
	}
}

func TestApplyBitmapErrors(t *testing.T) {
	if _, err := ApplyBitmapPack(make([]float64, 9), mask); !errors.Is(err, griberr.ErrMalformedSection) {
		t.Errorf("ApplyBitmapPack(short) error = %v", err)
	}
	if _, err := ApplyBitmapUnpack(make([]float64, 7), mask, Missing); !errors.Is(err, griberr.ErrMalformedSection) {
		t.Errorf("ApplyBitmapUnpack(long) error = %v", err)
	}
}

func TestBitmapSection(t *testing.T) {
	b, err := PackBitmapSection(mask)
	if err != nil {
		t.Fatalf("PackBitmapSection() error = %v", err)
	}
	want := []byte{0, 0, 0, 8, 6, 0, 0xb3, 0x80}
	if !bytes.Equal(b, want) {
		t.Errorf("PackBitmapSection() = % x, want % x", b, want)
	}
	got, err := UnpackBitmapSection(b, len(mask))
	if err != nil {
		t.Fatalf("UnpackBitmapSection() error = %v", err)
	}
	if !reflect.DeepEqual(got, mask) {
		t.Errorf("UnpackBitmapSection() = %v, want %v", got, mask)
	}

	none, err := PackBitmapSection(nil)
	if err != nil {
		t.Fatalf("PackBitmapSection(nil) error = %v", err)
	}
	if got, err := UnpackBitmapSection(none, 10); got != nil || err != nil {
		t.Errorf("UnpackBitmapSection(no bitmap) = %v, %v; want nil, nil", got, err)
	}
}

func TestBitmapSectionErrors(t *testing.T) {
	predefined := []byte{0, 0, 0, 6, 6, 3}
	short := []byte{0, 0, 0, 7, 6, 0, 0xb3}
	tests := []struct {
		name string
		in   []byte
		want error
	}{
		{"predefined bitmap", predefined, griberr.ErrNotImplemented},
		{"short bitmap", short, griberr.ErrTruncatedRecord},
		{"wrong section", []byte{0, 0, 0, 6, 7, 0}, griberr.ErrMalformedSection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnpackBitmapSection(tt.in, 10); !errors.Is(err, tt.want) {
				t.Errorf("UnpackBitmapSection() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func pack(t *testing.T, tmpl Template) []byte {
	t.Helper()
	buf := make([]byte, tmpl.ByteLength())
	if err := tmpl.Pack(buf); err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	return buf
}

func TestSimplePackingRoundTrip(t *testing.T) {
	full := []float64{271.3, 0, 280.15, 265.02, 0, 0, 299.9, 288.8, 271.3, 0}
	compact, _ := ApplyBitmapPack(full, mask)
	params, err := drt.FitSimplePacking(compact, 2, 16)
	if err != nil {
		t.Fatalf("FitSimplePacking() error = %v", err)
	}
	rep := &drt.SimplePacking{Header: drt.Header{DataPoints: uint32(len(compact))}, Params: params}
	tmpl, err := New(rep, Field{GridPoints: len(full), Bitmap: mask, Values: full}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	buf := pack(t, tmpl)
	if want := HeaderLen + bitpack.PackedLen(6, 16); len(buf) != want {
		t.Errorf("ByteLength() = %d, want %d", len(buf), want)
	}

	out, _ := New(rep, Field{GridPoints: len(full), Bitmap: mask}, nil)
	if err := out.Unpack(buf); err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	tol := math.Ldexp(0.5, int(params.BinaryScale))*0.01 + 1e-9
	for i, v := range out.Data() {
		if !mask[i] {
			if v != Missing {
				t.Errorf("point %d = %g, want Missing", i, v)
			}
			continue
		}
		if math.Abs(v-full[i]) > tol {
			t.Errorf("point %d = %g, want %g within %g", i, v, full[i], tol)
		}
	}
}

func TestSimplePackingConstantField(t *testing.T) {
	rep := &drt.SimplePacking{Header: drt.Header{DataPoints: 4}, Params: drt.Params{ReferenceValue: 15, DecimalScale: 1}}
	tmpl := &SimplePacking{Field: Field{Values: []float64{1.5, 1.5, 1.5, 1.5}}, Rep: rep}
	buf := pack(t, tmpl)
	if len(buf) != HeaderLen {
		t.Errorf("constant field section is %d octets, want %d", len(buf), HeaderLen)
	}
	out := &SimplePacking{Rep: rep}
	if err := out.Unpack(buf); err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	if want := []float64{1.5, 1.5, 1.5, 1.5}; !reflect.DeepEqual(out.Values, want) {
		t.Errorf("Unpack() = %v, want %v", out.Values, want)
	}
}

func TestIEEERoundTrip(t *testing.T) {
	full := []float64{1.5, -0.25, 0, 3e10, float64(math.SmallestNonzeroFloat32), 7, -8, 9, 10, 11}
	rep := &drt.IEEE{Header: drt.Header{DataPoints: 6}, Precision: drt.PrecisionSingle}
	tmpl := &IEEE{Field: Field{Bitmap: mask, Values: full}, Rep: rep}
	buf := pack(t, tmpl)
	if len(buf) != HeaderLen+6*4 {
		t.Errorf("section length = %d, want %d", len(buf), HeaderLen+6*4)
	}
	out := &IEEE{Field: Field{Bitmap: mask}, Rep: rep}
	if err := out.Unpack(buf); err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	want, _ := ApplyBitmapUnpack([]float64{1.5, 0, 3e10, -8, 9, 10}, mask, Missing)
	want[3] = float64(float32(3e10))
	if !reflect.DeepEqual(out.Values, want) {
		t.Errorf("Unpack() = %v, want %v", out.Values, want)
	}
}

func TestIEEEPrecision(t *testing.T) {
	for _, p := range []uint8{drt.PrecisionDouble, drt.PrecisionQuadruple, drt.PrecisionMissing} {
		rep := &drt.IEEE{Header: drt.Header{DataPoints: 1}, Precision: p}
		tmpl := &IEEE{Field: Field{Values: []float64{1}}, Rep: rep}
		if err := tmpl.Pack(make([]byte, 64)); !errors.Is(err, griberr.ErrNotImplemented) {
			t.Errorf("precision %d Pack() error = %v, want %v", p, err, griberr.ErrNotImplemented)
		}
		if err := tmpl.Unpack([]byte{0, 0, 0, 13, 7, 0, 0, 0, 0, 0, 0, 0, 0}); !errors.Is(err, griberr.ErrNotImplemented) {
			t.Errorf("precision %d Unpack() error = %v, want %v", p, err, griberr.ErrNotImplemented)
		}
		if !reflect.DeepEqual(tmpl.Values, []float64{1}) {
			t.Errorf("precision %d Unpack() modified Values: %v", p, tmpl.Values)
		}
	}
}

func TestUnpackErrors(t *testing.T) {
	rep := &drt.SimplePacking{Header: drt.Header{DataPoints: 6}, Params: drt.Params{Bits: 8}}
	valid := []byte{0, 0, 0, 11, 7, 1, 2, 3, 4, 5, 6}
	tests := []struct {
		name  string
		field Field
		in    []byte
		want  error
	}{
		{"short payload", Field{}, valid[:10], griberr.ErrTruncatedRecord},
		{"trailing octets", Field{}, append([]byte{0, 0, 0, 12, 7, 1, 2, 3, 4, 5, 6}, 7), griberr.ErrMalformedSection},
		{"bitmap count", Field{Bitmap: []bool{true, true}}, valid, griberr.ErrMalformedSection},
		{"more points than grid", Field{GridPoints: 5}, valid, griberr.ErrMalformedSection},
		{"wrong section", Field{}, []byte{0, 0, 0, 11, 5, 1, 2, 3, 4, 5, 6}, griberr.ErrMalformedSection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.field.Values = []float64{42}
			tmpl := &SimplePacking{Field: tt.field, Rep: rep}
			if err := tmpl.Unpack(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("Unpack() error = %v, want %v", err, tt.want)
			}
			if !reflect.DeepEqual(tmpl.Values, []float64{42}) {
				t.Errorf("failed Unpack() modified Values: %v", tmpl.Values)
			}
		})
	}
	empty := []byte{0, 0, 0, 5, 7}
	for _, n := range []uint32{MaxConstantPoints + 1, 0xffffffff} {
		huge := &SimplePacking{Rep: &drt.SimplePacking{Header: drt.Header{DataPoints: n}}}
		if err := huge.Unpack(empty); !errors.Is(err, griberr.ErrMalformedSection) {
			t.Errorf("Unpack(constant field of %d points, grid unknown) error = %v, want %v", n, err, griberr.ErrMalformedSection)
		}
		sized := &SimplePacking{Field: Field{GridPoints: MaxConstantPoints + 1}, Rep: &drt.SimplePacking{Header: drt.Header{DataPoints: 4}}}
		if err := sized.Unpack(empty); err != nil {
			t.Errorf("Unpack(constant field of 4 points) error = %v", err)
		}
	}
	ok := &SimplePacking{Rep: rep}
	if err := ok.Unpack(valid); err != nil {
		t.Fatalf("Unpack(valid) error = %v", err)
	}
	if want := []float64{1, 2, 3, 4, 5, 6}; !reflect.DeepEqual(ok.Values, want) {
		t.Errorf("Unpack(valid) = %v, want %v", ok.Values, want)
	}
}

func TestPackErrors(t *testing.T) {
	rep := &drt.SimplePacking{Header: drt.Header{DataPoints: 3}, Params: drt.Params{Bits: 4}}
	tests := []struct {
		name   string
		values []float64
		want   error
	}{
		{"point count", []float64{1, 2}, griberr.ErrMalformedSection},
		{"value too large", []float64{1, 2, 16}, griberr.ErrBitWidthOverflow},
		{"negative value", []float64{1, -1, 2}, griberr.ErrBitWidthOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := &SimplePacking{Field: Field{Values: tt.values}, Rep: rep}
			if err := tmpl.Pack(make([]byte, 64)); !errors.Is(err, tt.want) {
				t.Errorf("Pack() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLogSimplePacking(t *testing.T) {
	rep := &drt.LogSimplePacking{
		Header:        drt.Header{DataPoints: 3},
		Params:        drt.Params{Bits: 8},
		PreProcessing: 1,
	}
	tmpl := &LogSimplePacking{Rep: rep}
	if err := tmpl.Unpack([]byte{0, 0, 0, 8, 7, 0, 1, 2}); err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	want := []float64{0, math.E - 1, math.Exp(2) - 1}
	for i, v := range tmpl.Values {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("value %d = %g, want %g", i, v, want[i])
		}
	}
	if got := tmpl.ByteLength(); got != 8 {
		t.Errorf("ByteLength() = %d, want 8", got)
	}
	if err := tmpl.Pack(make([]byte, 8)); !errors.Is(err, griberr.ErrNotImplemented) {
		t.Errorf("Pack() error = %v, want %v", err, griberr.ErrNotImplemented)
	}
}

func TestLogSimplePackingConstantField(t *testing.T) {
	rep := &drt.LogSimplePacking{
		Header:        drt.Header{DataPoints: 6},
		Params:        drt.Params{ReferenceValue: 0, DecimalScale: 2, Bits: 0},
		PreProcessing: 1,
	}
	tmpl := &LogSimplePacking{Field: Field{GridPoints: 10, Bitmap: mask}, Rep: rep}
	if err := tmpl.Unpack([]byte{0, 0, 0, 5, 7}); err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	for i, v := range tmpl.Values {
		want := 0.0
		if !mask[i] {
			want = Missing
		}
		if v != want {
			t.Errorf("value %d = %g, want %g", i, v, want)
		}
	}
}

// plainCodec stores the packed integers without compression.
type plainCodec struct{}

func (plainCodec) Encode(xs []int64, rep *drt.CCSDS) ([]byte, error) {
	b := make([]byte, bitpack.PackedLen(len(xs), rep.Bits))
	return b, bitpack.PackBits(b, xs, rep.Bits, 0)
}

func (plainCodec) Decode(payload []byte, rep *drt.CCSDS) ([]int64, error) {
	return bitpack.UnpackBits(payload, rep.Bits, 0, rep.PackedPoints())
}

func TestCCSDS(t *testing.T) {
	rep := &drt.CCSDS{Header: drt.Header{DataPoints: 4}, Params: drt.Params{ReferenceValue: 10, Bits: 12}, BlockSize: 32}
	values := []float64{10, 11, 500, 4105}
	tmpl, err := New(rep, Field{Values: values}, plainCodec{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	buf := pack(t, tmpl)
	if len(buf) != HeaderLen+6 {
		t.Errorf("section length = %d, want %d", len(buf), HeaderLen+6)
	}
	out, _ := New(rep, Field{}, plainCodec{})
	if err := out.Unpack(buf); err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	if !reflect.DeepEqual(out.Data(), values) {
		t.Errorf("Unpack() = %v, want %v", out.Data(), values)
	}

	bare := &CCSDS{Field: Field{Values: values}, Rep: rep}
	if err := bare.Pack(make([]byte, 64)); !errors.Is(err, griberr.ErrNotImplemented) {
		t.Errorf("Pack() without codec error = %v, want %v", err, griberr.ErrNotImplemented)
	}
	if err := bare.Unpack(buf); !errors.Is(err, griberr.ErrNotImplemented) {
		t.Errorf("Unpack() without codec error = %v, want %v", err, griberr.ErrNotImplemented)
	}
	if got := bare.ByteLength(); got != HeaderLen {
		t.Errorf("ByteLength() without codec = %d, want %d", got, HeaderLen)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		rep  drt.Template
		want int
	}{
		{&drt.SimplePacking{}, 0},
		{&drt.IEEE{}, 4},
		{&drt.CCSDS{}, 42},
		{&drt.LogSimplePacking{}, 61},
	}
	for _, tt := range tests {
		tmpl, err := New(tt.rep, Field{}, nil)
		if err != nil {
			t.Fatalf("New(5.%d) error = %v", tt.rep.Number(), err)
		}
		if tmpl.Number() != tt.want {
			t.Errorf("New(5.%d).Number() = %d, want %d", tt.rep.Number(), tmpl.Number(), tt.want)
		}
	}
	if _, err := New(nil, Field{}, nil); !errors.Is(err, griberr.ErrMalformedSection) {
		t.Errorf("New(nil) error = %v, want %v", err, griberr.ErrMalformedSection)
	}
}

func TestPrint(t *testing.T) {
	tmpl := &SimplePacking{Field: Field{Values: []float64{1, 2.5}}, Rep: &drt.SimplePacking{}}
	var b strings.Builder
	if err := tmpl.Print(&b); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if want := "DS length: 2\n1.000000 2.500000 \n"; b.String() != want {
		t.Errorf("Print() = %q, want %q", b.String(), want)
	}
}
