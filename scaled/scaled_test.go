package scaled

import (
	"bytes"
	"math"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		factor uint8
		scaled int32
		want   float64
	}{
		{"positive exponent", 5, 1234, 1234e-5},
		{"sign bit on exponent", 133, 1234, 1234e5},
		{"zero factor", 0, 850, 850},
		{"negative scaled value", 2, -150, -1.5},
		{"factor 127", 127, 1, 1e-127},
		{"factor 128 is times one", 128, 42, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.factor, tt.scaled)
			if math.Abs(got-tt.want) > math.Abs(tt.want)*1e-12 {
				t.Errorf("Decode(%d, %d) = %g, want %g", tt.factor, tt.scaled, got, tt.want)
			}
		})
	}
}

func TestUnspecified(t *testing.T) {
	tests := []struct {
		name   string
		factor uint8
		scaled int32
		want   bool
	}{
		{"missing factor", 255, 1234, true},
		{"missing factor zero value", 255, 0, true},
		{"all bits set value", 0, MissingScaled, true},
		{"ordinary", 0, 0, false},
		{"large but present", 3, -MissingScaled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnspecified(tt.factor, tt.scaled); got != tt.want {
				t.Errorf("IsUnspecified(%d, %d) = %v, want %v", tt.factor, tt.scaled, got, tt.want)
			}
			if got := math.IsNaN(Decode(tt.factor, tt.scaled)); got != tt.want {
				t.Errorf("IsNaN(Decode(%d, %d)) = %v, want %v", tt.factor, tt.scaled, got, tt.want)
			}
		})
	}
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     Value
	}{
		{2, 0, Value{0, 2}},
		{0.995, 3, Value{3, 995}},
		{-12.5, 1, Value{1, -125}},
		{50000, -3, Value{0x83, 50}},
		{math.NaN(), 2, Missing},
	}
	for _, tt := range tests {
		if got := FromFloat(tt.v, tt.decimals); got != tt.want {
			t.Errorf("FromFloat(%g, %d) = %+v, want %+v", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestReadPut(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want []byte
	}{
		{"height", Value{0, 2}, []byte{0, 0, 0, 0, 2}},
		{"negative depth", Value{2, -10}, []byte{2, 0x80, 0, 0, 10}},
		{"missing", Missing, []byte{0xff, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]byte, Size)
			if err := Put(got, tt.v); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Put(%+v) = %x, want %x", tt.v, got, tt.want)
			}
			if back := Read(got); back != tt.v {
				t.Errorf("Read(Put(%+v)) = %+v", tt.v, back)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := (Value{2, 150}).String(); got != "1.5" {
		t.Errorf("String() = %q, want %q", got, "1.5")
	}
	if got := Missing.String(); got != "missing" {
		t.Errorf("Missing.String() = %q, want %q", got, "missing")
	}
}
