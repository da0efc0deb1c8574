// Package drt implements GRIB2 data representation templates (section 5),
// which describe how the values in the data section are encoded.
//
// See https://apps.ecmwf.int/codes/grib/format/grib2/sections/5/
package drt

import (
	"io"

	"github.com/golang/glog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/sdifrance/gribtemplates/griberr"
	"github.com/sdifrance/gribtemplates/internal/octet"
)

// Section number of the data representation section.
const Section = 5

// Section lengths in octets, header included.
const (
	HeaderLen            = 11
	SimplePackingSize    = 21
	IEEESize             = 12
	CCSDSSize            = 25
	LogSimplePackingSize = 24
)

// Template is a data representation template.
type Template interface {
	// Number returns the template number, e.g. 42 for template 5.42.
	Number() int
	// ByteLength returns the length of the packed section.
	ByteLength() int
	// Pack writes the section into out, which must hold ByteLength octets.
	Pack(out []byte) error
	// Unpack replaces the template's fields with those decoded from in. On
	// failure the template is left unchanged.
	Unpack(in []byte) error
	// PackedPoints returns the number of values stored in the data section.
	PackedPoints() int
	// Print writes a text dump of the template.
	Print(w io.Writer) error
}

// Header holds the section header field every template carries.
type Header struct {
	// DataPoints is the number of data points whose values are given in the
	// data section.
	DataPoints uint32
}

// PackedPoints implements Template.
func (h *Header) PackedPoints() int { return int(h.DataPoints) }

var registry = map[int]func() Template{
	0:  func() Template { return &SimplePacking{} },
	4:  func() Template { return &IEEE{} },
	42: func() Template { return &CCSDS{} },
	61: func() Template { return &LogSimplePacking{} },
}

// New returns an empty template for the given template number.
func New(number int) (Template, error) {
	f, ok := registry[number]
	if !ok {
		return nil, &griberr.UnsupportedTemplateError{Section: Section, Number: number}
	}
	return f(), nil
}

// Numbers returns the supported template numbers in ascending order.
func Numbers() []int {
	n := maps.Keys(registry)
	slices.Sort(n)
	return n
}

// TemplateNumber reads the template number from a section header.
func TemplateNumber(section []byte) (int, error) {
	r, err := octet.OpenSection(section, Section, HeaderLen)
	if err != nil {
		return 0, err
	}
	r.Skip(4)
	return int(r.Uint16()), r.Err()
}

func openSection(in []byte, number int) (*octet.Reader, Header, error) {
	r, err := octet.OpenSection(in, Section, HeaderLen)
	if err != nil {
		return nil, Header{}, err
	}
	h := Header{DataPoints: r.Uint32()}
	if got := int(r.Uint16()); got != number {
		return nil, Header{}, griberr.Malformed("data representation section holds template 5.%d, want 5.%d", got, number)
	}
	glog.V(2).Infof("unpacking template 5.%d for %d packed points", number, h.DataPoints)
	return r, h, nil
}

func createSection(out []byte, h Header, number, length int) (*octet.Writer, error) {
	w, err := octet.CreateSection(out, Section, length)
	if err != nil {
		return nil, err
	}
	w.Uint32(h.DataPoints)
	w.Uint16(uint16(number))
	return w, nil
}

// Original field value types, code table 5.1.
const (
	OriginalFloat   = 0
	OriginalInteger = 1
	OriginalMissing = 255
)

func originalTypeName(t uint8) string {
	switch {
	case t == OriginalFloat:
		return "Floating point"
	case t == OriginalInteger:
		return "Integer"
	case t == OriginalMissing:
		return "Missing"
	case t <= 191:
		return "Reserved"
	default:
		return "Reserved for local use"
	}
}
