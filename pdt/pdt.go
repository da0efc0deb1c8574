// Package pdt implements the GRIB2 product definition templates (section 4)
// for satellite and atmospheric chemistry products.
//
// Each template is a struct with exported fields. Pack and Unpack work on the
// whole section, starting at the 4-octet section length, so ByteLength is the
// value written into octets 1-4. See
// https://apps.ecmwf.int/codes/grib/format/grib2/sections/4/
package pdt

import (
	"io"

	"github.com/golang/glog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/sdifrance/gribtemplates/catalog"
	"github.com/sdifrance/gribtemplates/griberr"
	"github.com/sdifrance/gribtemplates/internal/octet"
)

// Section number of the product definition section.
const Section = 4

// Layout sizes in octets. The template sizes include the section header and
// exclude the repeating groups.
const (
	HeaderLen    = 9
	BandSize     = 11
	IntervalSize = 12

	SatelliteSize                   = 23
	SatelliteEnsembleSize           = 26
	SatelliteEnsembleStatisticsSize = 38
	SatelliteObservationSize        = 15
	ChemicalStatisticsSize          = 48
	ChemicalEnsembleStatisticsSize  = 51
	AerosolEnsembleSize             = 50
	AerosolStatisticsSize           = 59
	AerosolOpticalEnsembleSize      = 61
)

// maxCount is the largest repeating group count an octet can hold.
const maxCount = 255

// Template is a product definition template.
type Template interface {
	// Number returns the template number, e.g. 32 for template 4.32.
	Number() int
	// ByteLength returns the length of the packed section.
	ByteLength() int
	// Pack writes the section into out, which must hold ByteLength octets.
	Pack(out []byte) error
	// Unpack replaces the template's fields with those decoded from in. On
	// failure the template is left unchanged.
	Unpack(in []byte) error
	// ForecastLeadSeconds returns the lead time from the reference time in
	// seconds.
	ForecastLeadSeconds() int64
	// Summary describes the product with names from c.
	Summary(discipline uint8, c catalog.Catalog) Summary
	// Print writes a text dump of the template.
	Print(w io.Writer, discipline uint8, c catalog.Catalog) error
}

var registry = map[int]func() Template{
	32: func() Template { return &Satellite{} },
	33: func() Template { return &SatelliteEnsemble{} },
	34: func() Template { return &SatelliteEnsembleStatistics{} },
	35: func() Template { return &SatelliteObservation{} },
	42: func() Template { return &ChemicalStatistics{} },
	43: func() Template { return &ChemicalEnsembleStatistics{} },
	45: func() Template { return &AerosolEnsemble{} },
	46: func() Template { return &AerosolStatistics{} },
	49: func() Template { return &AerosolOpticalEnsemble{} },
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
	r.Skip(2)
	return int(r.Uint16()), r.Err()
}

// openSection validates the section header of in for template number and
// returns a reader positioned at the template body.
func openSection(in []byte, number int) (*octet.Reader, error) {
	r, err := octet.OpenSection(in, Section, HeaderLen)
	if err != nil {
		return nil, err
	}
	coords := r.Uint16()
	if got := int(r.Uint16()); got != number {
		return nil, griberr.Malformed("product definition section holds template 4.%d, want 4.%d", got, number)
	}
	if coords != 0 {
		return nil, griberr.NotImplemented("product definition section with %d coordinate values", coords)
	}
	glog.V(2).Infof("unpacking template 4.%d from %d octets", number, r.Len())
	return r, nil
}

// createSection writes the header of a section of the given length and
// returns a writer positioned at the template body.
func createSection(out []byte, number, length int) (*octet.Writer, error) {
	w, err := octet.CreateSection(out, Section, length)
	if err != nil {
		return nil, err
	}
	w.Uint16(0)
	w.Uint16(uint16(number))
	return w, nil
}

// checkCount fails when a repeating group is too long for its count octet.
func checkCount(what string, n int) error {
	if n > maxCount {
		return griberr.Overflow("%d %s do not fit a one-octet count", n, what)
	}
	return nil
}
