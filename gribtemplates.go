// Package gribtemplates packs and unpacks the templated sections of GRIB2
// records: product definition (section 4), data representation (section 5)
// and data (section 7) templates.
//
// GRIB2 is specified here: https://library.wmo.int/doc_num.php?explnum_id=11283
package gribtemplates

import (
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/sdifrance/gribtemplates/catalog"
	"github.com/sdifrance/gribtemplates/drt"
	"github.com/sdifrance/gribtemplates/dt"
	"github.com/sdifrance/gribtemplates/griberr"
	"github.com/sdifrance/gribtemplates/pdt"
)

// Category is the kind of template, named by the section that carries it.
type Category int

// Template categories.
const (
	ProductDefinition  Category = pdt.Section
	DataRepresentation Category = drt.Section
	Data               Category = dt.Section
)

func (c Category) String() string {
	switch c {
	case ProductDefinition:
		return "product definition"
	case DataRepresentation:
		return "data representation"
	case Data:
		return "data"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Context carries what a template needs besides its own octets.
type Context struct {
	// Discipline is the discipline of the record, from the indicator
	// section. It selects parameter names.
	Discipline uint8
	// GridPoints is the number of points in the grid, or 0 when unknown.
	GridPoints int
	// Bitmap marks the grid points that carry a value; nil when all do.
	Bitmap []bool
	// Representation is the unpacked data representation template. Data
	// templates require it.
	Representation drt.Template
	// Codec handles CCSDS compressed data. It may be nil.
	Codec dt.BlockCodec
	// Catalog names parameters and code table entries. nil selects
	// catalog.Default.
	Catalog catalog.Catalog
}

func (c *Context) catalog() catalog.Catalog {
	if c.Catalog == nil {
		return catalog.Default()
	}
	return c.Catalog
}

// Handle is a resolved template of any category.
type Handle struct {
	category Category
	number   int
	ctx      Context

	product pdt.Template
	rep     drt.Template
	data    dt.Template
}

// Resolve returns a handle on an empty template of the given category and
// number. Unknown numbers fail with an *griberr.UnsupportedTemplateError.
func Resolve(category Category, number int, ctx Context) (*Handle, error) {
	h := &Handle{category: category, number: number, ctx: ctx}
	var err error
	switch category {
	case ProductDefinition:
		h.product, err = pdt.New(number)
	case DataRepresentation:
		h.rep, err = drt.New(number)
	case Data:
		if _, err := drt.New(number); err != nil {
			return nil, &griberr.UnsupportedTemplateError{Section: dt.Section, Number: number}
		}
		if ctx.Representation == nil {
			return nil, griberr.Malformed("data template 7.%d needs its data representation template", number)
		}
		if got := ctx.Representation.Number(); got != number {
			return nil, griberr.Malformed("data template 7.%d paired with data representation template 5.%d", number, got)
		}
		h.data, err = dt.New(ctx.Representation, dt.Field{GridPoints: ctx.GridPoints, Bitmap: ctx.Bitmap}, ctx.Codec)
	default:
		return nil, griberr.Malformed("section %d carries no template", int(category))
	}
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("resolved %s template %d.%d", category, int(category), number)
	return h, nil
}

// TemplateNumber reads the category and template number from the header of
// a product definition or data representation section. Data sections carry
// no template number; it is that of their data representation template.
func TemplateNumber(section []byte) (Category, int, error) {
	if len(section) < 5 {
		return 0, 0, griberr.Truncated("section header", 5, len(section))
	}
	switch c := Category(section[4]); c {
	case ProductDefinition:
		n, err := pdt.TemplateNumber(section)
		return c, n, err
	case DataRepresentation:
		n, err := drt.TemplateNumber(section)
		return c, n, err
	default:
		return c, 0, griberr.Malformed("section %d carries no template number", int(c))
	}
}

// Decode resolves the template of section and unpacks it. The template of a
// data section is given by ctx.Representation.
func Decode(section []byte, ctx Context) (*Handle, error) {
	var (
		c   Category
		n   int
		err error
	)
	if len(section) > 4 && Category(section[4]) == Data {
		if ctx.Representation == nil {
			return nil, griberr.Malformed("data section needs its data representation template")
		}
		c, n = Data, ctx.Representation.Number()
	} else if c, n, err = TemplateNumber(section); err != nil {
		return nil, err
	}
	h, err := Resolve(c, n, ctx)
	if err != nil {
		return nil, err
	}
	if err := h.Unpack(section); err != nil {
		return nil, err
	}
	return h, nil
}

// Category returns the template category.
func (h *Handle) Category() Category { return h.category }

// Number returns the template number.
func (h *Handle) Number() int { return h.number }

// Product returns the product definition template, or nil.
func (h *Handle) Product() pdt.Template { return h.product }

// Representation returns the data representation template, or nil.
func (h *Handle) Representation() drt.Template { return h.rep }

// Data returns the data template, or nil.
func (h *Handle) Data() dt.Template { return h.data }

type codec interface {
	ByteLength() int
	Pack(out []byte) error
	Unpack(in []byte) error
}

func (h *Handle) codec() codec {
	switch {
	case h.product != nil:
		return h.product
	case h.rep != nil:
		return h.rep
	default:
		return h.data
	}
}

// ByteLength returns the length of the section Pack writes.
func (h *Handle) ByteLength() int { return h.codec().ByteLength() }

// Pack writes the section into out.
func (h *Handle) Pack(out []byte) error {
	if err := h.codec().Pack(out); err != nil {
		return errors.Wrapf(err, "packing template %d.%d", int(h.category), h.number)
	}
	return nil
}

// Unpack decodes the section in into the template.
func (h *Handle) Unpack(in []byte) error {
	if err := h.codec().Unpack(in); err != nil {
		return errors.Wrapf(err, "unpacking template %d.%d", int(h.category), h.number)
	}
	return nil
}

func (h *Handle) productOnly(what string) error {
	if h.product == nil {
		return griberr.NotImplemented("%s of a %s template", what, h.category)
	}
	return nil
}

// ForecastLeadSeconds returns the forecast lead of a product definition
// template in seconds.
func (h *Handle) ForecastLeadSeconds() (int64, error) {
	if err := h.productOnly("forecast lead"); err != nil {
		return 0, err
	}
	return h.product.ForecastLeadSeconds(), nil
}

// Summary returns the summary record of a product definition template.
func (h *Handle) Summary() (pdt.Summary, error) {
	if err := h.productOnly("summary"); err != nil {
		return pdt.Summary{}, err
	}
	return h.product.Summary(h.ctx.Discipline, h.ctx.catalog()), nil
}

// SummaryName returns the short name of the product, e.g. "TMP3Hr_AVG_PERT3".
func (h *Handle) SummaryName() (string, error) {
	s, err := h.Summary()
	return s.Name, err
}

// SummaryLevel returns the level type name of the product, e.g. "HTGL".
func (h *Handle) SummaryLevel() (string, error) {
	s, err := h.Summary()
	return s.LevelType, err
}

// SummaryUnits returns the units of the product parameter.
func (h *Handle) SummaryUnits() (string, error) {
	s, err := h.Summary()
	return s.Units, err
}

// Print writes a text dump of the template.
func (h *Handle) Print(w io.Writer) error {
	switch {
	case h.product != nil:
		return h.product.Print(w, h.ctx.Discipline, h.ctx.catalog())
	case h.rep != nil:
		return h.rep.Print(w)
	default:
		return h.data.Print(w)
	}
}
