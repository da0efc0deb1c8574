package gribtemplates_test

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdifrance/gribtemplates"
	"github.com/sdifrance/gribtemplates/drt"
	"github.com/sdifrance/gribtemplates/griberr"
	"github.com/sdifrance/gribtemplates/pdt"
	"github.com/sdifrance/gribtemplates/scaled"
)

func ozone() *pdt.ChemicalStatistics {
	gen := pdt.Generating{ProcessType: 2, ProcessID: 96, TimeUnit: pdt.UnitOfTimeHour, ForecastTime: 6}
	stats := pdt.Statistics{
		End:       pdt.EndTime{Year: 2024, Month: 2, Day: 29, Hour: 18},
		Intervals: []pdt.IntervalSpec{{StatisticalProcess: 0, IncrementType: 2, RangeUnit: pdt.UnitOfTimeHour, RangeLength: 3}},
	}
	return &pdt.ChemicalStatistics{
		ParameterCategory: 20,
		ParameterNumber:   0,
		Chemical:          0,
		Generating:        gen,
		FirstSurface:      pdt.Surface{Type: 103, Value: scaled.Value{Scaled: 2}},
		SecondSurface:     pdt.Surface{Type: pdt.MissingSurface, Value: scaled.Missing},
		Statistics:        stats,
	}
}

func packTemplate(t *testing.T, c interface {
	ByteLength() int
	Pack([]byte) error
}) []byte {
	t.Helper()
	out := make([]byte, c.ByteLength())
	require.NoError(t, c.Pack(out))
	return out
}

func TestResolveUnsupported(t *testing.T) {
	rep := &drt.IEEE{Precision: drt.PrecisionSingle}
	tests := []struct {
		category gribtemplates.Category
		number   int
	}{
		{gribtemplates.ProductDefinition, 0},
		{gribtemplates.ProductDefinition, 44},
		{gribtemplates.DataRepresentation, 3},
		{gribtemplates.Data, 40},
	}
	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			_, err := gribtemplates.Resolve(tt.category, tt.number, gribtemplates.Context{Representation: rep})
			require.Error(t, err)
			assert.True(t, errors.Is(err, griberr.ErrUnsupportedTemplate))
			var ute *griberr.UnsupportedTemplateError
			require.True(t, errors.As(err, &ute))
			assert.Equal(t, int(tt.category), ute.Section)
			assert.Equal(t, tt.number, ute.Number)
		})
	}
}

func TestResolveData(t *testing.T) {
	_, err := gribtemplates.Resolve(gribtemplates.Data, 4, gribtemplates.Context{})
	assert.True(t, errors.Is(err, griberr.ErrMalformedSection), "missing representation: %v", err)

	_, err = gribtemplates.Resolve(gribtemplates.Data, 0, gribtemplates.Context{Representation: &drt.IEEE{}})
	assert.True(t, errors.Is(err, griberr.ErrMalformedSection), "mismatched representation: %v", err)

	h, err := gribtemplates.Resolve(gribtemplates.Data, 4, gribtemplates.Context{Representation: &drt.IEEE{}})
	require.NoError(t, err)
	assert.Equal(t, 4, h.Data().Number())
	assert.Nil(t, h.Product())
}

func TestDecodeProduct(t *testing.T) {
	section := packTemplate(t, ozone())
	h, err := gribtemplates.Decode(section, gribtemplates.Context{})
	require.NoError(t, err)
	assert.Equal(t, gribtemplates.ProductDefinition, h.Category())
	assert.Equal(t, 42, h.Number())

	lead, err := h.ForecastLeadSeconds()
	require.NoError(t, err)
	assert.Equal(t, int64(9*3600), lead)

	name, err := h.SummaryName()
	require.NoError(t, err)
	assert.Equal(t, "MASSDEN_O33Hr_AVG", name)
	level, err := h.SummaryLevel()
	require.NoError(t, err)
	assert.Equal(t, "HTGL", level)
	units, err := h.SummaryUnits()
	require.NoError(t, err)
	assert.Equal(t, "kg m^-3", units)

	assert.Equal(t, len(section), h.ByteLength())
	again := make([]byte, h.ByteLength())
	require.NoError(t, h.Pack(again))
	assert.Equal(t, section, again)

	var b bytes.Buffer
	require.NoError(t, h.Print(&b))
	assert.Contains(t, b.String(), "Parameter name 'MASSDEN'")
}

func TestProductOnlyOperations(t *testing.T) {
	section := packTemplate(t, &drt.IEEE{Header: drt.Header{DataPoints: 3}, Precision: drt.PrecisionSingle})
	h, err := gribtemplates.Decode(section, gribtemplates.Context{})
	require.NoError(t, err)
	assert.Equal(t, gribtemplates.DataRepresentation, h.Category())
	assert.Equal(t, 3, h.Representation().PackedPoints())

	_, err = h.ForecastLeadSeconds()
	assert.True(t, errors.Is(err, griberr.ErrNotImplemented))
	_, err = h.SummaryName()
	assert.True(t, errors.Is(err, griberr.ErrNotImplemented))
	_, err = h.SummaryLevel()
	assert.True(t, errors.Is(err, griberr.ErrNotImplemented))
	_, err = h.SummaryUnits()
	assert.True(t, errors.Is(err, griberr.ErrNotImplemented))

	var b bytes.Buffer
	require.NoError(t, h.Print(&b))
	assert.Contains(t, b.String(), "Precision: 32 bit")
}

func TestDecodeData(t *testing.T) {
	rep := &drt.IEEE{Header: drt.Header{DataPoints: 2}, Precision: drt.PrecisionSingle}
	section := []byte{0, 0, 0, 13, 7, 0x3f, 0x80, 0, 0, 0xc0, 0, 0, 0}

	_, err := gribtemplates.Decode(section, gribtemplates.Context{})
	assert.True(t, errors.Is(err, griberr.ErrMalformedSection))

	h, err := gribtemplates.Decode(section, gribtemplates.Context{Representation: rep})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2}, h.Data().Data())
}

func TestUnpackErrorNamesTemplate(t *testing.T) {
	section := packTemplate(t, ozone())
	_, err := gribtemplates.Decode(section[:len(section)-1], gribtemplates.Context{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, griberr.ErrTruncatedRecord))
}

func TestTemplateNumber(t *testing.T) {
	c, n, err := gribtemplates.TemplateNumber(packTemplate(t, ozone()))
	require.NoError(t, err)
	assert.Equal(t, gribtemplates.ProductDefinition, c)
	assert.Equal(t, 42, n)

	c, n, err = gribtemplates.TemplateNumber(packTemplate(t, &drt.LogSimplePacking{}))
	require.NoError(t, err)
	assert.Equal(t, gribtemplates.DataRepresentation, c)
	assert.Equal(t, 61, n)

	_, _, err = gribtemplates.TemplateNumber([]byte{0, 0, 0, 5, 7})
	assert.True(t, errors.Is(err, griberr.ErrMalformedSection))
	_, _, err = gribtemplates.TemplateNumber([]byte{0, 0})
	assert.True(t, errors.Is(err, griberr.ErrTruncatedRecord))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "product definition", gribtemplates.ProductDefinition.String())
	assert.Equal(t, "data representation", gribtemplates.DataRepresentation.String())
	assert.Equal(t, "data", gribtemplates.Data.String())
	assert.Equal(t, "category(6)", gribtemplates.Category(6).String())
}
