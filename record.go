package gribtemplates

import (
	"context"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/sdifrance/gribtemplates/drt"
	"github.com/sdifrance/gribtemplates/dt"
	"github.com/sdifrance/gribtemplates/griberr"
	"github.com/sdifrance/gribtemplates/pdt"
)

// RawRecord holds the templated sections of one product, each with its
// section header. Bitmap is nil when the record has no bitmap section.
type RawRecord struct {
	Product        []byte
	Representation []byte
	Bitmap         []byte
	Data           []byte
}

// Record is a decoded product. Summary is set by DecodeRecord.
type Record struct {
	Product        pdt.Template
	Representation drt.Template
	Bitmap         []bool
	Data           dt.Template
	Summary        pdt.Summary
}

// Values returns the decoded grid.
func (r *Record) Values() []float64 { return r.Data.Data() }

// DecodeRecord unpacks the sections of raw in order: product definition,
// data representation, bitmap and data, each using what the previous ones
// decoded. ctx supplies the discipline, grid size, codec and catalog;
// its Bitmap and Representation are replaced by those of the record.
func DecodeRecord(raw RawRecord, ctx Context) (*Record, error) {
	prod, err := Decode(raw.Product, ctx)
	if err != nil {
		return nil, errors.Wrap(err, "product definition section")
	}
	if prod.Category() != ProductDefinition {
		return nil, griberr.Malformed("expected a product definition section, got %s", prod.Category())
	}
	rep, err := Decode(raw.Representation, ctx)
	if err != nil {
		return nil, errors.Wrap(err, "data representation section")
	}
	if rep.Category() != DataRepresentation {
		return nil, griberr.Malformed("expected a data representation section, got %s", rep.Category())
	}
	rec := &Record{Product: prod.Product(), Representation: rep.Representation()}

	ctx.Representation = rec.Representation
	ctx.Bitmap = nil
	if raw.Bitmap != nil {
		points := ctx.GridPoints
		if points == 0 {
			points = (len(raw.Bitmap) - dt.BitmapHeaderLen) * 8
			glog.V(1).Infof("grid size unknown, reading %d bitmap points", points)
		}
		if ctx.Bitmap, err = dt.UnpackBitmapSection(raw.Bitmap, points); err != nil {
			return nil, errors.Wrap(err, "bitmap section")
		}
		rec.Bitmap = ctx.Bitmap
	}

	data, err := Decode(raw.Data, ctx)
	if err != nil {
		return nil, errors.Wrap(err, "data section")
	}
	rec.Data = data.Data()
	rec.Summary = rec.Product.Summary(ctx.Discipline, ctx.catalog())
	glog.V(1).Infof("decoded %s with %d values", rec.Summary.Name, len(rec.Values()))
	return rec, nil
}

// EncodeRecord packs the templates of rec into their sections. A bitmap
// section is written only when rec.Bitmap is set.
func EncodeRecord(rec *Record) (RawRecord, error) {
	var raw RawRecord
	var err error
	if raw.Product, err = packed(rec.Product); err != nil {
		return raw, errors.Wrap(err, "product definition section")
	}
	if raw.Representation, err = packed(rec.Representation); err != nil {
		return raw, errors.Wrap(err, "data representation section")
	}
	if rec.Bitmap != nil {
		if raw.Bitmap, err = dt.PackBitmapSection(rec.Bitmap); err != nil {
			return raw, errors.Wrap(err, "bitmap section")
		}
	}
	if raw.Data, err = packed(rec.Data); err != nil {
		return raw, errors.Wrap(err, "data section")
	}
	return raw, nil
}

// NewSimpleRecord builds a record whose values are stored with simple
// packing (templates 5.0 and 7.0). values holds one value per grid point;
// points the bitmap marks absent are ignored. The reference value and binary
// scale factor are fitted to the present values.
func NewSimpleRecord(product pdt.Template, values []float64, bitmap []bool, decimalScale int16, bits uint8) (*Record, error) {
	compact, err := dt.ApplyBitmapPack(values, bitmap)
	if err != nil {
		return nil, err
	}
	params, err := drt.FitSimplePacking(compact, decimalScale, bits)
	if err != nil {
		return nil, err
	}
	rep := &drt.SimplePacking{
		Header:       drt.Header{DataPoints: uint32(len(compact))},
		Params:       params,
		OriginalType: drt.OriginalFloat,
	}
	field := dt.Field{GridPoints: len(values), Bitmap: bitmap, Values: values}
	data, err := dt.New(rep, field, nil)
	if err != nil {
		return nil, err
	}
	return &Record{Product: product, Representation: rep, Bitmap: bitmap, Data: data}, nil
}

func packed(c codec) ([]byte, error) {
	out := make([]byte, c.ByteLength())
	if err := c.Pack(out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeRecords decodes records with up to workers goroutines. Results and
// errors are indexed like records; a failed record leaves a nil result.
// Records not started when ctx is cancelled fail with ctx.Err().
func DecodeRecords(ctx context.Context, records []RawRecord, tc Context, workers int) ([]*Record, []error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]*Record, len(records))
	errs := make([]error, len(records))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i], errs[i] = DecodeRecord(records[i], tc)
			}
		}()
	}

	for i := range records {
		if ctx.Err() == nil {
			select {
			case jobs <- i:
				continue
			case <-ctx.Done():
			}
		}
		for j := i; j < len(records); j++ {
			errs[j] = ctx.Err()
		}
		break
	}
	close(jobs)
	wg.Wait()
	return out, errs
}
