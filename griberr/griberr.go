// Package griberr defines the errors returned by the template codecs.
//
// Every failure returned by a codec wraps exactly one of the sentinel values
// below, so callers can classify a failed record with errors.Is and decide
// whether to skip it or abort the message.
package griberr

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedTemplate is returned for a template number with no codec.
	// It is a per-record failure; the rest of the message can still be read.
	ErrUnsupportedTemplate = errors.New("unsupported template")

	// ErrTruncatedRecord is returned when a buffer is shorter than the layout
	// requires.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrBitWidthOverflow is returned when a value does not fit the width it
	// is packed into.
	ErrBitWidthOverflow = errors.New("bit width overflow")

	// ErrNotImplemented is returned for encodings the codec recognizes but
	// does not handle, such as 64-bit IEEE data or packing a decode-only
	// template.
	ErrNotImplemented = errors.New("not implemented")

	// ErrMalformedSection is returned when a section header contradicts the
	// template layout, for example a wrong section number or a length field
	// that disagrees with the repeating group counts.
	ErrMalformedSection = errors.New("malformed section")
)

// UnsupportedTemplateError names the template that could not be resolved.
type UnsupportedTemplateError struct {
	Section int // 4, 5 or 7
	Number  int
}

func (e *UnsupportedTemplateError) Error() string {
	return fmt.Sprintf("unsupported template %d.%d", e.Section, e.Number)
}

// Is reports whether target is ErrUnsupportedTemplate.
func (e *UnsupportedTemplateError) Is(target error) bool {
	return target == ErrUnsupportedTemplate
}

// Truncated returns an ErrTruncatedRecord error describing how many bytes were
// needed.
func Truncated(what string, need, have int) error {
	return errors.Wrapf(ErrTruncatedRecord, "%s needs %d bytes, have %d", what, need, have)
}

// Malformed wraps ErrMalformedSection with a formatted message.
func Malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedSection, format, args...)
}

// NotImplemented wraps ErrNotImplemented with a formatted message.
func NotImplemented(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotImplemented, format, args...)
}

// Overflow wraps ErrBitWidthOverflow with a formatted message.
func Overflow(format string, args ...interface{}) error {
	return errors.Wrapf(ErrBitWidthOverflow, format, args...)
}
