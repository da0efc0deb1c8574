// Package gribio reads and writes streams of templated GRIB2 sections.
//
// A stream is a sequence of sections, each starting with its 4-octet length
// and 1-octet section number. A record is a product definition section (4),
// a data representation section (5), an optional bitmap section (6) and a
// data section (7). Zero octets between records are skipped. Files whose
// name ends in ".bz2" are bzip2 compressed.
package gribio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/golang/glog"

	"github.com/sdifrance/gribtemplates"
)

// sectionPrefix is the length and section number every section starts with.
const sectionPrefix = 5

// MaxSectionLen bounds the length a section header may declare.
const MaxSectionLen = 1 << 30

type File struct {
	records []gribtemplates.RawRecord
}

func (f *File) Records() []gribtemplates.RawRecord {
	return f.records
}

// ReadFile reads every record of the stream r.
func ReadFile(r io.Reader) (*File, error) {
	var records []gribtemplates.RawRecord

	rr := bufio.NewReader(r)
	offset := 0
	var rec gribtemplates.RawRecord
	want := uint8(4)
	for {
		if want == 4 {
			skipCount, err := skipPadding(rr)
			if err != nil {
				if errors.Is(err, io.EOF) {
					return &File{records}, nil
				}
				return nil, fmt.Errorf("error parsing stream: %w", err)
			}
			offset += skipCount
		}

		number, sectionLen, err := peekSection(rr)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("error encountered when expecting section %d at byte offset %d: %w", want, offset, err)
		}
		glog.V(2).Infof("section %d of %d bytes @ offset %d", number, sectionLen, offset)

		if number == 7 && want == 6 {
			want = 7
		}
		if number != want {
			return nil, fmt.Errorf("section @ byte offset %d is section %d, want %d", offset, number, want)
		}
		section := make([]byte, int(sectionLen))
		if readCount, err := io.ReadFull(rr, section); err != nil {
			return nil, fmt.Errorf("error while reading section of expected length %d; only read %d bytes: %w", sectionLen, readCount, err)
		}
		offset += int(sectionLen)

		switch number {
		case 4:
			rec.Product = section
			want = 5
		case 5:
			rec.Representation = section
			want = 6
		case 6:
			rec.Bitmap = section
			want = 7
		case 7:
			rec.Data = section
			records = append(records, rec)
			glog.V(1).Infof("read record %d ending at byte offset %d", len(records)-1, offset)
			rec = gribtemplates.RawRecord{}
			want = 4
		}
	}
}

// skipPadding skips zero octets before a record. A section never starts
// with four zero octets, since its length is at least five. Fewer than four
// octets left at the end of the stream must all be zero.
func skipPadding(rr *bufio.Reader) (int, error) {
	skipCount := 0
	for {
		data, err := rr.Peek(4)
		if err != nil {
			if len(data) == 0 {
				return skipCount, err
			}
			if !allZero(data) {
				return skipCount, fmt.Errorf("%d trailing octets are too short for a section: %w", len(data), io.ErrUnexpectedEOF)
			}
			n, _ := rr.Discard(len(data))
			return skipCount + n, io.EOF
		}
		if !allZero(data) {
			return skipCount, nil
		}
		if _, err := rr.ReadByte(); err != nil {
			return skipCount, err
		}
		skipCount++
	}
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// peekSection returns the section number and length of the next section
// without consuming it.
func peekSection(rr *bufio.Reader) (uint8, uint32, error) {
	data, err := rr.Peek(sectionPrefix)
	if err != nil {
		return 0, 0, err
	}
	sectionLen := binary.BigEndian.Uint32(data[0:4])
	number := data[4]
	if sectionLen < sectionPrefix || sectionLen > MaxSectionLen {
		return 0, 0, fmt.Errorf("section %d declares invalid length %d", number, sectionLen)
	}
	return number, sectionLen, nil
}

// WriteFile writes records to w as a section stream.
func WriteFile(w io.Writer, records []gribtemplates.RawRecord) error {
	bw := bufio.NewWriter(w)
	for i, rec := range records {
		for _, section := range [][]byte{rec.Product, rec.Representation, rec.Bitmap, rec.Data} {
			if section == nil {
				continue
			}
			if _, err := bw.Write(section); err != nil {
				return fmt.Errorf("error writing record %d: %w", i, err)
			}
		}
	}
	return bw.Flush()
}

// Open opens the stream file at path, decompressing it when the name ends in
// ".bz2".
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".bz2") {
		return f, nil
	}
	zr, err := bzip2.NewReader(f, nil)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error opening bzip2 stream %s: %w", path, err)
	}
	return &stackedCloser{zr, []io.Closer{zr, f}}, nil
}

// Create creates the stream file at path, compressing it when the name ends
// in ".bz2". The file is complete once the returned writer is closed.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".bz2") {
		return f, nil
	}
	zw, err := bzip2.NewWriter(f, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating bzip2 stream %s: %w", path, err)
	}
	return &stackedWriteCloser{zw, []io.Closer{zw, f}}, nil
}

// ReadPath reads every record of the stream file at path.
func ReadPath(path string) (*File, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadFile(rc)
}

// WritePath writes records to the stream file at path.
func WritePath(path string, records []gribtemplates.RawRecord) error {
	wc, err := Create(path)
	if err != nil {
		return err
	}
	if err := WriteFile(wc, records); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error { return closeAll(s.closers) }

type stackedWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (s *stackedWriteCloser) Close() error { return closeAll(s.closers) }

// closeAll closes every closer in order and returns the first error.
func closeAll(closers []io.Closer) error {
	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
