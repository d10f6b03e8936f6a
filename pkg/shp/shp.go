// Package shp reads shapefile main (.shp) files.
//
// A main file is the 100-byte file header followed by variable-length
// geometry records. Records can be decoded sequentially from the start, or
// fetched by 1-based ordinal ID through an index file opened with the shx
// package.
package shp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fceschmidt/shapefile-utils/pkg/codec"
	"github.com/fceschmidt/shapefile-utils/pkg/shx"
)

// Config holds configuration for opening a main file.
type Config struct {
	// Path to the .shp file.
	Path string
	// Strict makes unknown shape type codes a decode error instead of
	// falling back to a null shape.
	Strict bool
}

// File is an open main file. It owns its file handle exclusively; for
// concurrent access open the same path once per worker.
type File struct {
	f      *os.File
	reader *bufio.Reader
	header *codec.FileHeader
	codec  *codec.ShapeCodec
}

// Open opens the main file and parses its header.
func Open(config Config) (*File, error) {
	f, err := os.Open(config.Path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() < codec.HeaderLength {
		f.Close()
		return nil, fmt.Errorf("main file %s: %w", config.Path, codec.ErrTruncated)
	}

	reader := bufio.NewReader(f)
	header, err := codec.ParseFileHeader(reader)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("main file %s: %w", config.Path, err)
	}

	return &File{
		f:      f,
		reader: reader,
		header: header,
		codec:  &codec.ShapeCodec{Strict: config.Strict},
	}, nil
}

// Header returns the parsed file header.
func (f *File) Header() *codec.FileHeader {
	return f.header
}

// Record fetches the record with the given 1-based ordinal ID using the
// index. Every failure along the way reports not-found: an unknown
// ordinal, a seek landing short of the target, and any I/O or decode error
// while reading the record. The reader restores a usable position on the
// next call, so a failed lookup does not poison later ones.
func (f *File) Record(idx *shx.File, id uint64) (*codec.Record, bool) {
	entry, ok := idx.Entry(id)
	if !ok {
		return nil, false
	}

	offset := int64(entry.Offset) * 2
	if !f.seek(offset) {
		return nil, false
	}

	record, _, err := f.codec.ParseRecord(f.reader)
	if err != nil {
		return nil, false
	}
	return record, true
}

// ReadAll decodes every record in file order, without consulting an index.
// Decoding proceeds from the end of the header until the byte count
// declared in the header is exhausted. A record that cannot be completed
// from the remaining bytes is a truncation error, not a silent stop.
func (f *File) ReadAll() ([]*codec.Record, error) {
	if !f.seek(codec.HeaderLength) {
		return nil, fmt.Errorf("seeking past header: %w", codec.ErrTruncated)
	}

	total := int64(f.header.FileLength) * 2
	consumed := int64(codec.HeaderLength)

	var records []*codec.Record
	for consumed < total {
		record, n, err := f.codec.ParseRecord(f.reader)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records)+1, err)
		}
		consumed += n
		records = append(records, record)
	}
	return records, nil
}

// seek positions the underlying file and resets the buffered reader, which
// would otherwise serve stale bytes from before the seek.
func (f *File) seek(offset int64) bool {
	n, err := f.f.Seek(offset, io.SeekStart)
	if err != nil || n != offset {
		return false
	}
	f.reader.Reset(f.f)
	return true
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}
