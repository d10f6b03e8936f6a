// Package shx reads shapefile index (.shx) files.
//
// The index file shares the 100-byte header of the main file and follows it
// with one fixed-size entry per geometry record, in record order. Each
// entry locates its record in the main file, which makes ordinal lookups a
// single seek instead of a sequential scan.
package shx

import (
	"fmt"
	"io"
	"os"

	"github.com/fceschmidt/shapefile-utils/pkg/codec"
)

const entrySize = 8

// ErrBadStride reports an index whose size past the header is not a whole
// number of entries.
var ErrBadStride = &codec.FormatError{Message: "index size minus header is not a multiple of the entry stride"}

// Entry locates one record of the main file. Both fields are measured in
// 16-bit words; multiply by two for byte values.
type Entry struct {
	// Offset of the record from the start of the main file.
	Offset int32
	// Length of the record content.
	Length int32
}

func parseEntry(r io.Reader) (Entry, error) {
	var entry Entry
	var err error
	if entry.Offset, err = readInt32BE(r); err != nil {
		return Entry{}, err
	}
	if entry.Length, err = readInt32BE(r); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func readInt32BE(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])), nil
}

// File is an open index file. The entry table is parsed lazily: the header
// is read once at open, individual entries are read on lookup.
type File struct {
	f          *os.File
	header     *codec.FileHeader
	numRecords uint64
}

// Open reads the index file header and derives the record count from the
// declared file length. The size past the header must divide evenly into
// entries, otherwise the index is malformed.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
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
		return nil, fmt.Errorf("index file %s: %w", path, codec.ErrTruncated)
	}

	header, err := codec.ParseFileHeader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("index file %s: %w", path, err)
	}

	tableBytes := int64(header.FileLength)*2 - codec.HeaderLength
	if tableBytes < 0 || tableBytes%entrySize != 0 {
		f.Close()
		return nil, fmt.Errorf("index file %s: %w", path, ErrBadStride)
	}

	return &File{
		f:          f,
		header:     header,
		numRecords: uint64(tableBytes / entrySize),
	}, nil
}

// Header returns the parsed file header.
func (x *File) Header() *codec.FileHeader {
	return x.header
}

// NumRecords returns the number of entries listed in the index.
func (x *File) NumRecords() uint64 {
	return x.numRecords
}

// Entry returns the index entry for the given 1-based ordinal ID. IDs
// outside [1, NumRecords] and entries the file cannot deliver (a short
// seek or read) report not-found; they are never an error.
func (x *File) Entry(id uint64) (Entry, bool) {
	if id < 1 || id > x.numRecords {
		return Entry{}, false
	}

	pos := int64(codec.HeaderLength + (id-1)*entrySize)
	n, err := x.f.Seek(pos, io.SeekStart)
	if err != nil || n != pos {
		return Entry{}, false
	}

	entry, err := parseEntry(x.f)
	if err != nil {
		return Entry{}, false
	}
	return entry, true
}

// Close closes the underlying file.
func (x *File) Close() error {
	return x.f.Close()
}
