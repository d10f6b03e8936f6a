package codec

import (
	"encoding/binary"
	"io"
)

const (
	// MagicNumber opens every main and index file, big-endian.
	MagicNumber int32 = 9994
	// Version is the only file version this package decodes.
	Version int32 = 1000
	// HeaderLength is the fixed size of the file header in bytes.
	HeaderLength = 100
)

// FileHeader is the fixed 100-byte preamble shared by the main and the
// index file. It is parsed once at open and read-only afterward.
type FileHeader struct {
	// FileLength is the total file length in 16-bit words, header included.
	FileLength int32
	// ShapeType is the declared type; every record in the file must be of
	// this type or NullShape.
	ShapeType ShapeType
	// Bounds is the extent of all shapes in the file.
	Bounds BoundingVolume
}

// ParseFileHeader consumes exactly 100 bytes from r, which must be
// positioned at the start of the file. Callers should verify that the
// underlying file holds at least HeaderLength bytes first; a shorter stream
// yields ErrTruncated.
func ParseFileHeader(r io.Reader) (*FileHeader, error) {
	magic, err := readInt32(r, be)
	if err != nil {
		return nil, err
	}
	if magic != MagicNumber {
		return nil, ErrBadMagic
	}

	// Bytes 4-23 are unused per the format and not validated.
	var unused [20]byte
	if _, err := io.ReadFull(r, unused[:]); err != nil {
		return nil, truncated(err)
	}

	header := &FileHeader{}
	if header.FileLength, err = readInt32(r, be); err != nil {
		return nil, err
	}

	version, err := readInt32(r, le)
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, ErrBadVersion
	}

	shapeType, err := readInt32(r, le)
	if err != nil {
		return nil, err
	}
	header.ShapeType = ShapeType(shapeType)

	if err := binary.Read(r, le, &header.Bounds); err != nil {
		return nil, truncated(err)
	}
	return header, nil
}
