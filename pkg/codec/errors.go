package codec

import (
	"errors"
	"io"
)

// Errors
var (
	ErrBadMagic         = &FormatError{"file header magic number mismatch"}
	ErrBadVersion       = &FormatError{"unsupported file version"}
	ErrUnknownShapeType = &FormatError{"unknown shape type code"}
	ErrBadPatchType     = &FormatError{"unrecognized patch type code"}
	ErrBadCount         = &FormatError{"negative element count"}
	ErrTruncated        = &FormatError{"unexpected end of data"}
)

// FormatError represents a violation of the shapefile binary format.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// truncated maps end-of-stream conditions onto ErrTruncated so that a short
// read inside a field or declared-length array always surfaces the same way.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
