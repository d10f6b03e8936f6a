package codec

import "io"

// Record is one decoded unit of the main file: the 8-byte record header and
// the shape that follows it.
type Record struct {
	// Number is the declared record number, 1-based. It is informational;
	// the decoder does not require it to match the record's position.
	Number int32
	// ContentLength is the declared payload length in 16-bit words, also
	// informational. Use the consumed length returned by ParseRecord for
	// traversal.
	ContentLength int32
	// Shape is the decoded geometry.
	Shape Shape
}

// ParseRecord reads one record, header included, from r. The returned count
// is the exact number of bytes consumed.
func (c *ShapeCodec) ParseRecord(r io.Reader) (*Record, int64, error) {
	record := &Record{}
	var err error

	if record.Number, err = readInt32(r, be); err != nil {
		return nil, 0, err
	}
	if record.ContentLength, err = readInt32(r, be); err != nil {
		return nil, 0, err
	}

	shape, shapeLength, err := c.Decode(r)
	if err != nil {
		return nil, 0, err
	}
	record.Shape = shape
	return record, 8 + shapeLength, nil
}
