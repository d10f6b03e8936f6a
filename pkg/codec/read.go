package codec

import (
	"encoding/binary"
	"io"
)

var (
	le = binary.LittleEndian
	be = binary.BigEndian
)

func readInt32(r io.Reader, order binary.ByteOrder) (int32, error) {
	var v int32
	if err := binary.Read(r, order, &v); err != nil {
		return 0, truncated(err)
	}
	return v, nil
}

func readFloat64(r io.Reader) (float64, error) {
	var v float64
	if err := binary.Read(r, le, &v); err != nil {
		return 0, truncated(err)
	}
	return v, nil
}

// readArray consumes n elements using elem and returns them as a slice. The
// format repeats this pattern for i32 arrays, point arrays and f64 arrays;
// bounds and error handling live here once. The initial capacity is capped
// so a hostile count cannot allocate ahead of the bytes backing it; an
// overstated count runs out of stream and surfaces as ErrTruncated.
func readArray[T any](r io.Reader, n int, elem func(io.Reader) (T, error)) ([]T, error) {
	out := make([]T, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		v, err := elem(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func readInt32LE(r io.Reader) (int32, error) {
	return readInt32(r, le)
}

func readPoint(r io.Reader) (Point, error) {
	var p Point
	var err error
	if p.X, err = readFloat64(r); err != nil {
		return Point{}, err
	}
	if p.Y, err = readFloat64(r); err != nil {
		return Point{}, err
	}
	return p, nil
}

func readBoundingBox(r io.Reader) (BoundingBox, error) {
	var box BoundingBox
	if err := binary.Read(r, le, &box); err != nil {
		return BoundingBox{}, truncated(err)
	}
	return box, nil
}

// readRangeAndArray consumes a min/max pair followed by n float64 values,
// the layout shared by the Z and M blocks of measured shapes.
func readRangeAndArray(r io.Reader, n int) (Range, []float64, error) {
	var rng Range
	var err error
	if rng.Min, err = readFloat64(r); err != nil {
		return Range{}, nil, err
	}
	if rng.Max, err = readFloat64(r); err != nil {
		return Range{}, nil, err
	}
	values, err := readArray(r, n, readFloat64)
	if err != nil {
		return Range{}, nil, err
	}
	return rng, values, nil
}
