package codec

import (
	"fmt"
	"io"
)

// ShapeCodec decodes shape payloads from a binary stream.
//
// A ShapeCodec holds no per-decode state and is safe for concurrent use as
// long as each goroutine reads from its own stream.
type ShapeCodec struct {
	// Strict makes unknown shape type codes a decode error. When false
	// (the default) an unrecognized tag decodes to Null with a consumed
	// length of 4 bytes, which lets callers skip over records written by
	// newer producers.
	Strict bool
}

// NewShapeCodec creates a shape codec with lenient type handling.
func NewShapeCodec() *ShapeCodec {
	return &ShapeCodec{}
}

// baseData collects the fields shared between the multi-vertex layouts
// before they are assembled into a concrete Shape.
type baseData struct {
	box       BoundingBox
	parts     []int32
	partTypes []PatchType
	points    []Point
	zRange    Range
	zValues   []float64
	mRange    Range
	measures  []float64
}

// Decode reads one shape payload from r, which must be positioned at the
// 4-byte type tag (immediately after the record header, if any). It returns
// the shape together with the exact number of bytes consumed, tag included.
func (c *ShapeCodec) Decode(r io.Reader) (Shape, int64, error) {
	tag, err := readInt32(r, le)
	if err != nil {
		return nil, 0, err
	}
	shapeType := ShapeType(tag)
	length := int64(4)

	// Point layouts carry no bounding box and no counts.
	switch shapeType {
	case TypePoint:
		p, err := readPointFields(r, 2)
		if err != nil {
			return nil, 0, err
		}
		return Point{X: p[0], Y: p[1]}, 20, nil
	case TypePointM:
		p, err := readPointFields(r, 3)
		if err != nil {
			return nil, 0, err
		}
		return PointM{X: p[0], Y: p[1], M: p[2]}, 28, nil
	case TypePointZ:
		p, err := readPointFields(r, 4)
		if err != nil {
			return nil, 0, err
		}
		return PointZ{X: p[0], Y: p[1], Z: p[2], M: p[3]}, 36, nil
	}

	var base baseData
	var numPoints int32

	switch shapeType {
	case TypePolyLine, TypePolygon,
		TypePolyLineM, TypePolygonM,
		TypePolyLineZ, TypePolygonZ,
		TypeMultiPatch:
		if base.box, err = readBoundingBox(r); err != nil {
			return nil, 0, err
		}
		numParts, err := readInt32(r, le)
		if err != nil {
			return nil, 0, err
		}
		if numPoints, err = readInt32(r, le); err != nil {
			return nil, 0, err
		}
		if err := checkCount(numParts); err != nil {
			return nil, 0, err
		}
		if err := checkCount(numPoints); err != nil {
			return nil, 0, err
		}
		length += 32 + 8

		if base.parts, err = readArray(r, int(numParts), readInt32LE); err != nil {
			return nil, 0, err
		}
		length += 4 * int64(numParts)

		if shapeType == TypeMultiPatch {
			codes, err := readArray(r, int(numParts), readInt32LE)
			if err != nil {
				return nil, 0, err
			}
			length += 4 * int64(numParts)
			if base.partTypes, err = patchTypes(codes); err != nil {
				return nil, 0, err
			}
		}

		if base.points, err = readArray(r, int(numPoints), readPoint); err != nil {
			return nil, 0, err
		}
		length += 16 * int64(numPoints)

	case TypeMultiPoint, TypeMultiPointM, TypeMultiPointZ:
		if base.box, err = readBoundingBox(r); err != nil {
			return nil, 0, err
		}
		if numPoints, err = readInt32(r, le); err != nil {
			return nil, 0, err
		}
		if err := checkCount(numPoints); err != nil {
			return nil, 0, err
		}
		length += 32 + 4
		if base.points, err = readArray(r, int(numPoints), readPoint); err != nil {
			return nil, 0, err
		}
		length += 16 * int64(numPoints)

	case TypeNullShape:
		return Null{}, length, nil

	default:
		if c.Strict {
			return nil, 0, fmt.Errorf("shape type code %d: %w", tag, ErrUnknownShapeType)
		}
		return Null{}, length, nil
	}

	// Z-bearing layouts always carry an M block after the Z block, even
	// when the producer recorded no meaningful measures.
	switch shapeType {
	case TypePolyLineZ, TypePolygonZ, TypeMultiPointZ, TypeMultiPatch:
		if base.zRange, base.zValues, err = readRangeAndArray(r, int(numPoints)); err != nil {
			return nil, 0, err
		}
		if base.mRange, base.measures, err = readRangeAndArray(r, int(numPoints)); err != nil {
			return nil, 0, err
		}
		length += 2 * (16 + 8*int64(numPoints))
	case TypePolyLineM, TypePolygonM, TypeMultiPointM:
		if base.mRange, base.measures, err = readRangeAndArray(r, int(numPoints)); err != nil {
			return nil, 0, err
		}
		length += 16 + 8*int64(numPoints)
	}

	return assemble(shapeType, base), length, nil
}

// readPointFields reads the n coordinate fields of a point layout, in wire
// order x, y[, z], m.
func readPointFields(r io.Reader, n int) ([]float64, error) {
	return readArray(r, n, readFloat64)
}

// checkCount rejects part and point counts a well-formed file cannot
// contain before they reach an allocation.
func checkCount(n int32) error {
	if n < 0 {
		return fmt.Errorf("element count %d: %w", n, ErrBadCount)
	}
	return nil
}

func patchTypes(codes []int32) ([]PatchType, error) {
	types := make([]PatchType, 0, len(codes))
	for _, code := range codes {
		if code < int32(TriangleStrip) || code > int32(Ring) {
			return nil, fmt.Errorf("patch type code %d: %w", code, ErrBadPatchType)
		}
		types = append(types, PatchType(code))
	}
	return types, nil
}

func assemble(shapeType ShapeType, base baseData) Shape {
	switch shapeType {
	case TypePolyLine:
		return PolyLine{Box: base.box, Parts: base.parts, Points: base.points}
	case TypePolyLineM:
		return PolyLineM{
			Box:      base.box,
			Parts:    base.parts,
			Points:   base.points,
			MRange:   base.mRange,
			Measures: base.measures,
		}
	case TypePolyLineZ:
		return PolyLineZ{
			Box:      base.box,
			Parts:    base.parts,
			Points:   base.points,
			ZRange:   base.zRange,
			ZValues:  base.zValues,
			MRange:   base.mRange,
			Measures: base.measures,
		}
	case TypePolygon:
		return Polygon{Box: base.box, Parts: base.parts, Points: base.points}
	case TypePolygonM:
		return PolygonM{
			Box:      base.box,
			Parts:    base.parts,
			Points:   base.points,
			MRange:   base.mRange,
			Measures: base.measures,
		}
	case TypePolygonZ:
		return PolygonZ{
			Box:      base.box,
			Parts:    base.parts,
			Points:   base.points,
			ZRange:   base.zRange,
			ZValues:  base.zValues,
			MRange:   base.mRange,
			Measures: base.measures,
		}
	case TypeMultiPoint:
		return MultiPoint{Box: base.box, Points: base.points}
	case TypeMultiPointM:
		return MultiPointM{
			Box:      base.box,
			Points:   base.points,
			MRange:   base.mRange,
			Measures: base.measures,
		}
	case TypeMultiPointZ:
		return MultiPointZ{
			Box:      base.box,
			Points:   base.points,
			ZRange:   base.zRange,
			ZValues:  base.zValues,
			MRange:   base.mRange,
			Measures: base.measures,
		}
	case TypeMultiPatch:
		return MultiPatch{
			Box:       base.box,
			Parts:     base.parts,
			PartTypes: base.partTypes,
			Points:    base.points,
			ZRange:    base.zRange,
			ZValues:   base.zValues,
			MRange:    base.mRange,
			Measures:  base.measures,
		}
	}
	return Null{}
}
