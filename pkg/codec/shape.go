package codec

import "fmt"

// ShapeType is the 32-bit tag that selects a record's payload layout.
type ShapeType int32

// Shape type codes as they appear on the wire.
const (
	TypeNullShape   ShapeType = 0
	TypePoint       ShapeType = 1
	TypePolyLine    ShapeType = 3
	TypePolygon     ShapeType = 5
	TypeMultiPoint  ShapeType = 8
	TypePointZ      ShapeType = 11
	TypePolyLineZ   ShapeType = 13
	TypePolygonZ    ShapeType = 15
	TypeMultiPointZ ShapeType = 18
	TypePointM      ShapeType = 21
	TypePolyLineM   ShapeType = 23
	TypePolygonM    ShapeType = 25
	TypeMultiPointM ShapeType = 28
	TypeMultiPatch  ShapeType = 31
)

func (t ShapeType) String() string {
	switch t {
	case TypeNullShape:
		return "NullShape"
	case TypePoint:
		return "Point"
	case TypePolyLine:
		return "PolyLine"
	case TypePolygon:
		return "Polygon"
	case TypeMultiPoint:
		return "MultiPoint"
	case TypePointZ:
		return "PointZ"
	case TypePolyLineZ:
		return "PolyLineZ"
	case TypePolygonZ:
		return "PolygonZ"
	case TypeMultiPointZ:
		return "MultiPointZ"
	case TypePointM:
		return "PointM"
	case TypePolyLineM:
		return "PolyLineM"
	case TypePolygonM:
		return "PolygonM"
	case TypeMultiPointM:
		return "MultiPointM"
	case TypeMultiPatch:
		return "MultiPatch"
	}
	return fmt.Sprintf("ShapeType(%d)", int32(t))
}

// PatchType describes how the vertices of one MultiPatch part form a surface.
type PatchType int32

// Patch type codes as they appear on the wire.
const (
	// TriangleStrip: every vertex after the first two spans a triangle with
	// its two predecessors.
	TriangleStrip PatchType = 0
	// TriangleFan: every vertex after the first two spans a triangle with
	// its predecessor and the first vertex.
	TriangleFan PatchType = 1
	// OuterRing is the outer ring of a polygon.
	OuterRing PatchType = 2
	// InnerRing is a hole of a polygon.
	InnerRing PatchType = 3
	// FirstRing is the first ring of a polygon of unspecified type.
	FirstRing PatchType = 4
	// Ring is a ring of a polygon of unspecified type.
	Ring PatchType = 5
)

func (p PatchType) String() string {
	switch p {
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	case OuterRing:
		return "OuterRing"
	case InnerRing:
		return "InnerRing"
	case FirstRing:
		return "FirstRing"
	case Ring:
		return "Ring"
	}
	return fmt.Sprintf("PatchType(%d)", int32(p))
}

// BoundingBox is a planar extent.
type BoundingBox struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// BoundingVolume extends BoundingBox with altitude and measure extents.
// It only occurs in file headers.
type BoundingVolume struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
	ZMin float64
	ZMax float64
	MMin float64
	MMax float64
}

// Range is a minimum/maximum pair for the Z or M values of a shape.
type Range struct {
	Min float64
	Max float64
}

// Shape is one decoded geometry value. The concrete type is selected by the
// record's type tag; use a type switch or the Type method to discriminate.
//
// For shapes carrying Parts, the slice holds strictly ascending start
// indices into Points, the first of which is 0; the part starting at
// Parts[i] runs up to (exclusive) Parts[i+1] or the end of Points. ZValues
// and Measures, when present, are parallel to Points.
type Shape interface {
	Type() ShapeType
}

// Null is the empty shape. Files may mix Null records with records of the
// header's declared type.
type Null struct{}

// Point is a single planar coordinate.
type Point struct {
	X float64
	Y float64
}

// PointM is a Point with a scalar measure.
type PointM struct {
	X float64
	Y float64
	M float64
}

// PointZ is a Point with an altitude and a scalar measure.
type PointZ struct {
	X float64
	Y float64
	Z float64
	M float64
}

// MultiPoint is an unordered set of points.
type MultiPoint struct {
	Box    BoundingBox
	Points []Point
}

// MultiPointM is a MultiPoint with measures.
type MultiPointM struct {
	Box      BoundingBox
	Points   []Point
	MRange   Range
	Measures []float64
}

// MultiPointZ is a MultiPoint with altitudes and measures.
type MultiPointZ struct {
	Box      BoundingBox
	Points   []Point
	ZRange   Range
	ZValues  []float64
	MRange   Range
	Measures []float64
}

// PolyLine is an ordered set of vertices forming one or more parts, each a
// connected sequence of two or more points.
type PolyLine struct {
	Box    BoundingBox
	Parts  []int32
	Points []Point
}

// PolyLineM is a PolyLine with measures.
type PolyLineM struct {
	Box      BoundingBox
	Parts    []int32
	Points   []Point
	MRange   Range
	Measures []float64
}

// PolyLineZ is a PolyLine with altitudes and measures.
type PolyLineZ struct {
	Box      BoundingBox
	Parts    []int32
	Points   []Point
	ZRange   Range
	ZValues  []float64
	MRange   Range
	Measures []float64
}

// Polygon is a shape whose parts are closed rings. Ring orientation decides
// which side is the interior; this package does not validate it.
type Polygon struct {
	Box    BoundingBox
	Parts  []int32
	Points []Point
}

// PolygonM is a Polygon with measures.
type PolygonM struct {
	Box      BoundingBox
	Parts    []int32
	Points   []Point
	MRange   Range
	Measures []float64
}

// PolygonZ is a Polygon with altitudes and measures.
type PolygonZ struct {
	Box      BoundingBox
	Parts    []int32
	Points   []Point
	ZRange   Range
	ZValues  []float64
	MRange   Range
	Measures []float64
}

// MultiPatch is a collection of surface patches. PartTypes is parallel to
// Parts and tags each patch with the way its vertices form a surface.
// MultiPatch records always carry both Z and M blocks on the wire; the
// measures are not necessarily meaningful, only present.
type MultiPatch struct {
	Box       BoundingBox
	Parts     []int32
	PartTypes []PatchType
	Points    []Point
	ZRange    Range
	ZValues   []float64
	MRange    Range
	Measures  []float64
}

func (Null) Type() ShapeType        { return TypeNullShape }
func (Point) Type() ShapeType       { return TypePoint }
func (PointM) Type() ShapeType      { return TypePointM }
func (PointZ) Type() ShapeType      { return TypePointZ }
func (MultiPoint) Type() ShapeType  { return TypeMultiPoint }
func (MultiPointM) Type() ShapeType { return TypeMultiPointM }
func (MultiPointZ) Type() ShapeType { return TypeMultiPointZ }
func (PolyLine) Type() ShapeType    { return TypePolyLine }
func (PolyLineM) Type() ShapeType   { return TypePolyLineM }
func (PolyLineZ) Type() ShapeType   { return TypePolyLineZ }
func (Polygon) Type() ShapeType     { return TypePolygon }
func (PolygonM) Type() ShapeType    { return TypePolygonM }
func (PolygonZ) Type() ShapeType    { return TypePolygonZ }
func (MultiPatch) Type() ShapeType  { return TypeMultiPatch }
