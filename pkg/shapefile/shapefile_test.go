package shapefile_test

import (
	"encoding/json"
	"testing"

	"github.com/fceschmidt/shapefile-utils/pkg/codec"
	"github.com/fceschmidt/shapefile-utils/pkg/shapefile"
	"github.com/fceschmidt/shapefile-utils/pkg/shapefile/shapefiletest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T) *shapefile.Shapefile {
	t.Helper()
	config := shapefiletest.WriteTriplet(t, t.TempDir(), shapefiletest.DefaultFeatures())
	sf, err := shapefile.Open(config)
	require.NoError(t, err)
	t.Cleanup(func() { sf.Close() })
	return sf
}

func TestShapefile_Record(t *testing.T) {
	sf := openFixture(t)

	require.EqualValues(t, 3, sf.NumRecords())

	// First ordinal: geometry and attributes belong to the same feature.
	record, ok := sf.Record(1)
	require.True(t, ok)
	assert.EqualValues(t, 1, record.Number)
	point, ok := record.Shape.(codec.Point)
	require.True(t, ok, "expected Point, got %T", record.Shape)
	assert.Equal(t, 13.4, point.X)
	assert.Equal(t, 52.52, point.Y)
	assert.Equal(t, "Berlin", record.Attributes["NAME"])
	assert.Equal(t, 3645000, record.Attributes["POP"])

	// Last ordinal.
	record, ok = sf.Record(3)
	require.True(t, ok)
	assert.IsType(t, codec.Null{}, record.Shape)
	assert.Equal(t, "Nothing", record.Attributes["NAME"])
}

func TestShapefile_RecordBoundaries(t *testing.T) {
	sf := openFixture(t)

	for _, id := range []uint64{0, 4, 100} {
		_, ok := sf.Record(id)
		assert.False(t, ok, "Record(%d) should not be found", id)
	}
}

func TestShapefile_Iterator(t *testing.T) {
	sf := openFixture(t)

	var names []string
	var ids []uint64
	it := sf.Iterator()
	for it.Next() {
		names = append(names, it.Record().Attributes["NAME"].(string))
		ids = append(ids, it.ID())
	}
	assert.Equal(t, []string{"Berlin", "Spree", "Nothing"}, names)
	assert.Equal(t, []uint64{1, 2, 3}, ids)
}

func TestShapefile_Header(t *testing.T) {
	sf := openFixture(t)

	header := sf.Header()
	assert.Equal(t, codec.TypePoint, header.ShapeType)
	assert.Equal(t, 14.0, header.Bounds.XMax)
}

func TestRecord_GeoJSON(t *testing.T) {
	sf := openFixture(t)

	record, ok := sf.Record(1)
	require.True(t, ok)
	raw, err := json.Marshal(record.GeoJSON(1))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"Feature","id":1,"geometry":{"type":"Point","coordinates":[13.4,52.52]},"properties":{"NAME":"Berlin","POP":3645000}}`,
		string(raw))

	record, ok = sf.Record(2)
	require.True(t, ok)
	feature := record.GeoJSON(2)
	require.NotNil(t, feature.Geometry)
	assert.Equal(t, "MultiLineString", feature.Geometry.Type)
	assert.Equal(t,
		[][][]float64{{{0, 0}, {1, 1}, {2, 2}}},
		feature.Geometry.Coordinates)

	record, ok = sf.Record(3)
	require.True(t, ok)
	assert.Nil(t, record.GeoJSON(3).Geometry, "null shapes have no geometry")
}

func TestRecord_GeoJSONMalformedPartIndices(t *testing.T) {
	// Part indices are taken from the file unvalidated; conversion must
	// survive indices outside the point range.
	shape := codec.PolyLine{
		Box:    codec.BoundingBox{XMin: 0, YMin: 0, XMax: 1, YMax: 1},
		Parts:  []int32{0, 10},
		Points: []codec.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
	}
	record := &shapefile.Record{Shape: shape}

	feature := record.GeoJSON(1)
	require.NotNil(t, feature.Geometry)
	lines, ok := feature.Geometry.Coordinates.([][][]float64)
	require.True(t, ok)
	require.Len(t, lines, 1, "the out-of-range part should be dropped")
	assert.Equal(t, [][]float64{{0, 0}, {1, 1}}, lines[0])

	// A negative start index is dropped the same way.
	shape.Parts = []int32{-3, 0}
	feature = (&shapefile.Record{Shape: shape}).GeoJSON(1)
	lines, ok = feature.Geometry.Coordinates.([][][]float64)
	require.True(t, ok)
	require.Len(t, lines, 1)
}

func TestRecord_GeoJSONPolygonParts(t *testing.T) {
	shape := codec.Polygon{
		Box:   codec.BoundingBox{XMin: 0, YMin: 0, XMax: 10, YMax: 10},
		Parts: []int32{0, 4},
		Points: []codec.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 0},
			{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 2},
		},
	}
	record := &shapefile.Record{Shape: shape}

	feature := record.GeoJSON(1)
	require.NotNil(t, feature.Geometry)
	assert.Equal(t, "Polygon", feature.Geometry.Type)
	rings, ok := feature.Geometry.Coordinates.([][][]float64)
	require.True(t, ok)
	require.Len(t, rings, 2)
	assert.Len(t, rings[0], 4)
	assert.Len(t, rings[1], 4)
}
