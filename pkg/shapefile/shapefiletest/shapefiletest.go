// Package shapefiletest builds small shapefile triplets on disk for tests.
package shapefiletest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/fceschmidt/shapefile-utils/pkg/codec"
	"github.com/fceschmidt/shapefile-utils/pkg/shapefile"
)

var (
	le = binary.LittleEndian
	be = binary.BigEndian
)

// Feature is one record of a fixture triplet: a raw shape payload (type
// tag included) and the values for the NAME and POP attribute columns.
type Feature struct {
	Payload []byte
	Name    string
	Pop     string
}

// PointPayload encodes a Point shape body.
func PointPayload(x, y float64) []byte {
	return payload(int32(codec.TypePoint), x, y)
}

// PolyLinePayload encodes a single-part PolyLine shape body.
func PolyLinePayload(box codec.BoundingBox, points ...codec.Point) []byte {
	fields := []interface{}{int32(codec.TypePolyLine), box, int32(1), int32(len(points)), int32(0)}
	for _, p := range points {
		fields = append(fields, p)
	}
	return payload(fields...)
}

// NullPayload encodes a null shape body.
func NullPayload() []byte {
	return payload(int32(codec.TypeNullShape))
}

func payload(fields ...interface{}) []byte {
	var buf bytes.Buffer
	for _, f := range fields {
		_ = binary.Write(&buf, le, f)
	}
	return buf.Bytes()
}

// DefaultFeatures returns the three-record fixture used across packages: a
// point, a polyline and a null shape, each with attributes.
func DefaultFeatures() []Feature {
	return []Feature{
		{Payload: PointPayload(13.4, 52.52), Name: "Berlin", Pop: " 3645000"},
		{
			Payload: PolyLinePayload(
				codec.BoundingBox{XMin: 0, YMin: 0, XMax: 2, YMax: 2},
				codec.Point{X: 0, Y: 0}, codec.Point{X: 1, Y: 1}, codec.Point{X: 2, Y: 2},
			),
			Name: "Spree",
			Pop:  "       0",
		},
		{Payload: NullPayload(), Name: "Nothing", Pop: "       0"},
	}
}

// WriteTriplet writes a .shp, .shx and .dbf file for the given features
// into dir and returns a Config pointing at them.
func WriteTriplet(tb testing.TB, dir string, features []Feature) shapefile.Config {
	tb.Helper()

	var main bytes.Buffer
	var index bytes.Buffer
	offsetWords := int32(codec.HeaderLength / 2)
	for i, feature := range features {
		lengthWords := int32(len(feature.Payload) / 2)
		_ = binary.Write(&index, be, offsetWords)
		_ = binary.Write(&index, be, lengthWords)

		_ = binary.Write(&main, be, int32(i+1))
		_ = binary.Write(&main, be, lengthWords)
		main.Write(feature.Payload)
		offsetWords += lengthWords + 4
	}

	config := shapefile.Config{
		ShpPath: filepath.Join(dir, "test.shp"),
		ShxPath: filepath.Join(dir, "test.shx"),
		DbfPath: filepath.Join(dir, "test.dbf"),
	}
	writeFile(tb, config.ShpPath, withHeader(main.Bytes()))
	writeFile(tb, config.ShxPath, withHeader(index.Bytes()))
	writeFile(tb, config.DbfPath, buildTable(features))
	return config
}

func withHeader(body []byte) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, be, codec.MagicNumber)
	buf.Write(make([]byte, 20))
	_ = binary.Write(&buf, be, int32((codec.HeaderLength+len(body))/2))
	_ = binary.Write(&buf, le, codec.Version)
	_ = binary.Write(&buf, le, int32(codec.TypePoint))
	_ = binary.Write(&buf, le, codec.BoundingVolume{XMin: 0, YMin: 0, XMax: 14, YMax: 53})
	return append(buf.Bytes(), body...)
}

// buildTable writes a dBASE III table with NAME C(10) and POP N(8).
func buildTable(features []Feature) []byte {
	const nameLen, popLen = 10, 8

	var buf bytes.Buffer
	buf.WriteByte(0x03) // version
	buf.Write([]byte{0, 0, 0})
	_ = binary.Write(&buf, le, uint32(len(features)))
	_ = binary.Write(&buf, le, uint16(32+2*32+1))        // header length
	_ = binary.Write(&buf, le, uint16(1+nameLen+popLen)) // record length
	buf.Write(make([]byte, 20))

	buf.Write(descriptor("NAME", 'C', nameLen))
	buf.Write(descriptor("POP", 'N', popLen))
	buf.WriteByte(0x0D)

	for _, feature := range features {
		buf.WriteByte(' ')
		buf.WriteString(pad(feature.Name, nameLen))
		buf.WriteString(pad(feature.Pop, popLen))
	}
	return buf.Bytes()
}

func descriptor(name string, kind byte, length uint8) []byte {
	out := make([]byte, 32)
	copy(out, name)
	out[11] = kind
	out[16] = length
	return out
}

func pad(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s[:n]
}

func writeFile(tb testing.TB, path string, data []byte) {
	tb.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("Failed to write fixture %s: %v", path, err)
	}
}
