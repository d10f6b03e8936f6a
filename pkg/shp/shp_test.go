package shp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fceschmidt/shapefile-utils/pkg/codec"
	"github.com/fceschmidt/shapefile-utils/pkg/shx"
)

var (
	le = binary.LittleEndian
	be = binary.BigEndian
)

// shapePayload encodes one shape body (type tag included) in wire order.
func shapePayload(fields ...interface{}) []byte {
	var buf bytes.Buffer
	for _, f := range fields {
		_ = binary.Write(&buf, le, f)
	}
	return buf.Bytes()
}

func pointPayload(x, y float64) []byte {
	return shapePayload(int32(codec.TypePoint), x, y)
}

func multiPointPayload(box codec.BoundingBox, points ...codec.Point) []byte {
	fields := []interface{}{int32(codec.TypeMultiPoint), box, int32(len(points))}
	for _, p := range points {
		fields = append(fields, p)
	}
	return shapePayload(fields...)
}

func nullPayload() []byte {
	return shapePayload(int32(codec.TypeNullShape))
}

func fileHeader(lengthWords int32, shapeType codec.ShapeType) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, be, codec.MagicNumber)
	buf.Write(make([]byte, 20))
	_ = binary.Write(&buf, be, lengthWords)
	_ = binary.Write(&buf, le, codec.Version)
	_ = binary.Write(&buf, le, int32(shapeType))
	_ = binary.Write(&buf, le, codec.BoundingVolume{})
	return buf.Bytes()
}

// writeFixture builds a main file plus matching index file from the given
// shape payloads and returns both paths.
func writeFixture(t *testing.T, shapeType codec.ShapeType, payloads ...[]byte) (string, string) {
	t.Helper()

	var main bytes.Buffer
	var index bytes.Buffer
	offsetWords := int32(codec.HeaderLength / 2)
	for i, payload := range payloads {
		lengthWords := int32(len(payload) / 2)
		_ = binary.Write(&index, be, offsetWords)
		_ = binary.Write(&index, be, lengthWords)

		_ = binary.Write(&main, be, int32(i+1))
		_ = binary.Write(&main, be, lengthWords)
		main.Write(payload)
		offsetWords += lengthWords + 4 // record header is 4 words
	}

	dir := t.TempDir()
	shpPath := filepath.Join(dir, "test.shp")
	shxPath := filepath.Join(dir, "test.shx")

	mainBytes := append(fileHeader(int32((codec.HeaderLength+main.Len())/2), shapeType), main.Bytes()...)
	if err := os.WriteFile(shpPath, mainBytes, 0o600); err != nil {
		t.Fatalf("Failed to write main fixture: %v", err)
	}

	indexBytes := append(fileHeader(int32((codec.HeaderLength+index.Len())/2), shapeType), index.Bytes()...)
	if err := os.WriteFile(shxPath, indexBytes, 0o600); err != nil {
		t.Fatalf("Failed to write index fixture: %v", err)
	}
	return shpPath, shxPath
}

func testPayloads() [][]byte {
	return [][]byte{
		pointPayload(1.5, -2.5),
		multiPointPayload(
			codec.BoundingBox{XMin: -0.25, YMin: -0.125, XMax: 0.25, YMax: 0.125},
			codec.Point{X: 1, Y: 1}, codec.Point{X: 2, Y: 2}, codec.Point{X: 5, Y: 5},
		),
		nullPayload(),
		pointPayload(9, 9),
	}
}

func TestFile_RandomAccessMatchesSequential(t *testing.T) {
	shpPath, shxPath := writeFixture(t, codec.TypePoint, testPayloads()...)

	file, err := Open(Config{Path: shpPath})
	if err != nil {
		t.Fatalf("Open main failed: %v", err)
	}
	defer file.Close()

	idx, err := shx.Open(shxPath)
	if err != nil {
		t.Fatalf("Open index failed: %v", err)
	}
	defer idx.Close()

	sequential, err := file.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if uint64(len(sequential)) != idx.NumRecords() {
		t.Fatalf("record count mismatch: sequential %d, index %d", len(sequential), idx.NumRecords())
	}

	for k := uint64(1); k <= idx.NumRecords(); k++ {
		record, ok := file.Record(idx, k)
		if !ok {
			t.Fatalf("Record(%d) not found", k)
		}
		if !reflect.DeepEqual(record, sequential[k-1]) {
			t.Errorf("Record(%d) mismatch:\nrandom:     %#v\nsequential: %#v", k, record, sequential[k-1])
		}
	}
}

func TestFile_RecordOutOfRange(t *testing.T) {
	shpPath, shxPath := writeFixture(t, codec.TypePoint, testPayloads()...)

	file, err := Open(Config{Path: shpPath})
	if err != nil {
		t.Fatalf("Open main failed: %v", err)
	}
	defer file.Close()

	idx, err := shx.Open(shxPath)
	if err != nil {
		t.Fatalf("Open index failed: %v", err)
	}
	defer idx.Close()

	for _, id := range []uint64{0, 5, 1000} {
		if _, ok := file.Record(idx, id); ok {
			t.Errorf("Record(%d) should not be found", id)
		}
	}

	// A failed lookup must not corrupt reader state for later ones.
	if _, ok := file.Record(idx, 2); !ok {
		t.Errorf("Record(2) should still be found after out-of-range lookups")
	}
}

func TestFile_RecordDataTruncated(t *testing.T) {
	shpPath, shxPath := writeFixture(t, codec.TypePoint, testPayloads()...)

	// Cut the main file in the middle of the last record.
	raw, err := os.ReadFile(shpPath)
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	if err := os.WriteFile(shpPath, raw[:len(raw)-10], 0o600); err != nil {
		t.Fatalf("Failed to rewrite fixture: %v", err)
	}

	file, err := Open(Config{Path: shpPath})
	if err != nil {
		t.Fatalf("Open main failed: %v", err)
	}
	defer file.Close()

	idx, err := shx.Open(shxPath)
	if err != nil {
		t.Fatalf("Open index failed: %v", err)
	}
	defer idx.Close()

	// Random access: the damaged record is not found, intact ones are.
	if _, ok := file.Record(idx, 4); ok {
		t.Errorf("Record(4) is truncated and should not be found")
	}
	if _, ok := file.Record(idx, 1); !ok {
		t.Errorf("Record(1) should be found")
	}

	// Sequential decode: a partial trailing record is a hard error.
	_, err = file.ReadAll()
	if !errors.Is(err, codec.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestOpen_HeaderErrors(t *testing.T) {
	dir := t.TempDir()

	shortPath := filepath.Join(dir, "short.shp")
	if err := os.WriteFile(shortPath, make([]byte, 50), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if _, err := Open(Config{Path: shortPath}); !errors.Is(err, codec.ErrTruncated) {
		t.Errorf("short file: expected ErrTruncated, got %v", err)
	}

	badPath := filepath.Join(dir, "bad.shp")
	raw := fileHeader(50, codec.TypePoint)
	raw[0] = 0x7F
	if err := os.WriteFile(badPath, raw, 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if _, err := Open(Config{Path: badPath}); !errors.Is(err, codec.ErrBadMagic) {
		t.Errorf("bad magic: expected ErrBadMagic, got %v", err)
	}
}

func TestFile_StrictConfig(t *testing.T) {
	// Payload with an undefined shape type code.
	shpPath, shxPath := writeFixture(t, codec.TypePoint, shapePayload(int32(2)))

	idx, err := shx.Open(shxPath)
	if err != nil {
		t.Fatalf("Open index failed: %v", err)
	}
	defer idx.Close()

	lenient, err := Open(Config{Path: shpPath})
	if err != nil {
		t.Fatalf("Open lenient failed: %v", err)
	}
	defer lenient.Close()

	record, ok := lenient.Record(idx, 1)
	if !ok {
		t.Fatalf("lenient Record(1) not found")
	}
	if _, isNull := record.Shape.(codec.Null); !isNull {
		t.Errorf("lenient decode of unknown tag should yield Null, got %T", record.Shape)
	}

	strict, err := Open(Config{Path: shpPath, Strict: true})
	if err != nil {
		t.Fatalf("Open strict failed: %v", err)
	}
	defer strict.Close()

	if _, ok := strict.Record(idx, 1); ok {
		t.Errorf("strict Record(1) should not be found")
	}
}
