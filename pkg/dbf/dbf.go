// Package dbf reads the attribute tables (.dbf, dBASE III layout) that
// accompany shapefiles.
//
// The table is a fixed header, a run of 32-byte field descriptors, and
// fixed-length text records. Records are addressed by 0-based index; the
// shapefile package maps the 1-based geometry ordinal onto this.
//
// Layout reference: http://www.clicketyclick.dk/databases/xbase/format/dbf.html
package dbf

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	headerSize     = 32
	descriptorSize = 32
	deletedFlag    = 0x2A
)

// ErrBadDescriptors reports a header whose declared size does not leave
// room for a whole number of field descriptors.
var ErrBadDescriptors = fmt.Errorf("header size does not fit the descriptor table")

// ErrBadRecordLen reports a header whose record length cannot hold the
// deletion flag byte every record starts with.
var ErrBadRecordLen = fmt.Errorf("record length smaller than the deletion flag")

type fileHeader struct {
	Version        byte
	LastUpdate     [3]byte // YY MM DD, years since 1900
	NumRecords     uint32
	HeaderLen      uint16
	RecordLen      uint16
	_              [2]byte
	IncompleteTx   byte
	EncryptionFlag byte
	FreeRecThread  uint32
	_              [8]byte
	MDXFlag        byte
	LanguageDriver byte
	_              [2]byte
}

// Field type codes used in descriptors. Only the types that occur in
// shapefile side tables are decoded; anything else surfaces as a raw
// trimmed string.
const (
	typeCharacter = 'C'
	typeNumber    = 'N'
	typeFloat     = 'F'
	typeDouble    = 'O'
	typeInteger   = 'I'
	typeLogical   = 'L'
	typeDate      = 'D'
)

type fieldDescriptor struct {
	Name         [11]byte
	Type         byte
	DataAddr     uint32
	Length       uint8
	DecimalCount uint8
	_            [2]byte
	WorkAreaID   byte
	_            [2]byte
	SetFieldFlag byte
	_            [7]byte
	IndexFlag    byte
}

func (d *fieldDescriptor) name() string {
	for i, b := range d.Name {
		if b == 0 {
			return strings.TrimSpace(string(d.Name[:i]))
		}
	}
	return strings.TrimSpace(string(d.Name[:]))
}

// File is an open attribute table.
type File struct {
	f      *os.File
	header fileHeader
	fields []fieldDescriptor
}

// Open reads the table header and field descriptors.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	d := &File{f: f}
	if err := binary.Read(f, binary.LittleEndian, &d.header); err != nil {
		f.Close()
		return nil, fmt.Errorf("attribute table %s: %w", path, err)
	}

	if d.header.HeaderLen < headerSize {
		f.Close()
		return nil, fmt.Errorf("attribute table %s: %w", path, ErrBadDescriptors)
	}
	if d.header.RecordLen < 1 {
		f.Close()
		return nil, fmt.Errorf("attribute table %s: %w", path, ErrBadRecordLen)
	}
	numFields := int(d.header.HeaderLen-headerSize) / descriptorSize
	for i := 0; i < numFields; i++ {
		var fd fieldDescriptor
		if err := binary.Read(f, binary.LittleEndian, &fd); err != nil {
			f.Close()
			return nil, fmt.Errorf("attribute table %s: field descriptor %d: %w", path, i, err)
		}
		d.fields = append(d.fields, fd)
	}
	return d, nil
}

// NumRecords returns the number of records in the table, deleted ones
// included.
func (d *File) NumRecords() uint32 {
	return d.header.NumRecords
}

// FieldNames returns the column names in table order.
func (d *File) FieldNames() []string {
	names := make([]string, 0, len(d.fields))
	for i := range d.fields {
		names = append(names, d.fields[i].name())
	}
	return names
}

// Record returns the attribute values of the record with the given 0-based
// index as a field-name to value map. Out-of-range indices, deleted
// records and unreadable records report not-found.
func (d *File) Record(n uint32) (map[string]interface{}, bool) {
	if n >= d.header.NumRecords {
		return nil, false
	}

	offset := int64(d.header.HeaderLen) + int64(n)*int64(d.header.RecordLen)
	if _, err := d.f.Seek(offset, io.SeekStart); err != nil {
		return nil, false
	}

	raw := make([]byte, d.header.RecordLen)
	if _, err := io.ReadFull(d.f, raw); err != nil {
		return nil, false
	}
	if raw[0] == deletedFlag {
		return nil, false
	}

	entry := make(map[string]interface{}, len(d.fields))
	pos := 1 // first byte is the deletion flag
	for i := range d.fields {
		fd := &d.fields[i]
		if pos+int(fd.Length) > len(raw) {
			return nil, false
		}
		value, err := parseField(fd, raw[pos:pos+int(fd.Length)])
		if err != nil {
			return nil, false
		}
		entry[fd.name()] = value
		pos += int(fd.Length)
	}
	return entry, true
}

func parseField(fd *fieldDescriptor, raw []byte) (interface{}, error) {
	text := strings.TrimSpace(string(raw))
	switch fd.Type {
	case typeCharacter, typeDate:
		return text, nil
	case typeNumber, typeInteger:
		if text == "" {
			return nil, nil
		}
		if fd.DecimalCount == 0 {
			v, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return nil, err
			}
			return int(v), nil
		}
		fallthrough
	case typeFloat, typeDouble:
		if text == "" {
			return nil, nil
		}
		return strconv.ParseFloat(text, 64)
	case typeLogical:
		switch text {
		case "1", "T", "t", "Y", "y":
			return true, nil
		case "0", "F", "f", "N", "n":
			return false, nil
		case "", "?":
			return nil, nil
		}
		return nil, fmt.Errorf("unsupported logical value %q", text)
	}
	return text, nil
}

// Close closes the underlying file.
func (d *File) Close() error {
	return d.f.Close()
}
