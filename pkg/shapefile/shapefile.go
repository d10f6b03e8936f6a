// Package shapefile joins the three files of an ESRI shapefile — main
// (.shp), index (.shx) and attribute table (.dbf) — behind one record API.
//
// Records are addressed by ordinal ID, the 1-based position of a record
// within the file triplet. Geometry and attributes for the same ordinal
// belong to the same feature.
package shapefile

import (
	"github.com/fceschmidt/shapefile-utils/pkg/codec"
	"github.com/fceschmidt/shapefile-utils/pkg/dbf"
	"github.com/fceschmidt/shapefile-utils/pkg/shp"
	"github.com/fceschmidt/shapefile-utils/pkg/shx"
)

// Config holds the file triplet paths and decode options.
type Config struct {
	ShpPath string
	ShxPath string
	DbfPath string
	// Strict makes unknown shape type codes a decode error; see shp.Config.
	Strict bool
}

// Record is one feature: a shape and the attribute row that belongs to it.
type Record struct {
	// Number is the record number declared in the main file.
	Number int32
	// Shape is the decoded geometry.
	Shape codec.Shape
	// Attributes maps attribute field names to their typed values.
	Attributes map[string]interface{}
}

// Shapefile owns one open handle per file of the triplet. Handles are not
// shared; for concurrent readers open the triplet once per worker.
type Shapefile struct {
	shp *shp.File
	shx *shx.File
	dbf *dbf.File
}

// Open opens all three files of the triplet.
func Open(config Config) (*Shapefile, error) {
	shpFile, err := shp.Open(shp.Config{Path: config.ShpPath, Strict: config.Strict})
	if err != nil {
		return nil, err
	}
	shxFile, err := shx.Open(config.ShxPath)
	if err != nil {
		shpFile.Close()
		return nil, err
	}
	dbfFile, err := dbf.Open(config.DbfPath)
	if err != nil {
		shpFile.Close()
		shxFile.Close()
		return nil, err
	}
	return &Shapefile{shp: shpFile, shx: shxFile, dbf: dbfFile}, nil
}

// Header returns the main file's header.
func (s *Shapefile) Header() *codec.FileHeader {
	return s.shp.Header()
}

// NumRecords returns the number of records listed in the index.
func (s *Shapefile) NumRecords() uint64 {
	return s.shx.NumRecords()
}

// Record fetches the feature with the given 1-based ordinal ID. A record
// is only returned when both its geometry and its attribute row resolve;
// any failure reports not-found.
//
// The attribute table is 0-based internally; the ordinal is translated
// exactly here, so ordinal 1 pairs the first geometry record with the
// first attribute row.
func (s *Shapefile) Record(id uint64) (*Record, bool) {
	geometry, ok := s.shp.Record(s.shx, id)
	if !ok {
		return nil, false
	}
	attributes, ok := s.dbf.Record(uint32(id - 1))
	if !ok {
		return nil, false
	}
	return &Record{
		Number:     geometry.Number,
		Shape:      geometry.Shape,
		Attributes: attributes,
	}, true
}

// Iterator returns an iterator over all records in ordinal order.
func (s *Shapefile) Iterator() *Iterator {
	return &Iterator{s: s}
}

// Close closes all three file handles and returns the first error.
func (s *Shapefile) Close() error {
	err := s.shp.Close()
	if e := s.shx.Close(); err == nil {
		err = e
	}
	if e := s.dbf.Close(); err == nil {
		err = e
	}
	return err
}

// Iterator walks the records of a shapefile in ordinal order.
type Iterator struct {
	s      *Shapefile
	id     uint64
	record *Record
}

// Next advances to the next record and reports whether one was found.
func (it *Iterator) Next() bool {
	it.id++
	it.record, _ = it.s.Record(it.id)
	return it.record != nil
}

// Record returns the record fetched by the last successful Next.
func (it *Iterator) Record() *Record {
	return it.record
}

// ID returns the ordinal of the record fetched by the last successful Next.
func (it *Iterator) ID() uint64 {
	return it.id
}
