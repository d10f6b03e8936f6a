// Package codec decodes the binary record formats of ESRI shapefiles.
//
// The package covers the two layouts shared by the main (.shp) and index
// (.shx) files: the fixed 100-byte file header, and the variable-length
// geometry records of the main file. Attribute (.dbf) decoding lives in
// its own package.
//
// # File header
//
// Both the main and the index file begin with the same 100-byte header:
//
//	[Magic(4,BE)][Unused(20)][FileLength(4,BE)][Version(4,LE)][ShapeType(4,LE)][BoundingVolume(64,LE)]
//
// FileLength is measured in 16-bit words and includes the header itself.
// The bounding volume holds eight float64 values in the order
// xmin, ymin, xmax, ymax, zmin, zmax, mmin, mmax.
//
// # Geometry records
//
// Each record in the main file consists of an 8-byte big-endian header
// (record number, content length in words) followed by a shape payload.
// The payload starts with a 4-byte little-endian type tag which selects
// one of fourteen layouts; see the ShapeType constants. ShapeCodec.Decode
// reports the exact number of bytes it consumed, including the tag, so
// callers can traverse a file sequentially without trusting the declared
// content lengths.
//
// # Mixed endianness
//
// The format mixes byte orders within a single file: record headers, the
// header magic number and file length are big-endian, everything else is
// little-endian. All fields are fixed-width.
//
// # Error handling
//
// Violations of the format (bad magic, unsupported version, unknown patch
// type, negative element counts) are reported as *FormatError values
// matching the package sentinels. Streams that end inside a field or declared-length array
// produce ErrTruncated. A failed decode never returns a partially
// populated shape.
package codec
