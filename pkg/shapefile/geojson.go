package shapefile

import "github.com/fceschmidt/shapefile-utils/pkg/codec"

// Geometry is a GeoJSON geometry object. Coordinates nest per GeoJSON
// rules: a position, an array of positions, an array of rings, and so on.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// Feature is a GeoJSON feature: geometry plus attribute properties.
// Geometry is null for null shapes and for shapes with no GeoJSON
// counterpart (MultiPatch).
type Feature struct {
	Type       string                 `json:"type"`
	ID         uint64                 `json:"id,omitempty"`
	Geometry   *Geometry              `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// GeoJSON converts the record into a GeoJSON feature with the given
// ordinal as feature ID. Measure values have no GeoJSON representation and
// are dropped; altitudes of Z shapes become a third position element.
func (r *Record) GeoJSON(id uint64) *Feature {
	properties := r.Attributes
	if properties == nil {
		properties = map[string]interface{}{}
	}
	return &Feature{
		Type:       "Feature",
		ID:         id,
		Geometry:   geometryOf(r.Shape),
		Properties: properties,
	}
}

func geometryOf(shape codec.Shape) *Geometry {
	switch s := shape.(type) {
	case codec.Point:
		return &Geometry{Type: "Point", Coordinates: position(s.X, s.Y)}
	case codec.PointM:
		return &Geometry{Type: "Point", Coordinates: position(s.X, s.Y)}
	case codec.PointZ:
		return &Geometry{Type: "Point", Coordinates: position(s.X, s.Y, s.Z)}
	case codec.MultiPoint:
		return &Geometry{Type: "MultiPoint", Coordinates: positions(s.Points, nil)}
	case codec.MultiPointM:
		return &Geometry{Type: "MultiPoint", Coordinates: positions(s.Points, nil)}
	case codec.MultiPointZ:
		return &Geometry{Type: "MultiPoint", Coordinates: positions(s.Points, s.ZValues)}
	case codec.PolyLine:
		return &Geometry{Type: "MultiLineString", Coordinates: partCoords(s.Parts, s.Points, nil)}
	case codec.PolyLineM:
		return &Geometry{Type: "MultiLineString", Coordinates: partCoords(s.Parts, s.Points, nil)}
	case codec.PolyLineZ:
		return &Geometry{Type: "MultiLineString", Coordinates: partCoords(s.Parts, s.Points, s.ZValues)}
	case codec.Polygon:
		return &Geometry{Type: "Polygon", Coordinates: partCoords(s.Parts, s.Points, nil)}
	case codec.PolygonM:
		return &Geometry{Type: "Polygon", Coordinates: partCoords(s.Parts, s.Points, nil)}
	case codec.PolygonZ:
		return &Geometry{Type: "Polygon", Coordinates: partCoords(s.Parts, s.Points, s.ZValues)}
	}
	return nil
}

func position(coords ...float64) []float64 {
	return coords
}

func positions(points []codec.Point, zValues []float64) [][]float64 {
	out := make([][]float64, 0, len(points))
	for i, p := range points {
		if zValues != nil {
			out = append(out, position(p.X, p.Y, zValues[i]))
		} else {
			out = append(out, position(p.X, p.Y))
		}
	}
	return out
}

// partCoords splits the shared point sequence at the part start indices.
// Part i runs from Parts[i] up to (exclusive) Parts[i+1] or the end. The
// decoder does not validate part indices against the point count, so a
// malformed file can carry indices outside it; those parts are dropped or
// clamped here rather than trusted.
func partCoords(parts []int32, points []codec.Point, zValues []float64) [][][]float64 {
	out := make([][][]float64, 0, len(parts))
	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) && int(parts[i+1]) < end {
			end = int(parts[i+1])
		}
		if start < 0 || int(start) > end {
			continue
		}
		if zValues != nil {
			out = append(out, positions(points[start:end], zValues[start:end]))
		} else {
			out = append(out, positions(points[start:end], nil))
		}
	}
	return out
}
