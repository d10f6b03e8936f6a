package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fceschmidt/shapefile-utils/pkg/shapefile"
)

// Server handles the HTTP API requests against one open shapefile.
type Server struct {
	sf      *shapefile.Shapefile
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server instance.
func NewServer(sf *shapefile.Shapefile, config ServerConfig, metrics *Metrics) *Server {
	return &Server{sf: sf, config: config, metrics: metrics}
}

// handleHealth reports liveness and the open file's record count.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]interface{}{
		"status":  "healthy",
		"records": s.sf.NumRecords(),
	})
}

// handleHeader returns the main file's header.
func (s *Server) handleHeader(w http.ResponseWriter, r *http.Request) {
	header := s.sf.Header()
	sendSuccess(w, HeaderInfo{
		ShapeType:       header.ShapeType.String(),
		FileLengthWords: header.FileLength,
		NumRecords:      s.sf.NumRecords(),
		Bounds:          header.Bounds,
	})
}

// handleRecord returns one record as a GeoJSON feature.
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		sendError(w, "Invalid record ID", http.StatusBadRequest)
		return
	}

	record, ok := s.sf.Record(id)
	s.metrics.RecordLookup(ok)
	if !ok {
		sendError(w, "Record not found", http.StatusNotFound)
		return
	}
	sendSuccess(w, record.GeoJSON(id))
}

// handleCount returns the number of records in the shapefile.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]uint64{"records": s.sf.NumRecords()})
}
