package api

import "github.com/fceschmidt/shapefile-utils/pkg/codec"

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port int
	Bind string
	// APIKey protects the /api/v1 routes when set; empty disables
	// authentication.
	APIKey string
}

// APIResponse is the JSON envelope for all responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HeaderInfo describes the open shapefile.
type HeaderInfo struct {
	ShapeType       string               `json:"shape_type"`
	FileLengthWords int32                `json:"file_length_words"`
	NumRecords      uint64               `json:"num_records"`
	Bounds          codec.BoundingVolume `json:"bounds"`
}
