// Package constants provides shared constants used across the codebase.
package constants

import "time"

// File upload constants
const (
	// MaxUploadSize is the maximum multipart request size in bytes (32MB)
	MaxUploadSize = 32 << 20
)

// Response header constants
const (
	// HeaderAlignmentScore carries the mean alignment score of the frame
	HeaderAlignmentScore = "X-Alignment-Score"

	// HeaderFacesScored carries the number of faces that received a score
	HeaderFacesScored = "X-Faces-Scored"
)

// Server constants
const (
	// RequestTimeout bounds the processing time of a single request
	RequestTimeout = time.Minute

	// ShutdownTimeout is how long in-flight requests get on shutdown
	ShutdownTimeout = 10 * time.Second
)
