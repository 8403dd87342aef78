// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Frame processing constants
const (
	// DisableFaceCountCheck turns off the expected faces per frame check
	DisableFaceCountCheck = -1

	// JPEGQuality is the quality used when writing JPEG frames
	JPEGQuality = 95

	// UpperFaceRatio is the fraction of the face height used for the band
	// above the face box that head-top stickers are scored against (1/3.5)
	UpperFaceRatio = 3.5
)

// Output naming constants
const (
	// OutputDirPrefix is the name of the directory processed frames are written to
	OutputDirPrefix = "result_frames"
)
