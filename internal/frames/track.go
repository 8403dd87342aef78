// Package frames reads frame sequences and the landmark track files that
// describe the faces detected in them, and writes processed frames.
package frames

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/face-stickers/internal/geometry"
	"github.com/kozaktomas/face-stickers/internal/landmarks"
)

// FaceRecord is one detected face as written by the detector: the face
// rectangle as [x, y, w, h] and the 68 landmark points as [x, y] pairs.
type FaceRecord struct {
	Rect   []int   `yaml:"rect" json:"rect"`
	Points [][]int `yaml:"points" json:"points"`
}

// FrameRecord lists the faces detected in one frame file.
type FrameRecord struct {
	File  string       `yaml:"file" json:"file"`
	Faces []FaceRecord `yaml:"faces" json:"faces"`
}

// Track holds the detections for a frame sequence.
type Track struct {
	Frames []FrameRecord `yaml:"frames" json:"frames"`

	faces map[string][]landmarks.Face
}

// LoadTrack reads a JSON or YAML track file.
func LoadTrack(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read track file: %w", err)
	}
	t, err := ParseTrack(data)
	if err != nil {
		return nil, fmt.Errorf("track file %s: %w", path, err)
	}
	return t, nil
}

// ParseTrack parses track data. JSON is accepted as a subset of YAML.
// Every face record is validated up front.
func ParseTrack(data []byte) (*Track, error) {
	var t Track
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse track: %w", err)
	}

	t.faces = make(map[string][]landmarks.Face, len(t.Frames))
	for i, fr := range t.Frames {
		if fr.File == "" {
			return nil, fmt.Errorf("frame %d: missing file name", i)
		}
		faces, err := ToFaces(fr.Faces)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", fr.File, err)
		}
		key := filepath.Base(fr.File)
		t.faces[key] = append(t.faces[key], faces...)
	}
	return &t, nil
}

// Faces returns the faces recorded for a frame file. Frames without an
// entry have no faces.
func (t *Track) Faces(file string) []landmarks.Face {
	return t.faces[filepath.Base(file)]
}

// ToFaces converts detector records to faces.
func ToFaces(records []FaceRecord) ([]landmarks.Face, error) {
	faces := make([]landmarks.Face, 0, len(records))
	for i, r := range records {
		f, err := r.Face()
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		faces = append(faces, f)
	}
	return faces, nil
}

// Face converts the record into a face with grouped landmarks.
func (r FaceRecord) Face() (landmarks.Face, error) {
	if len(r.Rect) != 4 {
		return landmarks.Face{}, fmt.Errorf("%w: rect needs 4 values, got %d", landmarks.ErrMalformedLandmarks, len(r.Rect))
	}
	rect := geometry.Rect{X: r.Rect[0], Y: r.Rect[1], W: r.Rect[2], H: r.Rect[3]}
	if rect.W < 0 || rect.H < 0 {
		return landmarks.Face{}, fmt.Errorf("%w: negative rect size %v", landmarks.ErrMalformedLandmarks, r.Rect)
	}

	pts := make([]geometry.Point, len(r.Points))
	for i, p := range r.Points {
		if len(p) != 2 {
			return landmarks.Face{}, fmt.Errorf("%w: point %d needs 2 values, got %d", landmarks.ErrMalformedLandmarks, i, len(p))
		}
		pts[i] = geometry.Pt(p[0], p[1])
	}

	set, err := landmarks.FromPoints68(pts)
	if err != nil {
		return landmarks.Face{}, err
	}
	return landmarks.Face{Rect: rect, Landmarks: set}, nil
}

// Record builds a detector record from a face rectangle and its raw points.
func Record(rect geometry.Rect, points []geometry.Point) FaceRecord {
	r := FaceRecord{
		Rect:   []int{rect.X, rect.Y, rect.W, rect.H},
		Points: make([][]int, len(points)),
	}
	for i, p := range points {
		r.Points[i] = []int{p.X, p.Y}
	}
	return r
}
