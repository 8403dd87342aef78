package cmd

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/kozaktomas/face-stickers/internal/frames"
	"github.com/kozaktomas/face-stickers/internal/geometry"
	"github.com/kozaktomas/face-stickers/internal/landmarks"
	"github.com/kozaktomas/face-stickers/internal/landmarks/landmarkstest"
	"github.com/kozaktomas/face-stickers/internal/logging"
	"github.com/kozaktomas/face-stickers/internal/overlay"
	"github.com/kozaktomas/face-stickers/internal/pipeline"
	"github.com/kozaktomas/face-stickers/internal/placement"
)

// failingPlacer fails every placement with err, or places nothing when err is nil.
type failingPlacer struct {
	err error
}

func (f failingPlacer) Place(_ *image.RGBA, _ landmarks.Face, kind overlay.Kind) (placement.Result, error) {
	if f.err != nil {
		return placement.Result{Kind: kind}, f.err
	}
	return placement.Result{Kind: kind, Placed: true, Score: 0.5}, nil
}

func writeFrame(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := frames.Save(path, image.NewRGBA(image.Rect(0, 0, 64, 64))); err != nil {
		t.Fatalf("failed to write frame: %v", err)
	}
	return path
}

func TestApplyFrame(t *testing.T) {
	face := []landmarks.Face{landmarkstest.Face(geometry.Rect{X: 10, Y: 10, W: 40, H: 40}, landmarkstest.Closed)}

	tests := []struct {
		name        string
		placeErr    error
		faces       []landmarks.Face
		corrupt     bool
		wantWritten int
		wantAborted int
		wantFatal   bool
	}{
		{name: "no faces", wantWritten: 1},
		{name: "placed", faces: face, wantWritten: 1},
		{
			name:        "face skipped",
			placeErr:    fmt.Errorf("%w: glasses", overlay.ErrAssetLoad),
			faces:       face,
			wantWritten: 1,
		},
		{
			name:        "frame aborted",
			placeErr:    fmt.Errorf("%w: forehead", landmarks.ErrUnknownFeature),
			faces:       face,
			wantAborted: 1,
		},
		{name: "unreadable frame", corrupt: true, wantFatal: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, out := t.TempDir(), t.TempDir()
			path := writeFrame(t, in, "f001.png")
			if tc.corrupt {
				if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			proc := pipeline.New(failingPlacer{err: tc.placeErr}, pipeline.Options{Kind: overlay.Glasses, ExpectFaces: -1}, nil)
			session := pipeline.NewSession(proc)

			var counts applyCounts
			err := counts.record(applyFrame(session, path, out, tc.faces, logging.Discard()))
			if tc.wantFatal != (err != nil) {
				t.Fatalf("record() error = %v, want fatal %v", err, tc.wantFatal)
			}
			if counts.written != tc.wantWritten || counts.aborted != tc.wantAborted {
				t.Errorf("counts = %+v, want written %d aborted %d", counts, tc.wantWritten, tc.wantAborted)
			}

			_, statErr := os.Stat(filepath.Join(out, "f001.png"))
			if exists := statErr == nil; exists != (tc.wantWritten == 1) {
				t.Errorf("output exists = %v, want %v", exists, tc.wantWritten == 1)
			}
		})
	}
}

func TestApplyCounts_Record(t *testing.T) {
	var counts applyCounts
	fatal := errors.New("disk full")

	if err := counts.record(nil); err != nil {
		t.Errorf("record(nil) = %v", err)
	}
	if err := counts.record(fmt.Errorf("face 0: %w", landmarks.ErrUnknownFeature)); err != nil {
		t.Errorf("record(unknown feature) = %v, want nil", err)
	}
	if err := counts.record(fatal); !errors.Is(err, fatal) {
		t.Errorf("record(fatal) = %v, want %v", err, fatal)
	}
	if counts.written != 1 || counts.aborted != 1 {
		t.Errorf("counts = %+v, want written 1 aborted 1", counts)
	}
}
