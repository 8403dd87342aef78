package frames

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 77, A: 255})
		}
	}
	return img
}

func TestListFrames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "c.txt", "track.yaml", "d.bmp"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ListFrames(dir)
	if err != nil {
		t.Fatalf("ListFrames() error = %v", err)
	}

	want := []string{"a.JPG", "b.png", "d.bmp"}
	if len(files) != len(want) {
		t.Fatalf("ListFrames() = %v, want %v", files, want)
	}
	for i, name := range want {
		if filepath.Base(files[i]) != name {
			t.Errorf("files[%d] = %s, want %s", i, files[i], name)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"f001.png", "f001.png"},
		{"f001.jpeg", "f001.jpeg"},
		{"f001.gif", "f001.gif"},
		{"f001.webp", "f001.png"},
		{"f001.WEBP", "f001.png"},
		{"/clip/f.001.webp", "/clip/f.001.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputName(tt.name); got != tt.want {
				t.Errorf("OutputName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

// Every frame ListFrames picks up must be writable under its output name.
func TestListFrames_AllWritable(t *testing.T) {
	dir := t.TempDir()
	for ext := range readable {
		if err := os.WriteFile(filepath.Join(dir, "frame"+ext), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ListFrames(dir)
	if err != nil {
		t.Fatalf("ListFrames() error = %v", err)
	}
	if len(files) != len(readable) {
		t.Fatalf("ListFrames() returned %d files, want %d", len(files), len(readable))
	}

	out := t.TempDir()
	src := testImage(4, 4)
	for _, f := range files {
		t.Run(filepath.Ext(f), func(t *testing.T) {
			path := filepath.Join(out, OutputName(filepath.Base(f)))
			if err := Save(path, src); err != nil {
				t.Fatalf("Save(%s) error = %v", path, err)
			}
			if _, err := Load(path); err != nil {
				t.Errorf("Load(%s) error = %v", path, err)
			}
		})
	}
}

func TestDecode_MovesOriginToZero(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 14, 23))
	src.SetNRGBA(10, 20, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("Bounds() = %v, want (0,0)-(4,3)", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel (0,0) = %v, want red", got)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	src := testImage(8, 6)

	// lossless formats only
	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "frame"+ext)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !bytes.Equal(got.Pix, src.Pix) {
				t.Error("pixels changed after save and load")
			}
		})
	}

	t.Run("jpeg", func(t *testing.T) {
		path := filepath.Join(dir, "frame.jpg")
		if err := Save(path, src); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.Bounds() != src.Bounds() {
			t.Errorf("Bounds() = %v, want %v", got.Bounds(), src.Bounds())
		}
	})
}

func TestSave_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.xyz")

	err := Save(path, testImage(2, 2))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Save() error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("failed save should not leave a file behind")
	}
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected decode error")
	}
}
