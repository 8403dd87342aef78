package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kozaktomas/face-stickers/internal/config"
	"github.com/kozaktomas/face-stickers/internal/frames"
	"github.com/kozaktomas/face-stickers/internal/geometry"
	"github.com/kozaktomas/face-stickers/internal/landmarks/landmarkstest"
	"github.com/kozaktomas/face-stickers/internal/overlay"
)

var stickerColor = color.NRGBA{R: 10, G: 200, B: 30, A: 255}

// testConfig creates a config with the embedded manifest and dir as sticker directory
func testConfig(dir string) *config.Config {
	cfg := config.Load()
	cfg.Stickers.Dir = dir
	return cfg
}

// testStore creates a sticker store for the manifest of cfg
func testStore(t *testing.T, cfg *config.Config) *overlay.Store {
	t.Helper()
	files, err := overlay.ParseManifest(cfg.Stickers.Files())
	if err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}
	return overlay.NewStore(cfg.Stickers.Dir, files)
}

// writeSticker writes an opaque solid sticker image into dir
func writeSticker(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, stickerColor)
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to create sticker: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode sticker: %v", err)
	}
}

// framePNG encodes a gray frame
func framePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 90
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode frame: %v", err)
	}
	return buf.Bytes()
}

// facesJSON returns a faces form value with one synthetic face per rectangle
func facesJSON(t *testing.T, rects ...geometry.Rect) string {
	t.Helper()
	records := make([]frames.FaceRecord, len(rects))
	for i, r := range rects {
		records[i] = frames.Record(r, landmarkstest.Points68(r, landmarkstest.Closed))
	}
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("failed to marshal faces: %v", err)
	}
	return string(data)
}

// multipartRequest builds a POST request with form fields and an optional frame file
func multipartRequest(t *testing.T, path string, fields map[string]string, frame []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if frame != nil {
		fw, err := mw.CreateFormFile("frame", "frame.png")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		fw.Write(frame)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
