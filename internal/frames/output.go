package frames

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kozaktomas/face-stickers/internal/constants"
	"github.com/kozaktomas/face-stickers/internal/overlay"
)

// OutputDir picks the directory processed frames of input are written to:
// result_frames_<kind> next to the input directory, with a (n) suffix when
// that name is taken. The directory is not created.
func OutputDir(input string, kind overlay.Kind) (string, error) {
	parent := filepath.Dir(filepath.Clean(input))

	base := constants.OutputDirPrefix
	if kind != overlay.None {
		base += "_" + string(kind)
	}

	candidate := filepath.Join(parent, base)
	for n := 1; ; n++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check output path: %w", err)
		}
		candidate = filepath.Join(parent, fmt.Sprintf("%s(%d)", base, n))
	}
}
