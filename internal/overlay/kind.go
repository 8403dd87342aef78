// Package overlay loads sticker assets, transforms them for a face and
// alpha-composites them onto frames.
package overlay

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned for sticker names outside the supported set.
var ErrUnknownKind = errors.New("unknown sticker")

// Kind identifies a sticker.
type Kind string

const (
	None     Kind = ""
	Cat      Kind = "cat"
	Ears     Kind = "ears"
	Flowers  Kind = "flowers"
	Glasses  Kind = "glasses"
	Mask     Kind = "mask"
	Mustache Kind = "mustache"
	Mouse    Kind = "mouse"
	Pirate   Kind = "pirate"
	Rainbow  Kind = "rainbow"
)

// kinds is every placeable kind in alphabetical order.
var kinds = []Kind{Cat, Ears, Flowers, Glasses, Mask, Mustache, Mouse, Pirate, Rainbow}

// Kinds returns all placeable kinds, None excluded.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind converts a sticker name to a Kind. Empty string and "none"
// both mean no sticker.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return None, nil
	}
	for _, k := range kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// String returns the sticker name, "none" for None.
func (k Kind) String() string {
	if k == None {
		return "none"
	}
	return string(k)
}

// ParseManifest converts a sticker name to file mapping into kinds.
func ParseManifest(files map[string]string) (map[Kind]string, error) {
	out := make(map[Kind]string, len(files))
	for name, file := range files {
		k, err := ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("sticker manifest: %w", err)
		}
		if k == None {
			continue
		}
		out[k] = file
	}
	return out, nil
}
