package handlers

import (
	"net/http"

	"github.com/kozaktomas/face-stickers/internal/config"
	"github.com/kozaktomas/face-stickers/internal/overlay"
)

// StickersHandler lists the configured stickers.
type StickersHandler struct {
	config *config.Config
	assets *overlay.Store
}

// NewStickersHandler creates a new stickers handler.
func NewStickersHandler(cfg *config.Config, assets *overlay.Store) *StickersHandler {
	return &StickersHandler{
		config: cfg,
		assets: assets,
	}
}

// StickerInfo describes one sticker.
type StickerInfo struct {
	Name        string `json:"name"`
	File        string `json:"file"`
	Description string `json:"description,omitempty"`
	Available   bool   `json:"available"`
}

// List returns every sticker in the manifest and whether its file exists.
func (h *StickersHandler) List(w http.ResponseWriter, r *http.Request) {
	stickers := make([]StickerInfo, 0, len(h.config.Stickers.Manifest))
	for _, name := range h.config.Stickers.Names() {
		entry := h.config.Stickers.Manifest[name]
		info := StickerInfo{
			Name:        name,
			File:        entry.File,
			Description: entry.Description,
		}
		if kind, err := overlay.ParseKind(name); err == nil {
			info.Available = h.assets.Available(kind)
		}
		stickers = append(stickers, info)
	}

	respondJSON(w, http.StatusOK, stickers)
}
