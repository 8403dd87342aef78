package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/kozaktomas/face-stickers/internal/alignment"
	"github.com/kozaktomas/face-stickers/internal/constants"
	"github.com/kozaktomas/face-stickers/internal/frames"
	"github.com/kozaktomas/face-stickers/internal/landmarks"
	"github.com/kozaktomas/face-stickers/internal/overlay"
	"github.com/kozaktomas/face-stickers/internal/pipeline"
	"github.com/kozaktomas/face-stickers/internal/placement"
)

// OverlayHandler places stickers on uploaded frames.
type OverlayHandler struct {
	assets placement.AssetSource
	scorer *alignment.Scorer
	log    logrus.FieldLogger
}

// NewOverlayHandler creates a new overlay handler.
func NewOverlayHandler(assets placement.AssetSource, scorer *alignment.Scorer, log logrus.FieldLogger) *OverlayHandler {
	return &OverlayHandler{
		assets: assets,
		scorer: scorer,
		log:    log,
	}
}

// FailureInfo describes a face that could not be processed.
type FailureInfo struct {
	Face  int    `json:"face"`
	Error string `json:"error"`
}

// Apply handles a multipart upload with a frame image, the sticker name and
// the detected faces, and responds with the composited frame as PNG.
func (h *OverlayHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	kind, err := overlay.ParseKind(r.FormValue("sticker"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("frame")
	if err != nil {
		respondError(w, http.StatusBadRequest, "frame is required")
		return
	}
	defer file.Close()

	frame, err := frames.Decode(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "frame is not a supported image")
		return
	}

	var records []frames.FaceRecord
	if raw := r.FormValue("faces"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &records); err != nil {
			respondError(w, http.StatusBadRequest, "invalid faces")
			return
		}
	}
	faces, err := frames.ToFaces(records)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	log := h.log.WithFields(logrus.Fields{
		"sticker": kind,
		"frame":   sanitizeForLog(header.Filename),
	})
	annotate, _ := strconv.ParseBool(r.FormValue("annotate"))
	proc := pipeline.New(
		placement.NewPlacer(h.assets, h.scorer, log),
		pipeline.Options{Kind: kind, Annotate: annotate, ExpectFaces: constants.DisableFaceCountCheck},
		log,
	)

	var acc alignment.Accumulator
	res, err := proc.ProcessFrame(frame, faces, &acc)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, landmarks.ErrUnknownFeature) {
			status = http.StatusUnprocessableEntity
		}
		respondError(w, status, err.Error())
		return
	}

	if len(res.Failures) > 0 {
		failures := make([]FailureInfo, len(res.Failures))
		for i, f := range res.Failures {
			failures[i] = FailureInfo{Face: f.Face, Error: f.Err.Error()}
		}
		log.WithField("failures", len(failures)).Warn("overlay request rejected")
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    "some faces could not be processed",
			"failures": failures,
		})
		return
	}

	var buf bytes.Buffer
	if err := frames.Encode(&buf, frame, ".png"); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode frame")
		return
	}

	if mean, ok := acc.Mean(); ok {
		w.Header().Set(constants.HeaderAlignmentScore, strconv.FormatFloat(mean, 'f', 4, 64))
	} else {
		w.Header().Set(constants.HeaderAlignmentScore, "")
	}
	w.Header().Set(constants.HeaderFacesScored, strconv.Itoa(acc.Len()))
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
