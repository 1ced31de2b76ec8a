package api

import (
	"net/http"
	"time"

	"krishimitra/internal/domain/crop"
	"krishimitra/internal/metrics"
	"krishimitra/pkg/logger"
)

// CropHandler exposes the crop recommendation pipeline over HTTP.
type CropHandler struct {
	svc *crop.Service
	log *logger.Logger
}

// NewCropHandler creates the crop REST handler.
func NewCropHandler(svc *crop.Service, log *logger.Logger) *CropHandler {
	return &CropHandler{svc: svc, log: log.With("handler", "crop")}
}

// HandlePredict recommends the best crop for the given soil and
// environmental conditions.
func (h *CropHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var in crop.Input
	if err := decodeJSON(r, &in); err != nil {
		metrics.RecordInference("crop", 0, 0, err)
		writeError(w, h.log, err)
		return
	}

	start := time.Now()
	prediction, err := h.svc.Predict(&in)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordInference("crop", elapsed, 0, err)
		writeError(w, h.log, err)
		return
	}

	metrics.RecordInference("crop", elapsed, prediction.Confidence, nil)
	writeJSON(w, http.StatusOK, prediction)
}

// HandleFertilizer recommends a fertilizer for a user-chosen crop based on
// the nearest reference-row match.
func (h *CropHandler) HandleFertilizer(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var in crop.FertilizerInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, h.log, err)
		return
	}

	rec, err := h.svc.RecommendFertilizer(&in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// HandleOptions lists the valid input space for predictions.
func (h *CropHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetOptions())
}
