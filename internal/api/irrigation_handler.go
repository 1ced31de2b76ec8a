package api

import (
	"net/http"
	"time"

	"krishimitra/internal/domain/irrigation"
	"krishimitra/internal/metrics"
	"krishimitra/pkg/logger"
)

// IrrigationHandler exposes the irrigation pipeline over HTTP.
type IrrigationHandler struct {
	svc *irrigation.Service
	log *logger.Logger
}

// NewIrrigationHandler creates the irrigation REST handler.
func NewIrrigationHandler(svc *irrigation.Service, log *logger.Logger) *IrrigationHandler {
	return &IrrigationHandler{svc: svc, log: log.With("handler", "irrigation")}
}

// HandlePredict decides whether irrigation should be ON or OFF for the
// given sensor and weather readings.
func (h *IrrigationHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var in irrigation.Input
	if err := decodeJSON(r, &in); err != nil {
		metrics.RecordInference("irrigation", 0, 0, err)
		writeError(w, h.log, err)
		return
	}

	start := time.Now()
	prediction, err := h.svc.Predict(&in)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordInference("irrigation", elapsed, 0, err)
		writeError(w, h.log, err)
		return
	}

	metrics.RecordInference("irrigation", elapsed, prediction.Confidence, nil)
	writeJSON(w, http.StatusOK, prediction)
}

// HandleModelInfo reports training metadata about the loaded model.
func (h *IrrigationHandler) HandleModelInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.GetModelInfo()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
