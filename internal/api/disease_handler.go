package api

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"krishimitra/internal/domain/disease"
	"krishimitra/internal/metrics"
	"krishimitra/pkg/errors"
	"krishimitra/pkg/logger"
)

// maxImageUpload bounds the multipart form size for disease images.
const maxImageUpload = 10 << 20 // 10 MiB

// DiseaseHandler exposes the plant disease pipeline over HTTP.
type DiseaseHandler struct {
	svc *disease.Service
	log *logger.Logger
}

// NewDiseaseHandler creates the disease REST handler.
func NewDiseaseHandler(svc *disease.Service, log *logger.Logger) *DiseaseHandler {
	return &DiseaseHandler{svc: svc, log: log.With("handler", "disease")}
}

// HandlePredict accepts a multipart image upload (field "image" or "file")
// and returns the formatted diagnosis.
func (h *DiseaseHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	data, err := h.readImage(r)
	if err != nil {
		metrics.RecordInference("disease", 0, 0, err)
		writeError(w, h.log, err)
		return
	}

	start := time.Now()
	prediction, err := h.svc.Predict(data)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordInference("disease", elapsed, 0, err)
		writeError(w, h.log, err)
		return
	}

	metrics.RecordInference("disease", elapsed, prediction.Confidence, nil)
	h.log.Infof("prediction: %s (%.2f%%), image %s",
		prediction.RawClass, prediction.Confidence*100, humanize.Bytes(uint64(len(data))))
	writeJSON(w, http.StatusOK, prediction)
}

// HandleClasses lists all detectable classes.
func (h *DiseaseHandler) HandleClasses(w http.ResponseWriter, r *http.Request) {
	classes := disease.Classes()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_classes": len(classes),
		"classes":       classes,
	})
}

// readImage extracts and validates the uploaded image bytes.
func (h *DiseaseHandler) readImage(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "failed to parse multipart form")
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		file, header, err = r.FormFile("file")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput,
			"no image file provided, use 'image' or 'file' as the form field name")
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, errors.Wrapf(errors.ErrInvalidInput,
			"file must be an image (JPG, PNG), got %s", contentType)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "failed to read uploaded file")
	}
	return data, nil
}
