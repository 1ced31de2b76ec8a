package disease

import (
	"fmt"

	"krishimitra/internal/ml"
	"krishimitra/pkg/errors"
	"krishimitra/pkg/logger"
)

// Prediction is the formatted disease diagnosis.
type Prediction struct {
	Plant          string  `json:"plant"`
	Disease        string  `json:"disease"`
	IsHealthy      bool    `json:"is_healthy"`
	Confidence     float64 `json:"confidence"`
	RawClass       string  `json:"raw_class"`
	Recommendation string  `json:"recommendation"`
}

// Service runs the disease detection pipeline: decode, encode, infer,
// format. All state is read-only after construction.
type Service struct {
	model   *ml.Classifier
	loadErr string
}

// NewService loads the model artifact, trying each candidate path in
// order. Load failures are non-fatal: the service starts degraded and
// refuses inference until a restart reloads the artifact.
func NewService(modelPaths []string, log *logger.Logger) *Service {
	s := &Service{}

	model, err := ml.TryPaths(modelPaths, func(p string) (*ml.Classifier, error) {
		return ml.LoadClassifier(p, []int64{1, InputSize, InputSize, channels}, NumClasses)
	})
	if err != nil {
		s.loadErr = err.Error()
		log.Errorf("disease: failed to load model: %v", err)
		return s
	}
	s.model = model

	log.Infof("disease: model loaded, %d classes", NumClasses)
	return s
}

// Ready reports whether the model artifact loaded successfully.
func (s *Service) Ready() bool {
	return s.model != nil
}

// LoadError returns the startup load failure message, if any.
func (s *Service) LoadError() string {
	return s.loadErr
}

// Predict decodes and encodes the image bytes, runs the model and formats
// the diagnosis. Confidence is the maximum of the class probability vector.
func (s *Service) Predict(imageData []byte) (*Prediction, error) {
	if !s.Ready() {
		return nil, errors.Wrap(errors.ErrUnavailable, s.loadErr)
	}

	img, err := DecodeImage(imageData)
	if err != nil {
		return nil, err
	}

	probs, err := s.model.Predict(EncodeImage(img))
	if err != nil {
		return nil, errors.Wrap(err, "disease prediction failed")
	}

	idx := ml.Argmax(probs)
	return FormatPrediction(idx, float64(probs[idx])), nil
}

// FormatPrediction maps a class index and confidence to the human-readable
// diagnosis with a templated recommendation.
func FormatPrediction(classIndex int, confidence float64) *Prediction {
	raw := classCatalog[classIndex]
	plant, condition := splitLabel(raw)
	healthy := isHealthy(raw)

	p := &Prediction{
		Plant:      plant,
		Disease:    condition,
		IsHealthy:  healthy,
		Confidence: confidence,
		RawClass:   raw,
	}
	if healthy {
		p.Disease = "None"
		p.Recommendation = fmt.Sprintf(
			"Your %s plant appears healthy! Continue with regular care and monitoring.", plant)
	} else {
		p.Recommendation = fmt.Sprintf(
			"Disease detected: %s. Consider consulting an agricultural expert for treatment options.", condition)
	}
	return p
}

// Close releases the model session.
func (s *Service) Close() {
	if s.model != nil {
		s.model.Destroy()
		s.model = nil
	}
}
