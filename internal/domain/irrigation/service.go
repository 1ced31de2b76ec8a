package irrigation

import (
	"encoding/json"
	"os"

	"krishimitra/internal/ml"
	"krishimitra/pkg/errors"
	"krishimitra/pkg/logger"
)

// Class labels, ordered by class index: 0 is OFF, 1 is ON.
var classCatalog = []string{"OFF", "ON"}

const (
	recommendationOn  = "Your crops need water. It is recommended to turn ON the irrigation system."
	recommendationOff = "Irrigation is not needed at this time. Keep the irrigation system OFF."
)

// Prediction is the irrigation decision with the full two-class
// probability pair and a templated recommendation.
type Prediction struct {
	Status         string             `json:"status"`
	Confidence     float64            `json:"confidence"`
	Probabilities  map[string]float64 `json:"probabilities"`
	Recommendation string             `json:"recommendation"`
}

// ModelInfo describes the trained model, read from the metadata files that
// the offline training process writes next to the artifact.
type ModelInfo struct {
	ModelType    string   `json:"model_type"`
	Accuracy     float64  `json:"accuracy"`
	Features     []string `json:"features"`
	Classes      []string `json:"classes"`
	FeatureCount int      `json:"feature_count"`
}

// Service runs the irrigation pipeline. All state is read-only after
// construction.
type Service struct {
	model        *ml.BinaryClassifier
	featureNames []string
	info         map[string]interface{}
	loadErr      string
}

// NewService loads the model artifact (trying each candidate path in
// order) plus the feature-name and model-info metadata. Load failures are
// non-fatal: the service starts degraded and refuses inference.
func NewService(modelPaths []string, featureNamesPath, modelInfoPath string, log *logger.Logger) *Service {
	s := &Service{}

	model, err := ml.TryPaths(modelPaths, func(p string) (*ml.BinaryClassifier, error) {
		return ml.LoadBinaryClassifier(p, NumFeatures)
	})
	if err != nil {
		s.loadErr = err.Error()
		log.Errorf("irrigation: failed to load model: %v", err)
		return s
	}
	s.model = model

	if err := readJSON(featureNamesPath, &s.featureNames); err != nil {
		s.loadErr = err.Error()
		log.Errorf("irrigation: failed to read feature names: %v", err)
		s.model.Destroy()
		s.model = nil
		return s
	}
	if err := readJSON(modelInfoPath, &s.info); err != nil {
		s.loadErr = err.Error()
		log.Errorf("irrigation: failed to read model info: %v", err)
		s.model.Destroy()
		s.model = nil
		return s
	}

	log.Infof("irrigation: model loaded, %d features", len(s.featureNames))
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

// Predict validates the input, runs the model and formats the binary
// decision. Confidence is the probability at the predicted class.
func (s *Service) Predict(in *Input) (*Prediction, error) {
	if !s.Ready() {
		return nil, errors.Wrap(errors.ErrUnavailable, s.loadErr)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	predicted, probs, err := s.model.Predict(in.ToFeatureVector())
	if err != nil {
		return nil, errors.Wrap(err, "irrigation prediction failed")
	}

	p := &Prediction{
		Status:     classCatalog[predicted],
		Confidence: probs[predicted],
		Probabilities: map[string]float64{
			"OFF": probs[0],
			"ON":  probs[1],
		},
	}
	if predicted == 1 {
		p.Recommendation = recommendationOn
	} else {
		p.Recommendation = recommendationOff
	}
	return p, nil
}

// GetModelInfo reports the training metadata for the model-info endpoint.
func (s *Service) GetModelInfo() (*ModelInfo, error) {
	if !s.Ready() {
		return nil, errors.Wrap(errors.ErrUnavailable, s.loadErr)
	}

	info := &ModelInfo{
		ModelType:    "RandomForestClassifier",
		Features:     s.featureNames,
		Classes:      append([]string(nil), classCatalog...),
		FeatureCount: len(s.featureNames),
	}
	if v, ok := s.info["model_type"].(string); ok {
		info.ModelType = v
	}
	if v, ok := s.info["accuracy"].(float64); ok {
		info.Accuracy = v
	}
	return info, nil
}

// Classes returns the ordered class catalog.
func Classes() []string {
	return append([]string(nil), classCatalog...)
}

// Close releases the model session.
func (s *Service) Close() {
	if s.model != nil {
		s.model.Destroy()
		s.model = nil
	}
}

func readJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read metadata")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Wrap(err, "failed to parse metadata")
	}
	return nil
}
