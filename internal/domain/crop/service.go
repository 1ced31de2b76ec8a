package crop

import (
	"krishimitra/internal/ml"
	"krishimitra/internal/storage/dataset"
	"krishimitra/pkg/errors"
	"krishimitra/pkg/logger"
)

// Prediction is the crop recommendation result.
type Prediction struct {
	RecommendedCrop string  `json:"recommended_crop"`
	Confidence      float64 `json:"confidence"`
}

// Options describes the valid input space for callers.
type Options struct {
	Districts   []string         `json:"districts"`
	SoilColors  []string         `json:"soil_colors"`
	Crops       []string         `json:"crops"`
	Fertilizers []string         `json:"fertilizers"`
	Ranges      map[string]Range `json:"ranges"`
}

// Service runs the crop recommendation pipeline: encode, standardize,
// infer, format. All state is read-only after construction.
type Service struct {
	model   *ml.Classifier
	scaler  *Scaler
	table   *dataset.Table
	loadErr string
}

// NewService loads the model artifact (trying each candidate path in order)
// and the reference dataset, then fits the standardization transform. Load
// failures are non-fatal: the service starts degraded and refuses inference
// until a restart reloads the artifacts.
func NewService(modelPaths []string, datasetPath string, log *logger.Logger) *Service {
	s := &Service{}

	table, err := dataset.Load(datasetPath)
	if err != nil {
		s.loadErr = err.Error()
		log.Errorf("crop: failed to load reference dataset: %v", err)
		return s
	}
	s.table = table

	scaler, err := FitScaler(table.Rows)
	if err != nil {
		s.loadErr = err.Error()
		log.Errorf("crop: failed to fit scaler: %v", err)
		return s
	}
	s.scaler = scaler

	model, err := ml.TryPaths(modelPaths, func(p string) (*ml.Classifier, error) {
		return ml.LoadClassifier(p, []int64{1, NumFeatures}, NumClasses)
	})
	if err != nil {
		s.loadErr = err.Error()
		log.Errorf("crop: failed to load model: %v", err)
		return s
	}
	s.model = model

	log.Infof("crop: model loaded, %d reference rows, %d classes", len(table.Rows), NumClasses)
	return s
}

// Ready reports whether the model and reference dataset loaded successfully.
func (s *Service) Ready() bool {
	return s.model != nil && s.scaler != nil && s.table != nil
}

// LoadError returns the startup load failure message, if any.
func (s *Service) LoadError() string {
	return s.loadErr
}

// Predict validates, encodes and standardizes the input, runs the model
// and maps the argmax index to a crop name.
func (s *Service) Predict(in *Input) (*Prediction, error) {
	if !s.Ready() {
		return nil, errors.Wrap(errors.ErrUnavailable, s.loadErr)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	vector, err := in.Encode()
	if err != nil {
		return nil, err
	}
	scaled, err := s.scaler.Transform(vector)
	if err != nil {
		return nil, err
	}

	features := make([]float32, len(scaled))
	for i, v := range scaled {
		features[i] = float32(v)
	}

	probs, err := s.model.Predict(features)
	if err != nil {
		return nil, errors.Wrap(err, "crop prediction failed")
	}

	idx := ml.Argmax(probs)
	return &Prediction{
		RecommendedCrop: classCatalog[idx],
		Confidence:      round4(float64(probs[idx])),
	}, nil
}

// RecommendFertilizer runs the nearest-match fertilizer lookup. It needs
// only the reference dataset, not the model.
func (s *Service) RecommendFertilizer(in *FertilizerInput) (*FertilizerRecommendation, error) {
	if s.table == nil {
		return nil, errors.Wrap(errors.ErrUnavailable, s.loadErr)
	}
	if err := in.Input.Validate(); err != nil {
		return nil, err
	}
	return recommendFertilizer(s.table, in)
}

// GetOptions lists the valid input space, for the options endpoint and the
// interactive form.
func (s *Service) GetOptions() *Options {
	opts := &Options{
		Districts:  Districts(),
		SoilColors: SoilColors(),
		Crops:      Crops(),
		Ranges:     Ranges,
	}
	if s.table != nil {
		opts.Fertilizers = s.table.Fertilizers()
	}
	return opts
}

// Close releases the model session.
func (s *Service) Close() {
	if s.model != nil {
		s.model.Destroy()
		s.model = nil
	}
}
