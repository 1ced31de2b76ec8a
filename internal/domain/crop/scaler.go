package crop

import (
	"math"

	"krishimitra/internal/storage/dataset"
	"krishimitra/pkg/errors"
)

// Scaler is a per-feature standardization transform (subtract mean, divide
// by scale), fit once over the reference dataset at startup. The feature
// order passed to Transform must exactly match the order used in Fit.
type Scaler struct {
	Mean  []float64
	Scale []float64
}

// FitScaler computes per-column mean and scale over the reference rows in
// the training column order: index, district, soil color, N, P, K, pH,
// rainfall, temperature. Scale is the population standard deviation; a
// zero-variance column gets scale 1 so the transform stays defined.
func FitScaler(rows []dataset.Row) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, errors.New("cannot fit scaler on empty dataset")
	}

	n := float64(len(rows))
	mean := make([]float64, NumFeatures)
	scale := make([]float64, NumFeatures)

	for _, row := range rows {
		for i, v := range rowVector(row) {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= n
	}

	for _, row := range rows {
		for i, v := range rowVector(row) {
			d := v - mean[i]
			scale[i] += d * d
		}
	}
	for i := range scale {
		scale[i] = math.Sqrt(scale[i] / n)
		if scale[i] == 0 {
			scale[i] = 1
		}
	}

	return &Scaler{Mean: mean, Scale: scale}, nil
}

// Transform applies the fitted standardization to a feature vector.
func (s *Scaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) {
		return nil, errors.Newf("expected %d features, got %d", len(s.Mean), len(features))
	}
	out := make([]float64, len(features))
	for i, v := range features {
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out, nil
}

func rowVector(row dataset.Row) [NumFeatures]float64 {
	return [NumFeatures]float64{
		row.Index,
		row.District,
		row.SoilColor,
		row.Nitrogen,
		row.Phosphorus,
		row.Potassium,
		row.PH,
		row.Rainfall,
		row.Temperature,
	}
}
