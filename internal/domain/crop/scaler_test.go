package crop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishimitra/internal/domain/crop"
	"krishimitra/internal/storage/dataset"
)

func TestFitScaler_MeanAndScale(t *testing.T) {
	// Two rows differing only in nitrogen: mean 100, population std 50.
	rows := []dataset.Row{
		{Index: 0, District: 2, SoilColor: 0, Nitrogen: 50, Phosphorus: 40, Potassium: 50, PH: 6.5, Rainfall: 800, Temperature: 25},
		{Index: 1, District: 2, SoilColor: 0, Nitrogen: 150, Phosphorus: 40, Potassium: 50, PH: 6.5, Rainfall: 800, Temperature: 25},
	}

	scaler, err := crop.FitScaler(rows)
	require.NoError(t, err)
	require.Len(t, scaler.Mean, crop.NumFeatures)
	require.Len(t, scaler.Scale, crop.NumFeatures)

	assert.InDelta(t, 100, scaler.Mean[3], 1e-9)
	assert.InDelta(t, 50, scaler.Scale[3], 1e-9)

	// Constant columns keep the transform defined with scale 1.
	assert.InDelta(t, 40, scaler.Mean[4], 1e-9)
	assert.Equal(t, 1.0, scaler.Scale[4])
}

func TestScaler_Transform(t *testing.T) {
	scaler := &crop.Scaler{
		Mean:  []float64{0, 2, 3, 100, 40, 50, 6.5, 800, 25},
		Scale: []float64{1, 1, 1, 50, 1, 1, 1, 1, 1},
	}

	out, err := scaler.Transform([]float64{0, 2, 3, 150, 40, 50, 6.5, 800, 25})
	require.NoError(t, err)

	assert.InDelta(t, 0, out[0], 1e-9)
	assert.InDelta(t, 1, out[3], 1e-9)
	for _, i := range []int{1, 2, 4, 5, 6, 7, 8} {
		assert.InDelta(t, 0, out[i], 1e-9, "column %d equals its mean", i)
	}
}

func TestScaler_TransformWidthMismatch(t *testing.T) {
	scaler := &crop.Scaler{Mean: make([]float64, 9), Scale: make([]float64, 9)}

	_, err := scaler.Transform([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestFitScaler_EmptyDataset(t *testing.T) {
	_, err := crop.FitScaler(nil)
	assert.Error(t, err)
}
