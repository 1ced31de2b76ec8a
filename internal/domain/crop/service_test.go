package crop_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishimitra/internal/domain/crop"
	"krishimitra/internal/ml"
	"krishimitra/internal/storage/dataset"
	"krishimitra/pkg/logger"
)

const (
	cropModelPath   = "../../../models/crop_recommendation.onnx"
	cropDatasetPath = "../../../data/crop_and_fertilizer.csv"
)

// reverse label-encoding tables, for replaying reference rows as requests
var (
	districtNames = map[float64]string{
		0: "ALfashir", 1: "Algazira", 2: "Khartoum", 3: "Niyala", 4: "Shendi",
	}
	soilColorNames = map[float64]string{
		0: "Black", 1: "Dark Brown", 2: "Light Brown",
		3: "Medium Brown", 5: "Red", 6: "Reddish Brown",
	}
)

func loadedCropService(t *testing.T) *crop.Service {
	t.Helper()

	// Skip if model artifacts don't exist
	for _, path := range []string{cropModelPath, cropDatasetPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Skipf("%s not found, skipping inference test", path)
		}
	}
	if err := ml.InitEnvironment(os.Getenv("ONNXRUNTIME_SHARED_LIB")); err != nil {
		t.Skipf("onnxruntime unavailable: %v", err)
	}

	svc := crop.NewService([]string{cropModelPath}, cropDatasetPath, logger.Get())
	require.True(t, svc.Ready(), "service failed to load: %s", svc.LoadError())
	t.Cleanup(svc.Close)
	return svc
}

func TestService_Predict(t *testing.T) {
	svc := loadedCropService(t)

	pred, err := svc.Predict(validInput())
	require.NoError(t, err)

	assert.True(t, crop.ValidCrop(pred.RecommendedCrop), pred.RecommendedCrop)
	assert.Greater(t, pred.Confidence, 0.0)
	assert.LessOrEqual(t, pred.Confidence, 1.0)

	again, err := svc.Predict(validInput())
	require.NoError(t, err)
	assert.Equal(t, pred, again, "identical input yields identical output")
}

func TestService_Predict_ReproducesReferenceRow(t *testing.T) {
	svc := loadedCropService(t)

	table, err := dataset.Load(cropDatasetPath)
	require.NoError(t, err)

	var in *crop.Input
	var want string
	for _, row := range table.Rows {
		candidate := &crop.Input{
			District:    districtNames[row.District],
			SoilColor:   soilColorNames[row.SoilColor],
			Nitrogen:    row.Nitrogen,
			Phosphorus:  row.Phosphorus,
			Potassium:   row.Potassium,
			PH:          row.PH,
			Rainfall:    row.Rainfall,
			Temperature: row.Temperature,
		}
		if candidate.Validate() == nil {
			in, want = candidate, row.Crop
			break
		}
	}
	require.NotNil(t, in, "no reference row within the documented input ranges")

	pred, err := svc.Predict(in)
	require.NoError(t, err)
	assert.Equal(t, want, pred.RecommendedCrop)
}

func TestService_RecommendFertilizer_WithDataset(t *testing.T) {
	svc := loadedCropService(t)

	pred, err := svc.Predict(validInput())
	require.NoError(t, err)

	rec, err := svc.RecommendFertilizer(&crop.FertilizerInput{
		Crop:  pred.RecommendedCrop,
		Input: *validInput(),
	})
	require.NoError(t, err)

	assert.Equal(t, pred.RecommendedCrop, rec.Crop)
	assert.NotEmpty(t, rec.RecommendedFertilizer)
	assert.Greater(t, rec.FertilizerConfidence, 0.0)
	assert.LessOrEqual(t, rec.FertilizerConfidence, 1.0)
	assert.LessOrEqual(t, len(rec.AlternativeFertilizers), 2)
}
