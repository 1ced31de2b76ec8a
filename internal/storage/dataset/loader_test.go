package dataset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishimitra/internal/storage/dataset"
)

const sampleCSV = `,District_Name,Soil_color,Nitrogen,Phosphorus,Potassium,pH,Rainfall,Temperature,Crop,Crop_string,Fertilizer,Link
0,2,0,50,40,50,6.5,800,25,15,Wheat,Urea,https://example.com/urea
1,2,0,60,45,55,6.8,850,26,15,Wheat,DAP,https://example.com/dap
2,1,5,70,30,40,6.0,1200,28,9,Rice,Urea,https://example.com/urea
`

func TestParse(t *testing.T) {
	table, err := dataset.Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	first := table.Rows[0]
	assert.Equal(t, 0.0, first.Index)
	assert.Equal(t, 2.0, first.District)
	assert.Equal(t, 0.0, first.SoilColor)
	assert.Equal(t, 50.0, first.Nitrogen)
	assert.Equal(t, 6.5, first.PH)
	assert.Equal(t, "Wheat", first.Crop)
	assert.Equal(t, "Urea", first.Fertilizer)
	assert.Equal(t, "https://example.com/urea", first.Link)
}

func TestParse_MissingColumn(t *testing.T) {
	csv := `,District_Name,Soil_color,Nitrogen
0,2,0,50
`
	_, err := dataset.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestParse_NonNumericValue(t *testing.T) {
	csv := strings.Replace(sampleCSV, "6.5", "acidic", 1)

	_, err := dataset.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not numeric")
}

func TestParse_EmptyDataset(t *testing.T) {
	header := sampleCSV[:strings.Index(sampleCSV, "\n")+1]

	_, err := dataset.Parse(strings.NewReader(header))
	assert.Error(t, err)
}

func TestFilterByCrop(t *testing.T) {
	table, err := dataset.Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	wheat := table.FilterByCrop("Wheat")
	assert.Len(t, wheat, 2)

	assert.Empty(t, table.FilterByCrop("Maize"))
	assert.Empty(t, table.FilterByCrop("wheat"), "crop match is exact")
}

func TestFertilizers_UniqueFirstSeen(t *testing.T) {
	table, err := dataset.Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Urea", "DAP"}, table.Fertilizers())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := dataset.Load("does/not/exist.csv")
	assert.Error(t, err)
}
