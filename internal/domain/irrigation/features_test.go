package irrigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishimitra/internal/domain/irrigation"
	"krishimitra/pkg/errors"
)

func validInput() *irrigation.Input {
	return &irrigation.Input{
		SoilMoisture:   40,
		Temperature:    28,
		SoilHumidity:   55,
		Time:           14,
		AirTemperature: 30,
		WindSpeed:      10,
		AirHumidity:    60,
		WindGust:       15,
		Pressure:       101,
		PH:             6.8,
		Rainfall:       2,
		Nitrogen:       50,
		Phosphorus:     40,
		Potassium:      45,
	}
}

func TestValidate_BoundsAreInclusive(t *testing.T) {
	in := validInput()
	in.SoilMoisture = 0
	assert.NoError(t, in.Validate())

	in.SoilMoisture = 100
	assert.NoError(t, in.Validate())
}

func TestValidate_RejectsOutOfRange(t *testing.T) {
	in := validInput()
	in.SoilMoisture = 100.01
	err := in.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	var vErr *errors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "soil_moisture", vErr.Field)

	in = validInput()
	in.SoilMoisture = -0.01
	assert.Error(t, in.Validate())
}

func TestValidate_EveryFieldChecked(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*irrigation.Input)
	}{
		{"temperature", func(in *irrigation.Input) { in.Temperature = 61 }},
		{"soil_humidity", func(in *irrigation.Input) { in.SoilHumidity = -1 }},
		{"time", func(in *irrigation.Input) { in.Time = 24 }},
		{"air_temperature", func(in *irrigation.Input) { in.AirTemperature = -11 }},
		{"wind_speed", func(in *irrigation.Input) { in.WindSpeed = 51 }},
		{"air_humidity", func(in *irrigation.Input) { in.AirHumidity = 101 }},
		{"wind_gust", func(in *irrigation.Input) { in.WindGust = 101 }},
		{"pressure", func(in *irrigation.Input) { in.Pressure = 94 }},
		{"ph", func(in *irrigation.Input) { in.PH = 14.5 }},
		{"rainfall", func(in *irrigation.Input) { in.Rainfall = 501 }},
		{"nitrogen", func(in *irrigation.Input) { in.Nitrogen = 201 }},
		{"phosphorus", func(in *irrigation.Input) { in.Phosphorus = -1 }},
		{"potassium", func(in *irrigation.Input) { in.Potassium = 201 }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			in := validInput()
			tc.mutate(in)

			err := in.Validate()
			require.Error(t, err)

			var vErr *errors.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestValidate_AllZerosWithinBounds(t *testing.T) {
	// Every zero value sits inside its range except pressure and the
	// negative-capable temperatures, so a zeroed request with a plausible
	// pressure is still valid.
	in := &irrigation.Input{Pressure: 101}
	assert.NoError(t, in.Validate())
}

func TestToFeatureVector_Order(t *testing.T) {
	in := validInput()

	vector := in.ToFeatureVector()
	require.Len(t, vector, irrigation.NumFeatures)

	assert.Equal(t, []float64{40, 28, 55, 14, 30, 10, 60, 15, 101, 6.8, 2, 50, 40, 45}, vector)
}

func TestClasses(t *testing.T) {
	assert.Equal(t, []string{"OFF", "ON"}, irrigation.Classes())
}
