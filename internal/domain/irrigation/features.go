package irrigation

import (
	"fmt"

	"krishimitra/pkg/errors"
)

// Input is one irrigation prediction request: 14 named numeric sensor and
// weather readings. The model was trained on raw feature scale, so no
// categorical encoding and no standardization is applied.
type Input struct {
	SoilMoisture   float64 `json:"soil_moisture"`
	Temperature    float64 `json:"temperature"`
	SoilHumidity   float64 `json:"soil_humidity"`
	Time           int     `json:"time"`
	AirTemperature float64 `json:"air_temperature"`
	WindSpeed      float64 `json:"wind_speed"`
	AirHumidity    float64 `json:"air_humidity"`
	WindGust       float64 `json:"wind_gust"`
	Pressure       float64 `json:"pressure"`
	PH             float64 `json:"ph"`
	Rainfall       float64 `json:"rainfall"`
	Nitrogen       float64 `json:"nitrogen"`
	Phosphorus     float64 `json:"phosphorus"`
	Potassium      float64 `json:"potassium"`
}

// NumFeatures is the width of the irrigation feature vector.
const NumFeatures = 14

// Range is an inclusive numeric bound on an input field.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Ranges documents the valid bounds for each input field, in feature order.
var Ranges = map[string]Range{
	"soil_moisture":   {Min: 0, Max: 100},
	"temperature":     {Min: -10, Max: 60},
	"soil_humidity":   {Min: 0, Max: 100},
	"time":            {Min: 0, Max: 23},
	"air_temperature": {Min: -10, Max: 50},
	"wind_speed":      {Min: 0, Max: 50},
	"air_humidity":    {Min: 0, Max: 100},
	"wind_gust":       {Min: 0, Max: 100},
	"pressure":        {Min: 95, Max: 110},
	"ph":              {Min: 0, Max: 14},
	"rainfall":        {Min: 0, Max: 500},
	"nitrogen":        {Min: 0, Max: 200},
	"phosphorus":      {Min: 0, Max: 200},
	"potassium":       {Min: 0, Max: 200},
}

// Validate checks every field against its inclusive bounds. Values at the
// exact bound are valid.
func (in *Input) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"soil_moisture", in.SoilMoisture},
		{"temperature", in.Temperature},
		{"soil_humidity", in.SoilHumidity},
		{"time", float64(in.Time)},
		{"air_temperature", in.AirTemperature},
		{"wind_speed", in.WindSpeed},
		{"air_humidity", in.AirHumidity},
		{"wind_gust", in.WindGust},
		{"pressure", in.Pressure},
		{"ph", in.PH},
		{"rainfall", in.Rainfall},
		{"nitrogen", in.Nitrogen},
		{"phosphorus", in.Phosphorus},
		{"potassium", in.Potassium},
	}
	for _, f := range fields {
		r := Ranges[f.name]
		if f.value < r.Min || f.value > r.Max {
			return errors.NewValidationError(f.name,
				fmt.Sprintf("must be between %g and %g", r.Min, r.Max), f.value)
		}
	}
	return nil
}

// ToFeatureVector converts the input to the fixed-order vector the model
// expects. Order must match the training feature order exactly.
func (in *Input) ToFeatureVector() []float64 {
	return []float64{
		in.SoilMoisture,
		in.Temperature,
		in.SoilHumidity,
		float64(in.Time),
		in.AirTemperature,
		in.WindSpeed,
		in.AirHumidity,
		in.WindGust,
		in.Pressure,
		in.PH,
		in.Rainfall,
		in.Nitrogen,
		in.Phosphorus,
		in.Potassium,
	}
}
