package crop

import (
	"fmt"

	"krishimitra/pkg/errors"
)

// Input is one crop recommendation request.
type Input struct {
	District    string  `json:"district"`
	SoilColor   string  `json:"soil_color"`
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
	Temperature float64 `json:"temperature"`
}

// Validate checks enum membership and numeric ranges. Errors name the
// violated constraint and, for enums, list the valid set.
func (in *Input) Validate() error {
	if _, ok := districtCodes[in.District]; !ok {
		return errors.NewValidationError("district",
			fmt.Sprintf("invalid district, valid options: %v", Districts()), in.District)
	}
	if _, ok := soilColorCodes[in.SoilColor]; !ok {
		return errors.NewValidationError("soil_color",
			fmt.Sprintf("invalid soil color, valid options: %v", SoilColors()), in.SoilColor)
	}

	numeric := []struct {
		field string
		value float64
	}{
		{"nitrogen", in.Nitrogen},
		{"phosphorus", in.Phosphorus},
		{"potassium", in.Potassium},
		{"ph", in.PH},
		{"rainfall", in.Rainfall},
		{"temperature", in.Temperature},
	}
	for _, f := range numeric {
		r := Ranges[f.field]
		if f.value < r.Min || f.value > r.Max {
			return errors.NewValidationError(f.field,
				fmt.Sprintf("must be between %g and %g", r.Min, r.Max), f.value)
		}
	}
	return nil
}

// Encode builds the unscaled 9-element feature vector in the exact column
// order used at training time. The leading zero stands in for the vestigial
// training-index column.
func (in *Input) Encode() ([]float64, error) {
	district, ok := districtCodes[in.District]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownCategory, "district %q", in.District)
	}
	soil, ok := soilColorCodes[in.SoilColor]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownCategory, "soil color %q", in.SoilColor)
	}

	return []float64{
		0, // training-index placeholder
		district,
		soil,
		in.Nitrogen,
		in.Phosphorus,
		in.Potassium,
		in.PH,
		in.Rainfall,
		in.Temperature,
	}, nil
}
