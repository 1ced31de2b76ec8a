package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"krishimitra/internal/domain/crop"
	"krishimitra/internal/domain/irrigation"
)

// formField is one step of a guided form: either an enum choice rendered
// as an inline keyboard, or a typed numeric value with inclusive bounds.
type formField struct {
	name    string
	label   string
	unit    string
	enum    []string
	min     float64
	max     float64
	integer bool
}

// prompt renders the question for this field.
func (f *formField) prompt() string {
	if len(f.enum) > 0 {
		return fmt.Sprintf("Select %s:", f.label)
	}
	unit := ""
	if f.unit != "" {
		unit = " " + f.unit
	}
	return fmt.Sprintf("Enter %s (%g–%g%s):", f.label, f.min, f.max, unit)
}

// parse validates a typed answer for a numeric field.
func (f *formField) parse(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", strings.TrimSpace(text))
	}
	if f.integer && v != float64(int(v)) {
		return 0, fmt.Errorf("%s must be a whole number", f.label)
	}
	if v < f.min || v > f.max {
		return 0, fmt.Errorf("%s must be between %g and %g", f.label, f.min, f.max)
	}
	return v, nil
}

func numberField(name, label, unit string, r crop.Range) formField {
	return formField{name: name, label: label, unit: unit, min: r.Min, max: r.Max}
}

// cropFormFields builds the crop recommendation form in input order.
func cropFormFields() []formField {
	return []formField{
		{name: "district", label: "your district", enum: crop.Districts()},
		{name: "soil_color", label: "your soil color", enum: crop.SoilColors()},
		numberField("nitrogen", "nitrogen (N)", "", crop.Ranges["nitrogen"]),
		numberField("phosphorus", "phosphorus (P)", "", crop.Ranges["phosphorus"]),
		numberField("potassium", "potassium (K)", "", crop.Ranges["potassium"]),
		numberField("ph", "soil pH", "", crop.Ranges["ph"]),
		numberField("rainfall", "rainfall", "mm", crop.Ranges["rainfall"]),
		numberField("temperature", "temperature", "°C", crop.Ranges["temperature"]),
	}
}

// irrigationFormFields builds the irrigation form in feature order.
func irrigationFormFields() []formField {
	fields := []struct {
		name    string
		label   string
		unit    string
		integer bool
	}{
		{"soil_moisture", "soil moisture", "%", false},
		{"temperature", "soil temperature", "°C", false},
		{"soil_humidity", "soil humidity", "%", false},
		{"time", "hour of the day", "", true},
		{"air_temperature", "air temperature", "°C", false},
		{"wind_speed", "wind speed", "km/h", false},
		{"air_humidity", "air humidity", "%", false},
		{"wind_gust", "wind gust", "km/h", false},
		{"pressure", "pressure", "kPa", false},
		{"ph", "soil pH", "", false},
		{"rainfall", "rainfall", "mm", false},
		{"nitrogen", "nitrogen (N)", "", false},
		{"phosphorus", "phosphorus (P)", "", false},
		{"potassium", "potassium (K)", "", false},
	}

	out := make([]formField, len(fields))
	for i, f := range fields {
		r := irrigation.Ranges[f.name]
		out[i] = formField{
			name:    f.name,
			label:   f.label,
			unit:    f.unit,
			min:     r.Min,
			max:     r.Max,
			integer: f.integer,
		}
	}
	return out
}

// session is one chat's in-progress form. Sessions are the only mutable
// state in the bot adapter and are guarded by the handler's mutex.
type session struct {
	form    string // "crop" or "irrigation"
	fields  []formField
	step    int
	numbers map[string]float64
	choices map[string]string
}

func newSession(form string, fields []formField) *session {
	return &session{
		form:    form,
		fields:  fields,
		numbers: make(map[string]float64),
		choices: make(map[string]string),
	}
}

func (s *session) current() *formField {
	return &s.fields[s.step]
}

func (s *session) done() bool {
	return s.step >= len(s.fields)
}

// cropInput assembles the collected crop form values.
func (s *session) cropInput() *crop.Input {
	return &crop.Input{
		District:    s.choices["district"],
		SoilColor:   s.choices["soil_color"],
		Nitrogen:    s.numbers["nitrogen"],
		Phosphorus:  s.numbers["phosphorus"],
		Potassium:   s.numbers["potassium"],
		PH:          s.numbers["ph"],
		Rainfall:    s.numbers["rainfall"],
		Temperature: s.numbers["temperature"],
	}
}

// irrigationInput assembles the collected irrigation form values.
func (s *session) irrigationInput() *irrigation.Input {
	return &irrigation.Input{
		SoilMoisture:   s.numbers["soil_moisture"],
		Temperature:    s.numbers["temperature"],
		SoilHumidity:   s.numbers["soil_humidity"],
		Time:           int(s.numbers["time"]),
		AirTemperature: s.numbers["air_temperature"],
		WindSpeed:      s.numbers["wind_speed"],
		AirHumidity:    s.numbers["air_humidity"],
		WindGust:       s.numbers["wind_gust"],
		Pressure:       s.numbers["pressure"],
		PH:             s.numbers["ph"],
		Rainfall:       s.numbers["rainfall"],
		Nitrogen:       s.numbers["nitrogen"],
		Phosphorus:     s.numbers["phosphorus"],
		Potassium:      s.numbers["potassium"],
	}
}
