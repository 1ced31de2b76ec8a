package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishimitra/internal/domain/crop"
	"krishimitra/internal/domain/irrigation"
)

func TestFormField_ParseNumber(t *testing.T) {
	f := formField{name: "nitrogen", label: "nitrogen (N)", min: 20, max: 150}

	v, err := f.parse("50")
	require.NoError(t, err)
	assert.Equal(t, 50.0, v)

	v, err = f.parse("  6.5e1 ")
	require.NoError(t, err)
	assert.Equal(t, 65.0, v)

	_, err = f.parse("fifty")
	assert.Error(t, err)

	_, err = f.parse("19.9")
	assert.Error(t, err)

	_, err = f.parse("150.1")
	assert.Error(t, err)
}

func TestFormField_IntegerOnly(t *testing.T) {
	f := formField{name: "time", label: "hour of the day", min: 0, max: 23, integer: true}

	v, err := f.parse("14")
	require.NoError(t, err)
	assert.Equal(t, 14.0, v)

	_, err = f.parse("14.5")
	assert.Error(t, err)
}

func TestFormField_Prompt(t *testing.T) {
	enum := formField{name: "district", label: "your district", enum: crop.Districts()}
	assert.Equal(t, "Select your district:", enum.prompt())

	num := formField{name: "rainfall", label: "rainfall", unit: "mm", min: 300, max: 1700}
	assert.Contains(t, num.prompt(), "300")
	assert.Contains(t, num.prompt(), "mm")
}

func TestCropForm_CollectsInput(t *testing.T) {
	sess := newSession("crop", cropFormFields())
	require.Len(t, sess.fields, 8)

	answers := []struct {
		choice string
		number float64
	}{
		{choice: "Khartoum"},
		{choice: "Black"},
		{number: 50},
		{number: 40},
		{number: 50},
		{number: 6.5},
		{number: 800},
		{number: 25},
	}

	for _, a := range answers {
		require.False(t, sess.done())
		field := sess.current()
		if len(field.enum) > 0 {
			sess.choices[field.name] = a.choice
		} else {
			sess.numbers[field.name] = a.number
		}
		sess.step++
	}
	require.True(t, sess.done())

	in := sess.cropInput()
	assert.Equal(t, &crop.Input{
		District:    "Khartoum",
		SoilColor:   "Black",
		Nitrogen:    50,
		Phosphorus:  40,
		Potassium:   50,
		PH:          6.5,
		Rainfall:    800,
		Temperature: 25,
	}, in)
	assert.NoError(t, in.Validate())
}

func TestIrrigationForm_CoversAllFeatures(t *testing.T) {
	fields := irrigationFormFields()
	require.Len(t, fields, irrigation.NumFeatures)

	sess := newSession("irrigation", fields)
	for !sess.done() {
		field := sess.current()
		require.Empty(t, field.enum, "irrigation form has no enum fields")
		sess.numbers[field.name] = field.min
		sess.step++
	}

	in := sess.irrigationInput()
	assert.NoError(t, in.Validate(), "minimum of every range is valid")
	assert.Len(t, in.ToFeatureVector(), irrigation.NumFeatures)
}

func TestFormField_BoundsMatchDomainRanges(t *testing.T) {
	for _, f := range cropFormFields() {
		if len(f.enum) > 0 {
			continue
		}
		r, ok := crop.Ranges[f.name]
		require.True(t, ok, f.name)
		assert.Equal(t, r.Min, f.min, f.name)
		assert.Equal(t, r.Max, f.max, f.name)
	}

	for _, f := range irrigationFormFields() {
		r, ok := irrigation.Ranges[f.name]
		require.True(t, ok, f.name)
		assert.Equal(t, r.Min, f.min, f.name)
		assert.Equal(t, r.Max, f.max, f.name)
	}
}
