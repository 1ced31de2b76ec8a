package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishimitra/pkg/errors"
)

func TestArgmax(t *testing.T) {
	assert.Equal(t, 0, Argmax([]float32{0.9, 0.05, 0.05}))
	assert.Equal(t, 2, Argmax([]float32{0.1, 0.2, 0.7}))
	assert.Equal(t, 0, Argmax([]float32{0.5}))
}

func TestArgmax_TieTakesFirst(t *testing.T) {
	assert.Equal(t, 1, Argmax([]float32{0.1, 0.4, 0.4, 0.1}))
	assert.Equal(t, 0, Argmax([]float32{0.25, 0.25, 0.25, 0.25}))
}

func TestTryPaths_FirstSuccess(t *testing.T) {
	var attempts []string
	v, err := TryPaths([]string{"a", "b", "c"}, func(p string) (string, error) {
		attempts = append(attempts, p)
		if p == "b" {
			return "loaded:" + p, nil
		}
		return "", errors.Newf("no such file: %s", p)
	})

	require.NoError(t, err)
	assert.Equal(t, "loaded:b", v)
	assert.Equal(t, []string{"a", "b"}, attempts)
}

func TestTryPaths_AllFail(t *testing.T) {
	_, err := TryPaths([]string{"a", "b"}, func(p string) (int, error) {
		return 0, errors.Newf("no such file: %s", p)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "b", "last attempt's error is returned")
}
