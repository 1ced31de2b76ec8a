package disease_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishimitra/internal/domain/disease"
	"krishimitra/pkg/errors"
)

func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage_RejectsGarbage(t *testing.T) {
	_, err := disease.DecodeImage([]byte("definitely not an image"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestDecodeImage_PNG(t *testing.T) {
	img, err := disease.DecodeImage(solidPNG(t, 64, 48, color.RGBA{R: 10, G: 20, B: 30, A: 255}))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestEncodeImage_ShapeAndScale(t *testing.T) {
	img, err := disease.DecodeImage(solidPNG(t, 256, 256, color.RGBA{R: 200, G: 100, B: 50, A: 255}))
	require.NoError(t, err)

	data := disease.EncodeImage(img)
	require.Len(t, data, disease.InputSize*disease.InputSize*3)

	// Solid color survives resizing; channel values stay on the raw
	// 0-255 scale in RGB order.
	assert.InDelta(t, 200, data[0], 1.0)
	assert.InDelta(t, 100, data[1], 1.0)
	assert.InDelta(t, 50, data[2], 1.0)

	center := ((disease.InputSize/2)*disease.InputSize + disease.InputSize/2) * 3
	assert.InDelta(t, 200, data[center], 1.0)
}

func TestEncodeImage_ResizesSmallImages(t *testing.T) {
	img, err := disease.DecodeImage(solidPNG(t, 16, 16, color.RGBA{R: 255, G: 255, B: 255, A: 255}))
	require.NoError(t, err)

	data := disease.EncodeImage(img)
	assert.Len(t, data, disease.InputSize*disease.InputSize*3)
	assert.InDelta(t, 255, data[len(data)-1], 1.0)
}
