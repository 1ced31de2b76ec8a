package disease

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"

	"krishimitra/pkg/errors"
)

// InputSize is the square resolution the model was trained on.
const InputSize = 128

// channels is the RGB channel count of the model input.
const channels = 3

// DecodeImage decodes a JPEG or PNG image from raw bytes.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "invalid image, supported formats: JPEG, PNG")
	}
	return img, nil
}

// EncodeImage normalizes an arbitrary-size color image into the NHWC
// float32 tensor the model expects: resized to InputSize x InputSize with
// bicubic interpolation (the training-time resample policy), RGB channel
// order, raw 0-255 channel values. The artifact was trained without pixel
// rescaling, so none is applied here.
func EncodeImage(img image.Image) []float32 {
	resized := resize.Resize(InputSize, InputSize, img, resize.Bicubic)

	data := make([]float32, InputSize*InputSize*channels)
	bounds := resized.Bounds()
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit values; shift down to 0-255.
			i := (y*InputSize + x) * channels
			data[i] = float32(r >> 8)
			data[i+1] = float32(g >> 8)
			data[i+2] = float32(b >> 8)
		}
	}
	return data
}
