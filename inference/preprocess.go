package inference

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/nvr-ai/go-detect/images"
)

// PrepareInput fills the destination tensor with the image as the model
// expects it: RGB, pixel values scaled to [0, 1], channel-first layout,
// resized to exactly the model input size.
//
// The resize is direct (non-aspect-preserving), matching the rescaler's
// assumption downstream: no letterboxing or padding is applied.
//
// Arguments:
//   - img: The decoded source image.
//   - size: The model's fixed input dimensions.
//   - dst: The destination tensor to populate.
//
// Returns:
//   - error: An error if the tensor is too small for the configured size.
func PrepareInput(img image.Image, size images.Size, dst *ort.Tensor[float32]) error {
	return fillInput(img, size, dst.GetData())
}

// fillInput writes the CHW float32 pixels into data.
func fillInput(img image.Image, size images.Size, data []float32) error {
	channelSize := size.Width * size.Height
	if len(data) < channelSize*3 {
		return errors.Errorf("destination tensor holds %d floats, needs %d (make sure it's the right shape)",
			len(data), channelSize*3)
	}
	red := data[0:channelSize]
	green := data[channelSize : channelSize*2]
	blue := data[channelSize*2 : channelSize*3]

	img = resize.Resize(uint(size.Width), uint(size.Height), img, resize.Lanczos3)

	i := 0
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			red[i] = float32(r>>8) / 255.0
			green[i] = float32(g>>8) / 255.0
			blue[i] = float32(b>>8) / 255.0
			i++
		}
	}
	return nil
}
