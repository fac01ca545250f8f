package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/nfnt/resize"
)

type Layout int

const (
	// NHWC is [batch, height, width, channel], the Keras default.
	NHWC Layout = iota
	// NCHW is [batch, channel, height, width].
	NCHW
)

func ParseLayout(s string) (Layout, error) {
	switch s {
	case "nhwc", "NHWC":
		return NHWC, nil
	case "nchw", "NCHW":
		return NCHW, nil
	default:
		return NHWC, fmt.Errorf("unknown tensor layout %q", s)
	}
}

// Shape returns the batch-of-one tensor shape for a size x size RGB input.
func (l Layout) Shape(size int) []int64 {
	s := int64(size)
	if l == NCHW {
		return []int64{1, 3, s, s}
	}
	return []int64{1, s, s, 3}
}

// ToTensor resizes img to size x size ignoring aspect ratio, drops alpha,
// and scales every channel byte to [0,1]. The returned slice holds one
// batch element laid out per layout.
func ToTensor(img image.Image, size int, layout Layout) ([]float32, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid tensor size %d", size)
	}

	resized := resize.Resize(uint(size), uint(size), dropAlpha(img), resize.Bicubic)
	bounds := resized.Bounds()
	plane := size * size
	data := make([]float32, 3*plane)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.NRGBAModel.Convert(resized.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			r := float32(c.R) / 255.0
			g := float32(c.G) / 255.0
			b := float32(c.B) / 255.0

			pixel := y*size + x
			if layout == NCHW {
				data[pixel] = r
				data[plane+pixel] = g
				data[2*plane+pixel] = b
			} else {
				data[3*pixel] = r
				data[3*pixel+1] = g
				data[3*pixel+2] = b
			}
		}
	}

	return data, nil
}

// dropAlpha copies img into an opaque RGBA image keeping the
// non-premultiplied colour of every pixel, so transparent regions keep
// their stored colour instead of turning black.
func dropAlpha(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}

	return out
}
