package imaging

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail scales img to exactly size x size.
func Thumbnail(img image.Image, size int) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid preview size %d", size)
	}
	return resize.Resize(uint(size), uint(size), img, resize.Bilinear), nil
}

func LoadPreview(path string, size int) (image.Image, error) {
	img, _, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return Thumbnail(img, size)
}
