package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// ImageDisplay shows the preview of the last accepted drop. The canvas
// image keeps the bitmap alive until it is replaced.
type ImageDisplay struct {
	image *canvas.Image
}

func NewImageDisplay(size int) *ImageDisplay {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(float32(size), float32(size)))

	return &ImageDisplay{image: img}
}

func (id *ImageDisplay) Widget() fyne.CanvasObject {
	return id.image
}

// SetImage replaces the preview; nil clears it.
func (id *ImageDisplay) SetImage(img image.Image) {
	id.image.Image = img
	id.image.Refresh()
}

func (id *ImageDisplay) Image() image.Image {
	return id.image.Image
}
