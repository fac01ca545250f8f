package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

const tolerance = 1.0 / 255.0

func uniform(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writeImage(t *testing.T, name string, encode func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encode(&buf))
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/tmp/a.png", true},
		{"/tmp/a.PNG", true},
		{"/tmp/a.jpg", true},
		{"/tmp/a.JPEG", true},
		{"/tmp/a.gif", true},
		{"/tmp/a.bmp", true},
		{"C:/pics/a.WebP", true},
		{"/tmp/a.tiff", false},
		{"/tmp/a.txt", false},
		{"/tmp/png", false},
		{"/tmp/archive.png.zip", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSupported(tt.path), tt.path)
	}
}

func TestDecodeFileFormats(t *testing.T) {
	img := uniform(6, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	tests := []struct {
		name   string
		format string
		encode func(*bytes.Buffer) error
	}{
		{"a.png", "png", func(b *bytes.Buffer) error { return png.Encode(b, img) }},
		{"a.jpg", "jpeg", func(b *bytes.Buffer) error { return jpeg.Encode(b, img, nil) }},
		{"a.gif", "gif", func(b *bytes.Buffer) error { return gif.Encode(b, img, nil) }},
		{"a.bmp", "bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, img) }},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := writeImage(t, tt.name, tt.encode)

			decoded, format, err := DecodeFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, 6, decoded.Bounds().Dx())
			assert.Equal(t, 4, decoded.Bounds().Dy())
		})
	}
}

func TestDecodeFileErrors(t *testing.T) {
	_, _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)

	path := writeImage(t, "fake.png", func(b *bytes.Buffer) error {
		_, err := b.WriteString("definitely not an image")
		return err
	})
	_, _, err = DecodeFile(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestToTensorNHWC(t *testing.T) {
	img := uniform(8, 6, color.NRGBA{R: 255, G: 0, B: 51, A: 255})

	data, err := ToTensor(img, 4, NHWC)
	require.NoError(t, err)
	require.Len(t, data, 4*4*3)

	for i := 0; i < 16; i++ {
		assert.InDelta(t, 1.0, data[3*i], tolerance)
		assert.InDelta(t, 0.0, data[3*i+1], tolerance)
		assert.InDelta(t, 0.2, data[3*i+2], tolerance)
	}
}

func TestToTensorNCHW(t *testing.T) {
	img := uniform(5, 5, color.NRGBA{R: 255, G: 0, B: 51, A: 255})

	data, err := ToTensor(img, 3, NCHW)
	require.NoError(t, err)
	require.Len(t, data, 27)

	for i := 0; i < 9; i++ {
		assert.InDelta(t, 1.0, data[i], tolerance)
		assert.InDelta(t, 0.0, data[9+i], tolerance)
		assert.InDelta(t, 0.2, data[18+i], tolerance)
	}
}

func TestToTensorDropsAlpha(t *testing.T) {
	img := uniform(4, 4, color.NRGBA{R: 200, G: 100, B: 50, A: 0})

	data, err := ToTensor(img, 2, NHWC)
	require.NoError(t, err)

	assert.InDelta(t, 200.0/255.0, data[0], tolerance)
	assert.InDelta(t, 100.0/255.0, data[1], tolerance)
	assert.InDelta(t, 50.0/255.0, data[2], tolerance)
}

func TestToTensorRange(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}

	data, err := ToTensor(img, 8, NHWC)
	require.NoError(t, err)
	for _, v := range data {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestToTensorInvalidInput(t *testing.T) {
	_, err := ToTensor(nil, 224, NHWC)
	assert.Error(t, err)

	_, err = ToTensor(uniform(2, 2, color.Black), 0, NHWC)
	assert.Error(t, err)
}

func TestLayout(t *testing.T) {
	l, err := ParseLayout("nchw")
	require.NoError(t, err)
	assert.Equal(t, NCHW, l)
	assert.Equal(t, []int64{1, 3, 224, 224}, l.Shape(224))

	l, err = ParseLayout("NHWC")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 224, 224, 3}, l.Shape(224))

	_, err = ParseLayout("chw")
	assert.Error(t, err)
}

func TestLoadPreview(t *testing.T) {
	img := uniform(640, 480, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	path := writeImage(t, "big.png", func(b *bytes.Buffer) error { return png.Encode(b, img) })

	preview, err := LoadPreview(path, 200)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 200), preview.Bounds())

	_, err = Thumbnail(nil, 200)
	assert.Error(t, err)
}
