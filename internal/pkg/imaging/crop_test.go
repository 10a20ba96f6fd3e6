// internal/pkg/imaging/crop_test.go
package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsvendas/motostock/internal/pkg/imaging"
)

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

// near reports whether c is within tolerance of want on every channel
func near(c color.Color, want color.RGBA, tolerance int) bool {
	r, g, b, _ := c.RGBA()
	diff := func(a uint32, w uint8) bool {
		d := int(a>>8) - int(w)
		return d <= tolerance && d >= -tolerance
	}
	return diff(r, want.R) && diff(g, want.G) && diff(b, want.B)
}

var (
	red   = color.RGBA{R: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestCrop_OutputDimensions(t *testing.T) {
	src := solidPNG(t, 100, 50, red)

	tests := []struct {
		name  string
		rect  imaging.CropRect
		wantW int
		wantH int
	}{
		{name: "inside_bounds", rect: imaging.CropRect{X: 10, Y: 10, Width: 30, Height: 20}, wantW: 30, wantH: 20},
		{name: "larger_than_source", rect: imaging.CropRect{Width: 400, Height: 300}, wantW: 400, wantH: 300},
		{name: "negative_origin", rect: imaging.CropRect{X: -50, Y: -50, Width: 60, Height: 60}, wantW: 60, wantH: 60},
		{name: "fully_outside", rect: imaging.CropRect{X: 500, Y: 500, Width: 16, Height: 9}, wantW: 16, wantH: 9},
		{name: "height_from_aspect", rect: imaging.CropRect{Width: 160, Aspect: 16.0 / 9.0}, wantW: 160, wantH: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := imaging.Crop(bytes.NewReader(src), tt.rect)
			require.NoError(t, err)

			img := decodeJPEG(t, out)
			assert.Equal(t, tt.wantW, img.Bounds().Dx())
			assert.Equal(t, tt.wantH, img.Bounds().Dy())
		})
	}
}

func TestCrop_OutOfBoundsIsWhite(t *testing.T) {
	src := solidPNG(t, 100, 50, red)

	out, err := imaging.Crop(bytes.NewReader(src), imaging.CropRect{X: 80, Y: 0, Width: 40, Height: 40})
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.True(t, near(img.At(5, 20), red, 24), "inside source should stay red")
	assert.True(t, near(img.At(35, 20), white, 24), "past the right edge should be white")
}

func TestCrop_TransparentSourceOnWhite(t *testing.T) {
	src := solidPNG(t, 20, 20, color.RGBA{})

	out, err := imaging.Crop(bytes.NewReader(src), imaging.CropRect{Width: 20, Height: 20})
	require.NoError(t, err)

	assert.True(t, near(decodeJPEG(t, out).At(10, 10), white, 8))
}

func TestCrop_Failures(t *testing.T) {
	valid := solidPNG(t, 10, 10, red)

	tests := []struct {
		name string
		src  []byte
		rect imaging.CropRect
	}{
		{name: "not_an_image", src: []byte(strings.Repeat("x", 64)), rect: imaging.CropRect{Width: 10, Height: 10}},
		{name: "empty_input", src: nil, rect: imaging.CropRect{Width: 10, Height: 10}},
		{name: "zero_width", src: valid, rect: imaging.CropRect{Height: 10}},
		{name: "negative_height", src: valid, rect: imaging.CropRect{Width: 10, Height: -1}},
		{name: "oversized_canvas", src: valid, rect: imaging.CropRect{Width: 100_000, Height: 100_000}},
		{name: "canvas_product_overflows", src: valid, rect: imaging.CropRect{Width: 1 << 32, Height: 1 << 32}},
		{name: "one_huge_side", src: valid, rect: imaging.CropRect{Width: 1 << 40, Height: 1}},
		{name: "aspect_derives_huge_height", src: valid, rect: imaging.CropRect{Width: 10, Aspect: 1e-300}},
		{name: "offset_out_of_range", src: valid, rect: imaging.CropRect{X: math.MaxInt - 5, Width: 10, Height: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				out []byte
				err error
			)
			require.NotPanics(t, func() {
				out, err = imaging.Crop(bytes.NewReader(tt.src), tt.rect)
			})
			assert.ErrorIs(t, err, imaging.ErrProcessing)
			assert.Nil(t, out)
			assert.Equal(t, "image processing failed", err.Error())
		})
	}
}

func TestCropRect_Resolved(t *testing.T) {
	r := imaging.CropRect{Width: 100, Height: 40, Aspect: 1}.Resolved()
	assert.Equal(t, 40, r.Height, "explicit height wins")

	r = imaging.CropRect{Width: 120, Aspect: 4.0 / 3.0}.Resolved()
	assert.Equal(t, 90, r.Height)

	r = imaging.CropRect{Width: 10, Aspect: 1e-300}.Resolved()
	assert.Equal(t, imaging.MaxSourcePixels+1, r.Height, "derived height is capped")
}
