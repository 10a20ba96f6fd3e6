// internal/pkg/imaging/crop.go
package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrProcessing is the only error Crop returns
var ErrProcessing = errors.New("image processing failed")

const (
	// JPEGQuality is the fixed encoder quality for uploads
	JPEGQuality = 90
	// MaxSourcePixels caps decoded source dimensions
	MaxSourcePixels = 60_000_000
	// MaxSourceBytes caps the raw upload read into memory
	MaxSourceBytes = 25 << 20
)

// CropRect is a region in source pixel coordinates. X and Y may be negative
// and the region may extend past the source; uncovered pixels are white.
type CropRect struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Aspect float64 `json:"aspect,omitempty"`
}

// Resolved derives Height from Width and Aspect when Height is unset
func (r CropRect) Resolved() CropRect {
	if r.Height == 0 && r.Aspect > 0 && r.Width > 0 {
		h := math.Round(float64(r.Width) / r.Aspect)
		if h > MaxSourcePixels {
			h = MaxSourcePixels + 1
		}
		r.Height = int(h)
	}
	return r
}

// fits reports whether the canvas stays under MaxSourcePixels and the
// region corners can be computed without overflow
func (r CropRect) fits() bool {
	if r.Width > MaxSourcePixels || r.Height > MaxSourcePixels {
		return false
	}
	if r.Width > MaxSourcePixels/r.Height {
		return false
	}
	return r.X >= -MaxSourcePixels && r.X <= MaxSourcePixels &&
		r.Y >= -MaxSourcePixels && r.Y <= MaxSourcePixels
}

// Crop decodes src, draws the selected region onto a white canvas of exactly
// rect.Width x rect.Height and encodes it as JPEG.
func Crop(src io.Reader, rect CropRect) ([]byte, error) {
	rect = rect.Resolved()
	if rect.Width <= 0 || rect.Height <= 0 {
		return nil, ErrProcessing
	}
	if !rect.fits() {
		return nil, ErrProcessing
	}

	raw, err := io.ReadAll(io.LimitReader(src, MaxSourceBytes+1))
	if err != nil || len(raw) == 0 || len(raw) > MaxSourceBytes {
		return nil, ErrProcessing
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil || int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return nil, ErrProcessing
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrProcessing
	}

	canvas := image.NewRGBA(image.Rect(0, 0, rect.Width, rect.Height))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)

	region := image.Rect(rect.X, rect.Y, rect.X+rect.Width, rect.Y+rect.Height)
	xdraw.Copy(canvas, image.Point{}, img, region, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, ErrProcessing
	}
	if buf.Len() == 0 {
		return nil, ErrProcessing
	}

	return buf.Bytes(), nil
}
