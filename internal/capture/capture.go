// Package capture grabs screen regions around the pointer for OCR.
package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	xdraw "golang.org/x/image/draw"
)

// minOCRDim is the smallest useful dimension for recognition; regions
// clamped below it (pointer near a screen edge) are upscaled first.
const minOCRDim = 150

// Grabber captures fixed-size regions of the screen. Capture may fail if
// the platform denies it; callers treat that as a skipped cycle.
type Grabber struct {
	width  int
	height int
}

// New creates a grabber for width x height regions.
func New(width, height int) *Grabber {
	return &Grabber{width: width, height: height}
}

// Region captures the configured region centered on the given screen
// coordinate, clamped to the display that contains it.
func (g *Grabber) Region(center image.Point) (image.Image, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays")
	}

	bounds := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		if b := screenshot.GetDisplayBounds(i); center.In(b) {
			bounds = b
			break
		}
	}

	rect := image.Rect(
		center.X-g.width/2, center.Y-g.height/2,
		center.X+g.width/2, center.Y+g.height/2,
	).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("capture region outside display bounds")
	}

	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("screen capture failed: %w", err)
	}
	return upscale(img), nil
}

// upscale enlarges clamped captures so Tesseract has enough pixels to
// work with. Full-size captures pass through untouched.
func upscale(img *image.RGBA) image.Image {
	b := img.Bounds()
	minDim := min(b.Dx(), b.Dy())
	if minDim <= 0 || minDim >= minOCRDim {
		return img
	}

	scale := float64(minOCRDim) / float64(minDim)
	dst := image.NewRGBA(image.Rect(0, 0,
		int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
