/*package frame post-processes sequences of rendered turbulence frames.

The filter is a pure frame-in/frame-out color transform: a channel scale
for brightness, a scale-offset contrast pass, an additive tint, and a
saturation adjustment. No state is carried between frames.
*/
package frame

import (
	"image"

	"github.com/disintegration/imaging"
)

// Options configures the per-frame color transform. The zero value is the
// identity transform; DefaultOptions returns the pipeline's standard
// settings.
type Options struct {
	// Brightness scales every channel.
	Brightness float64
	// Contrast and ContrastOffset map each channel to
	// Contrast*v + ContrastOffset, clamped to [0, 255].
	Contrast, ContrastOffset float64
	// TintR, TintG, TintB is a color mixed additively into every pixel
	// with weight TintWeight.
	TintR, TintG, TintB uint8
	TintWeight          float64
	// Saturation multiplies pixel saturation. 1 leaves the frame unchanged.
	Saturation float64
}

// DefaultOptions returns the standard filter settings used by the
// turbulence rendering pipeline.
func DefaultOptions() Options {
	return Options{
		Brightness:     1.1,
		Contrast:       2.2,
		ContrastOffset: -70,
		TintR:          0,
		TintG:          80,
		TintB:          30,
		TintWeight:     0.25,
		Saturation:     0.85,
	}
}

// Apply runs the filter passes over src and returns the filtered frame.
// src is never modified.
func Apply(src image.Image, opt Options) *image.NRGBA {
	img := imaging.Clone(src)

	if opt.Brightness != 0 && opt.Brightness != 1 {
		scaleOffset(img, opt.Brightness, 0)
	}
	if opt.Contrast != 0 || opt.ContrastOffset != 0 {
		scaleOffset(img, opt.Contrast, opt.ContrastOffset)
	}
	if opt.TintWeight > 0 {
		tint(img, opt.TintR, opt.TintG, opt.TintB, opt.TintWeight)
	}
	if opt.Saturation > 0 && opt.Saturation != 1 {
		img = imaging.AdjustSaturation(img, (opt.Saturation-1)*100)
	}

	return img
}

// scaleOffset maps every color channel to alpha*v + beta, clamped to
// [0, 255]. Alpha channels are left alone.
func scaleOffset(img *image.NRGBA, alpha, beta float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			img.Pix[i+c] = clamp(alpha*float64(img.Pix[i+c]) + beta)
		}
	}
}

// tint mixes the tint color into every pixel: v + weight*tint, clamped.
func tint(img *image.NRGBA, r, g, b uint8, weight float64) {
	dr := weight * float64(r)
	dg := weight * float64(g)
	db := weight * float64(b)

	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = clamp(float64(img.Pix[i+0]) + dr)
		img.Pix[i+1] = clamp(float64(img.Pix[i+1]) + dg)
		img.Pix[i+2] = clamp(float64(img.Pix[i+2]) + db)
	}
}

// clamp rounds v to the nearest channel value in [0, 255].
func clamp(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
