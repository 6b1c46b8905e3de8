// Package warp applies MLS deformations to raster images using reverse
// (pull) sampling: for every destination pixel it finds the source
// coordinate to read from and resamples bilinearly, either densely (one
// solve per pixel) or through a sparse anchor grid.
package warp

import (
	"image"
)

// Pixel holds the four RGBA channel values of one pixel in a continuous
// 0..255 representation, the intermediate form used for weighted
// averaging before conversion back to integer channels.
type Pixel [4]float32

// Background is the pixel written where reverse sampling falls outside
// the source raster: opaque black.
var Background = Pixel{0, 0, 0, 255}

// Raster is the warper's read-only view of an image: dimensions plus
// random access to pixels already converted to the continuous channel
// representation. Coordinates are zero-based regardless of the underlying
// image's bounds.
type Raster interface {
	Width() int
	Height() int
	At(x, y int) Pixel
}

// NewRaster adapts an image.Image to the Raster interface, with direct
// pixel-buffer access for the common RGBA and NRGBA memory layouts.
func NewRaster(img image.Image) Raster {
	switch t := img.(type) {
	case *image.RGBA:
		return &rgbaRaster{img: t, w: t.Bounds().Dx(), h: t.Bounds().Dy()}
	case *image.NRGBA:
		return &nrgbaRaster{img: t, w: t.Bounds().Dx(), h: t.Bounds().Dy()}
	default:
		return &genericRaster{img: img, w: img.Bounds().Dx(), h: img.Bounds().Dy()}
	}
}

type rgbaRaster struct {
	img  *image.RGBA
	w, h int
}

func (r *rgbaRaster) Width() int  { return r.w }
func (r *rgbaRaster) Height() int { return r.h }

func (r *rgbaRaster) At(x, y int) Pixel {
	i := r.img.PixOffset(x+r.img.Rect.Min.X, y+r.img.Rect.Min.Y)
	s := r.img.Pix[i : i+4 : i+4]
	return Pixel{float32(s[0]), float32(s[1]), float32(s[2]), float32(s[3])}
}

type nrgbaRaster struct {
	img  *image.NRGBA
	w, h int
}

func (r *nrgbaRaster) Width() int  { return r.w }
func (r *nrgbaRaster) Height() int { return r.h }

func (r *nrgbaRaster) At(x, y int) Pixel {
	i := r.img.PixOffset(x+r.img.Rect.Min.X, y+r.img.Rect.Min.Y)
	s := r.img.Pix[i : i+4 : i+4]
	return Pixel{float32(s[0]), float32(s[1]), float32(s[2]), float32(s[3])}
}

type genericRaster struct {
	img  image.Image
	w, h int
}

func (r *genericRaster) Width() int  { return r.w }
func (r *genericRaster) Height() int { return r.h }

func (r *genericRaster) At(x, y int) Pixel {
	b := r.img.Bounds()
	cr, cg, cb, ca := r.img.At(x+b.Min.X, y+b.Min.Y).RGBA()
	return Pixel{float32(cr >> 8), float32(cg >> 8), float32(cb >> 8), float32(ca >> 8)}
}

// fromFunc builds a freshly allocated output image from a per-pixel
// generator, converting the continuous channel representation back to
// 8-bit with clamping and rounding. Rows are computed in parallel; the
// generator must therefore be safe for concurrent calls.
func fromFunc(w, h, workers int, f func(x, y int) Pixel) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	parallelRows(h, workers, func(y int) {
		i := out.PixOffset(0, y)
		for x := 0; x < w; x++ {
			px := f(x, y)
			out.Pix[i] = clampChannel(px[0])
			out.Pix[i+1] = clampChannel(px[1])
			out.Pix[i+2] = clampChannel(px[2])
			out.Pix[i+3] = clampChannel(px[3])
			i += 4
		}
	})
	return out
}

func clampChannel(v float32) uint8 {
	if !(v >= 0) { // also catches NaN
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
