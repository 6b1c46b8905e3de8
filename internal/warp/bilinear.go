package warp

import (
	"math"

	"github.com/MeKo-Tech/mlswarp/internal/mls"
)

// BilinearSample samples r at the fractional coordinate (x, y) by blending
// the four surrounding pixels. The inside test is deliberately
// conservative: the integer base coordinate must lie in
// [0, width-2) x [0, height-2), so no fallback pixel read is ever needed.
// It reports false outside that region; non-finite coordinates compare
// false and land outside as well.
func BilinearSample(r Raster, x, y float32) (Pixel, bool) {
	w, h := r.Width(), r.Height()
	u := float32(math.Floor(float64(x)))
	v := float32(math.Floor(float64(y)))
	if !(u >= 0 && u < float32(w-2) && v >= 0 && v < float32(h-2)) {
		return Pixel{}, false
	}
	u0, v0 := int(u), int(v)
	a := x - u
	b := y - v
	p00 := r.At(u0, v0)
	p10 := r.At(u0+1, v0)
	p01 := r.At(u0, v0+1)
	p11 := r.At(u0+1, v0+1)

	c00 := (1 - b) * (1 - a)
	c01 := b * (1 - a)
	c10 := (1 - b) * a
	c11 := b * a

	var out Pixel
	for i := range out {
		out[i] = c00*p00[i] + c01*p01[i] + c10*p10[i] + c11*p11[i]
	}
	return out, true
}

// interpolateField bilinearly blends the four anchor coordinates of the
// grid cell spanning (left, top)-(right, bottom) at the pixel (x, y),
// approximating the deformation field inside the cell. The pixel must lie
// within the cell.
func interpolateField(tl, tr, bl, br mls.Point, left, top, right, bottom, x, y int) mls.Point {
	cl := right - x
	cr := x - left
	ct := bottom - y
	cb := y - top

	cTL := float32(ct * cl)
	cTR := float32(ct * cr)
	cBL := float32(cb * cl)
	cBR := float32(cb * cr)
	area := float32((right - left) * (bottom - top))

	return mls.Point{
		X: (cTL*tl.X + cTR*tr.X + cBL*bl.X + cBR*br.X) / area,
		Y: (cTL*tl.Y + cTR*tr.Y + cBL*bl.Y + cBR*br.Y) / area,
	}
}
