package warp

import (
	"fmt"
	"image"

	"github.com/MeKo-Tech/mlswarp/internal/mls"
)

// Sparse computes the reverse-warped image like Dense, but evaluates the
// MLS solver only on a coarse anchor grid spaced factor pixels apart and
// bilinearly interpolates the deformation field for the pixels in
// between. Solver cost drops from width*height evaluations to roughly
// (width*height)/factor², which pays off when the control-point count is
// large. factor == 1 degrades to the dense result.
func Sparse(src image.Image, srcPts, dstPts []mls.Point, kind mls.Kind, factor int, opts Options) (image.Image, error) {
	if factor < 1 {
		return nil, fmt.Errorf("subresolution factor must be >= 1, got %d", factor)
	}
	rev, r, err := prepare(src, srcPts, dstPts, kind)
	if err != nil {
		return nil, err
	}
	w, h := r.Width(), r.Height()

	// One anchor every factor pixels, plus one column and row past the far
	// edge so every pixel has a complete 2x2 anchor block around it.
	subW := (w-1)/factor + 2
	subH := (h-1)/factor + 2
	anchors := make([]mls.Point, subW*subH)
	parallelRows(subH, opts.Workers, func(v int) {
		y := float32(v * factor)
		row := v * subW
		for u := 0; u < subW; u++ {
			anchors[row+u] = rev.Transform(mls.Point{X: float32(u * factor), Y: y})
		}
	})

	// The grid must be complete before this pass; parallelRows above has
	// already joined its workers.
	return fromFunc(w, h, opts.Workers, func(x, y int) Pixel {
		cellX := x / factor
		cellY := y / factor
		left := cellX * factor
		top := cellY * factor
		i := cellY*subW + cellX
		s := interpolateField(
			anchors[i], anchors[i+1], anchors[i+subW], anchors[i+subW+1],
			left, top, left+factor, top+factor, x, y)
		px, ok := BilinearSample(r, s.X, s.Y)
		if !ok {
			return Background
		}
		return px
	}), nil
}
