package warp

import (
	"errors"
	"fmt"
	"image"

	"github.com/MeKo-Tech/mlswarp/internal/mls"
)

// Options controls warp execution.
type Options struct {
	// Workers is the row worker pool size; 0 selects runtime.NumCPU().
	Workers int
}

// Dense computes the reverse-warped image, running the full MLS solve for
// every destination pixel. The deformation carries srcPts onto dstPts;
// each destination pixel pulls its color from the source raster at the
// inverse-mapped coordinate, bilinearly resampled, with Background where
// the coordinate falls outside the source. The output has the source's
// dimensions and the source is never written.
func Dense(src image.Image, srcPts, dstPts []mls.Point, kind mls.Kind, opts Options) (image.Image, error) {
	rev, r, err := prepare(src, srcPts, dstPts, kind)
	if err != nil {
		return nil, err
	}
	return fromFunc(r.Width(), r.Height(), opts.Workers, func(x, y int) Pixel {
		s := rev.Transform(mls.Point{X: float32(x), Y: float32(y)})
		px, ok := BilinearSample(r, s.X, s.Y)
		if !ok {
			return Background
		}
		return px
	}), nil
}

// prepare validates the warp inputs and builds the reverse deformer:
// destination and source control roles are swapped so that destination
// pixels map back into source coordinates.
func prepare(src image.Image, srcPts, dstPts []mls.Point, kind mls.Kind) (*mls.Deformer, Raster, error) {
	if src == nil {
		return nil, nil, errors.New("source image is nil")
	}
	if len(srcPts) == 0 {
		return nil, nil, errors.New("no control points provided")
	}
	if len(srcPts) != len(dstPts) {
		return nil, nil, fmt.Errorf("control point count mismatch: %d source vs %d destination",
			len(srcPts), len(dstPts))
	}
	rev, err := mls.NewDeformer(kind, dstPts, srcPts)
	if err != nil {
		return nil, nil, err
	}
	return rev, NewRaster(src), nil
}
