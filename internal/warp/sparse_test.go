package warp

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/mlswarp/internal/mls"
)

func TestSparseFactorValidation(t *testing.T) {
	img := makeTestImage(8, 8)
	pts := []mls.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}

	for _, factor := range []int{0, -1} {
		_, err := Sparse(img, pts, pts, mls.Rigid, factor, Options{})
		assert.Error(t, err, "factor %d", factor)
	}
}

// With factor 1 every pixel is an anchor and the field interpolation is a
// no-op, so the sparse warper must match the dense warper exactly.
func TestSparseFactorOneMatchesDense(t *testing.T) {
	src := makeTestImage(18, 15)
	srcPts := []mls.Point{{X: 0, Y: 0}, {X: 17, Y: 0}, {X: 0, Y: 14}, {X: 9, Y: 7}}
	dstPts := []mls.Point{{X: 1, Y: 2}, {X: 16, Y: 1}, {X: 2, Y: 13}, {X: 10, Y: 6}}

	for _, kind := range []mls.Kind{mls.Affine, mls.Similarity, mls.Rigid} {
		dense, err := Dense(src, srcPts, dstPts, kind, Options{})
		require.NoError(t, err)
		sparse, err := Sparse(src, srcPts, dstPts, kind, 1, Options{})
		require.NoError(t, err)

		assert.Equal(t, dense.(*image.RGBA).Pix, sparse.(*image.RGBA).Pix, "kind %v", kind)
	}
}

// A pure translation gives a linear deformation field, which the anchor
// interpolation reconstructs almost exactly at any factor.
func TestSparseTranslationNearDense(t *testing.T) {
	src := makeTestImage(32, 24)
	srcPts := []mls.Point{{X: 4, Y: 4}, {X: 28, Y: 4}, {X: 4, Y: 20}}
	dstPts := []mls.Point{{X: 6.5, Y: 5.25}, {X: 30.5, Y: 5.25}, {X: 6.5, Y: 21.25}}

	dense, err := Dense(src, srcPts, dstPts, mls.Rigid, Options{})
	require.NoError(t, err)
	sparse, err := Sparse(src, srcPts, dstPts, mls.Rigid, 4, Options{})
	require.NoError(t, err)

	dp := dense.(*image.RGBA).Pix
	sp := sparse.(*image.RGBA).Pix
	require.Len(t, sp, len(dp))
	for i := range dp {
		diff := int(dp[i]) - int(sp[i])
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, 1, "byte %d", i)
	}
}

// The anchor grid always extends one cell past the far edge, so the last
// pixel rows and columns have a full 2x2 anchor block even when the
// factor does not divide the dimensions.
func TestSparseOddDimensions(t *testing.T) {
	src := makeTestImage(17, 13)
	pts := []mls.Point{{X: 0, Y: 0}, {X: 16, Y: 0}, {X: 0, Y: 12}}

	for _, factor := range []int{2, 3, 5, 7} {
		out, err := Sparse(src, pts, pts, mls.Rigid, factor, Options{})
		require.NoError(t, err, "factor %d", factor)
		assert.Equal(t, src.Bounds(), out.Bounds(), "factor %d", factor)
	}
}

func TestSparseWorkerCountInvariance(t *testing.T) {
	src := makeTestImage(21, 19)
	srcPts := []mls.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 0, Y: 18}, {X: 20, Y: 18}}
	dstPts := []mls.Point{{X: 1, Y: 1}, {X: 19, Y: 2}, {X: 2, Y: 17}, {X: 18, Y: 16}}

	seq, err := Sparse(src, srcPts, dstPts, mls.Affine, 3, Options{Workers: 1})
	require.NoError(t, err)
	par, err := Sparse(src, srcPts, dstPts, mls.Affine, 3, Options{Workers: 6})
	require.NoError(t, err)

	assert.Equal(t, seq.(*image.RGBA).Pix, par.(*image.RGBA).Pix)
}
