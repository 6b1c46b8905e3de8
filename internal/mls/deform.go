package mls

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/MeKo-Tech/mlswarp/internal/mempool"
)

// Kind selects which closed-form MLS solve to run.
type Kind int

const (
	// Affine estimates a locally optimal affine transform.
	Affine Kind = iota
	// Similarity estimates rotation, translation and uniform scale (no shear).
	Similarity
	// Rigid estimates rotation and translation only (unit scale).
	Rigid
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Affine:
		return "affine"
	case Similarity:
		return "similarity"
	case Rigid:
		return "rigid"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind name as used on the command line.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "affine":
		return Affine, nil
	case "similarity":
		return Similarity, nil
	case "rigid":
		return Rigid, nil
	default:
		return Affine, fmt.Errorf("unknown deformation kind: %q (must be affine, similarity or rigid)", s)
	}
}

// Deformer maps query points under the MLS deformation that carries the
// source control points onto the destination control points. It borrows
// both slices read-only; the caller must not mutate them while the
// Deformer is in use. A Deformer is safe for concurrent use.
type Deformer struct {
	kind   Kind
	src    []Point
	dst    []Point
	finish func(v Point, w []float32, pstar, qstar Point) Point
}

// NewDeformer validates the control-point correspondence and returns a
// Deformer. The slices must have equal, non-zero length.
func NewDeformer(kind Kind, src, dst []Point) (*Deformer, error) {
	if len(src) == 0 {
		return nil, errors.New("no control points provided")
	}
	if len(src) != len(dst) {
		return nil, fmt.Errorf("control point count mismatch: %d source vs %d destination", len(src), len(dst))
	}
	d := &Deformer{kind: kind, src: src, dst: dst}
	switch kind {
	case Affine:
		d.finish = d.finishAffine
	case Similarity:
		d.finish = d.finishSimilarity
	case Rigid:
		d.finish = d.finishRigid
	default:
		return nil, fmt.Errorf("unknown deformation kind: %d", int(kind))
	}
	return d, nil
}

// Deform is a one-shot convenience around NewDeformer and Transform.
func Deform(kind Kind, src, dst []Point, q Point) (Point, error) {
	d, err := NewDeformer(kind, src, dst)
	if err != nil {
		return Point{}, err
	}
	return d.Transform(q), nil
}

// Transform returns the deformed position of v.
//
// Control points are weighted by inverse squared distance to v. When v
// coincides exactly with a source control point its weight is infinite and
// the corresponding destination point is returned directly; on the
// (malformed) input where several control points coincide with v, the
// first matching index wins. Degenerate configurations, such as a single
// control point under the affine or similarity kinds, are out of contract
// and propagate non-finite coordinates rather than being guarded.
func (d *Deformer) Transform(v Point) Point {
	n := len(d.src)
	w := mempool.GetFloat32(n)
	defer mempool.PutFloat32(w)

	var wSum float32
	for i, p := range d.src {
		w[i] = 1.0 / p.Sub(v).SqrNorm()
		wSum += w[i]
	}
	if math.IsInf(float64(wSum), 1) {
		for i, wi := range w {
			if math.IsInf(float64(wi), 1) {
				return d.dst[i]
			}
		}
		// Sum overflowed without any single infinite weight; fall through
		// and let the non-finite arithmetic propagate.
	}

	inv := 1.0 / wSum
	var pSum, qSum Point
	for i := range d.src {
		pSum = pSum.Add(d.src[i].Scale(w[i]))
		qSum = qSum.Add(d.dst[i].Scale(w[i]))
	}
	pStar := pSum.Scale(inv)
	qStar := qSum.Scale(inv)

	return d.finish(v, w, pStar, qStar)
}

// finishAffine solves the weighted least-squares affine fit
// (paper eq. 5-6): result = (v - p*)ᵗ Mp⁻¹ Mq + q*.
func (d *Deformer) finishAffine(v Point, w []float32, pStar, qStar Point) Point {
	var mp, mq Mat2
	for i := range d.src {
		pHat := d.src[i].Sub(pStar)
		qHat := d.dst[i].Sub(qStar)
		mp = mp.Add(pHat.TimesTranspose(pHat).Scale(w[i]))
		mq = mq.Add(pHat.Scale(w[i]).TimesTranspose(qHat))
	}
	return v.Sub(pStar).TransposeMul(mp.Inv()).TransposeMul(mq).Add(qStar)
}

// rotScaleMatrix builds the shared similarity/rigid matrix
// M = Σ wᵢ A(p̂ᵢ) A(q̂ᵢ), with A(u) = [[u.x, u.y], [u.y, -u.x]].
func (d *Deformer) rotScaleMatrix(w []float32, pStar, qStar Point) Mat2 {
	var m Mat2
	for i := range d.src {
		pHat := d.src[i].Sub(pStar)
		qHat := d.dst[i].Sub(qStar)
		pm := Mat2{M11: pHat.X, M12: pHat.Y, M21: pHat.Y, M22: -pHat.X}
		qm := Mat2{M11: qHat.X, M12: qHat.Y, M21: qHat.Y, M22: -qHat.X}
		m = m.Add(pm.Mul(qm).Scale(w[i]))
	}
	return m
}

// finishSimilarity normalizes the rotation-scale matrix by
// μs = Σ wᵢ |p̂ᵢ|² (paper eq. 6).
func (d *Deformer) finishSimilarity(v Point, w []float32, pStar, qStar Point) Point {
	var muS float32
	for i := range d.src {
		muS += w[i] * d.src[i].Sub(pStar).SqrNorm()
	}
	m := d.rotScaleMatrix(w, pStar, qStar).Scale(1.0 / muS)
	return v.Sub(pStar).TransposeMul(m).Add(qStar)
}

// finishRigid normalizes by μr = |Σ wᵢ (q̂ᵢ·p̂ᵢ, q̂ᵢ·p̂ᵢ⊥)|, forcing unit
// scale (paper eq. 8).
func (d *Deformer) finishRigid(v Point, w []float32, pStar, qStar Point) Point {
	var muVec Point
	for i := range d.src {
		pHat := d.src[i].Sub(pStar)
		qHat := d.dst[i].Sub(qStar)
		muVec.X += w[i] * qHat.Dot(pHat)
		muVec.Y += w[i] * qHat.Dot(pHat.Perp())
	}
	muR := float32(math.Sqrt(float64(muVec.SqrNorm())))
	m := d.rotScaleMatrix(w, pStar, qStar).Scale(1.0 / muR)
	return v.Sub(pStar).TransposeMul(m).Add(qStar)
}
