// Package align computes optimal rigid-body superpositions between two
// atomic states via the Kabsch algorithm.
package align

import (
	"math"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/linalg"
)

// Result reports a superposition: the applied rotation, RMSD before and
// after, the largest single-atom displacement, and the center-of-mass
// bookkeeping consumed by camera/visualization code.
type Result struct {
	Rotation        linalg.Mat3
	RMSDBefore      float64
	RMSDAfter       float64
	MaxDeviation    float64
	TargetCOMBefore linalg.Vec3
	TargetCOMAfter  linalg.Vec3
	ReferenceCOM    linalg.Vec3
}

// RMSD is the plain positional root-mean-square deviation between two
// states, without alignment. Mismatched or empty states give 0.
func RMSD(a, b *atoms.State) float64 {
	if a.N != b.N || a.N == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < a.N; i++ {
		sum += a.X[i].Sub(b.X[i]).Norm2()
	}
	return math.Sqrt(sum / float64(a.N))
}

// Kabsch rotates and translates target in place to minimize RMSD against
// reference. Velocities, when present, are rotated along with positions.
// Fewer than two atoms or mismatched counts yield an identity no-op.
//
// The optimal rotation is R = V U^T from the SVD of the cross-covariance
// H = sum(target_k (x) reference_k); det(R) < 0 indicates a reflection and
// is corrected by flipping the column of V belonging to the smallest
// singular value.
func Kabsch(target, reference *atoms.State) Result {
	res := Result{
		Rotation:        linalg.Identity(),
		TargetCOMBefore: target.CenterOfMass(),
		ReferenceCOM:    reference.CenterOfMass(),
		RMSDBefore:      RMSD(target, reference),
	}
	res.RMSDAfter = res.RMSDBefore
	res.TargetCOMAfter = res.TargetCOMBefore

	if target.N != reference.N || target.N < 2 {
		return res
	}

	refCentered := make([]linalg.Vec3, reference.N)
	for i := range refCentered {
		refCentered[i] = reference.X[i].Sub(res.ReferenceCOM)
	}
	target.CenterAtOrigin()

	var h linalg.Mat3
	for k := 0; k < target.N; k++ {
		tx, ry := target.X[k], refCentered[k]
		h[0] += tx.X * ry.X
		h[1] += tx.X * ry.Y
		h[2] += tx.X * ry.Z
		h[3] += tx.Y * ry.X
		h[4] += tx.Y * ry.Y
		h[5] += tx.Y * ry.Z
		h[6] += tx.Z * ry.X
		h[7] += tx.Z * ry.Y
		h[8] += tx.Z * ry.Z
	}

	u, _, v := linalg.SVD3(h)
	r := v.Mul(u.Transpose())
	if r.Det() < 0 {
		v.SetCol(2, v.Col(2).Scale(-1))
		r = v.Mul(u.Transpose())
	}

	for i := 0; i < target.N; i++ {
		rotated := r.MulVec(target.X[i])
		if dev := rotated.Sub(target.X[i]).Norm(); dev > res.MaxDeviation {
			res.MaxDeviation = dev
		}
		target.X[i] = rotated
	}
	for i := range target.V {
		target.V[i] = r.MulVec(target.V[i])
	}

	// Settle the target into the reference frame.
	for i := range target.X {
		target.X[i] = target.X[i].Add(res.ReferenceCOM)
	}

	res.Rotation = r
	res.TargetCOMAfter = target.CenterOfMass()
	res.RMSDAfter = RMSD(target, reference)
	return res
}
