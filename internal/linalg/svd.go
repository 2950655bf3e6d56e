package linalg

import (
	"math"
	"sort"
)

const (
	jacobiMaxSweeps = 50
	jacobiEps       = 1e-15
	rankEps         = 1e-12
)

// jacobiRotate zeroes a[p][q] with a Givens rotation, accumulating it into v.
func jacobiRotate(a, v *Mat3, p, q int) {
	if math.Abs(a.At(p, q)) < jacobiEps {
		return
	}

	tau := (a.At(q, q) - a.At(p, p)) / (2 * a.At(p, q))
	var t float64
	if tau >= 0 {
		t = 1 / (tau + math.Sqrt(1+tau*tau))
	} else {
		t = -1 / (-tau + math.Sqrt(1+tau*tau))
	}
	c := 1 / math.Sqrt(1+t*t)
	s := t * c

	app, aqq, apq := a.At(p, p), a.At(q, q), a.At(p, q)
	a.Set(p, p, c*c*app-2*s*c*apq+s*s*aqq)
	a.Set(q, q, s*s*app+2*s*c*apq+c*c*aqq)
	a.Set(p, q, 0)
	a.Set(q, p, 0)

	for i := 0; i < 3; i++ {
		if i == p || i == q {
			continue
		}
		aip, aiq := a.At(i, p), a.At(i, q)
		a.Set(i, p, c*aip-s*aiq)
		a.Set(p, i, c*aip-s*aiq)
		a.Set(i, q, s*aip+c*aiq)
		a.Set(q, i, s*aip+c*aiq)
	}

	for i := 0; i < 3; i++ {
		vip, viq := v.At(i, p), v.At(i, q)
		v.Set(i, p, c*vip-s*viq)
		v.Set(i, q, s*vip+c*viq)
	}
}

// EigSym diagonalizes a symmetric 3x3 matrix by cyclic Jacobi sweeps,
// returning eigenvectors as columns of V and the eigenvalues (unsorted).
func EigSym(a Mat3) (v Mat3, lambda Vec3) {
	v = Identity()
	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		off := math.Abs(a.At(0, 1)) + math.Abs(a.At(0, 2)) + math.Abs(a.At(1, 2))
		if off < jacobiEps {
			break
		}
		jacobiRotate(&a, &v, 0, 1)
		jacobiRotate(&a, &v, 0, 2)
		jacobiRotate(&a, &v, 1, 2)
	}
	return v, Vec3{a.At(0, 0), a.At(1, 1), a.At(2, 2)}
}

// SVD3 computes A = U diag(sigma) V^T for an arbitrary 3x3 matrix via the
// eigendecomposition of A^T A. Singular values are sorted descending. When
// the smallest singular value is numerically zero, the corresponding column
// of U is rebuilt as the cross product of the other two so that U stays
// orthogonal.
func SVD3(a Mat3) (u Mat3, sigma Vec3, v Mat3) {
	ata := a.Transpose().Mul(a)
	v, lambda := EigSym(ata)

	// Sort singular values descending with a stable reorder of V's columns.
	order := []int{0, 1, 2}
	lam := [3]float64{lambda.X, lambda.Y, lambda.Z}
	sort.SliceStable(order, func(i, j int) bool {
		return lam[order[i]] > lam[order[j]]
	})

	var vs Mat3
	var sv [3]float64
	for k, idx := range order {
		vs.SetCol(k, v.Col(idx))
		sv[k] = math.Sqrt(math.Max(0, lam[idx]))
	}
	v = vs
	sigma = Vec3{sv[0], sv[1], sv[2]}

	for k := 0; k < 3; k++ {
		if sv[k] > rankEps {
			u.SetCol(k, a.MulVec(v.Col(k)).Scale(1/sv[k]))
		}
	}

	// Rank-deficient: reconstruct an orthogonal third column.
	if sv[2] < rankEps {
		u2 := u.Col(0).Cross(u.Col(1))
		if n := u2.Norm(); n > rankEps {
			u.SetCol(2, u2.Scale(1/n))
		}
	}

	return u, sigma, v
}

// PolarRotation returns the nearest (possibly improper) rotation to A.
func PolarRotation(a Mat3) Mat3 {
	u, _, v := SVD3(a)
	return u.Mul(v.Transpose())
}
