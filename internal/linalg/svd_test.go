package linalg

import (
	"math"
	"testing"
)

func reconstruct(u Mat3, sigma Vec3, v Mat3) Mat3 {
	var d Mat3
	d.Set(0, 0, sigma.X)
	d.Set(1, 1, sigma.Y)
	d.Set(2, 2, sigma.Z)
	return u.Mul(d).Mul(v.Transpose())
}

func maxAbsDiff(a, b Mat3) float64 {
	m := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > m {
			m = d
		}
	}
	return m
}

func TestSVD3Reconstruction(t *testing.T) {
	cases := []struct {
		name string
		a    Mat3
	}{
		{"identity", Identity()},
		{"diagonal", Mat3{3, 0, 0, 0, 2, 0, 0, 0, 1}},
		{"rotation", RotZ(0.7).Mul(RotX(-1.2))},
		{"general", Mat3{1.5, -0.3, 0.8, 0.2, 2.1, -1.1, -0.7, 0.4, 0.9}},
		{"scaled", Mat3{1e3, 2, -3, 4, 5e2, 6, 7, -8, 9}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, sigma, v := SVD3(tc.a)
			r := reconstruct(u, sigma, v)
			tol := 1e-10 * math.Max(1, tc.a.FrobNorm())
			if d := maxAbsDiff(tc.a, r); d > tol {
				t.Errorf("reconstruction error %g exceeds %g", d, tol)
			}
			if sigma.X < sigma.Y || sigma.Y < sigma.Z {
				t.Errorf("singular values not descending: %v", sigma)
			}
		})
	}
}

func TestSVD3Orthogonality(t *testing.T) {
	a := Mat3{2, -1, 0.5, 0, 1.5, -0.2, 1, 0.3, -2}
	u, _, v := SVD3(a)

	if d := maxAbsDiff(u.Transpose().Mul(u), Identity()); d > 1e-10 {
		t.Errorf("U not orthogonal, deviation %g", d)
	}
	if d := maxAbsDiff(v.Transpose().Mul(v), Identity()); d > 1e-10 {
		t.Errorf("V not orthogonal, deviation %g", d)
	}
}

func TestSVD3RankDeficient(t *testing.T) {
	// Rank-2 matrix: third column is a combination of the first two.
	a := Mat3{
		1, 2, 3,
		4, 5, 9,
		7, 8, 15,
	}
	u, sigma, _ := SVD3(a)

	if sigma.Z > 1e-8 {
		t.Fatalf("expected near-zero smallest singular value, got %g", sigma.Z)
	}
	// U must still be orthogonal thanks to the cross-product rebuild.
	if d := maxAbsDiff(u.Transpose().Mul(u), Identity()); d > 1e-8 {
		t.Errorf("U not orthogonal for rank-deficient input, deviation %g", d)
	}
}

func TestPolarRotation(t *testing.T) {
	want := RotY(0.4).Mul(RotZ(-0.9))

	// Perturb slightly; the polar factor should return a proper rotation.
	a := want
	a[0] += 0.01
	a[4] -= 0.02

	r := PolarRotation(a)
	if d := math.Abs(r.Det() - 1); d > 1e-9 {
		t.Errorf("polar factor determinant off by %g", d)
	}
	if d := maxAbsDiff(r.Transpose().Mul(r), Identity()); d > 1e-9 {
		t.Errorf("polar factor not orthogonal, deviation %g", d)
	}
}

func TestAxisAngleMatchesRotX(t *testing.T) {
	got := AxisAngle(Vec3{X: 1}, 0.8)
	want := RotX(0.8)
	if d := maxAbsDiff(got, want); d > 1e-12 {
		t.Errorf("axis-angle mismatch %g", d)
	}
}
