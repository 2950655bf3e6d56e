package forces

import (
	"math"
	"testing"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/linalg"
)

func TestHarmonicBond(t *testing.T) {
	s := atoms.New(2)
	s.X[1] = linalg.Vec3{X: 2.0}

	m := &Bonded{Topo: Topology{
		Bonds: []Bond{{I: 0, J: 1, K: 100, R0: 1.5}},
	}}
	if err := m.Evaluate(s); err != nil {
		t.Fatal(err)
	}

	// U = k(r-r0)^2 = 100 * 0.25
	if math.Abs(s.E.Bond-25) > 1e-12 {
		t.Errorf("bond energy = %f, want 25", s.E.Bond)
	}
	// F = -2k(r-r0) = -100 along the bond: atoms pulled together.
	if math.Abs(s.F[0].X-100) > 1e-9 || math.Abs(s.F[1].X+100) > 1e-9 {
		t.Errorf("bond forces = %v, %v", s.F[0], s.F[1])
	}
}

func TestAngleAtEquilibrium(t *testing.T) {
	s := atoms.New(3)
	// 90 degree angle with vertex at atom 1.
	s.X[0] = linalg.Vec3{X: 1}
	s.X[2] = linalg.Vec3{Y: 1}

	m := &Bonded{Topo: Topology{
		Angles: []Angle{{I: 0, J: 1, K: 2, KTheta: 50, Theta0: math.Pi / 2}},
	}}
	if err := m.Evaluate(s); err != nil {
		t.Fatal(err)
	}

	if math.Abs(s.E.Angle) > 1e-12 {
		t.Errorf("energy at equilibrium angle = %g", s.E.Angle)
	}
	for i := range s.F {
		if s.F[i].Norm() > 1e-9 {
			t.Errorf("atom %d force %v at equilibrium", i, s.F[i])
		}
	}
}

func TestLinearAngleSkipped(t *testing.T) {
	s := atoms.New(3)
	s.X[0] = linalg.Vec3{X: -1}
	s.X[2] = linalg.Vec3{X: 1}

	m := &Bonded{Topo: Topology{
		Angles: []Angle{{I: 0, J: 1, K: 2, KTheta: 50, Theta0: 1.9}},
	}}
	if err := m.Evaluate(s); err != nil {
		t.Fatal(err)
	}
	// Energy still accumulates, but the singular force term is skipped.
	if s.E.Angle <= 0 {
		t.Error("linear angle should still contribute energy")
	}
	for i := range s.F {
		if !s.F[i].IsFinite() {
			t.Fatal("non-finite force from a linear angle")
		}
		if s.F[i].Norm() > 1e-9 {
			t.Errorf("linear angle should contribute no force, got %v", s.F[i])
		}
	}
}

func TestDihedralAngleKnownGeometries(t *testing.T) {
	ri := linalg.Vec3{X: 1, Y: 0, Z: 0}
	rj := linalg.Vec3{}
	rk := linalg.Vec3{Y: 1}

	cases := []struct {
		name string
		rl   linalg.Vec3
		want float64
	}{
		{"cis", linalg.Vec3{X: 1, Y: 1}, 0},
		{"trans", linalg.Vec3{X: -1, Y: 1}, math.Pi},
		{"gauche+", linalg.Vec3{Y: 1, Z: -1}, math.Pi / 2},
		{"gauche-", linalg.Vec3{Y: 1, Z: 1}, -math.Pi / 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			phi := DihedralAngle(ri, rj, rk, tc.rl)
			diff := math.Abs(phi - tc.want)
			if diff > math.Pi {
				diff = 2*math.Pi - diff
			}
			if diff > 1e-12 {
				t.Errorf("phi = %f, want %f", phi, tc.want)
			}
		})
	}
}

// torsionEnergy evaluates the model on a fresh copy for gradient checks.
func torsionEnergy(m *Bonded, x []linalg.Vec3) float64 {
	s := atoms.New(len(x))
	copy(s.X, x)
	_ = m.Evaluate(s)
	return s.E.Total()
}

func TestTorsionNumericalGradient(t *testing.T) {
	m := &Bonded{Topo: Topology{
		Torsions: []Torsion{{I: 0, J: 1, K: 2, L: 3, N: 3, VN: 1.5, Gamma: 0.4}},
	}}

	x := []linalg.Vec3{
		{X: 1.1, Y: 0.2, Z: -0.1},
		{X: 0, Y: 0, Z: 0},
		{X: 0.1, Y: 1.4, Z: 0.2},
		{X: -0.9, Y: 1.6, Z: 0.8},
	}

	s := atoms.New(4)
	copy(s.X, x)
	if err := m.Evaluate(s); err != nil {
		t.Fatal(err)
	}

	h := 1e-6
	for i := 0; i < 4; i++ {
		for axis := 0; axis < 3; axis++ {
			bump := func(sign float64) float64 {
				xs := make([]linalg.Vec3, 4)
				copy(xs, x)
				switch axis {
				case 0:
					xs[i].X += sign * h
				case 1:
					xs[i].Y += sign * h
				case 2:
					xs[i].Z += sign * h
				}
				return torsionEnergy(m, xs)
			}
			numeric := -(bump(1) - bump(-1)) / (2 * h)

			var analytic float64
			switch axis {
			case 0:
				analytic = s.F[i].X
			case 1:
				analytic = s.F[i].Y
			case 2:
				analytic = s.F[i].Z
			}
			if math.Abs(analytic-numeric) > 1e-4 {
				t.Errorf("atom %d axis %d: force %g vs -dU %g", i, axis, analytic, numeric)
			}
		}
	}
}

func TestImproperWrap(t *testing.T) {
	m := &Bonded{Topo: Topology{
		Impropers: []Improper{{I: 0, J: 1, K: 2, L: 3, KPsi: 20, Psi0: 3.0}},
	}}

	s := atoms.New(4)
	s.X[0] = linalg.Vec3{X: 1, Y: 0.1}
	s.X[2] = linalg.Vec3{Y: 1}
	s.X[3] = linalg.Vec3{X: -0.8, Y: 1.2, Z: 0.1}

	if err := m.Evaluate(s); err != nil {
		t.Fatal(err)
	}
	// Wrapped difference is always within (-pi, pi], bounding the energy.
	if s.E.Torsion > 20*math.Pi*math.Pi+1e-9 {
		t.Errorf("improper energy %f exceeds wrap bound", s.E.Torsion)
	}
}

func TestCompositeAccumulates(t *testing.T) {
	s := atoms.New(2)
	s.Type[0], s.Type[1] = 18, 18
	s.M[0], s.M[1] = 39.948, 39.948
	s.X[1] = linalg.Vec3{X: 3.9}
	s.Bonds = []atoms.Edge{{I: 0, J: 1}}

	bonded := &Bonded{Topo: Topology{
		Bonds: []Bond{{I: 0, J: 1, K: 10, R0: 3.5}},
	}}
	model := Composite{NewLJCoulomb(), bonded}

	if err := model.Evaluate(s); err != nil {
		t.Fatal(err)
	}
	if s.E.VdW == 0 || s.E.Bond == 0 {
		t.Errorf("composite should fill both terms: %+v", s.E)
	}

	// A second evaluation must not double-count.
	first := s.E.Total()
	if err := model.Evaluate(s); err != nil {
		t.Fatal(err)
	}
	if math.Abs(s.E.Total()-first) > 1e-12 {
		t.Error("repeat evaluation changed the energy")
	}
}
