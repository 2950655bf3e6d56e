package forces

import (
	"testing"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/linalg"
)

func chainState(n int) *atoms.State {
	s := atoms.New(n)
	for i := 0; i < n; i++ {
		s.Type[i] = 6
		s.M[i] = 12.011
		s.X[i] = linalg.Vec3{X: 1.54 * float64(i)}
	}
	for i := 0; i+1 < n; i++ {
		s.Bonds = append(s.Bonds, atoms.Edge{I: i, J: i + 1})
	}
	return s
}

func TestDeriveAnglesChain(t *testing.T) {
	s := chainState(4)
	m := GenericBonded(s)

	if got := len(m.Topo.Bonds); got != 3 {
		t.Errorf("bonds = %d, want 3", got)
	}
	// A 4-atom chain has angles at atoms 1 and 2.
	if got := len(m.Topo.Angles); got != 2 {
		t.Errorf("angles = %d, want 2", got)
	}
	// And exactly one 0-1-2-3 torsion.
	if got := len(m.Topo.Torsions); got != 1 {
		t.Fatalf("torsions = %d, want 1", got)
	}
	tor := m.Topo.Torsions[0]
	if tor.I != 0 || tor.J != 1 || tor.K != 2 || tor.L != 3 {
		t.Errorf("torsion quadruple = %+v", tor)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	a := GenericBonded(chainState(6))
	b := GenericBonded(chainState(6))

	if len(a.Topo.Angles) != len(b.Topo.Angles) {
		t.Fatal("angle counts differ between identical derivations")
	}
	for i := range a.Topo.Angles {
		if a.Topo.Angles[i] != b.Topo.Angles[i] {
			t.Fatalf("angle %d differs: %+v vs %+v", i, a.Topo.Angles[i], b.Topo.Angles[i])
		}
	}
	for i := range a.Topo.Torsions {
		if a.Topo.Torsions[i] != b.Topo.Torsions[i] {
			t.Fatalf("torsion %d differs", i)
		}
	}
}

func TestBranchedAngles(t *testing.T) {
	// Central atom 0 bonded to 1,2,3: three angle triples, no torsions
	// through a terminal bond.
	s := atoms.New(4)
	for i := range s.Type {
		s.Type[i] = 6
		s.M[i] = 12.011
	}
	s.X[1] = linalg.Vec3{X: 1.5}
	s.X[2] = linalg.Vec3{Y: 1.5}
	s.X[3] = linalg.Vec3{Z: 1.5}
	s.Bonds = []atoms.Edge{{I: 0, J: 1}, {I: 0, J: 2}, {I: 0, J: 3}}

	m := GenericBonded(s)
	if got := len(m.Topo.Angles); got != 3 {
		t.Errorf("angles = %d, want 3", got)
	}
	if got := len(m.Topo.Torsions); got != 0 {
		t.Errorf("torsions = %d, want 0", got)
	}
}

func TestRestraint(t *testing.T) {
	s := chainState(3)
	r := NewRestraint(s, 5.0)

	// At the reference there is no energy or force.
	if err := r.Evaluate(s); err != nil {
		t.Fatal(err)
	}
	if s.E.External != 0 {
		t.Errorf("restraint energy at reference = %g", s.E.External)
	}

	s.X[0].Y += 2
	if err := r.Evaluate(s); err != nil {
		t.Fatal(err)
	}
	// U = K*d^2 = 5*4, F = -2K*d = -20 toward the reference.
	if s.E.External != 20 {
		t.Errorf("restraint energy = %g, want 20", s.E.External)
	}
	if s.F[0].Y != -20 {
		t.Errorf("restraint force = %g, want -20", s.F[0].Y)
	}
}
