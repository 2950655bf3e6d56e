package forces

import (
	"sort"

	"github.com/san-kum/atomsim/internal/atoms"
)

// Quick-testing defaults, roughly C-C like. Not a production force field.
const (
	defaultBondK   = 310.0 // kcal/mol/A^2
	defaultBondR0  = 1.54  // A
	defaultAngleK  = 60.0  // kcal/mol/rad^2
	defaultAngle0  = 1.91  // rad, ~109.5 degrees
	defaultBarrier = 1.5   // kcal/mol, 3-fold C-C rotation
)

// Topology is the immutable bonded term list consumed by Bonded. Angles
// and torsions can be auto-derived from the bond edges; derivation walks
// sorted adjacency lists so term order is deterministic.
type Topology struct {
	Bonds     []Bond
	Angles    []Angle
	Torsions  []Torsion
	Impropers []Improper
}

// adjacency builds per-atom sorted neighbor lists from the bond edges.
func (t *Topology) adjacency() [][]int {
	n := 0
	for _, b := range t.Bonds {
		if b.I >= n {
			n = b.I + 1
		}
		if b.J >= n {
			n = b.J + 1
		}
	}
	adj := make([][]int, n)
	for _, b := range t.Bonds {
		adj[b.I] = append(adj[b.I], b.J)
		adj[b.J] = append(adj[b.J], b.I)
	}
	for i := range adj {
		sort.Ints(adj[i])
	}
	return adj
}

// DeriveAngles appends one angle term per i-j-k triple of bonded atoms,
// with uniform default parameters.
func (t *Topology) DeriveAngles() {
	adj := t.adjacency()
	for j, nbr := range adj {
		for a := 0; a < len(nbr); a++ {
			for b := a + 1; b < len(nbr); b++ {
				t.Angles = append(t.Angles, Angle{
					I: nbr[a], J: j, K: nbr[b],
					KTheta: defaultAngleK, Theta0: defaultAngle0,
				})
			}
		}
	}
}

// DeriveTorsions appends one torsion per i-j-k-l quadruple spanning each
// central bond j-k, with uniform default parameters.
func (t *Topology) DeriveTorsions() {
	adj := t.adjacency()
	for _, b := range t.Bonds {
		j, k := b.I, b.J
		for _, i := range adj[j] {
			if i == k {
				continue
			}
			for _, l := range adj[k] {
				if l == j || l == i {
					continue
				}
				t.Torsions = append(t.Torsions, Torsion{
					I: i, J: j, K: k, L: l,
					N: 3, VN: defaultBarrier, Gamma: 0,
				})
			}
		}
	}
}

// GenericBonded builds a complete bonded model from the state's bond
// edges, deriving angles and torsions with default parameters.
func GenericBonded(s *atoms.State) *Bonded {
	topo := Topology{}
	for _, e := range s.Bonds {
		topo.Bonds = append(topo.Bonds, Bond{
			I: e.I, J: e.J, K: defaultBondK, R0: defaultBondR0,
		})
	}
	topo.DeriveAngles()
	topo.DeriveTorsions()
	return &Bonded{Topo: topo}
}
