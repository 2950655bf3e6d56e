package atoms

import (
	"errors"

	"github.com/san-kum/atomsim/internal/linalg"
)

// ErrInvalidState marks a State whose parallel arrays disagree with N.
// Integrator entry points check for it and abort before touching anything.
var ErrInvalidState = errors.New("atoms: invalid state")

// Edge is an undirected bond between two atom indices.
type Edge struct {
	I, J int
}

// State is the canonical simulation aggregate. Positions are in Angstrom,
// velocities in Angstrom/fs, masses in amu, charges in elementary charges.
// Type holds the atomic number Z and indexes force-field parameter tables.
type State struct {
	N    int
	X    []linalg.Vec3
	V    []linalg.Vec3
	F    []linalg.Vec3
	Q    []float64
	M    []float64
	Type []int

	Bonds []Edge
	E     EnergyTerms
	Box   *BoxPBC
}

// New allocates a zeroed state for n atoms.
func New(n int) *State {
	return &State{
		N:    n,
		X:    make([]linalg.Vec3, n),
		V:    make([]linalg.Vec3, n),
		F:    make([]linalg.Vec3, n),
		Q:    make([]float64, n),
		M:    make([]float64, n),
		Type: make([]int, n),
	}
}

// IsValid reports whether every parallel array has length N and N > 0.
func (s *State) IsValid() bool {
	if s == nil || s.N <= 0 {
		return false
	}
	return len(s.X) == s.N && len(s.V) == s.N && len(s.Q) == s.N &&
		len(s.M) == s.N && len(s.Type) == s.N
}

func (s *State) Clone() *State {
	c := New(s.N)
	copy(c.X, s.X)
	copy(c.V, s.V)
	copy(c.F, s.F)
	copy(c.Q, s.Q)
	copy(c.M, s.M)
	copy(c.Type, s.Type)
	c.Bonds = append([]Edge(nil), s.Bonds...)
	c.E = s.E
	if s.Box != nil {
		b := *s.Box
		c.Box = &b
	}
	return c
}

func (s *State) ZeroForces() {
	for i := range s.F {
		s.F[i] = linalg.Vec3{}
	}
}

func (s *State) TotalMass() float64 {
	m := 0.0
	for i := range s.M {
		m += s.M[i]
	}
	return m
}

func (s *State) CenterOfMass() linalg.Vec3 {
	var com linalg.Vec3
	total := 0.0
	for i := 0; i < s.N; i++ {
		com = com.Add(s.X[i].Scale(s.M[i]))
		total += s.M[i]
	}
	if total > 0 {
		com = com.Scale(1 / total)
	}
	return com
}

// CenterAtOrigin shifts all positions so the center of mass sits at the
// origin and returns the removed offset.
func (s *State) CenterAtOrigin() linalg.Vec3 {
	com := s.CenterOfMass()
	for i := range s.X {
		s.X[i] = s.X[i].Sub(com)
	}
	return com
}

// BoundingRadius returns the largest distance from center to any atom.
func (s *State) BoundingRadius(center linalg.Vec3) float64 {
	max := 0.0
	for i := 0; i < s.N; i++ {
		if r := s.X[i].Sub(center).Norm(); r > max {
			max = r
		}
	}
	return max
}

// Displacement returns the vector from atom j to atom i (xi - xj),
// minimum-imaged when the periodic box is enabled.
func (s *State) Displacement(i, j int) linalg.Vec3 {
	if s.Box.Enabled() {
		return s.Box.Delta(s.X[j], s.X[i])
	}
	return s.X[i].Sub(s.X[j])
}
