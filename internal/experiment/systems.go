package experiment

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/config"
	"github.com/san-kum/atomsim/internal/forces"
	"github.com/san-kum/atomsim/internal/linalg"
)

const (
	massAr = 39.948
	massC  = 12.011
	massNa = 22.990
	massCl = 35.45

	latticeN       = 3    // argon-lattice cells per edge
	latticeSpacing = 5.3  // A
	gasAtoms       = 64   // argon-gas default count
	gasMinSep      = 3.0  // A, rejection threshold
	naclA          = 5.64 // A, rocksalt lattice constant
	ccBond         = 1.54 // A
	ccAngle        = 1.911 // rad, tetrahedral
	chainBeads     = 20
)

// argonPair places two argon atoms slightly outside the LJ minimum, a
// convenient target for minimization and two-body dynamics.
func argonPair(cfg *config.Config) (*atoms.State, forces.Model, error) {
	s := atoms.New(2)
	for i := range s.M {
		s.Type[i] = 18
		s.M[i] = massAr
	}
	s.X[1] = linalg.Vec3{X: 4.0}
	applyBox(s, cfg)
	return s, assembleModel(s, cfg), nil
}

// argonLattice builds an n^3 simple cubic lattice. With box lengths in
// the configuration it becomes a periodic crystal; open otherwise.
func argonLattice(cfg *config.Config) (*atoms.State, forces.Model, error) {
	n := latticeN
	s := atoms.New(n * n * n)
	i := 0
	for ix := 0; ix < n; ix++ {
		for iy := 0; iy < n; iy++ {
			for iz := 0; iz < n; iz++ {
				s.X[i] = linalg.Vec3{
					X: float64(ix) * latticeSpacing,
					Y: float64(iy) * latticeSpacing,
					Z: float64(iz) * latticeSpacing,
				}
				s.Type[i] = 18
				s.M[i] = massAr
				i++
			}
		}
	}
	applyBox(s, cfg)
	return s, assembleModel(s, cfg), nil
}

// argonGas scatters atoms uniformly in the box, rejecting candidates
// closer than gasMinSep to any placed atom so the first force
// evaluation does not blow up.
func argonGas(cfg *config.Config) (*atoms.State, forces.Model, error) {
	b := cfg.System.Box
	if b[0] <= 0 || b[1] <= 0 || b[2] <= 0 {
		return nil, nil, fmt.Errorf("argon-gas: system.box must be set")
	}
	rng := rand.New(rand.NewSource(cfg.Run.Seed))

	s := atoms.New(gasAtoms)
	s.Box = atoms.NewBox(b[0], b[1], b[2])

	const maxTries = 10000
	for i := 0; i < s.N; i++ {
		placed := false
		for try := 0; try < maxTries; try++ {
			cand := linalg.Vec3{
				X: rng.Float64() * b[0],
				Y: rng.Float64() * b[1],
				Z: rng.Float64() * b[2],
			}
			ok := true
			for j := 0; j < i; j++ {
				if s.Box.Delta(s.X[j], cand).Norm() < gasMinSep {
					ok = false
					break
				}
			}
			if ok {
				s.X[i] = cand
				placed = true
				break
			}
		}
		if !placed {
			return nil, nil, fmt.Errorf("argon-gas: could not place atom %d of %d in %gx%gx%g box",
				i+1, s.N, b[0], b[1], b[2])
		}
		s.Type[i] = 18
		s.M[i] = massAr
	}
	return s, assembleModel(s, cfg), nil
}

// naclRocksalt is the 8-ion conventional NaCl cell: Na on an FCC
// lattice, Cl on the interpenetrating one, nearest-neighbor distance
// a/2 = 2.82 A. The cell is always periodic at its own lattice
// constant.
func naclRocksalt(cfg *config.Config) (*atoms.State, forces.Model, error) {
	a := naclA
	h := a / 2
	na := []linalg.Vec3{
		{}, {X: h, Y: h}, {X: h, Z: h}, {Y: h, Z: h},
	}
	cl := []linalg.Vec3{
		{X: h}, {Y: h}, {Z: h}, {X: h, Y: h, Z: h},
	}

	s := atoms.New(8)
	for i, p := range na {
		s.X[i] = p
		s.Type[i] = 11
		s.M[i] = massNa
		s.Q[i] = 1
	}
	for i, p := range cl {
		s.X[4+i] = p
		s.Type[4+i] = 17
		s.M[4+i] = massCl
		s.Q[4+i] = -1
	}
	s.Box = atoms.NewBox(a, a, a)
	return s, assembleModel(s, cfg), nil
}

// butane is the four-carbon backbone in a zig-zag conformation, bonds
// declared and angles/torsions derived from them.
func butane(cfg *config.Config) (*atoms.State, forces.Model, error) {
	s := atoms.New(4)
	sin := math.Sin(ccAngle / 2)
	cos := math.Cos(ccAngle / 2)
	for i := 0; i < 4; i++ {
		s.X[i] = linalg.Vec3{
			X: float64(i) * ccBond * sin,
			Y: float64(i%2) * ccBond * cos,
		}
		s.Type[i] = 6
		s.M[i] = massC
	}
	s.Bonds = []atoms.Edge{{I: 0, J: 1}, {I: 1, J: 2}, {I: 2, J: 3}}
	applyBox(s, cfg)
	return s, assembleModel(s, cfg), nil
}

// polymerChain is a freely-jointed bead chain: carbon beads on a
// zig-zag backbone, consecutive bonds, and a weak positional restraint
// holding the coil near its starting shape.
func polymerChain(cfg *config.Config) (*atoms.State, forces.Model, error) {
	s := atoms.New(chainBeads)
	sin := math.Sin(ccAngle / 2)
	cos := math.Cos(ccAngle / 2)
	s.Bonds = make([]atoms.Edge, 0, chainBeads-1)
	for i := 0; i < chainBeads; i++ {
		s.X[i] = linalg.Vec3{
			X: float64(i) * ccBond * sin,
			Y: float64(i%2) * ccBond * cos,
		}
		s.Type[i] = 6
		s.M[i] = massC
		if i > 0 {
			s.Bonds = append(s.Bonds, atoms.Edge{I: i - 1, J: i})
		}
	}
	applyBox(s, cfg)
	return s, assembleModel(s, cfg), nil
}
