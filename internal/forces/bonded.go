package forces

import (
	"math"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/linalg"
)

// Bond is a harmonic bond term: U = K*(r - R0)^2.
type Bond struct {
	I, J  int
	K, R0 float64
}

// Angle is a harmonic angle term with J at the vertex:
// U = KTheta*(theta - Theta0)^2.
type Angle struct {
	I, J, K int
	KTheta  float64
	Theta0  float64
}

// Torsion is a periodic dihedral term over atoms I-J-K-L:
// U = VN*(1 + cos(N*phi - Gamma)).
type Torsion struct {
	I, J, K, L int
	N          int
	VN         float64
	Gamma      float64
}

// Improper is a harmonic out-of-plane term reusing the four-atom dihedral
// machinery: U = KPsi*(psi - Psi0)^2 with the difference wrapped into
// (-pi, pi].
type Improper struct {
	I, J, K, L int
	KPsi       float64
	Psi0       float64
}

// Bonded evaluates all bonded terms of a topology. Degenerate geometry
// (near-zero bond vectors, linear angles, collapsed dihedral planes) is
// recovered by skipping the offending term, never by failing.
type Bonded struct {
	Topo Topology
}

func (m *Bonded) Evaluate(s *atoms.State) error {
	s.ZeroForces()
	s.E.Clear()
	return m.AddTo(s)
}

func (m *Bonded) AddTo(s *atoms.State) error {
	m.addBonds(s)
	m.addAngles(s)
	m.addTorsions(s)
	m.addImpropers(s)
	return checkFinite(s)
}

func (m *Bonded) addBonds(s *atoms.State) {
	for _, b := range m.Topo.Bonds {
		rij := s.X[b.I].Sub(s.X[b.J])
		r := rij.Norm()
		dr := r - b.R0
		s.E.Bond += b.K * dr * dr
		if r < 1e-12 {
			continue
		}
		f := rij.Scale(-2 * b.K * dr / r)
		s.F[b.I] = s.F[b.I].Add(f)
		s.F[b.J] = s.F[b.J].Sub(f)
	}
}

func (m *Bonded) addAngles(s *atoms.State) {
	for _, a := range m.Topo.Angles {
		rij := s.X[a.I].Sub(s.X[a.J])
		rkj := s.X[a.K].Sub(s.X[a.J])
		lij := rij.Norm()
		lkj := rkj.Norm()
		if lij < 1e-10 || lkj < 1e-10 {
			continue
		}

		cosT := rij.Dot(rkj) / (lij * lkj)
		cosT = math.Max(-1, math.Min(1, cosT))
		theta := math.Acos(cosT)
		dt := theta - a.Theta0
		s.E.Angle += a.KTheta * dt * dt

		sinT := math.Sin(theta)
		if math.Abs(sinT) < 1e-6 {
			// Linear angle: the gradient denominator vanishes.
			continue
		}
		k := -2 * a.KTheta * dt / sinT

		fi := rkj.Scale(1 / (lij * lkj)).Sub(rij.Scale(cosT / (lij * lij))).Scale(k)
		fk := rij.Scale(1 / (lij * lkj)).Sub(rkj.Scale(cosT / (lkj * lkj))).Scale(k)
		fj := fi.Add(fk).Scale(-1)

		s.F[a.I] = s.F[a.I].Add(fi)
		s.F[a.J] = s.F[a.J].Add(fj)
		s.F[a.K] = s.F[a.K].Add(fk)
	}
}

func (m *Bonded) addTorsions(s *atoms.State) {
	for _, d := range m.Topo.Torsions {
		phi := DihedralAngle(s.X[d.I], s.X[d.J], s.X[d.K], s.X[d.L])
		arg := float64(d.N)*phi - d.Gamma
		s.E.Torsion += d.VN * (1 + math.Cos(arg))

		dUdPhi := -d.VN * float64(d.N) * math.Sin(arg)
		fi, fj, fk, fl := dihedralForces(s.X[d.I], s.X[d.J], s.X[d.K], s.X[d.L], dUdPhi)
		s.F[d.I] = s.F[d.I].Add(fi)
		s.F[d.J] = s.F[d.J].Add(fj)
		s.F[d.K] = s.F[d.K].Add(fk)
		s.F[d.L] = s.F[d.L].Add(fl)
	}
}

func (m *Bonded) addImpropers(s *atoms.State) {
	for _, im := range m.Topo.Impropers {
		psi := DihedralAngle(s.X[im.I], s.X[im.J], s.X[im.K], s.X[im.L])
		dpsi := psi - im.Psi0
		for dpsi > math.Pi {
			dpsi -= 2 * math.Pi
		}
		for dpsi <= -math.Pi {
			dpsi += 2 * math.Pi
		}
		// Impropers accumulate into the torsion ledger term.
		s.E.Torsion += im.KPsi * dpsi * dpsi

		dUdPhi := 2 * im.KPsi * dpsi
		fi, fj, fk, fl := dihedralForces(s.X[im.I], s.X[im.J], s.X[im.K], s.X[im.L], dUdPhi)
		s.F[im.I] = s.F[im.I].Add(fi)
		s.F[im.J] = s.F[im.J].Add(fj)
		s.F[im.K] = s.F[im.K].Add(fk)
		s.F[im.L] = s.F[im.L].Add(fl)
	}
}

// DihedralAngle returns phi in [-pi, pi] for atoms i-j-k-l. Looking down
// the j->k axis, phi > 0 for clockwise rotation of l.
func DihedralAngle(ri, rj, rk, rl linalg.Vec3) float64 {
	b1 := rj.Sub(ri)
	b2 := rk.Sub(rj)
	b3 := rl.Sub(rk)

	n1 := b1.Cross(b2)
	n2 := b2.Cross(b3)

	y := b2.Dot(n1.Cross(n2)) / b2.Norm()
	x := n1.Dot(n2)
	return math.Atan2(y, x)
}

// dihedralForces distributes -dU/dphi to the four atoms using the
// Blondel-Karplus closed-form gradient.
func dihedralForces(ri, rj, rk, rl linalg.Vec3, dUdPhi float64) (fi, fj, fk, fl linalg.Vec3) {
	b1 := rj.Sub(ri)
	b2 := rk.Sub(rj)
	b3 := rl.Sub(rk)

	r1 := b1.Norm()
	r2 := b2.Norm()
	r3 := b3.Norm()
	if r1 < 1e-10 || r2 < 1e-10 || r3 < 1e-10 {
		return
	}

	n1 := b1.Cross(b2)
	n2 := b2.Cross(b3)
	n1sq := n1.Norm2()
	n2sq := n2.Norm2()
	if n1sq < 1e-12 || n2sq < 1e-12 {
		return
	}

	cos1 := b1.Dot(b2) / (r1 * r2)
	cos2 := b2.Dot(b3) / (r2 * r3)

	a1 := -r2 / n1sq
	a2 := (r2 - r1*cos1) / (r2 * n1sq)
	a3 := cos1 / (r2 * n1sq)
	a4 := cos2 / (r2 * n2sq)
	a5 := (r2 - r3*cos2) / (r2 * n2sq)
	a6 := r2 / n2sq

	fi = n1.Scale(a1 * dUdPhi)
	fj = n1.Scale(a2 * dUdPhi).Add(n2.Scale(a4 * dUdPhi))
	fk = n1.Scale(-a3 * dUdPhi).Add(n2.Scale(a5 * dUdPhi))
	fl = n2.Scale(a6 * dUdPhi)
	return
}
