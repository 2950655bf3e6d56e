package atoms

import (
	"math"

	"github.com/san-kum/atomsim/internal/linalg"
)

// BoxPBC is an orthogonal periodic cell. The cached inverse lengths are
// recomputed only by SetLengths so they can never drift from L.
type BoxPBC struct {
	L    linalg.Vec3
	invL linalg.Vec3
}

// NewBox returns a periodic cell with the given edge lengths. A box is
// enabled only when all three lengths are positive.
func NewBox(lx, ly, lz float64) *BoxPBC {
	b := &BoxPBC{}
	b.SetLengths(lx, ly, lz)
	return b
}

func (b *BoxPBC) SetLengths(lx, ly, lz float64) {
	b.L = linalg.Vec3{X: lx, Y: ly, Z: lz}
	b.invL = linalg.Vec3{}
	if b.Enabled() {
		b.invL = linalg.Vec3{X: 1 / lx, Y: 1 / ly, Z: 1 / lz}
	}
}

// Enabled reports whether periodic boundaries are active. A nil box counts
// as open boundaries.
func (b *BoxPBC) Enabled() bool {
	return b != nil && b.L.X > 0 && b.L.Y > 0 && b.L.Z > 0
}

func (b *BoxPBC) Volume() float64 {
	if !b.Enabled() {
		return 0
	}
	return b.L.X * b.L.Y * b.L.Z
}

// Wrap maps r into [0, L) per axis. No-op when the box is disabled.
func (b *BoxPBC) Wrap(r linalg.Vec3) linalg.Vec3 {
	if !b.Enabled() {
		return r
	}
	return linalg.Vec3{
		X: r.X - b.L.X*math.Floor(r.X*b.invL.X),
		Y: r.Y - b.L.Y*math.Floor(r.Y*b.invL.Y),
		Z: r.Z - b.L.Z*math.Floor(r.Z*b.invL.Z),
	}
}

// Delta returns the minimum-image displacement b-a, each component in
// (-L/2, L/2]. Antisymmetric: Delta(a,b) == Delta(b,a).Scale(-1).
func (b *BoxPBC) Delta(ri, rj linalg.Vec3) linalg.Vec3 {
	d := rj.Sub(ri)
	if !b.Enabled() {
		return d
	}
	return linalg.Vec3{
		X: d.X - b.L.X*math.Round(d.X*b.invL.X),
		Y: d.Y - b.L.Y*math.Round(d.Y*b.invL.Y),
		Z: d.Z - b.L.Z*math.Round(d.Z*b.invL.Z),
	}
}
