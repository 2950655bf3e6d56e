package thermo

import (
	"math"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/linalg"
)

// OnlineStats is Welford's numerically stable running mean/variance.
type OnlineStats struct {
	n    int
	mean float64
	m2   float64
}

func (o *OnlineStats) Add(x float64) {
	o.n++
	delta := x - o.mean
	o.mean += delta / float64(o.n)
	o.m2 += delta * (x - o.mean)
}

func (o *OnlineStats) Mean() float64 { return o.mean }

// Var returns the sample variance (n-1 denominator).
func (o *OnlineStats) Var() float64 {
	if o.n < 2 {
		return 0
	}
	return o.m2 / float64(o.n-1)
}

func (o *OnlineStats) Std() float64 { return math.Sqrt(o.Var()) }
func (o *OnlineStats) Count() int   { return o.n }

// Vec3Stats tracks per-component Welford statistics.
type Vec3Stats struct {
	n    int
	mean linalg.Vec3
	m2   linalg.Vec3
}

func (o *Vec3Stats) Add(v linalg.Vec3) {
	o.n++
	delta := v.Sub(o.mean)
	o.mean = o.mean.Add(delta.Scale(1 / float64(o.n)))
	d2 := v.Sub(o.mean)
	o.m2.X += delta.X * d2.X
	o.m2.Y += delta.Y * d2.Y
	o.m2.Z += delta.Z * d2.Z
}

func (o *Vec3Stats) Mean() linalg.Vec3 { return o.mean }

func (o *Vec3Stats) Var() linalg.Vec3 {
	if o.n < 2 {
		return linalg.Vec3{}
	}
	return o.m2.Scale(1 / float64(o.n-1))
}

func (o *Vec3Stats) TotalVar() float64 {
	v := o.Var()
	return v.X + v.Y + v.Z
}

// StationarityGate declares a series stationary after K consecutive
// samples landed within 3 sigma (plus a floor) of the running mean.
type StationarityGate struct {
	EpsMean float64
	K       int

	consecutive int
}

func (g *StationarityGate) Test(stats *OnlineStats, sample float64) bool {
	k := g.K
	if k == 0 {
		k = 10
	}
	if math.Abs(sample-stats.Mean()) < 3*stats.Std()+g.EpsMean {
		g.consecutive++
	} else {
		g.consecutive = 0
	}
	return g.consecutive >= k
}

func (g *StationarityGate) Reset() { g.consecutive = 0 }

// Tracker accumulates per-term energy statistics over a trajectory and
// gates on the total for stationarity.
type Tracker struct {
	Total OnlineStats
	Bond  OnlineStats
	VdW   OnlineStats
	Coul  OnlineStats

	Gate StationarityGate
}

func (t *Tracker) Observe(s *atoms.State) {
	t.Total.Add(s.E.Total())
	t.Bond.Add(s.E.Bond)
	t.VdW.Add(s.E.VdW)
	t.Coul.Add(s.E.Coulomb)
}

func (t *Tracker) Stationary(s *atoms.State) bool {
	return t.Gate.Test(&t.Total, s.E.Total())
}
