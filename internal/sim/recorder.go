package sim

import (
	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/linalg"
	"github.com/san-kum/atomsim/internal/thermo"
)

// Frame is one recorded trajectory snapshot.
type Frame struct {
	Step int
	X    []linalg.Vec3
	V    []linalg.Vec3 // nil unless velocity recording is on
	E    atoms.EnergyTerms
	KE   float64
	Temp float64
}

// Recorder is an Observer that copies the state every Stride steps.
// Frames accumulate in memory for storage and reporting.
type Recorder struct {
	Stride     int
	Velocities bool

	frames []Frame
}

func NewRecorder(stride int) *Recorder {
	if stride < 1 {
		stride = 1
	}
	return &Recorder{Stride: stride}
}

func (r *Recorder) OnStep(step int, s *atoms.State) {
	if step%r.Stride != 0 {
		return
	}
	f := Frame{
		Step: step,
		X:    make([]linalg.Vec3, s.N),
		E:    s.E,
		KE:   thermo.KineticEnergy(s),
		Temp: thermo.Temperature(s, 0),
	}
	copy(f.X, s.X)
	if r.Velocities {
		f.V = make([]linalg.Vec3, s.N)
		copy(f.V, s.V)
	}
	r.frames = append(r.frames, f)
}

func (r *Recorder) Frames() []Frame { return r.frames }

func (r *Recorder) Reset() { r.frames = nil }

// Energies returns the per-frame total energy (potential + kinetic),
// suited to drift plots and heat-capacity estimates.
func (r *Recorder) Energies() []float64 {
	out := make([]float64, len(r.frames))
	for i, f := range r.frames {
		out[i] = f.E.Total() + f.KE
	}
	return out
}

// Temperatures returns the per-frame instantaneous temperature.
func (r *Recorder) Temperatures() []float64 {
	out := make([]float64, len(r.frames))
	for i, f := range r.frames {
		out[i] = f.Temp
	}
	return out
}
