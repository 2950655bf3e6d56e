package align

import (
	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/linalg"
)

// Callback receives the interpolation progress in [0,1], the RMSD of the
// current frame against the reference, and the interpolated state. Used by
// visualization; not required for correctness. The state is reused across
// frames and must not be retained.
type Callback func(progress, rmsd float64, s *atoms.State)

// AnimatedAlign performs a Kabsch alignment of target onto reference and
// emits frames+1 intermediate configurations by interpolating the rotation
// linearly in its matrix entries between the identity and the final
// rotation. The intermediate matrices are deliberately not exact rotations
// (kept for comparison fidelity with the original animation); only the
// final frame is. A nil callback skips straight to the final application.
func AnimatedAlign(target, reference *atoms.State, frames int, fn Callback) Result {
	if frames < 1 {
		frames = 1
	}

	// Final alignment on a scratch copy; target stays untouched until the
	// animation completes.
	aligned := target.Clone()
	res := Kabsch(aligned, reference)

	if fn != nil && target.N == reference.N && target.N >= 2 {
		initial := target.Clone()
		initial.CenterAtOrigin()

		refCentered := reference.Clone()
		refCentered.CenterAtOrigin()

		identity := linalg.Identity()
		frame := atoms.New(initial.N)
		copy(frame.Type, initial.Type)
		copy(frame.M, initial.M)

		for step := 0; step <= frames; step++ {
			t := float64(step) / float64(frames)

			var rt linalg.Mat3
			for i := range rt {
				rt[i] = (1-t)*identity[i] + t*res.Rotation[i]
			}

			for i := 0; i < initial.N; i++ {
				frame.X[i] = rt.MulVec(initial.X[i])
			}
			fn(t, RMSD(frame, refCentered), frame)
		}
	}

	// Apply the exact result.
	copy(target.X, aligned.X)
	copy(target.V, aligned.V)
	return res
}
