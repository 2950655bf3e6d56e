package viz

import (
	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/linalg"
)

// MoleculeWireframe builds the drawable form of a state: every atom as
// a point, every bond as an edge, and the periodic box as a wire cube,
// all recentered on the center of mass so rotation pivots through the
// system.
func MoleculeWireframe(s *atoms.State) *Wireframe {
	w := &Wireframe{}
	if s == nil || s.N == 0 {
		return w
	}
	com := s.CenterOfMass()

	for i := 0; i < s.N; i++ {
		w.AddPoint(s.X[i].Sub(com))
	}
	for _, b := range s.Bonds {
		if b.I < 0 || b.J < 0 || b.I >= s.N || b.J >= s.N {
			continue
		}
		w.AddEdge(s.X[b.I].Sub(com), s.X[b.J].Sub(com))
	}

	if s.Box.Enabled() {
		addBoxEdges(w, s.Box.L, com)
	}
	return w
}

func addBoxEdges(w *Wireframe, l linalg.Vec3, com linalg.Vec3) {
	corners := [8]linalg.Vec3{
		{},
		{X: l.X},
		{X: l.X, Y: l.Y},
		{Y: l.Y},
		{Z: l.Z},
		{X: l.X, Z: l.Z},
		{X: l.X, Y: l.Y, Z: l.Z},
		{Y: l.Y, Z: l.Z},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		w.AddEdge(corners[e[0]].Sub(com), corners[e[1]].Sub(com))
	}
}

// FitCamera picks a zoom that brings the whole system into the
// default viewing volume.
func FitCamera(cam *Camera, s *atoms.State) {
	if cam == nil || s == nil || s.N == 0 {
		return
	}
	r := s.BoundingRadius(s.CenterOfMass())
	if s.Box.Enabled() {
		if br := s.Box.L.Norm() / 2; br > r {
			r = br
		}
	}
	if r <= 0 {
		return
	}
	cam.Zoom = 1.0 / r
}
