package integrators

import (
	"context"
	"math/rand"
	"testing"

	"github.com/san-kum/atomsim/internal/forces"
)

func BenchmarkLangevinStep(b *testing.B) {
	s := argonLattice(3, 5.0)
	model := forces.NewLJCoulomb()
	rng := rand.New(rand.NewSource(1))
	p := LangevinParams{Dt: 2, Steps: 1, Temp: 120, Gamma: 0.2}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Langevin(context.Background(), s, model, p, rng); err != nil {
			b.Fatal(err)
		}
		p.ForcesValid = true
	}
}

func BenchmarkVerletStep(b *testing.B) {
	s := argonLattice(3, 5.0)
	model := forces.NewLJCoulomb()
	p := VerletParams{Dt: 1, Steps: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Verlet(context.Background(), s, model, p); err != nil {
			b.Fatal(err)
		}
		p.ForcesValid = true
	}
}

func BenchmarkFIRE(b *testing.B) {
	p := DefaultFIREParams()
	p.Dt = 0.02
	p.DtMax = 0.5
	p.EpsF = 0.05

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := argonPair(4.5)
		if _, err := Minimize(context.Background(), s, forces.NewLJCoulomb(), p); err != nil {
			b.Fatal(err)
		}
	}
}
