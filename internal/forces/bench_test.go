package forces

import (
	"testing"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/linalg"
)

func latticeState(n int) *atoms.State {
	s := atoms.New(n * n * n)
	idx := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				s.Type[idx] = 18
				s.M[idx] = 39.948
				s.X[idx] = linalg.Vec3{X: 3.8 * float64(i), Y: 3.8 * float64(j), Z: 3.8 * float64(k)}
				idx++
			}
		}
	}
	return s
}

func BenchmarkLJCoulomb64(b *testing.B) {
	s := latticeState(4)
	m := NewLJCoulomb()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Evaluate(s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLJCoulombPBC64(b *testing.B) {
	s := latticeState(4)
	s.Box = atoms.NewBox(15.2, 15.2, 15.2)
	m := NewLJCoulomb()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Evaluate(s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenericBonded(b *testing.B) {
	s := chainState(32)
	m := GenericBonded(s)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Evaluate(s); err != nil {
			b.Fatal(err)
		}
	}
}
