package thermo

import (
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/atomsim/internal/linalg"
)

// Autocorrelation returns the normalized autocorrelation function of a
// scalar series, computed via FFT: mean-subtract, zero-pad to 2n, multiply
// by the conjugate spectrum, invert, and normalize so acf[0] == 1. The
// lag-k estimate uses the unbiased 1/(n-k) counting.
func Autocorrelation(series []float64) []float64 {
	n := len(series)
	if n < 2 {
		return nil
	}

	mean := stat.Mean(series, nil)
	padded := make([]float64, 2*n)
	for i, x := range series {
		padded[i] = x - mean
	}

	fft := fourier.NewFFT(len(padded))
	coeff := fft.Coefficients(nil, padded)
	for i, c := range coeff {
		re := real(c)
		im := imag(c)
		coeff[i] = complex(re*re+im*im, 0)
	}
	raw := fft.Sequence(nil, coeff)

	acf := make([]float64, n)
	if raw[0] == 0 {
		return acf
	}
	for k := 0; k < n; k++ {
		// Unbiased lag counting, normalized by the zero-lag variance.
		acf[k] = (raw[k] / float64(n-k)) / (raw[0] / float64(n))
	}
	return acf
}

// VelocityACF computes the scalar velocity autocorrelation function from
// stored per-frame velocities, averaged over atoms and components.
func VelocityACF(frames [][]linalg.Vec3) []float64 {
	if len(frames) < 2 || len(frames[0]) == 0 {
		return nil
	}
	nAtoms := len(frames[0])
	nFrames := len(frames)

	sum := make([]float64, nFrames)
	series := make([]float64, nFrames)
	for i := 0; i < nAtoms; i++ {
		for _, axis := range []func(linalg.Vec3) float64{
			func(v linalg.Vec3) float64 { return v.X },
			func(v linalg.Vec3) float64 { return v.Y },
			func(v linalg.Vec3) float64 { return v.Z },
		} {
			for f := 0; f < nFrames; f++ {
				series[f] = axis(frames[f][i])
			}
			acf := Autocorrelation(series)
			for k := range acf {
				sum[k] += acf[k]
			}
		}
	}

	norm := float64(3 * nAtoms)
	for k := range sum {
		sum[k] /= norm
	}
	return sum
}
