// Package analysis provides frequency-domain post-processing of solved
// trajectories.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data using an iterative
// radix-2 decimation-in-time algorithm. len(data) must be a power of two;
// use [PowerSpectrum] for arbitrary lengths.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n == 0 {
		return nil
	}
	if n&(n-1) != 0 {
		panic("analysis: fft requires power-of-two length")
	}

	out := make([]complex128, n)
	for i, v := range data {
		out[bitReverse(i, n)] = complex(v, 0)
	}

	for size := 2; size <= n; size *= 2 {
		half := size / 2
		step := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := 0; k < half; k++ {
				even := out[start+k]
				odd := w * out[start+k+half]
				out[start+k] = even + odd
				out[start+k+half] = even - odd
				w *= step
			}
		}
	}

	return out
}

func bitReverse(i, n int) int {
	rev := 0
	for n >>= 1; n > 0; n >>= 1 {
		rev = rev<<1 | i&1
		i >>= 1
	}
	return rev
}

// PowerSpectrum returns the magnitude of the positive-frequency half of the
// transform, zero-padding data up to the next power of two.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency returns the frequency (in cycles per time unit) of the
// strongest non-DC component of data sampled over the given duration.
func DominantFrequency(data []float64, duration float64) float64 {
	if duration <= 0 || len(data) < 2 {
		return 0
	}

	ps := PowerSpectrum(data)
	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	// Bin width accounts for the zero padding inside PowerSpectrum.
	padded := 2 * len(ps)
	sampleRate := float64(len(data)) / duration
	return float64(maxIdx) * sampleRate / float64(padded)
}
