package analysis

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/san-kum/tripend/internal/dynamo"
)

// Spectrum is the one-sided amplitude spectrum of a real signal.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum transforms data sampled every sampleDt seconds. Any length
// is accepted.
func PowerSpectrum(data []float64, sampleDt float64) (*Spectrum, error) {
	if len(data) < 2 || !(sampleDt > 0) {
		return nil, fmt.Errorf("%w: need at least 2 samples and positive spacing", dynamo.ErrInvalidArgument)
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	fft := fourier.NewFFT(len(data))
	coeff := fft.Coefficients(nil, centred)

	s := &Spectrum{
		Freqs: make([]float64, len(coeff)),
		Power: make([]float64, len(coeff)),
	}
	for i, c := range coeff {
		s.Freqs[i] = fft.Freq(i) / sampleDt
		s.Power[i] = cmplx.Abs(c)
	}
	return s, nil
}

// Dominant returns the frequency with the most power, ignoring DC.
func (s *Spectrum) Dominant() float64 {
	best := 0
	for i := 1; i < len(s.Power); i++ {
		if best == 0 || s.Power[i] > s.Power[best] {
			best = i
		}
	}
	return s.Freqs[best]
}
