package main

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

const (
	defaultFundamentalHz = 1000.0
	maxHarmonicOrder     = 10

	// Below this the fundamental is treated as absent.
	minFundamentalPower = 1e-20
	// Below this an RMS level is treated as silence.
	silenceRMS = 1e-10
	// Gain reported when the output is silent.
	silentGainDB = -120.0
)

// Harmonic is one harmonic bin picked from the spectrum.
type Harmonic struct {
	Order int
	Freq  float64 // frequency of the chosen bin, Hz
	Bin   int
	Power float64
}

// HarmonicAnalysis is the spectral breakdown behind a THD figure.
type HarmonicAnalysis struct {
	FundamentalHz    float64
	FundamentalBin   int
	FundamentalFreq  float64
	FundamentalPower float64
	Harmonics        []Harmonic
	BinWidth         float64
}

// HarmonicPower returns the summed power of all harmonics.
func (h HarmonicAnalysis) HarmonicPower() float64 {
	var sum float64
	for _, hm := range h.Harmonics {
		sum += hm.Power
	}
	return sum
}

// THDPercent returns total harmonic distortion in percent, or 0 when the
// fundamental is missing.
func (h HarmonicAnalysis) THDPercent() float64 {
	if h.FundamentalPower < minFundamentalPower {
		return 0.0
	}
	return math.Sqrt(h.HarmonicPower()/h.FundamentalPower) * 100.0
}

// rms, root-mean-square level of the signal
func rms(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(samples, samples) / float64(len(samples)))
}

// gainDB returns the output level relative to the input in dB. A silent output
// yields silentGainDB.
func gainDB(rmsIn, rmsOut float64) float64 {
	if rmsOut > silenceRMS {
		return 20 * math.Log10(rmsOut/rmsIn)
	}
	return silentGainDB
}

// analyzeHarmonics, computes the unwindowed spectrum of the whole signal and
// picks the fundamental and harmonic bins nearest to their target frequencies
func analyzeHarmonics(samples []float64, sampleRate int, fundamentalHz float64) HarmonicAnalysis {
	n := len(samples)
	res := HarmonicAnalysis{FundamentalHz: fundamentalHz}
	if n == 0 || sampleRate <= 0 {
		return res
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, samples)

	magnitude := make([]float64, len(coeffs))
	for i, c := range coeffs {
		magnitude[i] = cmplx.Abs(c)
	}

	rate := float64(sampleRate)
	freqs := binFrequencies(n, rate)
	res.BinWidth = rate / float64(n)

	fundIdx := nearestBin(freqs, fundamentalHz)
	res.FundamentalBin = fundIdx
	res.FundamentalFreq = freqs[fundIdx]
	res.FundamentalPower = magnitude[fundIdx] * magnitude[fundIdx]

	nyquist := rate / 2
	for h := 2; h <= maxHarmonicOrder; h++ {
		hFreq := fundamentalHz * float64(h)
		if hFreq >= nyquist {
			break
		}
		idx := nearestBin(freqs, hFreq)
		res.Harmonics = append(res.Harmonics, Harmonic{
			Order: h,
			Freq:  freqs[idx],
			Bin:   idx,
			Power: magnitude[idx] * magnitude[idx],
		})
	}

	return res
}

// thdPercent returns the THD of samples in percent.
func thdPercent(samples []float64, sampleRate int, fundamentalHz float64) float64 {
	return analyzeHarmonics(samples, sampleRate, fundamentalHz).THDPercent()
}

// binFrequencies returns the centre frequency of each of the n/2+1 bins of a
// real FFT of length n.
func binFrequencies(n int, sampleRate float64) []float64 {
	freqs := make([]float64, n/2+1)
	for i := range freqs {
		freqs[i] = float64(i) / (float64(n) * (1.0 / sampleRate))
	}
	return freqs
}

// nearestBin returns the index of the bin closest to target. Ties go to the lower index.
func nearestBin(freqs []float64, target float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, f := range freqs {
		if d := math.Abs(f - target); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
