package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrDegenerateInput is returned when the reference signal is effectively silent.
var ErrDegenerateInput = errors.New("input RMS is nearly zero")

// Thresholds are the pass limits for a check.
type Thresholds struct {
	MaxGainErrorDB float64
	MaxTHDPercent  float64
}

// Result, outcome of one input/output comparison
type Result struct {
	InputRMS   float64
	OutputRMS  float64
	GainDB     float64
	THDPercent float64
	Passed     bool
	Failures   []string

	Harmonics    HarmonicAnalysis
	InputFormat  *Signal // format fields only, samples are not kept
	OutputFormat *Signal
	Frames       int
}

// evaluate compares measured levels against the thresholds. It fails with
// ErrDegenerateInput before any threshold check when the input is silent.
func evaluate(rmsIn, rmsOut, thd float64, limits Thresholds) (Result, error) {
	if rmsIn < silenceRMS {
		return Result{InputRMS: rmsIn, OutputRMS: rmsOut}, ErrDegenerateInput
	}

	res := Result{
		InputRMS:   rmsIn,
		OutputRMS:  rmsOut,
		GainDB:     gainDB(rmsIn, rmsOut),
		THDPercent: thd,
	}

	if math.Abs(res.GainDB) > limits.MaxGainErrorDB {
		res.Failures = append(res.Failures, fmt.Sprintf("Gain error %+.2f dB exceeds ±%s dB",
			res.GainDB, formatLimit(limits.MaxGainErrorDB)))
	}
	if res.THDPercent > limits.MaxTHDPercent {
		res.Failures = append(res.Failures, fmt.Sprintf("THD %.4f%% exceeds %s%%",
			res.THDPercent, formatLimit(limits.MaxTHDPercent)))
	}

	res.Passed = len(res.Failures) == 0
	return res, nil
}

// formatLimit prints a threshold in shortest form, keeping at least one
// decimal ("1.0", "0.25"). Very large or small values use exponent form.
func formatLimit(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); v != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
