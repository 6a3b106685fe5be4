package main

import (
	"fmt"
	"io"
)

// OutputChecker compares the output of an audio pipeline against the
// reference signal that was fed into it.
type OutputChecker struct {
	inputFile     string
	outputFile    string
	limits        Thresholds
	fundamentalHz float64
	verbose       bool
	log           io.Writer // diagnostics, only written when verbose
}

// NewOutputChecker, creates a checker from the parsed configuration
func NewOutputChecker(cfg *Config, log io.Writer) *OutputChecker {
	return &OutputChecker{
		inputFile:     cfg.InputFile,
		outputFile:    cfg.OutputFile,
		limits:        Thresholds{MaxGainErrorDB: cfg.MaxGainErrorDB, MaxTHDPercent: cfg.MaxTHDPercent},
		fundamentalHz: cfg.FundamentalHz,
		verbose:       cfg.Verbose,
		log:           log,
	}
}

// Check, loads both files and measures gain and distortion of the output
func (oc *OutputChecker) Check() (Result, error) {
	in, err := readWavFile(oc.inputFile)
	if err != nil {
		return Result{}, fmt.Errorf("input file: %w", err)
	}
	out, err := readWavFile(oc.outputFile)
	if err != nil {
		return Result{}, fmt.Errorf("output file: %w", err)
	}
	oc.logFormat("Input", oc.inputFile, in)
	oc.logFormat("Output", oc.outputFile, out)

	inFormat, outFormat := formatOf(in), formatOf(out)
	in = in.FirstChannel()
	out = out.FirstChannel()

	inSamples, outSamples := alignSignals(in.Samples, out.Samples)
	if len(inSamples) == 0 {
		return Result{}, ErrNoSamples
	}
	if oc.verbose && len(in.Samples) != len(out.Samples) {
		fmt.Fprintf(oc.log, "Length mismatch: input %d, output %d samples; comparing first %d\n",
			len(in.Samples), len(out.Samples), len(inSamples))
	}

	rmsIn := rms(inSamples)
	rmsOut := rms(outSamples)

	// THD of a degenerate comparison is never reported, skip the FFT.
	if rmsIn < silenceRMS {
		return evaluate(rmsIn, rmsOut, 0, oc.limits)
	}

	harmonics := analyzeHarmonics(outSamples, out.SampleRate, oc.fundamentalHz)
	res, err := evaluate(rmsIn, rmsOut, harmonics.THDPercent(), oc.limits)
	if err != nil {
		return res, err
	}

	res.Harmonics = harmonics
	res.InputFormat = inFormat
	res.OutputFormat = outFormat
	res.Frames = len(inSamples)
	return res, nil
}

func (oc *OutputChecker) logFormat(label, path string, s *Signal) {
	if !oc.verbose {
		return
	}
	fmt.Fprintf(oc.log, "%s file: %s (%d Hz, %d channels, %d-bit, %d frames)\n",
		label, path, s.SampleRate, s.NumChannels, s.BitDepth, s.Frames())
}

func formatOf(s *Signal) *Signal {
	return &Signal{SampleRate: s.SampleRate, NumChannels: s.NumChannels, BitDepth: s.BitDepth}
}
