package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"
)

// printReport writes the fixed-format console report.
func printReport(w io.Writer, res Result) {
	fmt.Fprintf(w, "  Input  RMS: %.6f\n", res.InputRMS)
	fmt.Fprintf(w, "  Output RMS: %.6f\n", res.OutputRMS)
	fmt.Fprintf(w, "  Gain: %+.2f dB\n", res.GainDB)
	fmt.Fprintf(w, "  THD:  %.4f %%\n", res.THDPercent)

	if !res.Passed {
		for _, msg := range res.Failures {
			fmt.Fprintf(w, "  FAIL: %s\n", msg)
		}
		return
	}
	fmt.Fprintln(w, "  PASS")
}

// writeAnalysisToFile, writes the check results to a markdown report
func (oc *OutputChecker) writeAnalysisToFile(res Result, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("analysis file creation error: %w", err)
	}
	defer file.Close()

	oc.writeAnalysis(file, res, time.Now())
	if err := file.Close(); err != nil {
		return fmt.Errorf("analysis file writing error: %w", err)
	}
	return nil
}

func (oc *OutputChecker) writeAnalysis(w io.Writer, res Result, now time.Time) {
	verdict := map[bool]string{true: "PASS", false: "FAIL"}[res.Passed]

	fmt.Fprintf(w, "# Output Quality Check Report\n")
	fmt.Fprintf(w, "# Input file: %s\n", oc.inputFile)
	fmt.Fprintf(w, "# Output file: %s\n", oc.outputFile)
	fmt.Fprintf(w, "# Date: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "# Result: %s\n\n", verdict)

	fmt.Fprintf(w, "## 1. Formats\n\n")
	fmt.Fprintf(w, "| File | Sample Rate | Channels | Bit Depth |\n")
	fmt.Fprintf(w, "|------|-------------|----------|-----------|\n")
	for _, row := range []struct {
		name string
		f    *Signal
	}{{"Input", res.InputFormat}, {"Output", res.OutputFormat}} {
		if row.f == nil {
			continue
		}
		fmt.Fprintf(w, "| %s | %d Hz | %d | %d |\n", row.name, row.f.SampleRate, row.f.NumChannels, row.f.BitDepth)
	}
	fmt.Fprintf(w, "\nCompared samples (channel 0): %d\n", res.Frames)
	if res.OutputFormat != nil && res.OutputFormat.SampleRate > 0 {
		fmt.Fprintf(w, "Compared duration: %.3f seconds\n", float64(res.Frames)/float64(res.OutputFormat.SampleRate))
	}

	fmt.Fprintf(w, "\n## 2. Metrics\n\n")
	fmt.Fprintf(w, "| Metric | Value | Limit |\n")
	fmt.Fprintf(w, "|--------|-------|-------|\n")
	fmt.Fprintf(w, "| Input RMS | %.6f | - |\n", res.InputRMS)
	fmt.Fprintf(w, "| Output RMS | %.6f | - |\n", res.OutputRMS)
	fmt.Fprintf(w, "| Gain | %+.2f dB | ±%s dB |\n", res.GainDB, formatLimit(oc.limits.MaxGainErrorDB))
	fmt.Fprintf(w, "| THD | %.4f %% | %s %% |\n", res.THDPercent, formatLimit(oc.limits.MaxTHDPercent))

	h := res.Harmonics
	fmt.Fprintf(w, "\n## 3. Harmonic Analysis\n\n")
	fmt.Fprintf(w, "Fundamental: %.1f Hz, nearest bin %d (%.2f Hz), bin width %.4f Hz\n\n",
		h.FundamentalHz, h.FundamentalBin, h.FundamentalFreq, h.BinWidth)
	fmt.Fprintf(w, "| Order | Bin | Frequency | Level (dBc) |\n")
	fmt.Fprintf(w, "|-------|-----|-----------|-------------|\n")
	for _, hm := range h.Harmonics {
		fmt.Fprintf(w, "| %d | %d | %.2f Hz | %s |\n", hm.Order, hm.Bin, hm.Freq, levelDBc(hm.Power, h.FundamentalPower))
	}

	if len(res.Failures) > 0 {
		fmt.Fprintf(w, "\n## 4. Failures\n\n")
		for _, msg := range res.Failures {
			fmt.Fprintf(w, "- %s\n", msg)
		}
	}
}

// levelDBc, harmonic power relative to the fundamental
func levelDBc(power, fundamental float64) string {
	if fundamental < minFundamentalPower || power <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", 10*math.Log10(power/fundamental))
}
