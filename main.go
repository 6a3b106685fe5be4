package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// Config holds the command line settings of one check
type Config struct {
	InputFile      string
	OutputFile     string
	MaxGainErrorDB float64
	MaxTHDPercent  float64
	FundamentalHz  float64
	ReportFile     string
	Verbose        bool
}

func defaultConfig() *Config {
	return &Config{
		MaxGainErrorDB: 1.0,
		MaxTHDPercent:  1.0,
		FundamentalHz:  defaultFundamentalHz,
	}
}

// errUsage marks command line mistakes, reported with exit status 2.
var errUsage = errors.New("usage error")

// parseCommandLine, handles command line arguments. Options may appear before,
// between or after the two positional file arguments.
func parseCommandLine(args []string, stderr io.Writer) (*Config, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet("output-quality-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&cfg.MaxGainErrorDB, "max-gain-error-db", cfg.MaxGainErrorDB, "Maximum allowed absolute gain error (dB)")
	fs.Float64Var(&cfg.MaxTHDPercent, "max-thd-percent", cfg.MaxTHDPercent, "Maximum allowed total harmonic distortion (%)")
	fs.Float64Var(&cfg.FundamentalHz, "fundamental-hz", cfg.FundamentalHz, "Fundamental frequency of the test tone (Hz)")
	fs.StringVar(&cfg.ReportFile, "report", "", "Also write a markdown analysis report to this file")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Show decoded file details on stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: output-quality-check [options] input_wav output_wav")
		fs.PrintDefaults()
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}

	if len(positional) != 2 {
		fs.Usage()
		return nil, fmt.Errorf("%w: expected input_wav and output_wav, got %d arguments", errUsage, len(positional))
	}
	if cfg.FundamentalHz <= 0 {
		return nil, fmt.Errorf("%w: fundamental-hz must be positive", errUsage)
	}

	cfg.InputFile, cfg.OutputFile = positional[0], positional[1]
	return cfg, nil
}

// run executes one check and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseCommandLine(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	checker := NewOutputChecker(cfg, stderr)
	res, err := checker.Check()
	if errors.Is(err, ErrDegenerateInput) {
		fmt.Fprintf(stdout, "ERROR: %v\n", err)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "Process error: %v\n", err)
		return 1
	}

	printReport(stdout, res)

	if cfg.ReportFile != "" {
		if err := checker.writeAnalysisToFile(res, cfg.ReportFile); err != nil {
			fmt.Fprintf(stderr, "Process error: %v\n", err)
			return 1
		}
		if cfg.Verbose {
			fmt.Fprintf(stderr, "Analysis report: %s\n", cfg.ReportFile)
		}
	}

	if !res.Passed {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
