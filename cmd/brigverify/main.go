// Command brigverify checks a BRIG module container.
//
// Usage:
//
//	brigverify [options] <module.brig>
//
// Examples:
//
//	brigverify kernel.brig               # Print diagnostics, exit 1 if invalid
//	brigverify -json kernel.brig         # Print the report as JSON
//	brigverify -parallel -max 20 k.brig  # Parallel passes, at most 20 diagnostics
//
// The exit status is 0 for a valid module and 1 for an invalid module or
// any error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/gogpu/brig"
	"github.com/gogpu/brig/config"
)

const brigVersion = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("brigverify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "TOML config file")
		asJSON     = fs.Bool("json", false, "print the report as JSON")
		parallel   = fs.Bool("parallel", false, "run the section passes concurrently")
		maxDiags   = fs.Int("max", 0, "maximum diagnostics to report (0: all)")
		verbose    = fs.Bool("v", false, "log every pass to stderr")
		version    = fs.Bool("version", false, "print version")
	)
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *version {
		fmt.Fprintf(stdout, "brigverify version %s\n", brigVersion)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one input file")
		usage(fs)
		return 1
	}
	path := fs.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return 1
		}
	}
	cfg.ApplyEnv()
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "parallel":
			cfg.Verify.Parallel = *parallel
		case "max":
			cfg.Verify.MaxDiagnostics = *maxDiags
		}
	})
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return 1
	}

	log := zap.NewNop()
	if *verbose {
		var err error
		log, err = cfg.Logger()
		if err != nil {
			fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
			return 1
		}
		defer func() { _ = log.Sync() }()
	}

	opts := brig.Options{Options: cfg.Options()}
	opts.Logger = log
	report, err := brig.VerifyFile(context.Background(), path, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(stderr, "Error writing report: %v\n", err)
			return 1
		}
	} else {
		for _, d := range report.Result.Diagnostics {
			fmt.Fprintln(stdout, d)
		}
		if report.Result.Dropped > 0 {
			fmt.Fprintf(stdout, "... %d more diagnostics not shown\n", report.Result.Dropped)
		}
		if report.Valid() {
			fmt.Fprintf(stdout, "%s: valid\n", path)
		} else {
			fmt.Fprintf(stdout, "%s: invalid\n", path)
		}
	}

	if !report.Valid() {
		return 1
	}
	return 0
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "Usage: brigverify [options] <module.brig>\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nEnvironment:\n")
	fmt.Fprintf(w, "  BRIG_PARALLEL, BRIG_MAX_DIAGNOSTICS, BRIG_RESOLVE_DEPTH, BRIG_LOG_LEVEL, BRIG_LOG_FORMAT\n")
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  brigverify kernel.brig              Print diagnostics\n")
	fmt.Fprintf(w, "  brigverify -json kernel.brig        Print a JSON report\n")
	fmt.Fprintf(w, "  brigverify -max 10 kernel.brig      Stop listing after 10 diagnostics\n")
}
