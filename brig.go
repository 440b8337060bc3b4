// Package brig verifies BRIG modules.
//
// A BRIG module is the binary form of a GPU kernel program: four
// little-endian sections holding directives, instructions, operands and
// strings. The package checks that a module is safe to hand to a finalizer:
// every record lies inside its section, every reference lands on a record of
// the right kind, and every instruction is well formed for its opcode.
//
// Example usage:
//
//	m, err := container.ReadFile("kernel.brig")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := brig.Verify(m)
//	for _, d := range report.Result.Diagnostics {
//	    fmt.Println(d)
//	}
//
// For lower-level access, use the verify and section packages directly.
package brig

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gogpu/brig/container"
	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/store"
	"github.com/gogpu/brig/verify"
)

// Options configures verification.
type Options struct {
	verify.Options

	// Cache, when set, is consulted before validating and updated after.
	Cache *store.Store
}

// DefaultOptions returns the default options: sequential passes, unlimited
// diagnostics and no cache.
func DefaultOptions() Options {
	return Options{Options: verify.DefaultOptions()}
}

// Report is the outcome of one verification.
type Report struct {
	// RunID identifies this verification in logs.
	RunID string
	// Digest is the SHA-256 of the module sections.
	Digest string
	// Cached is set when the result came from the verdict cache.
	Cached bool
	Result verify.Result
}

// Valid reports whether the module passed every check.
func (r *Report) Valid() bool { return r.Result.Valid() }

type jsonDiagnostic struct {
	Kind      string `json:"kind"`
	Section   string `json:"section"`
	Offset    uint32 `json:"offset"`
	Message   string `json:"message"`
	Condition string `json:"condition"`
}

type jsonReport struct {
	RunID       string           `json:"run_id"`
	Digest      string           `json:"digest"`
	Valid       bool             `json:"valid"`
	Cached      bool             `json:"cached"`
	Dropped     int              `json:"dropped,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

// MarshalJSON renders the report with kinds and sections by name.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := jsonReport{
		RunID:       r.RunID,
		Digest:      r.Digest,
		Valid:       r.Valid(),
		Cached:      r.Cached,
		Dropped:     r.Result.Dropped,
		Diagnostics: make([]jsonDiagnostic, 0, len(r.Result.Diagnostics)),
	}
	for _, d := range r.Result.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{
			Kind:      d.Kind.String(),
			Section:   d.Section.String(),
			Offset:    d.Offset,
			Message:   d.Message,
			Condition: d.Condition,
		})
	}
	return json.Marshal(out)
}

// Verify checks m with default options.
func Verify(m *format.Module) *Report {
	return VerifyWithOptions(context.Background(), m, DefaultOptions())
}

// VerifyWithOptions checks m with custom options.
//
// Cache failures are logged and never change the verdict: a module whose
// cached verdict cannot be read is validated again.
func VerifyWithOptions(ctx context.Context, m *format.Module, opts Options) *Report {
	start := time.Now()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	report := &Report{
		RunID:  uuid.New().String(),
		Digest: store.Digest(m),
	}
	log = log.With(zap.String("run_id", report.RunID))

	if res, ok := lookup(ctx, log, opts.Cache, report.Digest); ok {
		report.Cached = true
		report.Result = res
		if opts.Sink != nil {
			for _, d := range res.Diagnostics {
				opts.Sink.Report(d)
			}
		}
	} else {
		vopts := opts.Options
		vopts.Logger = log
		report.Result = verify.ValidateWithOptions(m, vopts)
		save(ctx, log, opts.Cache, report)
	}

	log.Info("module verified",
		zap.String("digest", report.Digest),
		zap.Bool("valid", report.Valid()),
		zap.Bool("cached", report.Cached),
		zap.Int("diagnostics", len(report.Result.Diagnostics)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report
}

// VerifyFile reads the container at path and checks the module it holds.
// The error is non-nil only when the file cannot be read or decoded.
func VerifyFile(ctx context.Context, path string, opts Options) (*Report, error) {
	m, err := container.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return VerifyWithOptions(ctx, m, opts), nil
}

func lookup(ctx context.Context, log *zap.Logger, cache *store.Store, digest string) (verify.Result, bool) {
	if cache == nil {
		return verify.Result{}, false
	}
	v, err := cache.Get(ctx, digest)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn("verdict cache read failed", zap.Error(err))
		}
		return verify.Result{}, false
	}
	if v.Valid != (len(v.Diagnostics) == 0) {
		log.Warn("inconsistent cached verdict", zap.String("digest", digest))
		return verify.Result{}, false
	}
	return verify.Result{Diagnostics: v.Diagnostics}, true
}

func save(ctx context.Context, log *zap.Logger, cache *store.Store, r *Report) {
	if cache == nil {
		return
	}
	err := cache.Put(ctx, &store.Verdict{
		Digest:      r.Digest,
		Valid:       r.Valid(),
		Diagnostics: r.Result.Diagnostics,
	})
	if err != nil {
		log.Warn("verdict cache write failed", zap.Error(err))
	}
}
