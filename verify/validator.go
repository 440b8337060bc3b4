// Package verify checks BRIG modules for structural and semantic validity.
//
// Validation runs in three phases. The directive, code, operand and string
// sections are checked record by record; when they are clean, the c_code
// anchors of the directives are checked for order; when that holds, every
// instruction is checked against the rule of its opcode. Each phase only runs
// when the previous ones reported nothing, so the later, cross-referencing
// rules may rely on well-formed records.
package verify

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/section"
)

// DefaultResolveDepth bounds how many references a single check may follow.
const DefaultResolveDepth = 8

// Options configures validation.
type Options struct {
	// Logger receives debug output for every pass. Nil disables logging.
	Logger *zap.Logger

	// Sink, when set, receives every reported diagnostic in scan order.
	Sink Sink

	// Parallel runs the four section passes concurrently. Diagnostics are
	// merged in section order, so the result does not depend on it.
	Parallel bool

	// ResolveDepth bounds reference chains. Zero selects DefaultResolveDepth.
	ResolveDepth int

	// MaxDiagnostics truncates the reported diagnostics. Zero keeps all.
	MaxDiagnostics int
}

// DefaultOptions returns the default validation options.
func DefaultOptions() Options {
	return Options{ResolveDepth: DefaultResolveDepth}
}

// Validator checks one module.
type Validator struct {
	module *format.Module

	dirs     section.View
	code     section.View
	operands section.View
	strings  section.View

	opts Options
	log  *zap.Logger

	// ctx is read from the version directive before the instruction pass.
	ctx Context
}

// New creates a validator for m. A nil module is treated as empty.
func New(m *format.Module, opts Options) *Validator {
	if m == nil {
		m = &format.Module{}
	}
	if opts.ResolveDepth <= 0 {
		opts.ResolveDepth = DefaultResolveDepth
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	v := &Validator{
		module: m,
		opts:   opts,
		log:    log,
	}
	v.dirs, v.code, v.operands, v.strings = section.Views(m)
	return v
}

// Validate checks m with default options.
func Validate(m *format.Module) Result {
	return New(m, DefaultOptions()).Validate()
}

// ValidateWithOptions checks m with the given options.
func ValidateWithOptions(m *format.Module, opts Options) Result {
	return New(m, opts).Validate()
}

// Validate runs every phase and returns the combined result.
func (v *Validator) Validate() Result {
	start := time.Now()

	res := v.sections()
	if res.Valid() {
		res = res.And(v.pass("ordering", v.validateOrdering))
	}
	if res.Valid() {
		ctx, err := ModuleContext(v.dirs)
		if err != nil {
			// The directive pass has already confirmed the version record.
			c := newChecker(format.Directives, format.SectionPrefix)
			c.require(ErrFieldDomain, false, "Missing BrigDirectiveVersion", "first directive is version")
			res = res.And(c.result())
		} else {
			v.ctx = ctx
			res = res.And(v.pass("instructions", v.validateInstructions))
		}
	}

	res = v.truncate(res)
	if v.opts.Sink != nil {
		for _, d := range res.Diagnostics {
			v.opts.Sink.Report(d)
		}
	}

	v.log.Debug("module validated",
		zap.Bool("valid", res.Valid()),
		zap.Int("diagnostics", len(res.Diagnostics)),
		zap.Int("dropped", res.Dropped),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res
}

// sections runs the four per-section passes. They read disjoint sections
// and share no mutable state.
func (v *Validator) sections() Result {
	passes := [...]struct {
		name string
		fn   func() Result
	}{
		{"directives", v.validateDirectives},
		{"code", v.validateCode},
		{"operands", v.validateOperands},
		{"strings", v.validateStrings},
	}

	var results [len(passes)]Result
	if v.opts.Parallel {
		var g errgroup.Group
		for i := range passes {
			i := i
			g.Go(func() error {
				results[i] = v.pass(passes[i].name, passes[i].fn)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range passes {
			results[i] = v.pass(passes[i].name, passes[i].fn)
		}
	}

	var res Result
	for _, r := range results {
		res = res.And(r)
	}
	return res
}

func (v *Validator) pass(name string, fn func() Result) Result {
	start := time.Now()
	r := fn()
	v.log.Debug("pass finished",
		zap.String("pass", name),
		zap.Bool("valid", r.Valid()),
		zap.Int("diagnostics", len(r.Diagnostics)),
		zap.Bool("aborted", r.Aborted),
		zap.Duration("elapsed", time.Since(start)),
	)
	return r
}

func (v *Validator) truncate(r Result) Result {
	n := v.opts.MaxDiagnostics
	if n <= 0 || len(r.Diagnostics) <= n {
		return r
	}
	r.Dropped += len(r.Diagnostics) - n
	r.Diagnostics = r.Diagnostics[:n:n]
	return r
}

// prefix checks the zero prefix of a section. The violation is reported once.
func prefix(s section.View) Result {
	c := newChecker(s.ID(), 0)
	c.check(s.PrefixZero(),
		"The first eight bytes of the "+s.ID().String()+" section must be zero",
		"prefix == 0")
	return c.result()
}
