package verify

import "github.com/gogpu/brig/format"

// Result is the outcome of a check path: the diagnostics it produced and
// whether it stopped early.
//
// Results combine with And, which keeps going after a failure. Stopping is
// decided inside a path with checker.require, never by the combinator, so a
// failed sibling never hides the diagnostics of the next one.
type Result struct {
	Diagnostics []Diagnostic
	// Aborted is set when a check could not safely continue.
	Aborted bool
	// Dropped counts diagnostics cut by Options.MaxDiagnostics.
	Dropped int
}

// Valid reports whether the path produced no diagnostics.
func (r Result) Valid() bool { return len(r.Diagnostics) == 0 && r.Dropped == 0 }

// Err returns the first diagnostic as an error, or nil when r is valid.
func (r Result) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	return r.Diagnostics[0]
}

// And returns r followed by o.
func (r Result) And(o Result) Result {
	if len(o.Diagnostics) > 0 {
		r.Diagnostics = append(r.Diagnostics[:len(r.Diagnostics):len(r.Diagnostics)], o.Diagnostics...)
	}
	r.Aborted = r.Aborted || o.Aborted
	r.Dropped += o.Dropped
	return r
}

// checker accumulates diagnostics for one record.
type checker struct {
	loc Location
	res Result
}

func newChecker(s format.SectionID, off uint32) *checker {
	return &checker{loc: Location{Section: s, Offset: off}}
}

// report records a diagnostic unconditionally.
func (c *checker) report(kind ErrorKind, msg, cond string) {
	c.res.Diagnostics = append(c.res.Diagnostics, Diagnostic{
		Kind:      kind,
		Location:  c.loc,
		Message:   msg,
		Condition: cond,
	})
}

// check records a field-domain diagnostic when ok is false. It returns ok so
// callers can guard dependent checks.
func (c *checker) check(ok bool, msg, cond string) bool {
	if !ok {
		c.report(ErrFieldDomain, msg, cond)
	}
	return ok
}

// expect is check with an explicit kind.
func (c *checker) expect(kind ErrorKind, ok bool, msg, cond string) bool {
	if !ok {
		c.report(kind, msg, cond)
	}
	return ok
}

// require is expect that also marks the path aborted. Callers return as soon
// as it fails.
func (c *checker) require(kind ErrorKind, ok bool, msg, cond string) bool {
	if !ok {
		c.report(kind, msg, cond)
		c.res.Aborted = true
	}
	return ok
}

func (c *checker) result() Result { return c.res }
