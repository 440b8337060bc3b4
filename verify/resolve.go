package verify

import (
	"errors"
	"fmt"

	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/section"
)

// describe turns a decoding error into a diagnostic kind, message and
// condition. Messages name the record by its section: dir, inst or operands.
func describe(err error) (kind ErrorKind, msg, cond string) {
	var se *section.Error
	if !errors.As(err, &se) {
		return ErrBounds, err.Error(), "decodable"
	}
	name := se.Section.String()
	switch {
	case errors.Is(err, section.ErrPast):
		if se.Section == format.Strings {
			return ErrBounds, "s_name past the strings section", "s_name < strings size"
		}
		return ErrBounds, recordName(se.Section) + " past the " + name + " section", "offset <= section size"
	case errors.Is(err, section.ErrSpans):
		return ErrBounds, recordName(se.Section) + " spans the " + name + " section", "offset + size <= section size"
	case errors.Is(err, section.ErrTooSmall):
		return ErrBounds, "Brig structure is too small", "size >= minimum size of kind"
	case errors.Is(err, section.ErrUnknownKind):
		return ErrUnrecognized, "Unrecognized " + unrecognizedName(se.Section), "known kind"
	case errors.Is(err, section.ErrUnterminated):
		return ErrBounds, "String not null terminated", "NUL before end of strings"
	case errors.Is(err, section.ErrAbsent):
		return ErrKindMismatch, "Missing reference", "offset != 0"
	case errors.Is(err, section.ErrWrongKind):
		return ErrKindMismatch, "Wrong record kind", "kind matches"
	}
	return ErrBounds, err.Error(), "decodable"
}

func recordName(s format.SectionID) string {
	switch s {
	case format.Directives:
		return "dir"
	case format.Code:
		return "inst"
	case format.Operands:
		return "operands"
	}
	return "s_name"
}

func unrecognizedName(s format.SectionID) string {
	switch s {
	case format.Directives:
		return "directive"
	case format.Code:
		return "code"
	case format.Operands:
		return "operands"
	}
	return "record"
}

// isMismatch reports whether err means the target exists but is not what the
// reference promised.
func isMismatch(err error) bool {
	return errors.Is(err, section.ErrWrongKind) ||
		errors.Is(err, section.ErrAbsent) ||
		errors.Is(err, section.ErrUnknownKind)
}

// deep reports a chain that exceeds the resolve depth. It returns false when
// the chain must stop.
func (v *Validator) deep(c *checker, depth int) bool {
	return c.require(ErrBounds, depth <= v.opts.ResolveDepth,
		"reference chain too deep", fmt.Sprintf("depth <= %d", v.opts.ResolveDepth))
}

// directiveRef resolves off to a directive of one of kinds. A bounds failure
// aborts the path; a kind mismatch reports msg and leaves the siblings
// running. The directive is returned only when ok is true.
func (v *Validator) directiveRef(c *checker, depth int, off uint32, msg string, kinds ...format.DirectiveKind) (format.Directive, bool) {
	if !v.deep(c, depth) {
		return nil, false
	}
	d, err := section.Directive(v.dirs, off, kinds...)
	if err == nil {
		return d, true
	}
	if isMismatch(err) {
		c.expect(ErrKindMismatch, false, msg, directiveKinds(kinds))
		return nil, false
	}
	kind, m, cond := describe(err)
	c.require(kind, false, m, cond)
	return nil, false
}

// operandRef is directiveRef for the operands section.
func (v *Validator) operandRef(c *checker, depth int, off uint32, msg string, kinds ...format.OperandKind) (format.Operand, bool) {
	if !v.deep(c, depth) {
		return nil, false
	}
	o, err := section.Operand(v.operands, off, kinds...)
	if err == nil {
		return o, true
	}
	if isMismatch(err) {
		c.expect(ErrKindMismatch, false, msg, operandKinds(kinds))
		return nil, false
	}
	kind, m, cond := describe(err)
	c.require(kind, false, m, cond)
	return nil, false
}

// name checks that s_name refers to a terminated string and returns it.
func (v *Validator) name(c *checker, off uint32) (string, bool) {
	s, err := section.String(v.strings, off)
	if err != nil {
		kind, msg, cond := describe(err)
		c.expect(kind, false, msg, cond)
		return "", false
	}
	return s, true
}

func directiveKinds(kinds []format.DirectiveKind) string {
	cond := "kind in {"
	for i, k := range kinds {
		if i > 0 {
			cond += ", "
		}
		cond += k.String()
	}
	return cond + "}"
}

func operandKinds(kinds []format.OperandKind) string {
	cond := "kind in {"
	for i, k := range kinds {
		if i > 0 {
			cond += ", "
		}
		cond += k.String()
	}
	return cond + "}"
}
