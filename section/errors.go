package section

import (
	"errors"
	"fmt"

	"github.com/gogpu/brig/format"
)

// Sentinel errors returned (wrapped in *Error) by the decoding functions.
var (
	// ErrPast means the offset lies beyond the end of the section.
	ErrPast = errors.New("past the section")

	// ErrSpans means the record header or its declared size crosses the end
	// of the section.
	ErrSpans = errors.New("spans the section")

	// ErrTooSmall means the declared size is below the minimum for the kind.
	ErrTooSmall = errors.New("structure is too small")

	// ErrUnknownKind means the kind tag is not recognized.
	ErrUnknownKind = errors.New("unrecognized kind")

	// ErrWrongKind means the record exists but is not of the expected kind.
	ErrWrongKind = errors.New("wrong record kind")

	// ErrAbsent means a required reference holds the zero sentinel.
	ErrAbsent = errors.New("absent reference")

	// ErrUnterminated means a string runs to the end of the section.
	ErrUnterminated = errors.New("string not null terminated")

	// ErrLabelBoundary means a method's directive range ends at a label.
	ErrLabelBoundary = errors.New("label outside of function")
)

// Error describes a failed read at a position in a section.
type Error struct {
	Section format.SectionID
	Offset  uint32
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s+%d: %v", e.Section, e.Offset, e.Err)
}

// Unwrap returns the sentinel error.
func (e *Error) Unwrap() error { return e.Err }

func newError(s format.SectionID, off uint32, err error) *Error {
	return &Error{Section: s, Offset: off, Err: err}
}
