package verify

import (
	"fmt"

	"github.com/gogpu/brig/format"
)

// Location identifies a record by section and byte offset.
type Location struct {
	Section format.SectionID
	Offset  uint32
}

// String renders the location as section+offset.
func (l Location) String() string {
	return fmt.Sprintf("%s+%d", l.Section, l.Offset)
}

// Diagnostic is one violated rule.
type Diagnostic struct {
	Kind ErrorKind
	Location
	// Message is the human-readable description of the violation.
	Message string
	// Condition is the rule that evaluated to false.
	Condition string
}

// String renders the diagnostic as "<location> <message> (<condition>)".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s (%s)", d.Location, d.Message, d.Condition)
}

// Error implements the error interface so a diagnostic can travel as an error.
func (d Diagnostic) Error() string {
	return d.String()
}
