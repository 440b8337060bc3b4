package format

// SectionID names one of the four sections of a module.
type SectionID uint8

// Sections.
const (
	Directives SectionID = iota
	Code
	Operands
	Strings
)

// String returns the lowercase section name used in diagnostics.
func (s SectionID) String() string {
	switch s {
	case Directives:
		return "directives"
	case Code:
		return "code"
	case Operands:
		return "operands"
	case Strings:
		return "strings"
	}
	return "section?"
}

// Module is a BRIG module: four byte sections. A module is never modified
// by the packages that read it.
type Module struct {
	Directives []byte
	Code       []byte
	Operands   []byte
	Strings    []byte
}

// Section returns the bytes of section s.
func (m *Module) Section(s SectionID) []byte {
	switch s {
	case Directives:
		return m.Directives
	case Code:
		return m.Code
	case Operands:
		return m.Operands
	case Strings:
		return m.Strings
	}
	return nil
}

// Size returns the total size of all four sections.
func (m *Module) Size() int {
	return len(m.Directives) + len(m.Code) + len(m.Operands) + len(m.Strings)
}
