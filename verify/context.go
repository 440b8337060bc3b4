package verify

import (
	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/section"
)

// Context is the module-wide state declared by the version directive.
type Context struct {
	Machine format.Machine
	Profile format.Profile
	Ftz     format.Ftz
}

// AddressType returns the bit type of a flat address in this context.
func (c Context) AddressType() format.DataType {
	if c.Machine == format.Large {
		return format.B64
	}
	return format.B32
}

// ModuleContext reads the context from the first directive of dirs, which
// must be the version directive.
func ModuleContext(dirs section.View) (Context, error) {
	d, err := section.Directive(dirs, format.SectionPrefix, format.DirVersion)
	if err != nil {
		return Context{}, err
	}
	ver := d.(*format.VersionDirective)
	return Context{Machine: ver.Machine, Profile: ver.Profile, Ftz: ver.Ftz}, nil
}
