package verify

import (
	"bytes"

	"github.com/gogpu/brig/format"
)

// validateStrings checks that the strings section is a sequence of distinct
// NUL-terminated strings.
func (v *Validator) validateStrings() Result {
	res := prefix(v.strings)

	data := v.strings.Bytes()
	seen := make(map[string]uint32)
	for p := uint32(format.SectionPrefix); p < uint32(len(data)); {
		c := newChecker(format.Strings, p)
		n := bytes.IndexByte(data[p:], 0)
		if !c.require(ErrBounds, n >= 0, "String not null terminated", "NUL before end of strings") {
			return res.And(c.result())
		}
		s := string(data[p : p+uint32(n)])
		_, dup := seen[s]
		c.expect(ErrOrdering, !dup, "Duplicate string detected", "string is unique")
		if !dup {
			seen[s] = p
		}
		res = res.And(c.result())
		p += uint32(n) + 1
	}
	return res
}
