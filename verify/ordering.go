package verify

import (
	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/section"
)

// validateOrdering checks that the c_code anchors of the directives never
// decrease. Records without an anchor are skipped. It runs after the
// directive pass, so every record decodes.
func (v *Validator) validateOrdering() Result {
	var (
		res  Result
		last uint32
	)
	for cur := section.Begin(v.dirs); !cur.Done(); {
		d, err := section.DecodeDirective(v.dirs, cur.Offset())
		if err != nil {
			c := newChecker(format.Directives, cur.Offset())
			kind, msg, cond := describe(err)
			c.require(kind, false, msg, cond)
			return res.And(c.result())
		}
		if cc, ok := format.CCode(d); ok {
			c := newChecker(format.Directives, cur.Offset())
			c.expect(ErrOrdering, cc >= last, "c_code out of order", "c_code >= previous c_code")
			res = res.And(c.result())
			last = max(last, cc)
		}
		_ = cur.Next()
	}
	return res
}
