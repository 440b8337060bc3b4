package verify

import (
	"fmt"
	"math"

	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/section"
)

// validateDirectives checks every record of the directives section.
func (v *Validator) validateDirectives() Result {
	res := prefix(v.dirs)

	c := newChecker(format.Directives, 0)
	if !c.require(ErrBounds, v.dirs.Len() > format.SectionPrefix, "Empty directive section", "size > 8") {
		return res.And(c.result())
	}

	for cur := section.Begin(v.dirs); !cur.Done(); {
		off := cur.Offset()
		d, err := section.DecodeDirective(v.dirs, off)
		if err != nil {
			c := newChecker(format.Directives, off)
			kind, msg, cond := describe(err)
			c.require(kind, false, msg, cond)
			return res.And(c.result())
		}
		if off == format.SectionPrefix && d.Header().Kind != format.DirVersion {
			c := newChecker(format.Directives, off)
			c.require(ErrFieldDomain, false, "Missing BrigDirectiveVersion", "first directive is version")
			return res.And(c.result())
		}
		res = res.And(v.directive(d))
		_ = cur.Next()
	}
	return res
}

// directive checks one decoded directive.
//
//nolint:gocyclo,cyclop,funlen // one case per directive kind
func (v *Validator) directive(d format.Directive) Result {
	h := d.Header()
	c := newChecker(format.Directives, h.Offset)

	if a := h.Kind.Align(); a > 0 {
		c.check(h.Offset%a == 0, "Improperly aligned directive", fmt.Sprintf("offset %% %d == 0", a))
	}

	switch d := d.(type) {
	case *format.MethodDirective:
		v.method(c, d)

	case *format.SymbolDirective:
		v.symbolCommon(c, &d.S)
		c.check(d.Reserved == 0, "Reserved not zero", "reserved == 0")
		v.symbolInit(c, d)

	case *format.ImageDirective:
		v.symbolCommon(c, &d.S)
		c.check(d.Order < format.OrderInvalid, "Invalid image type", "order < invalid")
		c.check(d.Format < format.FormatInvalid, "Invalid format type", "format < invalid")
		if d.Array > 1 {
			c.check(d.Depth == 0, "depth value is wrong for 1DA and 2DA images", "array > 1 implies depth == 0")
		}

	case *format.SamplerDirective:
		v.symbolCommon(c, &d.S)
		if d.Valid == 1 {
			c.check(d.Filter <= format.FilterNearest, "Invalid filter", "filter <= nearest")
			c.check(d.BoundaryU <= format.BoundaryBorder, "Invalid boundaryU", "boundaryU <= border")
			c.check(d.BoundaryV <= format.BoundaryBorder, "Invalid boundaryV", "boundaryV <= border")
			c.check(d.BoundaryW <= format.BoundaryBorder, "Invalid boundaryW", "boundaryW <= border")
			c.check(d.Reserved == 0, "The value of reserved must be zero", "reserved == 0")
		}

	case *format.LabelDirective:
		v.ccode(c, d.CCode)
		v.sname(c, d.SName)

	case *format.LabelListDirective:
		v.ccode(c, d.CCode)
		c.check(uint32(len(d.Labels)) == d.ElementCount,
			"Directive size too small for elementCount", "12 + 4 * elementCount <= size")
		if _, ok := v.directiveRef(c, 1, d.Label, "label of a label list is not a label", format.DirLabel); !ok {
			break
		}
		v.labels(c, d.Labels)

	case *format.VersionDirective:
		v.ccode(c, d.CCode)
		c.check(d.Machine <= format.Large, "Invalid machine", "machine <= large")
		c.check(d.Profile <= format.Reduced, "Invalid profile", "profile <= reduced")
		c.check(d.Ftz <= format.Sftz, "Invalid flush to zero", "ftz <= sftz")
		c.check(d.Reserved == 0, "Reserved not zero", "reserved == 0")

	case *format.SignatureDirective:
		v.signature(c, d)

	case *format.FileDirective:
		v.ccode(c, d.CCode)
		v.sname(c, d.SFilename)

	case *format.NameDirective:
		v.ccode(c, d.CCode)
		if d.Kind == format.DirBlockStart {
			if s, ok := v.name(c, d.SName); ok {
				c.check(s == "debug" || s == "rti",
					"Invalid s_name, should be either debug or rti", `s_name in {"debug", "rti"}`)
			}
			break
		}
		v.sname(c, d.SName)

	case *format.LocDirective, *format.ControlDirective, *format.ArgScopeDirective:
		cc, _ := format.CCode(d)
		v.ccode(c, cc)

	case *format.InitDirective:
		v.ccode(c, d.CCode)
		c.check(d.Reserved == 0, "Reserved not zero", "reserved == 0")
		if c.check(isInitType(d.Type, true),
			"Invalid type, must be b1, b8, b16, b32, b64, or b128", "type in {b1, b8, b16, b32, b64, b128}") {
			need := uint64(format.InitData) + uint64(d.ElementCount)*uint64(d.Type.Size())/8
			c.check(need <= uint64(d.Size),
				"Directive size too small for elementCount", "16 + elementCount * bits / 8 <= size")
		}

	case *format.LabelInitDirective:
		v.ccode(c, d.CCode)
		v.sname(c, d.SName)
		c.check(uint32(len(d.Labels)) == d.ElementCount,
			"Directive size too small for elementCount", "16 + 4 * elementCount <= size")
		v.labels(c, d.Labels)

	case *format.BlockNumericDirective:
		c.check(d.Size%8 == 0, "Invalid size, must be a multiple of 8", "size % 8 == 0")
		if c.check(isInitType(d.Type, false),
			"Invalid type, must be b1, b8, b16, b32, or b64", "type in {b1, b8, b16, b32, b64}") {
			need := uint64(format.BlockNumericData) + uint64(d.ElementCount)*uint64(d.Type.Size())/8
			c.check(need <= uint64(d.Size),
				"Directive size too small for elementCount", "8 + elementCount * bits / 8 <= size")
		}

	case *format.BlockStringDirective:
		v.sname(c, d.SName)

	case *format.EmptyDirective:
		// Block ends only need alignment; padding needs nothing.
	}

	return c.result()
}

// ccode checks a code anchor. Zero is always accepted.
func (v *Validator) ccode(c *checker, cc uint32) {
	if !c.check(cc <= math.MaxUint32-32, "c_code overflows", "c_code <= 0xFFFFFFDF") {
		return
	}
	c.expect(ErrBounds, cc == 0 || cc <= v.code.Len(), "c_code past the code section", "c_code <= code size")
}

// sname checks that a name refers to a terminated string.
func (v *Validator) sname(c *checker, off uint32) {
	v.name(c, off)
}

// method checks a function or kernel and its parameter list.
func (v *Validator) method(c *checker, d *format.MethodDirective) {
	v.ccode(c, d.CCode)
	v.sname(c, d.SName)
	c.check(d.Reserved == 0, "Reserved not zero", "reserved == 0")

	want := format.Arg
	msg := "Argument not in arg space"
	if d.Kind == format.DirKernel {
		want = format.Kernarg
		msg = "Argument not in kernarg space"
	}

	cur := section.At(v.dirs, d.Offset)
	_ = cur.Next()
	// Every parameter is a symbol record, so the count is bounded by the
	// bytes left in the section.
	room := uint64(v.dirs.Len()-cur.Offset()) / uint64(format.DirSymbol.MinSize())
	if !c.require(ErrKindMismatch, d.ParamCount() <= room, "Too few argument symbols",
		"inParamCount + outParamCount symbols fit in the section") {
		return
	}
	var params []uint32
	for i := uint64(0); i < d.ParamCount(); i++ {
		if !c.require(ErrKindMismatch, !cur.Done(), "Too few argument symbols", "paramCount symbols follow") {
			return
		}
		p, err := section.DecodeDirective(v.dirs, cur.Offset())
		if err != nil {
			kind, m, cond := describe(err)
			c.require(kind, false, m, cond)
			return
		}
		sym, ok := p.(*format.SymbolDirective)
		if !c.require(ErrKindMismatch, ok, "Too few argument symbols", "paramCount symbols follow") {
			return
		}
		c.check(sym.S.StorageClass == want, msg, "storageClass == "+want.String())
		params = append(params, cur.Offset())
		if err := cur.Next(); err != nil {
			kind, m, cond := describe(err)
			c.require(kind, false, m, cond)
			return
		}
	}

	if !c.require(ErrBounds, d.FirstScoped <= v.dirs.Len(), "dir past the directives section", "d_firstScopedDirective <= directives size") {
		return
	}
	c.check(cur.Offset() <= d.FirstScoped, "The first scoped directive is too early",
		"end of parameters <= d_firstScopedDirective")
	c.check(d.FirstScoped <= d.NextDirective, "The next directive is before the first scoped directive",
		"d_firstScopedDirective <= d_nextDirective")
	c.expect(ErrBounds, d.NextDirective <= v.dirs.Len(), "dir past the directives section",
		"d_nextDirective <= directives size")
	c.check(d.Attribute <= format.NoAttribute, "Invalid linkage type", "attribute <= none")

	if d.InParamCount > 0 && uint64(d.OutParamCount) < uint64(len(params)) {
		c.check(params[d.OutParamCount] == d.FirstInParam, "d_firstInParam is wrong",
			"d_firstInParam follows outParamCount symbols")
	}
}

// symbolCommon checks the declaration part of a symbol, image or sampler.
func (v *Validator) symbolCommon(c *checker, s *format.SymbolCommon) {
	v.ccode(c, s.CCode)
	c.check(s.StorageClass <= format.MaxExtensionSpace, "Invalid storage class", "storageClass <= flat + 8")
	c.check(s.Attribute <= format.NoAttribute, "Invalid linkage type", "attribute <= none")
	c.check(s.Reserved == 0, "Reserved not zero", "reserved == 0")
	c.check(s.Modifier < format.AllSymbolModifiers, "Invalid symbol modifier", "modifier < const|array|flex")
	if s.Modifier&format.ModArray == 0 {
		c.check(s.Dim == 0, "Non-array type with non-zero dimension", "dim == 0 unless array")
	}
	v.sname(c, s.SName)
	c.check(s.Type.Valid(), "Invalid type", "type <= f64x2")
	switch s.Align {
	case 1, 2, 4, 8:
	default:
		c.check(false, "Invalid alignment", "align in {1, 2, 4, 8}")
	}
}

// symbolInit checks the initializer of a symbol.
func (v *Validator) symbolInit(c *checker, d *format.SymbolDirective) {
	if d.Init == 0 {
		return
	}
	c.check(d.S.StorageClass == format.Global || d.S.StorageClass == format.Readonly,
		"Only global and readonly spaces can be initialized", "storageClass in {global, readonly}")

	ini, ok := v.directiveRef(c, 1, d.Init, "Missing initializer", format.DirInit, format.DirLabelInit)
	if !ok || d.S.Dim == 0 {
		return
	}
	var count uint32
	switch ini := ini.(type) {
	case *format.InitDirective:
		count = ini.ElementCount
	case *format.LabelInitDirective:
		count = ini.ElementCount
	}
	c.check(count == d.S.Dim, "Inconsistent array dimensions", "init elementCount == dim")
}

// labels checks that every entry names a label directive.
func (v *Validator) labels(c *checker, labels []uint32) {
	for _, l := range labels {
		if _, ok := v.directiveRef(c, 1, l, "d_labels offset is wrong, not a BrigDirectiveLabel", format.DirLabel); !ok {
			return
		}
	}
}

// signature checks a prototype and its parameter types.
func (v *Validator) signature(c *checker, d *format.SignatureDirective) {
	v.ccode(c, d.CCode)
	v.sname(c, d.SName)

	need := uint64(format.SignatureEntries) + uint64(format.SignatureEntrySize)*(uint64(d.OutCount)+uint64(d.InCount))
	if !c.check(need <= uint64(d.Size), "BrigDirectiveProto size too small for outCount + inCount",
		"24 + 8 * (outCount + inCount) <= size") {
		return
	}
	for _, e := range d.Types {
		c.check(e.Type.Valid(), "Invalid type", "type <= f64x2")
		if e.HasDim == 1 {
			c.check(e.Dim != 0, "dimension not set when hasDim is 1", "hasDim implies dim != 0")
		}
	}
}

func isInitType(t format.DataType, wide bool) bool {
	switch t {
	case format.B1, format.B8, format.B16, format.B32, format.B64:
		return true
	case format.B128:
		return wide
	}
	return false
}
