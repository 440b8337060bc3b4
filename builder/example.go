package builder

import "github.com/gogpu/brig/format"

// Method record fields patched once the body is known.
const (
	methodFirstScoped  = 16
	methodNextDir      = 24
	methodFirstInParam = 36
)

// Example returns a small valid large-model module: a kernel that loads its
// kernarg, adds to a register, copies a register and branches back to a
// label, followed by a debug block.
func Example() *format.Module {
	b := NewModuleBuilder()
	b.Version(format.Large, format.Full, format.Nosftz)

	kernel := b.AddDirective(&format.MethodDirective{
		DirectiveHeader: format.DirectiveHeader{Kind: format.DirKernel},
		CCode:           b.NextInst(),
		SName:           b.AddString("&main"),
		InParamCount:    1,
		Attribute:       format.NoAttribute,
	})
	in := b.Symbol("%in", format.Kernarg, format.U64)
	b.PatchU32(format.Directives, kernel+methodFirstInParam, in)
	b.PatchU32(format.Directives, kernel+methodFirstScoped, b.NextDirective())

	width := b.Immed(format.B32, 1)
	d0 := b.Reg("$d0")
	d1 := b.Reg("$d1")
	s1 := b.Reg("$s1")

	b.AddInst(&format.LdStInst{
		InstHeader:   Header(format.InstLdSt, format.OpLd, format.U64, width, d0, b.Address(format.B64, in)),
		StorageClass: format.Kernarg,
	})
	loop := b.Label("@loop")
	b.Inst(format.OpAdd, format.U32, s1, s1, b.Immed(format.B32, 4))
	b.Inst(format.OpMov, format.B64, d1, d0)
	b.Inst(format.OpBrn, format.B32, width, b.LabelRef(loop))
	b.Inst(format.OpRet, format.B32)
	b.PatchU32(format.Directives, kernel+methodNextDir, b.NextDirective())

	b.AddDirective(&format.NameDirective{
		DirectiveHeader: format.DirectiveHeader{Kind: format.DirBlockStart},
		CCode:           b.NextInst(),
		SName:           b.AddString("debug"),
	})
	b.AddDirective(&format.BlockStringDirective{
		DirectiveHeader: format.DirectiveHeader{Kind: format.DirBlockString},
		SName:           b.AddString("brig example"),
	})
	b.AddDirective(&format.EmptyDirective{
		DirectiveHeader: format.DirectiveHeader{Kind: format.DirBlockEnd},
	})
	return b.Build()
}
