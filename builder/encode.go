package builder

import (
	"fmt"

	"github.com/gogpu/brig/format"
)

// encodeDirective returns the bytes of d. The header offset is ignored.
//
//nolint:funlen,gocyclo,cyclop // one case per directive kind
func encodeDirective(d format.Directive) record {
	h := d.Header()
	var r record
	switch d := d.(type) {
	case *format.VersionDirective:
		r = newRecord(16, uint16(format.DirVersion))
		r.u32(4, d.CCode)
		r.u16(8, d.Major)
		r.u16(10, d.Minor)
		r.u8(12, uint8(d.Machine))
		r.u8(13, uint8(d.Profile))
		r.u8(14, uint8(d.Ftz))
		r.u8(15, d.Reserved)

	case *format.MethodDirective:
		r = newRecord(40, uint16(h.Kind))
		r.u32(4, d.CCode)
		r.u32(8, d.SName)
		r.u32(12, d.InParamCount)
		r.u32(16, d.FirstScoped)
		r.u32(20, d.OperationCount)
		r.u32(24, d.NextDirective)
		r.u16(28, uint16(d.Attribute))
		r.u16(30, d.Reserved)
		r.u32(32, d.OutParamCount)
		r.u32(36, d.FirstInParam)

	case *format.SymbolDirective:
		r = newRecord(40, uint16(format.DirSymbol))
		putSymbolCommon(r, &d.S)
		r.u32(32, d.Init)
		r.u32(36, d.Reserved)

	case *format.ImageDirective:
		r = newRecord(56, uint16(format.DirImage))
		putSymbolCommon(r, &d.S)
		r.u32(32, d.Width)
		r.u32(36, d.Height)
		r.u32(40, d.Depth)
		r.u32(44, d.Array)
		r.u32(48, uint32(d.Order))
		r.u32(52, uint32(d.Format))

	case *format.SamplerDirective:
		r = newRecord(40, uint16(format.DirSampler))
		putSymbolCommon(r, &d.S)
		r.u8(32, d.Valid)
		r.u8(33, d.Normalized)
		r.u8(34, uint8(d.Filter))
		r.u8(35, uint8(d.BoundaryU))
		r.u8(36, uint8(d.BoundaryV))
		r.u8(37, uint8(d.BoundaryW))
		r.u16(38, d.Reserved)

	case *format.LabelDirective:
		r = newRecord(12, uint16(format.DirLabel))
		r.u32(4, d.CCode)
		r.u32(8, d.SName)

	case *format.LabelListDirective:
		r = newRecord(format.LabelListEntries+4*max(1, len(d.Labels)), uint16(format.DirLabelList))
		r.u32(4, d.CCode)
		r.u32(8, d.Label)
		r.u32(12, d.ElementCount)
		putOffsets(r, format.LabelListEntries, d.Labels)

	case *format.SignatureDirective:
		n := max(1, len(d.Types))
		r = newRecord(format.SignatureEntries+format.SignatureEntrySize*n, uint16(format.DirSignature))
		r.u32(4, d.CCode)
		r.u32(8, d.SName)
		r.u16(12, d.FbarCount)
		r.u16(14, d.Reserved)
		r.u32(16, d.OutCount)
		r.u32(20, d.InCount)
		for i, e := range d.Types {
			p := format.SignatureEntries + i*format.SignatureEntrySize
			r.u16(p, uint16(e.Type))
			r.u8(p+2, e.Align)
			r.u8(p+3, e.HasDim)
			r.u32(p+4, e.Dim)
		}

	case *format.FileDirective:
		r = newRecord(16, uint16(format.DirFile))
		r.u32(4, d.CCode)
		r.u32(8, d.FileID)
		r.u32(12, d.SFilename)

	case *format.NameDirective:
		r = newRecord(12, uint16(h.Kind))
		r.u32(4, d.CCode)
		r.u32(8, d.SName)

	case *format.LocDirective:
		r = newRecord(20, uint16(format.DirLoc))
		r.u32(4, d.CCode)
		r.u32(8, d.SourceFile)
		r.u32(12, d.Line)
		r.u32(16, d.Column)

	case *format.InitDirective:
		r = newRecord(max(24, roundUp(format.InitData+len(d.Data), 8)), uint16(format.DirInit))
		r.u32(4, d.CCode)
		r.u32(8, d.ElementCount)
		r.u16(12, uint16(d.Type))
		r.u16(14, d.Reserved)
		copy(r[format.InitData:], d.Data)

	case *format.LabelInitDirective:
		r = newRecord(16+4*max(1, len(d.Labels)), uint16(format.DirLabelInit))
		r.u32(4, d.CCode)
		r.u32(8, d.ElementCount)
		r.u32(12, d.SName)
		putOffsets(r, 16, d.Labels)

	case *format.ControlDirective:
		r = newRecord(24, uint16(format.DirControl))
		r.u32(4, d.CCode)
		r.u32(8, uint32(d.ControlType))
		for i, v := range d.Values {
			r.u32(12+4*i, v)
		}

	case *format.ArgScopeDirective:
		r = newRecord(8, uint16(h.Kind))
		r.u32(4, d.CCode)

	case *format.BlockNumericDirective:
		r = newRecord(max(16, roundUp(format.BlockNumericData+len(d.Data), 8)), uint16(format.DirBlockNumeric))
		r.u16(4, uint16(d.Type))
		r.u16(6, d.ElementCount)
		copy(r[format.BlockNumericData:], d.Data)

	case *format.BlockStringDirective:
		r = newRecord(8, uint16(format.DirBlockString))
		r.u32(4, d.SName)

	case *format.EmptyDirective:
		r = newRecord(4, uint16(h.Kind))

	default:
		panic(fmt.Sprintf("builder: unsupported directive %T", d))
	}
	return r.sized(h.Size)
}

func putSymbolCommon(r record, s *format.SymbolCommon) {
	r.u32(4, s.CCode)
	r.u32(8, uint32(s.StorageClass))
	r.u16(12, uint16(s.Attribute))
	r.u16(14, s.Reserved)
	r.u32(16, uint32(s.Modifier))
	r.u32(20, s.Dim)
	r.u32(24, s.SName)
	r.u16(28, uint16(s.Type))
	r.u16(30, s.Align)
}

func putOffsets(r record, p int, offs []uint32) {
	for i, o := range offs {
		r.u32(p+4*i, o)
	}
}

// encodeInst returns the bytes of i. The header offset is ignored.
func encodeInst(i format.Inst) record {
	h := i.Header()
	r := newRecord(int(h.Kind.MinSize()), uint16(h.Kind))
	r.u32(4, uint32(h.Opcode))
	r.u16(8, uint16(h.Type))
	r.u16(10, uint16(h.Packing))
	for n, o := range h.Operands {
		r.u32(12+4*n, o)
	}

	switch i := i.(type) {
	case *format.BaseInst:
	case *format.ModInst:
		r.u32(32, uint32(i.Modifier))
	case *format.CmpInst:
		r.u32(32, uint32(i.Modifier))
		r.u32(36, uint32(i.CompareOp))
		r.u16(40, uint16(i.SourceType))
		r.u16(42, i.Reserved)
	case *format.CvtInst:
		r.u32(32, uint32(i.Modifier))
		r.u16(36, uint16(i.SourceType))
		r.u16(38, i.Reserved)
	case *format.MemInst:
		r.u32(32, uint32(i.StorageClass))
	case *format.LdStInst:
		r.u32(32, uint32(i.StorageClass))
		r.u32(36, uint32(i.Semantic))
		r.u32(40, i.EquivClass)
	case *format.BarInst:
		r.u32(32, uint32(i.SyncFlags))
	case *format.SegpInst:
		r.u32(32, uint32(i.StorageClass))
		r.u16(36, uint16(i.SourceType))
		r.u16(38, i.Reserved)
	case *format.AtomicInst:
		r.u32(32, uint32(i.AtomicOp))
		r.u32(36, uint32(i.StorageClass))
		r.u32(40, uint32(i.Semantic))
	case *format.AtomicImageInst:
		r.u32(32, uint32(i.AtomicOp))
		r.u32(36, uint32(i.StorageClass))
		r.u32(40, uint32(i.Semantic))
		r.u32(44, uint32(i.Geom))
	case *format.ImageInst:
		r.u32(32, uint32(i.Geom))
		r.u16(36, uint16(i.SourceType))
		r.u16(38, i.Reserved)
	default:
		panic(fmt.Sprintf("builder: unsupported instruction %T", i))
	}
	return r.sized(h.Size)
}

// encodeOperand returns the bytes of o. The header offset is ignored.
func encodeOperand(o format.Operand) record {
	h := o.Header()
	var r record
	switch o := o.(type) {
	case *format.AddressOperand:
		r = newRecord(16, uint16(format.OperandAddress))
		r.u16(4, uint16(o.Type))
		r.u16(6, o.Reserved)
		r.u32(8, o.Directive)
		r.u32(12, o.Displacement)
	case *format.ListOperand:
		r = newRecord(format.ArgumentListEntries+4*max(1, len(o.Elements)), uint16(h.Kind))
		r.u32(4, o.ElementCount)
		putOffsets(r, format.ArgumentListEntries, o.Elements)
	case *format.ArgumentRefOperand:
		r = newRecord(8, uint16(format.OperandArgumentRef))
		r.u32(4, o.Arg)
	case *format.CompoundOperand:
		r = newRecord(20, uint16(format.OperandCompound))
		r.u16(4, uint16(o.Type))
		r.u16(6, o.Reserved)
		r.u32(8, o.Name)
		r.u32(12, o.Reg)
		r.u32(16, uint32(o.Displacement))
	case *format.FunctionRefOperand:
		r = newRecord(8, uint16(format.OperandFunctionRef))
		r.u32(4, o.Fn)
	case *format.ImmedOperand:
		r = newRecord(24, uint16(format.OperandImmed))
		r.u16(4, uint16(o.Type))
		r.u16(6, o.Reserved)
		copy(r[8:], o.Bits[:])
	case *format.IndirectOperand:
		r = newRecord(16, uint16(format.OperandIndirect))
		r.u32(4, o.Reg)
		r.u16(8, uint16(o.Type))
		r.u16(10, o.Reserved)
		r.u32(12, uint32(o.Displacement))
	case *format.LabelRefOperand:
		r = newRecord(8, uint16(format.OperandLabelRef))
		r.u32(4, o.Label)
	case *format.OpaqueOperand:
		r = newRecord(16, uint16(format.OperandOpaque))
		r.u32(4, o.Directive)
		r.u32(8, o.Reg)
		r.u32(12, uint32(o.Displacement))
	case *format.RegOperand:
		r = newRecord(12, uint16(format.OperandReg))
		r.u16(4, uint16(o.Type))
		r.u16(6, o.Reserved)
		r.u32(8, o.SName)
	case *format.RegVectorOperand:
		r = newRecord(8+4*len(o.Regs), uint16(h.Kind))
		r.u16(4, uint16(o.Type))
		r.u16(6, o.Reserved)
		putOffsets(r, 8, o.Regs)
	case *format.EmptyOperand:
		r = newRecord(4, uint16(h.Kind))
	default:
		panic(fmt.Sprintf("builder: unsupported operand %T", o))
	}
	return r.sized(h.Size)
}
