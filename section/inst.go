package section

import "github.com/gogpu/brig/format"

// DecodeInst decodes the instruction at off. It fails when the header is out
// of bounds, the kind is unknown, or the declared size is below the kind's
// minimum.
func DecodeInst(v View, off uint32) (format.Inst, error) {
	size, raw, err := v.Check(off)
	if err != nil {
		return nil, err
	}
	kind := format.InstKind(raw)
	if !kind.Valid() {
		return nil, newError(v.id, off, ErrUnknownKind)
	}
	if size < kind.MinSize() {
		return nil, newError(v.id, off, ErrTooSmall)
	}
	h := format.InstHeader{
		Offset:  off,
		Size:    size,
		Kind:    kind,
		Opcode:  format.Opcode(v.U32(off + 4)),
		Type:    format.DataType(v.U16(off + 8)),
		Packing: format.Packing(v.U16(off + 10)),
	}
	for i := range h.Operands {
		h.Operands[i] = v.U32(off + 12 + uint32(i)*4)
	}

	switch kind {
	case format.InstBase:
		return &format.BaseInst{InstHeader: h}, nil
	case format.InstMod:
		return &format.ModInst{InstHeader: h, Modifier: format.AluModifier(v.U32(off + 32))}, nil
	case format.InstCmp:
		return &format.CmpInst{
			InstHeader: h,
			Modifier:   format.AluModifier(v.U32(off + 32)),
			CompareOp:  format.CompareOp(v.U32(off + 36)),
			SourceType: format.DataType(v.U16(off + 40)),
			Reserved:   v.U16(off + 42),
		}, nil
	case format.InstCvt:
		return &format.CvtInst{
			InstHeader: h,
			Modifier:   format.AluModifier(v.U32(off + 32)),
			SourceType: format.DataType(v.U16(off + 36)),
			Reserved:   v.U16(off + 38),
		}, nil
	case format.InstMem:
		return &format.MemInst{InstHeader: h, StorageClass: format.StorageClass(v.U32(off + 32))}, nil
	case format.InstLdSt:
		return &format.LdStInst{
			InstHeader:   h,
			StorageClass: format.StorageClass(v.U32(off + 32)),
			Semantic:     format.MemorySemantic(v.U32(off + 36)),
			EquivClass:   v.U32(off + 40),
		}, nil
	case format.InstBar:
		return &format.BarInst{InstHeader: h, SyncFlags: format.SyncFlags(v.U32(off + 32))}, nil
	case format.InstSegp:
		return &format.SegpInst{
			InstHeader:   h,
			StorageClass: format.StorageClass(v.U32(off + 32)),
			SourceType:   format.DataType(v.U16(off + 36)),
			Reserved:     v.U16(off + 38),
		}, nil
	case format.InstAtomic:
		return &format.AtomicInst{
			InstHeader:   h,
			AtomicOp:     format.AtomicOp(v.U32(off + 32)),
			StorageClass: format.StorageClass(v.U32(off + 36)),
			Semantic:     format.MemorySemantic(v.U32(off + 40)),
		}, nil
	case format.InstAtomicImage:
		return &format.AtomicImageInst{
			InstHeader:   h,
			AtomicOp:     format.AtomicOp(v.U32(off + 32)),
			StorageClass: format.StorageClass(v.U32(off + 36)),
			Semantic:     format.MemorySemantic(v.U32(off + 40)),
			Geom:         format.Geom(v.U32(off + 44)),
		}, nil
	case format.InstImage:
		return &format.ImageInst{
			InstHeader: h,
			Geom:       format.Geom(v.U32(off + 32)),
			SourceType: format.DataType(v.U16(off + 36)),
			Reserved:   v.U16(off + 38),
		}, nil
	}
	return nil, newError(v.id, off, ErrUnknownKind)
}
