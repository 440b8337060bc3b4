package section

import "github.com/gogpu/brig/format"

// DecodeOperand decodes the operand at off. It fails when the header is out
// of bounds, the kind is unknown, or the declared size is below the kind's
// minimum.
func DecodeOperand(v View, off uint32) (format.Operand, error) {
	size, raw, err := v.Check(off)
	if err != nil {
		return nil, err
	}
	kind := format.OperandKind(raw)
	if !kind.Valid() {
		return nil, newError(v.id, off, ErrUnknownKind)
	}
	if size < kind.MinSize() {
		return nil, newError(v.id, off, ErrTooSmall)
	}
	h := format.OperandHeader{Offset: off, Size: size, Kind: kind}
	end := off + uint32(size)

	switch kind {
	case format.OperandAddress:
		return &format.AddressOperand{
			OperandHeader: h,
			Type:          format.DataType(v.U16(off + 4)),
			Reserved:      v.U16(off + 6),
			Directive:     v.U32(off + 8),
			Displacement:  v.U32(off + 12),
		}, nil
	case format.OperandArgumentList, format.OperandFunctionList:
		count := v.U32(off + 4)
		return &format.ListOperand{
			OperandHeader: h,
			ElementCount:  count,
			Elements:      offsets(v, off+format.ArgumentListEntries, end, count),
		}, nil
	case format.OperandArgumentRef:
		return &format.ArgumentRefOperand{OperandHeader: h, Arg: v.U32(off + 4)}, nil
	case format.OperandCompound:
		return &format.CompoundOperand{
			OperandHeader: h,
			Type:          format.DataType(v.U16(off + 4)),
			Reserved:      v.U16(off + 6),
			Name:          v.U32(off + 8),
			Reg:           v.U32(off + 12),
			Displacement:  int32(v.U32(off + 16)),
		}, nil
	case format.OperandFunctionRef:
		return &format.FunctionRefOperand{OperandHeader: h, Fn: v.U32(off + 4)}, nil
	case format.OperandImmed:
		o := &format.ImmedOperand{
			OperandHeader: h,
			Type:          format.DataType(v.U16(off + 4)),
			Reserved:      v.U16(off + 6),
		}
		copy(o.Bits[:], v.data[off+8:end])
		return o, nil
	case format.OperandIndirect:
		return &format.IndirectOperand{
			OperandHeader: h,
			Reg:           v.U32(off + 4),
			Type:          format.DataType(v.U16(off + 8)),
			Reserved:      v.U16(off + 10),
			Displacement:  int32(v.U32(off + 12)),
		}, nil
	case format.OperandLabelRef:
		return &format.LabelRefOperand{OperandHeader: h, Label: v.U32(off + 4)}, nil
	case format.OperandOpaque:
		return &format.OpaqueOperand{
			OperandHeader: h,
			Directive:     v.U32(off + 4),
			Reg:           v.U32(off + 8),
			Displacement:  int32(v.U32(off + 12)),
		}, nil
	case format.OperandReg:
		return &format.RegOperand{
			OperandHeader: h,
			Type:          format.DataType(v.U16(off + 4)),
			Reserved:      v.U16(off + 6),
			SName:         v.U32(off + 8),
		}, nil
	case format.OperandRegV2, format.OperandRegV4:
		n := uint32(2)
		if kind == format.OperandRegV4 {
			n = 4
		}
		return &format.RegVectorOperand{
			OperandHeader: h,
			Type:          format.DataType(v.U16(off + 4)),
			Reserved:      v.U16(off + 6),
			Regs:          offsets(v, off+8, end, n),
		}, nil
	case format.OperandBase, format.OperandPad, format.OperandWaveSz:
		return &format.EmptyOperand{OperandHeader: h}, nil
	}
	return nil, newError(v.id, off, ErrUnknownKind)
}

// Operand decodes the operand at off and confirms it is one of kinds.
// A zero offset yields ErrAbsent.
func Operand(v View, off uint32, kinds ...format.OperandKind) (format.Operand, error) {
	if off == 0 {
		return nil, newError(v.id, off, ErrAbsent)
	}
	o, err := DecodeOperand(v, off)
	if err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		return o, nil
	}
	k := o.Header().Kind
	for _, want := range kinds {
		if k == want {
			return o, nil
		}
	}
	return o, newError(v.id, off, ErrWrongKind)
}
