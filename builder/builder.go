// Package builder encodes BRIG modules.
//
// ModuleBuilder appends records to the four sections and returns the offset
// of each record, so later records can refer to earlier ones. Records are
// given as format values; the builder fills in sizes and kind tags, and
// honors an explicit non-zero Size so malformed records can be produced on
// purpose.
package builder

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/brig/format"
)

// ModuleBuilder builds a BRIG module section by section.
type ModuleBuilder struct {
	dirs     []byte
	code     []byte
	operands []byte
	strings  []byte

	stringIndex map[string]uint32
}

// NewModuleBuilder creates a builder whose sections hold only the zero prefix.
func NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{
		dirs:        make([]byte, format.SectionPrefix, 256),
		code:        make([]byte, format.SectionPrefix, 256),
		operands:    make([]byte, format.SectionPrefix, 256),
		strings:     make([]byte, format.SectionPrefix, 64),
		stringIndex: make(map[string]uint32),
	}
}

// AddString adds a NUL-terminated string and returns its offset. Identical
// strings share one entry.
func (b *ModuleBuilder) AddString(s string) uint32 {
	if off, ok := b.stringIndex[s]; ok {
		return off
	}
	off := b.AddRawString(s)
	b.stringIndex[s] = off
	return off
}

// AddRawString appends s without deduplication.
func (b *ModuleBuilder) AddRawString(s string) uint32 {
	off := uint32(len(b.strings))
	b.strings = append(b.strings, s...)
	b.strings = append(b.strings, 0)
	return off
}

// NextDirective returns the offset the next directive will be placed at,
// before any alignment padding.
func (b *ModuleBuilder) NextDirective() uint32 { return uint32(len(b.dirs)) }

// NextInst returns the offset the next instruction will be placed at.
func (b *ModuleBuilder) NextInst() uint32 { return uint32(len(b.code)) }

// AddDirective appends d and returns its offset. A pad directive is inserted
// first when d's kind needs stronger alignment than the current position.
func (b *ModuleBuilder) AddDirective(d format.Directive) uint32 {
	if a := d.Header().Kind.Align(); a > 4 && uint32(len(b.dirs))%a != 0 {
		b.dirs = append(b.dirs, encodeDirective(&format.EmptyDirective{
			DirectiveHeader: format.DirectiveHeader{Kind: format.DirPad},
		})...)
	}
	off := uint32(len(b.dirs))
	b.dirs = append(b.dirs, encodeDirective(d)...)
	return off
}

// AddInst appends i and returns its offset.
func (b *ModuleBuilder) AddInst(i format.Inst) uint32 {
	off := uint32(len(b.code))
	b.code = append(b.code, encodeInst(i)...)
	return off
}

// AddOperand appends o and returns its offset.
func (b *ModuleBuilder) AddOperand(o format.Operand) uint32 {
	off := uint32(len(b.operands))
	b.operands = append(b.operands, encodeOperand(o)...)
	return off
}

// AddRaw appends raw bytes to a section and returns their offset.
func (b *ModuleBuilder) AddRaw(s format.SectionID, data []byte) uint32 {
	p := b.section(s)
	off := uint32(len(*p))
	*p = append(*p, data...)
	return off
}

// PatchU32 overwrites a little-endian word in section s. It is used to fill
// in forward references once their target is placed.
func (b *ModuleBuilder) PatchU32(s format.SectionID, off, v uint32) {
	binary.LittleEndian.PutUint32((*b.section(s))[off:], v)
}

func (b *ModuleBuilder) section(s format.SectionID) *[]byte {
	switch s {
	case format.Directives:
		return &b.dirs
	case format.Code:
		return &b.code
	case format.Operands:
		return &b.operands
	default:
		return &b.strings
	}
}

// Build returns the module. The builder may keep being used; the returned
// module does not share memory with it.
func (b *ModuleBuilder) Build() *format.Module {
	return &format.Module{
		Directives: clone(b.dirs),
		Code:       clone(b.code),
		Operands:   clone(b.operands),
		Strings:    clone(b.strings),
	}
}

func clone(p []byte) []byte {
	return append([]byte(nil), p...)
}

// Version appends the version directive for a module.
func (b *ModuleBuilder) Version(machine format.Machine, profile format.Profile, ftz format.Ftz) uint32 {
	return b.AddDirective(&format.VersionDirective{
		DirectiveHeader: format.DirectiveHeader{Kind: format.DirVersion},
		Major:           1,
		Machine:         machine,
		Profile:         profile,
		Ftz:             ftz,
	})
}

// Label appends a label directive anchored at the next instruction.
func (b *ModuleBuilder) Label(name string) uint32 {
	return b.AddDirective(&format.LabelDirective{
		DirectiveHeader: format.DirectiveHeader{Kind: format.DirLabel},
		CCode:           b.NextInst(),
		SName:           b.AddString(name),
	})
}

// Symbol appends a symbol directive anchored at the next instruction.
func (b *ModuleBuilder) Symbol(name string, space format.StorageClass, typ format.DataType) uint32 {
	return b.AddDirective(&format.SymbolDirective{
		DirectiveHeader: format.DirectiveHeader{Kind: format.DirSymbol},
		S: format.SymbolCommon{
			CCode:        b.NextInst(),
			StorageClass: space,
			Attribute:    format.NoAttribute,
			SName:        b.AddString(name),
			Type:         typ,
			Align:        uint16(min(8, max(1, typ.Size()/8))),
		},
	})
}

// Reg appends a register operand. The type follows the register class:
// $c is b1, $s is b32, $d is b64 and $q is b128.
func (b *ModuleBuilder) Reg(name string) uint32 {
	return b.AddOperand(&format.RegOperand{
		OperandHeader: format.OperandHeader{Kind: format.OperandReg},
		Type:          RegType(name),
		SName:         b.AddString(name),
	})
}

// RegType returns the data type implied by a register name, or
// format.InvalidType when the class letter is unknown.
func RegType(name string) format.DataType {
	if len(name) < 2 || name[0] != '$' {
		return format.InvalidType
	}
	t, _ := format.RegisterClass(name[1])
	return t
}

// Immed appends an immediate operand holding v.
func (b *ModuleBuilder) Immed(typ format.DataType, v uint64) uint32 {
	o := &format.ImmedOperand{
		OperandHeader: format.OperandHeader{Kind: format.OperandImmed},
		Type:          typ,
	}
	binary.LittleEndian.PutUint64(o.Bits[:], v)
	return b.AddOperand(o)
}

// ImmedFloat appends a 32-bit float immediate.
func (b *ModuleBuilder) ImmedFloat(v float32) uint32 {
	return b.Immed(format.F32, uint64(math.Float32bits(v)))
}

// WaveSz appends a wave size operand.
func (b *ModuleBuilder) WaveSz() uint32 {
	return b.AddOperand(&format.EmptyOperand{
		OperandHeader: format.OperandHeader{Kind: format.OperandWaveSz},
	})
}

// Address appends an address operand naming the symbol at dir.
func (b *ModuleBuilder) Address(typ format.DataType, dir uint32) uint32 {
	return b.AddOperand(&format.AddressOperand{
		OperandHeader: format.OperandHeader{Kind: format.OperandAddress},
		Type:          typ,
		Directive:     dir,
	})
}

// LabelRef appends a label reference operand.
func (b *ModuleBuilder) LabelRef(label uint32) uint32 {
	return b.AddOperand(&format.LabelRefOperand{
		OperandHeader: format.OperandHeader{Kind: format.OperandLabelRef},
		Label:         label,
	})
}

// Inst appends a base instruction.
func (b *ModuleBuilder) Inst(op format.Opcode, typ format.DataType, operands ...uint32) uint32 {
	i := &format.BaseInst{InstHeader: Header(format.InstBase, op, typ, operands...)}
	return b.AddInst(i)
}

// Header returns an instruction header with the given operands in order.
func Header(kind format.InstKind, op format.Opcode, typ format.DataType, operands ...uint32) format.InstHeader {
	h := format.InstHeader{Kind: kind, Opcode: op, Type: typ}
	copy(h.Operands[:], operands)
	return h
}
