package verify

import (
	"fmt"

	"github.com/gogpu/brig/format"
)

// domain restricts the instruction type of an arithmetic opcode.
type domain uint8

const (
	anyType domain = iota
	notBit
	integer
	floating
	signedOrFloat
)

// arith describes an arithmetic opcode: its source count and the
// restrictions it adds to the common arithmetic rule.
type arith struct {
	name string
	nary int

	domain domain
	// types, when set, lists the only admitted instruction types.
	types []format.DataType
	// scalar, when set, lists the admitted non-vector types.
	scalar []format.DataType

	noMod      bool
	baseOnly   bool
	noRounding bool
	noFtz      bool
	noVector   bool
	noSat      bool
}

func (a arith) check(c *instCheck) {
	t := c.h.Type

	switch a.domain {
	case notBit:
		c.check(!t.IsBit(), a.name+" is not valid for bit types", "type is not b")
	case integer:
		c.check(t.IsInteger(), a.name+" is only valid for signed and unsigned types", "type is s or u")
	case floating:
		c.check(t.IsFloat(), a.name+" is only valid for floating point types", "type is f")
	case signedOrFloat:
		c.check(t.IsSigned() || t.IsFloat(), a.name+" is only valid for signed and floating point types", "type is s or f")
	}
	if len(a.types) > 0 {
		msg := "Type of " + a.name + " should be " + typeList(a.types)
		if a.domain == anyType && !a.noMod {
			msg = "Type should be " + typeList(a.types)
		}
		c.typeIn(msg, a.types...)
	}
	if len(a.scalar) > 0 && !t.IsVector() {
		c.typeIn(a.name+" should be "+typeList(a.scalar), a.scalar...)
	}

	if a.noMod {
		c.check(c.h.Kind != format.InstMod, "Incorrect instruction kind", "kind != mod")
	}
	if a.baseOnly {
		c.check(c.h.Kind == format.InstBase, a.name+" must be BrigInstBase", "kind == base")
	}
	if mod, ok := c.inst.(*format.ModInst); ok {
		m := mod.Modifier
		if a.noRounding {
			c.check(m.Rounding() == 0, a.name+" does not support rounding", "rounding == 0")
		}
		if a.noFtz {
			c.check(!m.Ftz(), a.name+" does not support ftz", "!ftz")
		}
	}
	if a.noVector {
		c.noVector(a.name + " cannot accept vector types")
	}
	if a.noSat {
		c.check(!c.h.Packing.IsSaturated(), a.name+" cannot saturate", "packing is not saturating")
	}

	c.arithmetic(a.nary)
}

// arithmetic is the rule shared by every arithmetic opcode: a register
// destination and nary value sources of the instruction type.
//
//nolint:cyclop // the common arithmetic rule
func (c *instCheck) arithmetic(nary int) {
	t := c.h.Type
	p := c.h.Packing

	c.check(t.IsSigned() || t.IsUnsigned() || t.IsFloat() || t.IsBit(), "Invalid type", "type is s, u, f or b")
	c.check(c.isKind(format.InstBase, format.InstMod), "Incorrect instruction kind", "kind in {base, mod}")
	if !c.arity(nary + 1) {
		return
	}

	c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg")
	for k := 1; k <= nary; k++ {
		if c.check(c.is(k, format.OperandReg, format.OperandImmed, format.OperandWaveSz),
			"Source must be a register, immediate, or wave size",
			fmt.Sprintf("o_operands[%d] in {reg, immed, wavesz}", k)) {
			c.check(c.compatible(k, t), "Incompatible source operand",
				fmt.Sprintf("o_operands[%d] is compatible with %s", k, t))
		}
	}

	if c.h.Kind == format.InstMod {
		c.check(t.IsFloat(), "BrigInstMod is only valid for floating point", "mod implies type is f")
		if m, ok := c.modifier(); ok {
			c.check(!m.Approx(), "Incompatible ALU modifier", "!approx")
			c.check(!m.Fbar(), "Incompatible ALU modifier", "!fbar")
			c.check(p == format.NoPacking, "Packed operations cannot accept ALU modifiers", "packing == none")
		}
	}

	if t.IsFloat() {
		c.check(!p.IsSaturated(), "Floating point arithmetic cannot saturate", "float implies packing is not saturating")
	}
	if t.IsVector() {
		c.check(format.IsValidPacking(p, nary), "Vectors must have a packing", "packing suits the source count")
	} else {
		c.check(p == format.NoPacking, "Non-vectors must not have a packing", "packing == none")
	}

	c.check(t.Size() <= 64, "Illegal data type", "size(type) <= 64")
	if dest, ok := c.ops[0].(*format.RegOperand); ok {
		c.check(t.Size() <= dest.Type.Size(), "Destination register is too small", "size(type) <= size(dest)")
	}
}

// shift checks shl and shr: a value source of the instruction type and a
// b32 shift amount.
func (c *instCheck) shift() {
	t := c.h.Type
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(3) {
		return
	}
	c.check(t.IsInteger(), "Type is only valid for signed and unsigned types", "type is s or u")

	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		c.check(c.compatible(0, t), "Incompatible destination operand", "o_operands[0] is compatible with type")
	}
	if c.source(1, "Source must be a register, immediate, or wave size") && c.is(1, format.OperandReg, format.OperandImmed) {
		c.check(c.compatible(1, t), "Incompatible source operand", "o_operands[1] is compatible with type")
	}
	if c.source(2, "Source must be a register, immediate, or wave size") && c.is(2, format.OperandReg, format.OperandImmed) {
		c.check(typeOf(c.ops[2]) == format.B32, "Type of src1 should be Brigb32", "type(o_operands[2]) == b32")
	}

	if t.IsVector() {
		c.typeIn("Length should be 8x4, 8x8, 16x2, 16x4 or 32x2",
			format.U8x4, format.S8x4, format.U8x8, format.S8x8,
			format.U16x2, format.S16x2, format.U16x4, format.S16x4,
			format.U32x2, format.S32x2)
		c.check(c.h.Packing == format.PackPS, "Packing should be BrigPackPS", "packing == ps")
	} else {
		c.check(t.Size() == 32 || t.Size() == 64, "If regular form, length should be 32 or 64", "size(type) in {32, 64}")
		c.check(c.h.Packing == format.NoPacking, "Packing should be BrigNoPacking", "packing == none")
	}
}

func (c *instCheck) popCount() {
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	c.typeIn("Type of PopCount should be b32 or b64", wordTypes...)
	c.noVector("PopCount cannot accept vector types")
	if !c.arity(2) {
		return
	}
	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		c.check(typeOf(c.ops[0]) == format.B32, "Type Destination of PopCount must be Brigb32", "type(o_operands[0]) == b32")
	}
	if c.source(1, "Source should be reg, immediate or WaveSz") && c.is(1, format.OperandReg, format.OperandImmed) {
		c.check(c.compatible(1, c.h.Type), "Incompatible source operand", "o_operands[1] is compatible with type")
	}
}

func (c *instCheck) extract() {
	t := c.h.Type
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	c.typeIn("Type of Extract should be b32 or b64", wordTypes...)
	c.noVector("Extract cannot accept vector types")
	if !c.arity(4) {
		return
	}
	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		c.check(c.compatible(0, t), "Incompatible destination operand", "o_operands[0] is compatible with type")
	}
	for k := 1; k <= 3; k++ {
		c.source(k, "Source must be a register, immediate, or wave size")
	}
	c.check(c.compatible(1, t), "Incompatible source operand", "o_operands[1] is compatible with type")
	if c.is(2, format.OperandReg, format.OperandImmed) {
		c.check(typeOf(c.ops[2]) == format.B32, "Type src1 of Extract should be b32", "type(o_operands[2]) == b32")
	}
	if c.is(3, format.OperandReg, format.OperandImmed) {
		c.check(typeOf(c.ops[3]) == format.B32, "Type src2 of Extract should be b32", "type(o_operands[3]) == b32")
	}
}

// bitScan checks firstbit and lastbit.
func (c *instCheck) bitScan() {
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	c.typeIn("Type should be b32 or b64", wordTypes...)
	c.noVector("First and Last cannot accept vector types")
	if !c.arity(2) {
		return
	}
	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		c.check(typeOf(c.ops[0]) == format.B32, "Type of destination should be b32", "type(o_operands[0]) == b32")
	}
	if c.source(1, "Source should be register, immediate or wave size") {
		c.check(c.compatible(1, c.h.Type), "Incompatible source operand", "o_operands[1] is compatible with type")
	}
}
