package verify

import (
	"fmt"

	"github.com/gogpu/brig/format"
)

// controlModifier rejects arithmetic modifiers on branches and calls.
func (c *instCheck) controlModifier() {
	m, ok := c.modifier()
	if !ok {
		return
	}
	c.check(!m.FloatOrInt(), "Incompatible ALU modifier", "!floatOrInt")
	c.check(m.Rounding() == 0, "Incompatible ALU modifier", "rounding == 0")
	c.check(!m.Ftz(), "Incompatible ALU modifier", "!ftz")
	c.check(!m.Approx(), "Incompatible ALU modifier", "!approx")
}

// branch returns the rule of cbr (nary 3) and brn (nary 2). The target is a
// label or register; the long form adds a b32 register and names the target
// through a label or label list address.
func branch(nary int) rule {
	return func(c *instCheck) {
		c.check(c.isKind(format.InstBase, format.InstMod), "Incorrect instruction kind", "kind in {base, mod}")
		if !c.require(ErrFieldDomain, c.n == nary || c.n == nary+1, "Incorrect number of operands",
			fmt.Sprintf("operand count in {%d, %d}", nary, nary+1)) {
			return
		}
		c.controlModifier()

		imm, ok := c.ops[0].(*format.ImmedOperand)
		if !c.require(ErrFieldDomain, ok, "o_operands[0] must be a BrigOperandImmed", "o_operands[0] is immed") {
			return
		}
		c.check(imm.Type.IsBit(), "Invalid type", "type(o_operands[0]) is b")
		c.check(imm.Type.Size() == 32, "Invalid type size", "size(o_operands[0]) == 32")
		c.check(isPowerOf2(uint32(imm.Uint64())), "Width must be a power of 2", "width & (width - 1) == 0")

		if nary == 3 {
			c.check(c.is(1, format.OperandReg), "Condition must be a register", "o_operands[1] is reg")
			c.check(sizeOf(c.ops[1]) == 1, "Condition must be a c register", "size(o_operands[1]) == 1")
		}

		last := nary - 1
		if c.n == nary {
			c.check(c.is(last, format.OperandLabelRef, format.OperandReg), "Destination must be a LabelRef or Reg",
				fmt.Sprintf("o_operands[%d] in {labelref, reg}", last))
			return
		}
		c.check(c.is(last, format.OperandReg), "Destination must be a register", fmt.Sprintf("o_operands[%d] is reg", last))
		c.check(sizeOf(c.ops[last]) == 32, "Invalid type size", fmt.Sprintf("size(o_operands[%d]) == 32", last))
		c.check(c.is(nary, format.OperandLabelRef, format.OperandAddress), "Destination must be a LabelRef or Address",
			fmt.Sprintf("o_operands[%d] in {labelref, address}", nary))
	}
}

func (c *instCheck) barrier() {
	i, ok := c.inst.(*format.BarInst)
	if !c.require(ErrFieldDomain, ok, "Incorrect instruction kind", "kind == bar") {
		return
	}
	if !c.arity(1) {
		return
	}
	if c.check(c.is(0, format.OperandImmed), "Destination should be immediate", "o_operands[0] is immed") {
		c.check(typeOf(c.ops[0]) == format.B32, "Type of immediate should be b32", "type(o_operands[0]) == b32")
	}
	c.typeIn("Type should be b32", format.B32)
	c.check(i.SyncFlags&^(format.SyncGroup|format.SyncGlobal) == 0,
		"SyncFlags should be global, group, or both", "syncFlags & ^(group | global) == 0")
	c.noVector("Barrier cannot accept vector types")
}

// fbar returns the rule of an fbar opcode taking nary sources.
func fbar(nary int) rule {
	return func(c *instCheck) {
		c.typeIn("Type should be b64", format.B64)
		c.paraSyn(nary)
	}
}

// paraSyn returns the rule of a cross-lane opcode of type t.
func paraSyn(name string, t format.DataType, nary int) rule {
	return func(c *instCheck) {
		c.check(c.h.Type == t, "Type of "+name+" should be "+t.String(), "type == "+t.String())
		c.paraSyn(nary)
	}
}

// paraSyn is the rule shared by fbar and the cross-lane opcodes.
func (c *instCheck) paraSyn(nary int) {
	t := c.h.Type
	if !c.arity(nary + 1) {
		return
	}
	c.typeIn("Type should be b64, u32 or b32", format.B64, format.U32, format.B32)
	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		c.check(c.compatible(0, t), "Incompatible destination operand", "o_operands[0] is compatible with type")
	}
	for k := 1; k <= nary; k++ {
		if c.source(k, "Source should be register, immediate or waveSz") {
			c.check(c.compatible(k, t), "Incompatible source operand",
				fmt.Sprintf("o_operands[%d] is compatible with type", k))
		}
	}
	c.noVector("ParaSynInst cannot accept vector types")
}

func (c *instCheck) sync() {
	c.arity(0)
}

// countMask checks count (u32) and mask (b64) over a lane predicate.
func (c *instCheck) countMask() {
	t, name := format.U32, "Count"
	if c.h.Opcode == format.OpMask {
		t, name = format.B64, "Mask"
	}
	if !c.arity(2) {
		return
	}
	c.check(c.h.Type == t, "Type of "+name+" should be "+t.String(), "type == "+t.String())
	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") && t == format.B64 {
		c.check(c.compatible(0, t), "Incompatible destination operand", "o_operands[0] is compatible with type")
	}
	if c.source(1, "Source must be a register, immediate, or wave size") {
		st := typeOf(c.ops[1])
		c.check(st == format.B1 || st == format.B32, "Source should be c or s register", "type(o_operands[1]) in {b1, b32}")
	}
	c.noVector(name + " cannot accept vector types")
}

// call checks a direct or indirect call: width, output arguments, target,
// input arguments and, for indirect calls, the candidate functions.
func (c *instCheck) call() {
	c.check(c.isKind(format.InstBase, format.InstMod), "Incorrect instruction kind", "kind in {base, mod}")
	if !c.require(ErrFieldDomain, c.n >= 4, "Incorrect number of operands", "operand count >= 4") {
		return
	}
	c.controlModifier()

	if !c.width(0, "Invalid type") {
		return
	}
	c.check(c.is(1, format.OperandArgumentList), "args must be an argumentList", "o_operands[1] is argumentlist")
	c.check(c.is(2, format.OperandFunctionRef, format.OperandReg), "functionRef must be a register or function reference",
		"o_operands[2] in {functionref, reg}")
	c.check(c.is(3, format.OperandArgumentList), "args must be an argumentList", "o_operands[3] is argumentlist")
	if c.n == 5 {
		c.check(c.is(4, format.OperandFunctionList), "funcs must be a functionList", "o_operands[4] is functionlist")
	}
}

func (c *instCheck) ret() {
	if !c.require(ErrFieldDomain, c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base") {
		return
	}
	c.arity(0)
}

// sysCall checks a system call: a b32 result, an immediate call number and
// three 32-bit arguments.
func (c *instCheck) sysCall() {
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(5) {
		return
	}
	c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg")
	c.check(sizeOf(c.ops[0]) == 32, "Destination register type must be b32", "size(o_operands[0]) == 32")
	c.check(c.is(1, format.OperandImmed), "number must be an immediate", "o_operands[1] is immed")
	c.check(sizeOf(c.ops[1]) == 32, "immediate type must be b32", "size(o_operands[1]) == 32")
	for k := 2; k < 5; k++ {
		if !c.is(k, format.OperandWaveSz) {
			c.check(sizeOf(c.ops[k]) == 32, "Illegal data type", fmt.Sprintf("size(o_operands[%d]) == 32", k))
		}
		c.source(k, "Source must be a register, immediate, or wave size")
	}
}

// special returns the rule of a dispatch query opcode. Queries with one
// source take an immediate dimension.
func special(nary int) rule {
	return func(c *instCheck) {
		c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
		if !c.arity(nary + 1) {
			return
		}
		c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg")
		c.check(sizeOf(c.ops[0]) == 32, "Destination register type must be b32", "size(o_operands[0]) == 32")
		if nary == 0 {
			return
		}
		c.check(sizeOf(c.ops[1]) == 32, "Invalid type", "size(o_operands[1]) == 32")
		imm, ok := c.ops[1].(*format.ImmedOperand)
		if !c.require(ErrFieldDomain, ok, "number must be a BrigOperandImmed", "o_operands[1] is immed") {
			return
		}
		c.check(imm.Uint64() <= 2, "dimension value must be 0, 1 or 2", "dimension <= 2")
	}
}

func (c *instCheck) clock() {
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(1) {
		return
	}
	c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg")
	c.check(sizeOf(c.ops[0]) == 64, "Destination register type must be b64", "size(o_operands[0]) == 64")
}

func (c *instCheck) debugTrap() {
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(1) {
		return
	}
	c.source(0, "Source must be a register, immediate, or wave size")
}

func (c *instCheck) nop() {
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	c.arity(0)
}
