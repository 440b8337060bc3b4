package verify

import (
	"fmt"

	"github.com/gogpu/brig/format"
)

var valueKinds = []format.OperandKind{format.OperandReg, format.OperandRegV2, format.OperandRegV4}

// width checks the width modifier in slot k: a 32-bit immediate holding a
// power of two.
func (c *instCheck) width(k int, typeMsg string) bool {
	c.check(sizeOf(c.ops[k]) == 32, typeMsg, fmt.Sprintf("size(o_operands[%d]) == 32", k))
	imm, ok := c.ops[k].(*format.ImmedOperand)
	if !c.require(ErrFieldDomain, ok, "width modifier must be a BrigOperandImmed", fmt.Sprintf("o_operands[%d] is immed", k)) {
		return false
	}
	c.check(isPowerOf2(uint32(imm.Uint64())), "Width must be a power of 2", "width & (width - 1) == 0")
	return true
}

// memoryValue checks the register, or immediate for stores, that a load or
// store moves. Bit types only move whole q registers.
func (c *instCheck) memoryValue(k int, bitMsg string) {
	t := c.h.Type
	size := sizeOf(c.ops[k])
	if t.IsBit() {
		c.check(t.Size() == size && t.Size() == 128, bitMsg, fmt.Sprintf("size(type) == size(o_operands[%d]) == 128", k))
		return
	}
	c.check(t.IsSigned() || t.IsUnsigned() || t.IsFloat(), "Invalid type", "type is s, u or f")
	c.check(t.Size() <= size && size <= 64, "Destination register is too small",
		fmt.Sprintf("size(type) <= size(o_operands[%d]) <= 64", k))
}

// address checks the address operand in slot k.
func (c *instCheck) address(k int) bool {
	return c.check(c.is(k, addressKinds...),
		"address must be a BrigOperandAddress, BrigOperandIndirect, or BrigOperandCompound",
		fmt.Sprintf("o_operands[%d] in {address, indirect, compound}", k))
}

// storage checks that an access through a named symbol uses the symbol's
// storage class. Flat accesses and register-only addresses are not checked.
func (c *instCheck) storage(k int, class format.StorageClass) {
	if class == format.Flat {
		return
	}
	addr, depth := c.ops[k], 2
	if comp, ok := addr.(*format.CompoundOperand); ok {
		o, ok := c.v.operandRef(c.checker, depth, comp.Name, "Invalid name, should point to BrigOperandAddress", format.OperandAddress)
		if !ok {
			return
		}
		addr, depth = o, depth+1
	}
	a, ok := addr.(*format.AddressOperand)
	if !ok {
		return
	}
	d, ok := c.v.directiveRef(c.checker, depth, a.Directive, "Invalid directive, should point to a BrigDirectiveSymbol", format.DirSymbol)
	if !ok {
		return
	}
	sym := d.(*format.SymbolDirective)
	c.check(sym.S.StorageClass == class, "Storage class does not match the symbol",
		fmt.Sprintf("storageClass == %s", sym.S.StorageClass))
}

func (c *instCheck) ld() {
	i, ok := c.inst.(*format.LdStInst)
	if !c.require(ErrFieldDomain, ok, "Incorrect instruction kind", "kind == ldst") {
		return
	}
	if !c.arity(3) {
		return
	}
	if !c.width(0, "Invalid type") {
		return
	}
	c.check(c.is(1, valueKinds...), "Destination must be a register, registerV2, or registerV4",
		"o_operands[1] in {reg, regv2, regv4}")
	c.memoryValue(1, "Destination must be a q register if type is Bits")
	if c.address(2) {
		c.storage(2, i.StorageClass)
	}
}

func (c *instCheck) st() {
	i, ok := c.inst.(*format.LdStInst)
	if !c.require(ErrFieldDomain, ok, "Incorrect instruction kind", "kind == ldst") {
		return
	}
	if !c.arity(2) {
		return
	}
	c.check(c.is(0, format.OperandReg, format.OperandRegV2, format.OperandRegV4, format.OperandImmed),
		"Destination must be a BrigOperandReg, BrigOperandRegV2, or BrigOperandRegV4 or BrigOperandImmed",
		"o_operands[0] in {reg, regv2, regv4, immed}")
	c.memoryValue(0, "Destination must be a q register if type is b128")
	if c.address(1) {
		c.storage(1, i.StorageClass)
	}
}

// atomic returns the rule of atomic (ret 1) or atomicnoret (ret 0). Cas
// takes one more source.
func atomic(ret int) rule {
	return func(c *instCheck) {
		i, ok := c.inst.(*format.AtomicInst)
		if !c.require(ErrFieldDomain, ok, "Incorrect instruction kind", "kind == atomic") {
			return
		}
		want := 2 + ret
		if i.AtomicOp == format.AtomicCas {
			want++
		}
		if !c.arity(want) {
			return
		}

		t := c.h.Type
		if ret == 1 {
			c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg")
			c.check(t.IsSigned() || t.IsUnsigned() || t.IsBit(), "Invalid type", "type is s, u or b")
			c.check(t.Size() <= 64, "Illegal data type", "size(type) <= 64")
			c.check(t.Size() <= sizeOf(c.ops[0]), "Destination register is too small", "size(type) <= size(o_operands[0])")
		}
		if c.address(ret) {
			c.storage(ret, i.StorageClass)
		}
		for k := ret + 1; k < want; k++ {
			c.source(k, "Source must be a register, immediate, or wave size")
			c.check(c.compatible(k, t), "Incompatible source operand",
				fmt.Sprintf("o_operands[%d] is compatible with type", k))
		}
	}
}

// nullPtr produces the null address of a segment, as wide as the machine
// model's addresses.
func (c *instCheck) nullPtr() {
	t := c.h.Type
	c.check(c.h.Kind == format.InstMem, "Incorrect instruction kind", "kind == mem")
	if !c.arity(1) {
		return
	}
	c.check(t.IsUnsigned(), "Invalid type", "type is u")
	c.check(t.Size() == 32 || t.Size() == 64, "Illegal data type", "size(type) in {32, 64}")
	if !c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		return
	}
	if c.v.ctx.Machine == format.Large {
		c.check(sizeOf(c.ops[0]) == 64, "Destination must be a d register for the large model", "size(o_operands[0]) == 64")
	} else {
		c.check(sizeOf(c.ops[0]) == 32, "Destination must be a s register for the small model", "size(o_operands[0]) == 32")
	}
}

// alloca reserves private memory and returns its b32 address.
func (c *instCheck) alloca() {
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(2) {
		return
	}
	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		c.check(typeOf(c.ops[0]) == format.B32, "Destination register type must be b32", "type(o_operands[0]) == b32")
	}
	if c.source(1, "Source must be a register, immediate, or wave size") && !c.is(1, format.OperandWaveSz) {
		c.check(sizeOf(c.ops[1]) == 32, "Illegal data type", "size(o_operands[1]) == 32")
	}
}
