package verify

import (
	"github.com/gogpu/brig/format"
)

var addressKinds = []format.OperandKind{format.OperandAddress, format.OperandIndirect, format.OperandCompound}

func (c *instCheck) lda() {
	t := c.h.Type
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(2) {
		return
	}
	c.typeIn("Length should be 32 or 64", format.U32, format.U64)
	c.noVector("Lda cannot accept vector types")
	if c.check(c.is(0, format.OperandReg), "Destination should be BrigOperandReg", "o_operands[0] is reg") {
		c.check(c.compatible(0, t), "Incompatible destination operand", "o_operands[0] is compatible with type")
	}
	c.check(c.is(1, addressKinds...),
		"Src should be BrigOperandAddress, BrigOperandIndirect and BrigOperandCompound",
		"o_operands[1] in {address, indirect, compound}")
}

// ldc loads the address of a label or function. Function addresses follow
// the machine model.
func (c *instCheck) ldc() {
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(2) {
		return
	}
	c.typeIn("Type should be b32 or b64", wordTypes...)
	c.noVector("Ldc cannot accept vector types")
	if !c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		return
	}
	dest := typeOf(c.ops[0])

	switch {
	case c.is(1, format.OperandLabelRef):
		c.check(dest == format.B32, "Type of dest should be b32 if the source is label", "type(o_operands[0]) == b32")
	case c.is(1, format.OperandFunctionRef):
		if c.v.ctx.Machine == format.Large {
			c.check(dest == format.B64, "Type of dest should be b64 if machine model is large", "type(o_operands[0]) == b64")
		} else {
			c.check(dest == format.B32, "Type of dest should be b32 if machine model is small", "type(o_operands[0]) == b32")
		}
	default:
		c.check(false, "Src should be LabelRef and FunctionRef", "o_operands[1] in {labelref, functionref}")
	}
}

//nolint:cyclop // one branch per register shape
func (c *instCheck) mov() {
	t := c.h.Type
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(2) {
		return
	}
	c.typeIn("Length should be 1, 32, 64 or 128", format.B1, format.B32, format.B64, format.B128)
	c.noVector("Mov cannot accept vector types")

	dest, src := c.ops[0], c.ops[1]
	if !c.check(isOperand(dest, format.OperandReg, format.OperandRegV2, format.OperandRegV4),
		"Destination of Mov should be reg, regv2 or regv4", "o_operands[0] in {reg, regv2, regv4}") {
		return
	}
	if !c.check(isOperand(src, format.OperandReg, format.OperandRegV2, format.OperandRegV4, format.OperandImmed),
		"Src of Mov should be reg, regv2, regv4 or immediate", "o_operands[1] in {reg, regv2, regv4, immed}") {
		return
	}

	if isOperand(dest, format.OperandReg) {
		c.check(compatible(t, dest), "Incompatible destination operand", "o_operands[0] is compatible with type")
	}
	if isOperand(src, format.OperandReg) {
		c.check(compatible(t, src), "Incompatible source operand", "o_operands[1] is compatible with type")
	}

	switch {
	case isOperand(dest, format.OperandRegV2):
		c.check(isOperand(src, format.OperandReg) && typeOf(src) == format.B64 && typeOf(dest) == format.B32,
			"Src should point to d reg and type of dest should be b32", "o_operands[1] is a b64 reg and type(o_operands[0]) == b32")
	case isOperand(src, format.OperandRegV2):
		c.check(isOperand(dest, format.OperandReg) && typeOf(dest) == format.B64 && typeOf(src) == format.B32,
			"Dest should point to d reg and type of src should be b32", "o_operands[0] is a b64 reg and type(o_operands[1]) == b32")
	case isOperand(dest, format.OperandRegV4):
		c.check(isOperand(src, format.OperandReg) && typeOf(src) == format.B128 && typeOf(dest) == format.B32,
			"Src should point to q reg and type of dest should be b32", "o_operands[1] is a b128 reg and type(o_operands[0]) == b32")
	case isOperand(src, format.OperandRegV4):
		c.check(isOperand(dest, format.OperandReg) && typeOf(dest) == format.B128 && typeOf(src) == format.B32,
			"Dest should point to q reg and type of src should be b32", "o_operands[0] is a b128 reg and type(o_operands[1]) == b32")
	}
}

// movd moves a 32-bit half into a 64-bit register.
func (c *instCheck) movd() {
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(3) {
		return
	}
	c.typeIn("Type of Movd should be Brigb64", format.B64)
	c.noVector("Movd cannot accept vector types")
	if c.check(c.is(0, format.OperandReg), "Destination should be register", "o_operands[0] is reg") {
		c.check(typeOf(c.ops[0]) == format.B64, "Destination should be a d register", "type(o_operands[0]) == b64")
	}
	if c.check(c.is(1, format.OperandReg), "Src0 should be register", "o_operands[1] is reg") {
		c.check(typeOf(c.ops[1]) == format.B64, "Src0 should be a d register", "type(o_operands[1]) == b64")
	}
	if c.check(c.is(2, format.OperandReg), "Src1 should be register", "o_operands[2] is reg") {
		c.check(typeOf(c.ops[2]) == format.B32, "Src1 should be a s register", "type(o_operands[2]) == b32")
	}
}

// movs extracts a 32-bit half of a 64-bit register.
func (c *instCheck) movs() {
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(2) {
		return
	}
	c.typeIn("Type of Movs should be Brigb32", format.B32)
	c.noVector("Movs cannot accept vector types")
	if c.check(c.is(0, format.OperandReg), "Destination should be register", "o_operands[0] is reg") {
		c.check(typeOf(c.ops[0]) == format.B32, "Destination should be a s register", "type(o_operands[0]) == b32")
	}
	if c.check(c.is(1, format.OperandReg), "Src should be register", "o_operands[1] is reg") {
		c.check(typeOf(c.ops[1]) == format.B64, "Src should be a d register", "type(o_operands[1]) == b64")
	}
}

func (c *instCheck) shuffle() {
	t := c.h.Type
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(4) {
		return
	}
	c.typeIn("Length of Shuffle should be 8x4, 8x8, 16x2, 16x4 or 32x2", lanesTypes...)
	c.check(c.is(0, format.OperandReg), "Destination should be reg", "o_operands[0] is reg")
	c.check(c.is(1, format.OperandReg, format.OperandImmed), "Src0 should be reg or immed", "o_operands[1] in {reg, immed}")
	c.check(c.is(2, format.OperandReg, format.OperandImmed), "Src1 should be reg or immed", "o_operands[2] in {reg, immed}")
	c.check(c.is(3, format.OperandImmed), "Src2 should be immed", "o_operands[3] is immed")
	for k := 0; k < 4; k++ {
		c.check(c.compatible(k, t), "Incompatible operand", "operands are compatible with type")
	}
	c.check(t.IsVector(), "Shuffle should accept vector types", "type is a vector")
	c.check(c.h.Packing == format.NoPacking, "The packing should be set to BrigNoPacking", "packing == none")
}

func (c *instCheck) unpack() {
	t := c.h.Type
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(3) {
		return
	}
	c.typeIn("Length of Unpack should be 8x4, 8x8, 16x2, 16x4 or 32x2", lanesTypes...)
	c.check(c.is(0, format.OperandReg), "Destination should be reg", "o_operands[0] is reg")
	for k := 1; k < 3; k++ {
		c.check(c.is(k, format.OperandReg, format.OperandImmed), "Src should be reg or immed", "sources in {reg, immed}")
	}
	for k := 0; k < 3; k++ {
		c.check(c.compatible(k, t), "Incompatible source operand", "operands are compatible with type")
	}
	c.check(t.IsVector(), "Unpack should accept vector types", "type is a vector")
	c.check(c.h.Packing == format.NoPacking, "The packing should be set to BrigNoPacking", "packing == none")
}

// cmov selects between two sources by a b1 condition, or lane by lane for
// packed types.
func (c *instCheck) cmov() {
	t := c.h.Type
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(4) {
		return
	}
	c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg")
	for k := 1; k < 4; k++ {
		c.check(c.is(k, format.OperandReg, format.OperandImmed), "Source should be reg or immediate", "sources in {reg, immed}")
	}
	c.check(c.compatible(2, t), "Incompatible src1 operand", "o_operands[2] is compatible with type")
	c.check(c.compatible(3, t), "Incompatible src2 operand", "o_operands[3] is compatible with type")

	if t.IsVector() {
		c.check(t.IsSigned() || t.IsUnsigned() || t.IsFloat(), "Invalid type", "type is s, u or f")
		c.check(c.compatible(1, t), "Incompatible src0 operand", "o_operands[1] is compatible with type")
		c.check(c.h.Packing == format.PackPP, "Packing should be pp", "packing == pp")
	} else {
		c.typeIn("Type should be b1, b32 and b64", logicTypes...)
		c.check(typeOf(c.ops[1]) == format.B1, "Type of Src0 should be b1", "type(o_operands[1]) == b1")
		c.check(c.h.Packing == format.NoPacking, "Packing should be nopacking", "packing == none")
	}
}

// class tests a float against a b32 class mask into a control register.
func (c *instCheck) class() {
	c.check(c.h.Kind == format.InstBase, "Incorrect instruction kind", "kind == base")
	if !c.arity(3) {
		return
	}
	c.typeIn("Type of Class should be f32 or f64", floatTypes...)
	c.noVector("Class cannot accept vector types")
	if c.check(c.is(0, format.OperandReg), "Destination should be register", "o_operands[0] is reg") {
		c.check(typeOf(c.ops[0]) == format.B1, "Destination should be a c reg", "type(o_operands[0]) == b1")
	}
	for k := 1; k < 3; k++ {
		c.check(c.is(k, format.OperandReg, format.OperandImmed), "Source should be register or immediate", "sources in {reg, immed}")
	}
	c.check(c.compatible(1, c.h.Type), "Incompatible source operand", "o_operands[1] is compatible with type")
	c.check(typeOf(c.ops[2]) == format.B32, "Type of src1 should be Brigb32", "type(o_operands[2]) == b32")
}
