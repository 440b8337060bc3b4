package verify

import (
	"fmt"

	"github.com/gogpu/brig/format"
)

var (
	cmpDestTypes = []format.DataType{
		format.B1, format.B32, format.U32, format.S32, format.F32,
		format.F16, format.S16, format.U16, format.B16,
	}
	cmpSourceTypes = append(cmpDestTypes[:len(cmpDestTypes):len(cmpDestTypes)],
		format.B64, format.U64, format.S64, format.F64)
	packedCmpTypes = []format.DataType{
		format.U8x4, format.S8x4, format.U8x8, format.S8x8,
		format.U16x2, format.S16x2, format.F16x2,
		format.U16x4, format.S16x4, format.F16x4,
		format.U32x2, format.S32x2, format.F32x2,
	}
)

// segmentp tests whether a flat address lies in a segment.
func (c *instCheck) segmentp() {
	if !c.arity(2) {
		return
	}
	i, ok := c.inst.(*format.SegpInst)
	if !c.require(ErrFieldDomain, ok, "Invalid instruction kind", "kind == segp") {
		return
	}
	c.typeIn("Type of Segmentp should be b1", format.B1)
	c.check(i.StorageClass <= format.Arg,
		"StorageClass should be global, group, private, kernarg, readonly, spill, or arg", "storageClass <= arg")
	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		c.check(c.compatible(0, c.h.Type), "Incompatible destination operand", "o_operands[0] is compatible with type")
	}
	c.source(1, "Source should be reg, immediate or waveSz")
	c.noVector("Segmentp cannot accept vector types")
}

// segmentConvert checks ftos and stof, which convert between flat and
// segment addresses.
func (c *instCheck) segmentConvert() {
	name := "FtoS"
	if c.h.Opcode == format.OpStoF {
		name = "StoF"
	}
	if !c.arity(2) {
		return
	}
	if !c.require(ErrFieldDomain, c.h.Kind == format.InstSegp, "Invalid instruction kind", "kind == segp") {
		return
	}
	t := c.h.Type
	c.typeIn("Type of "+name+" should be u32 or u64", format.U32, format.U64)
	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		c.check(c.compatible(0, t), "Incompatible destination operand", "o_operands[0] is compatible with type")
	}
	if c.source(1, "Source should be reg, immediate or waveSz") {
		c.check(c.compatible(1, t), "Incompatible source operand", "o_operands[1] is compatible with type")
	}
	c.noVector(name + " cannot accept vector types")
}

// compareHeader checks what cmp and packedcmp share and returns the
// comparison fields.
func (c *instCheck) compareHeader() (*format.CmpInst, bool) {
	if !c.arity(3) {
		return nil, false
	}
	if _, ok := format.Modifier(c.inst); !c.require(ErrFieldDomain, ok, "Cmp must carry an ALU modifier", "kind in {mod, cmp, cvt}") {
		return nil, false
	}
	i, ok := c.inst.(*format.CmpInst)
	if !c.require(ErrFieldDomain, ok, "Invalid instruction kind", "kind == cmp") {
		return nil, false
	}
	return i, true
}

// compareOp checks the operator against the source type: integer
// comparisons only use the ordered operators. Bit comparisons are not
// restricted.
func (c *instCheck) compareOp(i *format.CmpInst, src format.DataType) {
	switch {
	case src.IsFloat():
		c.check(i.CompareOp <= format.CmpSgeu, "Invalid comparisonOperator", "comparisonOperator <= sgeu")
	case src.IsSigned() || src.IsUnsigned():
		c.check(i.CompareOp <= format.CmpGe, "Invalid comparisonOperator", "integer comparisonOperator <= ge")
	}
}

func (c *instCheck) cmp() {
	i, ok := c.compareHeader()
	if !ok {
		return
	}
	t, src := c.h.Type, i.SourceType
	c.typeIn("Invalid destination type", cmpDestTypes...)
	c.check(in(src, cmpSourceTypes), "Invalid source type", "sourceType in "+typeSet(cmpSourceTypes))

	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		c.check(c.compatible(0, t), "Incompatible destination operand", "o_operands[0] is compatible with type")
	}
	for k := 1; k < 3; k++ {
		if t.IsFloat() {
			c.check(c.is(k, format.OperandReg, format.OperandImmed), "Source must be a register or immediate",
				fmt.Sprintf("o_operands[%d] in {reg, immed}", k))
		} else {
			c.source(k, "Source must be a register, immediate, or wave size")
		}
		c.check(c.compatible(k, src), "Incompatible source operand",
			fmt.Sprintf("o_operands[%d] is compatible with sourceType", k))
	}
	c.compareOp(i, src)
	c.noVector("Cmp cannot accept vector types")
}

func (c *instCheck) packedCmp() {
	i, ok := c.compareHeader()
	if !ok {
		return
	}
	t := c.h.Type
	c.typeIn("Invalid type", packedCmpTypes...)
	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		c.check(c.compatible(0, t), "Incompatible destination operand", "o_operands[0] is compatible with type")
	}
	for k := 1; k < 3; k++ {
		c.check(c.is(k, format.OperandReg, format.OperandImmed), "Source must be a register or immediate",
			fmt.Sprintf("o_operands[%d] in {reg, immed}", k))
		c.check(c.compatible(k, t), "Incompatible source operand",
			fmt.Sprintf("o_operands[%d] is compatible with type", k))
	}
	c.compareOp(i, t)
	c.check(c.h.Packing == format.PackPP, "Packing should be pp", "packing == pp")
}

// cvt converts between scalar types. Sub-word values live in s registers.
func (c *instCheck) cvt() {
	if !c.arity(2) {
		return
	}
	if _, ok := format.Modifier(c.inst); !c.require(ErrFieldDomain, ok, "Cvt must carry an ALU modifier", "kind in {mod, cmp, cvt}") {
		return
	}
	i, ok := c.inst.(*format.CvtInst)
	if !c.require(ErrFieldDomain, ok, "Invalid instruction kind", "kind == cvt") {
		return
	}
	t, src := c.h.Type, i.SourceType
	convertType(c.checker, t, "type")
	convertType(c.checker, src, "sourceType")

	if c.check(c.is(0, format.OperandReg), "Destination must be a register", "o_operands[0] is reg") {
		if t.Size() == 8 || t.Size() == 16 {
			c.check(typeOf(c.ops[0]) == format.B32, "Destination should be s register", "type(o_operands[0]) == b32")
		} else {
			c.check(c.compatible(0, t), "Incompatible destination operand", "o_operands[0] is compatible with type")
		}
	}

	if t.IsFloat() {
		c.check(c.is(1, format.OperandReg, format.OperandImmed), "Source must be a register or immediate", "o_operands[1] in {reg, immed}")
	} else {
		c.source(1, "Source must be a register, immediate, or wave size")
	}
	if src.Size() == 8 || src.Size() == 16 {
		c.check(typeOf(c.ops[1]) == format.B32, "Source should be s register", "type(o_operands[1]) == b32")
	} else {
		c.check(c.compatible(1, src), "Incompatible source operand", "o_operands[1] is compatible with sourceType")
	}
	c.noVector("Cvt cannot accept vector types")
}

func convertType(c *checker, t format.DataType, field string) {
	if !c.check(t.IsBit() || t.IsUnsigned() || t.IsSigned() || t.IsFloat(),
		"Type should be unsigned, signed, float or bit", field+" is s, u, f or b") {
		return
	}
	if t.IsBit() {
		c.check(t.Size() == 1, "Illegal data length", field+" == b1")
		return
	}
	c.check(t.Size() <= 64, "Illegal data length", "size("+field+") <= 64")
}
