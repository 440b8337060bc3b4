package verify

import (
	"fmt"

	"github.com/gogpu/brig/format"
)

// opaqueObject resolves the image or sampler named by the opaque operand in
// slot k and returns its declared type.
func (c *instCheck) opaqueObject(k int) (format.DataType, bool) {
	op, ok := c.ops[k].(*format.OpaqueOperand)
	if !ok {
		return format.InvalidType, false
	}
	d, ok := c.v.directiveRef(c.checker, 2, op.Directive, "The first operand should be an image or a sample",
		format.DirImage, format.DirSampler)
	if !ok {
		return format.InvalidType, false
	}
	s, _ := format.Common(d)
	return s.Type, true
}

// rdImage samples an image through a sampler.
func (c *instCheck) rdImage() {
	i, ok := c.inst.(*format.ImageInst)
	if !c.require(ErrFieldDomain, ok, "Incorrect instruction kind", "kind == image") {
		return
	}
	if !c.arity(4) {
		return
	}
	t, src := c.h.Type, i.SourceType

	c.check(c.is(0, format.OperandRegV4), "Destination must be register v4", "o_operands[0] is regv4")
	c.check(sizeOf(c.ops[0]) == 32, "Illegal data type", "size(o_operands[0]) == 32")
	for k := 1; k < 3; k++ {
		c.check(c.is(k, format.OperandOpaque), "Image must be an opaque", fmt.Sprintf("o_operands[%d] is opaque", k))
	}
	if img, ok := c.opaqueObject(1); ok {
		c.check(img == format.ROImg || img == format.RWImg, "Type should be read-write or read-only image",
			"type(image) in {roimg, rwimg}")
	}
	if smp, ok := c.opaqueObject(2); ok {
		c.check(smp == format.Samp, "Type should be sampler object", "type(sampler) == samp")
	}
	c.check(c.is(3, valueKinds...), "Src must be a register, register v2 or register v4", "o_operands[3] in {reg, regv2, regv4}")
	c.check(sizeOf(c.ops[3]) == 32, "Illegal data type", "size(o_operands[3]) == 32")

	c.noVector("Image cannot accept vector types")
	c.check(t.Size() == 32, "Illegal data type", "size(type) == 32")
	c.check(src.Size() == 32, "Illegal data type", "size(stype) == 32")
	c.check(t.IsSigned() || t.IsUnsigned() || t.IsFloat(), "Invalid type", "type is s, u or f")
	c.check(src.IsUnsigned() || src.IsFloat(), "Invalid stype", "stype is u or f")
	c.check(c.h.Packing == format.NoPacking, "Vectors can't have a packing", "packing == none")
}

// ldStImage checks ld_image and st_image. Stores need a writable image.
func (c *instCheck) ldStImage() {
	i, ok := c.inst.(*format.ImageInst)
	if !c.require(ErrFieldDomain, ok, "Invalid instruction kind", "kind == image") {
		return
	}
	if !c.arity(3) {
		return
	}
	c.typeIn("Type of destination should be u32, f32 or s32", format.U32, format.F32, format.S32)
	c.check(i.SourceType == format.U32, "Type of source should be u32", "stype == u32")

	c.check(c.is(0, format.OperandRegV4), "Destination should be regV4", "o_operands[0] is regv4")
	c.check(typeOf(c.ops[0]) == format.B32, "Destination should be s register", "type(o_operands[0]) == b32")

	c.check(c.is(1, format.OperandOpaque), "Source should be opaque", "o_operands[1] is opaque")
	if !c.require(ErrKindMismatch, c.is(1, format.OperandOpaque), "Invalid operand format", "o_operands[1] is opaque") {
		return
	}
	if img, ok := c.opaqueObject(1); ok {
		c.check(img == format.ROImg || img == format.RWImg, "Type should be read-write or read-only image",
			"type(image) in {roimg, rwimg}")
		if c.h.Opcode == format.OpStImage {
			c.check(img == format.RWImg, "Type should be read-write image", "type(image) == rwimg")
		}
	}

	c.check(c.is(2, valueKinds...), "Source should be reg, regV2 or regV4", "o_operands[2] in {reg, regv2, regv4}")
	c.check(typeOf(c.ops[2]) == format.B32, "Source should be s register", "type(o_operands[2]) == b32")
	c.noVector("LdSt cannot accept vector types")
}

// atomicImageOps lists the operations each image atomic type supports.
var atomicImageOps = map[format.DataType][]format.AtomicOp{
	format.U32: {format.AtomicAdd, format.AtomicSub, format.AtomicMin, format.AtomicMax},
	format.S32: {format.AtomicAdd, format.AtomicMin, format.AtomicMax, format.AtomicInc, format.AtomicDec},
	format.U64: {format.AtomicAdd, format.AtomicSub},
	format.B32: {format.AtomicAnd, format.AtomicOr, format.AtomicXor, format.AtomicCas},
}

// atomicImage returns the rule of atomic_image (ret 1) or
// atomicnoret_image (ret 0).
func atomicImage(ret int) rule {
	return func(c *instCheck) {
		i, ok := c.inst.(*format.AtomicImageInst)
		if !c.require(ErrFieldDomain, ok, "Incorrect instruction kind", "kind == atomicimage") {
			return
		}
		want := 3 + ret
		if i.AtomicOp == format.AtomicCas {
			want++
		}
		if !c.arity(want) {
			return
		}

		t := c.h.Type
		c.noVector("Image cannot accept vector types")
		supported := false
		for _, op := range atomicImageOps[t] {
			supported = supported || op == i.AtomicOp
		}
		c.check(supported, "Invalid type", "atomicOperation is supported by type")

		if ret == 1 {
			dest, ok := c.ops[0].(*format.RegOperand)
			if !c.require(ErrFieldDomain, ok, "Destination must be register", "o_operands[0] is reg") {
				return
			}
			if t == format.B32 || t == format.B64 {
				c.check(dest.Type == t, "Must be an s register for 32-bit types, a d register for 64-bit types",
					"type(o_operands[0]) == type")
			}
			c.check(t.Size() <= dest.Type.Size(), "Destination register is too small", "size(type) <= size(o_operands[0])")
		}

		c.check(c.is(ret, format.OperandOpaque), "Image must be an opaque", fmt.Sprintf("o_operands[%d] is opaque", ret))
		c.check(c.is(1+ret, valueKinds...), "reg-vector must be a register, register v2 or register v4",
			fmt.Sprintf("o_operands[%d] in {reg, regv2, regv4}", 1+ret))
		for k := 2 + ret; k < want; k++ {
			c.source(k, "Src must be a register, immediate, or wave size")
		}
	}
}

// query returns the rule of an image query opcode whose type must be t.
func query(name string, t format.DataType) rule {
	return func(c *instCheck) {
		c.check(c.h.Type == t, "Type of "+name+" should be "+t.String(), "type == "+t.String())
		c.imageQuery()
	}
}

func (c *instCheck) imageQuery() {
	if !c.arity(2) {
		return
	}
	t := c.h.Type
	c.typeIn("Type should be b32 or u32", format.B32, format.U32)
	if c.check(c.is(0, format.OperandReg), "Destination should be register", "o_operands[0] is reg") {
		c.check(c.compatible(0, t), "Incompatible destination operand", "o_operands[0] is compatible with type")
	}
	c.check(c.is(1, format.OperandOpaque), "Source should be BrigOperandOpaque", "o_operands[1] is opaque")
	if !c.require(ErrKindMismatch, c.is(1, format.OperandOpaque), "Invalid operand format", "o_operands[1] is opaque") {
		return
	}
	if obj, ok := c.opaqueObject(1); ok {
		c.check(obj == format.ROImg || obj == format.RWImg || obj == format.Samp,
			"Type should be image object or sampler object", "type(object) in {roimg, rwimg, samp}")
	}
	c.noVector("Image cannot accept vector types")
}
