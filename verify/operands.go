package verify

import (
	"fmt"
	"strconv"

	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/section"
)

// validateOperands checks every record of the operands section.
func (v *Validator) validateOperands() Result {
	res := prefix(v.operands)
	for cur := section.Begin(v.operands); !cur.Done(); {
		off := cur.Offset()
		o, err := section.DecodeOperand(v.operands, off)
		if err != nil {
			c := newChecker(format.Operands, off)
			kind, msg, cond := describe(err)
			c.require(kind, false, msg, cond)
			return res.And(c.result())
		}
		res = res.And(v.operand(o))
		_ = cur.Next()
	}
	return res
}

// operand checks one decoded operand and the records it refers to.
//
//nolint:gocyclo,cyclop,funlen // one case per operand kind
func (v *Validator) operand(o format.Operand) Result {
	h := o.Header()
	c := newChecker(format.Operands, h.Offset)

	switch o := o.(type) {
	case *format.AddressOperand:
		addressType(c, o.Type)
		c.check(o.Reserved == 0, "reserved must be zero", "reserved == 0")
		v.directiveRef(c, 1, o.Directive, "Invalid directive, should point to a BrigDirectiveSymbol", format.DirSymbol)

	case *format.ListOperand:
		if h.Kind == format.OperandArgumentList {
			v.argumentList(c, o)
		} else {
			v.functionList(c, o)
		}

	case *format.ArgumentRefOperand:
		v.directiveRef(c, 1, o.Arg, "Argument should be a symbol, image, or sampler",
			format.DirSymbol, format.DirImage, format.DirSampler)

	case *format.CompoundOperand:
		addressType(c, o.Type)
		c.check(o.Reserved == 0, "reserved must be zero", "reserved == 0")
		v.operandRef(c, 1, o.Name, "Invalid name, should point to BrigOperandAddress", format.OperandAddress)
		if o.Reg != 0 {
			reg, ok := v.operandRef(c, 1, o.Reg, "reg offset is wrong, not a BrigOperandReg", format.OperandReg)
			if !ok {
				break
			}
			t := reg.(*format.RegOperand).Type
			c.check(t == format.B32 || t == format.B64,
				"Invalid register, the register must be an s or d register", "reg type in {b32, b64}")
		}

	case *format.FunctionRefOperand:
		v.directiveRef(c, 1, o.Fn, "Invalid directive, should point to a BrigDirectiveFunction or BrigDirectiveSignature",
			format.DirFunction, format.DirSignature)

	case *format.ImmedOperand:
		if c.check(isImmedType(o.Type), "Invalid type, must be b1, b8, b16, b32 or b64", "type in {b1, b8, b16, b32, b64}") {
			need := 8 + o.Type.Size()/8
			c.check(need <= uint32(h.Size), "Operand size too small for immediate", "8 + bits / 8 <= size")
		}
		c.check(o.Reserved == 0, "reserved must be zero", "reserved == 0")

	case *format.IndirectOperand:
		addressType(c, o.Type)
		c.check(o.Reserved == 0, "reserved must be zero", "reserved == 0")
		if o.Reg != 0 {
			v.operandRef(c, 1, o.Reg, "Invalid reg, should point to BrigOperandReg", format.OperandReg)
		}

	case *format.LabelRefOperand:
		v.directiveRef(c, 1, o.Label, "Invalid directive, should point to a BrigDirectiveLabel", format.DirLabel)

	case *format.OpaqueOperand:
		v.directiveRef(c, 1, o.Directive, "Invalid directive, should point to a BrigDirectiveImage or BrigDirectiveSampler",
			format.DirImage, format.DirSampler)
		if o.Reg != 0 {
			reg, ok := v.operandRef(c, 1, o.Reg, "reg offset is wrong, not a BrigOperandReg", format.OperandReg)
			if ok {
				c.check(reg.(*format.RegOperand).Type == format.B32, "Register type should be Brigb32", "reg type == b32")
			}
		}

	case *format.RegOperand:
		v.register(c, o)

	case *format.RegVectorOperand:
		for _, r := range o.Regs {
			reg, ok := v.operandRef(c, 1, r, "reg offset is wrong, not a BrigOperandReg", format.OperandReg)
			if !ok {
				return c.result()
			}
			c.check(reg.(*format.RegOperand).Type == o.Type,
				"should be the same type with BrigOperandReg", "reg type == type")
		}
		c.check(o.Type == format.B1 || o.Type == format.B32 || o.Type == format.B64,
			"Invalid data type", "type in {b1, b32, b64}")
		c.check(o.Reserved == 0, "reserved must be zero", "reserved == 0")

	case *format.EmptyOperand:
		// Base, pad and wave size operands carry no fields.
	}

	return c.result()
}

// argumentList checks that every element is an argument reference.
func (v *Validator) argumentList(c *checker, o *format.ListOperand) {
	need := uint64(format.HeaderSize) + 8 + 4*(uint64(max(1, o.ElementCount))-1)
	if !c.check(need <= uint64(o.Size), "Invalid size", "12 + 4 * (elementCount - 1) <= size") {
		return
	}
	for _, e := range o.Elements {
		if _, ok := v.operandRef(c, 1, e, "Invalid o_args, should point to BrigOperandArgumentRef",
			format.OperandArgumentRef); !ok && c.res.Aborted {
			return
		}
	}
}

// functionList checks that the elements are all functions or all signatures,
// with at most one signature.
func (v *Validator) functionList(c *checker, o *format.ListOperand) {
	if o.ElementCount > 0 {
		need := uint64(format.HeaderSize) + 8 + 4*(uint64(o.ElementCount)-1)
		if !c.check(need <= uint64(o.Size), "Invalid size", "12 + 4 * (elementCount - 1) <= size") {
			return
		}
	}

	var functions, signatures uint32
	for _, e := range o.Elements {
		ref, ok := v.operandRef(c, 1, e, "element of o_args should be a BrigOperandFunctionRef", format.OperandFunctionRef)
		if !ok {
			if c.res.Aborted {
				return
			}
			continue
		}
		fn, ok := v.directiveRef(c, 2, ref.(*format.FunctionRefOperand).Fn,
			"Invalid directive, should point to a BrigDirectiveFunction or BrigDirectiveSignature",
			format.DirFunction, format.DirSignature)
		if !ok {
			if c.res.Aborted {
				return
			}
			continue
		}
		if fn.Header().Kind == format.DirFunction {
			functions++
		} else {
			signatures++
		}
	}
	c.check(functions == o.ElementCount || signatures == o.ElementCount,
		"element of o_args should be all functions or all signatures", "all functions or all signatures")
	c.check(signatures < 2, "Too many function signatures", "signatures < 2")
}

// register checks a register operand against its name, which has the form
// $<class><index>.
func (v *Validator) register(c *checker, o *format.RegOperand) {
	c.check(o.Reserved == 0, "reserved must be zero", "reserved == 0")

	name, err := section.String(v.strings, o.SName)
	if err != nil {
		kind, msg, cond := describe(err)
		c.require(kind, false, msg, cond)
		return
	}
	if !c.require(ErrFieldDomain, len(name) > 0 && name[0] == '$', "Register names must begin with '$'", `name[0] == '$'`) {
		return
	}
	t, ok := format.RegisterClass(byteAt(name, 1))
	if !c.require(ErrFieldDomain, ok, "Invalid register type", "class in {c, s, d, q}") {
		return
	}
	if !c.require(ErrFieldDomain, isDigit(byteAt(name, 2)), "Register offset not a number", "name[2] is a digit") {
		return
	}

	end := 2
	for end < len(name) && isDigit(name[end]) {
		end++
	}
	c.check(end == len(name), "Garbage after register offset", "name ends after the index")

	limit := format.RegisterLimit(t)
	index, err := strconv.ParseUint(name[2:end], 10, 64)
	c.check(err == nil && index < limit, "Register offset out-of-bounds", fmt.Sprintf("index < %d", limit))
	c.check(o.Type == t, "Register name does not match type", "type == "+t.String())
}

func addressType(c *checker, t format.DataType) {
	c.check(t == format.B32 || t == format.B64, "Invalid datatype, should be Brigb32 and Brigb64", "type in {b32, b64}")
}

func isImmedType(t format.DataType) bool {
	switch t {
	case format.B1, format.B8, format.B16, format.B32, format.B64:
		return true
	}
	return false
}

func byteAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
