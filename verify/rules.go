package verify

import (
	"fmt"
	"strings"

	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/section"
)

// instCheck carries one instruction through the rule of its opcode.
type instCheck struct {
	*checker
	v    *Validator
	inst format.Inst
	h    format.InstHeader

	// ops holds the decoded populated operand slots; n is their count.
	ops [5]format.Operand
	n   int
}

// rule checks the operand shapes and types of one opcode.
type rule func(c *instCheck)

// validateInstructions checks every instruction against its opcode rule.
func (v *Validator) validateInstructions() Result {
	var res Result
	for cur := section.Begin(v.code); !cur.Done(); {
		i, err := section.DecodeInst(v.code, cur.Offset())
		if err != nil {
			c := newChecker(format.Code, cur.Offset())
			kind, msg, cond := describe(err)
			c.require(kind, false, msg, cond)
			return res.And(c.result())
		}
		res = res.And(v.semantic(i))
		_ = cur.Next()
	}
	return res
}

func (v *Validator) semantic(i format.Inst) Result {
	h := i.Header()
	c := &instCheck{
		checker: newChecker(format.Code, h.Offset),
		v:       v,
		inst:    i,
		h:       h,
	}
	if !c.require(ErrUnrecognized, h.Opcode.Valid(), "Unrecognized opcode", "opcode < invalid") {
		return c.result()
	}

	c.n = h.NumOperands()
	for k := 0; k < c.n; k++ {
		o, err := section.DecodeOperand(v.operands, h.Operands[k])
		if err != nil {
			kind, msg, cond := describe(err)
			c.require(kind, false, msg, cond)
			return c.result()
		}
		c.ops[k] = o
	}

	rules[h.Opcode](c)
	return c.result()
}

var rules = [format.NumOpcodes]rule{
	format.OpAbs:      arith{name: "Abs", nary: 1, domain: notBit, noRounding: true, noFtz: true}.check,
	format.OpAdd:      arith{name: "Add", nary: 2, domain: notBit}.check,
	format.OpBorrow:   arith{name: "Borrow", nary: 2, domain: integer, noMod: true, noVector: true}.check,
	format.OpCarry:    arith{name: "Carry", nary: 2, domain: integer, noMod: true, noVector: true}.check,
	format.OpCopySign: arith{name: "CopySign", nary: 2, domain: floating, noRounding: true, noFtz: true, noVector: true}.check,
	format.OpDiv:      arith{name: "Div", nary: 2, domain: notBit, noVector: true, noSat: true}.check,
	format.OpFma:      arith{name: "Fma", nary: 3, domain: floating, noVector: true}.check,
	format.OpFract:    arith{name: "Fract", nary: 1, domain: floating, noRounding: true, noVector: true}.check,
	format.OpMad:      arith{name: "Mad", nary: 3, domain: notBit, noVector: true}.check,
	format.OpMax:      arith{name: "Max", nary: 2, domain: notBit, noRounding: true, noSat: true}.check,
	format.OpMin:      arith{name: "Min", nary: 2, domain: notBit, noRounding: true, noSat: true}.check,
	format.OpMul:      arith{name: "Mul", nary: 2, domain: notBit}.check,
	format.OpMulHi: arith{name: "MulHi", nary: 2, domain: integer, noMod: true, noSat: true,
		scalar: []format.DataType{format.U32, format.S32}}.check,
	format.OpNeg:     arith{name: "Neg", nary: 1, domain: signedOrFloat, noRounding: true, noSat: true}.check,
	format.OpRem:     arith{name: "Rem", nary: 2, domain: integer, baseOnly: true, noVector: true}.check,
	format.OpSqrt:    arith{name: "Sqrt", nary: 1, domain: floating, noVector: true}.check,
	format.OpSub:     arith{name: "Sub", nary: 2, domain: notBit}.check,
	format.OpMad24:   arith{name: "Mad24", nary: 3, domain: integer, noMod: true, noVector: true}.check,
	format.OpMad24Hi: arith{name: "Mad24Hi", nary: 3, domain: integer, noVector: true}.check,
	format.OpMul24:   arith{name: "Mul24", nary: 2, domain: integer, noMod: true, noVector: true}.check,
	format.OpMul24Hi: arith{name: "Mul24Hi", nary: 2, domain: integer, noMod: true, noVector: true}.check,

	format.OpShl:       (*instCheck).shift,
	format.OpShr:       (*instCheck).shift,
	format.OpAnd:       arith{name: "And", nary: 2, types: logicTypes, noMod: true, noVector: true}.check,
	format.OpNot:       arith{name: "Not", nary: 1, types: logicTypes, noMod: true, noVector: true}.check,
	format.OpOr:        arith{name: "Or", nary: 2, types: logicTypes, noMod: true, noVector: true}.check,
	format.OpPopCount:  (*instCheck).popCount,
	format.OpXor:       arith{name: "Xor", nary: 2, types: logicTypes, noMod: true, noVector: true}.check,
	format.OpBitRev:    arith{name: "BitRev", nary: 1, types: wordTypes, noMod: true, noVector: true}.check,
	format.OpBitSelect: arith{name: "BitSelect", nary: 3, types: wordTypes, noMod: true, noVector: true}.check,
	format.OpExtract:   (*instCheck).extract,
	format.OpFirstBit:  (*instCheck).bitScan,
	format.OpInsert:    arith{name: "Insert", nary: 3, types: wordTypes, noMod: true, noVector: true}.check,
	format.OpLastBit:   (*instCheck).bitScan,

	format.OpLda:      (*instCheck).lda,
	format.OpLdc:      (*instCheck).ldc,
	format.OpMov:      (*instCheck).mov,
	format.OpMovdHi:   (*instCheck).movd,
	format.OpMovdLo:   (*instCheck).movd,
	format.OpMovsHi:   (*instCheck).movs,
	format.OpMovsLo:   (*instCheck).movs,
	format.OpShuffle:  (*instCheck).shuffle,
	format.OpUnpackHi: (*instCheck).unpack,
	format.OpUnpackLo: (*instCheck).unpack,
	format.OpCmov:     (*instCheck).cmov,
	format.OpClass:    (*instCheck).class,

	format.OpFcos:      arith{name: "Fcos", nary: 1, types: []format.DataType{format.F32}, noVector: true}.check,
	format.OpFexp2:     arith{name: "Fexp2", nary: 1, types: []format.DataType{format.F32}, noVector: true}.check,
	format.OpFlog2:     arith{name: "Flog2", nary: 1, types: []format.DataType{format.F32}, noVector: true}.check,
	format.OpFrcp:      arith{name: "Frcp", nary: 1, types: floatTypes, noVector: true}.check,
	format.OpFsqrt:     arith{name: "Fsqrt", nary: 1, types: floatTypes, noVector: true}.check,
	format.OpFrsqrt:    arith{name: "Frsqrt", nary: 1, types: floatTypes, noVector: true}.check,
	format.OpFsin:      arith{name: "Fsin", nary: 1, types: []format.DataType{format.F32}, noVector: true}.check,
	format.OpBitAlign:  arith{name: "BitAlign", nary: 3, types: b32Types, noMod: true, noVector: true}.check,
	format.OpByteAlign: arith{name: "ByteAlign", nary: 3, types: b32Types, noMod: true, noVector: true}.check,
	format.OpF2u4:      arith{name: "F2u4", nary: 4, types: []format.DataType{format.U32}, noMod: true, noVector: true}.check,
	format.OpLerp:      arith{name: "Lerp", nary: 3, types: b32Types, noMod: true, noVector: true}.check,
	format.OpSad:       arith{name: "Sad", nary: 3, types: b32Types, noMod: true, noVector: true}.check,
	format.OpSad2:      arith{name: "Sad2", nary: 3, types: b32Types, noMod: true, noVector: true}.check,
	format.OpSad4:      arith{name: "Sad4", nary: 3, types: b32Types, noMod: true, noVector: true}.check,
	format.OpSad4Hi:    arith{name: "Sad4Hi", nary: 3, types: b32Types, noMod: true, noVector: true}.check,
	format.OpUnpack0:   arith{name: "Unpack0", nary: 1, noMod: true}.check,
	format.OpUnpack1:   arith{name: "Unpack1", nary: 1, noMod: true}.check,
	format.OpUnpack2:   arith{name: "Unpack2", nary: 1, noMod: true}.check,
	format.OpUnpack3:   arith{name: "Unpack3", nary: 1, noMod: true}.check,

	format.OpSegmentp:  (*instCheck).segmentp,
	format.OpFtoS:      (*instCheck).segmentConvert,
	format.OpStoF:      (*instCheck).segmentConvert,
	format.OpCmp:       (*instCheck).cmp,
	format.OpPackedCmp: (*instCheck).packedCmp,
	format.OpCvt:       (*instCheck).cvt,

	format.OpLd:               (*instCheck).ld,
	format.OpSt:               (*instCheck).st,
	format.OpAtomic:           atomic(1),
	format.OpAtomicNoRet:      atomic(0),
	format.OpRdImage:          (*instCheck).rdImage,
	format.OpLdImage:          (*instCheck).ldStImage,
	format.OpStImage:          (*instCheck).ldStImage,
	format.OpAtomicImage:      atomicImage(1),
	format.OpAtomicNoRetImage: atomicImage(0),

	format.OpQueryArray:      query("QueryArray", format.B32),
	format.OpQueryData:       query("QueryData", format.B32),
	format.OpQueryDepth:      query("QueryDepth", format.U32),
	format.OpQueryFiltering:  query("QueryFiltering", format.B32),
	format.OpQueryHeight:     query("QueryHeight", format.U32),
	format.OpQueryNormalized: query("QueryNormalized", format.B32),
	format.OpQueryOrder:      query("QueryOrder", format.B32),
	format.OpQueryWidth:      query("QueryWidth", format.U32),

	format.OpCbr:         branch(3),
	format.OpBrn:         branch(2),
	format.OpBarrier:     (*instCheck).barrier,
	format.OpFbarArrive:  fbar(0),
	format.OpFbarInit:    fbar(1),
	format.OpFbarRelease: fbar(0),
	format.OpFbarSkip:    fbar(0),
	format.OpFbarWait:    fbar(0),
	format.OpSync:        (*instCheck).sync,
	format.OpCount:       (*instCheck).countMask,
	format.OpCountUp:     paraSyn("CountUp", format.U32, 0),
	format.OpMask:        (*instCheck).countMask,
	format.OpSend:        paraSyn("Send", format.B32, 2),
	format.OpReceive:     paraSyn("Receive", format.B32, 2),
	format.OpCall:        (*instCheck).call,
	format.OpRet:         (*instCheck).ret,
	format.OpSysCall:     (*instCheck).sysCall,
	format.OpAlloca:      (*instCheck).alloca,
	format.OpClock:       (*instCheck).clock,

	format.OpCU:                   special(0),
	format.OpCurrentWorkGroupSize: special(1),
	format.OpDebugTrap:            (*instCheck).debugTrap,
	format.OpDispatchId:           special(0),
	format.OpDynWaveId:            special(0),
	format.OpLaneId:               special(0),
	format.OpMaxDynWaveId:         special(0),
	format.OpNDRangeGroups:        special(1),
	format.OpNDRangeSize:          special(1),
	format.OpNop:                  (*instCheck).nop,
	format.OpNullPtr:              (*instCheck).nullPtr,
	format.OpWorkDim:              special(0),
	format.OpWorkGroupId:          special(1),
	format.OpWorkGroupSize:        special(1),
	format.OpWorkItemAbsId:        special(1),
	format.OpWorkItemAbsIdFlat:    special(0),
	format.OpWorkItemId:           special(1),
	format.OpWorkItemIdFlat:       special(0),
}

var (
	logicTypes = []format.DataType{format.B1, format.B32, format.B64}
	wordTypes  = []format.DataType{format.B32, format.B64}
	b32Types   = []format.DataType{format.B32}
	floatTypes = []format.DataType{format.F32, format.F64}

	// lanesTypes are the packed types shuffle and unpack operate on.
	lanesTypes = []format.DataType{
		format.U16x2, format.S16x2, format.F16x2,
		format.U16x4, format.S16x4, format.F16x4,
		format.U32x2, format.S32x2, format.F32x2,
		format.U8x8, format.S8x8, format.U8x4, format.S8x4,
	}
)

// arity requires exactly n operands.
func (c *instCheck) arity(n int) bool {
	return c.require(ErrFieldDomain, c.n == n, "Incorrect number of operands", fmt.Sprintf("operand count == %d", n))
}

// isKind reports whether the instruction kind is one of kinds.
func (c *instCheck) isKind(kinds ...format.InstKind) bool {
	for _, k := range kinds {
		if c.h.Kind == k {
			return true
		}
	}
	return false
}

// is reports whether operand k is one of kinds. Missing operands match
// nothing.
func (c *instCheck) is(k int, kinds ...format.OperandKind) bool {
	return isOperand(c.ops[k], kinds...)
}

// compatible reports whether operand k can hold a value of type t.
func (c *instCheck) compatible(k int, t format.DataType) bool {
	return compatible(t, c.ops[k])
}

// noVector rejects packed instruction types.
func (c *instCheck) noVector(msg string) {
	c.check(!c.h.Type.IsVector(), msg, "type is not a vector")
}

// typeIn checks the instruction type against a list.
func (c *instCheck) typeIn(msg string, types ...format.DataType) bool {
	return c.check(in(c.h.Type, types), msg, "type in "+typeSet(types))
}

// source checks that operand k is a register, an immediate or the wave size.
func (c *instCheck) source(k int, msg string) bool {
	return c.check(c.is(k, format.OperandReg, format.OperandImmed, format.OperandWaveSz), msg,
		fmt.Sprintf("o_operands[%d] in {reg, immed, wavesz}", k))
}

// modifier returns the ALU modifier of a mod instruction, if it is set.
func (c *instCheck) modifier() (format.AluModifier, bool) {
	m, ok := format.Modifier(c.inst)
	return m, ok && m.Valid()
}

func isOperand(o format.Operand, kinds ...format.OperandKind) bool {
	if o == nil {
		return false
	}
	k := o.Header().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// typeOf returns the type carried by o, or format.InvalidType.
func typeOf(o format.Operand) format.DataType {
	if o == nil {
		return format.InvalidType
	}
	t, _ := format.TypeOf(o)
	return t
}

// sizeOf returns the width of the type carried by o, or 0.
func sizeOf(o format.Operand) uint32 { return typeOf(o).Size() }

// compatible reports whether o can hold a value of type t. The wave size
// fits every integer and bit type; other operands need a type of the same
// width.
func compatible(t format.DataType, o format.Operand) bool {
	if isOperand(o, format.OperandWaveSz) {
		return t.IsInteger() || t.IsBit()
	}
	ot, ok := format.TypeOf(o)
	return ok && t.Size() == ot.Size()
}

func in(t format.DataType, types []format.DataType) bool {
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

func isPowerOf2(x uint32) bool { return x&(x-1) == 0 }

// typeSet renders types as a condition set, e.g. {b32, b64}.
func typeSet(types []format.DataType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// typeList renders types for a message, e.g. "b1, b32 or b64".
func typeList(types []format.DataType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
