package format

// Opcode selects the operation of an instruction.
type Opcode uint32

// Opcodes.
const (
	OpAbs Opcode = iota
	OpAdd
	OpBorrow
	OpCarry
	OpCopySign
	OpDiv
	OpFma
	OpFract
	OpMad
	OpMax
	OpMin
	OpMul
	OpMulHi
	OpNeg
	OpRem
	OpSqrt
	OpSub
	OpMad24
	OpMad24Hi
	OpMul24
	OpMul24Hi
	OpShl
	OpShr
	OpAnd
	OpNot
	OpOr
	OpPopCount
	OpXor
	OpBitRev
	OpBitSelect
	OpExtract
	OpFirstBit
	OpInsert
	OpLastBit
	OpLda
	OpLdc
	OpMov
	OpMovdHi
	OpMovdLo
	OpMovsHi
	OpMovsLo
	OpShuffle
	OpUnpackHi
	OpUnpackLo
	OpCmov
	OpClass
	OpFcos
	OpFexp2
	OpFlog2
	OpFrcp
	OpFsqrt
	OpFrsqrt
	OpFsin
	OpBitAlign
	OpByteAlign
	OpF2u4
	OpLerp
	OpSad
	OpSad2
	OpSad4
	OpSad4Hi
	OpUnpack0
	OpUnpack1
	OpUnpack2
	OpUnpack3
	OpSegmentp
	OpFtoS
	OpStoF
	OpCmp
	OpPackedCmp
	OpCvt
	OpLd
	OpSt
	OpAtomic
	OpAtomicNoRet
	OpRdImage
	OpLdImage
	OpStImage
	OpAtomicImage
	OpAtomicNoRetImage
	OpQueryArray
	OpQueryData
	OpQueryDepth
	OpQueryFiltering
	OpQueryHeight
	OpQueryNormalized
	OpQueryOrder
	OpQueryWidth
	OpCbr
	OpBrn
	OpBarrier
	OpFbarArrive
	OpFbarInit
	OpFbarRelease
	OpFbarSkip
	OpFbarWait
	OpSync
	OpCount
	OpCountUp
	OpMask
	OpSend
	OpReceive
	OpCall
	OpRet
	OpSysCall
	OpAlloca
	OpClock
	OpCU
	OpCurrentWorkGroupSize
	OpDebugTrap
	OpDispatchId
	OpDynWaveId
	OpLaneId
	OpMaxDynWaveId
	OpNDRangeGroups
	OpNDRangeSize
	OpNop
	OpNullPtr
	OpWorkDim
	OpWorkGroupId
	OpWorkGroupSize
	OpWorkItemAbsId
	OpWorkItemAbsIdFlat
	OpWorkItemId
	OpWorkItemIdFlat
	OpInvalid
)

var opcodeNames = [...]string{
	OpAbs:                  "abs",
	OpAdd:                  "add",
	OpBorrow:               "borrow",
	OpCarry:                "carry",
	OpCopySign:             "copysign",
	OpDiv:                  "div",
	OpFma:                  "fma",
	OpFract:                "fract",
	OpMad:                  "mad",
	OpMax:                  "max",
	OpMin:                  "min",
	OpMul:                  "mul",
	OpMulHi:                "mulhi",
	OpNeg:                  "neg",
	OpRem:                  "rem",
	OpSqrt:                 "sqrt",
	OpSub:                  "sub",
	OpMad24:                "mad24",
	OpMad24Hi:              "mad24hi",
	OpMul24:                "mul24",
	OpMul24Hi:              "mul24hi",
	OpShl:                  "shl",
	OpShr:                  "shr",
	OpAnd:                  "and",
	OpNot:                  "not",
	OpOr:                   "or",
	OpPopCount:             "popcount",
	OpXor:                  "xor",
	OpBitRev:               "bitrev",
	OpBitSelect:            "bitselect",
	OpExtract:              "extract",
	OpFirstBit:             "firstbit",
	OpInsert:               "insert",
	OpLastBit:              "lastbit",
	OpLda:                  "lda",
	OpLdc:                  "ldc",
	OpMov:                  "mov",
	OpMovdHi:               "movdhi",
	OpMovdLo:               "movdlo",
	OpMovsHi:               "movshi",
	OpMovsLo:               "movslo",
	OpShuffle:              "shuffle",
	OpUnpackHi:             "unpackhi",
	OpUnpackLo:             "unpacklo",
	OpCmov:                 "cmov",
	OpClass:                "class",
	OpFcos:                 "fcos",
	OpFexp2:                "fexp2",
	OpFlog2:                "flog2",
	OpFrcp:                 "frcp",
	OpFsqrt:                "fsqrt",
	OpFrsqrt:               "frsqrt",
	OpFsin:                 "fsin",
	OpBitAlign:             "bitalign",
	OpByteAlign:            "bytealign",
	OpF2u4:                 "f2u4",
	OpLerp:                 "lerp",
	OpSad:                  "sad",
	OpSad2:                 "sad2",
	OpSad4:                 "sad4",
	OpSad4Hi:               "sad4hi",
	OpUnpack0:              "unpack0",
	OpUnpack1:              "unpack1",
	OpUnpack2:              "unpack2",
	OpUnpack3:              "unpack3",
	OpSegmentp:             "segmentp",
	OpFtoS:                 "ftos",
	OpStoF:                 "stof",
	OpCmp:                  "cmp",
	OpPackedCmp:            "packedcmp",
	OpCvt:                  "cvt",
	OpLd:                   "ld",
	OpSt:                   "st",
	OpAtomic:               "atomic",
	OpAtomicNoRet:          "atomicnoret",
	OpRdImage:              "rdimage",
	OpLdImage:              "ldimage",
	OpStImage:              "stimage",
	OpAtomicImage:          "atomicimage",
	OpAtomicNoRetImage:     "atomicnoretimage",
	OpQueryArray:           "queryarray",
	OpQueryData:            "querydata",
	OpQueryDepth:           "querydepth",
	OpQueryFiltering:       "queryfiltering",
	OpQueryHeight:          "queryheight",
	OpQueryNormalized:      "querynormalized",
	OpQueryOrder:           "queryorder",
	OpQueryWidth:           "querywidth",
	OpCbr:                  "cbr",
	OpBrn:                  "brn",
	OpBarrier:              "barrier",
	OpFbarArrive:           "fbararrive",
	OpFbarInit:             "fbarinit",
	OpFbarRelease:          "fbarrelease",
	OpFbarSkip:             "fbarskip",
	OpFbarWait:             "fbarwait",
	OpSync:                 "sync",
	OpCount:                "count",
	OpCountUp:              "countup",
	OpMask:                 "mask",
	OpSend:                 "send",
	OpReceive:              "receive",
	OpCall:                 "call",
	OpRet:                  "ret",
	OpSysCall:              "syscall",
	OpAlloca:               "alloca",
	OpClock:                "clock",
	OpCU:                   "cu",
	OpCurrentWorkGroupSize: "currentworkgroupsize",
	OpDebugTrap:            "debugtrap",
	OpDispatchId:           "dispatchid",
	OpDynWaveId:            "dynwaveid",
	OpLaneId:               "laneid",
	OpMaxDynWaveId:         "maxdynwaveid",
	OpNDRangeGroups:        "ndrangegroups",
	OpNDRangeSize:          "ndrangesize",
	OpNop:                  "nop",
	OpNullPtr:              "nullptr",
	OpWorkDim:              "workdim",
	OpWorkGroupId:          "workgroupid",
	OpWorkGroupSize:        "workgroupsize",
	OpWorkItemAbsId:        "workitemabsid",
	OpWorkItemAbsIdFlat:    "workitemabsidflat",
	OpWorkItemId:           "workitemid",
	OpWorkItemIdFlat:       "workitemidflat",
}

// NumOpcodes is the number of defined opcodes.
const NumOpcodes = int(OpInvalid)

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool { return op < OpInvalid }

// String returns the assembler mnemonic of op.
func (op Opcode) String() string {
	if op.Valid() {
		return opcodeNames[op]
	}
	return "invalid"
}
