package format

// SectionPrefix is the number of zero bytes at the start of every section.
const SectionPrefix = 8

// Record header: size u16 at 0, kind u16 at 2.
const HeaderSize = 4

var directiveMinSize = [...]uint16{
	DirFunction:     40,
	DirKernel:       40,
	DirSymbol:       40,
	DirImage:        56,
	DirSampler:      40,
	DirLabel:        12,
	DirLabelList:    20,
	DirVersion:      16,
	DirSignature:    32,
	DirFile:         16,
	DirComment:      12,
	DirLoc:          20,
	DirInit:         24,
	DirLabelInit:    20,
	DirControl:      24,
	DirPragma:       12,
	DirExtension:    12,
	DirArgStart:     8,
	DirArgEnd:       8,
	DirBlockStart:   12,
	DirBlockNumeric: 16,
	DirBlockString:  8,
	DirBlockEnd:     4,
	DirPad:          4,
}

// MinSize returns the smallest legal size of a record of kind k.
func (k DirectiveKind) MinSize() uint16 {
	if k.Valid() {
		return directiveMinSize[k]
	}
	return HeaderSize
}

// Align returns the required byte alignment of records of kind k, or 0 when
// the kind has no alignment requirement.
func (k DirectiveKind) Align() uint32 {
	switch k {
	case DirInit:
		return 8
	case DirSampler, DirFile, DirBlockStart, DirBlockNumeric, DirBlockString, DirPad:
		return 0
	}
	if k.Valid() {
		return 4
	}
	return 0
}

var instMinSize = [...]uint16{
	InstBase:        32,
	InstMod:         36,
	InstCmp:         44,
	InstCvt:         40,
	InstMem:         36,
	InstLdSt:        44,
	InstBar:         36,
	InstSegp:        40,
	InstAtomic:      44,
	InstAtomicImage: 48,
	InstImage:       40,
}

// MinSize returns the smallest legal size of an instruction of kind k.
func (k InstKind) MinSize() uint16 {
	if k.Valid() {
		return instMinSize[k]
	}
	return HeaderSize
}

var operandMinSize = [...]uint16{
	OperandAddress:      16,
	OperandArgumentList: 12,
	OperandFunctionList: 12,
	OperandArgumentRef:  8,
	OperandBase:         4,
	OperandCompound:     20,
	OperandFunctionRef:  8,
	OperandImmed:        24,
	OperandIndirect:     16,
	OperandLabelRef:     8,
	OperandOpaque:       16,
	OperandPad:          4,
	OperandReg:          12,
	OperandRegV2:        16,
	OperandRegV4:        24,
	OperandWaveSz:       4,
}

// MinSize returns the smallest legal size of an operand of kind k.
func (k OperandKind) MinSize() uint16 {
	if k.Valid() {
		return operandMinSize[k]
	}
	return HeaderSize
}

// Fixed record geometry used when sizing variable-length records.
const (
	// SignatureEntrySize is the size of one parameter type entry.
	SignatureEntrySize = 8
	// SignatureEntries is the byte offset of the first parameter type entry.
	SignatureEntries = 24
	// InitData is the byte offset of the payload of an init directive.
	InitData = 16
	// BlockNumericData is the byte offset of the payload of a numeric block.
	BlockNumericData = 8
	// LabelListEntries is the byte offset of the first label of a label list.
	LabelListEntries = 16
	// ArgumentListEntries is the byte offset of the first argument offset.
	ArgumentListEntries = 8
	// ImmedBytes is the number of payload bytes of an immediate operand.
	ImmedBytes = 16
)

// AluModifier is the packed modifier word of mod, cmp and cvt instructions.
type AluModifier uint32

// ALU modifier bits.
const (
	AluValid      AluModifier = 1 << 0
	AluFloatOrInt AluModifier = 1 << 1
	aluRoundShift             = 2
	aluRoundMask  AluModifier = 3 << aluRoundShift
	AluFtz        AluModifier = 1 << 4
	AluApprox     AluModifier = 1 << 5
	AluFbar       AluModifier = 1 << 6
	aluReserved   AluModifier = 0xFFFFFF80
)

// Rounding modes encoded in an ALU modifier.
const (
	RoundNearest uint32 = iota
	RoundZero
	RoundUp
	RoundDown
)

// MakeAluModifier packs the fields of an ALU modifier with the valid bit set.
func MakeAluModifier(floatOrInt bool, rounding uint32, ftz, approx, fbar bool) AluModifier {
	m := AluValid | AluModifier(rounding&3)<<aluRoundShift
	if floatOrInt {
		m |= AluFloatOrInt
	}
	if ftz {
		m |= AluFtz
	}
	if approx {
		m |= AluApprox
	}
	if fbar {
		m |= AluFbar
	}
	return m
}

// Valid reports whether the modifier is present.
func (m AluModifier) Valid() bool { return m&AluValid != 0 }

// FloatOrInt reports whether the modifier applies to floating point.
func (m AluModifier) FloatOrInt() bool { return m&AluFloatOrInt != 0 }

// Rounding returns the rounding mode field.
func (m AluModifier) Rounding() uint32 { return uint32(m&aluRoundMask) >> aluRoundShift }

// Ftz reports whether the modifier flushes subnormals to zero.
func (m AluModifier) Ftz() bool { return m&AluFtz != 0 }

// Approx reports whether the modifier allows an approximate result.
func (m AluModifier) Approx() bool { return m&AluApprox != 0 }

// Fbar reports whether the modifier carries the fbar bit.
func (m AluModifier) Fbar() bool { return m&AluFbar != 0 }

// Reserved returns the bits above the defined fields.
func (m AluModifier) Reserved() uint32 { return uint32(m & aluReserved) }
