package format

// DirectiveKind is the tag of a directive record.
type DirectiveKind uint16

// Directive kinds.
const (
	DirFunction DirectiveKind = iota
	DirKernel
	DirSymbol
	DirImage
	DirSampler
	DirLabel
	DirLabelList
	DirVersion
	DirSignature
	DirFile
	DirComment
	DirLoc
	DirInit
	DirLabelInit
	DirControl
	DirPragma
	DirExtension
	DirArgStart
	DirArgEnd
	DirBlockStart
	DirBlockNumeric
	DirBlockString
	DirBlockEnd
	DirPad

	numDirectiveKinds
)

var directiveKindNames = [...]string{
	DirFunction:     "function",
	DirKernel:       "kernel",
	DirSymbol:       "symbol",
	DirImage:        "image",
	DirSampler:      "sampler",
	DirLabel:        "label",
	DirLabelList:    "labellist",
	DirVersion:      "version",
	DirSignature:    "signature",
	DirFile:         "file",
	DirComment:      "comment",
	DirLoc:          "loc",
	DirInit:         "init",
	DirLabelInit:    "labelinit",
	DirControl:      "control",
	DirPragma:       "pragma",
	DirExtension:    "extension",
	DirArgStart:     "argstart",
	DirArgEnd:       "argend",
	DirBlockStart:   "blockstart",
	DirBlockNumeric: "blocknumeric",
	DirBlockString:  "blockstring",
	DirBlockEnd:     "blockend",
	DirPad:          "pad",
}

// Valid reports whether k names a known directive kind.
func (k DirectiveKind) Valid() bool { return k < numDirectiveKinds }

// String returns the lowercase name of the kind.
func (k DirectiveKind) String() string {
	if k.Valid() {
		return directiveKindNames[k]
	}
	return "directive?"
}

// IsMethod reports whether k is a function or kernel.
func (k DirectiveKind) IsMethod() bool { return k == DirFunction || k == DirKernel }

// HasCCode reports whether records of this kind carry a c_code anchor.
func (k DirectiveKind) HasCCode() bool {
	switch k {
	case DirBlockNumeric, DirBlockString, DirBlockEnd, DirPad:
		return false
	}
	return k.Valid()
}

// InstKind is the tag of an instruction record.
type InstKind uint16

// Instruction kinds.
const (
	InstBase InstKind = iota
	InstMod
	InstCmp
	InstCvt
	InstMem
	InstLdSt
	InstBar
	InstSegp
	InstAtomic
	InstAtomicImage
	InstImage

	numInstKinds
)

var instKindNames = [...]string{
	InstBase:        "base",
	InstMod:         "mod",
	InstCmp:         "cmp",
	InstCvt:         "cvt",
	InstMem:         "mem",
	InstLdSt:        "ldst",
	InstBar:         "bar",
	InstSegp:        "segp",
	InstAtomic:      "atomic",
	InstAtomicImage: "atomicimage",
	InstImage:       "image",
}

// Valid reports whether k names a known instruction kind.
func (k InstKind) Valid() bool { return k < numInstKinds }

func (k InstKind) String() string {
	if k.Valid() {
		return instKindNames[k]
	}
	return "inst?"
}

// OperandKind is the tag of an operand record.
type OperandKind uint16

// Operand kinds.
const (
	OperandAddress OperandKind = iota
	OperandArgumentList
	OperandFunctionList
	OperandArgumentRef
	OperandBase
	OperandCompound
	OperandFunctionRef
	OperandImmed
	OperandIndirect
	OperandLabelRef
	OperandOpaque
	OperandPad
	OperandReg
	OperandRegV2
	OperandRegV4
	OperandWaveSz

	numOperandKinds
)

var operandKindNames = [...]string{
	OperandAddress:      "address",
	OperandArgumentList: "argumentlist",
	OperandFunctionList: "functionlist",
	OperandArgumentRef:  "argumentref",
	OperandBase:         "base",
	OperandCompound:     "compound",
	OperandFunctionRef:  "functionref",
	OperandImmed:        "immed",
	OperandIndirect:     "indirect",
	OperandLabelRef:     "labelref",
	OperandOpaque:       "opaque",
	OperandPad:          "pad",
	OperandReg:          "reg",
	OperandRegV2:        "regv2",
	OperandRegV4:        "regv4",
	OperandWaveSz:       "wavesz",
}

// Valid reports whether k names a known operand kind.
func (k OperandKind) Valid() bool { return k < numOperandKinds }

func (k OperandKind) String() string {
	if k.Valid() {
		return operandKindNames[k]
	}
	return "operand?"
}
