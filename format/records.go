package format

import "encoding/binary"

// DirectiveHeader is the common prefix of every decoded directive.
type DirectiveHeader struct {
	// Offset is the byte offset of the record within the directives section.
	Offset uint32
	Size   uint16
	Kind   DirectiveKind
}

// Header returns the common prefix of the record.
func (h DirectiveHeader) Header() DirectiveHeader { return h }

// Directive is a decoded directive record. The concrete type is one of the
// *...Directive types in this package.
type Directive interface {
	Header() DirectiveHeader
}

// VersionDirective declares the machine model. It must be the first directive.
type VersionDirective struct {
	DirectiveHeader
	CCode    uint32
	Major    uint16
	Minor    uint16
	Machine  Machine
	Profile  Profile
	Ftz      Ftz
	Reserved uint8
}

// MethodDirective is a function or kernel. Its parameter symbols follow it
// immediately, outputs first.
type MethodDirective struct {
	DirectiveHeader
	CCode          uint32
	SName          uint32
	InParamCount   uint32
	FirstScoped    uint32
	OperationCount uint32
	NextDirective  uint32
	Attribute      Attribute
	Reserved       uint16
	OutParamCount  uint32
	FirstInParam   uint32
}

// ParamCount returns the number of parameter symbols following the method.
func (d *MethodDirective) ParamCount() uint64 {
	return uint64(d.InParamCount) + uint64(d.OutParamCount)
}

// SymbolCommon is the declaration part shared by symbols, images and samplers.
type SymbolCommon struct {
	CCode        uint32
	StorageClass StorageClass
	Attribute    Attribute
	Reserved     uint16
	Modifier     SymbolModifier
	Dim          uint32
	SName        uint32
	Type         DataType
	Align        uint16
}

// SymbolDirective declares a variable, optionally initialized.
type SymbolDirective struct {
	DirectiveHeader
	S        SymbolCommon
	Init     uint32
	Reserved uint32
}

// ImageDirective declares an image object.
type ImageDirective struct {
	DirectiveHeader
	S      SymbolCommon
	Width  uint32
	Height uint32
	Depth  uint32
	Array  uint32
	Order  ImageOrder
	Format ImageFormat
}

// SamplerDirective declares a sampler object.
type SamplerDirective struct {
	DirectiveHeader
	S          SymbolCommon
	Valid      uint8
	Normalized uint8
	Filter     SamplerFilter
	BoundaryU  SamplerBoundary
	BoundaryV  SamplerBoundary
	BoundaryW  SamplerBoundary
	Reserved   uint16
}

// Common returns the declaration part of a symbol, image or sampler.
func Common(d Directive) (*SymbolCommon, bool) {
	switch d := d.(type) {
	case *SymbolDirective:
		return &d.S, true
	case *ImageDirective:
		return &d.S, true
	case *SamplerDirective:
		return &d.S, true
	}
	return nil, false
}

// LabelDirective defines a branch target.
type LabelDirective struct {
	DirectiveHeader
	CCode uint32
	SName uint32
}

// LabelListDirective lists the targets of an indirect branch.
type LabelListDirective struct {
	DirectiveHeader
	CCode        uint32
	Label        uint32
	ElementCount uint32
	// Labels holds the entries that fit inside the record, at most
	// ElementCount of them.
	Labels []uint32
}

// SignatureEntry is one parameter type of a signature.
type SignatureEntry struct {
	Type   DataType
	Align  uint8
	HasDim uint8
	Dim    uint32
}

// SignatureDirective declares a function prototype for indirect calls.
type SignatureDirective struct {
	DirectiveHeader
	CCode     uint32
	SName     uint32
	FbarCount uint16
	Reserved  uint16
	OutCount  uint32
	InCount   uint32
	// Types holds the entries that fit inside the record.
	Types []SignatureEntry
}

// FileDirective maps a file id to a file name.
type FileDirective struct {
	DirectiveHeader
	CCode     uint32
	FileID    uint32
	SFilename uint32
}

// NameDirective is a comment, pragma, extension or block start: a c_code
// anchor and a string.
type NameDirective struct {
	DirectiveHeader
	CCode uint32
	SName uint32
}

// LocDirective is a source location.
type LocDirective struct {
	DirectiveHeader
	CCode      uint32
	SourceFile uint32
	Line       uint32
	Column     uint32
}

// InitDirective holds the initial value of a symbol.
type InitDirective struct {
	DirectiveHeader
	CCode        uint32
	ElementCount uint32
	Type         DataType
	Reserved     uint16
	// Data is the payload inside the record.
	Data []byte
}

// LabelInitDirective initializes a symbol with label addresses.
type LabelInitDirective struct {
	DirectiveHeader
	CCode        uint32
	ElementCount uint32
	SName        uint32
	Labels       []uint32
}

// ControlDirective adjusts a code generation setting.
type ControlDirective struct {
	DirectiveHeader
	CCode       uint32
	ControlType ControlType
	Values      [3]uint32
}

// ArgScopeDirective opens or closes an argument scope.
type ArgScopeDirective struct {
	DirectiveHeader
	CCode uint32
}

// BlockNumericDirective is numeric data inside a debug or rti block.
type BlockNumericDirective struct {
	DirectiveHeader
	Type         DataType
	ElementCount uint16
	Data         []byte
}

// BlockStringDirective is a string inside a debug or rti block.
type BlockStringDirective struct {
	DirectiveHeader
	SName uint32
}

// EmptyDirective is a block end or padding record.
type EmptyDirective struct {
	DirectiveHeader
}

// CCode returns the code anchor of d. Block payloads and padding have none.
func CCode(d Directive) (uint32, bool) {
	switch d := d.(type) {
	case *VersionDirective:
		return d.CCode, true
	case *MethodDirective:
		return d.CCode, true
	case *SymbolDirective:
		return d.S.CCode, true
	case *ImageDirective:
		return d.S.CCode, true
	case *SamplerDirective:
		return d.S.CCode, true
	case *LabelDirective:
		return d.CCode, true
	case *LabelListDirective:
		return d.CCode, true
	case *SignatureDirective:
		return d.CCode, true
	case *FileDirective:
		return d.CCode, true
	case *NameDirective:
		return d.CCode, true
	case *LocDirective:
		return d.CCode, true
	case *InitDirective:
		return d.CCode, true
	case *LabelInitDirective:
		return d.CCode, true
	case *ControlDirective:
		return d.CCode, true
	case *ArgScopeDirective:
		return d.CCode, true
	}
	return 0, false
}

// InstHeader is the common prefix of every decoded instruction.
type InstHeader struct {
	// Offset is the byte offset of the record within the code section.
	Offset   uint32
	Size     uint16
	Kind     InstKind
	Opcode   Opcode
	Type     DataType
	Packing  Packing
	Operands [5]uint32
}

// Header returns the common prefix of the record.
func (h InstHeader) Header() InstHeader { return h }

// NumOperands returns the number of leading populated operand slots.
func (h InstHeader) NumOperands() int {
	for i, o := range h.Operands {
		if o == 0 {
			return i
		}
	}
	return len(h.Operands)
}

// Inst is a decoded instruction record.
type Inst interface {
	Header() InstHeader
}

// BaseInst is an instruction without extra fields.
type BaseInst struct {
	InstHeader
}

// ModInst is an instruction with an ALU modifier.
type ModInst struct {
	InstHeader
	Modifier AluModifier
}

// CmpInst is a comparison.
type CmpInst struct {
	InstHeader
	Modifier   AluModifier
	CompareOp  CompareOp
	SourceType DataType
	Reserved   uint16
}

// CvtInst is a conversion.
type CvtInst struct {
	InstHeader
	Modifier   AluModifier
	SourceType DataType
	Reserved   uint16
}

// MemInst is an instruction tied to a storage class.
type MemInst struct {
	InstHeader
	StorageClass StorageClass
}

// LdStInst is a load or store.
type LdStInst struct {
	InstHeader
	StorageClass StorageClass
	Semantic     MemorySemantic
	EquivClass   uint32
}

// BarInst is a barrier or sync.
type BarInst struct {
	InstHeader
	SyncFlags SyncFlags
}

// SegpInst is a segment conversion.
type SegpInst struct {
	InstHeader
	StorageClass StorageClass
	SourceType   DataType
	Reserved     uint16
}

// AtomicInst is an atomic memory operation.
type AtomicInst struct {
	InstHeader
	AtomicOp     AtomicOp
	StorageClass StorageClass
	Semantic     MemorySemantic
}

// AtomicImageInst is an atomic image operation.
type AtomicImageInst struct {
	InstHeader
	AtomicOp     AtomicOp
	StorageClass StorageClass
	Semantic     MemorySemantic
	Geom         Geom
}

// ImageInst is an image read or write.
type ImageInst struct {
	InstHeader
	Geom       Geom
	SourceType DataType
	Reserved   uint16
}

// Modifier returns the ALU modifier of i, if its kind carries one.
func Modifier(i Inst) (AluModifier, bool) {
	switch i := i.(type) {
	case *ModInst:
		return i.Modifier, true
	case *CmpInst:
		return i.Modifier, true
	case *CvtInst:
		return i.Modifier, true
	}
	return 0, false
}

// OperandHeader is the common prefix of every decoded operand.
type OperandHeader struct {
	// Offset is the byte offset of the record within the operands section.
	Offset uint32
	Size   uint16
	Kind   OperandKind
}

// Header returns the common prefix of the record.
func (h OperandHeader) Header() OperandHeader { return h }

// Operand is a decoded operand record.
type Operand interface {
	Header() OperandHeader
}

// AddressOperand is the address of a symbol plus a displacement.
type AddressOperand struct {
	OperandHeader
	Type         DataType
	Reserved     uint16
	Directive    uint32
	Displacement uint32
}

// ListOperand is an argument list or a function list.
type ListOperand struct {
	OperandHeader
	ElementCount uint32
	// Elements holds the operand offsets that fit inside the record.
	Elements []uint32
}

// ArgumentRefOperand names a call argument.
type ArgumentRefOperand struct {
	OperandHeader
	Arg uint32
}

// CompoundOperand is an address plus an optional register and displacement.
type CompoundOperand struct {
	OperandHeader
	Type         DataType
	Reserved     uint16
	Name         uint32
	Reg          uint32
	Displacement int32
}

// FunctionRefOperand names a function or signature.
type FunctionRefOperand struct {
	OperandHeader
	Fn uint32
}

// ImmedOperand is an immediate value.
type ImmedOperand struct {
	OperandHeader
	Type     DataType
	Reserved uint16
	Bits     [ImmedBytes]byte
}

// Uint64 returns the low 64 bits of the immediate.
func (o *ImmedOperand) Uint64() uint64 { return binary.LittleEndian.Uint64(o.Bits[:8]) }

// IndirectOperand is a register plus a displacement.
type IndirectOperand struct {
	OperandHeader
	Reg          uint32
	Type         DataType
	Reserved     uint16
	Displacement int32
}

// LabelRefOperand names a label.
type LabelRefOperand struct {
	OperandHeader
	Label uint32
}

// OpaqueOperand names an image or sampler, optionally indexed by a register.
type OpaqueOperand struct {
	OperandHeader
	Directive    uint32
	Reg          uint32
	Displacement int32
}

// RegOperand is a register.
type RegOperand struct {
	OperandHeader
	Type     DataType
	Reserved uint16
	SName    uint32
}

// RegVectorOperand is a group of two or four registers.
type RegVectorOperand struct {
	OperandHeader
	Type     DataType
	Reserved uint16
	Regs     []uint32
}

// EmptyOperand is a base, padding or wave size operand.
type EmptyOperand struct {
	OperandHeader
}

// TypeOf returns the data type carried by o. Lists, references, opaque and
// empty operands have none.
func TypeOf(o Operand) (DataType, bool) {
	switch o := o.(type) {
	case *AddressOperand:
		return o.Type, true
	case *CompoundOperand:
		return o.Type, true
	case *ImmedOperand:
		return o.Type, true
	case *IndirectOperand:
		return o.Type, true
	case *RegOperand:
		return o.Type, true
	case *RegVectorOperand:
		return o.Type, true
	}
	return InvalidType, false
}
