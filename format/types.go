package format

// DataType is the declared type of an instruction, operand or symbol.
type DataType uint16

// Data types. Scalar types come first, then the opaque handle types, then the
// packed vector types.
const (
	S8 DataType = iota
	S16
	S32
	S64
	U8
	U16
	U32
	U64
	F16
	F32
	F64
	B1
	B8
	B16
	B32
	B64
	B128
	ROImg
	RWImg
	Samp
	U8x4
	S8x4
	U8x8
	S8x8
	U8x16
	S8x16
	U16x2
	S16x2
	F16x2
	U16x4
	S16x4
	F16x4
	U16x8
	S16x8
	F16x8
	U32x2
	S32x2
	F32x2
	U32x4
	S32x4
	F32x4
	U64x2
	S64x2
	F64x2
	InvalidType
)

type typeClass uint8

const (
	classSigned typeClass = iota + 1
	classUnsigned
	classFloat
	classBit
	classOpaque
)

type typeInfo struct {
	name  string
	class typeClass
	bits  uint32
	lanes uint32
}

var typeInfos = [...]typeInfo{
	S8:    {"s8", classSigned, 8, 1},
	S16:   {"s16", classSigned, 16, 1},
	S32:   {"s32", classSigned, 32, 1},
	S64:   {"s64", classSigned, 64, 1},
	U8:    {"u8", classUnsigned, 8, 1},
	U16:   {"u16", classUnsigned, 16, 1},
	U32:   {"u32", classUnsigned, 32, 1},
	U64:   {"u64", classUnsigned, 64, 1},
	F16:   {"f16", classFloat, 16, 1},
	F32:   {"f32", classFloat, 32, 1},
	F64:   {"f64", classFloat, 64, 1},
	B1:    {"b1", classBit, 1, 1},
	B8:    {"b8", classBit, 8, 1},
	B16:   {"b16", classBit, 16, 1},
	B32:   {"b32", classBit, 32, 1},
	B64:   {"b64", classBit, 64, 1},
	B128:  {"b128", classBit, 128, 1},
	ROImg: {"roimg", classOpaque, 64, 1},
	RWImg: {"rwimg", classOpaque, 64, 1},
	Samp:  {"samp", classOpaque, 64, 1},
	U8x4:  {"u8x4", classUnsigned, 32, 4},
	S8x4:  {"s8x4", classSigned, 32, 4},
	U8x8:  {"u8x8", classUnsigned, 64, 8},
	S8x8:  {"s8x8", classSigned, 64, 8},
	U8x16: {"u8x16", classUnsigned, 128, 16},
	S8x16: {"s8x16", classSigned, 128, 16},
	U16x2: {"u16x2", classUnsigned, 32, 2},
	S16x2: {"s16x2", classSigned, 32, 2},
	F16x2: {"f16x2", classFloat, 32, 2},
	U16x4: {"u16x4", classUnsigned, 64, 4},
	S16x4: {"s16x4", classSigned, 64, 4},
	F16x4: {"f16x4", classFloat, 64, 4},
	U16x8: {"u16x8", classUnsigned, 128, 8},
	S16x8: {"s16x8", classSigned, 128, 8},
	F16x8: {"f16x8", classFloat, 128, 8},
	U32x2: {"u32x2", classUnsigned, 64, 2},
	S32x2: {"s32x2", classSigned, 64, 2},
	F32x2: {"f32x2", classFloat, 64, 2},
	U32x4: {"u32x4", classUnsigned, 128, 4},
	S32x4: {"s32x4", classSigned, 128, 4},
	F32x4: {"f32x4", classFloat, 128, 4},
	U64x2: {"u64x2", classUnsigned, 128, 2},
	S64x2: {"s64x2", classSigned, 128, 2},
	F64x2: {"f64x2", classFloat, 128, 2},
}

func (t DataType) info() typeInfo {
	if t < InvalidType {
		return typeInfos[t]
	}
	return typeInfo{name: "invalid"}
}

// Valid reports whether t is a known data type.
func (t DataType) Valid() bool { return t < InvalidType }

// String returns the assembler spelling of t.
func (t DataType) String() string { return t.info().name }

// Size returns the width of t in bits. Vector types report their total width;
// unknown types report 0.
func (t DataType) Size() uint32 { return t.info().bits }

// Lanes returns the number of vector elements, 1 for scalars.
func (t DataType) Lanes() uint32 { return t.info().lanes }

// IsSigned reports whether t is a signed integer scalar or vector.
func (t DataType) IsSigned() bool { return t.info().class == classSigned }

// IsUnsigned reports whether t is an unsigned integer scalar or vector.
func (t DataType) IsUnsigned() bool { return t.info().class == classUnsigned }

// IsInteger reports whether t is signed or unsigned.
func (t DataType) IsInteger() bool { return t.IsSigned() || t.IsUnsigned() }

// IsFloat reports whether t is a floating point scalar or vector.
func (t DataType) IsFloat() bool { return t.info().class == classFloat }

// IsBit reports whether t is an untyped bit type.
func (t DataType) IsBit() bool { return t.info().class == classBit }

// IsOpaque reports whether t is an image or sampler handle type.
func (t DataType) IsOpaque() bool { return t.info().class == classOpaque }

// IsVector reports whether t is a packed vector type.
func (t DataType) IsVector() bool { return t.info().lanes > 1 }

// Packing selects how packed vector operands are combined.
type Packing uint16

// Packing controls. The first letter applies to source 0, the second to
// source 1: p uses every lane, s broadcasts lane 0.
const (
	NoPacking Packing = iota
	PackPP
	PackPS
	PackSP
	PackSS
	PackS
	PackP
	PackPPsat
	PackPSsat
	PackSPsat
	PackSSsat
	PackSsat
	PackPsat
)

var packingNames = [...]string{
	NoPacking: "",
	PackPP:    "pp",
	PackPS:    "ps",
	PackSP:    "sp",
	PackSS:    "ss",
	PackS:     "s",
	PackP:     "p",
	PackPPsat: "pp_sat",
	PackPSsat: "ps_sat",
	PackSPsat: "sp_sat",
	PackSSsat: "ss_sat",
	PackSsat:  "s_sat",
	PackPsat:  "p_sat",
}

// Valid reports whether p is a known packing control.
func (p Packing) Valid() bool { return p <= PackPsat }

func (p Packing) String() string {
	if p.Valid() {
		return packingNames[p]
	}
	return "packing?"
}

// IsSaturated reports whether p saturates its result.
func (p Packing) IsSaturated() bool { return p >= PackPPsat && p <= PackPsat }

// IsValidPacking reports whether p suits an operation with nary sources.
// Unary operations take p or s; binary operations take a pair.
func IsValidPacking(p Packing, nary int) bool {
	switch nary {
	case 1:
		switch p {
		case PackP, PackS, PackPsat, PackSsat:
			return true
		}
	case 2:
		switch p {
		case PackPP, PackPS, PackSP, PackSS, PackPPsat, PackPSsat, PackSPsat, PackSSsat:
			return true
		}
	}
	return false
}
