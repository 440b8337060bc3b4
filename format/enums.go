package format

// StorageClass is the memory segment a symbol or memory access refers to.
type StorageClass uint32

// Storage classes. Values between Flat and Flat+8 are reserved for
// extensions and are accepted on symbol declarations.
const (
	Global StorageClass = iota
	Group
	Private
	Kernarg
	Readonly
	Spill
	Arg
	Flat
	InvalidSpace
)

// MaxExtensionSpace is the largest storage class accepted on a declaration.
const MaxExtensionSpace = Flat + 8

var storageNames = [...]string{
	Global:   "global",
	Group:    "group",
	Private:  "private",
	Kernarg:  "kernarg",
	Readonly: "readonly",
	Spill:    "spill",
	Arg:      "arg",
	Flat:     "flat",
}

func (s StorageClass) String() string {
	if s < InvalidSpace {
		return storageNames[s]
	}
	return "space?"
}

// Attribute is the linkage of a function or symbol.
type Attribute uint16

// Linkage attributes.
const (
	Extern Attribute = iota
	Static
	NoAttribute
)

// SymbolModifier is a bit set qualifying a symbol declaration.
type SymbolModifier uint32

// Symbol modifier bits.
const (
	ModConst SymbolModifier = 1 << iota
	ModArray
	ModFlex

	AllSymbolModifiers = ModConst | ModArray | ModFlex
)

// Machine is the address width declared by the version directive.
type Machine uint8

// Machine models.
const (
	Small Machine = iota
	Large
)

func (m Machine) String() string {
	switch m {
	case Small:
		return "small"
	case Large:
		return "large"
	}
	return "machine?"
}

// Profile is the feature profile declared by the version directive.
type Profile uint8

// Profiles.
const (
	Full Profile = iota
	Reduced
)

func (p Profile) String() string {
	switch p {
	case Full:
		return "full"
	case Reduced:
		return "reduced"
	}
	return "profile?"
}

// Ftz is the flush-to-zero mode declared by the version directive.
type Ftz uint8

// Flush-to-zero modes.
const (
	Nosftz Ftz = iota
	Sftz
)

func (f Ftz) String() string {
	switch f {
	case Nosftz:
		return "nosftz"
	case Sftz:
		return "sftz"
	}
	return "ftz?"
}

// SamplerFilter is the filtering mode of a sampler.
type SamplerFilter uint8

// Sampler filters.
const (
	FilterLinear SamplerFilter = iota
	FilterNearest
)

// SamplerBoundary is the addressing mode of a sampler along one axis.
type SamplerBoundary uint8

// Sampler boundary modes.
const (
	BoundaryClamp SamplerBoundary = iota
	BoundaryWrap
	BoundaryMirror
	BoundaryMirrorOnce
	BoundaryBorder
)

// ImageOrder is the channel order of an image.
type ImageOrder uint32

// Image channel orders.
const (
	OrderUnknown ImageOrder = iota
	OrderR
	OrderA
	OrderRX
	OrderRG
	OrderRGX
	OrderRA
	OrderRGB
	OrderRGBA
	OrderARGB
	OrderBGRA
	OrderIntensity
	OrderLuminance
	OrderInvalid
)

// ImageFormat is the channel format of an image.
type ImageFormat uint32

// Image channel formats.
const (
	FormatUnknown ImageFormat = iota
	FormatSnormInt8
	FormatSnormInt16
	FormatUnormInt8
	FormatUnormInt16
	FormatUnormShort565
	FormatUnormShort555
	FormatUnormInt101010
	FormatSignedInt8
	FormatSignedInt16
	FormatSignedInt32
	FormatUnsignedInt8
	FormatUnsignedInt16
	FormatUnsignedInt32
	FormatHalfFloat
	FormatFloat
	FormatInvalid
)

// Geom is the geometry of an image access.
type Geom uint32

// Image geometries.
const (
	Geom1D Geom = iota
	Geom2D
	Geom3D
	Geom1DB
	Geom1DA
	Geom2DA
)

// AtomicOp selects the read-modify-write operation of an atomic.
type AtomicOp uint32

// Atomic operations.
const (
	AtomicAnd AtomicOp = iota
	AtomicOr
	AtomicXor
	AtomicCas
	AtomicExch
	AtomicAdd
	AtomicInc
	AtomicDec
	AtomicMin
	AtomicMax
	AtomicSub
)

// MemorySemantic is the ordering of a memory access.
type MemorySemantic uint32

// Memory semantics.
const (
	SemRegular MemorySemantic = iota
	SemAcquire
	SemRelease
	SemAcquireRelease
	SemDep
	SemParAcquire
	SemParRelease
	SemParAcquireRelease
)

// SyncFlags selects the segments a barrier synchronizes.
type SyncFlags uint32

// Barrier segment bits.
const (
	SyncGroup SyncFlags = 1 << iota
	SyncGlobal
	SyncPartial

	AllSyncFlags = SyncGroup | SyncGlobal | SyncPartial
)

// CompareOp is the comparison performed by cmp and packedcmp.
type CompareOp uint32

// Comparison operators. Integer comparisons only use the first six.
const (
	CmpEq CompareOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
	CmpEqu
	CmpNeu
	CmpLtu
	CmpLeu
	CmpGtu
	CmpGeu
	CmpNum
	CmpNan
	CmpSeq
	CmpSne
	CmpSlt
	CmpSle
	CmpSgt
	CmpSge
	CmpSnum
	CmpSnan
	CmpSequ
	CmpSneu
	CmpSltu
	CmpSleu
	CmpSgtu
	CmpSgeu
)

// ControlType is the setting a control directive adjusts.
type ControlType uint32
