package verify

// ErrorKind categorizes a verification diagnostic.
type ErrorKind uint8

const (
	// ErrBounds indicates a record or reference outside its section.
	ErrBounds ErrorKind = iota

	// ErrKindMismatch indicates a reference to a record of the wrong kind.
	ErrKindMismatch

	// ErrFieldDomain indicates a field holding a value outside its domain:
	// reserved bits, enumerations, arity, types, packing or widths.
	ErrFieldDomain

	// ErrUnrecognized indicates an unknown record kind or opcode.
	ErrUnrecognized

	// ErrOrdering indicates anchor offsets out of order or a repeated string.
	ErrOrdering
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrBounds:
		return "Bounds"
	case ErrKindMismatch:
		return "KindMismatch"
	case ErrFieldDomain:
		return "FieldDomain"
	case ErrUnrecognized:
		return "Unrecognized"
	case ErrOrdering:
		return "Ordering"
	default:
		return "Unknown"
	}
}
