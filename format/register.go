package format

import "strconv"

// RegisterClass returns the data type of the register class letter: c for
// b1, s for b32, d for b64 and q for b128.
func RegisterClass(class byte) (DataType, bool) {
	switch class {
	case 'c':
		return B1, true
	case 's':
		return B32, true
	case 'd':
		return B64, true
	case 'q':
		return B128, true
	}
	return InvalidType, false
}

// RegisterLimit returns the number of registers of type t: 8 control and
// quad registers, 32 single and double registers.
func RegisterLimit(t DataType) uint64 {
	switch t {
	case B1, B128:
		return 8
	case B32, B64:
		return 32
	}
	return 0
}

// RegisterName returns the name of register index of type t, such as $s3.
func RegisterName(t DataType, index int) string {
	var class byte
	switch t {
	case B1:
		class = 'c'
	case B32:
		class = 's'
	case B64:
		class = 'd'
	case B128:
		class = 'q'
	default:
		return ""
	}
	return "$" + string(class) + strconv.Itoa(index)
}
