package section

import "bytes"

// String returns the NUL-terminated string at off in the strings section.
func String(v View, off uint32) (string, error) {
	if off >= v.Len() {
		return "", newError(v.id, off, ErrPast)
	}
	n := bytes.IndexByte(v.data[off:], 0)
	if n < 0 {
		return "", newError(v.id, off, ErrUnterminated)
	}
	return string(v.data[off : off+uint32(n)]), nil
}
