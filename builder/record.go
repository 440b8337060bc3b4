package builder

import "encoding/binary"

// record is a little-endian record under construction.
type record []byte

func newRecord(size int, kind uint16) record {
	r := make(record, size)
	binary.LittleEndian.PutUint16(r[2:], kind)
	return r
}

func (r record) u8(off int, v uint8)   { r[off] = v }
func (r record) u16(off int, v uint16) { binary.LittleEndian.PutUint16(r[off:], v) }
func (r record) u32(off int, v uint32) { binary.LittleEndian.PutUint32(r[off:], v) }

// sized applies a declared size. A zero size keeps the natural size; any
// other value truncates or zero-extends the record to exactly that length.
func (r record) sized(size uint16) record {
	n := len(r)
	if size != 0 {
		n = int(size)
	}
	out := make(record, n)
	copy(out, r)
	binary.LittleEndian.PutUint16(out, uint16(n))
	return out
}

func roundUp(n, align int) int {
	return (n + align - 1) / align * align
}
