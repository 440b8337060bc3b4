package section

import (
	"encoding/binary"

	"github.com/gogpu/brig/format"
)

// View is a read-only window over one section of a module.
//
// The raw accessors (U8, U16, U32) do no bounds checking of their own; they
// are only called on ranges already confirmed by Check.
type View struct {
	id   format.SectionID
	data []byte
}

// NewView returns a view over data, which holds section id.
func NewView(id format.SectionID, data []byte) View {
	return View{id: id, data: data}
}

// Views returns the four section views of m.
func Views(m *format.Module) (dirs, code, operands, strings View) {
	return NewView(format.Directives, m.Directives),
		NewView(format.Code, m.Code),
		NewView(format.Operands, m.Operands),
		NewView(format.Strings, m.Strings)
}

// ID returns the section the view covers.
func (v View) ID() format.SectionID { return v.id }

// Len returns the section length in bytes.
func (v View) Len() uint32 { return uint32(len(v.data)) }

// Bytes returns the raw section.
func (v View) Bytes() []byte { return v.data }

// U8 reads a byte at off.
func (v View) U8(off uint32) uint8 { return v.data[off] }

// U16 reads a little-endian uint16 at off.
func (v View) U16(off uint32) uint16 { return binary.LittleEndian.Uint16(v.data[off:]) }

// U32 reads a little-endian uint32 at off.
func (v View) U32(off uint32) uint32 { return binary.LittleEndian.Uint32(v.data[off:]) }

// PrefixZero reports whether the first eight bytes of the section are zero.
// A section shorter than the prefix only has its present bytes checked.
func (v View) PrefixZero() bool {
	n := min(len(v.data), format.SectionPrefix)
	for _, b := range v.data[:n] {
		if b != 0 {
			return false
		}
	}
	return true
}

// Check confirms that a record header at off lies inside the section and
// that the record's declared size keeps it inside. It returns the declared
// size and the raw kind tag.
func (v View) Check(off uint32) (size, kind uint16, err error) {
	n := uint64(len(v.data))
	if uint64(off) > n {
		return 0, 0, newError(v.id, off, ErrPast)
	}
	if uint64(off)+format.HeaderSize > n {
		return 0, 0, newError(v.id, off, ErrSpans)
	}
	size = v.U16(off)
	kind = v.U16(off + 2)
	if size < format.HeaderSize {
		return size, kind, newError(v.id, off, ErrTooSmall)
	}
	if uint64(off)+uint64(size) > n {
		return size, kind, newError(v.id, off, ErrSpans)
	}
	return size, kind, nil
}

// CheckOrEnd is Check, but also accepts the offset one past the last byte.
func (v View) CheckOrEnd(off uint32) error {
	if off == v.Len() {
		return nil
	}
	_, _, err := v.Check(off)
	return err
}

// Kind returns the raw kind tag of the record at off. The header must have
// been confirmed by Check.
func (v View) Kind(off uint32) uint16 { return v.U16(off + 2) }
