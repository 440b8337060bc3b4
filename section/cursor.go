package section

import "github.com/gogpu/brig/format"

// Cursor walks the records of a section by their declared size.
//
// Cursors over the same section compare by offset.
type Cursor struct {
	v   View
	off uint32
}

// Begin returns a cursor at the first record of v, just past the zero prefix.
func Begin(v View) Cursor {
	return Cursor{v: v, off: format.SectionPrefix}
}

// At returns a cursor at off.
func At(v View, off uint32) Cursor {
	return Cursor{v: v, off: off}
}

// Offset returns the byte offset of the current record.
func (c Cursor) Offset() uint32 { return c.off }

// Done reports whether the cursor has reached the end of the section.
func (c Cursor) Done() bool { return c.off >= c.v.Len() }

// Check confirms the record under the cursor, see View.Check.
func (c Cursor) Check() (size, kind uint16, err error) { return c.v.Check(c.off) }

// Next advances past the current record. The cursor does not move when the
// current record fails Check.
func (c *Cursor) Next() error {
	size, _, err := c.v.Check(c.off)
	if err != nil {
		return err
	}
	c.off += uint32(size)
	return nil
}

// Less reports whether c is before o.
func (c Cursor) Less(o Cursor) bool { return c.off < o.off }
