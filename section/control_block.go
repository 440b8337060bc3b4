package section

import "github.com/gogpu/brig/format"

// ControlBlock is a position in the directives section that only stops at
// labels. Iterating from a method's begin to its end visits the method
// itself and then every label that starts a basic block of its body.
type ControlBlock struct {
	dirs View
	off  uint32
}

// Offset returns the directive offset of the block start.
func (b ControlBlock) Offset() uint32 { return b.off }

// Done reports whether the block is at the end of the directives section.
func (b ControlBlock) Done() bool { return b.off >= b.dirs.Len() }

// Equal reports whether b and o are at the same position.
func (b ControlBlock) Equal(o ControlBlock) bool { return b.off == o.off }

// Next advances to the next label directive, or to the end of the section.
func (b *ControlBlock) Next() error {
	if b.Done() {
		return nil
	}
	c := At(b.dirs, b.off)
	for {
		if err := c.Next(); err != nil {
			return err
		}
		if c.Done() {
			b.off = b.dirs.Len()
			return nil
		}
		if _, kind, err := c.Check(); err != nil {
			return err
		} else if format.DirectiveKind(kind) == format.DirLabel {
			b.off = c.Offset()
			return nil
		}
	}
}

// Blocks returns the control block range of the function or kernel at
// method. The end is the first label after the method's next directive, so
// iterating begin until it equals end covers the whole body.
func Blocks(dirs View, method uint32) (begin, end ControlBlock, err error) {
	d, err := Directive(dirs, method, format.DirFunction, format.DirKernel)
	if err != nil {
		return begin, end, err
	}
	m := d.(*format.MethodDirective)
	next := m.NextDirective
	if next > dirs.Len() {
		return begin, end, newError(dirs.id, next, ErrPast)
	}
	if next < dirs.Len() {
		_, kind, err := dirs.Check(next)
		if err != nil {
			return begin, end, err
		}
		if format.DirectiveKind(kind) == format.DirLabel {
			return begin, end, newError(dirs.id, next, ErrLabelBoundary)
		}
	}
	begin = ControlBlock{dirs: dirs, off: method}
	end = ControlBlock{dirs: dirs, off: next}
	if err := end.Next(); err != nil {
		return ControlBlock{}, ControlBlock{}, err
	}
	return begin, end, nil
}
