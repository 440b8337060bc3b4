package section

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gogpu/brig/builder"
	"github.com/gogpu/brig/format"
)

func header(size, kind uint16, n int) []byte {
	r := make([]byte, n)
	binary.LittleEndian.PutUint16(r, size)
	binary.LittleEndian.PutUint16(r[2:], kind)
	return r
}

func TestView_Check(t *testing.T) {
	data := make([]byte, format.SectionPrefix)
	data = append(data, header(12, uint16(format.DirLabel), 12)...)
	data = append(data, header(2, uint16(format.DirLabel), 4)...)
	data = append(data, header(16, uint16(format.DirLabel), 6)...)
	v := NewView(format.Directives, data)

	tests := []struct {
		name string
		off  uint32
		size uint16
		err  error
	}{
		{"record", 8, 12, nil},
		{"size below header", 20, 0, ErrTooSmall},
		{"declared size crosses end", 24, 0, ErrSpans},
		{"header crosses end", 28, 0, ErrSpans},
		{"at end", uint32(len(data)), 0, ErrSpans},
		{"past end", uint32(len(data)) + 1, 0, ErrPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, _, err := v.Check(tt.off)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Check(%d) error = %v, want %v", tt.off, err, tt.err)
			}
			if err != nil {
				var se *Error
				if !errors.As(err, &se) {
					t.Fatalf("error %v is not a *section.Error", err)
				}
				if se.Section != format.Directives || se.Offset != tt.off {
					t.Errorf("error at %s+%d, want directives+%d", se.Section, se.Offset, tt.off)
				}
				return
			}
			if size != tt.size {
				t.Errorf("size = %d, want %d", size, tt.size)
			}
		})
	}
}

func TestView_PrefixZero(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", nil, true},
		{"short", []byte{0, 0, 0}, true},
		{"zero", make([]byte, 16), true},
		{"set", []byte{0, 0, 0, 0, 0, 0, 0, 1}, false},
		{"set after prefix", append(make([]byte, 8), 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewView(format.Code, tt.data).PrefixZero(); got != tt.want {
				t.Errorf("PrefixZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCursor_Example(t *testing.T) {
	dirs, _, _, _ := Views(builder.Example())

	want := []format.DirectiveKind{
		format.DirVersion, format.DirKernel, format.DirSymbol, format.DirLabel,
		format.DirBlockStart, format.DirBlockString, format.DirBlockEnd,
	}
	var got []format.DirectiveKind
	for c := Begin(dirs); !c.Done(); {
		d, err := DecodeDirective(dirs, c.Offset())
		if err != nil {
			t.Fatalf("DecodeDirective(%d): %v", c.Offset(), err)
		}
		if d.Header().Offset != c.Offset() {
			t.Errorf("header offset = %d, want %d", d.Header().Offset, c.Offset())
		}
		got = append(got, d.Header().Kind)
		if err := c.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got kinds %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: kind %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCursor_StopsOnBadRecord(t *testing.T) {
	data := append(make([]byte, format.SectionPrefix), header(2, uint16(format.DirLabel), 4)...)
	c := Begin(NewView(format.Directives, data))
	if err := c.Next(); !errors.Is(err, ErrTooSmall) {
		t.Fatalf("Next() error = %v, want ErrTooSmall", err)
	}
	if c.Offset() != format.SectionPrefix {
		t.Errorf("cursor moved to %d", c.Offset())
	}
}

func TestDecodeDirective(t *testing.T) {
	b := builder.NewModuleBuilder()
	ver := b.Version(format.Small, format.Reduced, format.Sftz)
	sym := b.Symbol("%x", format.Group, format.F64)
	lbl := b.Label("@l")
	dirs, _, _, strs := Views(b.Build())

	d, err := DecodeDirective(dirs, ver)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	v := d.(*format.VersionDirective)
	if v.Machine != format.Small || v.Profile != format.Reduced || v.Ftz != format.Sftz || v.Major != 1 {
		t.Errorf("version = %+v", v)
	}

	d, err = Directive(dirs, sym, format.DirSymbol)
	if err != nil {
		t.Fatalf("symbol: %v", err)
	}
	s := d.(*format.SymbolDirective)
	if s.S.StorageClass != format.Group || s.S.Type != format.F64 || s.S.Align != 8 {
		t.Errorf("symbol = %+v", s.S)
	}
	if name, err := String(strs, s.S.SName); err != nil || name != "%x" {
		t.Errorf("symbol name = %q, %v", name, err)
	}

	d, err = Directive(dirs, lbl, format.DirLabel)
	if err != nil {
		t.Fatalf("label: %v", err)
	}
	if name, _ := String(strs, d.(*format.LabelDirective).SName); name != "@l" {
		t.Errorf("label name = %q", name)
	}
}

func TestDirective_Errors(t *testing.T) {
	b := builder.NewModuleBuilder()
	b.Version(format.Large, format.Full, format.Nosftz)
	sym := b.Symbol("%x", format.Global, format.U32)
	unknown := b.AddRaw(format.Directives, header(4, 0x7FFF, 4))
	small := b.AddRaw(format.Directives, header(8, uint16(format.DirLabel), 8))
	dirs, _, _, _ := Views(b.Build())

	tests := []struct {
		name string
		off  uint32
		err  error
	}{
		{"absent", 0, ErrAbsent},
		{"wrong kind", sym, ErrWrongKind},
		{"unknown kind", unknown, ErrUnknownKind},
		{"too small", small, ErrTooSmall},
		{"past", dirs.Len() + 4, ErrPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Directive(dirs, tt.off, format.DirLabel)
			if !errors.Is(err, tt.err) {
				t.Errorf("Directive(%d) error = %v, want %v", tt.off, err, tt.err)
			}
		})
	}
}

func TestOperand_Errors(t *testing.T) {
	b := builder.NewModuleBuilder()
	reg := b.Reg("$s0")
	imm := b.Immed(format.B32, 5)
	_, _, ops, _ := Views(b.Build())

	if _, err := Operand(ops, reg, format.OperandReg); err != nil {
		t.Errorf("reg: %v", err)
	}
	o, err := DecodeOperand(ops, imm)
	if err != nil {
		t.Fatalf("immed: %v", err)
	}
	if got := o.(*format.ImmedOperand).Uint64(); got != 5 {
		t.Errorf("immed value = %d, want 5", got)
	}
	if _, err := Operand(ops, imm, format.OperandReg); !errors.Is(err, ErrWrongKind) {
		t.Errorf("immed as reg: error = %v, want ErrWrongKind", err)
	}
	if _, err := Operand(ops, 0, format.OperandReg); !errors.Is(err, ErrAbsent) {
		t.Errorf("zero offset: error = %v, want ErrAbsent", err)
	}
}

func TestDecodeInst(t *testing.T) {
	b := builder.NewModuleBuilder()
	s0, s1 := b.Reg("$s0"), b.Reg("$s1")
	off := b.AddInst(&format.CvtInst{
		InstHeader: builder.Header(format.InstCvt, format.OpCvt, format.F32, s0, s1),
		SourceType: format.S32,
	})
	_, code, _, _ := Views(b.Build())

	i, err := DecodeInst(code, off)
	if err != nil {
		t.Fatal(err)
	}
	h := i.Header()
	if h.Opcode != format.OpCvt || h.Type != format.F32 || h.NumOperands() != 2 {
		t.Errorf("header = %+v", h)
	}
	if h.Operands[0] != s0 || h.Operands[1] != s1 {
		t.Errorf("operands = %v, want [%d %d ...]", h.Operands, s0, s1)
	}
	if got := i.(*format.CvtInst).SourceType; got != format.S32 {
		t.Errorf("source type = %s, want s32", got)
	}
}

func TestString(t *testing.T) {
	data := append(make([]byte, format.SectionPrefix), "abc\x00de"...)
	v := NewView(format.Strings, data)

	if s, err := String(v, 8); err != nil || s != "abc" {
		t.Errorf("String(8) = %q, %v", s, err)
	}
	if s, err := String(v, 10); err != nil || s != "c" {
		t.Errorf("String(10) = %q, %v", s, err)
	}
	if _, err := String(v, 12); !errors.Is(err, ErrUnterminated) {
		t.Errorf("String(12) error = %v, want ErrUnterminated", err)
	}
	if _, err := String(v, uint32(len(data))); !errors.Is(err, ErrPast) {
		t.Errorf("String(end) error = %v, want ErrPast", err)
	}
}

func TestBlocks(t *testing.T) {
	dirs, _, _, _ := Views(builder.Example())

	var kernel uint32
	for c := Begin(dirs); !c.Done(); _ = c.Next() {
		if _, kind, _ := c.Check(); format.DirectiveKind(kind) == format.DirKernel {
			kernel = c.Offset()
			break
		}
	}
	if kernel == 0 {
		t.Fatal("example has no kernel")
	}

	begin, end, err := Blocks(dirs, kernel)
	if err != nil {
		t.Fatalf("Blocks: %v", err)
	}
	var kinds []format.DirectiveKind
	for b := begin; !b.Equal(end); {
		_, kind, err := dirs.Check(b.Offset())
		if err != nil {
			t.Fatalf("block at %d: %v", b.Offset(), err)
		}
		kinds = append(kinds, format.DirectiveKind(kind))
		if err := b.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if len(kinds) != 2 || kinds[0] != format.DirKernel || kinds[1] != format.DirLabel {
		t.Errorf("blocks = %v, want [kernel label]", kinds)
	}
}

func TestBlocks_Errors(t *testing.T) {
	method := func(b *builder.ModuleBuilder) uint32 {
		return b.AddDirective(&format.MethodDirective{
			DirectiveHeader: format.DirectiveHeader{Kind: format.DirFunction},
			SName:           b.AddString("&f"),
			Attribute:       format.NoAttribute,
		})
	}

	t.Run("ends at label", func(t *testing.T) {
		b := builder.NewModuleBuilder()
		fn := method(b)
		b.PatchU32(format.Directives, fn+24, b.Label("@l"))
		dirs, _, _, _ := Views(b.Build())
		if _, _, err := Blocks(dirs, fn); !errors.Is(err, ErrLabelBoundary) {
			t.Errorf("error = %v, want ErrLabelBoundary", err)
		}
	})

	t.Run("past the section", func(t *testing.T) {
		b := builder.NewModuleBuilder()
		fn := method(b)
		b.PatchU32(format.Directives, fn+24, 4096)
		dirs, _, _, _ := Views(b.Build())
		if _, _, err := Blocks(dirs, fn); !errors.Is(err, ErrPast) {
			t.Errorf("error = %v, want ErrPast", err)
		}
	})

	t.Run("not a method", func(t *testing.T) {
		b := builder.NewModuleBuilder()
		l := b.Label("@l")
		dirs, _, _, _ := Views(b.Build())
		if _, _, err := Blocks(dirs, l); !errors.Is(err, ErrWrongKind) {
			t.Errorf("error = %v, want ErrWrongKind", err)
		}
	})
}
