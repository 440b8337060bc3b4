package builder

import (
	"encoding/binary"
	"testing"

	"github.com/gogpu/brig/format"
)

func TestModuleBuilder_Prefix(t *testing.T) {
	m := NewModuleBuilder().Build()
	for _, s := range []format.SectionID{format.Directives, format.Code, format.Operands, format.Strings} {
		data := m.Section(s)
		if len(data) != format.SectionPrefix {
			t.Errorf("%s: length %d, want %d", s, len(data), format.SectionPrefix)
		}
		for i, b := range data {
			if b != 0 {
				t.Errorf("%s: byte %d = %d, want 0", s, i, b)
			}
		}
	}
}

func TestModuleBuilder_Strings(t *testing.T) {
	b := NewModuleBuilder()
	first := b.AddString("main")
	if again := b.AddString("main"); again != first {
		t.Errorf("AddString deduplicated to %d, want %d", again, first)
	}
	if raw := b.AddRawString("main"); raw == first {
		t.Error("AddRawString reused an existing entry")
	}

	m := b.Build()
	if got := string(m.Strings[first : first+5]); got != "main\x00" {
		t.Errorf("string at %d = %q", first, got)
	}
}

func TestModuleBuilder_Alignment(t *testing.T) {
	b := NewModuleBuilder()
	b.Version(format.Large, format.Full, format.Nosftz)
	b.Label("@l")
	at := b.AddDirective(&format.InitDirective{
		DirectiveHeader: format.DirectiveHeader{Kind: format.DirInit},
		ElementCount:    1,
		Type:            format.B32,
		Data:            []byte{1, 2, 3, 4},
	})
	if at%8 != 0 {
		t.Fatalf("init at %d, want 8-byte alignment", at)
	}

	m := b.Build()
	pad := at - 4
	if kind := binary.LittleEndian.Uint16(m.Directives[pad+2:]); format.DirectiveKind(kind) != format.DirPad {
		t.Errorf("record before init has kind %d, want pad", kind)
	}
}

func TestModuleBuilder_ExplicitSize(t *testing.T) {
	tests := []struct {
		name string
		size uint16
	}{
		{"natural", 0},
		{"truncated", 8},
		{"extended", 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewModuleBuilder()
			off := b.AddDirective(&format.LabelDirective{
				DirectiveHeader: format.DirectiveHeader{Kind: format.DirLabel, Size: tt.size},
			})
			m := b.Build()

			want := tt.size
			if want == 0 {
				want = format.DirLabel.MinSize()
			}
			if got := binary.LittleEndian.Uint16(m.Directives[off:]); got != want {
				t.Errorf("declared size = %d, want %d", got, want)
			}
			if got := uint32(len(m.Directives)) - off; got != uint32(want) {
				t.Errorf("record length = %d, want %d", got, want)
			}
		})
	}
}

func TestRegType(t *testing.T) {
	tests := []struct {
		name string
		want format.DataType
	}{
		{"$c0", format.B1},
		{"$s12", format.B32},
		{"$d3", format.B64},
		{"$q1", format.B128},
		{"$x0", format.InvalidType},
		{"s0", format.InvalidType},
		{"$", format.InvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RegType(tt.name); got != tt.want {
				t.Errorf("RegType(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestBuild_Copies(t *testing.T) {
	b := NewModuleBuilder()
	b.AddString("a")
	m := b.Build()
	b.AddString("b")
	if len(m.Strings) != format.SectionPrefix+2 {
		t.Errorf("built module changed after Build: %d bytes", len(m.Strings))
	}
}

func TestExample(t *testing.T) {
	m := Example()
	if len(m.Directives) <= format.SectionPrefix || len(m.Code) <= format.SectionPrefix {
		t.Fatal("example module is empty")
	}
	if kind := binary.LittleEndian.Uint16(m.Directives[format.SectionPrefix+2:]); format.DirectiveKind(kind) != format.DirVersion {
		t.Errorf("first directive kind = %d, want version", kind)
	}
}
