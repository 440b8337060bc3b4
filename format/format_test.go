package format

import "testing"

func TestDataTypePredicates(t *testing.T) {
	tests := []struct {
		typ      DataType
		size     uint32
		signed   bool
		unsigned bool
		float    bool
		bit      bool
		vector   bool
	}{
		{S8, 8, true, false, false, false, false},
		{U64, 64, false, true, false, false, false},
		{F16, 16, false, false, true, false, false},
		{B1, 1, false, false, false, true, false},
		{B128, 128, false, false, false, true, false},
		{ROImg, 64, false, false, false, false, false},
		{U8x4, 32, false, true, false, false, true},
		{S16x8, 128, true, false, false, false, true},
		{F32x2, 64, false, false, true, false, true},
		{F64x2, 128, false, false, true, false, true},
		{InvalidType, 0, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := tt.typ.Size(); got != tt.size {
				t.Errorf("Size() = %d, want %d", got, tt.size)
			}
			if got := tt.typ.IsSigned(); got != tt.signed {
				t.Errorf("IsSigned() = %v, want %v", got, tt.signed)
			}
			if got := tt.typ.IsUnsigned(); got != tt.unsigned {
				t.Errorf("IsUnsigned() = %v, want %v", got, tt.unsigned)
			}
			if got := tt.typ.IsFloat(); got != tt.float {
				t.Errorf("IsFloat() = %v, want %v", got, tt.float)
			}
			if got := tt.typ.IsBit(); got != tt.bit {
				t.Errorf("IsBit() = %v, want %v", got, tt.bit)
			}
			if got := tt.typ.IsVector(); got != tt.vector {
				t.Errorf("IsVector() = %v, want %v", got, tt.vector)
			}
		})
	}
}

func TestEveryTypeHasAName(t *testing.T) {
	seen := make(map[string]DataType)
	for typ := S8; typ < InvalidType; typ++ {
		name := typ.String()
		if name == "" || name == "invalid" {
			t.Errorf("type %d has no name", typ)
			continue
		}
		if prev, ok := seen[name]; ok {
			t.Errorf("types %d and %d share the name %q", prev, typ, name)
		}
		seen[name] = typ
		if typ.Size() == 0 {
			t.Errorf("type %s has zero size", name)
		}
	}
}

func TestPacking(t *testing.T) {
	for p := NoPacking; p <= PackPsat; p++ {
		if got, want := p.IsSaturated(), p >= PackPPsat; got != want {
			t.Errorf("%s.IsSaturated() = %v, want %v", p, got, want)
		}
	}
	if Packing(PackPsat + 1).Valid() {
		t.Error("packing past p_sat reported valid")
	}

	unary := []Packing{PackP, PackS, PackPsat, PackSsat}
	binary := []Packing{PackPP, PackPS, PackSP, PackSS, PackPPsat, PackPSsat, PackSPsat, PackSSsat}
	for _, p := range unary {
		if !IsValidPacking(p, 1) || IsValidPacking(p, 2) {
			t.Errorf("%s: want unary only", p)
		}
	}
	for _, p := range binary {
		if !IsValidPacking(p, 2) || IsValidPacking(p, 1) {
			t.Errorf("%s: want binary only", p)
		}
	}
	if IsValidPacking(NoPacking, 1) || IsValidPacking(PackPP, 3) {
		t.Error("no packing or ternary packing accepted")
	}
}

func TestOpcodeNames(t *testing.T) {
	seen := make(map[string]bool, NumOpcodes)
	for op := Opcode(0); op < OpInvalid; op++ {
		name := op.String()
		if name == "" || name == "invalid" {
			t.Fatalf("opcode %d has no name", op)
		}
		if seen[name] {
			t.Errorf("duplicate opcode name %q", name)
		}
		seen[name] = true
	}
	if OpInvalid.Valid() {
		t.Error("OpInvalid reported valid")
	}
	if OpAdd.String() != "add" || OpWorkItemIdFlat.String() != "workitemidflat" {
		t.Errorf("unexpected names %q %q", OpAdd, OpWorkItemIdFlat)
	}
}

func TestKindSizes(t *testing.T) {
	for k := DirFunction; k < numDirectiveKinds; k++ {
		if k.MinSize() < HeaderSize {
			t.Errorf("%s: min size %d below header", k, k.MinSize())
		}
		if a := k.Align(); a != 0 && k.MinSize()%uint16(a) != 0 {
			t.Errorf("%s: min size %d not a multiple of alignment %d", k, k.MinSize(), a)
		}
	}
	for k := InstBase; k < numInstKinds; k++ {
		if k.MinSize() < 32 {
			t.Errorf("%s: min size %d below common prefix", k, k.MinSize())
		}
	}
	for k := OperandAddress; k < numOperandKinds; k++ {
		if !k.Valid() || k.String() == "operand?" {
			t.Errorf("operand kind %d has no name", k)
		}
	}
	if DirectiveKind(numDirectiveKinds).Valid() {
		t.Error("kind past the table reported valid")
	}
}

func TestAluModifier(t *testing.T) {
	m := MakeAluModifier(true, RoundDown, true, true, false)
	if !m.Valid() || !m.FloatOrInt() || !m.Ftz() || !m.Approx() || m.Fbar() {
		t.Errorf("flags not round-tripped: %#x", uint32(m))
	}
	if m.Rounding() != RoundDown {
		t.Errorf("Rounding() = %d, want %d", m.Rounding(), RoundDown)
	}
	if m.Reserved() != 0 {
		t.Errorf("Reserved() = %#x, want 0", m.Reserved())
	}
	if (m | 1<<9).Reserved() == 0 {
		t.Error("bit 9 not reported as reserved")
	}
}

func TestCCode(t *testing.T) {
	if c, ok := CCode(&LabelDirective{CCode: 40}); !ok || c != 40 {
		t.Errorf("label c_code = %d, %v", c, ok)
	}
	if c, ok := CCode(&SymbolDirective{S: SymbolCommon{CCode: 8}}); !ok || c != 8 {
		t.Errorf("symbol c_code = %d, %v", c, ok)
	}
	if _, ok := CCode(&BlockStringDirective{}); ok {
		t.Error("block string reported a c_code")
	}
}
