package container

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/gogpu/brig/builder"
	"github.com/gogpu/brig/format"
)

func sameModule(t *testing.T, got, want *format.Module) {
	t.Helper()
	for _, s := range []format.SectionID{format.Directives, format.Code, format.Operands, format.Strings} {
		if !bytes.Equal(got.Section(s), want.Section(s)) {
			t.Errorf("%s section differs: got %d bytes, want %d", s, len(got.Section(s)), len(want.Section(s)))
		}
	}
}

func TestMarshal_Example(t *testing.T) {
	m := builder.Example()
	data, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	sameModule(t, got, m)
}

func TestMarshal_Canonical(t *testing.T) {
	a, err := Marshal(builder.Example())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Marshal(builder.Example())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("equal modules encoded differently")
	}
}

func TestMarshal_Nil(t *testing.T) {
	data, err := Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal(nil): %v", err)
	}
	m, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m.Size() != 0 {
		t.Errorf("size = %d, want 0", m.Size())
	}
}

func TestUnmarshal_Errors(t *testing.T) {
	encode := func(f file) []byte {
		data, err := cbor.Marshal(f)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"bad magic", encode(file{Magic: "ELF", Version: Version}), ErrMagic},
		{"no magic", encode(file{Version: Version}), ErrMagic},
		{"newer version", encode(file{Magic: Magic, Version: Version + 1}), ErrVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal(tt.data); !errors.Is(err, tt.err) {
				t.Errorf("error = %v, want %v", err, tt.err)
			}
		})
	}

	t.Run("not cbor", func(t *testing.T) {
		if _, err := Unmarshal([]byte{0xff, 0x00}); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.brig")
	m := builder.Example()
	if err := WriteFile(path, m); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	sameModule(t, got, m)

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.brig")); err == nil {
		t.Error("ReadFile of a missing file succeeded")
	}
}
