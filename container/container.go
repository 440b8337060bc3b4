// Package container stores BRIG modules on disk.
//
// A container is a CBOR map holding a magic string, a format version and the
// four sections byte for byte. The container does not look inside the
// sections; checking them is the job of package verify.
package container

import (
	"errors"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/gogpu/brig/format"
)

// Magic identifies a BRIG container.
const Magic = "BRIG"

// Version is the container version written by Marshal.
const Version = 1

var (
	// ErrMagic is returned when the data is not a BRIG container.
	ErrMagic = errors.New("container: bad magic")

	// ErrVersion is returned for containers written by a newer format.
	ErrVersion = errors.New("container: unsupported version")
)

type file struct {
	Magic      string `cbor:"magic"`
	Version    uint   `cbor:"version"`
	Directives []byte `cbor:"directives"`
	Code       []byte `cbor:"code"`
	Operands   []byte `cbor:"operands"`
	Strings    []byte `cbor:"strings"`
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("container: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Marshal encodes m. The encoding is canonical, so equal modules produce
// equal bytes.
func Marshal(m *format.Module) ([]byte, error) {
	if m == nil {
		m = &format.Module{}
	}
	return encMode.Marshal(&file{
		Magic:      Magic,
		Version:    Version,
		Directives: m.Directives,
		Code:       m.Code,
		Operands:   m.Operands,
		Strings:    m.Strings,
	})
}

// Unmarshal decodes a container.
func Unmarshal(data []byte) (*format.Module, error) {
	var f file
	if err := cbor.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("container: unmarshal: %w", err)
	}
	if f.Magic != Magic {
		return nil, fmt.Errorf("%w %q", ErrMagic, f.Magic)
	}
	if f.Version != Version {
		return nil, fmt.Errorf("%w %d", ErrVersion, f.Version)
	}
	return &format.Module{
		Directives: f.Directives,
		Code:       f.Code,
		Operands:   f.Operands,
		Strings:    f.Strings,
	}, nil
}

// ReadFile reads and decodes the container at path.
func ReadFile(path string) (*format.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	m, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteFile encodes m and writes it to path.
func WriteFile(path string, m *format.Module) error {
	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("container: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}
