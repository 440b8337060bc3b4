package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/brig/builder"
	"github.com/gogpu/brig/container"
	"github.com/gogpu/brig/format"
)

func writeModule(t *testing.T, m *format.Module) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "module.brig")
	if err := container.WriteFile(path, m); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Example(t *testing.T) {
	path := writeModule(t, builder.Example())
	var stdout, stderr bytes.Buffer
	if got := run([]string{"-blocks", path}, &stdout, &stderr); got != 0 {
		t.Fatalf("status = %d, stderr: %s", got, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"directives (", "code (", "operands (", "strings (",
		format.DirVersion.String(), format.DirKernel.String(),
		`"&main"`, "control blocks",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestRun_Section(t *testing.T) {
	path := writeModule(t, builder.Example())
	var stdout, stderr bytes.Buffer
	if got := run([]string{"-section", "strings", path}, &stdout, &stderr); got != 0 {
		t.Fatalf("status = %d, stderr: %s", got, stderr.String())
	}
	if strings.Contains(stdout.String(), "directives (") {
		t.Errorf("dumped an unselected section:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), `"debug"`) {
		t.Errorf("strings missing:\n%s", stdout.String())
	}
}

func TestRun_BadRecord(t *testing.T) {
	b := builder.NewModuleBuilder()
	b.Version(format.Large, format.Full, format.Nosftz)
	b.AddRaw(format.Directives, []byte{2, 0, 0, 0})
	path := writeModule(t, b.Build())

	var stdout, stderr bytes.Buffer
	if got := run([]string{path}, &stdout, &stderr); got != 1 {
		t.Errorf("status = %d, want 1", got)
	}
	if stderr.Len() == 0 {
		t.Error("no error reported")
	}
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if got := run(nil, &stdout, &stderr); got != 1 {
		t.Errorf("status = %d, want 1", got)
	}
	if got := run([]string{filepath.Join(t.TempDir(), "missing.brig")}, &stdout, &stderr); got != 1 {
		t.Errorf("missing file: status = %d, want 1", got)
	}
}
