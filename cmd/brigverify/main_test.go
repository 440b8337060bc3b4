package main

import (
	"bytes"
	"encoding/json"
	"os"
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

func invalidModule() *format.Module {
	b := builder.NewModuleBuilder()
	b.Version(format.Large, format.Full, format.Nosftz)
	for i := 0; i < 3; i++ {
		b.AddRawString("twice")
	}
	return b.Build()
}

func TestRun(t *testing.T) {
	valid := writeModule(t, builder.Example())
	invalid := writeModule(t, invalidModule())

	tests := []struct {
		name   string
		args   []string
		status int
		stdout string
	}{
		{"valid", []string{valid}, 0, ": valid"},
		{"invalid", []string{invalid}, 1, "Duplicate string detected"},
		{"limited", []string{"-max", "1", invalid}, 1, "1 more diagnostics not shown"},
		{"parallel", []string{"-parallel", valid}, 0, ": valid"},
		{"version", []string{"-version"}, 0, "brigverify version"},
		{"no input", nil, 1, ""},
		{"missing file", []string{filepath.Join(t.TempDir(), "missing.brig")}, 1, ""},
		{"bad flag", []string{"-nope", valid}, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.status {
				t.Fatalf("status = %d, want %d\nstdout: %s\nstderr: %s", got, tt.status, stdout.String(), stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.stdout) {
				t.Errorf("stdout %q does not contain %q", stdout.String(), tt.stdout)
			}
		})
	}
}

func TestRun_JSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if got := run([]string{"-json", writeModule(t, invalidModule())}, &stdout, &stderr); got != 1 {
		t.Fatalf("status = %d, stderr: %s", got, stderr.String())
	}

	var report struct {
		Valid       bool `json:"valid"`
		Diagnostics []struct {
			Section string `json:"section"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if report.Valid || len(report.Diagnostics) != 2 || report.Diagnostics[0].Section != "strings" {
		t.Errorf("report = %s", stdout.String())
	}
}

func TestRun_Config(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "brig.toml")
	if err := os.WriteFile(cfg, []byte("[verify]\nmax_diagnostics = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	run([]string{"-config", cfg, writeModule(t, invalidModule())}, &stdout, &stderr)
	if !strings.Contains(stdout.String(), "1 more diagnostics not shown") {
		t.Errorf("config limit not applied: %s", stdout.String())
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[log]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := run([]string{"-config", bad, writeModule(t, builder.Example())}, &stdout, &stderr); got != 1 {
		t.Errorf("invalid config accepted, status %d", got)
	}
}
