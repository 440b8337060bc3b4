package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/gogpu/brig/verify"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brig.toml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if c.Verify.ResolveDepth != verify.DefaultResolveDepth {
		t.Errorf("resolve depth = %d, want %d", c.Verify.ResolveDepth, verify.DefaultResolveDepth)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[verify]
parallel = true
max_diagnostics = 20

[log]
level = "debug"

[server]
cache_path = "verdicts.db"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.Verify.Parallel || c.Verify.MaxDiagnostics != 20 {
		t.Errorf("verify = %+v", c.Verify)
	}
	if c.Verify.ResolveDepth != verify.DefaultResolveDepth {
		t.Errorf("resolve depth = %d, want the default", c.Verify.ResolveDepth)
	}
	if c.Log.Level != "debug" || c.Log.Format != "console" {
		t.Errorf("log = %+v", c.Log)
	}
	if c.Server.Addr != ":8080" || c.Server.CachePath != "verdicts.db" {
		t.Errorf("server = %+v", c.Server)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
	if _, err := Load(writeConfig(t, "[verify\n")); err == nil {
		t.Error("Load of malformed TOML succeeded")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BRIG_PARALLEL", "true")
	t.Setenv("BRIG_MAX_DIAGNOSTICS", "5")
	t.Setenv("BRIG_RESOLVE_DEPTH", "3")
	t.Setenv("BRIG_LOG_LEVEL", "warn")
	t.Setenv("BRIG_LOG_FORMAT", "json")
	t.Setenv("BRIG_ADDR", "127.0.0.1:9000")
	t.Setenv("BRIG_CACHE", "/tmp/brig.db")

	c := Default()
	c.ApplyEnv()
	want := Config{
		Verify: Verify{Parallel: true, MaxDiagnostics: 5, ResolveDepth: 3},
		Log:    Log{Level: "warn", Format: "json"},
		Server: Server{Addr: "127.0.0.1:9000", CachePath: "/tmp/brig.db"},
	}
	if *c != want {
		t.Errorf("config = %+v, want %+v", *c, want)
	}
}

func TestApplyEnv_Unset(t *testing.T) {
	for _, name := range []string{"BRIG_PARALLEL", "BRIG_MAX_DIAGNOSTICS", "BRIG_RESOLVE_DEPTH",
		"BRIG_LOG_LEVEL", "BRIG_LOG_FORMAT", "BRIG_ADDR", "BRIG_CACHE"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	c := Default()
	c.Verify.Parallel = true
	want := *c
	c.ApplyEnv()
	if *c != want {
		t.Errorf("config changed without environment: %+v, want %+v", *c, want)
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Verify.MaxDiagnostics = -1
	c.Log.Level = "loud"
	c.Log.Format = "xml"
	c.Server.Addr = ""

	err := c.Validate()
	if err == nil {
		t.Fatal("Validate accepted an invalid config")
	}
	if n := len(multierr.Errors(err)); n != 4 {
		t.Errorf("got %d errors, want 4: %v", n, err)
	}
	for _, key := range []string{"max_diagnostics", "log.level", "log.format", "server.addr"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error does not mention %s: %v", key, err)
		}
	}
}

func TestOptions(t *testing.T) {
	c := Default()
	c.Verify = Verify{Parallel: true, MaxDiagnostics: 7, ResolveDepth: 2}
	opts := c.Options()
	if !opts.Parallel || opts.MaxDiagnostics != 7 || opts.ResolveDepth != 2 {
		t.Errorf("options = %+v", opts)
	}
}

func TestLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			c := Default()
			c.Log.Format = format
			log, err := c.Logger()
			if err != nil {
				t.Fatalf("Logger: %v", err)
			}
			if log == nil {
				t.Fatal("nil logger")
			}
		})
	}

	c := Default()
	c.Log.Format = "xml"
	if _, err := c.Logger(); err == nil {
		t.Error("Logger accepted an unknown format")
	}
}
