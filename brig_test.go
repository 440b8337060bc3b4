package brig

import (
	"context"
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gogpu/brig/builder"
	"github.com/gogpu/brig/container"
	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/store"
	"github.com/gogpu/brig/verify"
)

// invalidModule returns a module whose strings section holds a duplicate.
func invalidModule() *format.Module {
	b := builder.NewModuleBuilder()
	b.Version(format.Large, format.Full, format.Nosftz)
	b.AddRawString("twice")
	b.AddRawString("twice")
	return b.Build()
}

func TestVerify_Example(t *testing.T) {
	m := builder.Example()
	r := Verify(m)
	if !r.Valid() {
		t.Fatalf("example is invalid: %v", r.Result.Diagnostics)
	}
	if _, err := uuid.Parse(r.RunID); err != nil {
		t.Errorf("run id %q: %v", r.RunID, err)
	}
	if r.Digest != store.Digest(m) {
		t.Errorf("digest = %s, want %s", r.Digest, store.Digest(m))
	}
	if r.Cached {
		t.Error("report marked cached without a cache")
	}
}

func TestVerify_Invalid(t *testing.T) {
	r := Verify(invalidModule())
	if r.Valid() {
		t.Fatal("expected invalid module")
	}
	if len(r.Result.Diagnostics) != 1 || r.Result.Diagnostics[0].Message != "Duplicate string detected" {
		t.Errorf("diagnostics = %v", r.Result.Diagnostics)
	}
}

func TestVerify_RunIDs(t *testing.T) {
	m := builder.Example()
	if Verify(m).RunID == Verify(m).RunID {
		t.Error("two verifications share a run id")
	}
}

func TestVerifyWithOptions_Logger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)

	r := VerifyWithOptions(context.Background(), builder.Example(), opts)

	entries := logs.FilterMessage("module verified").All()
	if len(entries) != 1 {
		t.Fatalf("got %d info entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["run_id"] != r.RunID {
		t.Errorf("logged run_id = %v, want %s", fields["run_id"], r.RunID)
	}
	if fields["valid"] != true {
		t.Errorf("logged valid = %v", fields["valid"])
	}
}

func TestVerifyWithOptions_Cache(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "verdicts.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	ctx := context.Background()
	m := invalidModule()
	opts := DefaultOptions()
	opts.Cache = cache

	first := VerifyWithOptions(ctx, m, opts)
	if first.Cached {
		t.Fatal("first verification was served from the cache")
	}

	var sink verify.SliceSink
	opts.Sink = &sink
	second := VerifyWithOptions(ctx, m, opts)
	if !second.Cached {
		t.Fatal("second verification missed the cache")
	}
	if second.Valid() || !reflect.DeepEqual(second.Result.Diagnostics, first.Result.Diagnostics) {
		t.Errorf("cached result = %v, want %v", second.Result.Diagnostics, first.Result.Diagnostics)
	}
	if len(sink.Diagnostics) != len(first.Result.Diagnostics) {
		t.Errorf("sink got %d diagnostics from the cached result, want %d",
			len(sink.Diagnostics), len(first.Result.Diagnostics))
	}

	valid := VerifyWithOptions(ctx, builder.Example(), opts)
	if valid.Cached || !valid.Valid() {
		t.Errorf("example: cached=%v valid=%v", valid.Cached, valid.Valid())
	}
}

func TestVerifyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "example.brig")
	if err := container.WriteFile(path, builder.Example()); err != nil {
		t.Fatal(err)
	}

	r, err := VerifyFile(context.Background(), path, DefaultOptions())
	if err != nil {
		t.Fatalf("VerifyFile: %v", err)
	}
	if !r.Valid() {
		t.Errorf("diagnostics: %v", r.Result.Diagnostics)
	}

	if _, err := VerifyFile(context.Background(), filepath.Join(dir, "missing.brig"), DefaultOptions()); err == nil {
		t.Error("VerifyFile of a missing file succeeded")
	}
}

func TestReport_MarshalJSON(t *testing.T) {
	r := Verify(invalidModule())
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got struct {
		RunID       string `json:"run_id"`
		Valid       bool   `json:"valid"`
		Diagnostics []struct {
			Kind    string `json:"kind"`
			Section string `json:"section"`
			Offset  uint32 `json:"offset"`
			Message string `json:"message"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.RunID != r.RunID || got.Valid {
		t.Errorf("report = %s", data)
	}
	if len(got.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %s", data)
	}
	d := got.Diagnostics[0]
	want := r.Result.Diagnostics[0]
	if d.Kind != want.Kind.String() || d.Section != "strings" || d.Offset != want.Offset || d.Message != want.Message {
		t.Errorf("diagnostic = %+v, want %v", d, want)
	}

	data, err = json.Marshal(Verify(builder.Example()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"diagnostics":[]`) {
		t.Errorf("valid report lacks an empty diagnostics list: %s", data)
	}
}
