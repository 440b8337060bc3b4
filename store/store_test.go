package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/brig/builder"
	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/verify"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "verdicts.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	diag := verify.Diagnostic{
		Kind:      verify.ErrFieldDomain,
		Location:  verify.Location{Section: format.Code, Offset: 8},
		Message:   "Invalid opcode",
		Condition: "opcode < NumOpcodes",
	}
	want := &Verdict{
		Digest:      "abc",
		Valid:       false,
		Diagnostics: []verify.Diagnostic{diag},
		CreatedAt:   time.Unix(1700000000, 0),
	}
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Valid || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("verdict = %+v", got)
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0] != diag {
		t.Errorf("diagnostics = %v, want [%v]", got.Diagnostics, diag)
	}
}

func TestStore_Replace(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, &Verdict{Digest: "d", Valid: false}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, &Verdict{Digest: "d", Valid: true}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "d")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Valid || len(got.Diagnostics) != 0 {
		t.Errorf("verdict = %+v, want the second put", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestStore_NotFound(t *testing.T) {
	s := openStore(t)
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestStore_EmptyDigest(t *testing.T) {
	s := openStore(t)
	if err := s.Put(context.Background(), &Verdict{}); err == nil {
		t.Error("Put accepted an empty digest")
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verdicts.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(context.Background(), &Verdict{Digest: "kept", Valid: true}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Get(context.Background(), "kept"); err != nil {
		t.Errorf("Get after reopen: %v", err)
	}
}

func TestDigest(t *testing.T) {
	m := builder.Example()
	d := Digest(m)
	if len(d) != 64 {
		t.Fatalf("digest %q is not hex SHA-256", d)
	}
	if Digest(builder.Example()) != d {
		t.Error("equal modules have different digests")
	}

	// Moving the boundary between two sections changes the digest.
	a := &format.Module{Directives: []byte{1, 2}, Code: []byte{3}}
	b := &format.Module{Directives: []byte{1}, Code: []byte{2, 3}}
	if Digest(a) == Digest(b) {
		t.Error("digest ignores section boundaries")
	}
	if Digest(nil) != Digest(&format.Module{}) {
		t.Error("nil module and empty module differ")
	}
}
