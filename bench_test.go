package brig

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/gogpu/brig/builder"
	"github.com/gogpu/brig/container"
	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/store"
	"github.com/gogpu/brig/verify"
)

// Method record fields patched once the body is known.
const (
	methodFirstScoped = 16
	methodNextDir     = 24
)

// syntheticModule builds a kernel with n loop bodies, each a label, an add,
// a move and a branch back to the label.
func syntheticModule(n int) *format.Module {
	b := builder.NewModuleBuilder()
	b.Version(format.Large, format.Full, format.Nosftz)

	kernel := b.AddDirective(&format.MethodDirective{
		DirectiveHeader: format.DirectiveHeader{Kind: format.DirKernel},
		CCode:           b.NextInst(),
		SName:           b.AddString("&bench"),
		Attribute:       format.NoAttribute,
	})
	b.PatchU32(format.Directives, kernel+methodFirstScoped, b.NextDirective())

	width := b.Immed(format.B32, 1)
	s0, s1 := b.Reg("$s0"), b.Reg("$s1")
	d0, d1 := b.Reg("$d0"), b.Reg("$d1")
	four := b.Immed(format.B32, 4)
	for i := 0; i < n; i++ {
		l := b.Label(fmt.Sprintf("@l%d", i))
		b.Inst(format.OpAdd, format.U32, s1, s0, four)
		b.Inst(format.OpMov, format.B64, d1, d0)
		b.Inst(format.OpBrn, format.B32, width, b.LabelRef(l))
	}
	b.Inst(format.OpRet, format.B32)
	b.PatchU32(format.Directives, kernel+methodNextDir, b.NextDirective())
	return b.Build()
}

var modulesBySize = []struct {
	name string
	n    int
}{
	{"small", 4},
	{"medium", 256},
	{"large", 4096},
}

func TestSyntheticModule(t *testing.T) {
	for _, sc := range modulesBySize {
		t.Run(sc.name, func(t *testing.T) {
			if r := Verify(syntheticModule(sc.n)); !r.Valid() {
				t.Errorf("diagnostics: %v", r.Result.Diagnostics)
			}
		})
	}
}

// BenchmarkValidate benchmarks the validator alone, sequential and parallel.
func BenchmarkValidate(b *testing.B) {
	for _, sc := range modulesBySize {
		m := syntheticModule(sc.n)
		for _, parallel := range []bool{false, true} {
			name := sc.name + "/sequential"
			if parallel {
				name = sc.name + "/parallel"
			}
			b.Run(name, func(b *testing.B) {
				opts := verify.DefaultOptions()
				opts.Parallel = parallel
				b.ReportAllocs()
				b.SetBytes(int64(m.Size()))
				b.ResetTimer()

				var res verify.Result
				for i := 0; i < b.N; i++ {
					res = verify.ValidateWithOptions(m, opts)
				}
				runtime.KeepAlive(res)
			})
		}
	}
}

// BenchmarkVerify benchmarks the full path including digest and run id.
func BenchmarkVerify(b *testing.B) {
	m := syntheticModule(256)
	b.ReportAllocs()
	b.SetBytes(int64(m.Size()))
	b.ResetTimer()

	var r *Report
	for i := 0; i < b.N; i++ {
		r = VerifyWithOptions(context.Background(), m, DefaultOptions())
	}
	runtime.KeepAlive(r)
}

// BenchmarkDigest benchmarks module hashing for the verdict cache.
func BenchmarkDigest(b *testing.B) {
	m := syntheticModule(4096)
	b.ReportAllocs()
	b.SetBytes(int64(m.Size()))
	b.ResetTimer()

	var d string
	for i := 0; i < b.N; i++ {
		d = store.Digest(m)
	}
	runtime.KeepAlive(d)
}

// BenchmarkContainer benchmarks decoding the on-disk container.
func BenchmarkContainer(b *testing.B) {
	data, err := container.Marshal(syntheticModule(4096))
	if err != nil {
		b.Fatalf("marshal failed: %v", err)
	}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	var m *format.Module
	for i := 0; i < b.N; i++ {
		m, err = container.Unmarshal(data)
		if err != nil {
			b.Fatalf("unmarshal failed: %v", err)
		}
	}
	runtime.KeepAlive(m)
}
