package verify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Sink receives diagnostics in scan order.
type Sink interface {
	Report(d Diagnostic)
}

// SliceSink collects diagnostics in memory.
type SliceSink struct {
	mu          sync.Mutex
	Diagnostics []Diagnostic
}

// Report appends d.
func (s *SliceSink) Report(d Diagnostic) {
	s.mu.Lock()
	s.Diagnostics = append(s.Diagnostics, d)
	s.mu.Unlock()
}

// WriterSink writes one line per diagnostic.
type WriterSink struct {
	W io.Writer
}

// Report writes d followed by a newline. Write errors are dropped.
func (s WriterSink) Report(d Diagnostic) {
	_, _ = fmt.Fprintln(s.W, d.String())
}

// ZapSink forwards diagnostics to a zap logger at Warn level.
type ZapSink struct {
	Logger *zap.Logger
}

// Report logs d.
func (s ZapSink) Report(d Diagnostic) {
	if s.Logger == nil {
		return
	}
	s.Logger.Warn(d.Message,
		zap.Stringer("section", d.Section),
		zap.Uint32("offset", d.Offset),
		zap.Stringer("kind", d.Kind),
		zap.String("condition", d.Condition),
	)
}

// MultiSink fans diagnostics out to several sinks.
type MultiSink []Sink

// Report forwards d to every sink.
func (m MultiSink) Report(d Diagnostic) {
	for _, s := range m {
		s.Report(d)
	}
}
